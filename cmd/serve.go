package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	vicrail "vicrail.dev/vicrail"
	"vicrail.dev/vicrail/api"
	"vicrail.dev/vicrail/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the departures API server",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

var configPath string

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "", "config.yml", "Path of the config file")
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager := vicrail.NewManager(cfg.Data.ManifestURL, cfg.Data.Version, cfg.Data.Timezone)
	manager.RefreshInterval = cfg.RefreshInterval()

	// First refresh happens before the server accepts traffic, so /health
	// only goes green with data loaded.
	if err := manager.Refresh(ctx); err != nil {
		return fmt.Errorf("loading initial data: %w", err)
	}

	go func() {
		if err := manager.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("refresh loop stopped: %v", err)
		}
	}()

	apiServer := api.NewServer(manager)
	apiServer.MaxDepartures = cfg.API.MaxDepartures
	apiServer.MaxQueryDays = cfg.API.MaxQueryDays

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: apiServer.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("serving on :%d", cfg.Server.Port)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
