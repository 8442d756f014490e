package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vicrail.dev/vicrail/model"
)

var serviceCmd = &cobra.Command{
	Use:   "service <service_id>",
	Short: "Shows the full stopping pattern of a service",
	Args:  cobra.ExactArgs(1),
	RunE:  service,
}

func init() {
	rootCmd.AddCommand(serviceCmd)
}

func service(cmd *cobra.Command, args []string) error {
	id, err := model.ParseServiceID(args[0])
	if err != nil {
		return err
	}

	snapshot, err := loadSnapshot()
	if err != nil {
		return err
	}

	svc, err := snapshot.ResolveService(id, time.Now())
	if err != nil {
		return err
	}

	line := snapshot.Network.Line(svc.Line)
	lineName := "?"
	if line != nil {
		lineName = line.Name
	}
	fmt.Printf("%s: %s line, %s\n", svc.ID, lineName, svc.Direction)

	for _, stop := range svc.Stops {
		name := fmt.Sprintf("stop %d", stop.Stop)
		if s := snapshot.Network.Stop(stop.Stop); s != nil {
			name = s.Name
		}

		platform := ""
		if stop.Platform != "" {
			platform = fmt.Sprintf("  plat %s", stop.Platform)
		}
		note := ""
		if stop.SetDownOnly {
			note = "  (set down only)"
		}

		fmt.Printf("  %s  %-24s%s%s\n",
			stop.Time.In(snapshot.Location).Format("Mon 15:04"), name, platform, note)
	}

	return nil
}
