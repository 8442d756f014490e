package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vicrail "vicrail.dev/vicrail"
	"vicrail.dev/vicrail/fetch"
)

var rootCmd = &cobra.Command{
	Use:          "vicrail",
	Short:        "Train departure query tool",
	Long:         "Queries departures, services and stops of a recurring rail timetable",
	SilenceUsage: true,
}

var (
	manifestURL string
	dataVersion string
	timezone    string
	cachePath   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestURL, "manifest-url", "", "", "URL of the data manifest")
	rootCmd.PersistentFlags().StringVarP(&dataVersion, "data-version", "", "v2", "Data format version to download")
	rootCmd.PersistentFlags().StringVarP(&timezone, "timezone", "", "Australia/Melbourne", "Timezone timetables are written in")
	rootCmd.PersistentFlags().StringVarP(&cachePath, "cache", "", "./vicrail-cache.json", "Path of the bundle cache file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadSnapshot downloads the current bundle and builds a snapshot from it.
// Downloads are cached on disk so repeated invocations don't refetch.
func loadSnapshot() (*vicrail.Snapshot, error) {
	if manifestURL == "" {
		return nil, fmt.Errorf("manifest URL is required")
	}

	cache, err := fetch.NewFileCache(cachePath)
	if err != nil {
		return nil, fmt.Errorf("opening bundle cache: %w", err)
	}

	manager := vicrail.NewManager(manifestURL, dataVersion, timezone)
	manager.Downloader = cache

	if err := manager.Refresh(context.Background()); err != nil {
		return nil, err
	}

	return manager.Snapshot()
}
