package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vicrail.dev/vicrail/network"
)

var departuresCmd = &cobra.Command{
	Use:   "departures <stop_id>",
	Short: "Lists the next departures from a stop",
	Args:  cobra.ExactArgs(1),
	RunE:  departures,
}

var (
	count   int
	reverse bool
	filter  string
)

func init() {
	departuresCmd.Flags().IntVarP(&count, "count", "c", 10, "Number of departures to list")
	departuresCmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "List departures before now instead of after")
	departuresCmd.Flags().StringVarP(&filter, "filter", "f", "", "Departure filter, e.g. \"up narr\"")
	rootCmd.AddCommand(departuresCmd)
}

func departures(cmd *cobra.Command, args []string) error {
	stopID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid stop ID: %w", err)
	}

	snapshot, err := loadSnapshot()
	if err != nil {
		return err
	}

	departures, err := snapshot.Departures(
		network.StopID(stopID), time.Now(), count, reverse, filter)
	if err != nil {
		return err
	}

	for _, d := range departures {
		line := snapshot.Network.Line(d.Service.Line)
		lineName := "?"
		if line != nil {
			lineName = line.Name
		}

		platform := string(d.Platform)
		if platform == "" {
			platform = "?"
		}

		note := ""
		if d.SetDownOnly {
			note = " (set down only)"
		}

		fmt.Printf("%s  %-12s %-16s plat %-3s %s%s\n",
			d.Time.In(snapshot.Location).Format("Mon 15:04"),
			lineName, d.Service.Direction, platform, d.Service.ID, note)
	}

	return nil
}
