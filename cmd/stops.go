package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"vicrail.dev/vicrail/network"
)

var stopsCmd = &cobra.Command{
	Use:   "stops [name]",
	Short: "Lists stops, optionally filtered by name",
	Args:  cobra.RangeArgs(0, 1),
	RunE:  stops,
}

func init() {
	rootCmd.AddCommand(stopsCmd)
}

func stops(cmd *cobra.Command, args []string) error {
	snapshot, err := loadSnapshot()
	if err != nil {
		return err
	}

	query := ""
	if len(args) == 1 {
		query = strings.ToLower(args[0])
	}

	stops := append([]*network.Stop(nil), snapshot.Network.Stops()...)
	sort.Slice(stops, func(i, j int) bool {
		return stops[i].Name < stops[j].Name
	})

	for _, stop := range stops {
		if query != "" && !strings.Contains(strings.ToLower(stop.Name), query) {
			continue
		}

		var lines []string
		for _, l := range snapshot.Network.LinesAt(stop.ID) {
			lines = append(lines, l.Name)
		}

		fmt.Printf("%4d: %-24s %s\n", stop.ID, stop.Name, strings.Join(lines, ", "))
	}

	return nil
}
