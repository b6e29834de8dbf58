package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the dataset",
	Long:  "Print event and track counts, category breakdown, and the covered date range.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := loadDataset(cmd, cfg)
		if err != nil {
			return err
		}

		stats := s.ComputeStats()

		if IsJSONOutput(cmd) {
			payload, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		}

		rows := [][]string{
			{"Tracks", fmt.Sprintf("%d", stats.TotalTracks)},
			{"Events", fmt.Sprintf("%d", stats.TotalEvents)},
			{"AI generated", fmt.Sprintf("%d", stats.AIGenerated)},
		}
		if stats.EarliestStart != nil {
			rows = append(rows, []string{"Earliest start", stats.EarliestStart.Format("2006-01-02")})
		}
		if stats.LatestEnd != nil {
			rows = append(rows, []string{"Latest end", stats.LatestEnd.Format("2006-01-02")})
		}

		categories := make([]string, 0, len(stats.Categories))
		for category := range stats.Categories {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			rows = append(rows, []string{"Category " + category, fmt.Sprintf("%d", stats.Categories[category])})
		}

		return writeTable(cmd.OutOrStdout(), []string{"Metric", "Value"}, rows)
	},
}
