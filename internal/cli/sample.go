package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tOgg1/trackline/internal/csvio"
	"github.com/tOgg1/trackline/internal/store"
)

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().String("events-out", "", "Write the sample events to this CSV path")
	sampleCmd.Flags().String("tracks-out", "", "Write the sample tracks to this CSV path")
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Inspect or export the bundled sample dataset",
	Long:  "Print the bundled sample dataset, or write it to CSV files with --events-out/--tracks-out.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}

		s := store.New()
		store.LoadSampleData(s)
		events := s.Events()
		tracks := s.Tracks()

		eventsOut, _ := cmd.Flags().GetString("events-out")
		tracksOut, _ := cmd.Flags().GetString("tracks-out")

		if eventsOut == "" && tracksOut == "" {
			rows := make([][]string, 0, len(events))
			trackNames := make(map[string]string)
			for _, track := range tracks {
				trackNames[track.ID] = track.Name
			}
			for _, event := range events {
				rows = append(rows, []string{
					event.Title,
					trackNames[event.TrackID],
					event.Start.Format("2006-01-02"),
					event.Category,
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Title", "Track", "Start", "Category"}, rows)
		}

		if eventsOut != "" {
			file, err := os.Create(eventsOut)
			if err != nil {
				return Exitf(ExitCodeFailure, "create %s: %v", eventsOut, err)
			}
			writeErr := csvio.WriteEvents(file, events, tracks)
			if closeErr := file.Close(); writeErr == nil {
				writeErr = closeErr
			}
			if writeErr != nil {
				return Exitf(ExitCodeFailure, "write %s: %v", eventsOut, writeErr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d events\n", eventsOut, len(events))
		}

		if tracksOut != "" {
			file, err := os.Create(tracksOut)
			if err != nil {
				return Exitf(ExitCodeFailure, "create %s: %v", tracksOut, err)
			}
			writeErr := csvio.WriteTracks(file, tracks, events)
			if closeErr := file.Close(); writeErr == nil {
				writeErr = closeErr
			}
			if writeErr != nil {
				return Exitf(ExitCodeFailure, "write %s: %v", tracksOut, writeErr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tracks\n", tracksOut, len(tracks))
		}

		return nil
	},
}
