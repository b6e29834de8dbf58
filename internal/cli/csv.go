package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tOgg1/trackline/internal/csvio"
)

func init() {
	rootCmd.AddCommand(csvCmd)
	csvCmd.AddCommand(csvExportCmd)
	csvCmd.AddCommand(csvImportCmd)

	csvExportCmd.Flags().String("events-out", "", "Write events CSV to this path")
	csvExportCmd.Flags().String("tracks-out", "", "Write tracks CSV to this path")
}

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "CSV import and export",
	Long:  "Move timeline data in and out of CSV files. Use the global --events/--tracks flags to import.",
}

var csvImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Validate CSV files and report what they load as",
	Long:  "Read the files named by --events/--tracks, report rejected rows on stderr, and print the resulting counts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		eventsPath, _ := cmd.Flags().GetString("events")
		tracksPath, _ := cmd.Flags().GetString("tracks")
		if eventsPath == "" && tracksPath == "" {
			return Exitf(ExitCodeFailure, "provide --events and/or --tracks files to import")
		}

		s, err := loadDataset(cmd, cfg)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d tracks, %d events\n", s.TrackCount(), s.EventCount())
		return nil
	},
}

var csvExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current dataset to CSV files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := loadDataset(cmd, cfg)
		if err != nil {
			return err
		}

		eventsOut, _ := cmd.Flags().GetString("events-out")
		tracksOut, _ := cmd.Flags().GetString("tracks-out")
		if eventsOut == "" && tracksOut == "" {
			return Exitf(ExitCodeFailure, "provide --events-out and/or --tracks-out")
		}

		events := s.Events()
		tracks := s.Tracks()

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
