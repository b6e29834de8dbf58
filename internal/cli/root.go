// Package cli implements the trackline command surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tOgg1/trackline/internal/config"
	"github.com/tOgg1/trackline/internal/csvio"
	"github.com/tOgg1/trackline/internal/logging"
	"github.com/tOgg1/trackline/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "trackline",
	Short:         "Timeline authoring in the terminal",
	Long:          "trackline edits timelines of tracks and events, renders them in a TUI, and exports PNG and CSV snapshots.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file")
	rootCmd.PersistentFlags().String("events", "", "CSV file to load events from (defaults to sample data)")
	rootCmd.PersistentFlags().String("tracks", "", "CSV file to load tracks from")
	rootCmd.PersistentFlags().Bool("json", false, "Machine-readable JSON output")
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

// loadConfig resolves the effective config for a command invocation:
// defaults, then config file, then TRACKLINE_* environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader.SetConfigFile(path)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, Exitf(ExitCodeFailure, "load config: %v", err)
	}

	logging.Init(logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableCaller: cfg.Logging.EnableCaller,
	})
	return cfg, nil
}

// loadDataset builds the working store for a command invocation. With
// --events/--tracks it imports the named CSV files, reporting rejected
// rows on stderr; otherwise it seeds the bundled sample data.
func loadDataset(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	s := store.New()

	eventsPath, _ := cmd.Flags().GetString("events")
	tracksPath, _ := cmd.Flags().GetString("tracks")
	if eventsPath == "" && tracksPath == "" {
		if cfg.TUI.SampleData {
			store.LoadSampleData(s)
		}
		return s, nil
	}

	if tracksPath != "" {
		file, err := os.Open(tracksPath)
		if err != nil {
			return nil, Exitf(ExitCodeFailure, "open tracks file: %v", err)
		}
		result, err := csvio.ReadTracks(file)
		file.Close()
		if err != nil {
			return nil, Exitf(ExitCodeFailure, "read tracks: %v", err)
		}
		reportRowErrors(cmd, tracksPath, result.Errors)
		bulk := s.BulkAddTracks(result.Rows)
		reportBulkErrors(cmd, tracksPath, bulk)
	}

	if eventsPath != "" {
		file, err := os.Open(eventsPath)
		if err != nil {
			return nil, Exitf(ExitCodeFailure, "open events file: %v", err)
		}
		result, err := csvio.ReadEvents(file, s.Tracks())
		file.Close()
		if err != nil {
			return nil, Exitf(ExitCodeFailure, "read events: %v", err)
		}
		reportRowErrors(cmd, eventsPath, result.Errors)
		bulk := s.BulkAddEvents(result.Rows)
		reportBulkErrors(cmd, eventsPath, bulk)
	}

	return s, nil
}

func reportRowErrors(cmd *cobra.Command, path string, errs []error) {
	for _, err := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
	}
}

func reportBulkErrors(cmd *cobra.Command, path string, result store.BulkResult) {
	for row, err := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: row %d: %v\n", path, row, err)
	}
}

// IsJSONOutput reports whether --json was requested.
func IsJSONOutput(cmd *cobra.Command) bool {
	enabled, _ := cmd.Flags().GetBool("json")
	return enabled
}
