package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tOgg1/trackline/internal/tui"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(uiCmd)

	uiCmd.Flags().String("theme", "", "TUI theme name")
	uiCmd.Flags().String("log-level", "", "Log level override (debug, info, warn, error)")
}

var uiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"ui"},
	Short:   "Launch the trackline TUI",
	Long:    "Launch the trackline terminal user interface (TUI).",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	if !hasTTY() {
		return Exitf(ExitCodeFailure, "the TUI requires an interactive terminal; use subcommands for scripted output")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if theme, _ := cmd.Flags().GetString("theme"); theme != "" {
		cfg.TUI.Theme = theme
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	s, err := loadDataset(cmd, cfg)
	if err != nil {
		return err
	}

	return tui.Run(cfg, s)
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
