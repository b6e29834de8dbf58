// Package cli provides export commands for trackline data.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tOgg1/trackline/internal/config"
	"github.com/tOgg1/trackline/internal/render"
	"github.com/tOgg1/trackline/internal/store"
	"github.com/tOgg1/trackline/internal/timeline"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportPNGCmd)

	exportCmd.PersistentFlags().String("out", "", "Output file or directory (defaults to the configured export dir)")
	exportCmd.PersistentFlags().Int("width", 0, "Image width in pixels")
	exportCmd.PersistentFlags().Int("height", 0, "Image height in pixels")
	exportCmd.PersistentFlags().Float64("scale", 0, "Supersampling factor")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the timeline to a PNG file",
	Long:  "Render the full timeline, fitted to its events, into a dated PNG file.",
	RunE:  runExportPNG,
}

var exportPNGCmd = &cobra.Command{
	Use:   "png",
	Short: "Render the timeline to a PNG file",
	RunE:  runExportPNG,
}

func runExportPNG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := loadDataset(cmd, cfg)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	dir := out
	file := ""
	if strings.EqualFold(filepath.Ext(out), ".png") {
		dir = filepath.Dir(out)
		file = filepath.Base(out)
	}
	if dir == "" {
		dir = cfg.ExportDir()
	}

	width := cfg.Export.Width
	if v, _ := cmd.Flags().GetInt("width"); v > 0 {
		width = v
	}
	height := cfg.Export.Height
	if v, _ := cmd.Flags().GetInt("height"); v > 0 {
		height = v
	}
	scale := cfg.Export.Scale
	if v, _ := cmd.Flags().GetFloat64("scale"); v > 0 {
		scale = v
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Exitf(ExitCodeFailure, "create export dir: %v", err)
	}

	path, err := exportPNG(s, cfg, dir, width, height, scale)
	if err != nil {
		return Exitf(ExitCodeFailure, "export png: %v", err)
	}

	// An explicit .png target overrides the dated default name.
	if file != "" {
		target := filepath.Join(dir, file)
		if err := os.Rename(path, target); err != nil {
			return Exitf(ExitCodeFailure, "rename export: %v", err)
		}
		path = target
	}

	if IsJSONOutput(cmd) {
		payload, err := json.Marshal(map[string]string{"path": path})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(payload))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func exportPNG(s *store.Store, cfg *config.Config, dir string, width, height int, scale float64) (string, error) {
	frame := render.Frame{
		Tracks: s.Tracks(),
		Events: s.Events(),
	}
	frame.View.Zoom = 1
	frame.View.FitToEvents(frame.Events)

	layout := timelineLayout(cfg)
	exporter := render.NewExporter(render.New(layout, render.DefaultTheme()))
	return exporter.Export(frame, dir, width, height, scale, time.Now())
}

func timelineLayout(cfg *config.Config) timeline.Layout {
	return timeline.Layout{
		TrackHeight:   cfg.Timeline.TrackHeight,
		TrackSpacing:  cfg.Timeline.TrackSpacing,
		EventMinWidth: cfg.Timeline.EventMinWidth,
		EventMaxWidth: cfg.Timeline.EventMaxWidth,
		EventHeight:   cfg.Timeline.EventHeight,
		AxisHeight:    timeline.DefaultLayout().AxisHeight,
	}
}
