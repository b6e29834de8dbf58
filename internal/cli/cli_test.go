package cli

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"github.com/tOgg1/trackline/internal/store"
)

// runCommand executes the root command with a clean flag slate and
// captured output.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// resetFlags restores default flag values so one test's flags never
// leak into the next execution of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestStatsTableFromSampleData(t *testing.T) {
	out, _, err := runCommand(t, "stats")
	require.NoError(t, err)
	require.Contains(t, out, "Tracks")
	require.Contains(t, out, "Events")
	require.Contains(t, out, "Category technology")
}

func TestStatsJSONFromSampleData(t *testing.T) {
	out, _, err := runCommand(t, "stats", "--json")
	require.NoError(t, err)

	var stats store.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	require.Equal(t, 5, stats.TotalEvents)
	require.Equal(t, 3, stats.TotalTracks)
	require.Equal(t, 2, stats.AIGenerated)
	require.NotNil(t, stats.EarliestStart)
	require.Equal(t, 1939, stats.EarliestStart.Year())
}

func TestEventsSearchFilter(t *testing.T) {
	out, _, err := runCommand(t, "events", "--search", "apollo")
	require.NoError(t, err)
	require.Contains(t, out, "Apollo 11")
	require.NotContains(t, out, "ARPANET")
}

func TestEventsDateRangeFilter(t *testing.T) {
	out, _, err := runCommand(t, "events", "--from", "1960-01-01", "--to", "1969-12-31")
	require.NoError(t, err)
	require.Contains(t, out, "Apollo 11")
	require.Contains(t, out, "ARPANET")
	require.NotContains(t, out, "World War II")
	require.NotContains(t, out, "World Wide Web")
}

func TestTracksTableListsCounts(t *testing.T) {
	out, _, err := runCommand(t, "tracks")
	require.NoError(t, err)
	require.Contains(t, out, "World History")
	require.Contains(t, out, "Technology")
	require.Contains(t, out, "yes")
}

func TestCSVExportThenImportKeepsCounts(t *testing.T) {
	dir := t.TempDir()
	eventsPath := filepath.Join(dir, "events.csv")
	tracksPath := filepath.Join(dir, "tracks.csv")

	out, _, err := runCommand(t, "csv", "export", "--events-out", eventsPath, "--tracks-out", tracksPath)
	require.NoError(t, err)
	require.Contains(t, out, "5 events")
	require.Contains(t, out, "3 tracks")

	out, errOut, err := runCommand(t, "stats", "--json", "--events", eventsPath, "--tracks", tracksPath)
	require.NoError(t, err)
	require.Empty(t, errOut)

	var stats store.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	require.Equal(t, 5, stats.TotalEvents)
	require.Equal(t, 3, stats.TotalTracks)
}

func TestCSVImportPrintsResultingCounts(t *testing.T) {
	dir := t.TempDir()
	eventsPath := filepath.Join(dir, "events.csv")
	csv := "Title,Track,Start Date\nFirst Flight,Aviation,1903-12-17\n"
	require.NoError(t, os.WriteFile(eventsPath, []byte(csv), 0o644))

	out, _, err := runCommand(t, "csv", "import", "--events", eventsPath)
	require.NoError(t, err)
	require.Contains(t, out, "0 tracks, 1 events")
}

func TestCSVExportRequiresOutput(t *testing.T) {
	_, _, err := runCommand(t, "csv", "export")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--events-out")
}

func TestExportPNGWritesDecodableFile(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runCommand(t, "export", "png", "--out", dir, "--width", "320", "--height", "200", "--scale", "1")
	require.NoError(t, err)

	path := firstLine(out)
	require.Equal(t, dir, filepath.Dir(path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	require.Equal(t, 320, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())
}

func TestExportHonorsExplicitFileName(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "custom.png")

	out, _, err := runCommand(t, "export", "--out", target, "--width", "64", "--height", "64", "--scale", "1")
	require.NoError(t, err)
	require.Equal(t, target, firstLine(out))

	_, err = os.Stat(target)
	require.NoError(t, err)
}

func TestSampleTableListsSeedData(t *testing.T) {
	out, _, err := runCommand(t, "sample")
	require.NoError(t, err)
	require.Contains(t, out, "Apollo 11")
	require.Contains(t, out, "World History")
}

func TestUIRefusesWithoutTTY(t *testing.T) {
	_, _, err := runCommand(t, "ui")
	require.Error(t, err)
	require.Contains(t, err.Error(), "interactive terminal")
}

func TestImportReportsRejectedRows(t *testing.T) {
	dir := t.TempDir()
	eventsPath := filepath.Join(dir, "events.csv")
	csv := "Title,Track,Start Date,End Date,Category\nGood,General,2020-01-01,,misc\nBad,General,not-a-date,,misc\n"
	require.NoError(t, os.WriteFile(eventsPath, []byte(csv), 0o644))

	out, errOut, err := runCommand(t, "stats", "--json", "--events", eventsPath)
	require.NoError(t, err)
	require.Contains(t, errOut, "row")

	var stats store.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	require.Equal(t, 1, stats.TotalEvents)
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
