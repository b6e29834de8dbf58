package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tOgg1/trackline/internal/models"
	"github.com/tOgg1/trackline/internal/store"
)

func init() {
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(tracksCmd)

	eventsCmd.Flags().String("search", "", "Filter events by substring match on title, description, category, or tags")
	eventsCmd.Flags().String("category", "", "Filter events by category")
	eventsCmd.Flags().String("from", "", "Only events overlapping on/after this date (YYYY-MM-DD)")
	eventsCmd.Flags().String("to", "", "Only events overlapping on/before this date (YYYY-MM-DD)")
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := loadDataset(cmd, cfg)
		if err != nil {
			return err
		}

		events, err := filterEvents(cmd, s)
		if err != nil {
			return err
		}

		if IsJSONOutput(cmd) {
			payload, err := json.MarshalIndent(events, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		}

		trackNames := make(map[string]string)
		for _, track := range s.Tracks() {
			trackNames[track.ID] = track.Name
		}

		rows := make([][]string, 0, len(events))
		for _, event := range events {
			end := ""
			if !event.IsPoint() {
				end = event.End.Format("2006-01-02")
			}
			rows = append(rows, []string{
				event.Title,
				trackNames[event.TrackID],
				event.Start.Format("2006-01-02"),
				end,
				event.Category,
				formatYesNo(event.AIGenerated),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"Title", "Track", "Start", "End", "Category", "AI"}, rows)
	},
}

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List tracks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := loadDataset(cmd, cfg)
		if err != nil {
			return err
		}

		tracks := s.Tracks()

		if IsJSONOutput(cmd) {
			payload, err := json.MarshalIndent(tracks, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		}

		rows := make([][]string, 0, len(tracks))
		for _, track := range tracks {
			rows = append(rows, []string{
				track.Name,
				track.Color,
				formatYesNo(track.Visible),
				fmt.Sprintf("%d", len(s.EventsForTrack(track.ID))),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"Name", "Color", "Visible", "Events"}, rows)
	},
}

// filterEvents applies the events command's filter flags in order:
// search, then category, then date range.
func filterEvents(cmd *cobra.Command, s *store.Store) ([]models.Event, error) {
	search, _ := cmd.Flags().GetString("search")
	category, _ := cmd.Flags().GetString("category")
	fromArg, _ := cmd.Flags().GetString("from")
	toArg, _ := cmd.Flags().GetString("to")

	var events []models.Event
	switch {
	case search != "":
		events = s.SearchEvents(search)
	case category != "":
		events = s.EventsByCategory(category)
	default:
		events = s.Events()
	}

	if fromArg == "" && toArg == "" {
		return events, nil
	}

	from := time.Time{}
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	var err error
	if fromArg != "" {
		from, err = time.Parse("2006-01-02", fromArg)
		if err != nil {
			return nil, Exitf(ExitCodeFailure, "invalid --from date: %v", err)
		}
	}
	if toArg != "" {
		to, err = time.Parse("2006-01-02", toArg)
		if err != nil {
			return nil, Exitf(ExitCodeFailure, "invalid --to date: %v", err)
		}
	}

	var out []models.Event
	for _, event := range events {
		if !event.EffectiveEnd().Before(from) && !event.Start.After(to) {
			out = append(out, event)
		}
	}
	return out, nil
}
