package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tOgg1/trackline/internal/models"
)

const dateLayout = "2006-01-02"

// WriteEvents writes events as CSV with the event schema's labels as the
// header row. Track ids are resolved to track names when the track is
// known, matching what the table displays.
func WriteEvents(w io.Writer, events []models.Event, tracks []models.Track) error {
	trackNames := make(map[string]string, len(tracks))
	for _, track := range tracks {
		trackNames[track.ID] = track.Name
	}

	columns := EventColumns()
	cw := csv.NewWriter(w)
	if err := cw.Write(columnLabels(columns)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, event := range events {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = eventCell(event, col.Key, trackNames)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing event %s: %w", event.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTracks writes tracks as CSV with the track schema's labels as the
// header row. The computed event-count column is filled from events.
func WriteTracks(w io.Writer, tracks []models.Track, events []models.Event) error {
	counts := make(map[string]int, len(tracks))
	for _, event := range events {
		counts[event.TrackID]++
	}

	columns := TrackColumns()
	cw := csv.NewWriter(w)
	if err := cw.Write(columnLabels(columns)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, track := range tracks {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = trackCell(track, col.Key, counts)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing track %s: %w", track.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func columnLabels(columns []Column) []string {
	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = col.Label
	}
	return labels
}

func eventCell(event models.Event, key string, trackNames map[string]string) string {
	switch key {
	case "title":
		return event.Title
	case "timeline_id":
		if name, ok := trackNames[event.TrackID]; ok {
			return name
		}
		return event.TrackID
	case "start_date":
		return event.Start.Format(dateLayout)
	case "end_date":
		if event.End == nil {
			return ""
		}
		return event.End.Format(dateLayout)
	case "category":
		return event.Category
	case "description":
		return event.Description
	case "color":
		return event.Color
	case "ai_generated":
		return strconv.FormatBool(event.AIGenerated)
	case "confidence_score":
		return strconv.FormatFloat(event.ConfidenceScore, 'g', -1, 64)
	default:
		return ""
	}
}

func trackCell(track models.Track, key string, counts map[string]int) string {
	switch key {
	case "name":
		return track.Name
	case "description":
		return track.Description
	case "color":
		return track.Color
	case "visible":
		return strconv.FormatBool(track.Visible)
	case "event_count":
		return strconv.Itoa(counts[track.ID])
	default:
		return ""
	}
}
