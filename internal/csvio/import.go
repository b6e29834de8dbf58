package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tOgg1/trackline/internal/models"
)

// ImportResult carries the parsed rows together with per-row conversion
// errors. Rows with malformed cells are still returned when at least one
// cell converted; the errors tell the user what was skipped.
type ImportResult[T any] struct {
	Rows   []T
	Errors []error
}

// ErrNoRows is returned when the input has no data below the header.
var ErrNoRows = errors.New("csv needs a header row and at least one data row")

// headerIndex maps CSV column positions to schema columns, matching on
// label or key, case-insensitively. Unknown headers are ignored.
func headerIndex(header []string, columns []Column) map[int]Column {
	index := make(map[int]Column)
	for i, name := range header {
		name = strings.TrimSpace(strings.ToLower(name))
		for _, col := range columns {
			if strings.ToLower(col.Label) == name || strings.ToLower(col.Key) == name {
				index[i] = col
				break
			}
		}
	}
	return index
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// ReadEvents parses event rows. Track references are resolved against the
// given tracks by name; anything else (raw track ids included) is kept
// verbatim so the caller can decide how to handle it.
func ReadEvents(r io.Reader, tracks []models.Track) (ImportResult[models.Event], error) {
	var result ImportResult[models.Event]

	trackIDs := make(map[string]string, len(tracks))
	for _, track := range tracks {
		trackIDs[strings.ToLower(track.Name)] = track.ID
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return result, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) < 2 {
		return result, ErrNoRows
	}

	index := headerIndex(records[0], EventColumns())
	for rowNum, record := range records[1:] {
		event := models.Event{}
		cells := 0
		rowOK := true

		for i, value := range record {
			col, ok := index[i]
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			cells++

			switch col.Key {
			case "title":
				event.Title = value
			case "timeline_id":
				if id, ok := trackIDs[strings.ToLower(value)]; ok {
					event.TrackID = id
				} else {
					event.TrackID = value
				}
			case "start_date":
				t, err := parseDate(value)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("row %d, %s: %w", rowNum+2, col.Label, err))
					rowOK = false
					continue
				}
				event.Start = t
			case "end_date":
				t, err := parseDate(value)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("row %d, %s: %w", rowNum+2, col.Label, err))
					continue
				}
				event.End = &t
			case "category":
				event.Category = value
			case "description":
				event.Description = value
			case "color":
				event.Color = value
			case "ai_generated":
				event.AIGenerated = parseBool(value)
			case "confidence_score":
				score, err := strconv.ParseFloat(value, 64)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("row %d, %s: invalid number %q", rowNum+2, col.Label, value))
					continue
				}
				event.ConfidenceScore = score
			}
		}

		if cells > 0 && rowOK {
			result.Rows = append(result.Rows, event)
		}
	}

	return result, nil
}

// ReadTracks parses track rows.
func ReadTracks(r io.Reader) (ImportResult[models.Track], error) {
	var result ImportResult[models.Track]

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return result, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) < 2 {
		return result, ErrNoRows
	}

	index := headerIndex(records[0], TrackColumns())
	for _, record := range records[1:] {
		track := models.Track{Visible: true}
		cells := 0

		for i, value := range record {
			col, ok := index[i]
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			cells++

			switch col.Key {
			case "name":
				track.Name = value
			case "description":
				track.Description = value
			case "color":
				track.Color = value
			case "visible":
				track.Visible = parseBool(value)
			}
		}

		if cells > 0 {
			result.Rows = append(result.Rows, track)
		}
	}

	return result, nil
}
