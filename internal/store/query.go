package store

import (
	"strings"
	"time"

	"github.com/tOgg1/trackline/internal/models"
)

// BulkResult reports the outcome of a bulk insert: the ids that landed and
// the per-row validation failures, keyed by input index.
type BulkResult struct {
	AddedIDs []string
	Errors   map[int]error
}

// Failed reports whether any row was rejected.
func (r BulkResult) Failed() bool {
	return len(r.Errors) > 0
}

// BulkAddEvents validates and inserts multiple events. Rows that fail
// validation are skipped and reported; valid rows are inserted normally,
// each with its own notification and history snapshot.
func (s *Store) BulkAddEvents(seeds []models.Event) BulkResult {
	result := BulkResult{Errors: make(map[int]error)}
	for i, seed := range seeds {
		event := models.NewEvent(seed)
		if err := event.Validate(); err != nil {
			result.Errors[i] = err
			continue
		}
		s.AddEvent(event)
		result.AddedIDs = append(result.AddedIDs, event.ID)
	}
	return result
}

// BulkAddTracks validates and inserts multiple tracks.
func (s *Store) BulkAddTracks(seeds []models.Track) BulkResult {
	result := BulkResult{Errors: make(map[int]error)}
	for i, seed := range seeds {
		track := models.NewTrack(seed)
		if err := track.Validate(); err != nil {
			result.Errors[i] = err
			continue
		}
		s.AddTrack(track)
		result.AddedIDs = append(result.AddedIDs, track.ID)
	}
	return result
}

// SearchEvents returns events whose title, description, category, or tags
// contain the query, case-insensitively. A blank query matches nothing.
func (s *Store) SearchEvents(query string) []models.Event {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var out []models.Event
	for _, event := range s.Events() {
		if eventMatches(event, query) {
			out = append(out, event)
		}
	}
	return out
}

func eventMatches(event models.Event, query string) bool {
	if strings.Contains(strings.ToLower(event.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(event.Description), query) {
		return true
	}
	if strings.Contains(strings.ToLower(event.Category), query) {
		return true
	}
	for _, tag := range event.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// EventsByDateRange returns events overlapping [start, end], in insertion
// order. Point events overlap when their start falls inside the range.
func (s *Store) EventsByDateRange(start, end time.Time) []models.Event {
	var out []models.Event
	for _, event := range s.Events() {
		if !event.EffectiveEnd().Before(start) && !event.Start.After(end) {
			out = append(out, event)
		}
	}
	return out
}

// EventsByCategory returns events with the given category, in insertion
// order. Matching ignores case.
func (s *Store) EventsByCategory(category string) []models.Event {
	var out []models.Event
	for _, event := range s.Events() {
		if strings.EqualFold(event.Category, category) {
			out = append(out, event)
		}
	}
	return out
}

// Stats summarizes the current collections.
type Stats struct {
	TotalEvents   int            `json:"total_events"`
	TotalTracks   int            `json:"total_tracks"`
	Categories    map[string]int `json:"categories"`
	AIGenerated   int            `json:"ai_generated"`
	EventsByTrack map[string]int `json:"events_by_track"`
	EarliestStart *time.Time     `json:"earliest_start,omitempty"`
	LatestEnd     *time.Time     `json:"latest_end,omitempty"`
}

// ComputeStats walks the collections and returns summary counts plus the
// covered date range.
func (s *Store) ComputeStats() Stats {
	stats := Stats{
		Categories:    make(map[string]int),
		EventsByTrack: make(map[string]int),
	}
	stats.TotalTracks = s.TrackCount()

	for _, event := range s.Events() {
		stats.TotalEvents++
		stats.Categories[event.Category]++
		stats.EventsByTrack[event.TrackID]++
		if event.AIGenerated {
			stats.AIGenerated++
		}
		start := event.Start
		if stats.EarliestStart == nil || start.Before(*stats.EarliestStart) {
			stats.EarliestStart = &start
		}
		end := event.EffectiveEnd()
		if stats.LatestEnd == nil || end.After(*stats.LatestEnd) {
			stats.LatestEnd = &end
		}
	}
	return stats
}
