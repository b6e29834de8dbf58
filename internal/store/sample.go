package store

import (
	"time"

	"github.com/tOgg1/trackline/internal/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// LoadSampleData seeds the store with a small demo dataset spanning three
// tracks, useful for trying out the UI on an empty store.
func LoadSampleData(s *Store) {
	history := models.NewTrack(models.Track{
		Name:        "World History",
		Description: "Major historical events and milestones",
		Color:       "#e74c3c",
	})
	technology := models.NewTrack(models.Track{
		Name:        "Technology",
		Description: "Technological breakthroughs and innovations",
		Color:       "#3498db",
	})
	science := models.NewTrack(models.Track{
		Name:        "Science",
		Description: "Scientific discoveries and achievements",
		Color:       "#2ecc71",
	})

	s.AddTrack(history)
	s.AddTrack(technology)
	s.AddTrack(science)

	ww2End := date(1945, time.September, 2)
	samples := []models.Event{
		{
			Title:       "World War II Begins",
			TrackID:     history.ID,
			Start:       date(1939, time.September, 1),
			End:         &ww2End,
			Category:    "war",
			Description: "Global conflict that lasted from 1939 to 1945",
			Color:       "#dc3545",
		},
		{
			Title:           "Internet Created (ARPANET)",
			TrackID:         technology.ID,
			Start:           date(1969, time.October, 29),
			Category:        "technology",
			Description:     "First message sent over ARPANET",
			AIGenerated:     true,
			ConfidenceScore: 0.95,
			Color:           "#007bff",
		},
		{
			Title:       "Apollo 11 Moon Landing",
			TrackID:     history.ID,
			Start:       date(1969, time.July, 20),
			Category:    "space",
			Description: "First crewed lunar landing mission",
			Color:       "#6f42c1",
		},
		{
			Title:           "World Wide Web Invented",
			TrackID:         technology.ID,
			Start:           date(1989, time.March, 12),
			Category:        "technology",
			Description:     "Tim Berners-Lee proposes the World Wide Web",
			AIGenerated:     true,
			ConfidenceScore: 0.92,
			Color:           "#fd7e14",
		},
		{
			Title:       "Discovery of DNA Structure",
			TrackID:     science.ID,
			Start:       date(1953, time.April, 25),
			Category:    "biology",
			Description: "Watson and Crick publish DNA double helix",
			Color:       "#28a745",
		},
	}

	for _, seed := range samples {
		s.AddEvent(models.NewEvent(seed))
	}
}
