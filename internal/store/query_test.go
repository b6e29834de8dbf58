package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/trackline/internal/models"
)

func TestBulkAddEventsReportsPerRowErrors(t *testing.T) {
	s := newTestStore(t)
	track := addTrack(t, s, "Track")

	result := s.BulkAddEvents([]models.Event{
		{Title: "Valid", TrackID: track.ID, Start: time.Date(2001, time.May, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "No start", TrackID: track.ID},
		{Title: "Also valid", TrackID: track.ID, Start: time.Date(2002, time.May, 1, 0, 0, 0, 0, time.UTC)},
	})

	require.True(t, result.Failed())
	require.Len(t, result.AddedIDs, 2)
	require.Contains(t, result.Errors, 1)
	require.Equal(t, 2, s.EventCount())
}

func TestSearchEventsMatchesAcrossFields(t *testing.T) {
	s := newTestStore(t)
	LoadSampleData(s)

	require.Len(t, s.SearchEvents("arpanet"), 1)
	require.Len(t, s.SearchEvents("technology"), 2)
	require.Len(t, s.SearchEvents("WATSON"), 1)
	require.Empty(t, s.SearchEvents("nonexistent"))
	require.Empty(t, s.SearchEvents("  "))
}

func TestEventsByDateRangeIncludesOverlappingIntervals(t *testing.T) {
	s := newTestStore(t)
	LoadSampleData(s)

	// World War II (1939-1945) overlaps a range starting mid-war.
	got := s.EventsByDateRange(
		time.Date(1941, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC),
	)
	require.Len(t, got, 1)
	require.Equal(t, "World War II Begins", got[0].Title)

	sixties := s.EventsByDateRange(
		time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1969, time.December, 31, 0, 0, 0, 0, time.UTC),
	)
	require.Len(t, sixties, 2)
}

func TestEventsByCategoryIgnoresCase(t *testing.T) {
	s := newTestStore(t)
	LoadSampleData(s)

	require.Len(t, s.EventsByCategory("Technology"), 2)
	require.Len(t, s.EventsByCategory("war"), 1)
	require.Empty(t, s.EventsByCategory("music"))
}

func TestComputeStats(t *testing.T) {
	s := newTestStore(t)
	LoadSampleData(s)

	stats := s.ComputeStats()
	require.Equal(t, 5, stats.TotalEvents)
	require.Equal(t, 3, stats.TotalTracks)
	require.Equal(t, 2, stats.AIGenerated)
	require.Equal(t, 2, stats.Categories["technology"])

	byTrack := make(map[string]int)
	for _, track := range s.Tracks() {
		byTrack[track.Name] = stats.EventsByTrack[track.ID]
	}
	require.Equal(t, 2, byTrack["Technology"])
	require.Equal(t, 2, byTrack["World History"])
	require.Equal(t, 1, byTrack["Science"])

	require.NotNil(t, stats.EarliestStart)
	require.Equal(t, 1939, stats.EarliestStart.Year())
	require.NotNil(t, stats.LatestEnd)
	require.Equal(t, 1989, stats.LatestEnd.Year())
}
