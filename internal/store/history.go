package store

import (
	"github.com/tOgg1/trackline/internal/events"
	"github.com/tOgg1/trackline/internal/models"
)

// snapshot is a deep copy of the track and event collections at one point
// in time. Selection and tab state are deliberately not part of history.
type snapshot struct {
	eventOrder []string
	events     map[string]models.Event
	trackOrder []string
	tracks     map[string]models.Track
}

func (s *Store) snapshotLocked() snapshot {
	snap := snapshot{
		eventOrder: append([]string(nil), s.eventOrder...),
		events:     make(map[string]models.Event, len(s.eventsByID)),
		trackOrder: append([]string(nil), s.trackOrder...),
		tracks:     make(map[string]models.Track, len(s.tracksByID)),
	}
	for id, event := range s.eventsByID {
		snap.events[id] = event.Clone()
	}
	for id, track := range s.tracksByID {
		snap.tracks[id] = track
	}
	return snap
}

func (s *Store) restoreLocked(snap snapshot) {
	s.eventOrder = append([]string(nil), snap.eventOrder...)
	s.eventsByID = make(map[string]models.Event, len(snap.events))
	for id, event := range snap.events {
		s.eventsByID[id] = event.Clone()
	}
	s.trackOrder = append([]string(nil), snap.trackOrder...)
	s.tracksByID = make(map[string]models.Track, len(snap.tracks))
	for id, track := range snap.tracks {
		s.tracksByID[id] = track
	}

	// Evict selection entries that no longer resolve to a live entity.
	for id := range s.selectedEvents {
		if _, ok := s.eventsByID[id]; !ok {
			delete(s.selectedEvents, id)
		}
	}
	for id := range s.selectedTracks {
		if _, ok := s.tracksByID[id]; !ok {
			delete(s.selectedTracks, id)
		}
	}
}

// saveToHistoryPreLocked truncates any redo tail before a fresh mutation.
// commitHistoryLocked then records the post-mutation state. The stack is
// seeded with the empty state, so history[historyIndex] is always the
// current state and stepping the index walks through time.
func (s *Store) saveToHistoryPreLocked() {
	if s.historyIndex < len(s.history)-1 {
		s.history = s.history[:s.historyIndex+1]
	}
}

func (s *Store) commitHistoryLocked() {
	s.history = append(s.history, s.snapshotLocked())
	s.historyIndex = len(s.history) - 1
	if len(s.history) > s.historyLimit {
		overflow := len(s.history) - s.historyLimit
		s.history = s.history[overflow:]
		s.historyIndex -= overflow
	}
}

// CanUndo reports whether an earlier state is available.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyIndex > 0
}

// CanRedo reports whether a later state is available.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyIndex < len(s.history)-1
}

// Undo restores the previous snapshot. No-op at the history floor.
func (s *Store) Undo() {
	s.mu.Lock()
	if s.historyIndex <= 0 {
		s.mu.Unlock()
		return
	}
	s.historyIndex--
	s.restoreLocked(s.history[s.historyIndex])
	s.mu.Unlock()

	s.logger.Debug().Msg("undo")
	s.publishHistoryRestored()
}

// Redo re-applies the next snapshot. No-op at the history tip.
func (s *Store) Redo() {
	s.mu.Lock()
	if s.historyIndex >= len(s.history)-1 {
		s.mu.Unlock()
		return
	}
	s.historyIndex++
	s.restoreLocked(s.history[s.historyIndex])
	s.mu.Unlock()

	s.logger.Debug().Msg("redo")
	s.publishHistoryRestored()
}

func (s *Store) publishHistoryRestored() {
	s.publisher.Publish(events.Change{
		Topic:  events.TopicHistoryRestored,
		Entity: events.EntityKindHistory,
		Action: events.ActionRestore,
	})
	s.publisher.Publish(events.Change{
		Topic:  events.TopicDataChanged,
		Entity: events.EntityKindHistory,
		Action: events.ActionRestore,
	})
}
