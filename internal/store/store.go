// Package store owns the authoritative track and event collections.
// Every mutation runs snapshot -> mutate -> stamp -> notify, synchronously,
// in that order. Reads hand out defensive copies so callers cannot bypass
// the mutation path; all change flows through the publisher.
package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/trackline/internal/events"
	"github.com/tOgg1/trackline/internal/logging"
	"github.com/tOgg1/trackline/internal/models"
)

// DefaultHistoryLimit bounds the undo/redo snapshot stack.
const DefaultHistoryLimit = 50

// Tab names for the UI tab state.
const (
	TabTable    = "table"
	TabTimeline = "timeline"
)

// Store holds the authoritative collections, selection sets, tab state,
// and bounded undo/redo history. Construct with New and inject into every
// consumer; there is no package-level instance.
type Store struct {
	mu sync.Mutex

	eventOrder []string
	eventsByID map[string]models.Event
	trackOrder []string
	tracksByID map[string]models.Track

	selectedEvents map[string]struct{}
	selectedTracks map[string]struct{}

	activeTab string

	history      []snapshot
	historyIndex int
	historyLimit int

	publisher events.Publisher
	logger    zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPublisher sets the change publisher. Defaults to an in-memory one.
func WithPublisher(p events.Publisher) Option {
	return func(s *Store) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithHistoryLimit overrides the undo/redo snapshot bound.
func WithHistoryLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		eventsByID:     make(map[string]models.Event),
		tracksByID:     make(map[string]models.Track),
		selectedEvents: make(map[string]struct{}),
		selectedTracks: make(map[string]struct{}),
		activeTab:      TabTable,
		historyLimit:   DefaultHistoryLimit,
		publisher:      events.NewInMemoryPublisher(),
		logger:         logging.Component("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	// Seed history with the empty state so the first mutation is undoable.
	s.history = []snapshot{s.snapshotLocked()}
	s.historyIndex = 0
	return s
}

// Publisher exposes the change publisher for view subscriptions.
func (s *Store) Publisher() events.Publisher {
	return s.publisher
}

// Events returns all events in insertion order, as defensive copies.
func (s *Store) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, 0, len(s.eventOrder))
	for _, id := range s.eventOrder {
		out = append(out, s.eventsByID[id].Clone())
	}
	return out
}

// Tracks returns all tracks in insertion order, as defensive copies.
func (s *Store) Tracks() []models.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Track, 0, len(s.trackOrder))
	for _, id := range s.trackOrder {
		out = append(out, s.tracksByID[id])
	}
	return out
}

// Event returns the event with the given id, if present.
func (s *Store) Event(id string) (models.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.eventsByID[id]
	if !ok {
		return models.Event{}, false
	}
	return event.Clone(), true
}

// Track returns the track with the given id, if present.
func (s *Store) Track(id string) (models.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	track, ok := s.tracksByID[id]
	return track, ok
}

// EventsForTrack returns all events referencing the track, in insertion order.
func (s *Store) EventsForTrack(trackID string) []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventsForTrackLocked(trackID)
}

func (s *Store) eventsForTrackLocked(trackID string) []models.Event {
	var out []models.Event
	for _, id := range s.eventOrder {
		event := s.eventsByID[id]
		if event.TrackID == trackID {
			out = append(out, event.Clone())
		}
	}
	return out
}

// EventCount returns the number of events.
func (s *Store) EventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.eventOrder)
}

// TrackCount returns the number of tracks.
func (s *Store) TrackCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trackOrder)
}

// AddEvent inserts an event and notifies subscribers.
func (s *Store) AddEvent(event models.Event) {
	s.mu.Lock()
	s.saveToHistoryPreLocked()
	event.UpdatedAt = time.Now().UTC()
	if _, exists := s.eventsByID[event.ID]; !exists {
		s.eventOrder = append(s.eventOrder, event.ID)
	}
	s.eventsByID[event.ID] = event.Clone()
	s.commitHistoryLocked()
	snapshot := event.Clone()
	s.mu.Unlock()

	s.logger.Debug().Str("event_id", event.ID).Str("track_id", event.TrackID).Msg("event added")
	s.publisher.Publish(events.Change{
		Topic:    events.TopicEventAdded,
		Entity:   events.EntityKindEvent,
		Action:   events.ActionAdd,
		EntityID: event.ID,
		Event:    &snapshot,
	})
	s.publishDataChanged(events.EntityKindEvent, events.ActionAdd, event.ID, &snapshot, nil)
}

// UpdateEvent applies a partial update to an event. Unknown ids are a no-op.
func (s *Store) UpdateEvent(id string, patch EventPatch) {
	s.mu.Lock()
	event, ok := s.eventsByID[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.saveToHistoryPreLocked()
	patch.applyTo(&event)
	event.UpdatedAt = time.Now().UTC()
	s.eventsByID[id] = event.Clone()
	s.commitHistoryLocked()
	snapshot := event.Clone()
	s.mu.Unlock()

	s.publisher.Publish(events.Change{
		Topic:    events.TopicEventUpdated,
		Entity:   events.EntityKindEvent,
		Action:   events.ActionUpdate,
		EntityID: id,
		Event:    &snapshot,
	})
	s.publishDataChanged(events.EntityKindEvent, events.ActionUpdate, id, &snapshot, nil)
}

// DeleteEvent removes an event and evicts it from the selection set.
// Unknown ids are a no-op.
func (s *Store) DeleteEvent(id string) {
	s.mu.Lock()
	event, ok := s.eventsByID[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.saveToHistoryPreLocked()
	delete(s.eventsByID, id)
	s.eventOrder = removeID(s.eventOrder, id)
	delete(s.selectedEvents, id)
	s.commitHistoryLocked()
	snapshot := event.Clone()
	s.mu.Unlock()

	s.publisher.Publish(events.Change{
		Topic:    events.TopicEventDeleted,
		Entity:   events.EntityKindEvent,
		Action:   events.ActionDelete,
		EntityID: id,
		Event:    &snapshot,
	})
	s.publishDataChanged(events.EntityKindEvent, events.ActionDelete, id, &snapshot, nil)
}

// AddTrack inserts a track and notifies subscribers.
func (s *Store) AddTrack(track models.Track) {
	s.mu.Lock()
	s.saveToHistoryPreLocked()
	track.UpdatedAt = time.Now().UTC()
	if _, exists := s.tracksByID[track.ID]; !exists {
		s.trackOrder = append(s.trackOrder, track.ID)
	}
	s.tracksByID[track.ID] = track
	s.commitHistoryLocked()
	s.mu.Unlock()

	s.logger.Debug().Str("track_id", track.ID).Str("name", track.Name).Msg("track added")
	s.publisher.Publish(events.Change{
		Topic:    events.TopicTrackAdded,
		Entity:   events.EntityKindTrack,
		Action:   events.ActionAdd,
		EntityID: track.ID,
		Track:    &track,
	})
	s.publishDataChanged(events.EntityKindTrack, events.ActionAdd, track.ID, nil, &track)
}

// UpdateTrack applies a partial update to a track. Unknown ids are a no-op.
func (s *Store) UpdateTrack(id string, patch TrackPatch) {
	s.mu.Lock()
	track, ok := s.tracksByID[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.saveToHistoryPreLocked()
	patch.applyTo(&track)
	track.UpdatedAt = time.Now().UTC()
	s.tracksByID[id] = track
	s.commitHistoryLocked()
	s.mu.Unlock()

	s.publisher.Publish(events.Change{
		Topic:    events.TopicTrackUpdated,
		Entity:   events.EntityKindTrack,
		Action:   events.ActionUpdate,
		EntityID: id,
		Track:    &track,
	})
	s.publishDataChanged(events.EntityKindTrack, events.ActionUpdate, id, nil, &track)
}

// DeleteTrack removes a track and cascades to every event referencing it.
// The track and its cascade-deleted events are purged from the selection
// sets and reported in one combined notification. Unknown ids are a no-op.
func (s *Store) DeleteTrack(id string) {
	s.mu.Lock()
	track, ok := s.tracksByID[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.saveToHistoryPreLocked()

	cascade := s.eventsForTrackLocked(id)
	for _, event := range cascade {
		delete(s.eventsByID, event.ID)
		s.eventOrder = removeID(s.eventOrder, event.ID)
		delete(s.selectedEvents, event.ID)
	}

	delete(s.tracksByID, id)
	s.trackOrder = removeID(s.trackOrder, id)
	delete(s.selectedTracks, id)
	s.commitHistoryLocked()
	s.mu.Unlock()

	s.logger.Debug().Str("track_id", id).Int("cascade_deleted", len(cascade)).Msg("track deleted")
	s.publisher.Publish(events.Change{
		Topic:          events.TopicTrackDeleted,
		Entity:         events.EntityKindTrack,
		Action:         events.ActionDelete,
		EntityID:       id,
		Track:          &track,
		CascadeDeleted: cascade,
	})
	s.publishDataChanged(events.EntityKindTrack, events.ActionDelete, id, nil, &track)
}

// SelectEvent adds an event to the selection set. Unknown ids are a no-op
// so the selection set can never reference an absent event.
func (s *Store) SelectEvent(id string) {
	s.mu.Lock()
	if _, ok := s.eventsByID[id]; !ok {
		s.mu.Unlock()
		return
	}
	s.selectedEvents[id] = struct{}{}
	change := s.selectionChangeLocked()
	s.mu.Unlock()
	s.publisher.Publish(change)
}

// DeselectEvent removes an event from the selection set.
func (s *Store) DeselectEvent(id string) {
	s.mu.Lock()
	if _, ok := s.selectedEvents[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.selectedEvents, id)
	change := s.selectionChangeLocked()
	s.mu.Unlock()
	s.publisher.Publish(change)
}

// SelectTrack adds a track to the selection set. Unknown ids are a no-op.
func (s *Store) SelectTrack(id string) {
	s.mu.Lock()
	if _, ok := s.tracksByID[id]; !ok {
		s.mu.Unlock()
		return
	}
	s.selectedTracks[id] = struct{}{}
	change := s.selectionChangeLocked()
	s.mu.Unlock()
	s.publisher.Publish(change)
}

// ClearSelection empties both selection sets.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selectedEvents = make(map[string]struct{})
	s.selectedTracks = make(map[string]struct{})
	change := s.selectionChangeLocked()
	s.mu.Unlock()
	s.publisher.Publish(change)
}

// SelectedEvents returns the selected event ids, in insertion order of the
// event collection.
func (s *Store) SelectedEvents() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedEventsLocked()
}

func (s *Store) selectedEventsLocked() []string {
	out := make([]string, 0, len(s.selectedEvents))
	for _, id := range s.eventOrder {
		if _, ok := s.selectedEvents[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// SelectedTracks returns the selected track ids, in insertion order of the
// track collection.
func (s *Store) SelectedTracks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedTracksLocked()
}

func (s *Store) selectedTracksLocked() []string {
	out := make([]string, 0, len(s.selectedTracks))
	for _, id := range s.trackOrder {
		if _, ok := s.selectedTracks[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// IsEventSelected reports whether the event is in the selection set.
func (s *Store) IsEventSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selectedEvents[id]
	return ok
}

func (s *Store) selectionChangeLocked() events.Change {
	return events.Change{
		Topic:          events.TopicSelectionChanged,
		Entity:         events.EntityKindSelection,
		SelectedEvents: s.selectedEventsLocked(),
		SelectedTracks: s.selectedTracksLocked(),
	}
}

// ActiveTab returns the current tab name.
func (s *Store) ActiveTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

// SwitchTab changes the active tab and notifies subscribers.
func (s *Store) SwitchTab(name string) {
	s.mu.Lock()
	from := s.activeTab
	s.activeTab = name
	s.mu.Unlock()

	s.publisher.Publish(events.Change{
		Topic:   events.TopicTabChanged,
		Entity:  events.EntityKindTab,
		FromTab: from,
		ToTab:   name,
	})
}

// PublishTimelineSelection reports a timeline-driven selection change to
// external observers (e.g. the table view).
func (s *Store) PublishTimelineSelection(clickedID string) {
	s.mu.Lock()
	change := events.Change{
		Topic:          events.TopicTimelineSelection,
		Entity:         events.EntityKindSelection,
		EntityID:       clickedID,
		SelectedEvents: s.selectedEventsLocked(),
		SelectedTracks: s.selectedTracksLocked(),
	}
	s.mu.Unlock()
	s.publisher.Publish(change)
}

func (s *Store) publishDataChanged(kind events.EntityKind, action events.Action, id string, event *models.Event, track *models.Track) {
	s.publisher.Publish(events.Change{
		Topic:    events.TopicDataChanged,
		Entity:   kind,
		Action:   action,
		EntityID: id,
		Event:    event,
		Track:    track,
	})
}

func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
