// Package events provides change-notification publishing and subscription
// for trackline. The store publishes a Change for every mutation; views
// subscribe to the topics they care about and re-render on delivery.
package events

import (
	"sync"

	"github.com/tOgg1/trackline/internal/models"
)

// Topic names a notification channel.
type Topic string

const (
	// TopicDataChanged fires on every mutation, alongside the specific topic.
	TopicDataChanged Topic = "data.changed"

	// Event mutations
	TopicEventAdded   Topic = "event.added"
	TopicEventUpdated Topic = "event.updated"
	TopicEventDeleted Topic = "event.deleted"

	// Track mutations
	TopicTrackAdded   Topic = "track.added"
	TopicTrackUpdated Topic = "track.updated"
	TopicTrackDeleted Topic = "track.deleted"

	// UI state
	TopicSelectionChanged  Topic = "selection.changed"
	TopicHistoryRestored   Topic = "history.restored"
	TopicTabChanged        Topic = "tab.changed"
	TopicTimelineSelection Topic = "timeline.selection"
)

// EntityKind identifies the kind of entity a change relates to.
type EntityKind string

const (
	EntityKindEvent     EntityKind = "event"
	EntityKindTrack     EntityKind = "track"
	EntityKindHistory   EntityKind = "history"
	EntityKindSelection EntityKind = "selection"
	EntityKindTab       EntityKind = "tab"
)

// Action identifies what happened to the entity.
type Action string

const (
	ActionAdd     Action = "add"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionRestore Action = "restore"
)

// Change is the payload delivered to subscribers.
type Change struct {
	// Topic is the specific channel this change was published on.
	Topic Topic

	// Entity identifies what kind of entity changed.
	Entity EntityKind

	// Action identifies what happened.
	Action Action

	// EntityID is the id of the changed entity, when there is one.
	EntityID string

	// Event holds a snapshot of the affected event, when relevant.
	Event *models.Event

	// Track holds a snapshot of the affected track, when relevant.
	Track *models.Track

	// CascadeDeleted lists events removed as part of a track cascade delete.
	CascadeDeleted []models.Event

	// SelectedEvents and SelectedTracks carry the full selection sets
	// on selection.changed and timeline.selection.
	SelectedEvents []string
	SelectedTracks []string

	// FromTab and ToTab carry tab transitions on tab.changed.
	FromTab string
	ToTab   string
}

// Handler is a callback invoked when a change matches a subscription.
type Handler func(change Change)

// Filter defines criteria for matching changes.
type Filter struct {
	// Topics filters by topic (nil = all topics).
	Topics []Topic

	// Entities filters by entity kind (nil = all kinds).
	Entities []EntityKind

	// EntityID filters to a specific entity ID (empty = all).
	EntityID string
}

// Matches returns true if the change matches the filter criteria.
func (f *Filter) Matches(change Change) bool {
	if len(f.Topics) > 0 {
		matched := false
		for _, topic := range f.Topics {
			if change.Topic == topic {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Entities) > 0 {
		matched := false
		for _, kind := range f.Entities {
			if change.Entity == kind {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.EntityID != "" && change.EntityID != f.EntityID {
		return false
	}

	return true
}

// subscription represents an active subscription.
type subscription struct {
	id      string
	filter  Filter
	handler Handler
}

// Publisher defines the interface for change publishing and subscription.
type Publisher interface {
	// Publish delivers a change to all matching subscribers, synchronously,
	// before returning. Each matching handler is invoked exactly once per
	// publish; delivery order across subscribers is unspecified.
	Publish(change Change)

	// Subscribe registers a handler to receive changes matching the filter.
	// The id is used for later unsubscription.
	Subscribe(id string, filter Filter, handler Handler) error

	// Unsubscribe removes a subscription by ID.
	Unsubscribe(id string) error

	// SubscriberCount returns the number of active subscribers.
	SubscriberCount() int
}

// InMemoryPublisher implements Publisher using in-process pub/sub.
type InMemoryPublisher struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
}

// NewInMemoryPublisher creates a new in-memory change publisher.
func NewInMemoryPublisher() *InMemoryPublisher {
	return &InMemoryPublisher{
		subscriptions: make(map[string]*subscription),
	}
}

// Publish delivers a change to all matching subscribers.
func (p *InMemoryPublisher) Publish(change Change) {
	// Collect matching handlers under read lock
	p.mu.RLock()
	var handlers []Handler
	for _, sub := range p.subscriptions {
		if sub.filter.Matches(change) {
			handlers = append(handlers, sub.handler)
		}
	}
	p.mu.RUnlock()

	// Invoke handlers outside the lock to avoid deadlocks
	for _, handler := range handlers {
		handler(change)
	}
}

// Subscribe registers a handler to receive changes matching the filter.
func (p *InMemoryPublisher) Subscribe(id string, filter Filter, handler Handler) error {
	if id == "" {
		return ErrInvalidSubscriptionID
	}
	if handler == nil {
		return ErrNilHandler
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.subscriptions[id]; exists {
		return ErrSubscriptionExists
	}

	p.subscriptions[id] = &subscription{
		id:      id,
		filter:  filter,
		handler: handler,
	}

	return nil
}

// Unsubscribe removes a subscription by ID.
func (p *InMemoryPublisher) Unsubscribe(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.subscriptions[id]; !exists {
		return ErrSubscriptionNotFound
	}

	delete(p.subscriptions, id)
	return nil
}

// SubscriberCount returns the number of active subscribers.
func (p *InMemoryPublisher) SubscriberCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscriptions)
}

// Close removes all subscriptions.
func (p *InMemoryPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscriptions = make(map[string]*subscription)
}

// Errors for publisher operations.
var (
	ErrInvalidSubscriptionID = &PublisherError{Message: "subscription ID is required"}
	ErrNilHandler            = &PublisherError{Message: "handler cannot be nil"}
	ErrSubscriptionExists    = &PublisherError{Message: "subscription with this ID already exists"}
	ErrSubscriptionNotFound  = &PublisherError{Message: "subscription not found"}
)

// PublisherError represents an error from publisher operations.
type PublisherError struct {
	Message string
}

func (e *PublisherError) Error() string {
	return e.Message
}
