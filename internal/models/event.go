package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultEventColor is used when an event is created without a color.
const DefaultEventColor = "#007acc"

// Event is a dated item, point or interval, belonging to a track.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// TrackID references the track this event belongs to.
	TrackID string `json:"timeline_id"`

	// Start is when the event begins. Always required.
	Start time.Time `json:"start_date"`

	// End is when the event finishes. Nil for point-in-time events.
	End *time.Time `json:"end_date,omitempty"`

	// Title is the short label drawn inside the event bar.
	Title string `json:"title"`

	// Description is free-form text shown in the tooltip.
	Description string `json:"description,omitempty"`

	// Category is a free-form grouping label.
	Category string `json:"category,omitempty"`

	// Color is the bar color as a hex string.
	Color string `json:"color"`

	// Icon is an optional glyph name.
	Icon string `json:"icon,omitempty"`

	// AIGenerated marks events produced by automated extraction.
	AIGenerated bool `json:"ai_generated"`

	// ConfidenceScore is the extraction confidence in [0, 1].
	ConfidenceScore float64 `json:"confidence_score"`

	// Source records where the event came from.
	Source string `json:"source,omitempty"`

	// Tags are free-form labels.
	Tags []string `json:"tags,omitempty"`

	// Metadata holds additional context.
	Metadata map[string]string `json:"metadata,omitempty"`

	// CreatedAt is when the event was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the event was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent creates an event with defaults applied. Zero-value fields on the
// seed are filled in; provided fields are kept.
func NewEvent(seed Event) Event {
	now := time.Now().UTC()
	event := seed
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.TrackID == "" {
		event.TrackID = "default"
	}
	if event.Start.IsZero() {
		event.Start = now
	}
	if event.Title == "" {
		event.Title = "Untitled Event"
	}
	if event.Category == "" {
		event.Category = "general"
	}
	if event.Color == "" {
		event.Color = DefaultEventColor
	}
	if event.ConfidenceScore == 0 {
		event.ConfidenceScore = 1.0
	}
	if event.Source == "" {
		event.Source = "manual"
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	if event.UpdatedAt.IsZero() {
		event.UpdatedAt = now
	}
	return event
}

// IsPoint reports whether the event has no end instant.
func (e *Event) IsPoint() bool {
	return e.End == nil
}

// EffectiveEnd returns the end instant, or the start for point events.
func (e *Event) EffectiveEnd() time.Time {
	if e.End != nil {
		return *e.End
	}
	return e.Start
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	out := e
	if e.End != nil {
		end := *e.End
		out.End = &end
	}
	if len(e.Tags) > 0 {
		out.Tags = append([]string(nil), e.Tags...)
	}
	if e.Metadata != nil {
		out.Metadata = make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Validate checks if the event is well-formed.
func (e *Event) Validate() error {
	validation := &ValidationErrors{}
	if e.ID == "" {
		validation.AddMessage("id", "event ID is required")
	}
	if e.TrackID == "" {
		validation.AddMessage("timeline_id", "track ID is required")
	}
	if e.Start.IsZero() {
		validation.AddMessage("start_date", "valid start date is required")
	}
	if isBlank(e.Title) {
		validation.AddMessage("title", "event title is required")
	}
	if e.ConfidenceScore < 0 || e.ConfidenceScore > 1 {
		validation.AddMessage("confidence_score", "confidence score must be between 0 and 1")
	}
	return validation.Err()
}
