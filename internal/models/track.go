// Package models defines the core domain types for trackline.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTrackColor is used when a track is created without a color.
const DefaultTrackColor = "#666666"

// Position is a 3D placement hint. The 2D renderer ignores it, but it is
// preserved so round-tripping a dataset does not lose it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Track is a horizontal lane grouping related events.
type Track struct {
	// ID is the unique identifier for the track.
	ID string `json:"id"`

	// Name is the human-friendly name shown in the lane label.
	Name string `json:"name"`

	// Description is free-form text about the track.
	Description string `json:"description,omitempty"`

	// Color is the lane swatch color as a hex string.
	Color string `json:"color"`

	// Position is the 3D placement hint (unused by the 2D core).
	Position Position `json:"position"`

	// Visible controls whether the track's lane is rendered.
	Visible bool `json:"visible"`

	// CreatedAt is when the track was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the track was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTrack creates a track with defaults applied. Zero-value fields on the
// seed are filled in; provided fields are kept. New tracks are always
// visible; hide them through an update.
func NewTrack(seed Track) Track {
	now := time.Now().UTC()
	track := seed
	track.Visible = true
	if track.ID == "" {
		track.ID = uuid.NewString()
	}
	if track.Name == "" {
		track.Name = "New Timeline"
	}
	if track.Color == "" {
		track.Color = DefaultTrackColor
	}
	if track.CreatedAt.IsZero() {
		track.CreatedAt = now
	}
	if track.UpdatedAt.IsZero() {
		track.UpdatedAt = now
	}
	return track
}

// Validate checks if the track is well-formed.
func (t *Track) Validate() error {
	validation := &ValidationErrors{}
	if t.ID == "" {
		validation.AddMessage("id", "track ID is required")
	}
	if isBlank(t.Name) {
		validation.AddMessage("name", "track name is required")
	}
	return validation.Err()
}
