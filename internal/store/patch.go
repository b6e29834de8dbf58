package store

import (
	"time"

	"github.com/tOgg1/trackline/internal/models"
)

// EventPatch is a partial event update. Nil fields are left unchanged;
// ClearEnd resets an interval event back to a point event.
type EventPatch struct {
	TrackID         *string
	Start           *time.Time
	End             *time.Time
	ClearEnd        bool
	Title           *string
	Description     *string
	Category        *string
	Color           *string
	Icon            *string
	AIGenerated     *bool
	ConfidenceScore *float64
	Source          *string
	Tags            []string
	Metadata        map[string]string
}

func (p EventPatch) applyTo(event *models.Event) {
	if p.TrackID != nil {
		event.TrackID = *p.TrackID
	}
	if p.Start != nil {
		event.Start = *p.Start
	}
	if p.End != nil {
		end := *p.End
		event.End = &end
	}
	if p.ClearEnd {
		event.End = nil
	}
	if p.Title != nil {
		event.Title = *p.Title
	}
	if p.Description != nil {
		event.Description = *p.Description
	}
	if p.Category != nil {
		event.Category = *p.Category
	}
	if p.Color != nil {
		event.Color = *p.Color
	}
	if p.Icon != nil {
		event.Icon = *p.Icon
	}
	if p.AIGenerated != nil {
		event.AIGenerated = *p.AIGenerated
	}
	if p.ConfidenceScore != nil {
		event.ConfidenceScore = *p.ConfidenceScore
	}
	if p.Source != nil {
		event.Source = *p.Source
	}
	if p.Tags != nil {
		event.Tags = append([]string(nil), p.Tags...)
	}
	if p.Metadata != nil {
		event.Metadata = make(map[string]string, len(p.Metadata))
		for k, v := range p.Metadata {
			event.Metadata[k] = v
		}
	}
}

// TrackPatch is a partial track update. Nil fields are left unchanged.
type TrackPatch struct {
	Name        *string
	Description *string
	Color       *string
	Position    *models.Position
	Visible     *bool
}

func (p TrackPatch) applyTo(track *models.Track) {
	if p.Name != nil {
		track.Name = *p.Name
	}
	if p.Description != nil {
		track.Description = *p.Description
	}
	if p.Color != nil {
		track.Color = *p.Color
	}
	if p.Position != nil {
		track.Position = *p.Position
	}
	if p.Visible != nil {
		track.Visible = *p.Visible
	}
}

// StringPtr returns a pointer to s, for building patches.
func StringPtr(s string) *string { return &s }

// TimePtr returns a pointer to t, for building patches.
func TimePtr(t time.Time) *time.Time { return &t }

// BoolPtr returns a pointer to b, for building patches.
func BoolPtr(b bool) *bool { return &b }

// Float64Ptr returns a pointer to f, for building patches.
func Float64Ptr(f float64) *float64 { return &f }
