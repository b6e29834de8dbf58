// Package styles defines the color themes for the trackline TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// BaseColors defines global UI colors.
type BaseColors struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Border     string
}

// ChromeColors defines non-content UI colors.
type ChromeColors struct {
	Header       string
	Footer       string
	ActiveTab    string
	InactiveTab  string
	SelectedItem string
}

// TimelineColors defines colors for the timeline surface.
type TimelineColors struct {
	Grid          string
	Axis          string
	LaneLabel     string
	EventDefault  string
	EventHover    string
	EventSelected string
	Tooltip       string
}

// TableColors defines colors for the event table.
type TableColors struct {
	Header      string
	Row         string
	SelectedRow string
	CursorRow   string
	FilterMatch string
}

// Theme defines the trackline TUI style tokens.
type Theme struct {
	Name string

	Base     BaseColors
	Chrome   ChromeColors
	Timeline TimelineColors
	Table    TableColors
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default": DefaultTheme,
	"light":   LightTheme,
}

// Resolve returns the named theme, falling back to the default palette.
func Resolve(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return DefaultTheme
}

// BaseStyle returns the theme's base foreground/background style.
func (t Theme) BaseStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Foreground)).Background(lipgloss.Color(t.Base.Background))
}

// MutedStyle returns a dimmed style for secondary text.
func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Muted))
}

// AccentStyle returns the highlight style.
func (t Theme) AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Base.Accent))
}
