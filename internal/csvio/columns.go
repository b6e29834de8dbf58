// Package csvio implements CSV export and import of events and tracks,
// driven by the same column schemas the table UI renders from.
package csvio

// ColumnType describes how a column's values are edited and converted.
type ColumnType string

const (
	TypeText     ColumnType = "text"
	TypeDate     ColumnType = "date"
	TypeNumber   ColumnType = "number"
	TypeBoolean  ColumnType = "boolean"
	TypeSelect   ColumnType = "select"
	TypeColor    ColumnType = "color"
	TypeTextarea ColumnType = "textarea"
	TypeComputed ColumnType = "computed"
)

// Column is one table column: a data key, a display label, the value
// type, whether users may edit it, and the rendered width in pixels.
type Column struct {
	Key      string
	Label    string
	Type     ColumnType
	Editable bool
	Width    int
}

// EventColumns is the schema for the event table, in display order.
func EventColumns() []Column {
	return []Column{
		{Key: "title", Label: "Title", Type: TypeText, Editable: true, Width: 200},
		{Key: "timeline_id", Label: "Track", Type: TypeSelect, Editable: true, Width: 150},
		{Key: "start_date", Label: "Start Date", Type: TypeDate, Editable: true, Width: 130},
		{Key: "end_date", Label: "End Date", Type: TypeDate, Editable: true, Width: 130},
		{Key: "category", Label: "Category", Type: TypeText, Editable: true, Width: 120},
		{Key: "description", Label: "Description", Type: TypeTextarea, Editable: true, Width: 250},
		{Key: "color", Label: "Color", Type: TypeColor, Editable: true, Width: 80},
		{Key: "ai_generated", Label: "AI Generated", Type: TypeBoolean, Editable: false, Width: 100},
		{Key: "confidence_score", Label: "Confidence", Type: TypeNumber, Editable: true, Width: 100},
	}
}

// TrackColumns is the schema for the track table, in display order.
func TrackColumns() []Column {
	return []Column{
		{Key: "name", Label: "Name", Type: TypeText, Editable: true, Width: 200},
		{Key: "description", Label: "Description", Type: TypeTextarea, Editable: true, Width: 300},
		{Key: "color", Label: "Color", Type: TypeColor, Editable: true, Width: 100},
		{Key: "visible", Label: "Visible", Type: TypeBoolean, Editable: true, Width: 80},
		{Key: "event_count", Label: "Events", Type: TypeComputed, Editable: false, Width: 80},
	}
}
