package styles

// LightTheme is an alternative palette for light terminals.
var LightTheme = Theme{
	Name: "light",
	Base: BaseColors{
		Background: "255",
		Foreground: "235",
		Muted:      "244",
		Accent:     "27",
		Border:     "250",
	},
	Chrome: ChromeColors{
		Header:       "33",
		Footer:       "39",
		ActiveTab:    "27",
		InactiveTab:  "246",
		SelectedItem: "27",
	},
	Timeline: TimelineColors{
		Grid:          "252",
		Axis:          "242",
		LaneLabel:     "235",
		EventDefault:  "27",
		EventHover:    "33",
		EventSelected: "166",
		Tooltip:       "237",
	},
	Table: TableColors{
		Header:      "33",
		Row:         "235",
		SelectedRow: "166",
		CursorRow:   "27",
		FilterMatch: "130",
	},
}
