package styles

// DefaultTheme is the baseline dark palette for the trackline TUI.
var DefaultTheme = Theme{
	Name: "default",
	Base: BaseColors{
		Background: "234",
		Foreground: "252",
		Muted:      "245",
		Accent:     "75",
		Border:     "240",
	},
	Chrome: ChromeColors{
		Header:       "111",
		Footer:       "110",
		ActiveTab:    "75",
		InactiveTab:  "245",
		SelectedItem: "75",
	},
	Timeline: TimelineColors{
		Grid:          "238",
		Axis:          "246",
		LaneLabel:     "252",
		EventDefault:  "39",
		EventHover:    "81",
		EventSelected: "214",
		Tooltip:       "250",
	},
	Table: TableColors{
		Header:      "111",
		Row:         "252",
		SelectedRow: "214",
		CursorRow:   "75",
		FilterMatch: "220",
	},
}
