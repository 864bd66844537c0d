package gui

// Style holds the metrics and colours (packed RGBA, see RGBA) every widget
// draws with. Themes override the colours by name.
type Style struct {
	FontScale     float32
	CharWidth     float32
	CharHeight    float32
	ItemSpacing   float32 // gap between consecutive items
	IndentSpacing float32 // per tree depth
	PanelPadding  float32
	ButtonPadding float32
	InputPadding  float32
	BorderSize    float32
	ScrollbarSize float32

	TextColor, TextDisabledColor, TextHighlightColor uint32

	PanelColor, PanelBorderColor uint32
	// Zero falls back to ButtonColor and TextColor.
	PanelHeaderBgColor, PanelHeaderTextColor uint32

	ButtonColor, ButtonHoveredColor, ButtonActiveColor uint32

	InputBgColor, InputFocusedBgColor, InputBorderColor uint32

	SelectedBgColor, SelectedTextColor, HoveredBgColor uint32

	SeparatorColor  uint32
	DropdownBgColor uint32 // menus and tooltips
	CheckMarkColor  uint32
	FocusColor      uint32

	TreeArrowColor          uint32
	TreeGuideColor          uint32 // zero hides indent guides
	SelectionBoxFillColor   uint32
	SelectionBoxBorderColor uint32
	DropTargetColor         uint32

	ScrollbarBgColor, ScrollbarGrabColor uint32
}

// DefaultStyle is a neutral dark grey style. The other built-in styles start
// from it.
func DefaultStyle() Style {
	grey := func(v, a uint8) uint32 { return RGBA(v, v, v, a) }
	return Style{
		FontScale:     1,
		CharWidth:     7,
		CharHeight:    13,
		ItemSpacing:   4,
		IndentSpacing: 16,
		PanelPadding:  8,
		ButtonPadding: 6,
		InputPadding:  2,
		BorderSize:    1,
		ScrollbarSize: 8,

		TextColor:          ColorWhite,
		TextDisabledColor:  ColorGray,
		TextHighlightColor: ColorYellow,

		PanelColor:         grey(20, 200),
		PanelBorderColor:   grey(80, 255),
		PanelHeaderBgColor: RGBA(40, 40, 45, 255),

		ButtonColor:        grey(50, 255),
		ButtonHoveredColor: grey(70, 255),
		ButtonActiveColor:  grey(90, 255),

		InputBgColor:        grey(30, 255),
		InputFocusedBgColor: RGBA(40, 40, 50, 255),
		InputBorderColor:    grey(100, 255),

		SelectedBgColor:   RGBA(50, 100, 150, 255),
		SelectedTextColor: ColorWhite,
		HoveredBgColor:    grey(60, 255),

		SeparatorColor:  grey(80, 255),
		DropdownBgColor: grey(25, 250),
		CheckMarkColor:  ColorWhite,
		FocusColor:      ColorCyan,

		TreeArrowColor:          grey(180, 255),
		TreeGuideColor:          grey(60, 255),
		SelectionBoxFillColor:   RGBA(50, 100, 150, 60),
		SelectionBoxBorderColor: RGBA(80, 140, 200, 200),
		DropTargetColor:         RGBA(200, 160, 40, 255),

		ScrollbarBgColor:   grey(30, 255),
		ScrollbarGrabColor: grey(80, 255),
	}
}

// GTAStyle pairs black panels with cyan accents and yellow highlights.
func GTAStyle() Style {
	s := DefaultStyle()
	s.TextHighlightColor = RGBA(255, 200, 0, 255)

	s.PanelColor = RGBA(0, 0, 0, 220)
	s.PanelBorderColor = RGBA(100, 100, 100, 255)
	s.PanelHeaderBgColor = RGBA(0, 60, 90, 255)
	s.PanelHeaderTextColor = RGBA(255, 200, 0, 255)

	s.ButtonColor = RGBA(40, 40, 40, 255)
	s.ButtonHoveredColor = RGBA(60, 80, 100, 255)
	s.ButtonActiveColor = RGBA(0, 150, 200, 255)

	s.SelectedBgColor = RGBA(0, 120, 180, 255)
	s.HoveredBgColor = RGBA(50, 70, 90, 255)

	s.InputBgColor = RGBA(20, 20, 20, 255)
	s.InputFocusedBgColor = RGBA(30, 40, 50, 255)
	s.InputBorderColor = RGBA(0, 150, 200, 255)
	s.SeparatorColor = RGBA(0, 150, 200, 128)

	s.TreeArrowColor = RGBA(255, 200, 0, 255)
	s.SelectionBoxFillColor = RGBA(0, 150, 200, 50)
	s.SelectionBoxBorderColor = RGBA(0, 150, 200, 220)
	s.DropTargetColor = RGBA(255, 200, 0, 90)
	return s
}

// DarkStyle is DefaultStyle with darker panels and a blue selection.
func DarkStyle() Style {
	s := DefaultStyle()
	s.PanelColor = RGBA(25, 25, 25, 240)
	s.PanelHeaderBgColor = RGBA(35, 35, 40, 255)
	s.ButtonColor = RGBA(45, 45, 45, 255)
	s.ButtonHoveredColor = RGBA(65, 65, 65, 255)
	s.SelectedBgColor = RGBA(65, 105, 225, 255) // Royal blue
	s.SelectionBoxFillColor = RGBA(65, 105, 225, 60)
	s.SelectionBoxBorderColor = RGBA(65, 105, 225, 220)
	return s
}

// LightStyle is dark text on light panels.
func LightStyle() Style {
	s := DefaultStyle()

	s.TextColor = RGBA(20, 20, 20, 255)
	s.TextDisabledColor = RGBA(150, 150, 150, 255)
	s.TextHighlightColor = RGBA(0, 100, 200, 255)

	s.PanelColor = RGBA(245, 245, 245, 250)
	s.PanelBorderColor = RGBA(200, 200, 200, 255)
	s.PanelHeaderBgColor = RGBA(220, 220, 225, 255)
	s.PanelHeaderTextColor = RGBA(40, 40, 40, 255)

	s.ButtonColor = RGBA(220, 220, 220, 255)
	s.ButtonHoveredColor = RGBA(200, 200, 200, 255)
	s.ButtonActiveColor = RGBA(180, 180, 180, 255)

	s.SelectedBgColor = RGBA(0, 120, 215, 255)
	s.HoveredBgColor = RGBA(230, 230, 230, 255)

	s.InputBgColor = ColorWhite
	s.InputFocusedBgColor = ColorWhite
	s.InputBorderColor = RGBA(150, 150, 150, 255)

	s.SeparatorColor = RGBA(200, 200, 200, 255)
	s.DropdownBgColor = ColorWhite

	s.TreeArrowColor = RGBA(80, 80, 80, 255)
	s.TreeGuideColor = RGBA(220, 220, 220, 255)
	s.SelectionBoxFillColor = RGBA(0, 120, 215, 50)
	s.SelectionBoxBorderColor = RGBA(0, 120, 215, 200)
	s.CheckMarkColor = RGBA(20, 20, 20, 255)

	s.ScrollbarBgColor = RGBA(240, 240, 240, 255)
	s.ScrollbarGrabColor = RGBA(180, 180, 180, 255)
	return s
}

// StyleByName looks up a built-in style: "default" (or ""), "dark", "light"
// or "gta". Theme files name their base style the same way.
func StyleByName(name string) (Style, bool) {
	switch name {
	case "", "default":
		return DefaultStyle(), true
	case "dark":
		return DarkStyle(), true
	case "light":
		return LightStyle(), true
	case "gta":
		return GTAStyle(), true
	}
	return Style{}, false
}
