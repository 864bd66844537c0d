package gui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrThemeNotFound is returned when no theme file exists under any search path.
	ErrThemeNotFound = errors.New("theme not found")
	// ErrInvalidColor is returned for colour strings that cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")
)

// Theme is a named set of Style overrides loaded from TOML.
//
//	name = "nord"
//	base = "dark"
//
//	[colors]
//	text = "#eceff4"
//	selected_bg = "#5e81ac"
//	selection_box_fill = "#5e81ac40"
//
//	[sizes]
//	indent = 18
type Theme struct {
	Name   string             `toml:"name"`
	Base   string             `toml:"base"`
	Colors map[string]string  `toml:"colors"`
	Sizes  map[string]float32 `toml:"sizes"`
}

// colorFields maps TOML colour keys to Style fields.
var colorFields = map[string]func(*Style) *uint32{
	"text":                 func(s *Style) *uint32 { return &s.TextColor },
	"text_disabled":        func(s *Style) *uint32 { return &s.TextDisabledColor },
	"text_highlight":       func(s *Style) *uint32 { return &s.TextHighlightColor },
	"panel":                func(s *Style) *uint32 { return &s.PanelColor },
	"panel_border":         func(s *Style) *uint32 { return &s.PanelBorderColor },
	"panel_header_bg":      func(s *Style) *uint32 { return &s.PanelHeaderBgColor },
	"panel_header_text":    func(s *Style) *uint32 { return &s.PanelHeaderTextColor },
	"button":               func(s *Style) *uint32 { return &s.ButtonColor },
	"button_hovered":       func(s *Style) *uint32 { return &s.ButtonHoveredColor },
	"button_active":        func(s *Style) *uint32 { return &s.ButtonActiveColor },
	"selected_bg":          func(s *Style) *uint32 { return &s.SelectedBgColor },
	"selected_text":        func(s *Style) *uint32 { return &s.SelectedTextColor },
	"hovered_bg":           func(s *Style) *uint32 { return &s.HoveredBgColor },
	"input_bg":             func(s *Style) *uint32 { return &s.InputBgColor },
	"input_focused_bg":     func(s *Style) *uint32 { return &s.InputFocusedBgColor },
	"input_border":         func(s *Style) *uint32 { return &s.InputBorderColor },
	"separator":            func(s *Style) *uint32 { return &s.SeparatorColor },
	"dropdown_bg":          func(s *Style) *uint32 { return &s.DropdownBgColor },
	"tree_arrow":           func(s *Style) *uint32 { return &s.TreeArrowColor },
	"tree_guide":           func(s *Style) *uint32 { return &s.TreeGuideColor },
	"selection_box_fill":   func(s *Style) *uint32 { return &s.SelectionBoxFillColor },
	"selection_box_border": func(s *Style) *uint32 { return &s.SelectionBoxBorderColor },
	"drop_target":          func(s *Style) *uint32 { return &s.DropTargetColor },
	"check_mark":           func(s *Style) *uint32 { return &s.CheckMarkColor },
	"scrollbar_bg":         func(s *Style) *uint32 { return &s.ScrollbarBgColor },
	"scrollbar_grab":       func(s *Style) *uint32 { return &s.ScrollbarGrabColor },
	"focus":                func(s *Style) *uint32 { return &s.FocusColor },
}

// sizeFields maps TOML size keys to Style fields.
var sizeFields = map[string]func(*Style) *float32{
	"font_scale":    func(s *Style) *float32 { return &s.FontScale },
	"item_spacing":  func(s *Style) *float32 { return &s.ItemSpacing },
	"panel_padding": func(s *Style) *float32 { return &s.PanelPadding },
	"input_padding": func(s *Style) *float32 { return &s.InputPadding },
	"indent":        func(s *Style) *float32 { return &s.IndentSpacing },
	"border":        func(s *Style) *float32 { return &s.BorderSize },
	"scrollbar":     func(s *Style) *float32 { return &s.ScrollbarSize },
}

// ThemeDirs returns the directories searched for theme files, in order.
func ThemeDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "uiframework", "themes"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "uiframework", "themes"))
	}
	return dirs
}

// LoadTheme loads a theme by name from the first search directory that has it.
func LoadTheme(name string) (*Theme, error) {
	filename := name + ".toml"
	for _, dir := range ThemeDirs() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return LoadThemeFile(path)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}

// LoadThemeFile loads a theme from a TOML file.
func LoadThemeFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}
	t, err := ParseTheme(data)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

// ParseTheme decodes TOML theme data and validates every colour.
func ParseTheme(data []byte) (*Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	for key, value := range t.Colors {
		if _, ok := colorFields[key]; !ok {
			guiLogger.Warn("unknown theme color", "key", key)
			continue
		}
		if _, err := ParseColor(value); err != nil {
			return nil, fmt.Errorf("color %q: %w", key, err)
		}
	}
	if t.Base != "" {
		if _, ok := StyleByName(t.Base); !ok {
			return nil, fmt.Errorf("%w: base %s", ErrThemeNotFound, t.Base)
		}
	}
	return &t, nil
}

// Style builds the style described by the theme on top of its base style.
// A theme that sets selected_bg but not hovered_bg gets a hover colour
// blended between the panel and selection colours.
func (t *Theme) Style() Style {
	s, ok := StyleByName(t.Base)
	if !ok {
		s = DefaultStyle()
	}
	for key, value := range t.Colors {
		field, ok := colorFields[key]
		if !ok {
			continue
		}
		if c, err := ParseColor(value); err == nil {
			*field(&s) = c
		}
	}
	if _, hasHover := t.Colors["hovered_bg"]; !hasHover {
		if _, hasSel := t.Colors["selected_bg"]; hasSel {
			s.HoveredBgColor = BlendColors(s.PanelColor, s.SelectedBgColor, 0.35)
		}
	}
	for key, value := range t.Sizes {
		if field, ok := sizeFields[key]; ok && value > 0 {
			*field(&s) = value
		}
	}
	return s
}

// ParseColor parses "#RGB", "#RRGGBB", "#RRGGBBAA" or "rgb(r,g,b)" into a
// packed colour.
func ParseColor(str string) (uint32, error) {
	str = strings.TrimSpace(str)

	if strings.HasPrefix(str, "rgb(") && strings.HasSuffix(str, ")") {
		parts := strings.Split(str[4:len(str)-1], ",")
		if len(parts) != 3 {
			return 0, fmt.Errorf("%w: %s", ErrInvalidColor, str)
		}
		var rgb [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return 0, fmt.Errorf("%w: %s", ErrInvalidColor, str)
			}
			rgb[i] = uint8(v)
		}
		return RGBA(rgb[0], rgb[1], rgb[2], 255), nil
	}

	hex := strings.TrimPrefix(str, "#")
	alpha := uint8(255)
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidColor, str)
		}
		alpha = uint8(a)
		hex = hex[:6]
	case 6:
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidColor, str)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidColor, str)
	}
	r, g, b := c.RGB255()
	return RGBA(r, g, b, alpha), nil
}

// BlendColors mixes two packed colours in CIE L*a*b* space. t=0 returns a.
func BlendColors(a, b uint32, t float64) uint32 {
	ar, ag, ab, aa := UnpackRGBA(a)
	br, bg, bb, ba := UnpackRGBA(b)
	ca := colorful.Color{R: float64(ar) / 255, G: float64(ag) / 255, B: float64(ab) / 255}
	cb := colorful.Color{R: float64(br) / 255, G: float64(bg) / 255, B: float64(bb) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	alpha := float64(aa) + (float64(ba)-float64(aa))*t
	return RGBA(r, g, bl, uint8(alpha+0.5))
}
