package forms

import (
	"image"
	"slices"
)

// InputType mirrors the type attribute of a native text input.
type InputType string

const (
	TypeText     InputType = "text"
	TypePassword InputType = "password"
	TypeNumber   InputType = "number"
	TypeEmail    InputType = "email"
	TypeTel      InputType = "tel"
)

// Align is a horizontal alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// VAlign is a vertical alignment of text inside the textbox.
type VAlign string

const (
	VAlignNone   VAlign = "none"
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
	VAlignBottom VAlign = "bottom"
)

// TextStyle is the nested text sub-record of a Config.
type TextStyle struct {
	Font            string // CSS font shorthand, or "<size>px <name>" for bitmap fonts
	Fill            string
	Stroke          string
	StrokeThickness float64
	Align           Align
	Bitmap          bool // Font names a bitmap font registered on the Manager
}

// merge copies the non-zero fields of src into s.
func (s *TextStyle) merge(src TextStyle) {
	if src.Font != "" {
		s.Font = src.Font
	}
	if src.Fill != "" {
		s.Fill = src.Fill
	}
	if src.Stroke != "" {
		s.Stroke = src.Stroke
	}
	if src.StrokeThickness != 0 {
		s.StrokeThickness = src.StrokeThickness
	}
	if src.Align != "" {
		s.Align = src.Align
	}
	if src.Bitmap {
		s.Bitmap = true
	}
}

// GradientStop is one background gradient stop. A negative Offset spaces the
// stop evenly by its position in the list.
type GradientStop struct {
	Offset float64
	Color  string
}

// SelectOption is one entry of a Select.
type SelectOption struct {
	Value string // key
	Text  string // label
}

// Hooks are the user callbacks a widget invokes. Nil hooks are skipped.
type Hooks struct {
	OnSubmit    func(w Widget)
	OnKeyDown   func(ev *KeyEvent, w Widget)
	OnKeyUp     func(ev *KeyEvent, w Widget)
	OnFocus     func(w Widget)
	OnBlur      func(w Widget)
	OnMouseDown func(ev *PointerEvent, w Widget)
	OnMouseUp   func(ev *PointerEvent, w Widget)
	OnChange    func(w Widget)
}

// Config is the merged configuration of one widget.
//
// A widget's Config is built by applying, in order, the built-in defaults, the
// options of the named style preset (WithStyle) and the options passed to the
// constructor. Later options overwrite earlier ones field by field; text
// options touch single TextStyle fields so the text sub-record merges.
type Config struct {
	Style string // preset key

	Value       string
	Placeholder string
	MaxLength   int // 0 means unlimited
	Type        InputType
	Readonly    bool
	Min, Max    *float64 // number inputs only
	TabIndex    int

	Width        float64
	Height       float64 // 0 derives the height from the font
	Padding      float64
	BorderWidth  float64
	BorderColor  string
	BorderRadius [4]float64 // top-left, top-right, bottom-right, bottom-left

	BackgroundColor    string
	BackgroundGradient []GradientStop
	BackgroundImage    image.Image
	BoxShadow          string
	InnerShadow        string

	Align  Align
	VAlign VAlign

	Text             TextStyle
	PlaceholderColor string
	SelectionColor   string

	// Select
	Options    []SelectOption
	Selected   string
	OptionText TextStyle

	Hooks

	extensions map[string]any
}

// clone returns a deep copy; slices and the extension map are not shared.
func (c Config) clone() Config {
	out := c
	out.BackgroundGradient = slices.Clone(c.BackgroundGradient)
	out.Options = slices.Clone(c.Options)
	if c.Min != nil {
		v := *c.Min
		out.Min = &v
	}
	if c.Max != nil {
		v := *c.Max
		out.Max = &v
	}
	if c.extensions != nil {
		out.extensions = make(map[string]any, len(c.extensions))
		for k, v := range c.extensions {
			out.extensions[k] = v
		}
	}
	return out
}

// DefaultConfig returns the built-in defaults shared by all widgets.
func DefaultConfig() Config {
	return Config{
		Type:             TypeText,
		Width:            170,
		Padding:          5,
		BorderColor:      "#000",
		BorderWidth:      1,
		BorderRadius:     [4]float64{3, 3, 3, 3},
		BackgroundColor:  "#fff",
		BoxShadow:        "1px 1px 0px rgba(0, 0, 0, 0.1)",
		InnerShadow:      "0px 0px 4px rgba(0, 0, 0, 0.4)",
		Align:            AlignCenter,
		VAlign:           VAlignMiddle,
		PlaceholderColor: "#bfbebd",
		SelectionColor:   "rgba(179, 212, 253, 0.8)",
		Text: TextStyle{
			Font:   "14px Arial",
			Fill:   "#000",
			Align:  AlignLeft,
			Stroke: "#000",
		},
		OptionText: TextStyle{
			Font: "14px Arial",
			Fill: "#000",
		},
	}
}

// buildConfig merges defaults, the preset named by the user options and the
// user options themselves.
func buildConfig(defaults Config, styles *StyleRegistry, opts []Option) Config {
	var requested Config
	for _, opt := range opts {
		opt(&requested)
	}

	cfg := defaults.clone()
	if requested.Style != "" && styles != nil {
		for _, opt := range styles.Lookup(requested.Style) {
			opt(&cfg)
		}
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
