package forms

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// ErrUnknownStyle is returned when a preset extends a preset that does not exist.
var ErrUnknownStyle = errors.New("unknown style")

// StyleRegistry holds named, reusable option presets.
//
// Presets are copied on registration and on lookup, so a caller mutating the
// slice it passed in or got back never changes the stored preset.
type StyleRegistry struct {
	presets map[string][]Option
}

// NewStyleRegistry creates an empty registry.
func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{presets: make(map[string][]Option)}
}

// Register stores opts under key, replacing any previous preset.
func (r *StyleRegistry) Register(key string, opts ...Option) {
	r.presets[key] = slices.Clone(opts)
}

// Lookup returns a copy of the preset, or nil if key is unknown.
func (r *StyleRegistry) Lookup(key string) []Option {
	opts, ok := r.presets[key]
	if !ok {
		return nil
	}
	return slices.Clone(opts)
}

// Has reports whether a preset is registered under key.
func (r *StyleRegistry) Has(key string) bool {
	_, ok := r.presets[key]
	return ok
}

// Remove deletes the preset.
func (r *StyleRegistry) Remove(key string) {
	delete(r.presets, key)
}

// Keys returns the registered preset names in sorted order.
func (r *StyleRegistry) Keys() []string {
	keys := slices.Collect(maps.Keys(r.presets))
	sort.Strings(keys)
	return keys
}

// TextStyleSpec is the TOML form of a TextStyle.
type TextStyleSpec struct {
	Font            *string  `toml:"font"`
	Bitmap          *bool    `toml:"bitmap"`
	Fill            *string  `toml:"fill"`
	Stroke          *string  `toml:"stroke"`
	StrokeThickness *float64 `toml:"stroke_thickness"`
	Align           *string  `toml:"align"`
}

func (s *TextStyleSpec) apply(dst *TextStyle) {
	if s == nil {
		return
	}
	if s.Font != nil {
		dst.Font = *s.Font
		dst.Bitmap = false
	}
	if s.Bitmap != nil {
		dst.Bitmap = *s.Bitmap
	}
	if s.Fill != nil {
		dst.Fill = *s.Fill
	}
	if s.Stroke != nil {
		dst.Stroke = *s.Stroke
	}
	if s.StrokeThickness != nil {
		dst.StrokeThickness = *s.StrokeThickness
	}
	if s.Align != nil {
		dst.Align = Align(*s.Align)
	}
}

// StyleSpec is one preset as written in a TOML style sheet. Absent keys
// leave the corresponding field untouched.
//
//	[login]
//	width = 200
//	padding = 8
//	border_radius = [6, 6, 6, 6]
//	background_gradient = ["#fff", "#eee"]
//	text = { font = "16px Go", fill = "#222" }
//
//	[login_error]
//	extends = "login"
//	border_color = "#c00"
type StyleSpec struct {
	Extends string `toml:"extends"`

	Placeholder *string  `toml:"placeholder"`
	MaxLength   *int     `toml:"max_length"`
	Type        *string  `toml:"type"`
	Readonly    *bool    `toml:"readonly"`
	Min         *float64 `toml:"min"`
	Max         *float64 `toml:"max"`
	TabIndex    *int     `toml:"tab_index"`

	Width        *float64       `toml:"width"`
	Height       *float64       `toml:"height"`
	Padding      *float64       `toml:"padding"`
	BorderWidth  *float64       `toml:"border_width"`
	BorderColor  *string        `toml:"border_color"`
	BorderRadius []float64      `toml:"border_radius"`
	Background   *string        `toml:"background_color"`
	Gradient     []string       `toml:"background_gradient"`
	BoxShadow    *string        `toml:"box_shadow"`
	InnerShadow  *string        `toml:"inner_shadow"`
	Align        *string        `toml:"align"`
	VAlign       *string        `toml:"valign"`
	Text         *TextStyleSpec `toml:"text"`
	OptionText   *TextStyleSpec `toml:"option_text"`

	PlaceholderColor *string `toml:"placeholder_color"`
	SelectionColor   *string `toml:"selection_color"`
}

// Option converts the StyleSpec into a single option that sets every present key.
func (s StyleSpec) Option() Option {
	return func(c *Config) {
		if s.Placeholder != nil {
			c.Placeholder = *s.Placeholder
		}
		if s.MaxLength != nil {
			c.MaxLength = max(*s.MaxLength, 0)
		}
		if s.Type != nil {
			c.Type = InputType(*s.Type)
		}
		if s.Readonly != nil {
			c.Readonly = *s.Readonly
		}
		if s.Min != nil {
			v := *s.Min
			c.Min = &v
		}
		if s.Max != nil {
			v := *s.Max
			c.Max = &v
		}
		if s.TabIndex != nil {
			c.TabIndex = *s.TabIndex
		}
		if s.Width != nil {
			c.Width = *s.Width
		}
		if s.Height != nil {
			c.Height = *s.Height
		}
		if s.Padding != nil {
			c.Padding = *s.Padding
		}
		if s.BorderWidth != nil {
			c.BorderWidth = *s.BorderWidth
		}
		if s.BorderColor != nil {
			c.BorderColor = *s.BorderColor
		}
		switch len(s.BorderRadius) {
		case 0:
		case 1:
			r := s.BorderRadius[0]
			c.BorderRadius = [4]float64{r, r, r, r}
		default:
			var radii [4]float64
			for i := range radii {
				radii[i] = s.BorderRadius[min(i, len(s.BorderRadius)-1)]
			}
			c.BorderRadius = radii
		}
		if s.Background != nil {
			c.BackgroundColor = *s.Background
		}
		if s.Gradient != nil {
			WithBackgroundGradient(s.Gradient...)(c)
		}
		if s.BoxShadow != nil {
			c.BoxShadow = *s.BoxShadow
		}
		if s.InnerShadow != nil {
			c.InnerShadow = *s.InnerShadow
		}
		if s.Align != nil {
			c.Align = Align(*s.Align)
		}
		if s.VAlign != nil {
			c.VAlign = VAlign(*s.VAlign)
		}
		s.Text.apply(&c.Text)
		s.OptionText.apply(&c.OptionText)
		if s.PlaceholderColor != nil {
			c.PlaceholderColor = *s.PlaceholderColor
		}
		if s.SelectionColor != nil {
			c.SelectionColor = *s.SelectionColor
		}
	}
}

// Load decodes a TOML style sheet and registers one preset per table.
// A preset's options are prefixed with those of the preset it extends, which
// may be defined earlier in the same sheet or already registered.
func (r *StyleRegistry) Load(rd io.Reader) error {
	var sheet map[string]StyleSpec
	if err := toml.NewDecoder(rd).Decode(&sheet); err != nil {
		return fmt.Errorf("failed to decode style sheet: %w", err)
	}

	resolved := make(map[string][]Option, len(sheet))
	var resolve func(key string, seen map[string]bool) ([]Option, error)
	resolve = func(key string, seen map[string]bool) ([]Option, error) {
		if opts, ok := resolved[key]; ok {
			return opts, nil
		}
		spec, ok := sheet[key]
		if !ok {
			if opts := r.Lookup(key); opts != nil {
				return opts, nil
			}
			return nil, fmt.Errorf("style %q: %w", key, ErrUnknownStyle)
		}
		if seen[key] {
			return nil, fmt.Errorf("style %q extends itself", key)
		}
		seen[key] = true

		var opts []Option
		if spec.Extends != "" {
			base, err := resolve(spec.Extends, seen)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %q: %w", key, err)
			}
			opts = slices.Clone(base)
		}
		opts = append(opts, spec.Option())
		resolved[key] = opts
		return opts, nil
	}

	keys := slices.Collect(maps.Keys(sheet))
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := resolve(key, make(map[string]bool)); err != nil {
			return err
		}
	}
	for _, key := range keys {
		r.Register(key, resolved[key]...)
	}
	return nil
}
