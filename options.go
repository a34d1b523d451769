package forms

import (
	"image"
	"slices"
)

// Option configures a widget.
type Option func(*Config)

// OptKey is a typed key for attaching application data to a widget's
// configuration.
//
// Example:
//
//	var OptFieldName = forms.NewOptKey("fieldName", "")
//
//	tf := forms.NewTextField(m, forms.WithOpt(OptFieldName, "email"))
//	name := forms.GetOpt(tf, OptFieldName)
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(c *Config) {
		if c.extensions == nil {
			c.extensions = make(map[string]any)
		}
		c.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value from a widget with type safety.
// Returns the key's default value if not set.
func GetOpt[T any](w Widget, key OptKey[T]) T {
	cfg := w.Config()
	v, ok := cfg.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](w Widget, key OptKey[T]) bool {
	cfg := w.Config()
	_, ok := cfg.extensions[key.name]
	return ok
}

// =============================================================================
// Built-in options
// =============================================================================

// WithStyle applies the named style preset beneath the other options.
func WithStyle(key string) Option { return func(c *Config) { c.Style = key } }

// WithValue sets the initial value (or the button label).
func WithValue(v string) Option { return func(c *Config) { c.Value = v } }

// WithPlaceholder sets the text shown while a text field is empty and unfocused.
func WithPlaceholder(p string) Option { return func(c *Config) { c.Placeholder = p } }

// WithMaxLength limits the value length in runes; 0 removes the limit.
func WithMaxLength(n int) Option { return func(c *Config) { c.MaxLength = max(n, 0) } }

// WithType sets the input type.
func WithType(t InputType) Option { return func(c *Config) { c.Type = t } }

// WithReadonly prevents the native peer from receiving focus.
func WithReadonly(ro bool) Option { return func(c *Config) { c.Readonly = ro } }

// WithMin sets the lower bound of a number input.
func WithMin(v float64) Option { return func(c *Config) { c.Min = &v } }

// WithMax sets the upper bound of a number input.
func WithMax(v float64) Option { return func(c *Config) { c.Max = &v } }

// WithTabIndex sets the tab index; -1 excludes the widget from Tab cycling.
func WithTabIndex(i int) Option { return func(c *Config) { c.TabIndex = i } }

// WithWidth sets the content width.
func WithWidth(w float64) Option { return func(c *Config) { c.Width = w } }

// WithHeight sets the content height; 0 derives it from the font.
func WithHeight(h float64) Option { return func(c *Config) { c.Height = h } }

// WithPadding sets the inner padding.
func WithPadding(p float64) Option { return func(c *Config) { c.Padding = p } }

// WithBorder sets the border width and color.
func WithBorder(width float64, color string) Option {
	return func(c *Config) {
		c.BorderWidth = width
		c.BorderColor = color
	}
}

// WithBorderRadius sets the same radius on every corner.
func WithBorderRadius(r float64) Option {
	return func(c *Config) { c.BorderRadius = [4]float64{r, r, r, r} }
}

// WithCornerRadii sets per-corner radii, clockwise from top-left.
func WithCornerRadii(tl, tr, br, bl float64) Option {
	return func(c *Config) { c.BorderRadius = [4]float64{tl, tr, br, bl} }
}

// WithBackgroundColor sets the textbox fill color.
func WithBackgroundColor(color string) Option {
	return func(c *Config) { c.BackgroundColor = color }
}

// WithBackgroundGradient sets evenly spaced vertical gradient colors.
func WithBackgroundGradient(colors ...string) Option {
	stops := make([]GradientStop, len(colors))
	for i, col := range colors {
		stops[i] = GradientStop{Offset: -1, Color: col}
	}
	return WithGradientStops(stops...)
}

// WithGradientStops sets explicit vertical gradient stops.
func WithGradientStops(stops ...GradientStop) Option {
	stops = slices.Clone(stops)
	return func(c *Config) { c.BackgroundGradient = slices.Clone(stops) }
}

// WithBackgroundImage draws img scaled over the textbox instead of a fill.
func WithBackgroundImage(img image.Image) Option {
	return func(c *Config) { c.BackgroundImage = img }
}

// WithBoxShadow sets the outer shadow, e.g. "1px 1px 0px rgba(0, 0, 0, 0.1)".
func WithBoxShadow(s string) Option { return func(c *Config) { c.BoxShadow = s } }

// WithInnerShadow sets the inner shadow, e.g. "0px 0px 4px rgba(0, 0, 0, 0.4)".
func WithInnerShadow(s string) Option { return func(c *Config) { c.InnerShadow = s } }

// WithAlign sets the horizontal alignment of a button label.
func WithAlign(a Align) Option { return func(c *Config) { c.Align = a } }

// WithVAlign sets the vertical alignment of the text.
func WithVAlign(v VAlign) Option { return func(c *Config) { c.VAlign = v } }

// WithFont sets the vector font, e.g. "bold 16px Go".
func WithFont(font string) Option {
	return func(c *Config) {
		c.Text.Font = font
		c.Text.Bitmap = false
	}
}

// WithBitmapFont selects a bitmap font registered on the manager, e.g. "20px Desyrel".
func WithBitmapFont(font string) Option {
	return func(c *Config) {
		c.Text.Font = font
		c.Text.Bitmap = true
	}
}

// WithTextFill sets the text color.
func WithTextFill(color string) Option { return func(c *Config) { c.Text.Fill = color } }

// WithTextStroke sets the text outline.
func WithTextStroke(color string, thickness float64) Option {
	return func(c *Config) {
		c.Text.Stroke = color
		c.Text.StrokeThickness = thickness
	}
}

// WithTextStyle merges the non-zero fields of ts into the text style.
func WithTextStyle(ts TextStyle) Option { return func(c *Config) { c.Text.merge(ts) } }

// WithOptionText merges the non-zero fields of ts into the style of the
// Select menu entries.
func WithOptionText(ts TextStyle) Option { return func(c *Config) { c.OptionText.merge(ts) } }

// WithPlaceholderColor sets the placeholder text color.
func WithPlaceholderColor(color string) Option {
	return func(c *Config) { c.PlaceholderColor = color }
}

// WithSelectionColor sets the selection highlight color.
func WithSelectionColor(color string) Option {
	return func(c *Config) { c.SelectionColor = color }
}

// WithOptions sets the ordered Select entries.
func WithOptions(opts ...SelectOption) Option {
	opts = slices.Clone(opts)
	return func(c *Config) { c.Options = slices.Clone(opts) }
}

// WithSelected selects the Select entry with the given key.
func WithSelected(key string) Option { return func(c *Config) { c.Selected = key } }

// OnSubmit is called when Enter is pressed in a text field.
func OnSubmit(fn func(w Widget)) Option { return func(c *Config) { c.Hooks.OnSubmit = fn } }

// OnKeyDown is called for every key press while the widget has focus.
func OnKeyDown(fn func(ev *KeyEvent, w Widget)) Option {
	return func(c *Config) { c.Hooks.OnKeyDown = fn }
}

// OnKeyUp is called for every key release while the widget has focus.
func OnKeyUp(fn func(ev *KeyEvent, w Widget)) Option {
	return func(c *Config) { c.Hooks.OnKeyUp = fn }
}

// OnFocus is called after the widget gains focus.
func OnFocus(fn func(w Widget)) Option { return func(c *Config) { c.Hooks.OnFocus = fn } }

// OnBlur is called after the widget loses focus.
func OnBlur(fn func(w Widget)) Option { return func(c *Config) { c.Hooks.OnBlur = fn } }

// OnMouseDown is called on a primary button press over the widget.
func OnMouseDown(fn func(ev *PointerEvent, w Widget)) Option {
	return func(c *Config) { c.Hooks.OnMouseDown = fn }
}

// OnMouseUp is called on a primary button release over the widget.
func OnMouseUp(fn func(ev *PointerEvent, w Widget)) Option {
	return func(c *Config) { c.Hooks.OnMouseUp = fn }
}

// OnChange is called when a Select's selected entry changes.
func OnChange(fn func(w Widget)) Option { return func(c *Config) { c.Hooks.OnChange = fn } }
