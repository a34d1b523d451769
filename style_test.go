package forms

import (
	"errors"
	"strings"
	"testing"
)

func TestConfig_Precedence(t *testing.T) {
	m, _ := newTestManager(t)
	m.RegisterStyle("wide",
		WithWidth(300),
		WithPadding(9),
		WithTextStyle(TextStyle{Fill: "#f00", Font: "18px Go"}),
	)

	tf := NewTextField(m, WithStyle("wide"), WithPadding(2), WithTextStyle(TextStyle{Fill: "#00f"}))
	cfg := tf.Config()

	if cfg.Width != 300 {
		t.Errorf("Expected preset width 300, got %v", cfg.Width)
	}
	if cfg.Padding != 2 {
		t.Errorf("Expected user padding 2 over preset, got %v", cfg.Padding)
	}
	if cfg.Text.Fill != "#00f" {
		t.Errorf("Expected user fill, got %q", cfg.Text.Fill)
	}
	if cfg.Text.Font != "18px Go" {
		t.Errorf("Expected preset font kept by text merge, got %q", cfg.Text.Font)
	}
	if cfg.BorderColor != "#000" {
		t.Errorf("Expected default border color, got %q", cfg.BorderColor)
	}
}

func TestConfig_ConfigureAppliesPreset(t *testing.T) {
	m, _ := newTestManager(t)
	m.RegisterStyle("error", WithBorder(2, "#c00"), WithWidth(250))

	tf := NewTextField(m, WithWidth(120))
	tf.Configure(WithStyle("error"), WithWidth(140))
	cfg := tf.Config()
	if cfg.BorderColor != "#c00" || cfg.BorderWidth != 2 {
		t.Errorf("Expected preset border, got %v %q", cfg.BorderWidth, cfg.BorderColor)
	}
	if cfg.Width != 140 {
		t.Errorf("Expected explicit width 140 over preset, got %v", cfg.Width)
	}
	if cfg.Style != "error" {
		t.Errorf("Expected style key %q, got %q", "error", cfg.Style)
	}
}

func TestConfig_UnknownPresetUsesDefaults(t *testing.T) {
	m, _ := newTestManager(t)
	tf := NewTextField(m, WithStyle("missing"))
	if got := tf.Config().Width; got != DefaultConfig().Width {
		t.Errorf("Expected default width, got %v", got)
	}
}

func TestConfig_PresetIsolatedFromCaller(t *testing.T) {
	m, _ := newTestManager(t)
	opts := []Option{WithWidth(50)}
	m.RegisterStyle("small", opts...)
	opts[0] = WithWidth(999)

	tf := NewTextField(m, WithStyle("small"))
	if got := tf.Config().Width; got != 50 {
		t.Errorf("Expected registered width 50, got %v", got)
	}

	m.RemoveStyle("small")
	if m.Style("small") != nil {
		t.Error("Expected removed preset to be gone")
	}
	if got := tf.Config().Width; got != 50 {
		t.Errorf("Expected existing widget unaffected, got %v", got)
	}
}

func TestConfig_CloneIsDeep(t *testing.T) {
	m, _ := newTestManager(t)
	s := NewSelect(m, WithOptions(SelectOption{Value: "a", Text: "A"}))
	cfg := s.Config()
	cfg.Options[0].Text = "changed"
	if s.Config().Options[0].Text != "A" {
		t.Error("Expected Config() to return an independent copy")
	}
}

func TestOptKey(t *testing.T) {
	m, _ := newTestManager(t)
	fieldName := NewOptKey("fieldName", "unnamed")
	retries := NewOptKey("retries", 3)

	tf := NewTextField(m, WithOpt(fieldName, "email"))
	if got := GetOpt(tf, fieldName); got != "email" {
		t.Errorf("Expected email, got %q", got)
	}
	if !HasOpt(tf, fieldName) {
		t.Error("Expected HasOpt true")
	}
	if got := GetOpt(tf, retries); got != 3 {
		t.Errorf("Expected default 3, got %d", got)
	}
	if HasOpt(tf, retries) {
		t.Error("Expected HasOpt false for unset key")
	}
}

const styleSheet = `
[base]
width = 220
padding = 8
border_radius = [6]
background_gradient = ["#fff", "#eee"]
text = { font = "16px Go", fill = "#222" }

[error]
extends = "base"
border_color = "#c00"
text = { fill = "#c00" }

[pin]
extends = "error"
type = "password"
max_length = 4
border_radius = [1, 2, 3, 4]
`

func TestStyleRegistry_LoadTOML(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.LoadStyles(strings.NewReader(styleSheet)); err != nil {
		t.Fatalf("LoadStyles failed: %v", err)
	}

	keys := m.Styles().Keys()
	if strings.Join(keys, ",") != "base,error,pin" {
		t.Errorf("Expected base,error,pin, got %v", keys)
	}

	cfg := NewTextField(m, WithStyle("pin")).Config()
	if cfg.Width != 220 || cfg.Padding != 8 {
		t.Errorf("Expected inherited width/padding, got %v/%v", cfg.Width, cfg.Padding)
	}
	if cfg.BorderColor != "#c00" {
		t.Errorf("Expected border color from error, got %q", cfg.BorderColor)
	}
	if cfg.Text.Fill != "#c00" || cfg.Text.Font != "16px Go" {
		t.Errorf("Expected merged text style, got %+v", cfg.Text)
	}
	if cfg.Type != TypePassword || cfg.MaxLength != 4 {
		t.Errorf("Expected password/4, got %v/%d", cfg.Type, cfg.MaxLength)
	}
	if cfg.BorderRadius != [4]float64{1, 2, 3, 4} {
		t.Errorf("Expected per-corner radii, got %v", cfg.BorderRadius)
	}
	if len(cfg.BackgroundGradient) != 2 {
		t.Errorf("Expected 2 gradient stops, got %d", len(cfg.BackgroundGradient))
	}

	base := NewTextField(m, WithStyle("base")).Config()
	if base.BorderRadius != [4]float64{6, 6, 6, 6} {
		t.Errorf("Expected single radius expanded, got %v", base.BorderRadius)
	}
}

func TestStyleRegistry_ExtendsRegistered(t *testing.T) {
	m, _ := newTestManager(t)
	m.RegisterStyle("brand", WithBorder(2, "#0a0"))
	err := m.LoadStyles(strings.NewReader(`
[cta]
extends = "brand"
width = 90
`))
	if err != nil {
		t.Fatalf("LoadStyles failed: %v", err)
	}
	cfg := NewButton(m, WithStyle("cta")).Config()
	if cfg.BorderWidth != 2 || cfg.BorderColor != "#0a0" || cfg.Width != 90 {
		t.Errorf("Expected brand border and width 90, got %v %q %v", cfg.BorderWidth, cfg.BorderColor, cfg.Width)
	}
}

func TestStyleRegistry_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		sheet   string
		unknown bool
	}{
		{"unknown parent", "[a]\nextends = \"nope\"\n", true},
		{"cycle", "[a]\nextends = \"b\"\n[b]\nextends = \"a\"\n", false},
		{"self", "[a]\nextends = \"a\"\n", false},
		{"malformed", "[a\nwidth = ", false},
		{"wrong type", "[a]\nwidth = \"wide\"\n", false},
	}
	for _, tt := range tests {
		r := NewStyleRegistry()
		err := r.Load(strings.NewReader(tt.sheet))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if got := errors.Is(err, ErrUnknownStyle); got != tt.unknown {
			t.Errorf("%s: expected ErrUnknownStyle=%v, got %v (%v)", tt.name, tt.unknown, got, err)
		}
		if len(r.Keys()) != 0 {
			t.Errorf("%s: expected nothing registered on error, got %v", tt.name, r.Keys())
		}
	}
}
