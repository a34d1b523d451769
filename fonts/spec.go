package fonts

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultSize is used when a font string carries no pixel size.
const DefaultSize = 14

// DefaultFamily is the family used when a font string names none, or names
// only families that are not registered.
const DefaultFamily = "go"

var (
	// ErrUnknownFont is returned when a font name cannot be resolved.
	ErrUnknownFont = errors.New("fonts: unknown font")

	// ErrMalformedBMFont is returned when a BMFont descriptor cannot be parsed.
	ErrMalformedBMFont = errors.New("fonts: malformed BMFont descriptor")
)

// Spec is a parsed CSS font shorthand.
type Spec struct {
	Style    string   // "normal", "italic" or "oblique"
	Weight   string   // "normal", "bold" or a numeric weight
	Size     float64  // pixel size
	SizeSet  bool     // the string carried an explicit size
	Families []string // lower-cased, quotes stripped, in preference order
}

// Bold reports whether the weight asks for a bold face.
func (s Spec) Bold() bool {
	switch s.Weight {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// Italic reports whether the style asks for an italic face.
func (s Spec) Italic() bool {
	return s.Style == "italic" || s.Style == "oblique"
}

// Family returns the preferred family, or DefaultFamily.
func (s Spec) Family() string {
	if len(s.Families) == 0 {
		return DefaultFamily
	}
	return s.Families[0]
}

// ParseFont parses a CSS font shorthand such as "14px Arial",
// "italic bold 12px 'Go Mono', monospace" or "Desyrel" (bitmap font names
// usually carry no size). Parsing never fails: missing parts take defaults.
func ParseFont(css string) Spec {
	spec := Spec{Style: "normal", Weight: "normal", Size: DefaultSize}

	fields := strings.Fields(css)
	i := 0
prefix:
	for ; i < len(fields); i++ {
		f := strings.ToLower(fields[i])
		switch {
		case f == "normal":
		case f == "italic" || f == "oblique":
			spec.Style = f
		case f == "bold" || f == "bolder" || f == "lighter" || isNumericWeight(f):
			spec.Weight = f
		case f == "small-caps":
		default:
			if size, ok := parsePixelSize(f); ok {
				spec.Size = size
				spec.SizeSet = true
				i++
			}
			break prefix
		}
	}

	rest := strings.Join(fields[i:], " ")
	for _, name := range strings.Split(rest, ",") {
		name = strings.Trim(strings.TrimSpace(name), `"'`)
		if name == "" {
			continue
		}
		spec.Families = append(spec.Families, strings.ToLower(name))
	}
	return spec
}

// parsePixelSize parses "14px", "14px/1.2" or "14".
func parsePixelSize(s string) (float64, bool) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSuffix(s, "pt")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func isNumericWeight(s string) bool {
	if len(s) != 3 || s[1] != '0' || s[2] != '0' {
		return false
	}
	return s[0] >= '1' && s[0] <= '9'
}
