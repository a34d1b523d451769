package fonts

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	family string
	size   float64
	shaped bool
}

// Registry resolves CSS font strings to vector faces. Faces are built lazily
// and cached per family, variant and size.
//
// The Go font family is always available as "go" (with bold, italic and
// bold italic variants) and "go mono"; the generic names "sans-serif",
// "serif" and "monospace" map onto them.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	data   map[string][]byte
	parsed map[string]*opentype.Font
	faces  map[faceKey]VectorFace
	shaped bool
	logger *slog.Logger
}

// NewRegistry creates a registry with the Go fonts preregistered.
func NewRegistry() *Registry {
	r := &Registry{
		data:   make(map[string][]byte),
		parsed: make(map[string]*opentype.Font),
		faces:  make(map[faceKey]VectorFace),
		logger: slog.New(slog.DiscardHandler),
	}
	r.data["go"] = goregular.TTF
	r.data["go bold"] = gobold.TTF
	r.data["go italic"] = goitalic.TTF
	r.data["go bold italic"] = gobolditalic.TTF
	r.data["go mono"] = gomono.TTF
	r.data["go mono bold"] = gomonobold.TTF
	return r
}

// SetLogger sets the logger used for fallback diagnostics.
func (r *Registry) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// SetShaping switches measurement of newly resolved faces to HarfBuzz shaping.
func (r *Registry) SetShaping(on bool) {
	r.shaped = on
}

// Register adds TrueType/OpenType data under a family name. Variants are
// registered with a suffix: "Roboto", "Roboto Bold", "Roboto Italic".
func (r *Registry) Register(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to register font %q: %w", family, err)
	}
	key := strings.ToLower(strings.TrimSpace(family))
	r.data[key] = data
	r.parsed[key] = f
	for k := range r.faces {
		if k.family == key {
			delete(r.faces, k)
		}
	}
	return nil
}

// Has reports whether a family is registered.
func (r *Registry) Has(family string) bool {
	_, ok := r.data[strings.ToLower(family)]
	return ok
}

// Face resolves a CSS font string. Unknown families fall back to the Go
// font; resolution never fails for well-formed built-in data.
func (r *Registry) Face(css string) VectorFace {
	spec := ParseFont(css)
	family := r.resolve(spec)
	key := faceKey{family: family, size: spec.Size, shaped: r.shaped}
	if face, ok := r.faces[key]; ok {
		return face
	}
	face, err := r.build(family, spec.Size)
	if err != nil {
		r.logger.Debug("font face fallback", "font", css, "err", err)
		face, err = r.build(DefaultFamily, spec.Size)
		if err != nil {
			panic(fmt.Sprintf("fonts: built-in font unusable: %v", err))
		}
	}
	r.faces[key] = face
	return face
}

// Lookup is like Face but returns ErrUnknownFont when none of the named
// families is registered.
func (r *Registry) Lookup(css string) (VectorFace, error) {
	spec := ParseFont(css)
	for _, fam := range spec.Families {
		if _, ok := r.data[canonicalFamily(fam)]; ok {
			return r.Face(css), nil
		}
	}
	if len(spec.Families) == 0 {
		return r.Face(css), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFont, strings.Join(spec.Families, ", "))
}

func (r *Registry) resolve(spec Spec) string {
	suffix := ""
	switch {
	case spec.Bold() && spec.Italic():
		suffix = " bold italic"
	case spec.Bold():
		suffix = " bold"
	case spec.Italic():
		suffix = " italic"
	}
	for _, fam := range spec.Families {
		base := canonicalFamily(fam)
		if _, ok := r.data[base+suffix]; ok {
			return base + suffix
		}
		if _, ok := r.data[base]; ok {
			return base
		}
	}
	if len(spec.Families) > 0 {
		r.logger.Debug("unknown font family, using default", "families", spec.Families)
	}
	if _, ok := r.data[DefaultFamily+suffix]; ok {
		return DefaultFamily + suffix
	}
	return DefaultFamily
}

func canonicalFamily(fam string) string {
	switch fam {
	case "sans-serif", "serif", "system-ui":
		return "go"
	case "monospace":
		return "go mono"
	}
	return fam
}

func (r *Registry) build(family string, size float64) (VectorFace, error) {
	data, ok := r.data[family]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFont, family)
	}
	if r.shaped {
		return NewShapedFace(data, size)
	}
	f, ok := r.parsed[family]
	if !ok {
		var err error
		f, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", family, err)
		}
		r.parsed[family] = f
	}
	return newOpenTypeFace(f, size)
}
