package forms

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Shadow is a parsed "Xpx Ypx Bpx color" shadow.
type Shadow struct {
	X, Y  int
	Blur  int
	Color color.NRGBA
}

// ParseShadow parses a CSS-like shadow string. "none", the empty string and
// malformed input yield the zero shadow; ok reports whether s was well formed
// (the empty string and "none" count as well formed).
func ParseShadow(s string) (sh Shadow, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return Shadow{}, true
	}
	parts := strings.SplitN(s, "px ", 4)
	if len(parts) != 4 {
		return Shadow{}, false
	}
	var nums [3]int
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || math.IsNaN(n) {
			return Shadow{}, false
		}
		nums[i] = int(n)
	}
	c, cok := ParseColor(parts[3])
	if !cok {
		return Shadow{}, false
	}
	return Shadow{X: nums[0], Y: nums[1], Blur: nums[2], Color: c}, true
}

// ShadowExtents is the space a box shadow adds around the border box.
// Right and Bottom can be negative when the offset exceeds the blur.
type ShadowExtents struct {
	Left, Right int
	Top, Bottom int
}

// Width is the total horizontal extent.
func (e ShadowExtents) Width() int { return e.Left + e.Right }

// Height is the total vertical extent.
func (e ShadowExtents) Height() int { return e.Top + e.Bottom }

// Extents computes the margins the shadow needs on each side.
func (sh Shadow) Extents() ShadowExtents {
	var e ShadowExtents
	if sh.X < 0 {
		e.Left = -sh.X + sh.Blur
	} else {
		e.Left = absInt(sh.Blur - sh.X)
	}
	e.Right = sh.Blur + sh.X
	if sh.Y < 0 {
		e.Top = -sh.Y + sh.Blur
	} else {
		e.Top = absInt(sh.Blur - sh.Y)
	}
	e.Bottom = sh.Blur + sh.Y
	return e
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
