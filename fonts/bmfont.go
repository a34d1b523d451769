package fonts

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseBMFont reads an AngelCode BMFont text descriptor:
//
//	info face="Desyrel" size=70
//	common lineHeight=80 base=62 pages=1
//	page id=0 file="desyrel.png"
//	char id=65 x=2 y=2 width=50 height=60 xoffset=1 yoffset=8 xadvance=48 page=0 chnl=15
//	kerning first=65 second=86 amount=-4
//
// Page images are not loaded; see LoadPages.
func ParseBMFont(r io.Reader) (*BitmapFont, error) {
	f := NewBitmapFont("", 0)
	type kern struct {
		first, second rune
		amount        float64
	}
	var kerns []kern

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		tag, attrs, err := splitBMLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedBMFont, line, err)
		}
		switch tag {
		case "info":
			f.Name = attrs["face"]
			f.Size = abs(attrFloat(attrs, "size"))
		case "common":
			f.LineHeight = attrFloat(attrs, "lineHeight")
			f.Base = attrFloat(attrs, "base")
		case "page":
			id := int(attrFloat(attrs, "id"))
			for len(f.PageFiles) <= id {
				f.PageFiles = append(f.PageFiles, "")
			}
			f.PageFiles[id] = attrs["file"]
		case "char":
			g, err := glyphFromAttrs(attrs)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedBMFont, line, err)
			}
			f.Glyphs[g.ID] = g
		case "kerning":
			kerns = append(kerns, kern{
				first:  rune(attrFloat(attrs, "first")),
				second: rune(attrFloat(attrs, "second")),
				amount: attrFloat(attrs, "amount"),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read BMFont: %w", err)
	}
	if len(f.Glyphs) == 0 {
		return nil, fmt.Errorf("%w: no char entries", ErrMalformedBMFont)
	}
	for _, k := range kerns {
		f.addKerning(k.first, k.second, k.amount)
	}
	if f.Size == 0 {
		f.Size = f.LineHeight
	}
	return f, nil
}

// splitBMLine splits `tag key=value key="quoted value"` into its parts.
func splitBMLine(s string) (string, map[string]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil, nil
	}
	tag, rest, _ := strings.Cut(s, " ")
	attrs := make(map[string]string)
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		key, after, ok := strings.Cut(rest, "=")
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return "", nil, fmt.Errorf("bad attribute near %q", rest)
		}
		var val string
		if strings.HasPrefix(after, `"`) {
			end := strings.IndexByte(after[1:], '"')
			if end < 0 {
				return "", nil, fmt.Errorf("unterminated quote for %s", key)
			}
			val = after[1 : end+1]
			rest = after[end+2:]
		} else {
			val, rest, _ = strings.Cut(after, " ")
		}
		attrs[key] = val
	}
	return tag, attrs, nil
}

func glyphFromAttrs(a map[string]string) (*Glyph, error) {
	idStr, ok := a["id"]
	if !ok {
		return nil, fmt.Errorf("char without id")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return nil, fmt.Errorf("bad char id %q", idStr)
	}
	return &Glyph{
		ID:       rune(id),
		X:        int(attrFloat(a, "x")),
		Y:        int(attrFloat(a, "y")),
		Width:    int(attrFloat(a, "width")),
		Height:   int(attrFloat(a, "height")),
		XOffset:  attrFloat(a, "xoffset"),
		YOffset:  attrFloat(a, "yoffset"),
		XAdvance: attrFloat(a, "xadvance"),
		Page:     int(attrFloat(a, "page")),
	}, nil
}

func attrFloat(a map[string]string, key string) float64 {
	v, err := strconv.ParseFloat(a[key], 64)
	if err != nil {
		return 0
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

type xmlBMFont struct {
	Info struct {
		Face string  `xml:"face,attr"`
		Size float64 `xml:"size,attr"`
	} `xml:"info"`
	Common struct {
		LineHeight float64 `xml:"lineHeight,attr"`
		Base       float64 `xml:"base,attr"`
	} `xml:"common"`
	Pages []struct {
		ID   int    `xml:"id,attr"`
		File string `xml:"file,attr"`
	} `xml:"pages>page"`
	Chars []struct {
		ID       int     `xml:"id,attr"`
		X        int     `xml:"x,attr"`
		Y        int     `xml:"y,attr"`
		Width    int     `xml:"width,attr"`
		Height   int     `xml:"height,attr"`
		XOffset  float64 `xml:"xoffset,attr"`
		YOffset  float64 `xml:"yoffset,attr"`
		XAdvance float64 `xml:"xadvance,attr"`
		Page     int     `xml:"page,attr"`
	} `xml:"chars>char"`
	Kernings []struct {
		First  int     `xml:"first,attr"`
		Second int     `xml:"second,attr"`
		Amount float64 `xml:"amount,attr"`
	} `xml:"kernings>kerning"`
}

// ParseBMFontXML reads the XML flavour of the BMFont descriptor.
func ParseBMFontXML(r io.Reader) (*BitmapFont, error) {
	var doc xmlBMFont
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBMFont, err)
	}
	if len(doc.Chars) == 0 {
		return nil, fmt.Errorf("%w: no char entries", ErrMalformedBMFont)
	}

	f := NewBitmapFont(doc.Info.Face, abs(doc.Info.Size))
	f.LineHeight = doc.Common.LineHeight
	f.Base = doc.Common.Base
	for _, p := range doc.Pages {
		if p.ID < 0 {
			continue
		}
		for len(f.PageFiles) <= p.ID {
			f.PageFiles = append(f.PageFiles, "")
		}
		f.PageFiles[p.ID] = p.File
	}
	for _, c := range doc.Chars {
		f.Glyphs[rune(c.ID)] = &Glyph{
			ID:       rune(c.ID),
			X:        c.X,
			Y:        c.Y,
			Width:    c.Width,
			Height:   c.Height,
			XOffset:  c.XOffset,
			YOffset:  c.YOffset,
			XAdvance: c.XAdvance,
			Page:     c.Page,
		}
	}
	for _, k := range doc.Kernings {
		f.addKerning(rune(k.First), rune(k.Second), k.Amount)
	}
	if f.Size == 0 {
		f.Size = f.LineHeight
	}
	return f, nil
}
