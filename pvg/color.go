package pvg

import (
	"fmt"
	"strconv"
	"strings"
)

// Color token wire sentinels. Palette indices are 1-based and capped at
// MaxPaletteSize so they can never collide with the markers.
const (
	colorNone       = 0x00
	colorMarkerRGB  = 0xFE
	colorMarkerGrad = 0xFF
	MaxPaletteSize  = 253
)

// ColorKind discriminates the forms a color can take.
type ColorKind uint8

const (
	ColorNone     ColorKind = iota // fill/stroke absent ("none")
	ColorRGB                       // explicit 8-bit RGB
	ColorGradient                  // reference to a gradient definition
)

// Color is a resolved paint value.
type Color struct {
	Kind    ColorKind
	R, G, B uint8
	Ref     int // gradient ordinal when Kind == ColorGradient
}

// FallbackBlack is the paint substituted for any color the parser cannot
// understand. The "never fail, degrade silently" policy of the original
// artwork batch lives here and nowhere else.
var FallbackBlack = Color{Kind: ColorRGB}

// None is the absent paint.
var None = Color{Kind: ColorNone}

// RGB constructs an explicit color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// GradientRef constructs a reference to the nth gradient definition.
func GradientRef(n int) Color {
	return Color{Kind: ColorGradient, Ref: n}
}

// namedColors is the small set of CSS names the hand-authored sources use.
var namedColors = map[string]Color{
	"black":   RGB(0x00, 0x00, 0x00),
	"white":   RGB(0xFF, 0xFF, 0xFF),
	"red":     RGB(0xFF, 0x00, 0x00),
	"green":   RGB(0x00, 0x80, 0x00),
	"blue":    RGB(0x00, 0x00, 0xFF),
	"yellow":  RGB(0xFF, 0xFF, 0x00),
	"orange":  RGB(0xFF, 0xA5, 0x00),
	"purple":  RGB(0x80, 0x00, 0x80),
	"pink":    RGB(0xFF, 0xC0, 0xCB),
	"brown":   RGB(0xA5, 0x2A, 0x2A),
	"gray":    RGB(0x80, 0x80, 0x80),
	"grey":    RGB(0x80, 0x80, 0x80),
	"gold":    RGB(0xFF, 0xD7, 0x00),
	"silver":  RGB(0xC0, 0xC0, 0xC0),
	"cyan":    RGB(0x00, 0xFF, 0xFF),
	"magenta": RGB(0xFF, 0x00, 0xFF),
}

// ParseColor parses the color vocabulary of the source artwork:
// #RRGGBB, #RGB shorthand (each digit doubled), rgb(r,g,b), a small set
// of named colors, "none", and url(#id) gradient references. It never
// fails: anything unrecognized becomes FallbackBlack.
//
// url(#id) references resolve to ColorGradient only through an encoder
// that knows the document's gradient ordering; bare ParseColor maps them
// to Ref -1 and leaves resolution to the caller.
func ParseColor(s string) Color {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == "none" || s == "transparent":
		return None

	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return FallbackBlack
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return FallbackBlack
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v))

	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return FallbackBlack
		}
		var c [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return FallbackBlack
			}
			c[i] = uint8(n)
		}
		return RGB(c[0], c[1], c[2])

	case strings.HasPrefix(s, "url(#") && strings.HasSuffix(s, ")"):
		return Color{Kind: ColorGradient, Ref: -1}
	}

	if c, ok := namedColors[s]; ok {
		return c
	}
	return FallbackBlack
}

// String renders the color in canonical SVG form.
func (c Color) String() string {
	switch c.Kind {
	case ColorNone:
		return "none"
	case ColorGradient:
		return fmt.Sprintf("url(#g%d)", c.Ref)
	default:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
}

// Hex returns the #rrggbb form regardless of kind; used as palette key.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ============================================================
// Palette
// ============================================================

// Palette is the per-trait color dictionary. Index 0 on the wire means
// "none"; palette entries are addressed 1-based.
type Palette struct {
	colors []Color
	index  map[string]uint8 // hex -> 1-based index
}

// NewPalette builds a palette from color strings in dictionary order.
// Entries beyond MaxPaletteSize and entries that are not plain RGB are
// ignored; duplicates keep their first index.
func NewPalette(colors ...string) *Palette {
	p := &Palette{index: make(map[string]uint8, len(colors))}
	for _, s := range colors {
		c := ParseColor(s)
		if c.Kind != ColorRGB || len(p.colors) >= MaxPaletteSize {
			continue
		}
		key := c.Hex()
		if _, dup := p.index[key]; dup {
			continue
		}
		p.colors = append(p.colors, c)
		p.index[key] = uint8(len(p.colors)) // 1-based
	}
	return p
}

// Len returns the number of dictionary entries.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.colors)
}

// Lookup returns the 1-based dictionary index for c, if present.
func (p *Palette) Lookup(c Color) (uint8, bool) {
	if p == nil || c.Kind != ColorRGB {
		return 0, false
	}
	i, ok := p.index[c.Hex()]
	return i, ok
}

// At returns the color for a 1-based dictionary index.
func (p *Palette) At(i uint8) (Color, bool) {
	if p == nil || i == 0 || int(i) > len(p.colors) {
		return Color{}, false
	}
	return p.colors[i-1], true
}

// ============================================================
// Wire form
// ============================================================

// appendColor writes a color token: 0 for none, a dictionary index when
// the palette has the color, the 254 marker + RGB triple otherwise, or
// the 255 marker + gradient ordinal.
func appendColor(buf []byte, c Color, p *Palette) []byte {
	switch c.Kind {
	case ColorNone:
		return append(buf, colorNone)
	case ColorGradient:
		ref := c.Ref
		if ref < 0 {
			ref = 0
		}
		buf = append(buf, colorMarkerGrad)
		return AppendUvarint(buf, uint32(ref))
	default:
		if i, ok := p.Lookup(c); ok {
			return append(buf, i)
		}
		return append(buf, colorMarkerRGB, c.R, c.G, c.B)
	}
}

// readColor reads a color token. A dictionary index that misses the
// palette degrades to FallbackBlack; truncation is the only error.
func readColor(c *Cursor, p *Palette) (Color, error) {
	b, err := c.Byte()
	if err != nil {
		return Color{}, fmt.Errorf("color: %w", err)
	}
	switch b {
	case colorNone:
		return None, nil
	case colorMarkerRGB:
		rgb, err := c.Take(3)
		if err != nil {
			return Color{}, fmt.Errorf("color rgb: %w", err)
		}
		return RGB(rgb[0], rgb[1], rgb[2]), nil
	case colorMarkerGrad:
		ref, err := c.Uvarint()
		if err != nil {
			return Color{}, fmt.Errorf("color gradient ref: %w", err)
		}
		return GradientRef(int(ref)), nil
	default:
		col, ok := p.At(b)
		if !ok {
			return FallbackBlack, nil
		}
		return col, nil
	}
}
