package vellum

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with optional '#'
// prefix. Invalid input yields opaque black.
func Hex(hex string) Color {
	c, err := parseHexColor(hex)
	if err != nil {
		return Color{A: 1}
	}
	return c
}

// ParseColor parses a CSS-style color value: "#rgb", "#rrggbb", "#rrggbbaa",
// an rgb()/rgba() function, a named color ("steelblue"), or "transparent".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color value")
	}
	if s[0] == '#' {
		return parseHexColor(s)
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBFunc(s)
	}
	name := strings.ToLower(s)
	if name == "transparent" {
		return Color{}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

func parseHexColor(hex string) (Color, error) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	ok := true
	switch len(hex) {
	case 3: // RGB
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b) && parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return Color{}, fmt.Errorf("invalid hex color %q", hex)
	}

	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// parseHex is a helper for hex parsing.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// parseRGBFunc parses "rgb(r, g, b)" and "rgba(r, g, b, a)" with byte-valued
// channels and a [0,1] alpha.
func parseRGBFunc(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		ch[i] = v
	}
	return Color{
		R: clamp01(ch[0] / 255),
		G: clamp01(ch[1] / 255),
		B: clamp01(ch[2] / 255),
		A: clamp01(ch[3]),
	}, nil
}

// String returns the hex form of the color: "#rrggbb", or "#rrggbbaa" when
// the color is not fully opaque.
func (c Color) String() string {
	r, g, b, a := c.RGBA8()
	if a == 255 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// RGBA8 returns the color as 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	conv := func(v float64) uint8 {
		return uint8(math.Round(clamp01(v) * 255))
	}
	return conv(c.R), conv(c.G), conv(c.B), conv(c.A)
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// MarshalJSON encodes the color as its hex string.
func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalJSON decodes any value ParseColor accepts.
func (c *Color) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("color must be a string: %s", data)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA(0, 0, 0, 0)
)

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
