package vellum

import (
	"fmt"
	"strconv"
)

// BlendMode selects how an object composites over the content below it,
// following the W3C Compositing and Blending Level 1 specification. The
// engine stores the mode; interpreting it is the renderer's job.
type BlendMode uint8

const (
	BlendSourceOver BlendMode = iota

	// Separable modes.
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion

	// Non-separable modes operating in HSL space.
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

var blendNames = [...]string{
	BlendSourceOver: "source-over",
	BlendMultiply:   "multiply",
	BlendScreen:     "screen",
	BlendOverlay:    "overlay",
	BlendDarken:     "darken",
	BlendLighten:    "lighten",
	BlendColorDodge: "color-dodge",
	BlendColorBurn:  "color-burn",
	BlendHardLight:  "hard-light",
	BlendSoftLight:  "soft-light",
	BlendDifference: "difference",
	BlendExclusion:  "exclusion",
	BlendHue:        "hue",
	BlendSaturation: "saturation",
	BlendColor:      "color",
	BlendLuminosity: "luminosity",
}

// String returns the CSS/canvas name of the blend mode.
func (m BlendMode) String() string {
	if int(m) < len(blendNames) {
		return blendNames[m]
	}
	return "source-over"
}

// ParseBlendMode maps a CSS/canvas blend mode name to its enum value.
func ParseBlendMode(s string) (BlendMode, error) {
	for i, name := range blendNames {
		if name == s {
			return BlendMode(i), nil
		}
	}
	return BlendSourceOver, fmt.Errorf("unknown blend mode %q", s)
}

// MarshalJSON encodes the mode as its CSS name.
func (m BlendMode) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON decodes a CSS blend mode name.
func (m *BlendMode) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("blend mode must be a string: %s", data)
	}
	parsed, err := ParseBlendMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
