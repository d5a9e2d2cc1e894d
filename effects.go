package vellum

import (
	"fmt"
	"strconv"
)

// EffectType identifies a layer effect. Effects are stored and serialized by
// the engine; the renderer interprets them.
type EffectType uint8

const (
	EffectDropShadow EffectType = iota
	EffectInnerShadow
	EffectOuterGlow
	EffectInnerGlow
	EffectBevelEmboss
	EffectColorOverlay
	EffectGradientOverlay
	EffectPatternOverlay
	EffectStroke
)

var effectNames = [...]string{
	EffectDropShadow:      "drop-shadow",
	EffectInnerShadow:     "inner-shadow",
	EffectOuterGlow:       "outer-glow",
	EffectInnerGlow:       "inner-glow",
	EffectBevelEmboss:     "bevel-emboss",
	EffectColorOverlay:    "color-overlay",
	EffectGradientOverlay: "gradient-overlay",
	EffectPatternOverlay:  "pattern-overlay",
	EffectStroke:          "stroke",
}

func (t EffectType) String() string {
	if int(t) < len(effectNames) {
		return effectNames[t]
	}
	return "drop-shadow"
}

// ParseEffectType maps an effect name to its enum value.
func ParseEffectType(s string) (EffectType, error) {
	for i, name := range effectNames {
		if name == s {
			return EffectType(i), nil
		}
	}
	return EffectDropShadow, fmt.Errorf("unknown effect type %q", s)
}

func (t EffectType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *EffectType) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("effect type must be a string: %s", data)
	}
	parsed, err := ParseEffectType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Effect is one entry of an object's ordered effect list: a drop shadow,
// glow, overlay or similar layer treatment.
type Effect struct {
	Type      EffectType `json:"effect_type"`
	Enabled   bool       `json:"enabled"`
	Color     Color      `json:"color"`
	Opacity   float64    `json:"opacity"`
	Blur      float64    `json:"blur"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Size      float64    `json:"size"`
	Spread    float64    `json:"spread"`
	BlendMode BlendMode  `json:"blend_mode"`
}
