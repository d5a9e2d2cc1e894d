package vellum

import (
	"fmt"
	"strconv"
)

// ID identifies a scene object. IDs are unique across the whole document,
// including nested group children, assigned monotonically and never reused.
type ID uint64

// Kind is the closed set of drawable object kinds.
type Kind uint8

const (
	KindRectangle Kind = iota
	KindCircle
	KindStar
	KindPolygon
	KindPath
	KindText
	KindImage
	KindGroup
	KindAdjustment
)

var kindNames = [...]string{
	KindRectangle:  "Rectangle",
	KindCircle:     "Circle",
	KindStar:       "Star",
	KindPolygon:    "Polygon",
	KindPath:       "Path",
	KindText:       "Text",
	KindImage:      "Image",
	KindGroup:      "Group",
	KindAdjustment: "Adjustment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Rectangle"
}

// ParseKind maps a kind name to its enum value. "Ellipse" is accepted as an
// alias for Circle, whose width and height are already independent.
func ParseKind(s string) (Kind, error) {
	if s == "Ellipse" {
		return KindCircle, nil
	}
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return KindRectangle, fmt.Errorf("unknown object kind %q", s)
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("kind must be a string: %s", data)
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// LineCap defines how stroke endpoints are drawn.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

var lineCapNames = [...]string{"butt", "round", "square"}

func (c LineCap) String() string {
	if int(c) < len(lineCapNames) {
		return lineCapNames[c]
	}
	return "butt"
}

func (c LineCap) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

func (c *LineCap) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "stroke cap", lineCapNames[:], (*uint8)(c))
}

// LineJoin defines how stroke segments are joined.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

var lineJoinNames = [...]string{"miter", "round", "bevel"}

func (j LineJoin) String() string {
	if int(j) < len(lineJoinNames) {
		return lineJoinNames[j]
	}
	return "miter"
}

func (j LineJoin) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(j.String())), nil
}

func (j *LineJoin) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "stroke join", lineJoinNames[:], (*uint8)(j))
}

// unmarshalEnum decodes a quoted name against a name table.
func unmarshalEnum(data []byte, what string, names []string, out *uint8) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%s must be a string: %s", what, data)
	}
	for i, name := range names {
		if name == s {
			*out = uint8(i)
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", what, s)
}

// SceneObject is a single drawable entity in the document: a shape, path,
// text block, image, adjustment or group. All objects live in the document's
// flat arena; groups reference their children by ID.
//
// The transform is a top-left position, a size and a rotation in radians
// about the box center. Kind-specific fields are meaningful only for their
// kind and are omitted from JSON when zero.
type SceneObject struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`

	Fill           Color     `json:"fill"`
	FillGradient   *Gradient `json:"fill_gradient,omitempty"`
	Stroke         Color     `json:"stroke"`
	StrokeGradient *Gradient `json:"stroke_gradient,omitempty"`
	StrokeWidth    float64   `json:"stroke_width"`
	StrokeCap      LineCap   `json:"stroke_cap"`
	StrokeJoin     LineJoin  `json:"stroke_join"`
	StrokeDash     []float64 `json:"stroke_dash,omitempty"`

	Opacity   float64   `json:"opacity"`
	BlendMode BlendMode `json:"blend_mode"`
	Effects   []Effect  `json:"effects,omitempty"`

	Visible bool `json:"visible"`
	Locked  bool `json:"locked"`
	IsMask  bool `json:"is_mask,omitempty"`
	MaskID  ID   `json:"mask_id,omitempty"`

	// Star and Polygon.
	Sides       int     `json:"sides,omitempty"`
	InnerRadius float64 `json:"inner_radius,omitempty"`

	// Rectangle.
	CornerRadius float64 `json:"corner_radius,omitempty"`

	// Path. PathData is the encoded bezier command string; for brush strokes
	// (BrushID != 0) it holds the stroke centerline and StrokePoints the
	// pressure-tagged input, both relative to the object origin.
	PathData     string        `json:"path_data,omitempty"`
	BrushID      uint32        `json:"brush_id,omitempty"`
	StrokePoints []StrokePoint `json:"stroke_points,omitempty"`

	// Text.
	Text       string  `json:"text_content,omitempty"`
	FontFamily string  `json:"font_family,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	FontWeight string  `json:"font_weight,omitempty"`
	TextAlign  string  `json:"text_align,omitempty"`
	Kerning    float64 `json:"kerning,omitempty"`
	Leading    float64 `json:"leading,omitempty"`
	Tracking   float64 `json:"tracking,omitempty"`

	// Image. ImageID keys the pixel buffer in the asset store; SX..SH is the
	// source rectangle within that buffer.
	ImageID string  `json:"image_id,omitempty"`
	SX      float64 `json:"sx,omitempty"`
	SY      float64 `json:"sy,omitempty"`
	SW      float64 `json:"sw,omitempty"`
	SH      float64 `json:"sh,omitempty"`

	// Adjustment and Image filter values, stored for the renderer.
	Brightness float64 `json:"brightness,omitempty"`
	Contrast   float64 `json:"contrast,omitempty"`
	Saturate   float64 `json:"saturate,omitempty"`
	HueRotate  float64 `json:"hue_rotate,omitempty"`
	Blur       float64 `json:"blur,omitempty"`
	Grayscale  float64 `json:"grayscale,omitempty"`
	Sepia      float64 `json:"sepia,omitempty"`
	Invert     float64 `json:"invert,omitempty"`

	// Group children in z-order, positioned in the group's local space.
	Children []ID `json:"children,omitempty"`
}

// newObject builds an object with the engine's creation defaults.
func newObject(id ID, kind Kind, x, y, w, h float64, fill Color) *SceneObject {
	return &SceneObject{
		ID:          id,
		Name:        fmt.Sprintf("%s %d", kind, id),
		Kind:        kind,
		X:           x,
		Y:           y,
		Width:       maxf(w, 1),
		Height:      maxf(h, 1),
		Fill:        fill,
		Stroke:      Black,
		StrokeWidth: 1,
		Opacity:     1,
		Visible:     true,
		Sides:       5,
		InnerRadius: 0.5,
		Text:        "Type here...",
		FontFamily:  "Inter, sans-serif",
		FontSize:    24,
		FontWeight:  "normal",
		TextAlign:   "left",
		Leading:     1.2,
		Brightness:  1,
		Contrast:    1,
		Saturate:    1,
	}
}

// clone returns a deep copy of the object.
func (o *SceneObject) clone() *SceneObject {
	out := *o
	out.FillGradient = o.FillGradient.clone()
	out.StrokeGradient = o.StrokeGradient.clone()
	if o.StrokeDash != nil {
		out.StrokeDash = append([]float64(nil), o.StrokeDash...)
	}
	if o.Effects != nil {
		out.Effects = append([]Effect(nil), o.Effects...)
	}
	if o.StrokePoints != nil {
		out.StrokePoints = append([]StrokePoint(nil), o.StrokePoints...)
	}
	if o.Children != nil {
		out.Children = append([]ID(nil), o.Children...)
	}
	return &out
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
