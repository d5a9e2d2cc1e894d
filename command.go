package vellum

import (
	"encoding/json"
	"fmt"
)

// Command is one decoded editor action.
// This is a sealed interface - only types in this package implement it.
//
// Commands arrive either as typed values passed to [Engine.Do] or as
// {action, params} requests decoded by [DecodeCommand]. Both paths run the
// same implementations, so the wire protocol can never do anything a Go
// caller cannot.
type Command interface {
	// run applies the command to the engine. Being unexported it also
	// seals the interface.
	run(e *Engine) Result
}

// Result is the outcome of one command. Err is set for failures; all other
// fields are optional payloads of successful commands.
type Result struct {
	Err error `json:"-"`

	ID       ID              `json:"id,omitempty"`
	IDs      []ID            `json:"ids,omitempty"`
	Selected []ID            `json:"selected,omitempty"`
	Hit      *HandleHit      `json:"hit,omitempty"`
	History  []string        `json:"history,omitempty"`
	Brushes  []BrushPreset   `json:"brushes,omitempty"`
	BrushID  *uint32         `json:"brush_id,omitempty"`
	Objects  json.RawMessage `json:"objects,omitempty"`
	Artboard *Artboard       `json:"artboard,omitempty"`
	Changed  *bool           `json:"changed,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// MarshalJSON renders either {"error": ...} or {"success": true, ...}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Err.Error()})
	}
	type plain Result
	return json.Marshal(struct {
		Success bool `json:"success"`
		plain
	}{true, plain(r)})
}

// DecodeCommand parses one {action, params} request into its typed command.
// Unknown actions and malformed params come back as errors, never as
// panics, so a bad request cannot tear down the engine.
func DecodeCommand(action string, params json.RawMessage) (Command, error) {
	dec, ok := decoders[action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	cmd, err := dec(params)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", action, err)
	}
	return cmd, nil
}

// Actions returns the full action vocabulary, unordered.
func Actions() []string {
	out := make([]string, 0, len(decoders))
	for name := range decoders {
		out = append(out, name)
	}
	return out
}

var decoders = map[string]func(json.RawMessage) (Command, error){
	"add":                 decode[AddObject],
	"update":              decode[UpdateObject],
	"delete":              decode[DeleteObjects],
	"duplicate":           decode[DuplicateObjects],
	"clear":               decode[ClearDocument],
	"select":              decode[SelectObjects],
	"select_point":        decode[SelectPoint],
	"select_rect":         decode[SelectRect],
	"hit_test_handles":    decode[HitTestHandles],
	"move_to_front":       decode[MoveToFront],
	"move_to_back":        decode[MoveToBack],
	"move_forward":        decode[MoveForward],
	"move_backward":       decode[MoveBackward],
	"group":               decode[GroupObjects],
	"ungroup":             decode[UngroupObjects],
	"set_artboard":        decode[SetArtboard],
	"set_clipping":        decode[SetClipping],
	"set_viewport":        decode[SetViewport],
	"add_guide":           decode[AddGuide],
	"clear_guides":        decode[ClearGuides],
	"get_brushes":         decode[GetBrushes],
	"update_brush":        decode[UpdateBrush],
	"register_brush":      decode[RegisterBrush],
	"create_brush_stroke": decode[CreateBrushStroke],
	"update_brush_stroke": decode[UpdateBrushStroke],
	"undo":                decode[Undo],
	"redo":                decode[Redo],
	"get_history":         decode[GetHistory],
	"get_objects":         decode[GetObjects],
	"get_selected":        decode[GetSelected],
	"get_artboard":        decode[GetArtboard],
}

// decode unmarshals params into a zero command of the given type. Missing
// params decode the zero value, which every command treats as "all
// defaults".
func decode[C Command](params json.RawMessage) (Command, error) {
	var c C
	if len(params) > 0 && string(params) != "null" {
		if err := json.Unmarshal(params, &c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// saveUndo is embedded by commands whose history snapshot the caller can
// force or suppress per call. Absent, each command falls back to its own
// default.
type saveUndo struct {
	SaveUndo *bool `json:"save_undo,omitempty"`
}

func (s saveUndo) commit(def bool) bool {
	if s.SaveUndo == nil {
		return def
	}
	return *s.SaveUndo
}

// Patch is the property bag shared by add and update: every mutable object
// property as an optional field. Nil fields leave the object untouched.
// Setting a solid fill or stroke clears the matching gradient; sizes are
// floored at 1 and opacity is clamped to [0, 1] on the way in.
type Patch struct {
	Name     *string  `json:"name,omitempty"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`

	Fill           *Color     `json:"fill,omitempty"`
	FillGradient   *Gradient  `json:"fill_gradient,omitempty"`
	Stroke         *Color     `json:"stroke,omitempty"`
	StrokeGradient *Gradient  `json:"stroke_gradient,omitempty"`
	StrokeWidth    *float64   `json:"stroke_width,omitempty"`
	StrokeCap      *LineCap   `json:"stroke_cap,omitempty"`
	StrokeJoin     *LineJoin  `json:"stroke_join,omitempty"`
	StrokeDash     *[]float64 `json:"stroke_dash,omitempty"`

	Opacity   *float64   `json:"opacity,omitempty"`
	BlendMode *BlendMode `json:"blend_mode,omitempty"`
	Effects   *[]Effect  `json:"effects,omitempty"`

	Visible *bool `json:"visible,omitempty"`
	Locked  *bool `json:"locked,omitempty"`
	IsMask  *bool `json:"is_mask,omitempty"`
	MaskID  *ID   `json:"mask_id,omitempty"`

	Sides        *int     `json:"sides,omitempty"`
	InnerRadius  *float64 `json:"inner_radius,omitempty"`
	CornerRadius *float64 `json:"corner_radius,omitempty"`

	PathData     *string        `json:"path_data,omitempty"`
	BrushID      *uint32        `json:"brush_id,omitempty"`
	StrokePoints *[]StrokePoint `json:"stroke_points,omitempty"`

	Text       *string  `json:"text_content,omitempty"`
	FontFamily *string  `json:"font_family,omitempty"`
	FontSize   *float64 `json:"font_size,omitempty"`
	FontWeight *string  `json:"font_weight,omitempty"`
	TextAlign  *string  `json:"text_align,omitempty"`
	Kerning    *float64 `json:"kerning,omitempty"`
	Leading    *float64 `json:"leading,omitempty"`
	Tracking   *float64 `json:"tracking,omitempty"`

	ImageID *string  `json:"image_id,omitempty"`
	SX      *float64 `json:"sx,omitempty"`
	SY      *float64 `json:"sy,omitempty"`
	SW      *float64 `json:"sw,omitempty"`
	SH      *float64 `json:"sh,omitempty"`

	Brightness *float64 `json:"brightness,omitempty"`
	Contrast   *float64 `json:"contrast,omitempty"`
	Saturate   *float64 `json:"saturate,omitempty"`
	HueRotate  *float64 `json:"hue_rotate,omitempty"`
	Blur       *float64 `json:"blur,omitempty"`
	Grayscale  *float64 `json:"grayscale,omitempty"`
	Sepia      *float64 `json:"sepia,omitempty"`
	Invert     *float64 `json:"invert,omitempty"`
}

func (p *Patch) applyTo(o *SceneObject) {
	if p.Name != nil {
		o.Name = *p.Name
	}
	if p.X != nil {
		o.X = *p.X
	}
	if p.Y != nil {
		o.Y = *p.Y
	}
	if p.Width != nil {
		o.Width = maxf(*p.Width, 1)
	}
	if p.Height != nil {
		o.Height = maxf(*p.Height, 1)
	}
	if p.Rotation != nil {
		o.Rotation = *p.Rotation
	}
	if p.Fill != nil {
		o.Fill = *p.Fill
		o.FillGradient = nil
	}
	if p.FillGradient != nil {
		o.FillGradient = p.FillGradient.clone()
	}
	if p.Stroke != nil {
		o.Stroke = *p.Stroke
		o.StrokeGradient = nil
	}
	if p.StrokeGradient != nil {
		o.StrokeGradient = p.StrokeGradient.clone()
	}
	if p.StrokeWidth != nil {
		o.StrokeWidth = maxf(*p.StrokeWidth, 0)
	}
	if p.StrokeCap != nil {
		o.StrokeCap = *p.StrokeCap
	}
	if p.StrokeJoin != nil {
		o.StrokeJoin = *p.StrokeJoin
	}
	if p.StrokeDash != nil {
		o.StrokeDash = append([]float64(nil), (*p.StrokeDash)...)
	}
	if p.Opacity != nil {
		o.Opacity = clamp01(*p.Opacity)
	}
	if p.BlendMode != nil {
		o.BlendMode = *p.BlendMode
	}
	if p.Effects != nil {
		o.Effects = append([]Effect(nil), (*p.Effects)...)
	}
	if p.Visible != nil {
		o.Visible = *p.Visible
	}
	if p.Locked != nil {
		o.Locked = *p.Locked
	}
	if p.IsMask != nil {
		o.IsMask = *p.IsMask
	}
	if p.MaskID != nil {
		o.MaskID = *p.MaskID
	}
	if p.Sides != nil {
		o.Sides = *p.Sides
		if o.Sides < 3 {
			o.Sides = 3
		}
	}
	if p.InnerRadius != nil {
		o.InnerRadius = clamp01(*p.InnerRadius)
	}
	if p.CornerRadius != nil {
		o.CornerRadius = maxf(*p.CornerRadius, 0)
	}
	if p.PathData != nil {
		o.PathData = *p.PathData
	}
	if p.BrushID != nil {
		o.BrushID = *p.BrushID
	}
	if p.StrokePoints != nil {
		o.StrokePoints = append([]StrokePoint(nil), (*p.StrokePoints)...)
	}
	if p.Text != nil {
		o.Text = *p.Text
	}
	if p.FontFamily != nil {
		o.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		o.FontSize = *p.FontSize
	}
	if p.FontWeight != nil {
		o.FontWeight = *p.FontWeight
	}
	if p.TextAlign != nil {
		o.TextAlign = *p.TextAlign
	}
	if p.Kerning != nil {
		o.Kerning = *p.Kerning
	}
	if p.Leading != nil {
		o.Leading = *p.Leading
	}
	if p.Tracking != nil {
		o.Tracking = *p.Tracking
	}
	if p.ImageID != nil {
		o.ImageID = *p.ImageID
	}
	if p.SX != nil {
		o.SX = *p.SX
	}
	if p.SY != nil {
		o.SY = *p.SY
	}
	if p.SW != nil {
		o.SW = *p.SW
	}
	if p.SH != nil {
		o.SH = *p.SH
	}
	if p.Brightness != nil {
		o.Brightness = *p.Brightness
	}
	if p.Contrast != nil {
		o.Contrast = *p.Contrast
	}
	if p.Saturate != nil {
		o.Saturate = *p.Saturate
	}
	if p.HueRotate != nil {
		o.HueRotate = *p.HueRotate
	}
	if p.Blur != nil {
		o.Blur = maxf(*p.Blur, 0)
	}
	if p.Grayscale != nil {
		o.Grayscale = clamp01(*p.Grayscale)
	}
	if p.Sepia != nil {
		o.Sepia = clamp01(*p.Sepia)
	}
	if p.Invert != nil {
		o.Invert = clamp01(*p.Invert)
	}
}
