// Package pdf renders a vellum document to a single-page PDF sized to the
// artboard. Shapes, paths and text stay vectors; gradient fills map to
// PDF shading on rectangles, ellipses, polygons and stars, and collapse
// to the first stop's color on paths. Brush strokes render as
// round-capped strokes of the brush size along the smoothed spine. Image
// objects and adjustment layers are skipped, and text renders in the
// built-in Helvetica face regardless of the document's font family.
package pdf

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gogpu/vellum"
)

// Option configures an export.
type Option func(*config)

type config struct {
	brushes *vellum.BrushRegistry
}

// WithBrushes supplies the registry used to resolve brush stroke sizes.
// Without it only the built-in presets resolve.
func WithBrushes(reg *vellum.BrushRegistry) Option {
	return func(c *config) {
		if reg != nil {
			c.brushes = reg
		}
	}
}

// Export writes the document to w as PDF.
func Export(w io.Writer, doc *vellum.Document, opts ...Option) error {
	cfg := config{brushes: vellum.NewBrushRegistry()}
	for _, opt := range opts {
		opt(&cfg)
	}

	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: doc.Artboard.Width, Ht: doc.Artboard.Height},
	})
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.AddPage()

	r, g, b, _ := doc.Artboard.Background.RGBA8()
	f.SetFillColor(int(r), int(g), int(b))
	f.Rect(0, 0, doc.Artboard.Width, doc.Artboard.Height, "F")

	if doc.Clip {
		f.ClipRect(0, 0, doc.Artboard.Width, doc.Artboard.Height, false)
	}
	ex := exporter{pdf: f, doc: doc, brushes: cfg.brushes}
	ex.objects(doc.Order)
	if doc.Clip {
		f.ClipEnd()
	}
	return f.Output(w)
}

// ExportFile renders the document into a PDF file at path.
func ExportFile(path string, doc *vellum.Document, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Export(f, doc, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type exporter struct {
	pdf     *gofpdf.Fpdf
	doc     *vellum.Document
	brushes *vellum.BrushRegistry
}

func (ex *exporter) objects(ids []vellum.ID) {
	for _, id := range ids {
		obj := ex.doc.Find(id)
		if obj == nil || !obj.Visible {
			continue
		}
		ex.object(obj)
	}
}

func (ex *exporter) object(o *vellum.SceneObject) {
	switch o.Kind {
	case vellum.KindAdjustment, vellum.KindImage:
		return
	}

	ex.pdf.SetAlpha(clamp01(o.Opacity), blendName(o.BlendMode))
	ex.pdf.TransformBegin()
	if o.Rotation != 0 {
		// PDF rotates counter-clockwise; document angles are clockwise
		// in the y-down space.
		ex.pdf.TransformRotate(-o.Rotation*180/math.Pi, o.X+o.Width/2, o.Y+o.Height/2)
	}

	switch o.Kind {
	case vellum.KindGroup:
		ex.pdf.TransformTranslate(o.X, o.Y)
		ex.objects(o.Children)
	case vellum.KindRectangle:
		ex.rectangle(o)
	case vellum.KindCircle:
		ex.ellipse(o)
	case vellum.KindPolygon:
		ex.polygon(o, polygonPoints(o))
	case vellum.KindStar:
		ex.polygon(o, starPoints(o))
	case vellum.KindPath:
		ex.path(o)
	case vellum.KindText:
		ex.text(o)
	}

	ex.pdf.TransformEnd()
	ex.pdf.SetAlpha(1, "Normal")
}

// style prepares fill and stroke state and returns the gofpdf draw style
// string: "F", "D", "FD" or "" when the object paints nothing. Gradient
// fills fall back to the first stop's color for shapes that paint their
// fill flat.
func (ex *exporter) style(o *vellum.SceneObject) string {
	var style string
	fill := o.Fill
	if grad := o.FillGradient; grad != nil && len(grad.Stops) > 0 {
		fill = grad.Stops[0].Color
	}
	fr, fg, fb, fa := fill.RGBA8()
	if fa > 0 {
		ex.pdf.SetFillColor(int(fr), int(fg), int(fb))
		style += "F"
	}
	sr, sg, sb, sa := o.Stroke.RGBA8()
	if o.StrokeWidth > 0 && sa > 0 {
		ex.pdf.SetDrawColor(int(sr), int(sg), int(sb))
		ex.pdf.SetLineWidth(o.StrokeWidth)
		ex.pdf.SetLineCapStyle(o.StrokeCap.String())
		ex.pdf.SetLineJoinStyle(o.StrokeJoin.String())
		ex.pdf.SetDashPattern(append([]float64(nil), o.StrokeDash...), 0)
		style += "D"
	}
	return style
}

// fillGradient returns the object's fill gradient when it is usable for
// shading, or nil.
func fillGradient(o *vellum.SceneObject) *vellum.Gradient {
	if g := o.FillGradient; g != nil && len(g.Stops) >= 2 {
		return g
	}
	return nil
}

func (ex *exporter) rectangle(o *vellum.SceneObject) {
	style, grad := ex.style(o), fillGradient(o)
	if grad != nil {
		if o.CornerRadius > 0 {
			ex.pdf.ClipRoundedRect(o.X, o.Y, o.Width, o.Height, o.CornerRadius, false)
		} else {
			ex.pdf.ClipRect(o.X, o.Y, o.Width, o.Height, false)
		}
		ex.gradientFill(o, grad)
		ex.pdf.ClipEnd()
		style = strings.TrimPrefix(style, "F")
	}
	if style == "" {
		return
	}
	if o.CornerRadius > 0 {
		ex.pdf.RoundedRect(o.X, o.Y, o.Width, o.Height, o.CornerRadius, "1234", style)
		return
	}
	ex.pdf.Rect(o.X, o.Y, o.Width, o.Height, style)
}

func (ex *exporter) ellipse(o *vellum.SceneObject) {
	style, grad := ex.style(o), fillGradient(o)
	cx, cy := o.X+o.Width/2, o.Y+o.Height/2
	rx, ry := o.Width/2, o.Height/2
	if grad != nil {
		ex.pdf.ClipEllipse(cx, cy, rx, ry, false)
		ex.gradientFill(o, grad)
		ex.pdf.ClipEnd()
		style = strings.TrimPrefix(style, "F")
	}
	if style == "" {
		return
	}
	ex.pdf.Ellipse(cx, cy, rx, ry, 0, style)
}

func (ex *exporter) polygon(o *vellum.SceneObject, pts []gofpdf.PointType) {
	style, grad := ex.style(o), fillGradient(o)
	if grad != nil {
		ex.pdf.ClipPolygon(pts, false)
		ex.gradientFill(o, grad)
		ex.pdf.ClipEnd()
		style = strings.TrimPrefix(style, "F")
	}
	if style == "" {
		return
	}
	ex.pdf.Polygon(pts, style)
}

// gradientFill paints the object's box with a two-color shading built
// from the first and last stops. Gradient coordinates are stored in the
// object's local space; gofpdf wants unit-square fractions of the box
// with the y axis running bottom-up.
func (ex *exporter) gradientFill(o *vellum.SceneObject, grad *vellum.Gradient) {
	w, h := o.Width, o.Height
	if w <= 0 || h <= 0 {
		return
	}
	c1 := grad.Stops[0].Color
	c2 := grad.Stops[len(grad.Stops)-1].Color
	r1, g1, b1, _ := c1.RGBA8()
	r2, g2, b2, _ := c2.RGBA8()
	x1, y1 := grad.X1/w, 1-grad.Y1/h
	x2, y2 := grad.X2/w, 1-grad.Y2/h
	if grad.Radial {
		ex.pdf.RadialGradient(o.X, o.Y, w, h,
			int(r1), int(g1), int(b1), int(r2), int(g2), int(b2),
			x1, y1, x2, y2, grad.R2/w)
		return
	}
	ex.pdf.LinearGradient(o.X, o.Y, w, h,
		int(r1), int(g1), int(b1), int(r2), int(g2), int(b2),
		x1, y1, x2, y2)
}

func polygonPoints(o *vellum.SceneObject) []gofpdf.PointType {
	n := o.Sides
	if n < 3 {
		n = 3
	}
	cx, cy := o.X+o.Width/2, o.Y+o.Height/2
	rx, ry := o.Width/2, o.Height/2
	pts := make([]gofpdf.PointType, n)
	for i := range pts {
		th := -math.Pi/2 + float64(i)*2*math.Pi/float64(n)
		pts[i] = gofpdf.PointType{X: cx + rx*math.Cos(th), Y: cy + ry*math.Sin(th)}
	}
	return pts
}

func starPoints(o *vellum.SceneObject) []gofpdf.PointType {
	n := o.Sides
	if n < 3 {
		n = 3
	}
	cx, cy := o.X+o.Width/2, o.Y+o.Height/2
	rx, ry := o.Width/2, o.Height/2
	pts := make([]gofpdf.PointType, 2*n)
	for i := range pts {
		th := -math.Pi/2 + float64(i)*math.Pi/float64(n)
		fx, fy := rx, ry
		if i%2 == 1 {
			fx *= o.InnerRadius
			fy *= o.InnerRadius
		}
		pts[i] = gofpdf.PointType{X: cx + fx*math.Cos(th), Y: cy + fy*math.Sin(th)}
	}
	return pts
}

// path draws a path object's stored path data, which lives in the
// object's local space. Brush strokes draw their spine instead.
func (ex *exporter) path(o *vellum.SceneObject) {
	if o.BrushID != 0 {
		ex.brushStroke(o)
		return
	}
	style := ex.style(o)
	if style == "" {
		return
	}
	pen, err := vellum.DecodePath(o.PathData)
	if err != nil || len(pen.Anchors) == 0 {
		return
	}
	ex.pdf.TransformTranslate(o.X, o.Y)
	ex.pdf.MoveTo(pen.Anchors[0].P.X, pen.Anchors[0].P.Y)
	for i := 1; i < len(pen.Anchors); i++ {
		ex.penSegment(pen.Anchors[i-1], pen.Anchors[i])
	}
	if pen.Closed {
		if n := len(pen.Anchors); n > 1 {
			ex.penSegment(pen.Anchors[n-1], pen.Anchors[0])
		}
		ex.pdf.ClosePath()
	}
	ex.pdf.DrawPath(style)
}

// penSegment emits one segment between consecutive anchors, degrading to
// a line when neither side carries a control handle.
func (ex *exporter) penSegment(prev, cur vellum.Anchor) {
	if prev.COut == prev.P && cur.CIn == cur.P {
		ex.pdf.LineTo(cur.P.X, cur.P.Y)
		return
	}
	ex.pdf.CurveBezierCubicTo(prev.COut.X, prev.COut.Y, cur.CIn.X, cur.CIn.Y, cur.P.X, cur.P.Y)
}

func (ex *exporter) brushStroke(o *vellum.SceneObject) {
	fr, fg, fb, fa := o.Fill.RGBA8()
	if fa == 0 {
		return
	}
	pen, err := vellum.DecodePath(o.PathData)
	if err != nil || len(pen.Anchors) == 0 {
		return
	}
	size := 10.0
	if b, ok := ex.brushes.Get(o.BrushID); ok {
		size = b.Size
	}
	ex.pdf.SetDrawColor(int(fr), int(fg), int(fb))
	ex.pdf.SetLineWidth(size)
	ex.pdf.SetLineCapStyle("round")
	ex.pdf.SetLineJoinStyle("round")
	ex.pdf.SetDashPattern(nil, 0)
	ex.pdf.TransformTranslate(o.X, o.Y)
	ex.pdf.MoveTo(pen.Anchors[0].P.X, pen.Anchors[0].P.Y)
	if len(pen.Anchors) == 1 {
		// A dab. Zero-length lines with round caps still mark a dot.
		ex.pdf.LineTo(pen.Anchors[0].P.X, pen.Anchors[0].P.Y)
	}
	for i := 1; i < len(pen.Anchors); i++ {
		ex.penSegment(pen.Anchors[i-1], pen.Anchors[i])
	}
	ex.pdf.DrawPath("D")
}

func (ex *exporter) text(o *vellum.SceneObject) {
	fr, fg, fb, fa := o.Fill.RGBA8()
	if fa == 0 || o.Text == "" {
		return
	}
	size := o.FontSize
	if size <= 0 {
		size = 12
	}
	ex.pdf.SetFont("Helvetica", fontStyle(o.FontWeight), size)
	ex.pdf.SetTextColor(int(fr), int(fg), int(fb))
	leading := o.Leading
	if leading <= 0 {
		leading = 1.2
	}
	for i, line := range strings.Split(o.Text, "\n") {
		x := o.X
		switch o.TextAlign {
		case "center":
			x = o.X + (o.Width-ex.pdf.GetStringWidth(line))/2
		case "right":
			x = o.X + o.Width - ex.pdf.GetStringWidth(line)
		}
		ex.pdf.Text(x, o.Y+size+float64(i)*size*leading, line)
	}
}

func fontStyle(weight string) string {
	switch weight {
	case "bold", "600", "700", "800", "900":
		return "B"
	}
	return ""
}

func blendName(m vellum.BlendMode) string {
	if s, ok := blendModes[m]; ok {
		return s
	}
	return "Normal"
}

var blendModes = map[vellum.BlendMode]string{
	vellum.BlendSourceOver: "Normal",
	vellum.BlendMultiply:   "Multiply",
	vellum.BlendScreen:     "Screen",
	vellum.BlendOverlay:    "Overlay",
	vellum.BlendDarken:     "Darken",
	vellum.BlendLighten:    "Lighten",
	vellum.BlendColorDodge: "ColorDodge",
	vellum.BlendColorBurn:  "ColorBurn",
	vellum.BlendHardLight:  "HardLight",
	vellum.BlendSoftLight:  "SoftLight",
	vellum.BlendDifference: "Difference",
	vellum.BlendExclusion:  "Exclusion",
	vellum.BlendHue:        "Hue",
	vellum.BlendSaturation: "Saturation",
	vellum.BlendColor:      "Color",
	vellum.BlendLuminosity: "Luminosity",
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
