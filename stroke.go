package vellum

import (
	"encoding/binary"
	"encoding/json"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"honnef.co/go/curve"
)

// StrokePoint is one raw pointer sample of a brush stroke.
type StrokePoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
}

// UnmarshalJSON defaults pressure to 1 when the sample does not carry it,
// which is what mouse input looks like.
func (p *StrokePoint) UnmarshalJSON(data []byte) error {
	in := struct {
		X        float64  `json:"x"`
		Y        float64  `json:"y"`
		Pressure *float64 `json:"pressure"`
	}{}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.X, p.Y = in.X, in.Y
	p.Pressure = 1
	if in.Pressure != nil {
		p.Pressure = *in.Pressure
	}
	return nil
}

// Stamp is one dab placed along a tessellated stroke, in world units.
type Stamp struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Rotation float64 `json:"rotation"`
}

// arclenAccuracy bounds the arc length error when walking stroke segments.
const arclenAccuracy = 0.1

// SmoothPoints applies an exponential lag filter to raw pointer samples.
// Each output point is pulled toward its predecessor by the smoothing
// factor, which irons out hand jitter at the cost of slightly trailing the
// pointer. Smoothing 0 returns a copy of the input unchanged. Pressure is
// filtered along with position.
func SmoothPoints(points []StrokePoint, smoothing float64) []StrokePoint {
	out := append([]StrokePoint(nil), points...)
	if smoothing <= 0 {
		return out
	}
	for i := 1; i < len(out); i++ {
		out[i] = StrokePoint{
			X:        lerp(points[i].X, out[i-1].X, smoothing),
			Y:        lerp(points[i].Y, out[i-1].Y, smoothing),
			Pressure: lerp(points[i].Pressure, out[i-1].Pressure, smoothing),
		}
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// TessellateStroke converts raw pointer samples into dab placements for the
// brush. Samples are smoothed first, then stamps are laid along the
// polyline at the brush spacing, carrying leftover distance across segment
// boundaries so the spacing stays even through corners. Scatter and
// rotation jitter draw from a generator seeded by the stroke itself, so the
// same input always tessellates identically.
func TessellateStroke(points []StrokePoint, brush BrushPreset) []Stamp {
	if len(points) == 0 {
		return nil
	}
	smoothed := SmoothPoints(points, brush.Smoothing)
	step := math.Max(brush.Size*brush.Spacing, 1)
	rng := rand.New(rand.NewPCG(strokeSeed(points), strokeSeedTweak))

	stamps := []Stamp{placeStamp(rng, brush, smoothed[0].X, smoothed[0].Y, smoothed[0].Pressure)}
	carry := step
	for i := 1; i < len(smoothed); i++ {
		a, b := smoothed[i-1], smoothed[i]
		seg := curve.Line{P0: curve.Pt(a.X, a.Y), P1: curve.Pt(b.X, b.Y)}
		length := seg.Arclen(arclenAccuracy)
		pos := carry
		for pos <= length {
			t := seg.SolveForArclen(pos, arclenAccuracy)
			p := seg.Eval(t)
			stamps = append(stamps, placeStamp(rng, brush, p.X, p.Y, lerp(a.Pressure, b.Pressure, t)))
			pos += step
		}
		carry = pos - length
	}
	return stamps
}

func placeStamp(rng *rand.Rand, brush BrushPreset, x, y, pressure float64) Stamp {
	size := brush.Size
	if brush.PressureSize {
		size *= brush.MinSize + (1-brush.MinSize)*pressure
	}
	if brush.Scatter > 0 {
		x += (rng.Float64() - 0.5) * brush.Scatter * brush.Size * 5
		y += (rng.Float64() - 0.5) * brush.Scatter * brush.Size * 5
	}
	var rot float64
	if brush.RotationJitter > 0 {
		rot = (rng.Float64()*2 - 1) * math.Pi * brush.RotationJitter
	}
	return Stamp{X: x, Y: y, Size: size, Rotation: rot}
}

/// StrokeOutline builds a filled vector outline for the stamps: one closed
// ellipse subpath per stamp, shaped by the calligraphic tip's angle and
// roundness on top of the stamp's own jitter rotation. Image tips have no
// vector outline; for them the stamp list itself is the drawable result and
// the returned path is empty.
func StrokeOutline(stamps []Stamp, tip BrushTip) curve.BezPath {
	ct, ok := tip.(CalligraphicTip)
	if !ok {
		return nil
	}
	var path curve.BezPath
	for _, s := range stamps {
		r := s.Size / 2
		aff := curve.Translate(curve.Vec(s.X, s.Y)).
			Mul(curve.Rotate(s.Rotation + ct.Angle)).
			Mul(curve.Scale(r, r*ct.Roundness))
		path = append(path, unitCircle().Transform(aff)...)
	}
	return path
}

// unitCircle returns a unit-radius circle as four kappa cubics.
func unitCircle() curve.BezPath {
	const k = 0.5522847498307936
	return curve.BezPath{
		curve.MoveTo(curve.Pt(1, 0)),
		curve.CubicTo(curve.Pt(1, k), curve.Pt(k, 1), curve.Pt(0, 1)),
		curve.CubicTo(curve.Pt(-k, 1), curve.Pt(-1, k), curve.Pt(-1, 0)),
		curve.CubicTo(curve.Pt(-1, -k), curve.Pt(-k, -1), curve.Pt(0, -1)),
		curve.CubicTo(curve.Pt(k, -1), curve.Pt(1, -k), curve.Pt(1, 0)),
		curve.ClosePath(),
	}
}

const strokeSeedTweak = 0x9e3779b97f4a7c15

// strokeSeed hashes the raw samples so jitter is a pure function of the
// stroke geometry.
func strokeSeed(points []StrokePoint) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	for _, p := range points {
		put(p.X)
		put(p.Y)
		put(p.Pressure)
	}
	return h.Sum64()
}
