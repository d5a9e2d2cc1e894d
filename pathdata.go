package vellum

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"honnef.co/go/curve"
)

// Path objects store their geometry as a compact SVG-style command string
// ("M 0,0 C 10,0 20,10 30,10 ... Z"). EncodePath writes the canonical form;
// DecodePath additionally accepts line and quadratic commands, relative
// variants, and implicit command repetition, so path data originating from
// other tools still loads.

// closeEps is the distance under which a close command merges the last
// anchor into the first instead of adding a closing segment.
const closeEps = 1e-6

// EncodePath renders the path in its stored string form: an absolute move,
// one cubic per segment, and a trailing Z for closed paths. Numbers use the
// shortest decimal form that round-trips.
func EncodePath(p *PenPath) string {
	if len(p.Anchors) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, p.Anchors[0].P)
	for i := 1; i < len(p.Anchors); i++ {
		writeCubic(&b, p.Anchors[i-1].COut, p.Anchors[i].CIn, p.Anchors[i].P)
	}
	if p.Closed {
		if n := len(p.Anchors); n > 1 {
			writeCubic(&b, p.Anchors[n-1].COut, p.Anchors[0].CIn, p.Anchors[0].P)
		}
		b.WriteString(" Z")
	}
	return b.String()
}

// EncodePolyline renders points as one move plus line commands. Brush
// strokes store their smoothed centerline this way.
func EncodePolyline(pts []curve.Point) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, pts[0])
	for _, pt := range pts[1:] {
		b.WriteString(" L ")
		writePoint(&b, pt)
	}
	return b.String()
}

func writeCubic(b *strings.Builder, c1, c2, p curve.Point) {
	b.WriteString(" C ")
	writePoint(b, c1)
	b.WriteByte(' ')
	writePoint(b, c2)
	b.WriteByte(' ')
	writePoint(b, p)
}

func writePoint(b *strings.Builder, pt curve.Point) {
	b.WriteString(strconv.FormatFloat(pt.X, 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(pt.Y, 'f', -1, 64))
}

// DecodePath parses path data into an editable pen path. Line segments
// become corner anchors, quadratics are elevated to cubics, and a close
// whose endpoint coincides with the first anchor is merged so round-trips
// do not grow the anchor list. Only a single subpath is allowed. An empty
// string decodes to an empty open path.
func DecodePath(s string) (*PenPath, error) {
	sc := pathScanner{s: s}
	path := &PenPath{}
	var cur curve.Point
	var cmd byte
	started, closed := false, false

	for !sc.done() {
		c := sc.command()
		if c == 0 {
			// A bare number repeats the previous command; after a move
			// it continues as a line, per SVG rules.
			switch cmd {
			case 0:
				return nil, fmt.Errorf("path data: expected command at offset %d", sc.pos)
			case 'M':
				c = 'L'
			case 'm':
				c = 'l'
			default:
				c = cmd
			}
		}
		if closed {
			return nil, errors.New("path data: command after close")
		}
		rel := c >= 'a'
		abs := func(pt curve.Point) curve.Point {
			if rel {
				return curve.Pt(cur.X+pt.X, cur.Y+pt.Y)
			}
			return pt
		}
		if !started && c != 'M' && c != 'm' {
			return nil, fmt.Errorf("path data: must start with a move, got %q", c)
		}

		switch c {
		case 'M', 'm':
			if started {
				return nil, errors.New("path data: multiple subpaths not supported")
			}
			pt, err := sc.point()
			if err != nil {
				return nil, fmt.Errorf("path data: %w", err)
			}
			pt = abs(pt)
			path.Anchors = append(path.Anchors, CornerAnchor(pt))
			cur = pt
			started = true
		case 'L', 'l':
			pt, err := sc.point()
			if err != nil {
				return nil, fmt.Errorf("path data: %w", err)
			}
			pt = abs(pt)
			path.Anchors = append(path.Anchors, CornerAnchor(pt))
			cur = pt
		case 'C', 'c':
			c1, err := sc.point()
			if err == nil {
				var c2, p curve.Point
				if c2, err = sc.point(); err == nil {
					if p, err = sc.point(); err == nil {
						appendCubic(path, abs(c1), abs(c2), abs(p))
						cur = abs(p)
					}
				}
			}
			if err != nil {
				return nil, fmt.Errorf("path data: %w", err)
			}
		case 'Q', 'q':
			q, err := sc.point()
			if err == nil {
				var p curve.Point
				if p, err = sc.point(); err == nil {
					qa, pa := abs(q), abs(p)
					appendCubic(path, cur.Lerp(qa, 2.0/3.0), pa.Lerp(qa, 2.0/3.0), pa)
					cur = pa
				}
			}
			if err != nil {
				return nil, fmt.Errorf("path data: %w", err)
			}
		case 'Z', 'z':
			closePen(path)
			closed = true
		default:
			return nil, fmt.Errorf("path data: unsupported command %q", c)
		}
		cmd = c
	}
	return path, nil
}

// appendCubic records a cubic segment ending at p: the previous anchor's
// outgoing control becomes c1 and the new anchor carries c2 as its incoming
// control.
func appendCubic(path *PenPath, c1, c2, p curve.Point) {
	if n := len(path.Anchors); n > 0 {
		path.Anchors[n-1].COut = c1
	}
	path.Anchors = append(path.Anchors, Anchor{P: p, CIn: c2, COut: p})
}

func closePen(p *PenPath) {
	p.Closed = true
	n := len(p.Anchors)
	if n > 1 && p.Anchors[n-1].P.Distance(p.Anchors[0].P) < closeEps {
		p.Anchors[0].CIn = p.Anchors[n-1].CIn
		p.Anchors = p.Anchors[:n-1]
	}
}

type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) skipSep() {
	for sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case ' ', '\t', '\n', '\r', ',':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *pathScanner) done() bool {
	sc.skipSep()
	return sc.pos >= len(sc.s)
}

// command consumes the next command letter, or returns 0 when the next
// token starts a number.
func (sc *pathScanner) command() byte {
	sc.skipSep()
	if sc.pos >= len(sc.s) {
		return 0
	}
	c := sc.s[sc.pos]
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
		sc.pos++
		return c
	}
	return 0
}

func (sc *pathScanner) number() (float64, error) {
	sc.skipSep()
	start := sc.pos
	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		switch {
		case c >= '0' && c <= '9', c == '.':
			sc.pos++
		case c == 'e', c == 'E':
			sc.pos++
		case c == '+' || c == '-':
			if sc.pos > start && sc.s[sc.pos-1] != 'e' && sc.s[sc.pos-1] != 'E' {
				return finishNumber(sc.s, start, sc.pos)
			}
			sc.pos++
		default:
			return finishNumber(sc.s, start, sc.pos)
		}
	}
	return finishNumber(sc.s, start, sc.pos)
}

func finishNumber(s string, start, end int) (float64, error) {
	if start == end {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	return strconv.ParseFloat(s[start:end], 64)
}

func (sc *pathScanner) point() (curve.Point, error) {
	x, err := sc.number()
	if err != nil {
		return curve.Point{}, err
	}
	y, err := sc.number()
	if err != nil {
		return curve.Point{}, err
	}
	return curve.Pt(x, y), nil
}
