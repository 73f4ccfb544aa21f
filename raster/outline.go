// seehuhn.de/go/worksheet - a guided classroom worksheet
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Orientation convention:
//
// All outlines built in this file are filled with the nonzero rule.  Solid
// pieces run clockwise on screen (y pointing down, turning from +x towards
// +y), so that overlapping pieces add up instead of cancelling out.  Holes
// run the other way round.  Coverage is summed over all contours, so a
// pixel on the edge of two overlapping pieces is counted twice; strokes
// are therefore built as one contour.

// kappa is the control point distance for a quarter circle approximated
// by a cubic Bézier curve.
const kappa = 0.5522847498307936

// minSegment is the shortest segment length which still has a direction.
const minSegment = 1e-9

// collinearity is the largest sine of the angle between two segments which
// are joined without a bend.
const collinearity = 1e-9

// Pen turns polylines into fillable outlines.  Joins are always round.
type Pen struct {
	Width float64
	Cap   graphics.LineCapStyle
}

// penSegment is one segment of a polyline, with its unit tangent t and the
// normal n, which is t turned from +x towards +y.
type penSegment struct {
	a, b   vec.Vec2
	t, n   vec.Vec2
	length float64
}

// Polyline returns the outline of the stroked polyline as a single closed
// contour: the offset chain on one side, the end cap, the offset chain on
// the other side and the start cap.  The contour does not overlap itself
// unless the polyline does, so that anti-aliased edges are not counted
// twice.
//
// A single point, or a polyline of coincident points, gives a dot for round
// caps, a square for square caps and nothing for butt caps.
func (pen Pen) Polyline(pts []vec.Vec2) *path.Data {
	out := &path.Data{}
	if len(pts) == 0 || pen.Width <= 0 {
		return out
	}
	d := pen.Width / 2

	// drop repeated points
	clean := make([]vec.Vec2, 0, len(pts))
	for _, p := range pts {
		if len(clean) > 0 && p.Sub(clean[len(clean)-1]).Length() < minSegment {
			continue
		}
		clean = append(clean, p)
	}

	if len(clean) == 1 {
		p := clean[0]
		switch pen.Cap {
		case graphics.LineCapRound:
			addEllipse(out, p, d, d, false)
		case graphics.LineCapSquare:
			addRect(out, p.X-d, p.Y-d, p.X+d, p.Y+d, false)
		}
		return out
	}

	fwd := penSegments(clean)
	slices.Reverse(clean)
	bwd := penSegments(clean)

	first, last := fwd[0], fwd[len(fwd)-1]
	out.MoveTo(first.a.Sub(first.n.Mul(d)))
	pen.addSide(out, fwd, d)
	pen.addCap(out, last.b, last.t, d)
	pen.addSide(out, bwd, d)
	pen.addCap(out, first.a, first.t.Mul(-1), d)
	out.Close()
	return out
}

func penSegments(pts []vec.Vec2) []penSegment {
	segs := make([]penSegment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		l := b.Sub(a).Length()
		t := b.Sub(a).Mul(1 / l)
		segs = append(segs, penSegment{
			a:      a,
			b:      b,
			t:      t,
			n:      vec.Vec2{X: -t.Y, Y: t.X},
			length: l,
		})
	}
	return segs
}

// addSide appends the offset chain at distance d on the -n side of segs.
// The current point must be the start of the chain.
func (pen Pen) addSide(out *path.Data, segs []penSegment, d float64) {
	for i := range segs {
		s := &segs[i]
		end := s.b.Sub(s.n.Mul(d))
		if i == len(segs)-1 {
			out.LineTo(end)
			return
		}
		next := &segs[i+1]
		start := s.b.Sub(next.n.Mul(d))

		cross := s.t.X*next.t.Y - s.t.Y*next.t.X
		dot := s.t.Dot(next.t)
		switch {
		case math.Abs(cross) < collinearity && dot > 0:
			out.LineTo(end)
		case cross >= 0:
			// the -n side is the outside of the bend
			out.LineTo(end)
			addArc(out, s.b, d, s.n.Mul(-1), math.Atan2(cross, dot))
		default:
			// Inside of the bend.  The offset lines meet at distance
			// d*tan(θ/2) before the vertex; if that is too far back, go
			// through the vertex instead.
			back := d * -cross / (1 + dot)
			if back <= min(s.length, next.length)/2 {
				out.LineTo(s.b.Sub(s.n.Add(next.n).Mul(d / (1 + dot))))
			} else {
				out.LineTo(end).LineTo(s.b).LineTo(start)
			}
		}
	}
}

// addCap appends the cap at p, where t is the unit direction pointing away
// from the line.  The current point must be p - n*d and the cap ends at
// p + n*d.
func (pen Pen) addCap(out *path.Data, p, t vec.Vec2, d float64) {
	n := vec.Vec2{X: -t.Y, Y: t.X}
	switch pen.Cap {
	case graphics.LineCapRound:
		addArc(out, p, d, n.Mul(-1), math.Pi)
	case graphics.LineCapSquare:
		ext := p.Add(t.Mul(d))
		out.LineTo(ext.Sub(n.Mul(d))).
			LineTo(ext.Add(n.Mul(d))).
			LineTo(p.Add(n.Mul(d)))
	default:
		out.LineTo(p.Add(n.Mul(d)))
	}
}

// addArc appends a circular arc around c with radius r, starting in the
// unit direction u and turning by sweep radians from +x towards +y.  The
// current point must be the start of the arc.
func addArc(out *path.Data, c vec.Vec2, r float64, u vec.Vec2, sweep float64) {
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	phi := sweep / float64(n)
	h := r * 4 / 3 * math.Tan(phi/4)
	for range n {
		v := rotate(u, phi)
		p0 := c.Add(u.Mul(r))
		p1 := c.Add(v.Mul(r))
		out.CubeTo(
			p0.Add(vec.Vec2{X: -u.Y, Y: u.X}.Mul(h)),
			p1.Sub(vec.Vec2{X: -v.Y, Y: v.X}.Mul(h)),
			p1)
		u = v
	}
}

func rotate(u vec.Vec2, phi float64) vec.Vec2 {
	sin, cos := math.Sincos(phi)
	return vec.Vec2{X: u.X*cos - u.Y*sin, Y: u.X*sin + u.Y*cos}
}

// Rect returns the solid rectangle spanned by two corners.
func Rect(x0, y0, x1, y1 float64) *path.Data {
	out := &path.Data{}
	addRect(out, min(x0, x1), min(y0, y1), max(x0, x1), max(y0, y1), false)
	return out
}

// RectRing returns the outline of a rectangle stroked with the given
// width, centred on the rectangle's edges, with mitred corners.
func RectRing(x0, y0, x1, y1, width float64) *path.Data {
	x0, x1 = min(x0, x1), max(x0, x1)
	y0, y1 = min(y0, y1), max(y0, y1)
	d := width / 2

	out := &path.Data{}
	addRect(out, x0-d, y0-d, x1+d, y1+d, false)
	if x1-x0 > width && y1-y0 > width {
		addRect(out, x0+d, y0+d, x1-d, y1-d, true)
	}
	return out
}

// addRect appends an axis-aligned rectangle with x0 < x1 and y0 < y1.
func addRect(out *path.Data, x0, y0, x1, y1 float64, hole bool) {
	if !hole {
		out.MoveTo(vec.Vec2{X: x0, Y: y1}).
			LineTo(vec.Vec2{X: x0, Y: y0}).
			LineTo(vec.Vec2{X: x1, Y: y0}).
			LineTo(vec.Vec2{X: x1, Y: y1}).
			Close()
		return
	}
	out.MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		Close()
}

// Ellipse returns the solid axis-aligned ellipse with the given centre
// and radii.
func Ellipse(c vec.Vec2, rx, ry float64) *path.Data {
	out := &path.Data{}
	addEllipse(out, c, math.Abs(rx), math.Abs(ry), false)
	return out
}

// EllipseRing returns the outline of an ellipse stroked with the given
// width.  The inner and outer boundaries are ellipses with radii shrunk
// and grown by half the width.
func EllipseRing(c vec.Vec2, rx, ry, width float64) *path.Data {
	rx, ry = math.Abs(rx), math.Abs(ry)
	d := width / 2

	out := &path.Data{}
	addEllipse(out, c, rx+d, ry+d, false)
	if rx > d && ry > d {
		addEllipse(out, c, rx-d, ry-d, true)
	}
	return out
}

// addEllipse appends an ellipse made of four cubic Bézier curves.
func addEllipse(out *path.Data, c vec.Vec2, rx, ry float64, hole bool) {
	kx, ky := rx*kappa, ry*kappa
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: c.X + x, Y: c.Y + y} }

	if !hole {
		// right, bottom, left, top
		out.MoveTo(pt(rx, 0)).
			CubeTo(pt(rx, ky), pt(kx, ry), pt(0, ry)).
			CubeTo(pt(-kx, ry), pt(-rx, ky), pt(-rx, 0)).
			CubeTo(pt(-rx, -ky), pt(-kx, -ry), pt(0, -ry)).
			CubeTo(pt(kx, -ry), pt(rx, -ky), pt(rx, 0)).
			Close()
		return
	}
	// right, top, left, bottom
	out.MoveTo(pt(rx, 0)).
		CubeTo(pt(rx, -ky), pt(kx, -ry), pt(0, -ry)).
		CubeTo(pt(-kx, -ry), pt(-rx, -ky), pt(-rx, 0)).
		CubeTo(pt(-rx, ky), pt(-kx, ry), pt(0, ry)).
		CubeTo(pt(kx, ry), pt(rx, ky), pt(rx, 0)).
		Close()
}

// RoundedRect returns a solid rectangle with circular corners of radius
// r.  The radius is reduced if the rectangle is too small for it.
func RoundedRect(x0, y0, x1, y1, r float64) *path.Data {
	out := &path.Data{}
	addRoundedRect(out, min(x0, x1), min(y0, y1), max(x0, x1), max(y0, y1), r, false)
	return out
}

// RoundedRectRing returns a frame of the given width lying inside the
// rounded rectangle, the way a CSS border is drawn.
func RoundedRectRing(x0, y0, x1, y1, r, width float64) *path.Data {
	x0, x1 = min(x0, x1), max(x0, x1)
	y0, y1 = min(y0, y1), max(y0, y1)

	out := &path.Data{}
	addRoundedRect(out, x0, y0, x1, y1, r, false)
	if x1-x0 > 2*width && y1-y0 > 2*width {
		addRoundedRect(out, x0+width, y0+width, x1-width, y1-width, max(r-width, 0), true)
	}
	return out
}

func addRoundedRect(out *path.Data, x0, y0, x1, y1, r float64, hole bool) {
	r = max(0, min(r, (x1-x0)/2, (y1-y0)/2))
	if r == 0 {
		addRect(out, x0, y0, x1, y1, hole)
		return
	}
	k := r * (1 - kappa)
	v := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

	if !hole {
		// start on the left edge, go up
		out.MoveTo(v(x0, y1-r)).
			LineTo(v(x0, y0+r)).
			CubeTo(v(x0, y0+k), v(x0+k, y0), v(x0+r, y0)).
			LineTo(v(x1-r, y0)).
			CubeTo(v(x1-k, y0), v(x1, y0+k), v(x1, y0+r)).
			LineTo(v(x1, y1-r)).
			CubeTo(v(x1, y1-k), v(x1-k, y1), v(x1-r, y1)).
			LineTo(v(x0+r, y1)).
			CubeTo(v(x0+k, y1), v(x0, y1-k), v(x0, y1-r)).
			Close()
		return
	}
	// start on the left edge, go down
	out.MoveTo(v(x0, y0+r)).
		LineTo(v(x0, y1-r)).
		CubeTo(v(x0, y1-k), v(x0+k, y1), v(x0+r, y1)).
		LineTo(v(x1-r, y1)).
		CubeTo(v(x1-k, y1), v(x1, y1-k), v(x1, y1-r)).
		LineTo(v(x1, y0+r)).
		CubeTo(v(x1, y0+k), v(x1-k, y0), v(x1-r, y0)).
		LineTo(v(x0+r, y0)).
		CubeTo(v(x0+k, y0), v(x0, y0+k), v(x0, y0+r)).
		Close()
}

// RoundedCorners returns the four corner pieces of the rectangle which lie
// outside the rounded rectangle with corner radius r.  Painting them in
// the background colour rounds off the corners of an image.
func RoundedCorners(x0, y0, x1, y1, r float64) *path.Data {
	x0, x1 = min(x0, x1), max(x0, x1)
	y0, y1 = min(y0, y1), max(y0, y1)

	out := &path.Data{}
	addRect(out, x0, y0, x1, y1, false)
	addRoundedRect(out, x0, y0, x1, y1, r, true)
	return out
}
