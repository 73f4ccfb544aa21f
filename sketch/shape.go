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

package sketch

import (
	"image/color"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/worksheet/raster"
)

// minDet is the smallest determinant of a shape transformation which is
// treated as invertible.
const minDet = 1e-12

// Shape is a committed drawing element.
//
// The geometry is stored in the coordinates of the gesture which created
// the shape.  Transform maps these coordinates to surface pixels; it
// starts as the identity and is changed by the transform tool.
type Shape struct {
	Kind Tool // Freehand, Line, Rectangle or Circle

	// Points holds the polyline for Freehand and Line, two opposite
	// corners for Rectangle, and the centre for Circle.
	Points []vec.Vec2
	Radius float64 // Circle only

	Width  float64
	Stroke color.NRGBA
	Fill   color.NRGBA // Rectangle and Circle only

	Transform matrix.Matrix
}

func (s *Shape) clone() Shape {
	c := *s
	c.Points = slices.Clone(s.Points)
	return c
}

// draw paints the shape in the painter's current transformation.
func (s *Shape) draw(p *raster.Painter) {
	switch s.Kind {
	case Freehand, Line:
		pen := raster.Pen{Width: s.Width, Cap: graphics.LineCapRound}
		p.Fill(pen.Polyline(s.Points), s.Stroke)
	case Rectangle:
		a, b := s.Points[0], s.Points[1]
		p.Fill(raster.Rect(a.X, a.Y, b.X, b.Y), s.Fill)
		p.Fill(raster.RectRing(a.X, a.Y, b.X, b.Y, s.Width), s.Stroke)
	case Circle:
		c := s.Points[0]
		p.Fill(raster.Ellipse(c, s.Radius, s.Radius), s.Fill)
		p.Fill(raster.EllipseRing(c, s.Radius, s.Radius, s.Width), s.Stroke)
	}
}

// localBounds returns the area covered by the shape, including the
// stroke, before the transformation is applied.
func (s *Shape) localBounds() rect.Rect {
	d := s.Width / 2
	if s.Kind == Circle {
		c := s.Points[0]
		r := s.Radius + d
		return rect.Rect{LLx: c.X - r, LLy: c.Y - r, URx: c.X + r, URy: c.Y + r}
	}

	b := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, p := range s.Points {
		b.LLx = min(b.LLx, p.X-d)
		b.LLy = min(b.LLy, p.Y-d)
		b.URx = max(b.URx, p.X+d)
		b.URy = max(b.URy, p.Y+d)
	}
	return b
}

// Bounds returns the bounding box of the shape in surface pixels.
func (s *Shape) Bounds() rect.Rect {
	b := s.localBounds()
	corners := [4]vec.Vec2{
		{X: b.LLx, Y: b.LLy}, {X: b.URx, Y: b.LLy},
		{X: b.LLx, Y: b.URy}, {X: b.URx, Y: b.URy},
	}
	out := rect.Rect{
		LLx: math.Inf(1), LLy: math.Inf(1),
		URx: math.Inf(-1), URy: math.Inf(-1),
	}
	for _, c := range corners {
		x, y := s.Transform.Apply(c.X, c.Y)
		out.LLx = min(out.LLx, x)
		out.LLy = min(out.LLy, y)
		out.URx = max(out.URx, x)
		out.URy = max(out.URy, y)
	}
	return out
}

// hit reports whether the surface point p lies inside the bounding box of
// the shape.
func (s *Shape) hit(p vec.Vec2) bool {
	m := s.Transform
	if math.Abs(m[0]*m[3]-m[1]*m[2]) < minDet {
		return false
	}
	x, y := m.Inv().Apply(p.X, p.Y)
	b := s.localBounds()
	return x >= b.LLx && x <= b.URx && y >= b.LLy && y <= b.URy
}
