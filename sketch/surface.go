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

// Package sketch implements the drawing surface of the worksheet.
//
// A Surface holds a list of committed shapes.  Pointer gestures add new
// shapes, or move and resize existing ones when the transform tool is
// selected.  After every change the surface renders a new raster image:
// the background colour first, then all shapes in commit order.
package sketch

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/worksheet/raster"
)

// HandleSize is the side length, in pixels, of the square resize handles
// at the corners of the selected shape.
const HandleSize = 10

// minScale bounds the scale factors of a resize away from zero.
const minScale = 0.01

// Surface is a fixed-size drawing surface.
// A Surface is not safe for concurrent use.
type Surface struct {
	width, height int
	cfg           Config

	shapes   []*Shape
	selected int // index into shapes, or -1
	gesture  *gesture

	raster *image.RGBA // nil until the first shape is committed
}

type transformMode int

const (
	modeNone transformMode = iota
	modeMove
	modeResize
)

// gesture is a press-drag-release sequence in progress.
type gesture struct {
	cfg    Config
	points []vec.Vec2

	// transform tool
	mode    transformMode
	target  int
	start   vec.Vec2
	anchor  vec.Vec2 // fixed corner of a resize
	corner  vec.Vec2 // dragged corner of a resize, at the start
	orig    matrix.Matrix
	current matrix.Matrix
}

// New returns an empty surface of the given size in pixels, using the
// default configuration.  Non-positive sizes are replaced by DefaultWidth
// and DefaultHeight.
func New(width, height int) *Surface {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Surface{
		width:    width,
		height:   height,
		cfg:      DefaultConfig(),
		selected: -1,
	}
}

// Size returns the size of the surface in pixels.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Config returns the current settings.
func (s *Surface) Config() Config {
	return s.cfg
}

// SetTool selects the tool for the next gesture.
func (s *Surface) SetTool(t Tool) error {
	if t < Freehand || t > Transform {
		return fmt.Errorf("%w: %s", ErrTool, t)
	}
	s.cfg.Tool = t
	if t != Transform {
		s.selected = -1
	}
	return nil
}

// SetStrokeWidth sets the stroke width for the next gesture.
func (s *Surface) SetStrokeWidth(w int) error {
	if w < MinStrokeWidth || w > MaxStrokeWidth {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			ErrStrokeWidth, w, MinStrokeWidth, MaxStrokeWidth)
	}
	s.cfg.StrokeWidth = w
	return nil
}

// SetStrokeColor sets the stroke colour for the next gesture.
func (s *Surface) SetStrokeColor(c color.NRGBA) {
	s.cfg.Stroke = c
}

// SetFill sets the interior colour of the next rectangle or circle.
func (s *Surface) SetFill(c color.NRGBA) {
	s.cfg.Fill = c
}

// SetBackground changes the background colour.  The raster, if present,
// is rendered again.
func (s *Surface) SetBackground(c color.NRGBA) {
	s.cfg.Background = c
	if s.raster != nil {
		s.raster = s.render(-1, nil)
	}
}

// Shapes returns copies of the committed shapes, in commit order.
func (s *Surface) Shapes() []Shape {
	res := make([]Shape, len(s.shapes))
	for i, sh := range s.shapes {
		res[i] = sh.clone()
	}
	return res
}

// Selected returns the index of the shape selected by the transform tool.
func (s *Surface) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// Active reports whether a gesture is in progress.
func (s *Surface) Active() bool {
	return s.gesture != nil
}

// Raster returns the rendered surface.  The result is nil and false until
// a shape has been committed.  The returned image is not modified by later
// operations on the surface.
func (s *Surface) Raster() (*image.RGBA, bool) {
	return s.raster, s.raster != nil
}

// Preview renders the surface including the gesture in progress.
// Unlike Raster, Preview always returns an image.
func (s *Surface) Preview() *image.RGBA {
	g := s.gesture
	if g == nil {
		return s.render(-1, nil)
	}
	if g.cfg.Tool == Transform {
		if g.mode == modeNone {
			return s.render(-1, nil)
		}
		m := g.current
		return s.render(g.target, &m)
	}
	img := s.render(-1, nil)
	if sh := g.shape(); sh != nil {
		p := raster.NewPainter(img)
		sh.draw(p)
	}
	return img
}

// PointerDown starts a gesture at p.
func (s *Surface) PointerDown(p vec.Vec2) error {
	if s.gesture != nil {
		return ErrGestureActive
	}
	g := &gesture{
		cfg:    s.cfg,
		points: []vec.Vec2{p},
		start:  p,
		target: -1,
	}
	if g.cfg.Tool == Transform {
		s.beginTransform(g, p)
	}
	s.gesture = g
	return nil
}

// PointerMove continues the current gesture.
func (s *Surface) PointerMove(p vec.Vec2) error {
	g := s.gesture
	if g == nil {
		return ErrNoGesture
	}
	g.moveTo(p)
	return nil
}

// PointerUp finishes the current gesture at p.  Drawing tools commit
// their shape, unless it is degenerate; the transform tool commits the
// new position of the selected shape.
func (s *Surface) PointerUp(p vec.Vec2) error {
	g := s.gesture
	if g == nil {
		return ErrNoGesture
	}
	g.moveTo(p)
	s.gesture = nil

	if g.cfg.Tool == Transform {
		if g.mode == modeNone || g.current == g.orig {
			return nil
		}
		s.shapes[g.target].Transform = g.current
	} else {
		sh := g.shape()
		if sh == nil {
			return nil
		}
		s.shapes = append(s.shapes, sh)
	}
	s.raster = s.render(-1, nil)
	return nil
}

// Cancel abandons the current gesture, if any.
func (s *Surface) Cancel() {
	s.gesture = nil
}

// beginTransform decides what a transform gesture starting at p does.
// A corner handle of the selected shape starts a resize, a press on a
// shape selects it and starts a move, a press on empty space clears the
// selection.
func (s *Surface) beginTransform(g *gesture, p vec.Vec2) {
	if s.selected >= 0 {
		sh := s.shapes[s.selected]
		b := sh.Bounds()
		xs := [2]float64{b.LLx, b.URx}
		ys := [2]float64{b.LLy, b.URy}
		for i := range 2 {
			for j := range 2 {
				c := vec.Vec2{X: xs[i], Y: ys[j]}
				if math.Abs(p.X-c.X) <= HandleSize/2 && math.Abs(p.Y-c.Y) <= HandleSize/2 {
					g.mode = modeResize
					g.target = s.selected
					g.corner = c
					g.anchor = vec.Vec2{X: xs[1-i], Y: ys[1-j]}
					g.orig = sh.Transform
					g.current = sh.Transform
					return
				}
			}
		}
	}

	for i := len(s.shapes) - 1; i >= 0; i-- {
		if s.shapes[i].hit(p) {
			s.selected = i
			g.mode = modeMove
			g.target = i
			g.orig = s.shapes[i].Transform
			g.current = g.orig
			return
		}
	}
	s.selected = -1
}

// moveTo records a new pointer position.
func (g *gesture) moveTo(p vec.Vec2) {
	switch g.cfg.Tool {
	case Freehand:
		if p != g.points[len(g.points)-1] {
			g.points = append(g.points, p)
		}
	case Line, Rectangle, Circle:
		g.points = append(g.points[:1], p)
	case Transform:
		switch g.mode {
		case modeMove:
			d := p.Sub(g.start)
			g.current = g.orig.Translate(d.X, d.Y)
		case modeResize:
			fx := scaleFactor(p.X-g.anchor.X, g.corner.X-g.anchor.X)
			fy := scaleFactor(p.Y-g.anchor.Y, g.corner.Y-g.anchor.Y)
			a := g.anchor
			g.current = g.orig.Translate(-a.X, -a.Y).Scale(fx, fy).Translate(a.X, a.Y)
		}
	}
}

func scaleFactor(now, before float64) float64 {
	f := now / before
	if math.Abs(f) < minScale {
		if f < 0 {
			return -minScale
		}
		return minScale
	}
	return f
}

// shape returns the shape drawn by the gesture so far, or nil if the
// shape is degenerate.
func (g *gesture) shape() *Shape {
	sh := &Shape{
		Kind:      g.cfg.Tool,
		Width:     float64(g.cfg.StrokeWidth),
		Stroke:    g.cfg.Stroke,
		Fill:      g.cfg.Fill,
		Transform: matrix.Identity,
	}

	if g.cfg.Tool == Freehand {
		sh.Points = slices.Clone(g.points)
		return sh
	}
	if len(g.points) < 2 {
		return nil
	}

	a, b := g.points[0], g.points[1]
	switch g.cfg.Tool {
	case Line:
		if a == b {
			return nil
		}
		sh.Points = []vec.Vec2{a, b}
	case Rectangle:
		if a.X == b.X || a.Y == b.Y {
			return nil
		}
		sh.Points = []vec.Vec2{a, b}
	case Circle:
		r := b.Sub(a).Length()
		if r == 0 {
			return nil
		}
		sh.Points = []vec.Vec2{a}
		sh.Radius = r
	default:
		return nil
	}
	return sh
}

// render draws the background and all committed shapes into a new image.
// If override is not nil, it replaces the transformation of shape
// number target.
func (s *Surface) render(target int, override *matrix.Matrix) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	p := raster.NewPainter(img)
	p.Clear(s.cfg.Background)
	for i, sh := range s.shapes {
		m := sh.Transform
		if i == target && override != nil {
			m = *override
		}
		p.SetCTM(m)
		sh.draw(p)
	}
	return img
}
