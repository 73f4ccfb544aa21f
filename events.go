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

package worksheet

import (
	"image/color"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/worksheet/form"
	"seehuhn.de/go/worksheet/sketch"
)

// Event is a user action on the worksheet.
type Event interface {
	apply(s *Session) error
}

// Toggle flips a checklist item.
type Toggle struct {
	Item int
}

func (e Toggle) apply(s *Session) error {
	return s.store.Toggle(e.Item)
}

// SetChecked sets a checklist item.
type SetChecked struct {
	Item    int
	Checked bool
}

func (e SetChecked) apply(s *Session) error {
	return s.store.SetChecked(e.Item, e.Checked)
}

// SetText changes one of the presentation fields.
type SetText struct {
	Field form.Field
	Value string
}

func (e SetText) apply(s *Session) error {
	return s.store.SetField(e.Field, e.Value)
}

// SelectTool selects the drawing tool.
type SelectTool struct {
	Tool sketch.Tool
}

func (e SelectTool) apply(s *Session) error {
	return s.surface.SetTool(e.Tool)
}

// SetStrokeWidth sets the stroke width for new shapes.
type SetStrokeWidth struct {
	Width int
}

func (e SetStrokeWidth) apply(s *Session) error {
	return s.surface.SetStrokeWidth(e.Width)
}

// SetStrokeColor sets the stroke colour for new shapes.
type SetStrokeColor struct {
	Color color.NRGBA
}

func (e SetStrokeColor) apply(s *Session) error {
	s.surface.SetStrokeColor(e.Color)
	return nil
}

// SetBackground sets the background colour of the drawing.
type SetBackground struct {
	Color color.NRGBA
}

func (e SetBackground) apply(s *Session) error {
	s.surface.SetBackground(e.Color)
	return nil
}

// SetFill sets the interior colour of new rectangles and circles.
type SetFill struct {
	Color color.NRGBA
}

func (e SetFill) apply(s *Session) error {
	s.surface.SetFill(e.Color)
	return nil
}

// PointerDown starts a gesture on the drawing surface.
type PointerDown struct {
	X, Y float64
}

func (e PointerDown) apply(s *Session) error {
	return s.surface.PointerDown(vec.Vec2{X: e.X, Y: e.Y})
}

// PointerMove continues a gesture.
type PointerMove struct {
	X, Y float64
}

func (e PointerMove) apply(s *Session) error {
	return s.surface.PointerMove(vec.Vec2{X: e.X, Y: e.Y})
}

// PointerUp ends a gesture.
type PointerUp struct {
	X, Y float64
}

func (e PointerUp) apply(s *Session) error {
	return s.surface.PointerUp(vec.Vec2{X: e.X, Y: e.Y})
}

// Submit freezes the current form content into a new submission record.
// Submitting again replaces the record.
type Submit struct{}

func (Submit) apply(s *Session) error {
	s.submit()
	return nil
}
