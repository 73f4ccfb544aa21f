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

// Package form holds the mutable state of the worksheet form: the
// brainstorming checklist, the presentation text fields and the latest
// drawing.
package form

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

var (
	// ErrChecklistIndex is returned for checklist items outside
	// [0, NumItems).
	ErrChecklistIndex = errors.New("checklist index out of range")

	// ErrUnknownField is returned for names and values which are not one
	// of the presentation fields.
	ErrUnknownField = errors.New("unknown field")
)

// Labels are the prompts of the brainstorming checklist.
var Labels = [NumItems]string{
	"Plan how the station gets its energy",
	"Design the living quarters",
	"Plan the science laboratory",
	"Design the spacecraft docking system",
	"Prepare for emergencies",
}

// NumItems is the number of checklist items.
const NumItems = 5

// Item is one entry of the checklist.
type Item struct {
	Label   string
	Checked bool
}

// Field identifies one of the presentation text fields.
type Field int

// These are the presentation text fields.
const (
	StationName Field = iota
	SpecialFeature
	Presenter
)

var fieldNames = [...]string{
	StationName:    "station_name",
	SpecialFeature: "special_feature",
	Presenter:      "presenter",
}

func (f Field) String() string {
	if f >= 0 && int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField returns the field with the given name.
func ParseField(name string) (Field, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range fieldNames {
		if n == name {
			return Field(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Presentation holds the three text fields.  No validation is applied.
type Presentation struct {
	StationName    string
	SpecialFeature string
	Presenter      string
}

// Store is the form state of one session.  The zero value is an empty
// form with all checklist items unchecked.
type Store struct {
	checked [NumItems]bool
	fields  Presentation
	drawing *image.RGBA
}

// Toggle flips checklist item i.
func (s *Store) Toggle(i int) error {
	if i < 0 || i >= NumItems {
		return fmt.Errorf("%w: %d", ErrChecklistIndex, i)
	}
	s.checked[i] = !s.checked[i]
	return nil
}

// SetChecked sets checklist item i.
func (s *Store) SetChecked(i int, checked bool) error {
	if i < 0 || i >= NumItems {
		return fmt.Errorf("%w: %d", ErrChecklistIndex, i)
	}
	s.checked[i] = checked
	return nil
}

// Checklist returns the current checklist.
func (s *Store) Checklist() [NumItems]Item {
	var items [NumItems]Item
	for i := range items {
		items[i] = Item{Label: Labels[i], Checked: s.checked[i]}
	}
	return items
}

// SetField stores the text of a presentation field verbatim.
func (s *Store) SetField(f Field, value string) error {
	switch f {
	case StationName:
		s.fields.StationName = value
	case SpecialFeature:
		s.fields.SpecialFeature = value
	case Presenter:
		s.fields.Presenter = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return nil
}

// Fields returns the current presentation fields.
func (s *Store) Fields() Presentation {
	return s.fields
}

// SetDrawing records the latest raster of the drawing surface.  The image
// must not be modified afterwards; nil means that nothing was drawn.
func (s *Store) SetDrawing(img *image.RGBA) {
	s.drawing = img
}

// Drawing returns the latest raster of the drawing surface.
func (s *Store) Drawing() (*image.RGBA, bool) {
	return s.drawing, s.drawing != nil
}

// Snapshot is a copy of the form state at one point in time.
type Snapshot struct {
	Checklist    [NumItems]Item
	Presentation Presentation

	// Drawing is shared with the store and must be treated as read-only.
	Drawing *image.RGBA
}

// Snapshot returns the current state of the form.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Checklist:    s.Checklist(),
		Presentation: s.fields,
		Drawing:      s.drawing,
	}
}
