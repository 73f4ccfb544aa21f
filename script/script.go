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

// Package script replays worksheet sessions described in YAML.
//
// A script optionally sets the size of the drawing surface and then lists
// the events of the session.  Each step sets exactly one key:
//
//	surface: {width: 600, height: 450}
//	events:
//	  - toggle: 0
//	  - check: {item: 1, checked: true}
//	  - text: {field: station_name, value: Luna-1}
//	  - tool: rect
//	  - stroke_width: 5
//	  - stroke_color: "#ff0000"
//	  - background: "#eeeeee"
//	  - fill: "rgba(255, 165, 0, 0.3)"
//	  - down: [10, 10]
//	  - move: [20, 20]
//	  - up: [30, 30]
//	  - gesture: [[100, 100], [150, 120], [200, 100]]
//	  - submit: true
//	  - export: true
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/worksheet"
	"seehuhn.de/go/worksheet/export"
	"seehuhn.de/go/worksheet/form"
	"seehuhn.de/go/worksheet/sketch"
)

// ErrStep is wrapped by errors about malformed steps.
var ErrStep = errors.New("invalid step")

// Script is a recorded worksheet session.
type Script struct {
	Surface Surface `yaml:"surface"`
	Events  []Step  `yaml:"events"`
}

// Surface gives the size of the drawing surface.
type Surface struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Point is a pointer position, written as [x, y].
type Point [2]float64

// Step is one entry of the event list.
type Step struct {
	Toggle      *int    `yaml:"toggle,omitempty"`
	Check       *Check  `yaml:"check,omitempty"`
	Text        *Text   `yaml:"text,omitempty"`
	Tool        *string `yaml:"tool,omitempty"`
	StrokeWidth *int    `yaml:"stroke_width,omitempty"`
	StrokeColor *string `yaml:"stroke_color,omitempty"`
	Background  *string `yaml:"background,omitempty"`
	Fill        *string `yaml:"fill,omitempty"`
	Down        *Point  `yaml:"down,omitempty"`
	Move        *Point  `yaml:"move,omitempty"`
	Up          *Point  `yaml:"up,omitempty"`
	Gesture     []Point `yaml:"gesture,omitempty"`
	Submit      bool    `yaml:"submit,omitempty"`
	Export      bool    `yaml:"export,omitempty"`
}

// Check sets a checklist item.
type Check struct {
	Item    int  `yaml:"item"`
	Checked bool `yaml:"checked"`
}

// Text sets a presentation field.
type Text struct {
	Field string `yaml:"field"`
	Value string `yaml:"value"`
}

// Parse reads a script.  Unknown keys are an error.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	sc := &Script{}
	if err := dec.Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i := range sc.Events {
		if _, err := sc.Events[i].events(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return sc, nil
}

// Load reads a script from a file.
func Load(path string) (sc *Script, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Parse(f)
}

// Options returns session options for the surface size of the script.
func (sc *Script) Options() worksheet.Options {
	return worksheet.Options{Width: sc.Surface.Width, Height: sc.Surface.Height}
}

// Run dispatches the steps of the script to the session, in order.  Every
// exported file is passed to sink.  Run stops at the first error.
func Run(ctx context.Context, s *worksheet.Session, sc *Script, sink func(*export.File) error) error {
	for i, step := range sc.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runStep(ctx, s, step, sink); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func runStep(ctx context.Context, s *worksheet.Session, step Step, sink func(*export.File) error) error {
	if step.Export {
		if step.count() != 1 {
			return fmt.Errorf("%w: export must be the only key", ErrStep)
		}
		f, err := s.Export(ctx)
		if err != nil {
			return err
		}
		return sink(f)
	}

	events, err := step.events()
	if err != nil {
		return err
	}
	for _, ev := range events {
		if err := s.Dispatch(ev); err != nil {
			return err
		}
	}
	return nil
}

// count returns the number of keys set in the step.
func (st *Step) count() int {
	n := 0
	for _, set := range []bool{
		st.Toggle != nil, st.Check != nil, st.Text != nil, st.Tool != nil,
		st.StrokeWidth != nil, st.StrokeColor != nil, st.Background != nil,
		st.Fill != nil, st.Down != nil, st.Move != nil, st.Up != nil,
		st.Gesture != nil, st.Submit, st.Export,
	} {
		if set {
			n++
		}
	}
	return n
}

// events converts the step into session events.  Export steps give no
// events.
func (st *Step) events() ([]worksheet.Event, error) {
	if n := st.count(); n != 1 {
		return nil, fmt.Errorf("%w: %d keys set, need exactly one", ErrStep, n)
	}

	var ev worksheet.Event
	switch {
	case st.Toggle != nil:
		ev = worksheet.Toggle{Item: *st.Toggle}
	case st.Check != nil:
		ev = worksheet.SetChecked{Item: st.Check.Item, Checked: st.Check.Checked}
	case st.Text != nil:
		f, err := form.ParseField(st.Text.Field)
		if err != nil {
			return nil, err
		}
		ev = worksheet.SetText{Field: f, Value: st.Text.Value}
	case st.Tool != nil:
		t, err := sketch.ParseTool(*st.Tool)
		if err != nil {
			return nil, err
		}
		ev = worksheet.SelectTool{Tool: t}
	case st.StrokeWidth != nil:
		ev = worksheet.SetStrokeWidth{Width: *st.StrokeWidth}
	case st.StrokeColor != nil:
		c, err := sketch.ParseColor(*st.StrokeColor)
		if err != nil {
			return nil, err
		}
		ev = worksheet.SetStrokeColor{Color: c}
	case st.Background != nil:
		c, err := sketch.ParseColor(*st.Background)
		if err != nil {
			return nil, err
		}
		ev = worksheet.SetBackground{Color: c}
	case st.Fill != nil:
		c, err := sketch.ParseColor(*st.Fill)
		if err != nil {
			return nil, err
		}
		ev = worksheet.SetFill{Color: c}
	case st.Down != nil:
		ev = worksheet.PointerDown{X: st.Down[0], Y: st.Down[1]}
	case st.Move != nil:
		ev = worksheet.PointerMove{X: st.Move[0], Y: st.Move[1]}
	case st.Up != nil:
		ev = worksheet.PointerUp{X: st.Up[0], Y: st.Up[1]}
	case st.Gesture != nil:
		return gesture(st.Gesture)
	case st.Submit:
		ev = worksheet.Submit{}
	case st.Export:
		return nil, nil
	}
	return []worksheet.Event{ev}, nil
}

// gesture expands a list of points into a complete pointer gesture.
func gesture(pts []Point) ([]worksheet.Event, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: empty gesture", ErrStep)
	}
	events := []worksheet.Event{worksheet.PointerDown{X: pts[0][0], Y: pts[0][1]}}
	for _, p := range pts[1:] {
		events = append(events, worksheet.PointerMove{X: p[0], Y: p[1]})
	}
	last := pts[len(pts)-1]
	return append(events, worksheet.PointerUp{X: last[0], Y: last[1]}), nil
}
