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
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var (
	// ErrStrokeWidth is returned for widths outside
	// [MinStrokeWidth, MaxStrokeWidth].
	ErrStrokeWidth = errors.New("stroke width out of range")

	// ErrColor is returned by ParseColor for unparseable colours.
	ErrColor = errors.New("invalid colour")

	// ErrTool is returned for unknown tool names and values.
	ErrTool = errors.New("unknown tool")

	// ErrNoGesture is returned by PointerMove and PointerUp when no
	// gesture was started.
	ErrNoGesture = errors.New("no gesture in progress")

	// ErrGestureActive is returned by PointerDown while a gesture is in
	// progress.
	ErrGestureActive = errors.New("gesture already in progress")
)

// Tool selects what a gesture on the surface does.
type Tool int

// These are the tools of the drawing surface.
const (
	Freehand Tool = iota
	Line
	Rectangle
	Circle
	Transform
)

var toolNames = [...]string{
	Freehand:  "freehand",
	Line:      "line",
	Rectangle: "rect",
	Circle:    "circle",
	Transform: "transform",
}

func (t Tool) String() string {
	if t >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool returns the tool with the given name.
func ParseTool(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range toolNames {
		if n == name {
			return Tool(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrTool, name)
}

// Stroke widths are limited to this range.
const (
	MinStrokeWidth = 1
	MaxStrokeWidth = 25
)

// Default surface size in pixels.
const (
	DefaultWidth  = 600
	DefaultHeight = 450
)

// Config holds the settings of the drawing surface.  A gesture uses the
// Config which was current when it started.
type Config struct {
	Tool        Tool
	StrokeWidth int
	Stroke      color.NRGBA
	Background  color.NRGBA
	Fill        color.NRGBA // interior of rectangles and circles
}

// DefaultConfig returns the initial settings of a new surface.
func DefaultConfig() Config {
	return Config{
		Tool:        Freehand,
		StrokeWidth: 3,
		Stroke:      color.NRGBA{A: 0xff},
		Background:  color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
		Fill:        color.NRGBA{R: 255, G: 165, B: 0, A: 77},
	}
}
