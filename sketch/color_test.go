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
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#000000", color.NRGBA{A: 255}},
		{"#eeeeee", color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 255}},
		{"#EEE", color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 255}},
		{"#ff000080", color.NRGBA{R: 255, A: 128}},
		{"rgba(255, 165, 0, 0.3)", DefaultConfig().Fill},
		{"rgb(1,2,3)", color.NRGBA{R: 1, G: 2, B: 3, A: 255}},
		{"  #0000ff ", color.NRGBA{B: 255, A: 255}},
		{"orange", color.NRGBA{R: 255, G: 165, A: 255}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "sky", "#12", "#12345", "#gggggg", "rgb(1,2)", "hsl(1)"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrColor) {
			t.Errorf("%q: expected ErrColor, got %v", in, err)
		}
	}
}

func TestFormatColor(t *testing.T) {
	if s := FormatColor(color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 255}); s != "#eeeeee" {
		t.Errorf("got %q", s)
	}
	if s := FormatColor(DefaultConfig().Fill); s != "#ffa5004d" {
		t.Errorf("got %q", s)
	}
}

func TestParseTool(t *testing.T) {
	for _, tool := range []Tool{Freehand, Line, Rectangle, Circle, Transform} {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Errorf("%s: got %v, %v", tool, got, err)
		}
	}
	if _, err := ParseTool("eraser"); !errors.Is(err, ErrTool) {
		t.Errorf("eraser: %v", err)
	}
}
