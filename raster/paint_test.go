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
	"image"
	"image/color"
	"testing"

	"seehuhn.de/go/geom/matrix"
)

func TestPainterOpaque(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	p := NewPainter(dst)
	bg := color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	red := color.NRGBA{R: 0xff, A: 0xff}
	p.Clear(bg)
	p.Fill(Rect(5, 5, 15, 15), red)

	if got := dst.RGBAAt(10, 10); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("inside: got %v", got)
	}
	if got := dst.RGBAAt(2, 2); got != (color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}) {
		t.Errorf("outside: got %v", got)
	}
}

func TestPainterTranslucent(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	p := NewPainter(dst)
	p.Clear(color.NRGBA{R: 200, G: 100, B: 0, A: 255})
	p.Fill(Rect(0, 0, 4, 4), color.NRGBA{R: 0, G: 0, B: 255, A: 128})

	// 128/255 of blue over the background
	want := color.RGBA{R: 100, G: 50, B: 128, A: 255}
	got := dst.RGBAAt(1, 1)
	if diff(got.R, want.R) > 1 || diff(got.G, want.G) > 1 || diff(got.B, want.B) > 1 || got.A != want.A {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPainterLaterWins(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 30, 30))
	p := NewPainter(dst)
	p.Clear(color.NRGBA{A: 255})
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	p.Fill(Rect(0, 10, 30, 20), red)
	p.Fill(Rect(10, 0, 20, 30), blue)

	if got := dst.RGBAAt(15, 15); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("overlap: got %v", got)
	}
	if got := dst.RGBAAt(5, 15); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("red only: got %v", got)
	}
}

func TestPainterCTM(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	p := NewPainter(dst)
	p.SetCTM(matrix.Matrix{2, 0, 0, 2, 0, 0})
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	p.Fill(Rect(0, 0, 2, 2), white)

	if got := dst.RGBAAt(3, 3); got.A != 255 {
		t.Errorf("scaled pixel not painted: %v", got)
	}
	if got := dst.RGBAAt(4, 4); got.A != 0 {
		t.Errorf("pixel outside the scaled rectangle painted: %v", got)
	}
}

func TestPremultiply(t *testing.T) {
	got := premultiply(color.NRGBA{R: 255, G: 165, A: 0})
	if got != (color.RGBA{}) {
		t.Errorf("transparent colour: got %v", got)
	}
	got = premultiply(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("white: got %v", got)
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
