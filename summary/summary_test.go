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

package summary

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/worksheet/form"
	"seehuhn.de/go/worksheet/submission"
)

func record(t *testing.T, station, feature, presenter string, drawing *image.RGBA) submission.Record {
	t.Helper()
	var store form.Store
	for f, v := range map[form.Field]string{
		form.StationName:    station,
		form.SpecialFeature: feature,
		form.Presenter:      presenter,
	} {
		if err := store.SetField(f, v); err != nil {
			t.Fatal(err)
		}
	}
	store.SetDrawing(drawing)
	var c submission.Controller
	return c.Submit(store.Snapshot())
}

func drawing(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0x20, 0x40, 0xc0, 0xff
	}
	return img
}

func TestPlaceholders(t *testing.T) {
	doc := Render(record(t, "", "  \n\t", "Kim", nil))

	for _, label := range []string{"Station name", "Special features"} {
		b, ok := doc.Find(label)
		if !ok {
			t.Fatalf("block %q missing", label)
		}
		if b.Text != Placeholder || !b.Missing {
			t.Errorf("%s: got %q, missing=%t", label, b.Text, b.Missing)
		}
	}
	b, _ := doc.Find("Presenter")
	if b.Text != "Kim" || b.Missing {
		t.Errorf("presenter: got %q", b.Text)
	}
}

func TestMissingDrawing(t *testing.T) {
	doc := Render(record(t, "Luna-1", "x", "Kim", nil))
	if doc.Has(Picture) {
		t.Error("picture block without a drawing")
	}
	if !doc.Has(Warning) || !strings.Contains(doc.Text(), WarningText) {
		t.Error("warning missing")
	}
}

func TestVerbatim(t *testing.T) {
	doc := Render(record(t, "Luna-1", "Has a garden module", "Kim", drawing(600, 450)))

	kinds := []Kind{Title, Field, Field, TextBox, Picture}
	if len(doc.Blocks) != len(kinds) {
		t.Fatalf("got %d blocks", len(doc.Blocks))
	}
	for i, k := range kinds {
		if doc.Blocks[i].Kind != k {
			t.Errorf("block %d: got %s, want %s", i, doc.Blocks[i].Kind, k)
		}
	}
	if doc.Blocks[0].Text != TitleText {
		t.Errorf("title %q", doc.Blocks[0].Text)
	}

	text := doc.Text()
	for _, want := range []string{"Station name: Luna-1", "Presenter: Kim", "Has a garden module", "[600x450 image]"} {
		if !strings.Contains(text, want) {
			t.Errorf("%q not in\n%s", want, text)
		}
	}
}

func TestDeterministic(t *testing.T) {
	rec := record(t, "Luna-1", strings.Repeat("A long description of the garden. ", 20), "Kim", drawing(300, 200))
	a := Render(rec).Paint(2)
	b := Render(rec).Paint(2)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same record painted differently")
	}
}

func TestSize(t *testing.T) {
	doc := Render(record(t, "Luna-1", "x", "Kim", drawing(600, 450)))
	w1, h1 := doc.Size(1)
	if w1 != CardWidth {
		t.Errorf("width %d", w1)
	}
	if h1 < 450 {
		t.Errorf("card too small for the picture: height %d", h1)
	}
	for _, scale := range []int{2, 3} {
		w, h := doc.Size(scale)
		if w != scale*w1 || h != scale*h1 {
			t.Errorf("scale %d: %dx%d, want %dx%d", scale, w, h, scale*w1, scale*h1)
		}
		img := doc.Paint(scale)
		if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
			t.Errorf("scale %d: painted %v", scale, img.Bounds())
		}
	}
}

func TestPaintCard(t *testing.T) {
	doc := Render(record(t, "Luna-1", "x", "Kim", nil))
	img := doc.Paint(1)
	_, h := doc.Size(1)

	if got := img.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("rounded corner: got %v", got)
	}
	want := color.RGBA{R: 0x00, G: 0x7b, B: 0xff, A: 0xff}
	if got := img.RGBAAt(0, h/2); got != want {
		t.Errorf("border: got %v, want %v", got, want)
	}
	if got := img.RGBAAt(CardWidth-10, h-10); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("card background: got %v", got)
	}
}

func TestPicture(t *testing.T) {
	doc := Render(record(t, "Luna-1", "x", "Kim", drawing(1200, 900)))

	var pic *op
	for i := range doc.ops {
		if doc.ops[i].kind == opPicture {
			pic = &doc.ops[i]
		}
	}
	if pic == nil {
		t.Fatal("no picture in the layout")
	}
	if w, h := pic.box.URx-pic.box.LLx, pic.box.URy-pic.box.LLy; w != ContentWidth || h != 450 {
		t.Errorf("picture shown at %gx%g", w, h)
	}
	if y := pic.box.LLy; y != math.Trunc(y) {
		t.Errorf("picture starts at fractional row %g", y)
	}

	img := doc.Paint(1)
	cx := int(pic.box.LLx+pic.box.URx) / 2
	cy := int(pic.box.LLy+pic.box.URy) / 2
	got := img.RGBAAt(cx, cy)
	if absDiff(got.R, 0x20) > 2 || absDiff(got.G, 0x40) > 2 || absDiff(got.B, 0xc0) > 2 || got.A != 0xff {
		t.Errorf("picture centre: got %v", got)
	}
}

func TestWrap(t *testing.T) {
	fs := newFaceSet(1)
	defer fs.close()
	face := fs.get(bodyStyle)

	text := "one two three four five six seven eight nine ten\n\nsupercalifragilisticexpialidocious"
	lines := wrap(face, text, 60, 100)
	if len(lines) < 6 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	for i, line := range lines {
		limit := 100.0
		if i == 0 {
			limit = 60
		}
		if w := advance(face, line); w > limit {
			t.Errorf("line %d %q is %.1f wide", i, line, w)
		}
	}
	if !strings.Contains(strings.Join(lines, " "), "one two") {
		t.Errorf("words lost: %q", lines)
	}
	blank := slices.Index(lines, "")
	if blank < 0 {
		t.Fatalf("paragraph break lost: %q", lines)
	}
	if got := strings.Join(lines[blank+1:], ""); got != "supercalifragilisticexpialidocious" {
		t.Errorf("long word split as %q", lines[blank+1:])
	}

	if got := wrap(face, "", 100, 100); len(got) != 1 || got[0] != "" {
		t.Errorf("empty text: %q", got)
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
