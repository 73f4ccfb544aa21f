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

package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"seehuhn.de/go/worksheet/form"
	"seehuhn.de/go/worksheet/submission"
	"seehuhn.de/go/worksheet/summary"
)

func testDocument(t *testing.T, station string) *summary.Document {
	t.Helper()
	var store form.Store
	if err := store.SetField(form.StationName, station); err != nil {
		t.Fatal(err)
	}
	store.SetDrawing(image.NewRGBA(image.Rect(0, 0, 60, 45)))
	var c submission.Controller
	return summary.Render(c.Submit(store.Snapshot()))
}

func TestFileName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Luna-1", "Luna-1_project_result.png"},
		{"", "space_station_project_result.png"},
		{"   ", "space_station_project_result.png"},
		{"a/b\\c:d*e?f\"g<h>i|j", "a_b_c_d_e_f_g_h_i_j_project_result.png"},
		{"tab\there", "tab_here_project_result.png"},
		{"우주정거장", "우주정거장_project_result.png"},
	}
	for _, tc := range cases {
		if got := FileName(tc.in); got != tc.want {
			t.Errorf("FileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExport(t *testing.T) {
	doc := testDocument(t, "Luna-1")
	var p Pipeline
	f, err := p.Export(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "Luna-1_project_result.png" {
		t.Errorf("name %q", f.Name)
	}

	w, h := doc.Size(1)
	if f.Width != 2*w || f.Height != 2*h {
		t.Errorf("size %dx%d, want %dx%d", f.Width, f.Height, 2*w, 2*h)
	}

	img, err := png.Decode(bytes.NewReader(f.Data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != f.Width || b.Dy() != f.Height {
		t.Errorf("decoded size %v", b)
	}
	white := color.RGBAModel.Convert(color.White)
	for _, pt := range []image.Point{{0, 0}, {f.Width - 1, 0}, {0, f.Height - 1}, {f.Width - 1, f.Height - 1}} {
		if got := color.RGBAModel.Convert(img.At(pt.X, pt.Y)); got != white {
			t.Errorf("corner %v: got %v", pt, got)
		}
	}

	again, err := p.Export(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f.Data, again.Data) {
		t.Error("same document exported differently")
	}
}

func TestDefaultStationName(t *testing.T) {
	var p Pipeline
	f, err := p.Export(context.Background(), testDocument(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "space_station_project_result.png" {
		t.Errorf("name %q", f.Name)
	}
}

func TestExportErrors(t *testing.T) {
	doc := testDocument(t, "Luna-1")

	var p Pipeline
	if f, err := p.Export(context.Background(), nil); !errors.Is(err, ErrInvalidState) || f != nil {
		t.Errorf("nil document: %v", err)
	}

	p = Pipeline{Scale: 1}
	if _, err := p.Export(context.Background(), doc); !errors.Is(err, ErrScale) {
		t.Errorf("scale 1: %v", err)
	}

	p = Pipeline{MaxPixels: 1000}
	if f, err := p.Export(context.Background(), doc); !errors.Is(err, ErrRasterize) || f != nil {
		t.Errorf("oversize: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p = Pipeline{}
	if _, err := p.Export(ctx, doc); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: %v", err)
	}
}

// flaky fails on its first call.
type flaky struct {
	calls int
}

var errFlaky = errors.New("out of memory")

func (f *flaky) Rasterize(ctx context.Context, doc *summary.Document, scale int) (image.Image, error) {
	f.calls++
	if f.calls == 1 {
		return nil, errFlaky
	}
	return Backdrop{}.Rasterize(ctx, doc, scale)
}

func TestRetry(t *testing.T) {
	doc := testDocument(t, "Luna-1")
	p := Pipeline{Scale: 3, Rasterizer: &flaky{}}

	f, err := p.Export(context.Background(), doc)
	if !errors.Is(err, ErrRasterize) || !errors.Is(err, errFlaky) || f != nil {
		t.Fatalf("first attempt: %v", err)
	}
	f, err = p.Export(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	w, h := doc.Size(1)
	if f.Width != 3*w || f.Height != 3*h {
		t.Errorf("size %dx%d", f.Width, f.Height)
	}
}
