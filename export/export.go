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

// Package export turns a summary document into a downloadable PNG file.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"unicode"

	"seehuhn.de/go/worksheet/summary"
)

var (
	// ErrInvalidState is returned when there is no document to export.
	ErrInvalidState = errors.New("invalid-state")

	// ErrRasterize is wrapped by all errors which occur while producing
	// the image.  The export may be retried.
	ErrRasterize = errors.New("rasterization failed")

	// ErrScale is returned for a Pipeline scale below 2.
	ErrScale = errors.New("scale factor must be at least 2")
)

// DefaultScale is the resolution multiplier of exported images.
const DefaultScale = 2

// DefaultStation replaces an empty station name in file names.
const DefaultStation = "space_station"

// Rasterizer converts a document into an image at the given scale.
type Rasterizer interface {
	Rasterize(ctx context.Context, doc *summary.Document, scale int) (image.Image, error)
}

// File is an exported image.
type File struct {
	Name          string
	Data          []byte // PNG
	Width, Height int
}

// Pipeline exports summary documents as PNG images.  The zero value uses
// the default scale, no size limit and the built-in rasterizer.
type Pipeline struct {
	// Scale is the resolution multiplier.  Zero means DefaultScale;
	// values below 2 are rejected.
	Scale int

	// MaxPixels limits the size of the output image.  Zero means no limit.
	MaxPixels int

	// Rasterizer produces the image.  If nil, the document is painted
	// onto an opaque white backdrop.
	Rasterizer Rasterizer
}

func (p *Pipeline) scale() (int, error) {
	switch {
	case p.Scale == 0:
		return DefaultScale, nil
	case p.Scale < 2:
		return 0, fmt.Errorf("%w: got %d", ErrScale, p.Scale)
	}
	return p.Scale, nil
}

// Export rasterises the document and encodes it as PNG.  On failure no
// file is returned.
func (p *Pipeline) Export(ctx context.Context, doc *summary.Document) (*File, error) {
	if doc == nil {
		return nil, ErrInvalidState
	}
	scale, err := p.scale()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := doc.Size(scale)
	if p.MaxPixels > 0 && w*h > p.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d image exceeds %d pixels",
			ErrRasterize, w, h, p.MaxPixels)
	}

	var r Rasterizer = Backdrop{}
	if p.Rasterizer != nil {
		r = p.Rasterizer
	}
	img, err := r.Rasterize(ctx, doc, scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRasterize, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRasterize, err)
	}

	b := img.Bounds()
	return &File{
		Name:   FileName(stationName(doc)),
		Data:   buf.Bytes(),
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// Backdrop is the default Rasterizer.  It paints the document onto an
// opaque background colour, white if Color is unset.
type Backdrop struct {
	Color color.Color
}

// Rasterize implements Rasterizer.
func (b Backdrop) Rasterize(ctx context.Context, doc *summary.Document, scale int) (image.Image, error) {
	card := doc.Paint(scale)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var bg color.Color = color.White
	if b.Color != nil {
		bg = b.Color
	}
	out := image.NewRGBA(card.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), card, image.Point{}, draw.Over)
	return out, nil
}

// stationName returns the station name shown in the document, or "" if
// the name was not entered.
func stationName(doc *summary.Document) string {
	b, ok := doc.Find("Station name")
	if !ok || b.Missing {
		return ""
	}
	return b.Text
}

// FileName returns the name of the exported file for a station.
// Characters which are not allowed in file names are replaced by "_".
func FileName(station string) string {
	station = strings.TrimSpace(station)
	if station == "" {
		station = DefaultStation
	}
	station = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, station)
	return station + "_project_result.png"
}
