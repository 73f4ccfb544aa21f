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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

// Painter composites filled paths onto an RGBA image.
type Painter struct {
	*Rasteriser

	// Dst receives the painted pixels.  Its bounds must start at (0, 0).
	Dst *image.RGBA
}

// NewPainter returns a Painter whose clip rectangle covers all of dst.
func NewPainter(dst *image.RGBA) *Painter {
	b := dst.Bounds()
	clip := rect.Rect{URx: float64(b.Dx()), URy: float64(b.Dy())}
	return &Painter{
		Rasteriser: NewRasteriser(clip),
		Dst:        dst,
	}
}

// SetCTM sets the transformation used by the following Fill calls.
func (p *Painter) SetCTM(m matrix.Matrix) {
	p.CTM = m
}

// Clear sets every pixel of the destination to col.
func (p *Painter) Clear(col color.NRGBA) {
	c := premultiply(col)
	pix := p.Dst.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Fill paints the interior of the path (nonzero rule) with col, using
// source-over compositing.
func (p *Painter) Fill(d *path.Data, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	sr := float32(col.R)
	sg := float32(col.G)
	sb := float32(col.B)
	sa := float32(col.A) / 255

	dst := p.Dst
	p.FillNonZero(d, func(y, xMin int, coverage []float32) {
		row := dst.Pix[y*dst.Stride+4*xMin:]
		for i, c := range coverage {
			a := c * sa
			if a <= 0 {
				continue
			}
			k := 1 - a
			px := row[4*i : 4*i+4 : 4*i+4]
			px[0] = to8(sr*a + float32(px[0])*k)
			px[1] = to8(sg*a + float32(px[1])*k)
			px[2] = to8(sb*a + float32(px[2])*k)
			px[3] = to8(255*a + float32(px[3])*k)
		}
	})
}

func to8(v float32) uint8 {
	v += 0.5
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

func premultiply(c color.NRGBA) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
