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
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/worksheet/raster"
)

// Size returns the size of the painted card in pixels.  Scale factors
// below 1 are treated as 1.
func (d *Document) Size(scale int) (width, height int) {
	s := float64(max(scale, 1))
	return int(math.Ceil(d.width * s)), int(math.Ceil(d.height * s))
}

// Paint draws the card into a new image.  Pixels outside the rounded
// corners of the card are transparent.
func (d *Document) Paint(scale int) *image.RGBA {
	scale = max(scale, 1)
	s := float64(scale)
	w, h := d.Size(scale)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	p := raster.NewPainter(img)
	p.SetCTM(matrix.Matrix{s, 0, 0, s, 0, 0})
	faces := newFaceSet(s)
	defer faces.close()

	for _, o := range d.ops {
		b := o.box
		switch o.kind {
		case opBox:
			p.Fill(raster.RoundedRect(b.LLx, b.LLy, b.URx, b.URy, o.radius), o.fill)
			if o.border > 0 {
				p.Fill(raster.RoundedRectRing(b.LLx, b.LLy, b.URx, b.URy, o.radius, o.border), o.stroke)
			}

		case opText:
			dr := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(o.color),
				Face: faces.get(o.style),
				Dot:  fixed.Point26_6{X: toFixed(o.x * s), Y: toFixed(o.y * s)},
			}
			dr.DrawString(o.text)

		case opPicture:
			dst := image.Rect(
				int(math.Round(b.LLx*s)), int(math.Round(b.LLy*s)),
				int(math.Round(b.URx*s)), int(math.Round(b.URy*s)))
			xdraw.CatmullRom.Scale(img, dst, o.img, o.img.Bounds(), xdraw.Over, nil)
			p.Fill(raster.RoundedCorners(b.LLx, b.LLy, b.URx, b.URy, o.radius), o.fill)
			p.Fill(raster.RoundedRectRing(b.LLx, b.LLy, b.URx, b.URy, o.radius, o.border), o.stroke)
		}
	}
	return img
}
