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
	"image/color"
	"math"

	"seehuhn.de/go/geom/rect"
)

// Card geometry, in pixels at scale 1.
const (
	ContentWidth = 600 // also the maximal width of the picture
	cardBorder   = 2
	cardPadding  = 25
	cardRadius   = 15
	cardInset    = cardBorder + cardPadding
	CardWidth    = ContentWidth + 2*cardInset

	lineSpacing = 1.3 // line height as a multiple of the font size

	ruleGap       = 10 // between title and rule
	ruleWidth     = 2
	sectionGap    = 20
	paragraphGap  = 12
	headingGap    = 8
	boxPadding    = 15
	boxBorder     = 1
	boxRadius     = 5
	boxMinHeight  = 80
	pictureGap    = 10
	pictureBorder = 1
	pictureRadius = 5
)

var (
	titleStyle   = textStyle{bold: true, size: 24}
	labelStyle   = textStyle{bold: true, size: 17.6}
	valueStyle   = textStyle{size: 17.6}
	headingStyle = textStyle{bold: true, size: 16}
	bodyStyle    = textStyle{size: 16}
)

var (
	white       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black       = color.NRGBA{A: 0xff}
	accent      = color.NRGBA{R: 0x00, G: 0x7b, B: 0xff, A: 0xff}
	ruleColor   = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	headingGray = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	boxFill     = color.NRGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}
	boxStroke   = color.NRGBA{R: 0xde, G: 0xe2, B: 0xe6, A: 0xff}
	frameColor  = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	warningRed  = color.NRGBA{R: 0xff, A: 0xff}
)

type opKind int

const (
	opBox opKind = iota
	opText
	opPicture
)

// op is one drawing operation of the layout, in scale 1 coordinates.
type op struct {
	kind opKind

	// opBox and opPicture
	box    rect.Rect
	radius float64
	border float64
	fill   color.NRGBA
	stroke color.NRGBA
	img    image.Image

	// opText
	x, y  float64 // start of the baseline
	text  string
	style textStyle
	color color.NRGBA
}

// layouter accumulates the operations of a document from top to bottom.
type layouter struct {
	faces *faceSet
	ops   []op
	y     float64
}

// layout places the blocks of the document.
func (d *Document) layout() {
	l := &layouter{faces: newFaceSet(1), y: cardInset}
	defer l.faces.close()

	l.ops = append(l.ops, op{}) // the card, filled in below
	for i, b := range d.Blocks {
		if i > 0 && b.Kind != Title {
			l.y += paragraphGap
		}
		switch b.Kind {
		case Title:
			l.title(b.Text)
		case Field:
			l.field(b.Label, b.Text)
		case TextBox:
			l.heading(b.Label)
			l.textBox(b.Text)
		case Picture:
			l.heading(b.Label)
			l.picture(b.Image)
		case Warning:
			l.y += headingGap
			l.lines(wrap(l.faces.get(headingStyle), b.Text, ContentWidth, ContentWidth),
				cardInset, headingStyle, warningRed)
		}
	}
	l.y += cardInset

	d.width = CardWidth
	d.height = math.Ceil(l.y)
	l.ops[0] = op{
		kind:   opBox,
		box:    rect.Rect{URx: d.width, URy: d.height},
		radius: cardRadius,
		border: cardBorder,
		fill:   white,
		stroke: accent,
	}
	d.ops = l.ops
}

func lineHeight(st textStyle) float64 {
	return st.size * lineSpacing
}

// lines adds one text operation per line, starting at the current
// position, and moves the position below the last line.
func (l *layouter) lines(lines []string, x float64, st textStyle, col color.NRGBA) {
	face := l.faces.get(st)
	lh := lineHeight(st)
	base := baseline(face, lh)
	for _, line := range lines {
		if line != "" {
			l.ops = append(l.ops, op{kind: opText, x: x, y: l.y + base, text: line, style: st, color: col})
		}
		l.y += lh
	}
}

func (l *layouter) title(text string) {
	face := l.faces.get(titleStyle)
	lh := lineHeight(titleStyle)
	base := baseline(face, lh)
	for _, line := range wrap(face, text, ContentWidth, ContentWidth) {
		x := cardInset + (ContentWidth-advance(face, line))/2
		l.ops = append(l.ops, op{kind: opText, x: x, y: l.y + base, text: line, style: titleStyle, color: accent})
		l.y += lh
	}

	l.y += ruleGap
	l.ops = append(l.ops, op{
		kind: opBox,
		box:  rect.Rect{LLx: cardInset, LLy: l.y, URx: cardInset + ContentWidth, URy: l.y + ruleWidth},
		fill: ruleColor,
	})
	l.y += ruleWidth + sectionGap
}

// field lays out a bold label followed by the value on the same line.
func (l *layouter) field(label, value string) {
	label += ": "
	labelFace := l.faces.get(labelStyle)
	valueFace := l.faces.get(valueStyle)
	lw := advance(labelFace, label)
	lh := lineHeight(valueStyle)

	l.ops = append(l.ops, op{
		kind:  opText,
		x:     cardInset,
		y:     l.y + baseline(labelFace, lh),
		text:  label,
		style: labelStyle,
		color: black,
	})

	lines := wrap(valueFace, value, ContentWidth-lw, ContentWidth)
	base := baseline(valueFace, lh)
	for i, line := range lines {
		x := float64(cardInset)
		if i == 0 {
			x += lw
		}
		if line != "" {
			l.ops = append(l.ops, op{kind: opText, x: x, y: l.y + base, text: line, style: valueStyle, color: black})
		}
		l.y += lh
	}
}

func (l *layouter) heading(label string) {
	l.y += headingGap
	l.lines([]string{label + ":"}, cardInset, headingStyle, headingGray)
	l.y += headingGap
}

func (l *layouter) textBox(text string) {
	inner := float64(ContentWidth - 2*(boxBorder+boxPadding))
	lines := wrap(l.faces.get(bodyStyle), text, inner, inner)
	height := max(float64(len(lines))*lineHeight(bodyStyle), boxMinHeight) + 2*(boxBorder+boxPadding)

	top := l.y
	l.ops = append(l.ops, op{
		kind:   opBox,
		box:    rect.Rect{LLx: cardInset, LLy: top, URx: cardInset + ContentWidth, URy: top + height},
		radius: boxRadius,
		border: boxBorder,
		fill:   boxFill,
		stroke: boxStroke,
	})
	l.y = top + boxBorder + boxPadding
	l.lines(lines, cardInset+boxBorder+boxPadding, bodyStyle, black)
	l.y = top + height
}

// picture shows img at its natural size, or scaled down to the content
// width, inside a thin rounded frame.
func (l *layouter) picture(img image.Image) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w > ContentWidth {
		h = math.Round(h * ContentWidth / w)
		w = ContentWidth
	}

	// whole pixels, so that the picture is not resampled by a fraction
	l.y = math.Ceil(l.y + pictureGap)
	l.ops = append(l.ops, op{
		kind:   opPicture,
		box:    rect.Rect{LLx: cardInset, LLy: l.y, URx: cardInset + w, URy: l.y + h},
		radius: pictureRadius,
		border: pictureBorder,
		stroke: frameColor,
		fill:   white,
		img:    img,
	})
	l.y += h
}
