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

// Package summary turns a submission record into the summary card of the
// worksheet.
//
// Render builds a Document from a record.  The document lists its content
// as a sequence of blocks and carries a layout which is computed once, at
// scale 1.  Paint draws the card at an integer scale factor; all scales
// show the same line breaks and block positions.
package summary

import (
	"fmt"
	"image"
	"strings"

	"seehuhn.de/go/worksheet/submission"
)

// Fixed texts of the summary card.
const (
	TitleText   = "Our Team's Final Project Summary"
	Placeholder = "not entered"
	WarningText = "design not drawn"
)

// Kind is the type of a block.
type Kind int

// These are the block types.
const (
	Title Kind = iota
	Field
	TextBox
	Picture
	Warning
)

func (k Kind) String() string {
	switch k {
	case Title:
		return "title"
	case Field:
		return "field"
	case TextBox:
		return "text box"
	case Picture:
		return "picture"
	case Warning:
		return "warning"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Block is one element of the summary card.
type Block struct {
	Kind  Kind
	Label string // empty for Title and Warning

	// Text is the content of Title, Field, TextBox and Warning blocks.
	// Empty fields hold the placeholder text and have Missing set.
	Text    string
	Missing bool

	// Image is the drawing shown by a Picture block.
	Image image.Image
}

// Document is a rendered summary card.
type Document struct {
	Blocks []Block

	// Seq is the sequence number of the record the document was built from.
	Seq int

	width, height float64
	ops           []op
}

// Render builds the summary card for a record.  Equal records give
// documents which paint to identical pixels.
func Render(rec submission.Record) *Document {
	p := rec.Presentation
	doc := &Document{
		Seq: rec.Seq,
		Blocks: []Block{
			{Kind: Title, Text: TitleText},
			textBlock(Field, "Station name", p.StationName),
			textBlock(Field, "Presenter", p.Presenter),
			textBlock(TextBox, "Special features", p.SpecialFeature),
		},
	}
	if img, ok := rec.Drawing(); ok {
		doc.Blocks = append(doc.Blocks, Block{Kind: Picture, Label: "Our design", Image: img})
	} else {
		doc.Blocks = append(doc.Blocks, Block{Kind: Warning, Text: WarningText})
	}

	doc.layout()
	return doc
}

func textBlock(kind Kind, label, value string) Block {
	if strings.TrimSpace(value) == "" {
		return Block{Kind: kind, Label: label, Text: Placeholder, Missing: true}
	}
	return Block{Kind: kind, Label: label, Text: value}
}

// Find returns the first block with the given label.
func (d *Document) Find(label string) (Block, bool) {
	for _, b := range d.Blocks {
		if b.Label == label {
			return b, true
		}
	}
	return Block{}, false
}

// Has reports whether the document contains a block of the given kind.
func (d *Document) Has(kind Kind) bool {
	for _, b := range d.Blocks {
		if b.Kind == kind {
			return true
		}
	}
	return false
}

// Text returns a plain text version of the document.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		switch b.Kind {
		case Title, Warning:
			sb.WriteString(b.Text)
		case Field:
			fmt.Fprintf(&sb, "%s: %s", b.Label, b.Text)
		case TextBox:
			fmt.Fprintf(&sb, "%s:\n%s", b.Label, b.Text)
		case Picture:
			r := b.Image.Bounds()
			fmt.Fprintf(&sb, "%s: [%dx%d image]", b.Label, r.Dx(), r.Dy())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
