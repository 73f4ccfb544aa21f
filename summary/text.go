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
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// The parsed fonts are shared by all documents.  Faces are not safe for
// concurrent use, so every layout and paint run creates its own.
var (
	regularFont = sync.OnceValues(func() (*opentype.Font, error) {
		return opentype.Parse(goregular.TTF)
	})
	boldFont = sync.OnceValues(func() (*opentype.Font, error) {
		return opentype.Parse(gobold.TTF)
	})
)

type textStyle struct {
	bold bool
	size float64 // pixels at scale 1
}

// faceSet caches the faces used while laying out or painting one
// document at one scale.
type faceSet struct {
	scale float64
	faces map[textStyle]font.Face
}

func newFaceSet(scale float64) *faceSet {
	return &faceSet{scale: scale, faces: make(map[textStyle]font.Face)}
}

func (fs *faceSet) get(st textStyle) font.Face {
	if f, ok := fs.faces[st]; ok {
		return f
	}

	load := regularFont
	if st.bold {
		load = boldFont
	}
	var face font.Face = basicfont.Face7x13
	if fnt, err := load(); err == nil {
		f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
			Size:    st.size * fs.scale,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err == nil {
			face = f
		}
	}
	fs.faces[st] = face
	return face
}

func (fs *faceSet) close() {
	for _, f := range fs.faces {
		f.Close()
	}
}

// advance returns the width of s in pixels.
func advance(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// baseline returns the offset of the baseline from the top of a line box
// of height lh.
func baseline(face font.Face, lh float64) float64 {
	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	return (lh-ascent-descent)/2 + ascent
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// wrap breaks text into lines.  Newlines in the text are kept, the first
// line is at most first pixels wide and all other lines at most rest
// pixels.  Words wider than a line are split between characters.
func wrap(face font.Face, text string, first, rest float64) []string {
	w := &wrapper{face: face, width: first, rest: rest}
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSuffix(para, "\r")
		for _, word := range strings.Split(para, " ") {
			w.add(word)
		}
		w.newline()
	}
	return w.lines
}

type wrapper struct {
	face        font.Face
	width, rest float64

	lines   []string
	line    string
	started bool
}

func (w *wrapper) newline() {
	w.lines = append(w.lines, w.line)
	w.line, w.started = "", false
	w.width = w.rest
}

func (w *wrapper) add(word string) {
	if w.started {
		if cand := w.line + " " + word; advance(w.face, cand) <= w.width {
			w.line = cand
			return
		}
		w.newline()
	}

	for advance(w.face, word) > w.width {
		head, tail := fitPrefix(w.face, word, w.width)
		w.line, w.started = head, true
		if tail == "" {
			return
		}
		w.newline()
		word = tail
	}
	w.line, w.started = word, true
}

// fitPrefix splits s after the longest prefix which fits into width.  The
// prefix contains at least one character.
func fitPrefix(face font.Face, s string, width float64) (string, string) {
	_, n := utf8.DecodeRuneInString(s)
	for n < len(s) {
		_, size := utf8.DecodeRuneInString(s[n:])
		if advance(face, s[:n+size]) > width {
			break
		}
		n += size
	}
	return s[:n], s[n:]
}
