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

// Package submission freezes the worksheet form into an immutable record.
package submission

import (
	"image"
	"time"

	"seehuhn.de/go/worksheet/form"
)

// State is the state of a Controller.
type State int

// These are the states of a Controller.  There is no way back from
// Submitted to Unsubmitted.
const (
	Unsubmitted State = iota
	Submitted
)

func (s State) String() string {
	if s == Submitted {
		return "submitted"
	}
	return "unsubmitted"
}

// Record is the frozen content of one submission.
type Record struct {
	Seq          int // 1 for the first submission of a session
	Time         time.Time
	Presentation form.Presentation

	drawing *image.RGBA
}

// Drawing returns a copy of the drawing at the time of submission, or nil
// and false if nothing had been drawn.
func (r Record) Drawing() (*image.RGBA, bool) {
	if r.drawing == nil {
		return nil, false
	}
	return cloneRGBA(r.drawing), true
}

// HasDrawing reports whether anything had been drawn at the time of
// submission.
func (r Record) HasDrawing() bool {
	return r.drawing != nil
}

// Controller keeps the latest submission of a session.  The zero value is
// ready to use.
type Controller struct {
	state  State
	seq    int
	record Record

	// Now returns the submission time.  If nil, time.Now is used.
	Now func() time.Time
}

// Submit replaces the current record by a copy of the snapshot.  The
// drawing is deep-copied, so later changes to the form do not reach the
// record.
func (c *Controller) Submit(snap form.Snapshot) Record {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	c.seq++
	c.record = Record{
		Seq:          c.seq,
		Time:         now(),
		Presentation: snap.Presentation,
		drawing:      cloneRGBA(snap.Drawing),
	}
	c.state = Submitted
	return c.record
}

// Record returns the latest submission.  The second return value is false
// while nothing has been submitted.
func (c *Controller) Record() (Record, bool) {
	return c.record, c.state == Submitted
}

// Submitted reports whether at least one submission was made.
func (c *Controller) Submitted() bool {
	return c.state == Submitted
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	c := &image.RGBA{
		Pix:    make([]uint8, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(c.Pix, img.Pix)
	return c
}
