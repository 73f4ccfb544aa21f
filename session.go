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

// Package worksheet implements a guided classroom worksheet: a checklist
// of brainstorming prompts, a drawing surface, three presentation fields
// and a submission step which turns the form into a summary card that can
// be downloaded as a PNG image.
//
// All state of one worksheet lives in a Session.  The user interface, or a
// script, feeds events to the session one at a time using Dispatch.
package worksheet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"seehuhn.de/go/worksheet/export"
	"seehuhn.de/go/worksheet/form"
	"seehuhn.de/go/worksheet/sketch"
	"seehuhn.de/go/worksheet/submission"
	"seehuhn.de/go/worksheet/summary"
)

// ErrInvalidState is returned by Export before the first submission.
var ErrInvalidState = export.ErrInvalidState

// Options configures a new Session.
type Options struct {
	// Width and Height give the size of the drawing surface.  Zero values
	// select sketch.DefaultWidth and sketch.DefaultHeight.
	Width, Height int

	// Export configures the image export.
	Export export.Pipeline

	// Logger receives the log messages of the session.  If nil, nothing
	// is logged.
	Logger *zerolog.Logger

	// Now returns the current time, for submission records.  If nil,
	// time.Now is used.
	Now func() time.Time
}

// Session is the state of one worksheet.
// A Session is not safe for concurrent use.
type Session struct {
	id  string
	log zerolog.Logger

	surface  *sketch.Surface
	store    form.Store
	ctrl     submission.Controller
	exporter export.Pipeline

	doc *summary.Document // for the current record, if any
}

// New starts an empty worksheet.
func New(opt Options) *Session {
	id := uuid.NewString()
	base := zerolog.Nop()
	if opt.Logger != nil {
		base = *opt.Logger
	}

	s := &Session{
		id:       id,
		log:      base.With().Str("session", id).Logger(),
		surface:  sketch.New(opt.Width, opt.Height),
		exporter: opt.Export,
	}
	s.ctrl.Now = opt.Now

	w, h := s.surface.Size()
	s.log.Debug().Int("width", w).Int("height", h).Msg("session started")
	return s
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string {
	return s.id
}

// Surface gives access to the drawing surface, for reading.  Changes
// should be made through Dispatch.
func (s *Session) Surface() *sketch.Surface {
	return s.surface
}

// Store gives access to the form state, for reading.  Changes should be
// made through Dispatch.
func (s *Session) Store() *form.Store {
	return &s.store
}

// Submitted reports whether the worksheet has been submitted.
func (s *Session) Submitted() bool {
	return s.ctrl.Submitted()
}

// Record returns the latest submission.
func (s *Session) Record() (submission.Record, bool) {
	return s.ctrl.Record()
}

// Dispatch applies one event.  When Dispatch returns, the form state
// reflects the event, including the drawing.  A rejected event leaves the
// session unchanged and usable.
func (s *Session) Dispatch(ev Event) error {
	err := ev.apply(s)

	// The surface renders a new raster for every committed change;
	// the store always holds the latest one.
	img, _ := s.surface.Raster()
	s.store.SetDrawing(img)

	if err != nil {
		s.log.Warn().Err(err).Str("event", describe(ev)).Msg("event rejected")
		return err
	}
	s.log.Debug().Str("event", describe(ev)).Msg("event")
	return nil
}

func (s *Session) submit() {
	rec := s.ctrl.Submit(s.store.Snapshot())
	s.log.Info().
		Int("seq", rec.Seq).
		Str("station", rec.Presentation.StationName).
		Bool("drawing", rec.HasDrawing()).
		Msg("worksheet submitted")
}

// Summary returns the summary card of the latest submission.  The card is
// built again only when a new submission is made.
func (s *Session) Summary() (*summary.Document, bool) {
	rec, ok := s.ctrl.Record()
	if !ok {
		return nil, false
	}
	if s.doc == nil || s.doc.Seq != rec.Seq {
		s.doc = summary.Render(rec)
		s.log.Debug().Int("seq", rec.Seq).Msg("summary rendered")
	}
	return s.doc, true
}

// Export produces the PNG image of the summary card.  Before the first
// submission, ErrInvalidState is returned.
func (s *Session) Export(ctx context.Context) (*export.File, error) {
	doc, ok := s.Summary()
	if !ok {
		s.log.Warn().Msg("export before submission")
		return nil, ErrInvalidState
	}
	f, err := s.exporter.Export(ctx, doc)
	if err != nil {
		s.log.Error().Err(err).Msg("export failed")
		return nil, err
	}
	s.log.Info().
		Str("file", f.Name).
		Int("width", f.Width).
		Int("height", f.Height).
		Int("bytes", len(f.Data)).
		Msg("summary exported")
	return f, nil
}

func describe(ev Event) string {
	return fmt.Sprintf("%T%+v", ev, ev)
}
