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

package form

import (
	"errors"
	"image"
	"math/rand/v2"
	"testing"
)

func TestToggleParity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		var s Store
		var want [NumItems]bool
		for range rng.IntN(50) {
			i := rng.IntN(NumItems)
			if err := s.Toggle(i); err != nil {
				t.Fatal(err)
			}
			want[i] = !want[i]
		}
		for i, item := range s.Checklist() {
			if item.Checked != want[i] {
				t.Errorf("item %d: checked=%t, want %t", i, item.Checked, want[i])
			}
			if item.Label != Labels[i] {
				t.Errorf("item %d: label %q", i, item.Label)
			}
		}
	}
}

func TestChecklistIndex(t *testing.T) {
	var s Store
	for _, i := range []int{-1, NumItems, 100} {
		if err := s.Toggle(i); !errors.Is(err, ErrChecklistIndex) {
			t.Errorf("Toggle(%d): %v", i, err)
		}
		if err := s.SetChecked(i, true); !errors.Is(err, ErrChecklistIndex) {
			t.Errorf("SetChecked(%d): %v", i, err)
		}
	}
	if err := s.SetChecked(2, true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetChecked(2, true); err != nil {
		t.Fatal(err)
	}
	if !s.Checklist()[2].Checked {
		t.Error("item 2 not checked")
	}
}

func TestFields(t *testing.T) {
	var s Store
	values := map[string]string{
		"station_name":    "  Luna-1 ",
		"special_feature": "Has a garden module\nand a gym",
		"presenter":       "Kim",
	}
	for name, v := range values {
		f, err := ParseField(name)
		if err != nil {
			t.Fatal(err)
		}
		if f.String() != name {
			t.Errorf("field %q prints as %q", name, f)
		}
		if err := s.SetField(f, v); err != nil {
			t.Fatal(err)
		}
	}
	got := s.Fields()
	if got.StationName != values["station_name"] ||
		got.SpecialFeature != values["special_feature"] ||
		got.Presenter != values["presenter"] {
		t.Errorf("fields not stored verbatim: %+v", got)
	}

	if _, err := ParseField("team"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("ParseField: %v", err)
	}
	if err := s.SetField(Field(7), "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("SetField: %v", err)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	var s Store
	if err := s.SetField(StationName, "Luna-1"); err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	s.SetDrawing(img)
	snap := s.Snapshot()

	if err := s.SetField(StationName, "Luna-2"); err != nil {
		t.Fatal(err)
	}
	if err := s.Toggle(0); err != nil {
		t.Fatal(err)
	}
	s.SetDrawing(nil)

	if snap.Presentation.StationName != "Luna-1" {
		t.Errorf("snapshot changed: %q", snap.Presentation.StationName)
	}
	if snap.Checklist[0].Checked {
		t.Error("snapshot checklist changed")
	}
	if snap.Drawing != img {
		t.Error("snapshot lost the drawing")
	}
	if _, ok := s.Drawing(); ok {
		t.Error("drawing not cleared")
	}
}
