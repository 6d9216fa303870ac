package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEventPatchApply(t *testing.T) {
	locA := uuid.New()
	locB := uuid.New()
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	base := Event{
		Title:       "Original",
		Description: "Original description",
		StartTime:   start,
		EndTime:     end,
		LocationID:  &locA,
		IsPublic:    true,
	}

	t.Run("set fields override", func(t *testing.T) {
		ev := base
		title := "Renamed"
		hidden := false
		patch := EventPatch{Title: &title, IsPublic: &hidden, LocationID: &locB}
		patch.Apply(&ev)

		if ev.Title != "Renamed" {
			t.Errorf("title = %q", ev.Title)
		}
		if ev.IsPublic {
			t.Errorf("is_public should have been overridden to false")
		}
		if ev.LocationID == nil || *ev.LocationID != locB {
			t.Errorf("location not replaced")
		}
	})

	t.Run("nil fields keep current values", func(t *testing.T) {
		ev := base
		patch := EventPatch{}
		patch.Apply(&ev)

		if ev.Title != "Original" || ev.Description != "Original description" {
			t.Errorf("empty patch must not change text fields: %+v", ev)
		}
		if !ev.StartTime.Equal(start) || !ev.EndTime.Equal(end) {
			t.Errorf("empty patch must not change times")
		}
		if ev.LocationID == nil || *ev.LocationID != locA {
			t.Errorf("empty patch must not change location")
		}
		if !ev.IsPublic {
			t.Errorf("empty patch must not change visibility")
		}
	})

	t.Run("partial time change", func(t *testing.T) {
		ev := base
		newEnd := end.Add(time.Hour)
		patch := EventPatch{EndTime: &newEnd}
		patch.Apply(&ev)

		if !ev.StartTime.Equal(start) {
			t.Errorf("start should be untouched")
		}
		if !ev.EndTime.Equal(newEnd) {
			t.Errorf("end should be updated")
		}
	})
}

func TestParseInstant(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2026-03-10T18:00", true, time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)},
		{"2026-03-10T18:00:30", true, time.Date(2026, 3, 10, 18, 0, 30, 0, time.UTC)},
		{"2026-03-10T18:00:00Z", true, time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)},
		{"10.03.2026 18:00", false, time.Time{}},
		{"", false, time.Time{}},
	}
	for _, tc := range cases {
		got, err := ParseInstant(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("ParseInstant(%q) error = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && !got.Equal(tc.want) {
			t.Errorf("ParseInstant(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
