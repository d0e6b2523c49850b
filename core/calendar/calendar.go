// Package calendar models the reading calendar: one DayRecord per calendar
// day, each holding the day's readings in track order.
package calendar

import (
	"fmt"
	"slices"
	"strconv"

	apperrors "github.com/FocuswithJustin/biblein1year/core/errors"
)

// Track is one of the parallel reading slots within a day. Tracks map to
// reading positions: index 0 is the Old Testament reading, 1 the New
// Testament reading and 2, when present, the Psalm or Proverb.
type Track int

const (
	OldTestament Track = iota
	NewTestament
	PsalmOrProverb

	// WholeDay stands for every reading of a day, e.g. when the day's data
	// could not be decoded at all. It is not part of Tracks.
	WholeDay Track = -1
)

// Tracks lists every track in positional order.
var Tracks = []Track{OldTestament, NewTestament, PsalmOrProverb}

func (t Track) String() string {
	switch t {
	case OldTestament:
		return "old_testament"
	case NewTestament:
		return "new_testament"
	case PsalmOrProverb:
		return "psalm_proverb"
	case WholeDay:
		return "whole_day"
	default:
		return "track(" + strconv.Itoa(int(t)) + ")"
	}
}

// Index returns the reading position the track occupies within a day.
func (t Track) Index() int {
	return int(t)
}

// DayRecord is the stored calendar entry for one (month, day) key.
type DayRecord struct {
	Month    int       `json:"month"`
	Day      int       `json:"day"`
	Readings []Reading `json:"data"`
}

// Key returns the record's key in "day/month" form, the way the calendar is
// addressed in diagnostics.
func (r DayRecord) Key() string {
	return fmt.Sprintf("%d/%d", r.Day, r.Month)
}

// Reading returns the reading for a track, or false when the day has no
// reading in that slot.
func (r DayRecord) Reading(t Track) (Reading, bool) {
	i := t.Index()
	if i < 0 || i >= len(r.Readings) {
		return Reading{}, false
	}
	return r.Readings[i], true
}

// Has reports whether the day carries a reading for the track.
func (r DayRecord) Has(t Track) bool {
	_, ok := r.Reading(t)
	return ok
}

// Clone returns a deep copy of the record.
func (r DayRecord) Clone() DayRecord {
	out := r
	out.Readings = make([]Reading, len(r.Readings))
	for i, reading := range r.Readings {
		out.Readings[i] = reading.Clone()
	}
	return out
}

// Validate checks the key ranges and the number of readings.
func (r DayRecord) Validate() error {
	if r.Month < 1 || r.Month > 12 {
		return apperrors.NewValidation("month", strconv.Itoa(r.Month), "must be between 1 and 12")
	}
	if r.Day < 1 || r.Day > 31 {
		return apperrors.NewValidation("day", strconv.Itoa(r.Day), "must be between 1 and 31")
	}
	if n := len(r.Readings); n != 2 && n != 3 {
		return apperrors.NewValidation("data", strconv.Itoa(n), "a day holds 2 or 3 readings")
	}
	return nil
}

// Compare orders records by calendar position.
func Compare(a, b DayRecord) int {
	if a.Month != b.Month {
		return a.Month - b.Month
	}
	return a.Day - b.Day
}

// Sorted returns the records in calendar order. Storage returns records in
// no particular order; the input slice is not modified.
func Sorted(records []DayRecord) []DayRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, Compare)
	return out
}
