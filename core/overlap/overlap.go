// Package overlap finds calendar days whose reading starts on the verse where
// the previous day's reading of the same track ended.
//
// The three tracks advance through scripture independently, so the detector
// keeps one "previous range" per track and never compares across tracks.
package overlap

import (
	"iter"

	"github.com/FocuswithJustin/biblein1year/core/calendar"
	"github.com/FocuswithJustin/biblein1year/core/scripture"
)

// Overlap is a day with one or more tracks that start on the previous day's
// boundary verse. Ranges holds the parsed reference of each flagged track.
type Overlap struct {
	Record calendar.DayRecord
	Tracks []calendar.Track
	Ranges map[calendar.Track]scripture.VerseRange
}

// ParseErrorHandler receives references that could not be parsed. The
// detector treats such a track as absent for that day and carries on.
type ParseErrorHandler func(rec calendar.DayRecord, track calendar.Track, err error)

// Detector walks a calendar in date order and reports overlaps.
type Detector struct {
	parse   func(string) (scripture.VerseRange, error)
	onError ParseErrorHandler
}

// Option configures a Detector.
type Option func(*Detector)

// WithParseErrorHandler sets the callback for unparsable references.
func WithParseErrorHandler(h ParseErrorHandler) Option {
	return func(d *Detector) {
		d.onError = h
	}
}

// WithParser replaces the reference parser.
func WithParser(parse func(string) (scripture.VerseRange, error)) Option {
	return func(d *Detector) {
		d.parse = parse
	}
}

// NewDetector creates a Detector using scripture.Parse.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{parse: scripture.Parse}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect sorts records by (month, day) and lazily yields every day with at
// least one overlapping track. The walk stops as soon as the consumer stops
// ranging.
func (d *Detector) Detect(records []calendar.DayRecord) iter.Seq[Overlap] {
	return func(yield func(Overlap) bool) {
		var prev map[calendar.Track]scripture.VerseRange

		for _, rec := range calendar.Sorted(records) {
			cur := d.ranges(rec)

			var found Overlap
			for _, track := range calendar.Tracks {
				rng, ok := cur[track]
				if !ok {
					continue
				}
				before, ok := prev[track]
				if !ok || !rng.StartsAtEndOf(before) {
					continue
				}
				if found.Ranges == nil {
					found = Overlap{Record: rec, Ranges: make(map[calendar.Track]scripture.VerseRange)}
				}
				found.Tracks = append(found.Tracks, track)
				found.Ranges[track] = rng
			}

			prev = cur

			if found.Ranges != nil && !yield(found) {
				return
			}
		}
	}
}

// ranges parses every track present on the day. Tracks that are missing or
// fail to parse have no entry.
func (d *Detector) ranges(rec calendar.DayRecord) map[calendar.Track]scripture.VerseRange {
	out := make(map[calendar.Track]scripture.VerseRange, len(rec.Readings))
	for _, track := range calendar.Tracks {
		reading, ok := rec.Reading(track)
		if !ok {
			continue
		}
		rng, err := d.parse(reading.Ref)
		if err != nil {
			if d.onError != nil {
				d.onError(rec, track, err)
			}
			continue
		}
		out[track] = rng
	}
	return out
}

// Has reports whether track is flagged on the overlap.
func (o Overlap) Has(track calendar.Track) bool {
	_, ok := o.Ranges[track]
	return ok
}
