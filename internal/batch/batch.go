// Package batch runs one correction pass over the whole calendar: scan,
// detect overlaps, resolve each flagged track and persist the corrections.
//
// A failure on one day/track is recorded as a Skip and never stops the run.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FocuswithJustin/biblein1year/core/calendar"
	"github.com/FocuswithJustin/biblein1year/core/correct"
	apperrors "github.com/FocuswithJustin/biblein1year/core/errors"
	"github.com/FocuswithJustin/biblein1year/core/overlap"
	"github.com/FocuswithJustin/biblein1year/core/scripture"
	"github.com/FocuswithJustin/biblein1year/internal/logging"
)

// Stage names the step at which an item was skipped.
type Stage string

const (
	StageParse   Stage = "parse"
	StageResolve Stage = "resolve"
	StagePersist Stage = "persist"
)

// Scanner returns every decodable calendar day plus the days that could not
// be decoded.
type Scanner interface {
	Scan(ctx context.Context) ([]calendar.DayRecord, []*apperrors.DecodeError, error)
}

// Resolver computes the corrected reference for an overlapping range.
type Resolver interface {
	Resolve(ctx context.Context, rng scripture.VerseRange) (string, error)
}

// Applier writes a corrected reference.
type Applier interface {
	Apply(ctx context.Context, rec calendar.DayRecord, track calendar.Track, newRef string) (correct.Result, error)
}

// AbbreviationChecker reports whether the book of a reference has a
// registered short name.
type AbbreviationChecker interface {
	Check(ctx context.Context, ref string) (string, bool, error)
}

// Skip is a day/track the run could not process.
type Skip struct {
	Month int
	Day   int
	Track calendar.Track
	Stage Stage
	Err   error
}

// Key returns the day as "D/M".
func (s Skip) Key() string {
	return calendar.DayRecord{Month: s.Month, Day: s.Day}.Key()
}

func (s Skip) String() string {
	return fmt.Sprintf("%s %s (%s): %v", s.Key(), s.Track, s.Stage, s.Err)
}

// Summary reports the outcome of a run.
type Summary struct {
	RunID     string
	Scanned   int
	Overlaps  int
	Corrected int
	Skipped   []Skip
	// Warnings counts readings whose book has no registered abbreviation.
	Warnings int
	Duration time.Duration
}

// Failed reports whether any item was skipped.
func (s Summary) Failed() bool {
	return len(s.Skipped) > 0
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scanned %d days: %d overlaps, %d corrected, %d skipped",
		s.Scanned, s.Overlaps, s.Corrected, len(s.Skipped))
	if s.Warnings > 0 {
		fmt.Fprintf(&b, ", %d abbreviation warnings", s.Warnings)
	}
	for _, skip := range s.Skipped {
		b.WriteString("\n  skipped ")
		b.WriteString(skip.String())
	}
	return b.String()
}

// Runner wires the detector, resolver and applier together.
type Runner struct {
	store    Scanner
	resolver Resolver
	applier  Applier
	checker  AbbreviationChecker
}

// Option configures a Runner.
type Option func(*Runner)

// WithAbbreviationChecker enables the abbreviation check on every reading.
func WithAbbreviationChecker(c AbbreviationChecker) Option {
	return func(r *Runner) {
		r.checker = c
	}
}

// New creates a Runner.
func New(store Scanner, resolver Resolver, applier Applier, opts ...Option) *Runner {
	r := &Runner{store: store, resolver: resolver, applier: applier}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one pass. The returned error is only set when the calendar
// could not be read at all; per-item failures are in Summary.Skipped.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: logging.GetRunID(ctx)}
	if summary.RunID == "" {
		summary.RunID = logging.NewRunID()
		ctx = logging.WithRunID(ctx, summary.RunID)
	}

	skip := func(rec calendar.DayRecord, track calendar.Track, stage Stage, err error) {
		summary.Skipped = append(summary.Skipped, Skip{
			Month: rec.Month,
			Day:   rec.Day,
			Track: track,
			Stage: stage,
			Err:   err,
		})
		logging.ItemSkipped(ctx, rec.Key(), track.String(), string(stage), err)
	}

	records, bad, err := r.store.Scan(ctx)
	if err != nil {
		return summary, fmt.Errorf("scanning calendar: %w", err)
	}
	summary.Scanned = len(records) + len(bad)
	logging.InfoContext(ctx, "calendar loaded", "days", summary.Scanned, "undecodable", len(bad))

	if r.checker != nil {
		summary.Warnings = r.checkAbbreviations(ctx, records)
	}

	for _, de := range bad {
		// An empty day keeps its calendar slot, so neither neighbour is
		// compared across it.
		placeholder := calendar.DayRecord{Month: de.Month, Day: de.Day}
		skip(placeholder, calendar.WholeDay, StageParse, de)
		records = append(records, placeholder)
	}

	detector := overlap.NewDetector(overlap.WithParseErrorHandler(
		func(rec calendar.DayRecord, track calendar.Track, err error) {
			skip(rec, track, StageParse, err)
		},
	))

	for o := range detector.Detect(records) {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		rec := o.Record
		for _, track := range o.Tracks {
			summary.Overlaps++
			rng := o.Ranges[track]
			logging.OverlapFound(ctx, rec.Key(), track.String(), rng.SourceText, rng.First.String())

			newRef, err := r.resolver.Resolve(ctx, rng)
			if err != nil {
				skip(rec, track, StageResolve, err)
				continue
			}

			res, err := r.applier.Apply(ctx, rec, track, newRef)
			if err != nil {
				skip(rec, track, StagePersist, err)
				continue
			}
			rec = res.Record
			if res.Changed {
				summary.Corrected++
			}
		}
	}

	summary.Duration = time.Since(start)
	logging.BatchSummary(ctx, summary.Scanned, summary.Overlaps, summary.Corrected, len(summary.Skipped), summary.Duration,
		"abbreviation_warnings", summary.Warnings,
	)
	return summary, nil
}

func (r *Runner) checkAbbreviations(ctx context.Context, records []calendar.DayRecord) int {
	warnings := 0
	for _, rec := range records {
		for i, reading := range rec.Readings {
			book, ok, err := r.checker.Check(ctx, reading.Ref)
			if err != nil {
				logging.WarnContext(ctx, "abbreviation lookup failed", "day", rec.Key(), "book", book, "error", err.Error())
				continue
			}
			if !ok {
				warnings++
				logging.WarnContext(ctx, "no short reference found",
					"day", rec.Key(),
					"track", calendar.Track(i).String(),
					"book", book,
				)
			}
		}
	}
	return warnings
}
