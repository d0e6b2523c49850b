// Package correct rewrites one track's reference on a calendar day and
// persists the day's reading list.
package correct

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/biblein1year/core/calendar"
	apperrors "github.com/FocuswithJustin/biblein1year/core/errors"
	"github.com/FocuswithJustin/biblein1year/internal/logging"
)

// Updater persists the full reading list of an existing day.
type Updater interface {
	UpdateReadings(ctx context.Context, month, day int, readings []calendar.Reading) error
}

// Result describes what Apply did.
type Result struct {
	Record  calendar.DayRecord
	Changed bool
	// Digest is the BLAKE3 content identity of the day's reading list as it
	// stands after the call. It is logged with each correction so a stored
	// day can be matched to the log line that wrote it.
	Digest string
}

// Applier writes corrected references.
type Applier struct {
	store  Updater
	dryRun bool
}

// Option configures an Applier.
type Option func(*Applier)

// DryRun computes corrections without persisting them.
func DryRun(enabled bool) Option {
	return func(a *Applier) {
		a.dryRun = enabled
	}
}

// New creates an Applier writing through store.
func New(store Updater, opts ...Option) *Applier {
	a := &Applier{store: store}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply sets track's reference on rec to newRef, keeping the previous text in
// the reading's ref.old-overlap field, and persists the day.
//
// rec itself is never modified. The returned Result carries the record as
// stored, which callers use for further tracks of the same day. Applying a
// reference the reading already holds is a no-op: nothing is written and the
// audit field is left alone.
func (a *Applier) Apply(ctx context.Context, rec calendar.DayRecord, track calendar.Track, newRef string) (Result, error) {
	reading, ok := rec.Reading(track)
	if !ok {
		return Result{}, apperrors.NewNotFound("reading", fmt.Sprintf("%s %s", rec.Key(), track))
	}

	if reading.Ref == newRef {
		digest, err := Digest(rec.Readings)
		if err != nil {
			return Result{}, err
		}
		logging.DebugContext(ctx, "correction already applied", "day", rec.Key(), "track", track.String(), "ref", newRef)
		return Result{Record: rec, Digest: digest}, nil
	}

	updated := rec.Clone()
	r := &updated.Readings[track.Index()]
	r.OldOverlap = r.Ref
	r.Ref = newRef

	after, err := Digest(updated.Readings)
	if err != nil {
		return Result{}, err
	}

	if !a.dryRun {
		if err := a.store.UpdateReadings(ctx, rec.Month, rec.Day, updated.Readings); err != nil {
			return Result{}, &apperrors.PersistError{Month: rec.Month, Day: rec.Day, Err: err}
		}
	}

	logging.CorrectionApplied(ctx, rec.Key(), track.String(), reading.Ref, newRef,
		"digest", after,
		"dry_run", a.dryRun,
	)
	return Result{Record: updated, Changed: true, Digest: after}, nil
}

// Digest returns the hex BLAKE3 hash of the JSON encoding of readings. It
// identifies content and plays no part in deciding whether to write.
// Readings encode with sorted keys, so equal lists hash equally.
func Digest(readings []calendar.Reading) (string, error) {
	data, err := json.Marshal(readings)
	if err != nil {
		return "", fmt.Errorf("encoding readings: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
