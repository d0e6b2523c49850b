// Package resolve computes the corrected reference for a reading that starts
// on the previous day's boundary verse.
package resolve

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/FocuswithJustin/biblein1year/core/errors"
	"github.com/FocuswithJustin/biblein1year/core/scripture"
	"github.com/FocuswithJustin/biblein1year/internal/passage"
)

// ErrNoFollowingVerse is returned when the lookup service does not report a
// verse after the boundary, e.g. for a single-verse reading.
var ErrNoFollowingVerse = errors.New("no verse follows the boundary")

// Lookuper fetches the verses of a passage in order.
type Lookuper interface {
	Lookup(ctx context.Context, passage string) ([]passage.Verse, error)
}

// Resolver turns an overlapping range into a reference that starts one
// verse later.
type Resolver struct {
	lookup Lookuper
}

// New creates a Resolver backed by lookup.
func New(lookup Lookuper) *Resolver {
	return &Resolver{lookup: lookup}
}

// FollowingVerse returns the verse after the boundary from a lookup result.
//
// The service returns the queried passage verse by verse, starting with the
// boundary verse itself, so the verse after the boundary is the second
// element. This positional contract comes from the upstream service and is
// kept in this one place.
func FollowingVerse(verses []passage.Verse) (passage.Verse, error) {
	if len(verses) < 2 {
		return passage.Verse{}, ErrNoFollowingVerse
	}
	return verses[1], nil
}

// Resolve looks up rng and returns a reference from the verse after rng's
// first verse through rng's end. When rng ends on a whole chapter the last
// verse reported by the service is used as the end.
//
// Failures are returned as *errors.ResolveError.
func (r *Resolver) Resolve(ctx context.Context, rng scripture.VerseRange) (string, error) {
	verses, err := r.lookup.Lookup(ctx, rng.SourceText)
	if err != nil {
		resolveErr := &apperrors.ResolveError{Reference: rng.SourceText, Err: err}
		var httpErr *passage.HTTPError
		if errors.As(err, &httpErr) {
			resolveErr.StatusCode = httpErr.StatusCode
			resolveErr.Status = httpErr.Status
		}
		return "", resolveErr
	}

	next, err := FollowingVerse(verses)
	if err != nil {
		return "", &apperrors.ResolveError{Reference: rng.SourceText, Err: err}
	}

	end := rng.End()
	if end.IsChapter() {
		final := verses[len(verses)-1]
		end = scripture.Verse{Book: end.Book, Chapter: final.Chapter, Verse: final.Verse}
	}
	if next.Chapter == "" || next.Verse == "" || end.Verse == "" {
		return "", &apperrors.ResolveError{
			Reference: rng.SourceText,
			Err:       fmt.Errorf("incomplete verse descriptor in lookup result"),
		}
	}

	return format(rng.First.Book, next, end), nil
}

// format renders "{book} {chapter}:{next}-{end}" within a chapter, or
// "{book} {nextChapter}:{next}-{endChapter}:{end}" across chapters. A range
// that shrinks to one verse is rendered as that verse.
func format(book string, next passage.Verse, end scripture.Verse) string {
	if next.Chapter == end.Chapter {
		if next.Verse == end.Verse {
			return fmt.Sprintf("%s %s:%s", book, next.Chapter, next.Verse)
		}
		return fmt.Sprintf("%s %s:%s-%s", book, next.Chapter, next.Verse, end.Verse)
	}
	return fmt.Sprintf("%s %s:%s-%s:%s", book, next.Chapter, next.Verse, end.Chapter, end.Verse)
}
