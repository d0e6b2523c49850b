// Package abbrev checks that every book named in the calendar has a short
// name registered in the abbreviations table.
package abbrev

import (
	"context"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/FocuswithJustin/biblein1year/core/errors"
	"github.com/FocuswithJustin/biblein1year/internal/cache"
)

var numberRegex = regexp.MustCompile(`\d+`)

// Source looks up the full book name for a lowercase short name. A missing
// name is reported with an error matching errors.ErrNotFound.
type Source interface {
	Abbreviation(ctx context.Context, short string) (string, error)
}

// Checker verifies book abbreviations. Known names are remembered in a cache
// the checker owns; misses are always asked again.
type Checker struct {
	source Source
	known  *cache.TTLCache[string, string]
}

// NewChecker creates a Checker. A zero ttl keeps known names until Reset.
func NewChecker(source Source, ttl time.Duration) *Checker {
	return &Checker{
		source: source,
		known:  cache.New[string, string](ttl),
	}
}

// BookFromRef returns the book part of a reference: the text before the first
// number, or "<number> <word>" for numbered books.
//
//	BookFromRef("John 3:16")   // "John"
//	BookFromRef("1 John 3:16") // "1 John"
func BookFromRef(ref string) string {
	parts := numberRegex.Split(ref, -1)
	book := strings.TrimSpace(parts[0])
	if book != "" || len(parts) < 2 {
		return book
	}
	return numberRegex.FindString(ref) + " " + strings.TrimSpace(parts[1])
}

// Check reports whether the book of ref has a registered abbreviation.
// It returns the book so callers can log it.
func (c *Checker) Check(ctx context.Context, ref string) (string, bool, error) {
	book := BookFromRef(ref)
	key := strings.ToLower(book)
	if key == "" {
		return book, false, nil
	}

	if _, ok := c.known.Get(key); ok {
		return book, true, nil
	}

	full, err := c.source.Abbreviation(ctx, key)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return book, false, nil
	}
	if err != nil {
		return book, false, err
	}
	c.known.Set(key, full)
	return book, true, nil
}

// Reset forgets every remembered name.
func (c *Checker) Reset() {
	c.known.Reset()
}

// Stats returns the hit and miss counts of the name cache.
func (c *Checker) Stats() cache.Stats {
	return c.known.Stats()
}
