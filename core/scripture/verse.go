package scripture

import "strings"

// Verse is a single location in a book. Verse is empty when the location
// names a whole chapter.
type Verse struct {
	Book    string `json:"book"`
	Chapter string `json:"chapter"`
	Verse   string `json:"verse,omitempty"`
}

// String renders the verse as "Book chapter:verse", or "Book chapter" for a
// chapter locator.
func (v Verse) String() string {
	if v.Verse == "" {
		return v.Book + " " + v.Chapter
	}
	return v.Book + " " + v.Chapter + ":" + v.Verse
}

// IsChapter reports whether v names a chapter rather than a verse.
func (v Verse) IsChapter() bool {
	return v.Verse == ""
}

// VerseRange is a parsed reference. Last is nil for a single verse or a
// single chapter; when set, Last.Book equals First.Book.
type VerseRange struct {
	// SourceText is the reference exactly as it was parsed.
	SourceText string `json:"source_text"`

	First Verse  `json:"first"`
	Last  *Verse `json:"last,omitempty"`
}

// End returns the final location covered by the range.
func (r VerseRange) End() Verse {
	if r.Last != nil {
		return *r.Last
	}
	return r.First
}

// Book returns the book the range belongs to.
func (r VerseRange) Book() string {
	return r.First.Book
}

// String returns a canonical rendering of the range. Use SourceText for the
// text as it was written.
func (r VerseRange) String() string {
	if r.Last == nil {
		return r.First.String()
	}

	var sb strings.Builder
	sb.WriteString(r.First.String())
	sb.WriteString("-")

	last := *r.Last
	switch {
	case last.Chapter == r.First.Chapter && !last.IsChapter() && !r.First.IsChapter():
		sb.WriteString(last.Verse)
	case last.IsChapter():
		sb.WriteString(last.Chapter)
	default:
		sb.WriteString(last.Chapter)
		sb.WriteString(":")
		sb.WriteString(last.Verse)
	}
	return sb.String()
}

// StartsAtEndOf reports whether r begins on prev's last verse, so the two
// ranges share a boundary verse. A prev without a Last (one verse or one
// chapter) has no boundary and never matches.
func (r VerseRange) StartsAtEndOf(prev VerseRange) bool {
	return prev.Last != nil && *prev.Last == r.First
}
