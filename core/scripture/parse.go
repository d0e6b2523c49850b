package scripture

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	apperrors "github.com/FocuswithJustin/biblein1year/core/errors"
)

// singleChapterBooks may be referenced without a chapter number.
var singleChapterBooks = map[string]bool{
	"Obadiah":  true,
	"Philemon": true,
	"2 John":   true,
	"3 John":   true,
	"Jude":     true,
}

// IsSingleChapterBook reports whether book has exactly one chapter and may be
// referenced without one.
func IsSingleChapterBook(book string) bool {
	return singleChapterBooks[book]
}

// referenceGrammar is the participle grammar for calendar references.
// Examples: "John 3:16", "1 John 3:16-18", "Genesis 4:20-5:10", "Psalm 23",
// "Jude 4-5", "Acts 16a"
//
//nolint:govet // participle grammar tags are not standard struct tags
type referenceGrammar struct {
	Prefix string   `@Locator?`
	Words  []string `@Word+`
	Start  *locator `@@?`
	End    *locator `( "-" @@ )?`
}

// locator is "<major>[:<minor>]", i.e. a chapter with an optional verse.
//
//nolint:govet // participle grammar tags are not standard struct tags
type locator struct {
	Major string  `@Locator`
	Minor *string `( ":" @Locator )?`
}

// referenceLexer tokenizes references. Locators are digits with an optional
// lowercase suffix letter ("16a"); book words are letters only.
var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Locator", Pattern: `[0-9]+[a-z]?`},
	{Name: "Word", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var referenceParser = participle.MustBuild[referenceGrammar](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a free-text reference into a VerseRange.
// Supported formats:
//   - "Genesis 5" (chapter)
//   - "Genesis 5:10" (verse)
//   - "Genesis 5:10-20" (verse range)
//   - "Genesis 4:20-5:10" (range across chapters)
//   - "Genesis 4-5" (chapter range)
//   - "Jude", "Jude 4-5" (single-chapter books, chapter 1 implied)
//
// Malformed input yields a *errors.ParseError naming the text.
func Parse(text string) (VerseRange, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return VerseRange{}, apperrors.NewParse(text, "empty reference")
	}

	parsed, err := referenceParser.ParseString("", trimmed)
	if err != nil {
		return VerseRange{}, &apperrors.ParseError{Text: text, Err: err}
	}

	return build(text, parsed)
}

// MustParse is like Parse but panics on error. It is intended for tests and
// fixed tables.
func MustParse(text string) VerseRange {
	rng, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return rng
}

func build(text string, g *referenceGrammar) (VerseRange, error) {
	book := strings.Join(g.Words, " ")
	if g.Prefix != "" {
		if !isDigits(g.Prefix) {
			return VerseRange{}, apperrors.NewParse(text, "invalid book number "+g.Prefix)
		}
		book = g.Prefix + " " + book
	}

	rng := VerseRange{SourceText: text}
	single := IsSingleChapterBook(book)

	if g.Start == nil {
		if !single {
			return VerseRange{}, apperrors.NewParse(text, "missing chapter for "+book)
		}
		if g.End != nil {
			return VerseRange{}, apperrors.NewParse(text, "range without a start")
		}
		rng.First = Verse{Book: book, Chapter: "1"}
		return rng, nil
	}

	start := *g.Start
	if single && start.Minor == nil {
		// "Jude 4" means verse 4 of the only chapter.
		verse := start.Major
		start = locator{Major: "1", Minor: &verse}
	}
	rng.First = start.verse(book)

	if g.End == nil {
		return rng, nil
	}

	var last Verse
	switch {
	case g.End.Minor != nil:
		last = g.End.verse(book)
	case !rng.First.IsChapter():
		// "5:1-10": the end number is a verse in the start chapter.
		last = Verse{Book: book, Chapter: rng.First.Chapter, Verse: g.End.Major}
	default:
		last = Verse{Book: book, Chapter: g.End.Major}
	}
	rng.Last = &last

	return rng, nil
}

func (l locator) verse(book string) Verse {
	v := Verse{Book: book, Chapter: l.Major}
	if l.Minor != nil {
		v.Verse = *l.Minor
	}
	return v
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
