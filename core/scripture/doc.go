// Package scripture models scripture references as they appear in the
// reading calendar and parses them from free text.
//
// # Model
//
//   - Verse: a book, chapter and optional verse, all kept as the source text
//   - VerseRange: the parsed reference with a first verse and optional last verse
//
// Chapters and verses are strings, never integers. Curated readings carry
// partial verses such as "16a", and two verses are the same boundary only
// when book, chapter and verse match exactly as written.
//
// # Grammar
//
//	<book> <chapter>[:<verse>][-<endchapter>][:<endverse>]
//
// where <book> is an optional leading numeral followed by one or more words
// ("John", "1 John", "Song of Solomon"). Books with a single chapter
// (Obadiah, Philemon, 2 John, 3 John, Jude) may omit the chapter; "Jude 4-5"
// is read as verses 4 to 5 of chapter 1.
//
// # Example
//
//	rng, err := scripture.Parse("Romans 8:28-30")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(rng.First, rng.End()) // Romans 8:28 Romans 8:30
package scripture
