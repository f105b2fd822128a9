// Package verse parses and renders scripture reference keys.
//
// Bookmark keys for Bible and commentary modules are stored in a
// locale-independent canonical form (English book names) and rendered
// in the display locale on read. This package provides both directions:
// Canonicalize turns a locale-specific key into the canonical form, and
// Localize renders a canonical key for display.
package verse

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/Versemark/core/errors"
)

// Range represents a parsed scripture reference that may span ranges.
// Book holds the canonical English book name when the book was
// recognized, otherwise the input book text as written.
type Range struct {
	Book         string `@Book`
	ChapterStart *int   `( @Number`
	VerseStart   *int   `( ":" @Number )?`
	ChapterEnd   *int   `( "-" ( @Number`
	VerseEnd     *int   `    ( ":" @Number )? )? )? )?`

	ord int // canon ordinal, -1 if the book was not recognized
}

// referenceLexer tokenizes scripture references.
var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Book names: letters (any script), optional leading ordinal digit,
	// optional trailing period. Examples: Genesis, Gen., 1John, Römer,
	// Song of Solomon.
	{Name: "Book", Pattern: `(?:\d\s*)?\p{L}+(?:\s+(?:of\s+)?\p{L}+)*\.?`},
	// Numbers (chapter/verse)
	{Name: "Number", Pattern: `\d+`},
	// Separators
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `-`},
	// Whitespace
	{Name: "Whitespace", Pattern: `\s+`},
})

// referenceParser parses scripture references.
var referenceParser = participle.MustBuild[Range](
	participle.Lexer(referenceLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a scripture reference written in the given locale.
// Supported formats:
//   - "Genesis 1:1" (book chapter:verse)
//   - "Gen 1:1" (abbreviated book)
//   - "Gen.1.1" or "Gen 1.1" (dot separator)
//   - "Genesis 1:1-5" (verse range within chapter)
//   - "Genesis 1:1-2:5" (range across chapters)
//   - "Genesis 1-2" (chapter range)
//   - "Genesis 1" (full chapter)
//   - "Genesis" (full book)
func Parse(input string, loc Locale) (*Range, error) {
	normalized := normalizeSeparators(input)

	ref, err := referenceParser.ParseString("", normalized)
	if err != nil {
		return nil, errors.NewParse("reference", "", fmt.Sprintf("%q: %v", input, err))
	}

	if ord, ok := LookupBook(ref.Book, loc); ok {
		ref.ord = ord
		ref.Book = BookName(ord, English)
	} else {
		ref.ord = -1
		ref.Book = cleanBookText(ref.Book)
	}

	// Fix verse range detection: in "Genesis 1:1-5" the number after the
	// dash is a verse end, not a chapter end.
	if ref.VerseStart != nil && ref.ChapterEnd != nil && ref.VerseEnd == nil {
		ref.VerseEnd = ref.ChapterEnd
		ref.ChapterEnd = nil
	}

	return ref, nil
}

// normalizeSeparators converts dot separators to standard colon format.
// "Gen.1.1" -> "Gen 1:1"
// "Gen 1.1" -> "Gen 1:1"
func normalizeSeparators(input string) string {
	parts := strings.Split(input, ".")
	if len(parts) < 2 {
		return input
	}

	book := parts[0]
	rest := parts[1:]

	for _, p := range rest {
		for _, c := range strings.TrimSpace(p) {
			if c < '0' || c > '9' {
				return input
			}
		}
	}

	if len(rest) == 1 {
		return book + " " + rest[0]
	}
	return book + " " + rest[0] + ":" + strings.Join(rest[1:], ":")
}

// cleanBookText tidies an unrecognized book token without renaming it.
func cleanBookText(book string) string {
	book = strings.TrimSuffix(book, ".")
	return strings.TrimSpace(book)
}

// Known reports whether the book was recognized against the canon.
func (r *Range) Known() bool { return r.ord >= 0 }

// IsRange returns true if this reference spans multiple verses or chapters.
func (r *Range) IsRange() bool {
	return r.ChapterEnd != nil || r.VerseEnd != nil
}

// IsChapterOnly returns true if this reference is for full chapter(s).
func (r *Range) IsChapterOnly() bool {
	return r.ChapterStart != nil && r.VerseStart == nil
}

// IsBookOnly returns true if this reference is for the entire book.
func (r *Range) IsBookOnly() bool {
	return r.ChapterStart == nil
}

// Render returns the reference with the book name in the given locale.
// Unrecognized books render as written.
func (r *Range) Render(loc Locale) string {
	book := r.Book
	if r.ord >= 0 {
		book = BookName(r.ord, loc)
	}

	if r.ChapterStart == nil {
		return book
	}

	var sb strings.Builder
	sb.WriteString(book)
	fmt.Fprintf(&sb, " %d", *r.ChapterStart)

	if r.VerseStart != nil {
		fmt.Fprintf(&sb, ":%d", *r.VerseStart)
	}

	if r.ChapterEnd != nil {
		fmt.Fprintf(&sb, "-%d", *r.ChapterEnd)
		if r.VerseEnd != nil {
			fmt.Fprintf(&sb, ":%d", *r.VerseEnd)
		}
	} else if r.VerseEnd != nil {
		fmt.Fprintf(&sb, "-%d", *r.VerseEnd)
	}

	return sb.String()
}

// String returns the canonical (English) representation.
func (r *Range) String() string { return r.Render(English) }

// Canonicalize converts a reference key written in the given locale to
// its canonical English form. Keys whose book cannot be recognized are
// returned cleaned but otherwise as written, with a nil error: an
// unknown book is a degradation, not a failure.
func Canonicalize(key string, loc Locale) (string, error) {
	r, err := Parse(key, loc)
	if err != nil {
		return key, err
	}
	return r.Render(English), nil
}

// Localize renders a canonical (English) reference key in the given
// display locale.
func Localize(key string, loc Locale) (string, error) {
	r, err := Parse(key, English)
	if err != nil {
		return key, err
	}
	return r.Render(loc), nil
}
