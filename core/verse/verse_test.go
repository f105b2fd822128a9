package verse

import (
	"testing"
)

func intPtr(i int) *int { return &i }

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantBook    string
		wantChStart *int
		wantVsStart *int
		wantChEnd   *int
		wantVsEnd   *int
		wantStr     string
		wantErr     bool
	}{
		{
			name:        "full reference",
			input:       "Genesis 1:1",
			wantBook:    "Genesis",
			wantChStart: intPtr(1),
			wantVsStart: intPtr(1),
			wantStr:     "Genesis 1:1",
		},
		{
			name:        "abbreviated book",
			input:       "Gen 1:1",
			wantBook:    "Genesis",
			wantChStart: intPtr(1),
			wantVsStart: intPtr(1),
			wantStr:     "Genesis 1:1",
		},
		{
			name:        "abbreviated with period",
			input:       "Gen. 1:1",
			wantBook:    "Genesis",
			wantChStart: intPtr(1),
			wantVsStart: intPtr(1),
			wantStr:     "Genesis 1:1",
		},
		{
			name:        "dot separator",
			input:       "Gen.1.1",
			wantBook:    "Genesis",
			wantChStart: intPtr(1),
			wantVsStart: intPtr(1),
			wantStr:     "Genesis 1:1",
		},
		{
			name:        "verse range",
			input:       "Genesis 1:1-5",
			wantBook:    "Genesis",
			wantChStart: intPtr(1),
			wantVsStart: intPtr(1),
			wantVsEnd:   intPtr(5),
			wantStr:     "Genesis 1:1-5",
		},
		{
			name:        "cross chapter range",
			input:       "Genesis 1:1-2:5",
			wantBook:    "Genesis",
			wantChStart: intPtr(1),
			wantVsStart: intPtr(1),
			wantChEnd:   intPtr(2),
			wantVsEnd:   intPtr(5),
			wantStr:     "Genesis 1:1-2:5",
		},
		{
			name:        "chapter range",
			input:       "Genesis 1-2",
			wantBook:    "Genesis",
			wantChStart: intPtr(1),
			wantChEnd:   intPtr(2),
			wantStr:     "Genesis 1-2",
		},
		{
			name:        "full chapter",
			input:       "Genesis 1",
			wantBook:    "Genesis",
			wantChStart: intPtr(1),
			wantStr:     "Genesis 1",
		},
		{
			name:     "book only",
			input:    "Genesis",
			wantBook: "Genesis",
			wantStr:  "Genesis",
		},
		{
			name:        "ordinal book",
			input:       "1 John 4:8",
			wantBook:    "1John",
			wantChStart: intPtr(4),
			wantVsStart: intPtr(8),
			wantStr:     "1John 4:8",
		},
		{
			name:        "multi word book",
			input:       "Song of Solomon 2:1",
			wantBook:    "Song of Solomon",
			wantChStart: intPtr(2),
			wantVsStart: intPtr(1),
			wantStr:     "Song of Solomon 2:1",
		},
		{
			name:        "unknown book passes through",
			input:       "Sirach 1:1",
			wantBook:    "Sirach",
			wantChStart: intPtr(1),
			wantVsStart: intPtr(1),
			wantStr:     "Sirach 1:1",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "number only",
			input:   "1:1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, English)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got.Book != tt.wantBook {
				t.Errorf("Book = %q, want %q", got.Book, tt.wantBook)
			}
			checkIntPtr(t, "ChapterStart", got.ChapterStart, tt.wantChStart)
			checkIntPtr(t, "VerseStart", got.VerseStart, tt.wantVsStart)
			checkIntPtr(t, "ChapterEnd", got.ChapterEnd, tt.wantChEnd)
			checkIntPtr(t, "VerseEnd", got.VerseEnd, tt.wantVsEnd)
			if s := got.String(); s != tt.wantStr {
				t.Errorf("String() = %q, want %q", s, tt.wantStr)
			}
		})
	}
}

func checkIntPtr(t *testing.T, field string, got, want *int) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", field, fmtPtr(got), fmtPtr(want))
	case *got != *want:
		t.Errorf("%s = %d, want %d", field, *got, *want)
	}
}

func fmtPtr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func TestRangePredicates(t *testing.T) {
	full, err := Parse("John 3:16", English)
	if err != nil {
		t.Fatal(err)
	}
	if full.IsRange() || full.IsChapterOnly() || full.IsBookOnly() {
		t.Errorf("John 3:16 misclassified: range=%v chapter=%v book=%v",
			full.IsRange(), full.IsChapterOnly(), full.IsBookOnly())
	}

	chapter, err := Parse("John 3", English)
	if err != nil {
		t.Fatal(err)
	}
	if !chapter.IsChapterOnly() {
		t.Error("John 3 should be chapter-only")
	}

	book, err := Parse("John", English)
	if err != nil {
		t.Fatal(err)
	}
	if !book.IsBookOnly() {
		t.Error("John should be book-only")
	}

	rng, err := Parse("John 3:16-18", English)
	if err != nil {
		t.Fatal(err)
	}
	if !rng.IsRange() {
		t.Error("John 3:16-18 should be a range")
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		loc   Locale
		want  string
	}{
		{"english abbreviation", "Gen 1:1", English, "Genesis 1:1"},
		{"already canonical", "Genesis 1:1", English, "Genesis 1:1"},
		{"german name", "Offenbarung 22:21", German, "Revelation 22:21"},
		{"german umlaut", "Römer 8:28", German, "Romans 8:28"},
		{"spanish name", "Apocalipsis 1:8", Spanish, "Revelation 1:8"},
		{"spanish accents", "Génesis 1:1", Spanish, "Genesis 1:1"},
		{"canonical under foreign locale", "Genesis 1:1", German, "Genesis 1:1"},
		{"unknown book verbatim", "Sirach 1:1", English, "Sirach 1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.input, tt.loc)
			if err != nil {
				t.Fatalf("Canonicalize(%q, %q) error: %v", tt.input, tt.loc, err)
			}
			if got != tt.want {
				t.Errorf("Canonicalize(%q, %q) = %q, want %q", tt.input, tt.loc, got, tt.want)
			}
		})
	}
}

func TestLocalize(t *testing.T) {
	tests := []struct {
		name string
		key  string
		loc  Locale
		want string
	}{
		{"german", "Genesis 1:1", German, "Genesis 1:1"},
		{"german renamed", "Revelation 22:21", German, "Offenbarung 22:21"},
		{"german ordinal", "1Kings 2:3", German, "1Könige 2:3"},
		{"spanish", "Psalms 23:1", Spanish, "Salmos 23:1"},
		{"english identity", "Psalms 23:1", English, "Psalms 23:1"},
		{"unknown locale falls back", "Psalms 23:1", Locale("fr"), "Psalms 23:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Localize(tt.key, tt.loc)
			if err != nil {
				t.Fatalf("Localize(%q, %q) error: %v", tt.key, tt.loc, err)
			}
			if got != tt.want {
				t.Errorf("Localize(%q, %q) = %q, want %q", tt.key, tt.loc, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeLocalizeRoundTrip(t *testing.T) {
	for _, loc := range []Locale{German, Spanish} {
		for _, book := range Books() {
			key := book + " 1:1"
			localized, err := Localize(key, loc)
			if err != nil {
				t.Fatalf("Localize(%q, %q): %v", key, loc, err)
			}
			back, err := Canonicalize(localized, loc)
			if err != nil {
				t.Fatalf("Canonicalize(%q, %q): %v", localized, loc, err)
			}
			if back != key {
				t.Errorf("round trip via %q: %q -> %q -> %q", loc, key, localized, back)
			}
		}
	}
}

func TestLookupBook(t *testing.T) {
	ord, ok := LookupBook("1 jn", English)
	if !ok {
		t.Fatal("LookupBook failed for '1 jn'")
	}
	if name := BookName(ord, English); name != "1John" {
		t.Errorf("BookName = %q, want 1John", name)
	}

	if _, ok := LookupBook("Sirach", English); ok {
		t.Error("Sirach should not resolve")
	}

	if BookName(-1, English) != "" || BookName(len(Books()), English) != "" {
		t.Error("out of range ordinals should return empty names")
	}
}
