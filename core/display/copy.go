package display

import (
	"regexp"
	"strings"
)

// KeyedText is the read surface for range export: rows addressed by
// index, each carrying a key name and a plain-text rendering.
type KeyedText interface {
	KeyName(row int) string
	StrippedText(row int) string
}

// CopyRange renders the rows first..last inclusive as plain text, one
// "key\ntext\n\n" block per row, the form placed on the clipboard by
// the view.
func CopyRange(src KeyedText, first, last int) string {
	var b strings.Builder
	for row := first; row <= last; row++ {
		b.WriteString(src.KeyName(row))
		b.WriteByte('\n')
		b.WriteString(src.StrippedText(row))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Raw module text arrives as a complete HTML page; only the body
// content is wanted.
var (
	reBeforeBody = regexp.MustCompile(`(?is)^.*?<body(\s[^>]*?)?>`)
	reAfterBody  = regexp.MustCompile(`(?is)</body>.*?$`)
)

// ExtractBody strips the page header and footer around the <body>
// element of a raw HTML rendering. Text without a body element passes
// through unchanged.
func ExtractBody(raw string) string {
	if loc := reBeforeBody.FindStringIndex(raw); loc != nil {
		raw = raw[loc[1]:]
	}
	if loc := reAfterBody.FindStringIndex(raw); loc != nil {
		raw = raw[:loc[0]]
	}
	return raw
}
