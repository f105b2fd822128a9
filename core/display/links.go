// Package display holds the toolkit-independent logic behind a text
// display view: typed-reference extraction from the sword:// link
// scheme, selection bookkeeping, the bounded next/previous-match
// finder, the debounced highlight-words throttle, and plain-text range
// export.
package display

import "regexp"

// The sword:// link scheme embeds typed references in rendered text.
// Links look like:
//
//	sword://Bible/KJV/John 3:16||x=y
//	sword://Lexicon/StrongsGreek/G2316
//	sword://footnote/KJV=3
//	sword://lemmamorph/lemma=G25/KJV
var (
	reLemma      = regexp.MustCompile(`sword://lemmamorph/([a-s]+)=([GH][0-9]+)`)
	reBibleURL   = regexp.MustCompile(`(sword://Bible/.*)\|\|(.*)=(.*)`)
	reBibleKey   = regexp.MustCompile(`sword://Bible/(.*)/(.*)\|\|(.*)=(.*)`)
	reRefTrail   = regexp.MustCompile(`(?i)sword://(bible|lexicon)/(.*)/(.*)(\|\|)`)
	reRef        = regexp.MustCompile(`(?i)sword://(bible|lexicon)/(.*)/(.*)`)
	reFootnote   = regexp.MustCompile(`(?i)sword://footnote/(.*)=(.*)`)
	reLemmaMorph = regexp.MustCompile(`(?i)sword://lemmamorph/(.*)=(.*)/(.*)`)
)

// LemmaFromLink extracts the Strong's number from a lemma/morph link,
// or "" when the link carries none.
func LemmaFromLink(url string) string {
	if m := reLemma.FindStringSubmatch(url); m != nil {
		return m[2]
	}
	return ""
}

// BibleURLFromLink strips the trailing attribute pair from a Bible
// cross-reference link, returning the bare sword://Bible/... URL, or
// "" when the link is not a Bible reference.
func BibleURLFromLink(url string) string {
	if m := reBibleURL.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// BibleKeyFromLink extracts the verse key from a Bible link with a
// trailing attribute pair, or "" when the link does not match.
func BibleKeyFromLink(link string) string {
	if m := reBibleKey.FindStringSubmatch(link); m != nil {
		return m[2]
	}
	return ""
}

// DragSourceFromLink extracts the module and key named by an active
// Bible link. Reports false when the link does not name one, in which
// case the caller falls back to its own cursor position.
func DragSourceFromLink(link string) (moduleName, keyName string, ok bool) {
	if m := reBibleKey.FindStringSubmatch(link); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}

// ReferenceFromURL normalizes a sword:// link into the reference form
// the info-display pipeline consumes: "href=sword://..." for Bible and
// lexicon references, "note=..." for footnotes, "lemma=.../morph=..."
// attribute pairs for lemma/morph links. Returns "" for links of no
// recognized type.
func ReferenceFromURL(url string) string {
	if m := reRefTrail.FindStringSubmatch(url); m != nil {
		return "href=sword://" + m[1] + "/" + m[2] + "/" + m[3]
	}
	if m := reRef.FindStringSubmatch(url); m != nil {
		return "href=sword://" + m[1] + "/" + m[2] + "/" + m[3]
	}
	if m := reFootnote.FindStringSubmatch(url); m != nil {
		return "note=" + m[1]
	}
	if m := reLemmaMorph.FindStringSubmatch(url); m != nil {
		return m[1] + "=" + m[2]
	}
	return ""
}
