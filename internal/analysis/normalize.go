package analysis

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unicode-aware equivalents of \w and \s; RE2's classes are ASCII only.
const (
	wordChars  = `\p{L}\p{M}\p{N}_`
	spaceChars = `\s\p{Z}`
)

var (
	urlPattern         = regexp.MustCompile(`(?:http|www|https)[^` + spaceChars + `]+`)
	mentionPattern     = regexp.MustCompile(`@[` + wordChars + `]+`)
	hashtagPattern     = regexp.MustCompile(`#[` + wordChars + `]+`)
	digitPattern       = regexp.MustCompile(`\p{Nd}+`)
	punctuationPattern = regexp.MustCompile(`[^` + wordChars + spaceChars + `]`)

	lower = cases.Lower(language.Und)
)

// Normalize lowercases text and strips URLs, mentions, hashtags, digits and
// punctuation, in that order, then trims surrounding whitespace.
//
// Stripping is repeated until the text stops changing: removing punctuation
// can join fragments into something that looks like a URL again ("www-x" ->
// "wwwx"), and Normalize must be idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := lower.String(html.UnescapeString(text))
	for {
		next := strip(s)
		if next == s {
			break
		}
		s = next
	}

	return strings.TrimSpace(s)
}

func strip(s string) string {
	s = urlPattern.ReplaceAllString(s, "")
	s = mentionPattern.ReplaceAllString(s, "")
	s = hashtagPattern.ReplaceAllString(s, "")
	s = digitPattern.ReplaceAllString(s, "")
	return punctuationPattern.ReplaceAllString(s, "")
}
