package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxSanitizedLength caps how much page text is embedded in the
// extraction prompt.
const MaxSanitizedLength = 8000

var (
	scriptRe     = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	commentRe    = regexp.MustCompile(`(?s)<!--.*?-->`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// SanitizeHTML strips script/style blocks and HTML comments, collapses
// whitespace runs to single spaces and truncates the result for
// prompting. Pure function, no I/O.
func SanitizeHTML(raw string) string {
	out := scriptRe.ReplaceAllString(raw, " ")
	out = styleRe.ReplaceAllString(out, " ")
	out = commentRe.ReplaceAllString(out, " ")
	out = whitespaceRe.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)

	return truncateForPrompt(out)
}

// truncateForPrompt caps text at MaxSanitizedLength bytes without
// splitting a multi-byte rune, so prompt content stays valid UTF-8.
func truncateForPrompt(s string) string {
	if len(s) <= MaxSanitizedLength {
		return s
	}
	cut := MaxSanitizedLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
