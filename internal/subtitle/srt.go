// Package subtitle extracts continuous plain text from subtitle-formatted
// transcripts.
package subtitle

import (
	"regexp"
	"strings"
)

// cueHeaderRe matches a standard SRT cue header: a sequence-number line
// followed by a timing-range line. Anything after the timestamps on the
// timing line (position hints) is consumed with the header.
var cueHeaderRe = regexp.MustCompile(`(?m)^\d+\r?\n\d{2}:\d{2}:\d{2},\d{3} --> \d{2}:\d{2}:\d{2},\d{3}[^\n]*\r?\n`)

// whitespaceRe collapses any whitespace run, including newlines.
var whitespaceRe = regexp.MustCompile(`\s+`)

// ToPlainText strips SRT cue headers and normalizes whitespace.
//
// Pure and total: malformed input is tolerated, unmatched lines pass
// through unmodified. Applying it to its own output changes nothing
// further, since no cue headers remain to strip.
func ToPlainText(srt string) string {
	text := cueHeaderRe.ReplaceAllString(srt, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// WordCount counts whitespace-separated words in a plain transcript.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
