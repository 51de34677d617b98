package resume

import (
	"regexp"
	"strings"
)

var (
	nonPrintable  = regexp.MustCompile(`[^\x20-\x7E\n\r]`)
	colonSpacing  = regexp.MustCompile(`:\s*`)
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
	spaceRuns     = regexp.MustCompile(`[ \t]{2,}`)
)

// FormatText normalizes text pulled out of a document: it drops
// non-printable characters, separates glued words ("UniversityJULY"), puts a
// space after colons, collapses whitespace runs and removes empty lines.
func FormatText(raw string) string {
	s := nonPrintable.ReplaceAllString(raw, "")
	s = colonSpacing.ReplaceAllString(s, ": ")
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	s = spaceRuns.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
