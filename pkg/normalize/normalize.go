// Package normalize strips page-marker noise from raw PDF-extracted gazette
// text. It deliberately does nothing else: no case folding, no accent
// stripping, no whitespace collapsing. Field-level cleanup belongs to the
// segmentation engine.
package normalize

import (
	"regexp"
	"strings"
)

// pageMarkerPattern matches the running page headers the PDF extractor
// leaves behind ("Página 12").
var pageMarkerPattern = regexp.MustCompile(`Página\s+\d+`)

// Lines splits raw extracted text into lines and drops page-marker lines.
// All other lines are preserved byte-for-byte for line-oriented matchers.
func Lines(raw string) []string {
	split := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(split))
	for _, line := range split {
		if pageMarkerPattern.MatchString(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return cleaned
}

// Text returns the cleaned document as a single newline-joined block for
// span matchers that cross paragraph breaks. Idempotent:
// Text(Text(d)) == Text(d).
func Text(raw string) string {
	return strings.Join(Lines(raw), "\n")
}
