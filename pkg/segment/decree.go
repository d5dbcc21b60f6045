package segment

import (
	"regexp"
	"strings"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

var (
	// decreeAnchorPattern matches the start anchor "DECRETO Nº 224/2025".
	// Both the masculine ordinal and the degree sign appear in extracted
	// text, depending on the edition's typesetting.
	decreeAnchorPattern = regexp.MustCompile(`DECRETO\s*N[º°]\s*(\d+/\d{4})`)

	// decreeClosingPattern matches the closing formula that terminates a
	// decree body: "PREFEITURA MUNICIPAL DE NITERÓI, EM 15 DE MARÇO DE 2025."
	decreeClosingPattern = regexp.MustCompile(`(?i)PREFEITURA\s+MUNICIPAL\s+DE\s+NITER[ÓO]I\s*,\s*EM\s+\d{1,2}\s+DE\s+\p{L}+\s+DE\s+\d{4}\s*\.`)

	// decreeAnnexPattern marks the optional annex block that may follow a
	// decree's closing formula.
	decreeAnnexPattern = regexp.MustCompile(`ANEXO\s+AO\s+DECRETO\s+N[º°]`)
)

// decreeMatcher walks the line sequence collecting decree bodies between the
// start anchor and the closing formula. A candidate whose terminator does
// not appear before the next decree anchor or end of document yields no
// record. When enabled, an "ANEXO AO DECRETO Nº" block following the
// closing formula is accumulated and attached to the same decree.
type decreeMatcher struct {
	captureAnnex bool
}

func (m *decreeMatcher) name() string { return "decreto" }

func (m *decreeMatcher) match(doc *document, out *gazette.RecordSet) {
	i := 0
	for i < len(doc.lines) {
		// An annex header repeats the decree anchor text and must not start
		// a new decree.
		if decreeAnnexPattern.MatchString(doc.lines[i]) {
			i++
			continue
		}
		anchor := decreeAnchorPattern.FindStringSubmatch(doc.lines[i])
		if anchor == nil {
			i++
			continue
		}
		number := anchor[1]

		var bodyLines []string
		j := i + 1
		terminated := false
		for j < len(doc.lines) {
			line := doc.lines[j]
			if decreeAnchorPattern.MatchString(line) {
				// Next same-kind anchor before the terminator: the current
				// candidate is malformed and dropped.
				break
			}
			if decreeClosingPattern.MatchString(line) {
				terminated = true
				break
			}
			bodyLines = append(bodyLines, strings.TrimSpace(line))
			j++
		}

		body := cleanField(strings.Join(bodyLines, " "))
		if !terminated || body == "" {
			out.Diagnostics.DroppedDecrees++
			i = j
			continue
		}

		decree := gazette.Decree{Number: number, Body: body}

		// The annex, when present, starts right after the closing formula
		// and runs until the next decree or closing marker.
		next := j + 1
		if m.captureAnnex && next < len(doc.lines) && decreeAnnexPattern.MatchString(doc.lines[next]) {
			var annexLines []string
			next++
			for next < len(doc.lines) &&
				!decreeAnchorPattern.MatchString(doc.lines[next]) &&
				!decreeClosingPattern.MatchString(doc.lines[next]) {
				annexLines = append(annexLines, strings.TrimSpace(doc.lines[next]))
				next++
			}
			decree.Annex = cleanField(strings.Join(annexLines, " "))
			j = next - 1
		}
		decree.Annex = orAbsent(decree.Annex)

		out.Decrees = append(out.Decrees, decree)
		i = j + 1
	}
}
