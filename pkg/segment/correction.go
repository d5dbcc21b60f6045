package segment

import (
	"regexp"
	"strings"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

var (
	// correctionAnchorPattern matches the correction opening line, which
	// names the order being corrected.
	correctionAnchorPattern = regexp.MustCompile(`Na\s+Portaria\s+n[º°]\s*(\d+/\d+)`)

	// correctionOriginalPattern and correctionReplacementPattern mark the
	// replaced and replacement text lines of the fixed three-line layout.
	correctionOriginalPattern    = regexp.MustCompile(`onde\s+se\s+l\x{ea}:?\s*(.*)`)
	correctionReplacementPattern = regexp.MustCompile(`leia-se:?\s*(.*)`)
)

// correctionMatcher extracts correction notices, which the gazette
// typesets as a fixed window: the anchor line naming the corrected order,
// an "onde se lê:" line with the replaced text, and a "leia-se:" line with
// the replacement. The "publicada em" clause sits on the anchor line or
// wraps onto its own line right after it. A window whose marker lines are
// missing is counted and skipped; a window truncated by the end of the
// document is tolerated without counting, since a correction is the last
// item of its section and the cut is a page artifact.
type correctionMatcher struct{}

func (m *correctionMatcher) name() string { return "corrigenda" }

func (m *correctionMatcher) match(doc *document, out *gazette.RecordSet) {
	for i := 0; i < len(doc.lines); i++ {
		anchor := correctionAnchorPattern.FindStringSubmatch(doc.lines[i])
		if anchor == nil {
			continue
		}

		published := publicationDatePattern.FindStringSubmatch(doc.lines[i])
		next := i + 1
		if published == nil && next < len(doc.lines) &&
			!correctionOriginalPattern.MatchString(doc.lines[next]) {
			if wrapped := publicationDatePattern.FindStringSubmatch(doc.lines[next]); wrapped != nil {
				published = wrapped
				next++
			}
		}
		if next+1 >= len(doc.lines) {
			return
		}

		original := correctionOriginalPattern.FindStringSubmatch(doc.lines[next])
		replacement := correctionReplacementPattern.FindStringSubmatch(doc.lines[next+1])
		if original == nil || replacement == nil {
			out.Diagnostics.DroppedCorrections++
			continue
		}

		notice := gazette.CorrectionNotice{
			ReferencedOrderNumber:     anchor[1],
			ReferencedPublicationDate: gazette.FieldAbsent,
			OriginalText:              cleanCorrectionText(original[1]),
			CorrectedText:             cleanCorrectionText(replacement[1]),
		}
		if published != nil {
			notice.ReferencedPublicationDate = published[1]
		}

		out.Corrections = append(out.Corrections, notice)
		doc.consume(i, next+2)
		i = next + 1
	}
}

// cleanCorrectionText trims the quoted fragment and sheds the trailing
// punctuation the typesetting appends after the closing quote.
func cleanCorrectionText(text string) string {
	text = cleanField(text)
	text = strings.TrimRight(text, ",.")
	return strings.TrimSpace(text)
}
