package segment

import (
	"regexp"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

var (
	// annulmentTriggerPattern matches the voiding phrase in either of its
	// published wordings.
	annulmentTriggerPattern = regexp.MustCompile(`Torna\s+(?:insubsistente|sem\s+efeito)`)

	// referencedOrderPattern matches the voided order's number after the
	// trigger, with either the full or abbreviated "Portaria" form.
	referencedOrderPattern = regexp.MustCompile(`(?i)Port(?:aria|\.)\s+n[º°]\s*(\d+/\d+)`)

	// publicationDatePattern matches the voided order's publication date.
	publicationDatePattern = regexp.MustCompile(`publicada\s+em\s+(\d{2}/\d{2}/\d{4})`)
)

// annulmentMatcher extracts annulment notices. An annulment is a single-line
// act: its own order number precedes the trigger phrase and the voided
// order's number and publication date follow it, all on the anchor line. A
// trigger line missing any of the three parts is counted and skipped.
type annulmentMatcher struct{}

func (m *annulmentMatcher) name() string { return "insubsistente" }

func (m *annulmentMatcher) match(doc *document, out *gazette.RecordSet) {
	for i, line := range doc.lines {
		trigger := annulmentTriggerPattern.FindStringIndex(line)
		if trigger == nil {
			continue
		}

		anchor := orderAnchorPattern.FindStringSubmatch(line[:trigger[0]])
		referenced := referencedOrderPattern.FindStringSubmatch(line[trigger[1]:])
		published := publicationDatePattern.FindStringSubmatch(line[trigger[1]:])
		if anchor == nil || referenced == nil || published == nil {
			out.Diagnostics.DroppedAnnulments++
			continue
		}

		out.Annulments = append(out.Annulments, gazette.AnnulmentNotice{
			OrderNumber:               anchor[1],
			ReferencedOrderNumber:     referenced[1],
			ReferencedPublicationDate: published[1],
		})
		doc.consume(i, i+1)
	}
}
