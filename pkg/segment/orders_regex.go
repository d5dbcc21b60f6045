package segment

import (
	"regexp"
	"strings"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

var (
	// orgUnitAlternatives is the composed capture for the issuing unit,
	// shared by both composed order patterns.
	orgUnitAlternatives = `(Secretaria[^,.]*|Gabinete[^,.]*|Funda\x{e7}\x{e3}o[^,.]*|Administra\x{e7}\x{e3}o\s+Regional[^,.]*)`

	// appointmentComposedPattern extracts all appointment fields in one
	// match: verb, person, position, optional pay code, issuing unit.
	appointmentComposedPattern = regexp.MustCompile(
		`(Nome(?:ia|ar))\s+(.+?),?\s+para\s+exercer\s+o\s+cargo(?:\s+em\s+comiss\x{e3}o)?\s+de\s+([^,.]+?)` +
			`(?:,\s*([A-Z][A-Z0-9]*-?\d+))?` +
			`[,.].*?\bd[ao]\s+` + orgUnitAlternatives)

	// dismissalComposedPattern extracts all dismissal fields in one match:
	// verb phrase, person, position, symbol, issuing unit.
	dismissalComposedPattern = regexp.MustCompile(
		`(Exonerar?)(?:,?\s*a\s+pedido,?)?\s+(.+?),?\s+do\s+cargo\s+` +
			`(?:isolado\s+de\s+provimento\s+em\s+comiss\x{e3}o,?\s*)?de\s+([^,]+),\s*` +
			`s\x{ed}mbolo\s+([A-Za-z0-9-]+)` +
			`.*?\bd[ao]\s+` + orgUnitAlternatives)
)

// orderRegexMatcher is the composed-regex order strategy. It locates order
// anchors in the contiguous text and extracts every field with a single
// composed pattern per kind. Under the default profile it runs as a fallback
// after the line scan and skips anchors on consumed lines; under the
// regex-only strategy it is the sole order pass.
type orderRegexMatcher struct {
	profile Profile
}

func (m *orderRegexMatcher) name() string { return "portaria-regex" }

func (m *orderRegexMatcher) match(doc *document, out *gazette.RecordSet) {
	anchors := orderAnchorPattern.FindAllStringSubmatchIndex(doc.text, -1)
	for idx, loc := range anchors {
		startLine := doc.lineAt(loc[0])
		if doc.consumed[startLine] {
			continue
		}
		number := doc.text[loc[2]:loc[3]]

		end := len(doc.text)
		if idx+1 < len(anchors) {
			end = anchors[idx+1][0]
		}
		span := doc.text[loc[1]:end]
		if markerLoc := orgMarkerBreakPattern.FindStringIndex(span); markerLoc != nil {
			span = span[:markerLoc[0]]
		}
		endLine := doc.lineAt(loc[1] + len(span))
		span = cleanField(span)

		anchorLine := doc.lines[startLine]

		switch {
		case appointmentVerbPattern.MatchString(anchorLine):
			if record, ok := m.extractAppointment(number, span); ok {
				out.Appointments = append(out.Appointments, record)
				doc.consume(startLine, endLine+1)
			}
		case dismissalVerbPattern.MatchString(anchorLine):
			if record, ok := m.extractDismissal(number, span); ok {
				out.Dismissals = append(out.Dismissals, record)
				doc.consume(startLine, endLine+1)
			}
		}
	}
}

// orgMarkerBreakPattern terminates a regex-strategy order span at the next
// organizational section header. Matched mid-span rather than line-anchored
// because the span is a text slice, not a line sequence.
var orgMarkerBreakPattern = regexp.MustCompile(`\n\s*SECRETARIA\s+MUNICIPAL`)

func (m *orderRegexMatcher) extractAppointment(number, span string) (gazette.AppointmentOrder, bool) {
	match := appointmentComposedPattern.FindStringSubmatch(span)
	if match == nil {
		return gazette.AppointmentOrder{}, false
	}

	name := cleanField(strings.Trim(match[2], " ,"))
	position := cleanField(match[3])
	issuingBody := cleanField(textBefore(match[5], ",", "."))
	if name == "" || position == "" || issuingBody == "" {
		return gazette.AppointmentOrder{}, false
	}

	record := gazette.AppointmentOrder{
		OrderNumber:       number,
		ActionVerb:        match[1],
		PersonName:        name,
		Position:          position,
		PositionCode:      orAbsent(cleanField(match[4])),
		IssuingBody:       issuingBody,
		TransferDecreeRef: gazette.FieldAbsent,
		VacancySource:     gazette.FieldAbsent,
		BonusReference:    gazette.FieldAbsent,
	}

	if m.profile.CaptureTransferredVacancy {
		if clause := transferPattern.FindStringSubmatch(span); clause != nil {
			record.TransferDecreeRef = clause[1]
		}
	}
	if idx := strings.Index(span, vacancyTrigger); idx >= 0 {
		record.VacancySource = orAbsent(cleanField(textBefore(span[idx+len(vacancyTrigger):], ",", ".")))
	}
	if m.profile.CaptureBonusReference {
		if clause := bonusPattern.FindStringSubmatch(span); clause != nil {
			record.BonusReference = clause[1]
		}
	}

	return record, true
}

func (m *orderRegexMatcher) extractDismissal(number, span string) (gazette.DismissalOrder, bool) {
	match := dismissalComposedPattern.FindStringSubmatch(span)
	if match == nil {
		return gazette.DismissalOrder{}, false
	}

	name := cleanField(strings.Trim(match[2], " ,"))
	position := cleanField(match[3])
	issuingBody := cleanField(textBefore(match[5], ",", "."))
	if name == "" || position == "" || issuingBody == "" {
		return gazette.DismissalOrder{}, false
	}

	record := gazette.DismissalOrder{
		OrderNumber:    number,
		ActionVerb:     match[1],
		PersonName:     name,
		Position:       position,
		PositionSymbol: match[4],
		IssuingBody:    issuingBody,
		Reason:         gazette.FieldAbsent,
	}

	if m.profile.CaptureDismissalReason {
		if clause := reasonPattern.FindStringSubmatch(span); clause != nil {
			record.Reason = cleanField(clause[1])
		}
	}

	return record, true
}
