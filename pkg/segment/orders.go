package segment

import (
	"regexp"
	"strings"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

var (
	// orderAnchorPattern matches the order-number anchor "Port. Nº 10/2025".
	orderAnchorPattern = regexp.MustCompile(`Port\.\s*N[º°]\s*(\d+/\d+)`)

	// orgMarkerPattern matches the organizational-unit section header that
	// terminates a run of orders.
	orgMarkerPattern = regexp.MustCompile(`^\s*SECRETARIA\s+MUNICIPAL`)

	// appointmentVerbPattern and dismissalVerbPattern classify an anchor
	// line by its action verb. Both inflections occur in the source.
	appointmentVerbPattern = regexp.MustCompile(`\bNome(?:ia|ar)\b`)
	dismissalVerbPattern   = regexp.MustCompile(`\bExonerar?\b`)

	// dismissalVerbPhrasePattern captures the full dismissal verb phrase,
	// including the optional "a pedido" qualifier.
	dismissalVerbPhrasePattern = regexp.MustCompile(`Exonerar?,?(?:\s*a\s+pedido,?)?`)

	// positionCodePattern recognizes position pay codes ("CC-3", "DAS2").
	positionCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*-?\d+$`)

	// dismissalPositionPattern captures the position title of a dismissal,
	// tolerating the "cargo isolado de provimento em comissão" variant.
	dismissalPositionPattern = regexp.MustCompile(`do\s+cargo\s+(?:isolado\s+de\s+provimento\s+em\s+comissão,?\s*)?de\s+([^,]+),`)

	// symbolPattern captures the dismissal position symbol.
	symbolPattern = regexp.MustCompile(`símbolo\s+([A-Za-z0-9-]+)`)

	// reasonPattern captures the optional dismissal reason clause.
	reasonPattern = regexp.MustCompile(`por\s+ter\s+sido\s+nomead[oa]\s+para\s+(?:o\s+)?cargo\s+([^.]+)\.`)

	// transferPattern captures the optional transferred-vacancy clause.
	transferPattern = regexp.MustCompile(`em\s+vaga\s+transferida\s+pelo\s+Decreto\s+(?:N[º°]\s*)?(\d+/\d+)`)

	// bonusPattern captures the optional gratification clause.
	bonusPattern = regexp.MustCompile(`acrescid[oa]\s+das\s+gratificações\s+previstas\s+na\s+CI\s+n[º°]\s*(\d+/\d+)`)
)

// vacancyTrigger starts the optional vacancy-source clause.
const vacancyTrigger = "em vaga decorrente da exoneração de"

// issuingBodyTriggers are the literal organizational-unit prefixes tested in
// order; the connector variants "da"/"do" are spelled out rather than
// generalized because "da Gabinete" genuinely occurs in the source.
var issuingBodyTriggers = []struct {
	trigger string
	unit    string
}{
	{"da Secretaria", "Secretaria"},
	{"do Gabinete", "Gabinete"},
	{"da Gabinete", "Gabinete"},
	{"da Fundação", "Fundação"},
	{"da Administração Regional", "Administração Regional"},
}

// findIssuingBody locates the issuing organizational unit in an order
// description: the unit word plus the text up to the next comma or period.
func findIssuingBody(description string) string {
	for _, t := range issuingBodyTriggers {
		idx := strings.Index(description, t.trigger)
		if idx < 0 {
			continue
		}
		tail := description[idx+len(t.trigger):]
		return cleanField(t.unit + " " + strings.TrimSpace(textBefore(tail, ",", ".")))
	}
	return ""
}

// orderLineScanMatcher is the primary order strategy: walk the line
// sequence, classify each anchor line by its verb, concatenate following
// lines into the order description until the next anchor or organizational
// marker, then extract sub-fields by literal splits. The cursor never
// re-scans consumed lines; spans that produce a record (or belong to a
// recognized but untyped order) are excluded from the regex fallback pass.
type orderLineScanMatcher struct {
	profile Profile
}

func (m *orderLineScanMatcher) name() string { return "portaria-linhas" }

func (m *orderLineScanMatcher) match(doc *document, out *gazette.RecordSet) {
	i := 0
	for i < len(doc.lines) {
		anchor := orderAnchorPattern.FindStringSubmatch(doc.lines[i])
		if anchor == nil {
			i++
			continue
		}
		number := anchor[1]

		// Classification uses the anchor line only, appointment before
		// dismissal, so a stray verb later in the description can never
		// reclassify or duplicate the record.
		isAppointment := appointmentVerbPattern.MatchString(doc.lines[i])
		isDismissal := !isAppointment && dismissalVerbPattern.MatchString(doc.lines[i])

		descParts := []string{strings.TrimSpace(doc.lines[i])}
		j := i + 1
		for j < len(doc.lines) &&
			!orderAnchorPattern.MatchString(doc.lines[j]) &&
			!orgMarkerPattern.MatchString(doc.lines[j]) {
			descParts = append(descParts, strings.TrimSpace(doc.lines[j]))
			j++
		}
		description := cleanField(strings.Join(descParts, " "))

		switch {
		case isAppointment:
			if record, ok := m.extractAppointment(number, description); ok {
				out.Appointments = append(out.Appointments, record)
				doc.consume(i, j)
			}
		case isDismissal:
			if record, ok := m.extractDismissal(number, description); ok {
				out.Dismissals = append(out.Dismissals, record)
				doc.consume(i, j)
			}
		default:
			// A recognized order of another kind (annulments are handled by
			// their own pass). Consumed so the regex fallback skips it.
			doc.consume(i, j)
		}

		i = j
	}
}

// extractAppointment pulls the appointment sub-fields out of a concatenated
// order description. Returns false when a required field cannot be located;
// such candidates yield no record.
func (m *orderLineScanMatcher) extractAppointment(number, description string) (gazette.AppointmentOrder, bool) {
	verbLoc := appointmentVerbPattern.FindStringIndex(description)
	if verbLoc == nil {
		return gazette.AppointmentOrder{}, false
	}
	verb := description[verbLoc[0]:verbLoc[1]]
	rest := description[verbLoc[1]:]

	nameEnd := strings.Index(rest, "para exercer")
	if nameEnd < 0 {
		return gazette.AppointmentOrder{}, false
	}
	name := cleanField(strings.Trim(rest[:nameEnd], " ,"))
	if name == "" {
		return gazette.AppointmentOrder{}, false
	}

	cargoIdx := strings.Index(rest, "o cargo de")
	if cargoIdx < 0 {
		return gazette.AppointmentOrder{}, false
	}
	cargoTail := rest[cargoIdx+len("o cargo de"):]
	cargoParts := strings.SplitN(cargoTail, ",", 3)
	position := cleanField(textBefore(cargoParts[0], "."))
	if position == "" {
		return gazette.AppointmentOrder{}, false
	}
	positionCode := ""
	if len(cargoParts) > 1 {
		if candidate := cleanField(textBefore(cargoParts[1], ".")); positionCodePattern.MatchString(candidate) {
			positionCode = candidate
		}
	}

	issuingBody := findIssuingBody(rest)
	if issuingBody == "" {
		return gazette.AppointmentOrder{}, false
	}

	record := gazette.AppointmentOrder{
		OrderNumber:       number,
		ActionVerb:        verb,
		PersonName:        name,
		Position:          position,
		PositionCode:      orAbsent(positionCode),
		IssuingBody:       issuingBody,
		TransferDecreeRef: gazette.FieldAbsent,
		VacancySource:     gazette.FieldAbsent,
		BonusReference:    gazette.FieldAbsent,
	}

	if m.profile.CaptureTransferredVacancy {
		if match := transferPattern.FindStringSubmatch(description); match != nil {
			record.TransferDecreeRef = match[1]
		}
	}
	if idx := strings.Index(description, vacancyTrigger); idx >= 0 {
		record.VacancySource = orAbsent(cleanField(textBefore(description[idx+len(vacancyTrigger):], ",", ".")))
	}
	if m.profile.CaptureBonusReference {
		if match := bonusPattern.FindStringSubmatch(description); match != nil {
			record.BonusReference = match[1]
		}
	}

	return record, true
}

// extractDismissal pulls the dismissal sub-fields out of a concatenated
// order description.
func (m *orderLineScanMatcher) extractDismissal(number, description string) (gazette.DismissalOrder, bool) {
	phraseLoc := dismissalVerbPhrasePattern.FindStringIndex(description)
	if phraseLoc == nil {
		return gazette.DismissalOrder{}, false
	}
	verb := cleanField(strings.TrimRight(description[phraseLoc[0]:phraseLoc[1]], " ,"))
	rest := description[phraseLoc[1]:]

	cargoIdx := strings.Index(rest, "do cargo")
	if cargoIdx < 0 {
		return gazette.DismissalOrder{}, false
	}
	// The name is the last comma-separated segment before "do cargo",
	// which sheds any qualifier the verb-phrase match left behind.
	nameSegment := strings.Trim(rest[:cargoIdx], " ,")
	nameParts := strings.Split(nameSegment, ",")
	name := cleanField(nameParts[len(nameParts)-1])
	if name == "" {
		return gazette.DismissalOrder{}, false
	}

	positionMatch := dismissalPositionPattern.FindStringSubmatch(rest)
	if positionMatch == nil {
		return gazette.DismissalOrder{}, false
	}
	position := cleanField(positionMatch[1])

	symbolMatch := symbolPattern.FindStringSubmatch(rest)
	if symbolMatch == nil {
		return gazette.DismissalOrder{}, false
	}

	issuingBody := findIssuingBody(rest)
	if issuingBody == "" {
		return gazette.DismissalOrder{}, false
	}

	record := gazette.DismissalOrder{
		OrderNumber:    number,
		ActionVerb:     verb,
		PersonName:     name,
		Position:       position,
		PositionSymbol: symbolMatch[1],
		IssuingBody:    issuingBody,
		Reason:         gazette.FieldAbsent,
	}

	if m.profile.CaptureDismissalReason {
		if match := reasonPattern.FindStringSubmatch(rest); match != nil {
			record.Reason = cleanField(match[1])
		}
	}

	return record, true
}
