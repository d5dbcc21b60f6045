// Package gazette defines the record types produced by segmenting a Diário
// Oficial edition: decrees, appointment and dismissal orders, annulment
// notices, and corrections. Records are value types, immutable once produced.
package gazette

import (
	"regexp"
	"time"
)

// FieldAbsent is the sentinel written for optional fields that were not
// present in the source text. It is distinct from an empty string, which
// would conflate "clause absent" with "extraction attempted but empty".
const FieldAbsent = "N/A"

// NoEditionBody is the decree body written for placeholder rows on dates
// without a published edition.
const NoEditionBody = "Não houve edição nesta data"

// DecreeNumberPattern validates decree and order numbers ("224/2025").
var DecreeNumberPattern = regexp.MustCompile(`^\d+/\d{4}$`)

// RecordKind identifies one of the five record collections.
type RecordKind string

const (
	KindDecree      RecordKind = "decreto"
	KindAppointment RecordKind = "portaria_nomeacao"
	KindDismissal   RecordKind = "portaria_exoneracao"
	KindAnnulment   RecordKind = "portaria_insubsistente"
	KindCorrection  RecordKind = "portaria_corrigenda"
)

// Kinds lists all record kinds in export order.
var Kinds = []RecordKind{KindDecree, KindAppointment, KindDismissal, KindAnnulment, KindCorrection}

// Decree is a municipal decree: the numbered act between the "DECRETO Nº"
// anchor and the closing formula, plus an optional annex block.
type Decree struct {
	Number string `json:"numero"`
	Body   string `json:"conteudo"`
	Annex  string `json:"anexo,omitempty"`
}

// DecreeHeaders is the CSV schema for decrees.
var DecreeHeaders = []string{"Número", "Conteúdo", "Anexo"}

// Fields returns the decree's values in DecreeHeaders order.
func (d Decree) Fields() []string {
	return []string{d.Number, d.Body, d.Annex}
}

// AppointmentOrder is a "Port. Nº ... Nomeia ..." act appointing a person to
// a commissioned position.
type AppointmentOrder struct {
	OrderNumber string `json:"num_portaria"`
	ActionVerb  string `json:"tipo"`
	PersonName  string `json:"nome"`
	Position    string `json:"cargo"`
	// PositionCode is the position's pay code ("CC-3"). Optional.
	PositionCode string `json:"cod_cargo"`
	IssuingBody  string `json:"orgao"`
	// TransferDecreeRef references the decree that transferred the vacancy.
	// Optional.
	TransferDecreeRef string `json:"vaga_transferida"`
	// VacancySource names the person whose dismissal opened the vacancy.
	// Optional.
	VacancySource string `json:"vaga_decorrente"`
	// BonusReference is the CI number granting additional gratifications.
	// Optional.
	BonusReference string `json:"gratificacoes"`
}

// AppointmentHeaders is the CSV schema for appointment orders.
var AppointmentHeaders = []string{
	"num_portaria", "tipo", "nome", "cargo", "cod_cargo", "orgao",
	"vaga_transferida", "vaga_decorrente", "gratificacoes",
}

// Fields returns the appointment's values in AppointmentHeaders order.
func (a AppointmentOrder) Fields() []string {
	return []string{
		a.OrderNumber, a.ActionVerb, a.PersonName, a.Position, a.PositionCode,
		a.IssuingBody, a.TransferDecreeRef, a.VacancySource, a.BonusReference,
	}
}

// DismissalOrder is a "Port. Nº ... Exonera ..." act removing a person from
// a position.
type DismissalOrder struct {
	OrderNumber string `json:"num_portaria"`
	ActionVerb  string `json:"tipo"`
	PersonName  string `json:"nome"`
	Position    string `json:"cargo"`
	// PositionSymbol is the position's symbol code ("símbolo CC-2").
	PositionSymbol string `json:"cod_cargo"`
	IssuingBody    string `json:"orgao"`
	// Reason is the stated dismissal reason ("por ter sido nomeado para
	// cargo ..."). Optional.
	Reason string `json:"motivo"`
}

// DismissalHeaders is the CSV schema for dismissal orders. The symbol shares
// the historical "cod_cargo" column name.
var DismissalHeaders = []string{
	"num_portaria", "tipo", "nome", "cargo", "cod_cargo", "orgao", "motivo",
}

// Fields returns the dismissal's values in DismissalHeaders order.
func (d DismissalOrder) Fields() []string {
	return []string{
		d.OrderNumber, d.ActionVerb, d.PersonName, d.Position,
		d.PositionSymbol, d.IssuingBody, d.Reason,
	}
}

// AnnulmentNotice voids a previously published order ("Torna insubsistente
// a Portaria nº ..."). The reference is a lookup key, not an ownership link:
// the referenced order may not appear in the same dataset.
type AnnulmentNotice struct {
	OrderNumber              string `json:"num_portaria"`
	ReferencedOrderNumber    string `json:"portaria_insubsistente"`
	ReferencedPublicationDate string `json:"data_publicacao"`
}

// AnnulmentHeaders is the CSV schema for annulment notices.
var AnnulmentHeaders = []string{"num_portaria", "portaria_insubsistente", "data_publicacao"}

// Fields returns the annulment's values in AnnulmentHeaders order.
func (n AnnulmentNotice) Fields() []string {
	return []string{n.OrderNumber, n.ReferencedOrderNumber, n.ReferencedPublicationDate}
}

// CorrectionNotice replaces text in a previously published order
// ("Na Portaria nº ..., onde se lê: ..., leia-se: ...").
type CorrectionNotice struct {
	ReferencedOrderNumber     string `json:"num_portaria"`
	ReferencedPublicationDate string `json:"data_publicacao"`
	OriginalText              string `json:"texto_anterior"`
	CorrectedText             string `json:"texto_corrigido"`
}

// CorrectionHeaders is the CSV schema for correction notices.
var CorrectionHeaders = []string{"num_portaria", "data_publicacao", "texto_anterior", "texto_corrigido"}

// Fields returns the correction's values in CorrectionHeaders order.
func (c CorrectionNotice) Fields() []string {
	return []string{c.ReferencedOrderNumber, c.ReferencedPublicationDate, c.OriginalText, c.CorrectedText}
}

// Diagnostics counts candidates that matched a start anchor but were dropped
// before completion (missing terminator or required sub-field). Dropped
// candidates are never half-populated records.
type Diagnostics struct {
	DroppedDecrees     int `json:"dropped_decrees"`
	DroppedOrders      int `json:"dropped_orders"`
	DroppedAnnulments  int `json:"dropped_annulments"`
	DroppedCorrections int `json:"dropped_corrections"`
}

// Total returns the total number of dropped candidates.
func (d Diagnostics) Total() int {
	return d.DroppedDecrees + d.DroppedOrders + d.DroppedAnnulments + d.DroppedCorrections
}

// RecordSet holds the five typed collections produced by one segmentation
// pass over one document, plus the pass diagnostics.
type RecordSet struct {
	Decrees      []Decree           `json:"decretos"`
	Appointments []AppointmentOrder `json:"portarias_nomeacao"`
	Dismissals   []DismissalOrder   `json:"portarias_exoneracao"`
	Annulments   []AnnulmentNotice  `json:"portarias_insubsistentes"`
	Corrections  []CorrectionNotice `json:"portarias_corrigendas"`
	Diagnostics  Diagnostics        `json:"-"`
}

// Count returns the number of records of the given kind.
func (s RecordSet) Count(kind RecordKind) int {
	switch kind {
	case KindDecree:
		return len(s.Decrees)
	case KindAppointment:
		return len(s.Appointments)
	case KindDismissal:
		return len(s.Dismissals)
	case KindAnnulment:
		return len(s.Annulments)
	case KindCorrection:
		return len(s.Corrections)
	}
	return 0
}

// Total returns the total number of records across all kinds.
func (s RecordSet) Total() int {
	total := 0
	for _, kind := range Kinds {
		total += s.Count(kind)
	}
	return total
}

// PlaceholderSet returns a RecordSet with exactly one placeholder record per
// kind, used in batch mode for dates without a published edition so that the
// per-kind row count matches the number of dates processed.
func PlaceholderSet() RecordSet {
	return RecordSet{
		Decrees: []Decree{{Number: FieldAbsent, Body: NoEditionBody, Annex: FieldAbsent}},
		Appointments: []AppointmentOrder{{
			OrderNumber: FieldAbsent, ActionVerb: FieldAbsent, PersonName: FieldAbsent,
			Position: FieldAbsent, PositionCode: FieldAbsent, IssuingBody: FieldAbsent,
			TransferDecreeRef: FieldAbsent, VacancySource: FieldAbsent, BonusReference: FieldAbsent,
		}},
		Dismissals: []DismissalOrder{{
			OrderNumber: FieldAbsent, ActionVerb: FieldAbsent, PersonName: FieldAbsent,
			Position: FieldAbsent, PositionSymbol: FieldAbsent, IssuingBody: FieldAbsent,
			Reason: FieldAbsent,
		}},
		Annulments: []AnnulmentNotice{{
			OrderNumber: FieldAbsent, ReferencedOrderNumber: FieldAbsent,
			ReferencedPublicationDate: FieldAbsent,
		}},
		Corrections: []CorrectionNotice{{
			ReferencedOrderNumber: FieldAbsent, ReferencedPublicationDate: FieldAbsent,
			OriginalText: FieldAbsent, CorrectedText: FieldAbsent,
		}},
	}
}

// EditionContext identifies the daily edition a record set came from.
type EditionContext struct {
	IssueDate time.Time `json:"data_edicao"`
}

// DateString formats the issue date the way the historical exports did
// (DD/MM/YYYY).
func (e EditionContext) DateString() string {
	return e.IssueDate.Format("02/01/2006")
}

// Edition pairs a record set with its edition context. Context is nil for
// single-edition runs, where no date column is exported. Missing marks dates
// for which no edition was published; in placeholder mode such editions
// carry a PlaceholderSet.
type Edition struct {
	Context *EditionContext `json:"contexto,omitempty"`
	Missing bool            `json:"sem_edicao,omitempty"`
	Records RecordSet       `json:"registros"`
}

// DateString returns the edition date in DD/MM/YYYY form, or the empty
// string when no context is attached.
func (e Edition) DateString() string {
	if e.Context == nil {
		return ""
	}
	return e.Context.DateString()
}

// HeadersFor returns the CSV schema for a record kind.
func HeadersFor(kind RecordKind) []string {
	switch kind {
	case KindDecree:
		return DecreeHeaders
	case KindAppointment:
		return AppointmentHeaders
	case KindDismissal:
		return DismissalHeaders
	case KindAnnulment:
		return AnnulmentHeaders
	case KindCorrection:
		return CorrectionHeaders
	}
	return nil
}

// FieldsFor returns the field rows for all records of the given kind in the
// set, in document order.
func FieldsFor(set RecordSet, kind RecordKind) [][]string {
	switch kind {
	case KindDecree:
		rows := make([][]string, 0, len(set.Decrees))
		for _, r := range set.Decrees {
			rows = append(rows, r.Fields())
		}
		return rows
	case KindAppointment:
		rows := make([][]string, 0, len(set.Appointments))
		for _, r := range set.Appointments {
			rows = append(rows, r.Fields())
		}
		return rows
	case KindDismissal:
		rows := make([][]string, 0, len(set.Dismissals))
		for _, r := range set.Dismissals {
			rows = append(rows, r.Fields())
		}
		return rows
	case KindAnnulment:
		rows := make([][]string, 0, len(set.Annulments))
		for _, r := range set.Annulments {
			rows = append(rows, r.Fields())
		}
		return rows
	case KindCorrection:
		rows := make([][]string, 0, len(set.Corrections))
		for _, r := range set.Corrections {
			rows = append(rows, r.Fields())
		}
		return rows
	}
	return nil
}
