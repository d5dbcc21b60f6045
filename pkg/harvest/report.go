package harvest

import (
	"fmt"
	"strings"
	"time"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

// Report summarizes one harvest run: dates covered, editions that were
// missing or failed to download, per-kind record totals, and dropped
// candidate counts.
type Report struct {
	First time.Time `json:"primeira_data"`
	Last  time.Time `json:"ultima_data"`

	// DatesProcessed counts every date in the range, published or not.
	DatesProcessed int `json:"datas_processadas"`

	// MissingDates lists dates without a published edition, DD/MM/YYYY.
	// Failed downloads appear here as well, since their editions are
	// treated as missing.
	MissingDates []string `json:"datas_sem_edicao,omitempty"`

	// FailedDates lists dates whose download failed after all retries.
	FailedDates []string `json:"datas_com_falha,omitempty"`

	// Counts holds per-kind extracted-record totals across published
	// editions. Placeholder rows are tracked separately.
	Counts map[gazette.RecordKind]int `json:"totais"`

	// PlaceholderRows counts dates that produced placeholder rows, one
	// row per kind each.
	PlaceholderRows int `json:"linhas_placeholder,omitempty"`

	// Dropped accumulates dropped-candidate diagnostics across editions.
	Dropped gazette.Diagnostics `json:"descartados"`
}

// NewReport creates an empty report for the given range.
func NewReport(first, last time.Time) *Report {
	return &Report{
		First:  first,
		Last:   last,
		Counts: make(map[gazette.RecordKind]int),
	}
}

// Record accumulates one edition's record set into the totals.
func (r *Report) Record(set gazette.RecordSet) {
	for _, kind := range gazette.Kinds {
		r.Counts[kind] += set.Count(kind)
	}
	r.Dropped.DroppedDecrees += set.Diagnostics.DroppedDecrees
	r.Dropped.DroppedOrders += set.Diagnostics.DroppedOrders
	r.Dropped.DroppedAnnulments += set.Diagnostics.DroppedAnnulments
	r.Dropped.DroppedCorrections += set.Diagnostics.DroppedCorrections
}

// Summary renders the report as human-readable text for the CLI.
func (r *Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Período: %s a %s (%d datas)\n",
		r.First.Format("02/01/2006"), r.Last.Format("02/01/2006"), r.DatesProcessed)
	fmt.Fprintf(&b, "Datas sem edição: %d\n", len(r.MissingDates))
	if len(r.FailedDates) > 0 {
		fmt.Fprintf(&b, "Datas com falha de download: %s\n", strings.Join(r.FailedDates, ", "))
	}

	b.WriteString("Registros extraídos:\n")
	for _, kind := range gazette.Kinds {
		fmt.Fprintf(&b, "  %-24s %d\n", string(kind)+":", r.Counts[kind])
	}
	if r.PlaceholderRows > 0 {
		fmt.Fprintf(&b, "Linhas de placeholder: %d por tipo\n", r.PlaceholderRows)
	}

	if total := r.Dropped.Total(); total > 0 {
		fmt.Fprintf(&b, "Candidatos descartados: %d (decretos %d, portarias %d, insubsistências %d, corrigendas %d)\n",
			total, r.Dropped.DroppedDecrees, r.Dropped.DroppedOrders,
			r.Dropped.DroppedAnnulments, r.Dropped.DroppedCorrections)
	}

	return b.String()
}
