// Package diario fetches daily editions of the Diário Oficial de Niterói:
// deterministic edition URLs, a rate-limited HTTP client with retries, PDF
// text extraction, and a disk cache for fetched editions.
package diario

import (
	"fmt"
	"time"
)

// DefaultBaseURL is the root of the official gazette archive.
const DefaultBaseURL = "https://diariooficial.niteroi.rj.gov.br/do"

// monthAbbreviations maps a month number to the Portuguese abbreviation used
// in the archive's directory layout.
var monthAbbreviations = [13]string{
	"", "Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// EditionURL returns the archive URL for the edition of the given date:
// <base>/<YYYY>/<MM>_<Mon>/<DD>.pdf, with zero-padded day and month and the
// Portuguese month abbreviation.
func EditionURL(baseURL string, date time.Time) string {
	return fmt.Sprintf("%s/%d/%02d_%s/%02d.pdf",
		baseURL, date.Year(), int(date.Month()),
		monthAbbreviations[date.Month()], date.Day())
}
