// Package export serializes segmented gazette records to CSV and JSON.
// Each record kind is written to its own CSV file; batch exports prepend an
// edition date column. A row whose width disagrees with its kind's schema
// aborts the export, since a silently misaligned CSV is worse than no CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

// dateHeader is the column prepended to every row in batch exports.
const dateHeader = "Data"

// kindFileNames maps each record kind to its CSV file name.
var kindFileNames = map[gazette.RecordKind]string{
	gazette.KindDecree:      "decretos.csv",
	gazette.KindAppointment: "portarias_nomeacao.csv",
	gazette.KindDismissal:   "portarias_exoneracao.csv",
	gazette.KindAnnulment:   "portarias_insubsistentes.csv",
	gazette.KindCorrection:  "portarias_corrigendas.csv",
}

// FileName returns the CSV file name for a record kind.
func FileName(kind gazette.RecordKind) string {
	return kindFileNames[kind]
}

// SchemaError reports a row whose field count does not match its kind's
// header schema. It always indicates a bug in record construction, never bad
// input, so exports treat it as fatal.
type SchemaError struct {
	Kind     gazette.RecordKind
	Expected int
	Got      int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch for %s: expected %d fields, got %d",
		e.Kind, e.Expected, e.Got)
}

// Options controls export layout.
type Options struct {
	// IncludeDate prepends the edition date column, used for batch exports
	// spanning multiple dates.
	IncludeDate bool
}

// WriteKindCSV writes all records of one kind from the given editions to w,
// header row first, in edition order then document order.
func WriteKindCSV(w io.Writer, kind gazette.RecordKind, editions []gazette.Edition, opts Options) error {
	writer := csv.NewWriter(w)

	headers := gazette.HeadersFor(kind)
	headerRow := headers
	if opts.IncludeDate {
		headerRow = append([]string{dateHeader}, headers...)
	}
	if err := writer.Write(headerRow); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, edition := range editions {
		for _, fields := range gazette.FieldsFor(edition.Records, kind) {
			if len(fields) != len(headers) {
				return &SchemaError{Kind: kind, Expected: len(headers), Got: len(fields)}
			}
			row := fields
			if opts.IncludeDate {
				row = append([]string{edition.DateString()}, fields...)
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFiles writes one CSV file per record kind into the directory,
// creating it if needed. Kinds with no records still get a file with the
// header row, so downstream consumers always find the full set.
func WriteCSVFiles(dir string, editions []gazette.Edition, opts Options) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	for _, kind := range gazette.Kinds {
		path := filepath.Join(dir, kindFileNames[kind])
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}

		if err := WriteKindCSV(file, kind, editions, opts); err != nil {
			file.Close()
			return fmt.Errorf("exporting %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
	}

	return nil
}
