package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

// jsonEdition is the batch JSON row for one edition.
type jsonEdition struct {
	Date      string            `json:"data"`
	NoEdition bool              `json:"sem_edicao,omitempty"`
	Records   gazette.RecordSet `json:"registros"`
}

// jsonBatch is the top-level batch JSON document.
type jsonBatch struct {
	Editions []jsonEdition `json:"edicoes"`
}

// WriteJSON writes the editions to w as an indented JSON document. A single
// edition without context serializes as its bare record set; a batch
// serializes as an edition array keyed by date.
func WriteJSON(w io.Writer, editions []gazette.Edition, opts Options) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if !opts.IncludeDate && len(editions) == 1 {
		return encoder.Encode(editions[0].Records)
	}

	batch := jsonBatch{Editions: make([]jsonEdition, 0, len(editions))}
	for _, edition := range editions {
		batch.Editions = append(batch.Editions, jsonEdition{
			Date:      edition.DateString(),
			NoEdition: edition.Missing,
			Records:   edition.Records,
		})
	}
	return encoder.Encode(batch)
}

// WriteJSONFile writes the editions to a JSON file.
func WriteJSONFile(path string, editions []gazette.Edition, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := WriteJSON(file, editions, opts); err != nil {
		file.Close()
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	return file.Close()
}
