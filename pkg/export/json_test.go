package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

func TestWriteJSONSingleEdition(t *testing.T) {
	var buf strings.Builder
	editions := []gazette.Edition{sampleEdition(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))}

	if err := WriteJSON(&buf, editions, Options{}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var document map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &document); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	decrees, ok := document["decretos"].([]any)
	if !ok || len(decrees) != 1 {
		t.Fatalf("Expected one decree in %v", document["decretos"])
	}
	decree := decrees[0].(map[string]any)
	if decree["numero"] != "224/2025" {
		t.Errorf("Unexpected decree number: %v", decree["numero"])
	}
	if _, hasEditions := document["edicoes"]; hasEditions {
		t.Errorf("Single edition output must not be wrapped in a batch document")
	}
}

func TestWriteJSONBatch(t *testing.T) {
	var buf strings.Builder
	editions := []gazette.Edition{
		sampleEdition(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)),
		{
			Context: &gazette.EditionContext{IssueDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)},
			Missing: true,
			Records: gazette.PlaceholderSet(),
		},
	}

	if err := WriteJSON(&buf, editions, Options{IncludeDate: true}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var document struct {
		Editions []struct {
			Date      string `json:"data"`
			NoEdition bool   `json:"sem_edicao"`
		} `json:"edicoes"`
	}
	if err := json.Unmarshal([]byte(buf.String()), &document); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if len(document.Editions) != 2 {
		t.Fatalf("Expected 2 editions, got %d", len(document.Editions))
	}
	if document.Editions[0].Date != "07/03/2025" {
		t.Errorf("Unexpected first date: %q", document.Editions[0].Date)
	}
	if !document.Editions[1].NoEdition {
		t.Errorf("Expected second edition to be marked sem_edicao")
	}
}
