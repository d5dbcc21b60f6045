package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

func sampleEdition(date time.Time) gazette.Edition {
	return gazette.Edition{
		Context: &gazette.EditionContext{IssueDate: date},
		Records: gazette.RecordSet{
			Decrees: []gazette.Decree{
				{Number: "224/2025", Body: "Dispõe sobre o expediente.", Annex: gazette.FieldAbsent},
			},
			Appointments: []gazette.AppointmentOrder{
				{
					OrderNumber: "10/2025", ActionVerb: "Nomeia", PersonName: "ANA BEATRIZ SILVA",
					Position: "Assessor Especial", PositionCode: "CC-3",
					IssuingBody:       "Secretaria Municipal de Fazenda",
					TransferDecreeRef: gazette.FieldAbsent, VacancySource: gazette.FieldAbsent,
					BonusReference: gazette.FieldAbsent,
				},
			},
		},
	}
}

func TestWriteKindCSVHeaders(t *testing.T) {
	var buf strings.Builder
	editions := []gazette.Edition{sampleEdition(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))}

	if err := WriteKindCSV(&buf, gazette.KindDecree, editions, Options{}); err != nil {
		t.Fatalf("WriteKindCSV failed: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("Parsing output failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header plus one row, got %d rows", len(rows))
	}
	if rows[0][0] != "Número" || rows[0][1] != "Conteúdo" || rows[0][2] != "Anexo" {
		t.Errorf("Unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "224/2025" {
		t.Errorf("Unexpected data row: %v", rows[1])
	}
}

func TestWriteKindCSVIncludeDate(t *testing.T) {
	var buf strings.Builder
	editions := []gazette.Edition{sampleEdition(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))}

	if err := WriteKindCSV(&buf, gazette.KindAppointment, editions, Options{IncludeDate: true}); err != nil {
		t.Fatalf("WriteKindCSV failed: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("Parsing output failed: %v", err)
	}
	if rows[0][0] != "Data" {
		t.Errorf("Expected Data as first header, got %q", rows[0][0])
	}
	if rows[1][0] != "07/03/2025" {
		t.Errorf("Expected date column 07/03/2025, got %q", rows[1][0])
	}
	if rows[1][1] != "10/2025" {
		t.Errorf("Expected order number after date, got %q", rows[1][1])
	}
	if len(rows[0]) != len(gazette.AppointmentHeaders)+1 {
		t.Errorf("Expected %d columns, got %d", len(gazette.AppointmentHeaders)+1, len(rows[0]))
	}
}

func TestWriteCSVFilesCreatesAllKinds(t *testing.T) {
	dir := t.TempDir()
	editions := []gazette.Edition{sampleEdition(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))}

	if err := WriteCSVFiles(dir, editions, Options{}); err != nil {
		t.Fatalf("WriteCSVFiles failed: %v", err)
	}

	for _, kind := range gazette.Kinds {
		path := filepath.Join(dir, FileName(kind))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Expected file for %s: %v", kind, err)
		}
		// Even empty kinds carry their header row.
		if len(strings.TrimSpace(string(data))) == 0 {
			t.Errorf("File for %s is empty", kind)
		}
	}
}

func TestFileNames(t *testing.T) {
	if name := FileName(gazette.KindDecree); name != "decretos.csv" {
		t.Errorf("Unexpected decree file name: %q", name)
	}
	if name := FileName(gazette.KindCorrection); name != "portarias_corrigendas.csv" {
		t.Errorf("Unexpected correction file name: %q", name)
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	err := &SchemaError{Kind: gazette.KindDecree, Expected: 3, Got: 2}
	if !strings.Contains(err.Error(), "decreto") || !strings.Contains(err.Error(), "3") {
		t.Errorf("Unexpected error message: %q", err.Error())
	}
}
