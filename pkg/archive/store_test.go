package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/coolbeans/gazeta/pkg/gazette"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "editions.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

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
			Annulments: []gazette.AnnulmentNotice{
				{OrderNumber: "20/2025", ReferencedOrderNumber: "15/2024", ReferencedPublicationDate: "10/01/2024"},
			},
		},
	}
}

func TestSaveAndLoadEdition(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	if err := store.SaveEdition(ctx, sampleEdition(date)); err != nil {
		t.Fatalf("SaveEdition failed: %v", err)
	}

	loaded, found, err := store.LoadEdition(ctx, date)
	if err != nil {
		t.Fatalf("LoadEdition failed: %v", err)
	}
	if !found {
		t.Fatalf("Expected edition to be found")
	}

	if len(loaded.Records.Decrees) != 1 || loaded.Records.Decrees[0].Number != "224/2025" {
		t.Errorf("Unexpected decrees: %+v", loaded.Records.Decrees)
	}
	if len(loaded.Records.Appointments) != 1 {
		t.Fatalf("Expected 1 appointment, got %d", len(loaded.Records.Appointments))
	}
	if loaded.Records.Appointments[0].PersonName != "ANA BEATRIZ SILVA" {
		t.Errorf("Unexpected appointment: %+v", loaded.Records.Appointments[0])
	}
	if len(loaded.Records.Annulments) != 1 {
		t.Errorf("Expected 1 annulment, got %d", len(loaded.Records.Annulments))
	}
	if loaded.Missing {
		t.Errorf("Expected a published edition, got missing")
	}
}

func TestSaveEditionReplacesPreviousHarvest(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	if err := store.SaveEdition(ctx, sampleEdition(date)); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	replacement := gazette.Edition{
		Context: &gazette.EditionContext{IssueDate: date},
		Missing: true,
		Records: gazette.PlaceholderSet(),
	}
	if err := store.SaveEdition(ctx, replacement); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	loaded, found, err := store.LoadEdition(ctx, date)
	if err != nil || !found {
		t.Fatalf("LoadEdition failed: found=%v err=%v", found, err)
	}
	if !loaded.Missing {
		t.Errorf("Expected the replacement to be marked missing")
	}
	if len(loaded.Records.Decrees) != 1 || loaded.Records.Decrees[0].Body != gazette.NoEditionBody {
		t.Errorf("Expected placeholder decree, got %+v", loaded.Records.Decrees)
	}
}

func TestLoadEditionNotHarvested(t *testing.T) {
	store := openTestStore(t)

	_, found, err := store.LoadEdition(context.Background(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("LoadEdition failed: %v", err)
	}
	if found {
		t.Errorf("Expected lookup miss for unharvested date")
	}
}

func TestDates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, day := range []int{9, 7, 8} {
		date := time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
		if err := store.SaveEdition(ctx, sampleEdition(date)); err != nil {
			t.Fatalf("SaveEdition failed: %v", err)
		}
	}

	dates, err := store.Dates(ctx)
	if err != nil {
		t.Fatalf("Dates failed: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("Expected 3 dates, got %d", len(dates))
	}
	for i, expectedDay := range []int{7, 8, 9} {
		if dates[i].Day() != expectedDay {
			t.Errorf("Date %d: expected day %d, got %d", i, expectedDay, dates[i].Day())
		}
	}
}

func TestSaveEditionWithoutContext(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveEdition(context.Background(), gazette.Edition{})
	if err == nil {
		t.Errorf("Expected error for edition without date context")
	}
}
