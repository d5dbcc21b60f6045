package gazette

import (
	"testing"
	"time"
)

func TestFieldsMatchHeaders(t *testing.T) {
	cases := []struct {
		kind    RecordKind
		headers []string
		fields  []string
	}{
		{KindDecree, DecreeHeaders, Decree{}.Fields()},
		{KindAppointment, AppointmentHeaders, AppointmentOrder{}.Fields()},
		{KindDismissal, DismissalHeaders, DismissalOrder{}.Fields()},
		{KindAnnulment, AnnulmentHeaders, AnnulmentNotice{}.Fields()},
		{KindCorrection, CorrectionHeaders, CorrectionNotice{}.Fields()},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			if len(tc.fields) != len(tc.headers) {
				t.Errorf("Fields() width %d does not match headers width %d",
					len(tc.fields), len(tc.headers))
			}
			if got := HeadersFor(tc.kind); len(got) != len(tc.headers) {
				t.Errorf("HeadersFor width %d does not match %d", len(got), len(tc.headers))
			}
		})
	}
}

func TestDecreeNumberPattern(t *testing.T) {
	cases := []struct {
		number string
		valid  bool
	}{
		{"224/2025", true},
		{"1/2019", true},
		{"224/25", false},
		{"/2025", false},
		{"224-2025", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := DecreeNumberPattern.MatchString(tc.number); got != tc.valid {
			t.Errorf("DecreeNumberPattern(%q) = %v, expected %v", tc.number, got, tc.valid)
		}
	}
}

func TestPlaceholderSet(t *testing.T) {
	set := PlaceholderSet()

	for _, kind := range Kinds {
		if count := set.Count(kind); count != 1 {
			t.Errorf("Expected 1 placeholder %s record, got %d", kind, count)
		}
	}

	decree := set.Decrees[0]
	if decree.Number != FieldAbsent {
		t.Errorf("Expected absent number, got %q", decree.Number)
	}
	if decree.Body != NoEditionBody {
		t.Errorf("Expected placeholder body, got %q", decree.Body)
	}

	for _, fields := range FieldsFor(set, KindAppointment) {
		for i, field := range fields {
			if field != FieldAbsent {
				t.Errorf("Appointment placeholder field %d is %q, expected %q", i, field, FieldAbsent)
			}
		}
	}
}

func TestRecordSetTotal(t *testing.T) {
	set := RecordSet{
		Decrees:     []Decree{{Number: "1/2025"}},
		Dismissals:  []DismissalOrder{{OrderNumber: "2/2025"}, {OrderNumber: "3/2025"}},
		Corrections: []CorrectionNotice{{ReferencedOrderNumber: "4/2025"}},
	}

	if total := set.Total(); total != 4 {
		t.Errorf("Expected total 4, got %d", total)
	}
	if count := set.Count(KindAppointment); count != 0 {
		t.Errorf("Expected 0 appointments, got %d", count)
	}
}

func TestEditionDateString(t *testing.T) {
	date := time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)
	edition := Edition{Context: &EditionContext{IssueDate: date}}

	if got := edition.DateString(); got != "07/03/2025" {
		t.Errorf("Expected 07/03/2025, got %q", got)
	}

	var contextless Edition
	if got := contextless.DateString(); got != "" {
		t.Errorf("Expected empty date for contextless edition, got %q", got)
	}
}

func TestDiagnosticsTotal(t *testing.T) {
	diagnostics := Diagnostics{DroppedDecrees: 1, DroppedOrders: 2, DroppedCorrections: 3}
	if total := diagnostics.Total(); total != 6 {
		t.Errorf("Expected total 6, got %d", total)
	}
}
