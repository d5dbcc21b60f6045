package diario

import (
	"testing"
	"time"
)

func TestEditionURL(t *testing.T) {
	cases := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "padded_day_and_month",
			date:     time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC),
			expected: "https://diariooficial.niteroi.rj.gov.br/do/2025/03_Mar/07.pdf",
		},
		{
			name:     "february_abbreviation",
			date:     time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			expected: "https://diariooficial.niteroi.rj.gov.br/do/2024/02_Fev/29.pdf",
		},
		{
			name:     "december",
			date:     time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
			expected: "https://diariooficial.niteroi.rj.gov.br/do/2023/12_Dez/31.pdf",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EditionURL(DefaultBaseURL, tc.date); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestEditionURLMonthAbbreviations(t *testing.T) {
	expected := []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
	for month := time.January; month <= time.December; month++ {
		if got := monthAbbreviations[month]; got != expected[month-1] {
			t.Errorf("Month %d: expected %q, got %q", month, expected[month-1], got)
		}
	}
}
