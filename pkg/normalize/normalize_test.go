package normalize

import "testing"

func TestLinesDropPageMarkers(t *testing.T) {
	raw := "primeira linha\nPágina 12\nsegunda linha\n  Página 3  \nterceira linha"

	lines := Lines(raw)

	expected := []string{"primeira linha", "segunda linha", "terceira linha"}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d: %v", len(expected), len(lines), lines)
	}
	for i, line := range expected {
		if lines[i] != line {
			t.Errorf("Line %d: expected %q, got %q", i, line, lines[i])
		}
	}
}

func TestLinesPreserveContent(t *testing.T) {
	raw := "  linha com espaços  \n\noutra"

	lines := Lines(raw)

	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "  linha com espaços  " {
		t.Errorf("Non-marker lines must be preserved byte-for-byte, got %q", lines[0])
	}
}

func TestTextIdempotent(t *testing.T) {
	raw := "a\nPágina 1\nb\nPágina 2\nc"

	once := Text(raw)
	twice := Text(once)

	if once != twice {
		t.Errorf("Text is not idempotent: %q vs %q", once, twice)
	}
	if once != "a\nb\nc" {
		t.Errorf("Unexpected cleaned text: %q", once)
	}
}
