package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Key", "Errors"}
	rows := [][]string{
		{"a", "12"},
		{"<space>", "3"},
	}
	lines := FormatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Key     Errors" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a           12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "<space>      3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := FormatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty input, got %v", lines)
	}
}
