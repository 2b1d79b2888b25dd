package core

import "testing"

func TestNewIDUniqueness(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Fatal("NewID returned an empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestParseWorkbookID(t *testing.T) {
	id, err := ParseWorkbookID("wb-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "wb-1" {
		t.Fatalf("got %q, want %q", id.String(), "wb-1")
	}

	if _, err := ParseWorkbookID("  "); err == nil {
		t.Fatal("expected error for blank workbook id")
	}
}

func TestParseTableID(t *testing.T) {
	if _, err := ParseTableID(""); err == nil {
		t.Fatal("expected error for empty table id")
	}
	id, err := ParseTableID("t-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "t-9" {
		t.Fatalf("got %q, want %q", id.String(), "t-9")
	}
}
