package booking

import (
	"errors"
	"regexp"
	"testing"
)

func TestNewLayout_FullRows(t *testing.T) {
	layout, err := NewLayout(30, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(layout.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(layout.Rows))
	}
	for i, row := range layout.Rows {
		if len(row) != 10 {
			t.Fatalf("expected row %d to have 10 seats, got %d", i, len(row))
		}
	}
	if layout.Rows[0][0] != "A1" || layout.Rows[0][9] != "A10" {
		t.Fatalf("unexpected first row: %v", layout.Rows[0])
	}
	if layout.Rows[2][0] != "C1" || layout.Rows[2][9] != "C10" {
		t.Fatalf("unexpected last row: %v", layout.Rows[2])
	}
}

func TestNewLayout_ShortRowComesLast(t *testing.T) {
	layout, err := NewLayout(23, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	widths := make([]int, 0, len(layout.Rows))
	for _, row := range layout.Rows {
		widths = append(widths, len(row))
	}
	if len(widths) != 3 || widths[0] != 10 || widths[1] != 10 || widths[2] != 3 {
		t.Fatalf("expected rows of 10, 10, 3, got %v", widths)
	}
	if got := layout.Rows[2][2]; got != "C3" {
		t.Fatalf("expected last seat C3, got %s", got)
	}
}

func TestNewLayout_SeatIDsDistinctAndWellFormed(t *testing.T) {
	layout, err := NewLayout(47, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	ids := layout.SeatIDs()
	if len(ids) != 47 {
		t.Fatalf("expected 47 seat ids, got %d", len(ids))
	}
	pattern := regexp.MustCompile(`^[A-Z][0-9]+$`)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !pattern.MatchString(id) {
			t.Fatalf("malformed seat id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate seat id %q", id)
		}
		seen[id] = true
	}
	if layout.Size() != 47 {
		t.Fatalf("expected size 47, got %d", layout.Size())
	}
}

func TestNewLayout_ZeroSeats(t *testing.T) {
	layout, err := NewLayout(0, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(layout.Rows) != 0 {
		t.Fatalf("expected empty layout, got %v", layout.Rows)
	}
}

func TestNewLayout_NegativeSeats(t *testing.T) {
	if _, err := NewLayout(-1, 10); err == nil {
		t.Fatal("expected error for negative seat count")
	}
}

func TestNewLayout_Overflow(t *testing.T) {
	_, err := NewLayout(261, 10)
	if err == nil {
		t.Fatal("expected overflow error")
	}
	var overflow *LayoutOverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected LayoutOverflowError, got %T", err)
	}
	if overflow.Total != 261 || overflow.Capacity != 260 {
		t.Fatalf("unexpected overflow details: %+v", overflow)
	}

	if _, err := NewLayout(260, 10); err != nil {
		t.Fatalf("expected capacity boundary to fit, got %v", err)
	}
}

func TestNewLayout_DefaultRowWidth(t *testing.T) {
	layout, err := NewLayout(12, 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(layout.Rows) != 2 || len(layout.Rows[0]) != DefaultRowWidth || len(layout.Rows[1]) != 2 {
		t.Fatalf("unexpected layout with default width: %v", layout.Rows)
	}
}
