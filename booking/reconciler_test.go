package booking

import (
	"errors"
	"testing"
)

func newTestReconciler(t *testing.T, total int, available []string) *Reconciler {
	t.Helper()
	layout, err := NewLayout(total, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	r := NewReconciler(layout.SeatIDs())
	r.Classify(available)
	return r
}

func TestClassify_PartitionsSeats(t *testing.T) {
	r := newTestReconciler(t, 20, []string{"A1", "A5", "B10"})

	if r.FreeCount() != 3 {
		t.Fatalf("expected 3 free seats, got %d", r.FreeCount())
	}
	if state, ok := r.State("A5"); !ok || state != SeatFree {
		t.Fatalf("expected A5 free, got %v ok=%v", state, ok)
	}
	if state, ok := r.State("A2"); !ok || state != SeatTaken {
		t.Fatalf("expected A2 taken, got %v ok=%v", state, ok)
	}
	if r.Size() != 20 {
		t.Fatalf("expected size 20, got %d", r.Size())
	}
}

func TestClassify_IgnoresUnknownIDs(t *testing.T) {
	r := newTestReconciler(t, 10, []string{"A1", "Z99", "A3"})

	if r.FreeCount() != 2 {
		t.Fatalf("expected 2 free seats, got %d", r.FreeCount())
	}
	ignored := r.Ignored()
	if len(ignored) != 1 || ignored[0] != "Z99" {
		t.Fatalf("expected ignored [Z99], got %v", ignored)
	}
	if _, ok := r.State("Z99"); ok {
		t.Fatal("unknown id must not join the layout")
	}
}

func TestSelect_FreeSeat(t *testing.T) {
	r := newTestReconciler(t, 10, []string{"A1", "A2"})

	if err := r.Select("A2"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	seat, ok := r.Selection()
	if !ok || seat != "A2" {
		t.Fatalf("expected selection A2, got %q ok=%v", seat, ok)
	}
}

func TestSelect_TakenSeatKeepsPreviousSelection(t *testing.T) {
	r := newTestReconciler(t, 10, []string{"A1", "A2"})

	if err := r.Select("A1"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	err := r.Select("A5")
	var selErr *InvalidSelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("expected InvalidSelectionError, got %v", err)
	}
	if selErr.Seat != "A5" {
		t.Fatalf("expected seat A5 in error, got %q", selErr.Seat)
	}
	seat, ok := r.Selection()
	if !ok || seat != "A1" {
		t.Fatalf("expected selection to stay A1, got %q ok=%v", seat, ok)
	}
}

func TestSelect_UnknownSeat(t *testing.T) {
	r := newTestReconciler(t, 10, []string{"A1"})

	err := r.Select("Q7")
	var selErr *InvalidSelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("expected InvalidSelectionError, got %v", err)
	}
}

func TestSelect_LastWriteWins(t *testing.T) {
	r := newTestReconciler(t, 10, []string{"A1", "A2", "A3"})

	if err := r.Select("A1"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := r.Select("A3"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	seat, ok := r.Selection()
	if !ok || seat != "A3" {
		t.Fatalf("expected selection A3, got %q ok=%v", seat, ok)
	}
}

func TestClassify_DropsSelection(t *testing.T) {
	r := newTestReconciler(t, 10, []string{"A1"})

	if err := r.Select("A1"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	r.Classify([]string{"A2"})

	if _, ok := r.Selection(); ok {
		t.Fatal("expected selection to be dropped after reclassification")
	}
	if state, _ := r.State("A1"); state != SeatTaken {
		t.Fatal("expected A1 taken after refresh")
	}
	if state, _ := r.State("A2"); state != SeatFree {
		t.Fatal("expected A2 free after refresh")
	}
}

func TestClearSelection(t *testing.T) {
	r := newTestReconciler(t, 10, []string{"A1"})

	if err := r.Select("A1"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	r.ClearSelection()
	if _, ok := r.Selection(); ok {
		t.Fatal("expected no selection after clear")
	}
}
