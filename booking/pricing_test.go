package booking

import "testing"

func TestDisplayTotal_StudentDiscount(t *testing.T) {
	if got := DisplayTotal(1000, true); got != 800 {
		t.Fatalf("expected 800, got %v", got)
	}
	if got := DisplayTotal(1000, false); got != 1000 {
		t.Fatalf("expected 1000, got %v", got)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(1500); got != "1500 ₸" {
		t.Fatalf("unexpected formatting: %q", got)
	}
	if got := FormatPrice(1200.5); got != "1200.5 ₸" {
		t.Fatalf("unexpected formatting: %q", got)
	}
}
