package tui

import (
	"testing"
	"time"
)

func TestBuildNewSession(t *testing.T) {
	m := newTestModel(t)
	m.newSessionInputs[0].SetValue("Dune: Part Three")
	m.newSessionInputs[1].SetValue("IMAX")
	m.newSessionInputs[2].SetValue("2026-09-05T19:30")
	m.newSessionInputs[3].SetValue("2500")
	m.newSessionInputs[4].SetValue("40")
	m.newSessionCinema = 1

	session, err := m.buildNewSession()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if session.MovieTitle != "Dune: Part Three" || session.Hall != "IMAX" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.CinemaName != "Chaplin Khan Shatyr" {
		t.Fatalf("unexpected cinema: %q", session.CinemaName)
	}
	if session.BasePrice != 2500 || session.TotalSeats != 40 {
		t.Fatalf("unexpected pricing: %+v", session)
	}
	if _, err := time.Parse(time.RFC3339, session.StartTime); err != nil {
		t.Fatalf("expected an RFC 3339 start time, got %q", session.StartTime)
	}
}

func TestBuildNewSession_Invalid(t *testing.T) {
	m := newTestModel(t)
	if _, err := m.buildNewSession(); err == nil {
		t.Fatal("expected error for empty form")
	}

	m.newSessionInputs[0].SetValue("Dune")
	m.newSessionInputs[2].SetValue("tonight")
	m.newSessionInputs[3].SetValue("2500")
	m.newSessionInputs[4].SetValue("40")
	if _, err := m.buildNewSession(); err == nil {
		t.Fatal("expected error for malformed start time")
	}

	m.newSessionInputs[2].SetValue("2026-09-05T19:30")
	m.newSessionInputs[3].SetValue("-5")
	if _, err := m.buildNewSession(); err == nil {
		t.Fatal("expected error for negative price")
	}
}
