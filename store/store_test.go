package store

import (
	"testing"

	"cinemago-cli/model"
)

func setTestDirs(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
}

func TestToken_RoundTrip(t *testing.T) {
	setTestDirs(t)

	token, err := LoadToken()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if token != "" {
		t.Fatalf("expected no stored token, got %q", token)
	}

	if err := SaveToken("tok-42"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	token, err = LoadToken()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if token != "tok-42" {
		t.Fatalf("expected tok-42, got %q", token)
	}

	if err := ClearToken(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	token, err = LoadToken()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if token != "" {
		t.Fatalf("expected token cleared, got %q", token)
	}
}

func TestSaveToken_RejectsEmpty(t *testing.T) {
	setTestDirs(t)

	if err := SaveToken("  "); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestSelectedSession_RoundTrip(t *testing.T) {
	setTestDirs(t)

	if _, found, err := LoadSelectedSession(); err != nil || found {
		t.Fatalf("expected no stored session, got found=%v err=%v", found, err)
	}

	session := model.Session{
		ID:             7,
		MovieTitle:     "Dune",
		CinemaName:     "Chaplin MEGA Silk Way",
		BasePrice:      2000,
		AvailableSeats: []string{"A1", "A2"},
	}
	if err := RememberSelectedSession(session); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	loaded, found, err := LoadSelectedSession()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !found || loaded.ID != 7 || loaded.MovieTitle != "Dune" {
		t.Fatalf("unexpected session: found=%v session=%+v", found, loaded)
	}

	if err := ClearSelectedSession(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, found, err := LoadSelectedSession(); err != nil || found {
		t.Fatalf("expected session cleared, got found=%v err=%v", found, err)
	}
}

func TestSessionCache_RoundTrip(t *testing.T) {
	setTestDirs(t)

	if _, fresh, err := LoadSessionCache("2026-09-01"); err != nil || fresh {
		t.Fatalf("expected empty cache, got fresh=%v err=%v", fresh, err)
	}

	sessions := []model.Session{{ID: 1, MovieTitle: "Dune"}, {ID: 2, MovieTitle: "Alien"}}
	if err := SaveSessionCache("2026-09-01", sessions); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cached, fresh, err := LoadSessionCache("2026-09-01")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !fresh || len(cached) != 2 || cached[1].MovieTitle != "Alien" {
		t.Fatalf("unexpected cache: fresh=%v cached=%+v", fresh, cached)
	}

	// A different date keys a different file.
	if _, fresh, err := LoadSessionCache("2026-09-02"); err != nil || fresh {
		t.Fatalf("expected no cache for other date, got fresh=%v err=%v", fresh, err)
	}
}

func TestRememberFilter_DedupesAndCaps(t *testing.T) {
	setTestDirs(t)

	first := RecentFilter{Date: "2026-09-01", Cinema: "Chaplin Khan Shatyr"}
	if err := RememberFilter(first); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := RememberFilter(RecentFilter{Date: "2026-09-02"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := RememberFilter(first); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	filters, err := LoadRecentFilters()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(filters) != 2 {
		t.Fatalf("expected 2 filters after dedupe, got %d", len(filters))
	}
	if filters[0] != first {
		t.Fatalf("expected the repeated filter to move to front, got %+v", filters[0])
	}

	for day := 3; day <= 12; day++ {
		filter := RecentFilter{Date: "2026-09-" + twoDigits(day)}
		if err := RememberFilter(filter); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	filters, err = LoadRecentFilters()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(filters) != maxRecentFilters {
		t.Fatalf("expected history capped at %d, got %d", maxRecentFilters, len(filters))
	}
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + string(rune('0'+n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
