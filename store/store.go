package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cinemago-cli/model"
)

const (
	sessionCacheTTL  = 5 * time.Minute
	maxRecentFilters = 8
	appDirName       = "cinemago-cli"
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

type tokenFile struct {
	Token string `json:"token"`
}

// RecentFilter is one remembered session-browser query.
type RecentFilter struct {
	Date          string  `json:"date"`
	Cinema        string  `json:"cinema"`
	MaxPrice      float64 `json:"max_price,omitempty"`
	OnlyWithSeats bool    `json:"only_with_seats,omitempty"`
}

type filterHistory struct {
	Filters []RecentFilter `json:"filters"`
}

// LoadToken returns the stored bearer token, empty when absent.
func LoadToken() (string, error) {
	path, err := configPath("token.json")
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var file tokenFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", errors.New("invalid token file format")
	}
	return file.Token, nil
}

// SaveToken persists the bearer token. Tokens are opaque here; expiry and
// verification are the server's concern.
func SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is required")
	}
	path, err := configPath("token.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(tokenFile{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

// ClearToken removes the stored token, used on logout and on 401/403.
func ClearToken() error {
	path, err := configPath("token.json")
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RememberSelectedSession keeps the chosen screening across screens, the
// way the browser client kept it in sessionStorage between the sessions
// and booking pages.
func RememberSelectedSession(s model.Session) error {
	path, err := configPath("selected_session.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// LoadSelectedSession returns the remembered screening, if any.
func LoadSelectedSession() (model.Session, bool, error) {
	path, err := configPath("selected_session.json")
	if err != nil {
		return model.Session{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Session{}, false, nil
		}
		return model.Session{}, false, err
	}
	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return model.Session{}, false, errors.New("invalid selected session format")
	}
	if s.ID == 0 {
		return model.Session{}, false, nil
	}
	return s, true, nil
}

// ClearSelectedSession forgets the remembered screening.
func ClearSelectedSession() error {
	path, err := configPath("selected_session.json")
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// LoadSessionCache returns the cached session list for a date and whether
// it is still fresh. Availability goes stale fast, so the TTL is short.
func LoadSessionCache(date string) ([]model.Session, bool, error) {
	path, err := cachePath("sessions_" + sanitizeKey(date) + ".json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Session](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= sessionCacheTTL, nil
}

// SaveSessionCache stores a fetched session list for a date.
func SaveSessionCache(date string, sessions []model.Session) error {
	path, err := cachePath("sessions_" + sanitizeKey(date) + ".json")
	if err != nil {
		return err
	}
	return saveCache(path, sessions)
}

// LoadRecentFilters returns the remembered browser queries, newest first.
func LoadRecentFilters() ([]RecentFilter, error) {
	path, err := configPath("filters.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var history filterHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid filter history format")
	}
	return history.Filters, nil
}

// RememberFilter puts a query at the head of the history, dropping
// duplicates and trimming the tail.
func RememberFilter(filter RecentFilter) error {
	history, _ := LoadRecentFilters()
	next := []RecentFilter{filter}
	for _, existing := range history {
		if existing == filter {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentFilters {
			break
		}
	}

	path, err := configPath("filters.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(filterHistory{Filters: next}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "all"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
