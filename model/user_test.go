package model

import (
	"encoding/base64"
	"encoding/json"
	"testing"
)

func buildUnsignedToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

func TestParseTokenClaims_ReadsPayload(t *testing.T) {
	token := buildUnsignedToken(t, map[string]any{
		"email":    "admin@example.com",
		"username": "admin",
		"role":     "admin",
	})

	claims, err := ParseTokenClaims(token)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if claims.Email != "admin@example.com" || claims.Username != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IsAdmin() {
		t.Fatal("expected admin role")
	}
}

func TestParseTokenClaims_DefaultsRoleToUser(t *testing.T) {
	token := buildUnsignedToken(t, map[string]any{
		"email":    "user@example.com",
		"username": "user1",
	})

	claims, err := ParseTokenClaims(token)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if claims.Role != "user" {
		t.Fatalf("expected default role user, got %q", claims.Role)
	}
	if claims.IsAdmin() {
		t.Fatal("expected non-admin")
	}
}

func TestParseTokenClaims_RejectsGarbage(t *testing.T) {
	if _, err := ParseTokenClaims(""); err == nil {
		t.Fatal("expected error for empty token")
	}
	if _, err := ParseTokenClaims("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
