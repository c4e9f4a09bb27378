package helpers

import (
	"testing"
	"time"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "motdepasse123" {
		t.Fatal("hash equals the plaintext")
	}
	if !CompareHashAndPassword(hash, "motdepasse123") {
		t.Error("correct password rejected")
	}
	if CompareHashAndPassword(hash, "autremotdepasse") {
		t.Error("wrong password accepted")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 2*time.Hour)

	token, _, err := m.GenerateAccessToken("abc123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "abc123" {
		t.Errorf("uid = %q", claims.UserID)
	}

	// an access token must not verify as a refresh token
	if _, err := m.ParseRefreshToken(token); err == nil {
		t.Error("access token accepted by the refresh parser")
	}
}
