package utils

import "testing"

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Error("hash must not equal the plaintext")
	}
	if !CheckPasswordHash("hunter2hunter2", hash) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Error("wrong password must not verify")
	}
}

func TestJWTRoundtrip(t *testing.T) {
	SetJWTConfig("test-secret", 30)

	token, err := GenerateJWTToken("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}

	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("ParseJWTToken failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("expected user-123, got %s", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %s", claims.Email)
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	SetJWTConfig("test-secret", 30)

	if _, err := ParseJWTToken("not-a-token"); err == nil {
		t.Error("garbage token must not parse")
	}
}

func TestExtractNameFromEmail(t *testing.T) {
	if got := ExtractNameFromEmail("alice@example.com"); got != "alice" {
		t.Errorf("expected alice, got %s", got)
	}
	if got := ExtractNameFromEmail("no-at-sign"); got != "no-at-sign" {
		t.Errorf("expected passthrough, got %s", got)
	}
}
