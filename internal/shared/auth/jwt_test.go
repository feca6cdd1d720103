package auth

import (
	"strings"
	"testing"
	"time"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := NewJWT("my-secret-key", time.Hour)

	userID := "a3f1c9ae-3b93-44a6-9a54-64d1e0a5c0de"
	telegramID := int64(777000111)

	// 1. Test Generate
	token, err := j.Generate(userID, telegramID)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	// 2. Test Validate Success
	claims, err := j.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Validate() got UserID %s, want %s", claims.UserID, userID)
	}
	if claims.TelegramID != telegramID {
		t.Errorf("Validate() got TelegramID %d, want %d", claims.TelegramID, telegramID)
	}

	// 3. Test Tampered Token (Wrong Signature)
	parts := strings.Split(token, ".")
	tamperedToken := parts[0] + "." + parts[1] + "." + "invalid-signature"
	if _, err := j.Validate(tamperedToken); err == nil {
		t.Error("Validate() accepted tampered signature")
	}

	// 4. Test Invalid Format
	if _, err := j.Validate("invalid.token"); err == nil {
		t.Error("Validate() accepted invalid format")
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT("my-secret-key", -time.Minute)

	token, err := j.Generate("user-1", 42)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := j.Validate(token); err == nil {
		t.Error("Validate() accepted expired token")
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := NewJWT("secret-a", time.Hour)
	verifier := NewJWT("secret-b", time.Hour)

	token, err := issuer.Generate("user-1", 42)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := verifier.Validate(token); err == nil {
		t.Error("Validate() accepted token signed with a different secret")
	}
}
