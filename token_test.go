package main

import (
	"testing"
	"time"

	"paytracker/models"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signClaims(t *testing.T, secret []byte, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestGenerateAndValidateToken(t *testing.T) {
	user := &models.User{Email: "edu@email.com"}
	token, err := generateToken(testSecret, user)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}
	subject, err := validateToken(testSecret, token)
	if err != nil {
		t.Fatalf("validateToken: %v", err)
	}
	if subject != "edu@email.com" {
		t.Fatalf("subject = %q, want edu@email.com", subject)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := generateToken(testSecret, &models.User{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}
	if _, err := validateToken([]byte("another-secret"), token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	token := signClaims(t, testSecret, jwt.RegisteredClaims{
		Issuer:    "Someone Else",
		Subject:   "a@b.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if _, err := validateToken(testSecret, token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token := signClaims(t, testSecret, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "a@b.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	if _, err := validateToken(testSecret, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestValidateTokenStillValidBeforeExpiry(t *testing.T) {
	token := signClaims(t, testSecret, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "a@b.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	if _, err := validateToken(testSecret, token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}
}

func TestValidateTokenMissingExpiry(t *testing.T) {
	token := signClaims(t, testSecret, jwt.RegisteredClaims{
		Issuer:  tokenIssuer,
		Subject: "a@b.com",
	})
	if _, err := validateToken(testSecret, token); err == nil {
		t.Fatal("expected error for token without expiry")
	}
}

func TestValidateTokenMalformed(t *testing.T) {
	if _, err := validateToken(testSecret, "not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestTokenExpirationAnchoredAtFixedOffset(t *testing.T) {
	// wall clock 12:00 re-anchored at -03:00 is 15:00 UTC; plus 2h is 17:00 UTC
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	exp := tokenExpiration(now)
	want := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	if !exp.Equal(want) {
		t.Fatalf("expiration = %v, want %v", exp.UTC(), want)
	}
}
