package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := hashPassword("secret123")
	if err != nil {
		t.Fatalf("hashPassword returned error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("expected hash to differ from plaintext")
	}
	if !verifyPassword("secret123", hash) {
		t.Fatal("expected correct password to verify")
	}
	if verifyPassword("wrongpass", hash) {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestIssueSessionTokenCarriesUserID(t *testing.T) {
	userID := primitive.NewObjectID()
	const secret = "test-secret"

	raw, err := issueSessionToken(userID, secret, time.Hour)
	if err != nil {
		t.Fatalf("issueSessionToken returned error: %v", err)
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected token to parse, got %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["id"] != userID.Hex() {
		t.Fatalf("expected id claim %s, got %v", userID.Hex(), claims["id"])
	}
}

func TestExpiredSessionTokenFailsValidation(t *testing.T) {
	const secret = "test-secret"

	raw, err := issueSessionToken(primitive.NewObjectID(), secret, -time.Minute)
	if err != nil {
		t.Fatalf("issueSessionToken returned error: %v", err)
	}

	if _, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err == nil {
		t.Fatal("expected expired token to fail parsing")
	}
}

func TestSessionTokenWrongSecretFailsValidation(t *testing.T) {
	raw, err := issueSessionToken(primitive.NewObjectID(), "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("issueSessionToken returned error: %v", err)
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil && token.Valid {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestNewResetTokenStoresOnlyHash(t *testing.T) {
	raw, hash, expiry, err := newResetToken()
	if err != nil {
		t.Fatalf("newResetToken returned error: %v", err)
	}

	if raw == "" || hash == "" {
		t.Fatal("expected non-empty raw token and hash")
	}
	if raw == hash {
		t.Fatal("expected stored value to be a hash of the raw token")
	}
	if hashResetToken(raw) != hash {
		t.Fatal("expected hash to match sha256 of raw token")
	}

	remaining := time.Until(expiry)
	if remaining <= 19*time.Minute || remaining > resetTokenTTL {
		t.Fatalf("expected roughly 20 minute expiry, got %v", remaining)
	}
}

func TestHashResetTokenIsDeterministic(t *testing.T) {
	if hashResetToken("abc") != hashResetToken("abc") {
		t.Fatal("expected deterministic hashing")
	}
	if hashResetToken("abc") == hashResetToken("abd") {
		t.Fatal("expected distinct inputs to hash differently")
	}
}
