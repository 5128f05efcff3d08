package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestKeyRoundTrip(t *testing.T) {
	a := New("jwt-secret", "master-secret")

	key := a.GenerateKey("festival-app")
	name, err := a.VerifyKey(key)
	if err != nil {
		t.Fatalf("VerifyKey returned error: %v", err)
	}
	if name != "festival-app" {
		t.Errorf("Expected key name festival-app, got %q", name)
	}
}

func TestKeyRejections(t *testing.T) {
	a := New("jwt-secret", "master-secret")

	if _, err := a.VerifyKey("no-dot-here"); !errors.Is(err, ErrBadKeyFormat) {
		t.Errorf("Expected ErrBadKeyFormat, got %v", err)
	}

	key := a.GenerateKey("festival-app")
	tampered := strings.Replace(key, "festival", "carnival", 1)
	if _, err := a.VerifyKey(tampered); !errors.Is(err, ErrBadSignature) {
		t.Errorf("Expected ErrBadSignature for tampered key, got %v", err)
	}

	other := New("jwt-secret", "different-master")
	if _, err := other.VerifyKey(key); !errors.Is(err, ErrBadSignature) {
		t.Errorf("Expected ErrBadSignature across secrets, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	a := New("jwt-secret", "master-secret")

	token, err := a.CreateToken("admin")
	if err != nil {
		t.Fatalf("CreateToken returned error: %v", err)
	}
	claims, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Expected username admin, got %q", claims.Username)
	}

	other := New("different-jwt", "master-secret")
	if _, err := other.VerifyToken(token); err == nil {
		t.Error("Expected token verification to fail across secrets")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !CheckPasswordHash("hunter2", hash) {
		t.Error("Expected password to match its hash")
	}
	if CheckPasswordHash("hunter3", hash) {
		t.Error("Expected wrong password to be rejected")
	}
}
