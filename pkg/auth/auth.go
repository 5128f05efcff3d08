// Package auth covers the admin surface security: bcrypt password
// hashes, JWT admin tokens, and HMAC-signed API keys.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrBadKeyFormat = errors.New("invalid key format")
	ErrBadSignature = errors.New("invalid key signature")
)

// Auth signs and verifies tokens and API keys. Secrets are injected at
// construction; nothing here reads the environment.
type Auth struct {
	jwtSecret    []byte
	masterSecret []byte
	tokenTTL     time.Duration
}

// Claims are the JWT claims carried by admin tokens.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// New creates an Auth with the given signing secrets.
func New(jwtSecret, masterSecret string) *Auth {
	return &Auth{
		jwtSecret:    []byte(jwtSecret),
		masterSecret: []byte(masterSecret),
		tokenTTL:     24 * time.Hour,
	}
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateToken issues a signed admin token for a username.
func (a *Auth) CreateToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// VerifyToken parses and validates an admin token.
func (a *Auth) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateKey creates a signed API key using HMAC-SHA256.
func (a *Auth) GenerateKey(name string) string {
	return name + "." + a.sign(name)
}

// VerifyKey validates an HMAC-signed API key and returns the key name.
func (a *Auth) VerifyKey(key string) (string, error) {
	name, signature, ok := strings.Cut(key, ".")
	if !ok {
		return "", ErrBadKeyFormat
	}
	// Constant-time comparison to prevent timing attacks.
	if !hmac.Equal([]byte(signature), []byte(a.sign(name))) {
		return "", ErrBadSignature
	}
	return name, nil
}

func (a *Auth) sign(name string) string {
	h := hmac.New(sha256.New, a.masterSecret)
	h.Write([]byte(name))
	return hex.EncodeToString(h.Sum(nil))
}
