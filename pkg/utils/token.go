package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims untuk token sesi HS256. Hanya Subject (user id) yang
// authoritative; email & role di-reload dari database saat autentikasi.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IssueSessionToken creates a signed session token with an absolute expiry.
func IssueSessionToken(userID, email, role, secret string, expiry time.Duration) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
		Email: email,
		Role:  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// VerifySessionToken fails on signature mismatch, malformed structure, or
// expiry in the past. No refresh; klien harus login ulang setelah expired.
func VerifySessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	return claims, nil
}

const apiTokenCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const apiTokenLength = 64

// GenerateAPIToken creates the opaque API token secret. Shown once, never stored.
func GenerateAPIToken() (string, error) {
	token := make([]byte, apiTokenLength)
	max := big.NewInt(int64(len(apiTokenCharset)))

	for i := range token {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate API token: %w", err)
		}
		token[i] = apiTokenCharset[idx.Int64()]
	}

	return string(token), nil
}

// DigestToken is a deterministic one-way digest. BUKAN password hash (tanpa
// salt) karena harus bisa dipakai untuk lookup equality di database.
func DigestToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
