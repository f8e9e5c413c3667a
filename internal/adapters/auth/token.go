package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"undangan/internal/domain"
)

type sessionTokenSource struct{}

// NewSessionTokenSource returns a TokenSource minting opaque session tokens.
// A token is the base64url encoding of a UUID plus 32 random bytes; the
// repository only ever sees its SHA-256 digest.
func NewSessionTokenSource() domain.TokenSource {
	return sessionTokenSource{}
}

func (sessionTokenSource) New() (string, error) {
	id := uuid.New()
	raw := make([]byte, 0, len(id)+32)
	raw = append(raw, id[:]...)
	entropy := make([]byte, 32)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	raw = append(raw, entropy...)
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func (sessionTokenSource) Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
