package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"github.com/you/accountsvc/domain"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// TokenServiceImpl implements domain.TokenService. Tokens are opaque
// alphanumeric strings drawn from crypto/rand; they carry no claims and are
// only meaningful as a database lookup key.
type TokenServiceImpl struct {
	length int
}

// NewTokenService creates a token service producing tokens of the given
// length. Lengths below 32 are raised to 32.
func NewTokenService(length int) domain.TokenService {
	if length < 32 {
		length = 32
	}
	return &TokenServiceImpl{length: length}
}

// Generate implements domain.TokenService
func (t *TokenServiceImpl) Generate() (string, error) {
	buf := make([]byte, t.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}

// Equal implements domain.TokenService. The comparison runs in time
// independent of any shared prefix.
func (t *TokenServiceImpl) Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
