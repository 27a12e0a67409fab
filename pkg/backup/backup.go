package backup

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
)

const (
	DefaultCount  = 10 // Number of codes issued per enrollment
	DefaultLength = 8  // Code length in hex characters
)

// Generate creates cryptographically random single-use backup codes.
// Codes are uppercase hexadecimal; length must be a positive even number
// of characters. Callers must show the plaintext codes to the user exactly
// once and persist only their hashes.
func Generate(count, length int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidCodeCount
	}
	if length < 2 || length%2 != 0 {
		return nil, ErrInvalidCodeLength
	}

	codes := make([]string, count)
	for i := range count {
		raw := make([]byte, length/2)
		if _, err := rand.Read(raw); err != nil {
			return nil, errors.Join(ErrFailedToGenerateCode, err)
		}
		codes[i] = strings.ToUpper(hex.EncodeToString(raw))
	}
	return codes, nil
}

// Hash produces the SHA-256 digest stored in place of the plaintext code.
// The digest is unsalted so that stored hashes remain searchable as a set.
func Hash(code string) string {
	sum := sha256.Sum256([]byte(normalize(code)))
	return hex.EncodeToString(sum[:])
}

// Verify performs a constant-time comparison of a submitted code against a
// stored hash to prevent timing side channels.
func Verify(code, storedHash string) bool {
	computed := Hash(code)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// normalize makes verification forgiving of the formatting users apply when
// reading codes back from a printout.
func normalize(code string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(code), "-", ""))
}
