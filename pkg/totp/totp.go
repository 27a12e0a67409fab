package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	Digits        = 6  // Standard 6-digit TOTP codes
	Period        = 30 // 30-second validity window (RFC 6238 standard)
	SecretSize    = 32 // Raw secret length in bytes before hex encoding
	DefaultWindow = 1  // Accepted clock drift in time steps on either side
)

var (
	// secretRegex ensures secrets are hex-encoded with an even number of characters
	secretRegex = regexp.MustCompile(`^(?:[0-9a-fA-F]{2})+$`)
	codeRegex   = regexp.MustCompile(`^\d{6}$`)
)

// GenerateSecret creates a new cryptographically random shared secret.
// The secret is returned hex-encoded for storage and transport.
func GenerateSecret() (string, error) {
	secret := make([]byte, SecretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}
	return hex.EncodeToString(secret), nil
}

// TimeStep returns the RFC 6238 time step index for the given Unix time.
func TimeStep(unixSeconds int64) int64 {
	return unixSeconds / Period
}

// ProvisioningURI builds a Key Uri Format URI for authenticator app enrollment:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
//
// The secret query parameter carries the raw secret bytes re-encoded as
// unpadded Base32, since authenticator apps do not accept hex.
func ProvisioningURI(accountName, issuer, hexSecret string) (string, error) {
	key, err := decodeSecret(hexSecret)
	if err != nil {
		return "", err
	}
	if accountName == "" {
		return "", ErrMissingAccountName
	}
	if issuer == "" {
		return "", ErrMissingIssuer
	}

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(issuer),
		url.PathEscape(accountName),
	)

	query := url.Values{}
	query.Set("secret", base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(key))
	query.Set("issuer", issuer)

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// ComputeCode derives the 6-digit code for a secret at the given time step
// using the RFC 4226 HMAC-SHA1 dynamic truncation algorithm.
func ComputeCode(hexSecret string, step int64) (string, error) {
	key, err := decodeSecret(hexSecret)
	if err != nil {
		return "", err
	}
	return hotp(key, step), nil
}

// VerifyCode reports whether the submitted code matches the secret at any
// time step within the drift window around now. Malformed secrets or codes
// never produce an error, only a failed verification.
func VerifyCode(hexSecret, code string, nowUnixSeconds int64, window int) bool {
	key, err := decodeSecret(hexSecret)
	if err != nil {
		return false
	}

	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return false
	}
	if window < 0 {
		window = DefaultWindow
	}

	step := TimeStep(nowUnixSeconds)
	for k := -window; k <= window; k++ {
		expected := hotp(key, step+int64(k))
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			return true
		}
	}

	return false
}

// Verify checks a code against the current wall clock with the default window.
func Verify(hexSecret, code string) bool {
	return VerifyCode(hexSecret, code, time.Now().Unix(), DefaultWindow)
}

// hotp implements RFC 4226 HMAC-based One-Time Password truncation.
func hotp(key []byte, counter int64) string {
	// Counter is an 8-byte big-endian value (RFC 4226 requirement)
	counterBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(counterBytes, uint64(counter))

	mac := hmac.New(sha1.New, key)
	mac.Write(counterBytes)
	digest := mac.Sum(nil)

	// Dynamic truncation: last 4 bits select the offset into the digest,
	// then 4 bytes at that offset form a 31-bit unsigned integer.
	offset := digest[len(digest)-1] & 0x0f
	value := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%06d", value%1_000_000)
}

func decodeSecret(hexSecret string) ([]byte, error) {
	hexSecret = strings.TrimSpace(hexSecret)
	if !secretRegex.MatchString(hexSecret) {
		return nil, ErrInvalidSecret
	}
	key, err := hex.DecodeString(hexSecret)
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}
