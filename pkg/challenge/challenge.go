package challenge

import (
	"time"
)

// Method identifies the second factor a challenge verifies.
type Method string

const (
	MethodTOTP  Method = "totp"
	MethodSMS   Method = "sms"
	MethodEmail Method = "email"
)

// deliverable reports whether the method carries an out-of-band code.
// TOTP challenges are verified directly against the shared secret and are
// never issued through the coordinator.
func (m Method) deliverable() bool {
	return m == MethodSMS || m == MethodEmail
}

// Metadata is the ephemeral challenge record. The one-time code and attempt
// counter live under sibling keys with the same TTL so the code can be
// consumed independently of the metadata.
type Metadata struct {
	UserID    string    `json:"user_id"`
	Method    Method    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

const keyPrefix = "2fa:challenge:"

func metaKey(id string) string     { return keyPrefix + id }
func codeKey(id string) string     { return keyPrefix + id + ":code" }
func attemptsKey(id string) string { return keyPrefix + id + ":attempts" }

// userKey indexes the outstanding challenge per user and method so a resend
// can revoke its predecessor.
func userKey(userID string, method Method) string {
	return keyPrefix + "user:" + userID + ":" + string(method)
}
