package enrollment

import "time"

// State is the lifecycle position of a user's 2FA configuration.
type State string

const (
	StateNotConfigured State = "not_configured"
	StatePending       State = "pending"
	StateEnabled       State = "enabled"
)

// Record is the durable per-user 2FA configuration. A record is never
// partially enabled: Enabled is only set after the user has proven
// possession of the secret, and disabling deletes the record outright so
// re-enrollment always starts from scratch.
type Record struct {
	UserID           string    `bson:"_id" json:"user_id"`
	SecretCiphertext string    `bson:"secret_ciphertext" json:"secret_ciphertext"`
	BackupCodeHashes []string  `bson:"backup_code_hashes" json:"backup_code_hashes"`
	Enabled          bool      `bson:"enabled" json:"enabled"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	EnabledAt        time.Time `bson:"enabled_at,omitempty" json:"enabled_at,omitempty"`
}

// State derives the lifecycle state from the record contents.
func (r *Record) State() State {
	switch {
	case r == nil:
		return StateNotConfigured
	case r.Enabled:
		return StateEnabled
	default:
		return StatePending
	}
}
