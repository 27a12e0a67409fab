package enrollment

import (
	"context"
	"time"
)

// Store persists Records keyed by user ID. Every read-modify-write the
// interface exposes must execute as a single conditional update in the
// backing store: backup-code consumption and the enable transition are
// raced by concurrent requests and must not both succeed.
type Store interface {
	// Get returns the user's record, or ErrNotFound.
	Get(ctx context.Context, userID string) (*Record, error)

	// Save upserts the record, replacing any previous configuration.
	Save(ctx context.Context, record *Record) error

	// Enable flips a pending record to enabled with the given timestamp.
	// Returns ErrNotFound when no pending record exists; an already-enabled
	// record does not match, which makes the transition single-shot under
	// concurrency.
	Enable(ctx context.Context, userID string, enabledAt time.Time) error

	// Delete removes the record. Returns ErrNotFound if none exists.
	Delete(ctx context.Context, userID string) error

	// ConsumeBackupCode removes the given hash from the record's backup
	// code set. Returns true only when this call actually removed it, so
	// two concurrent submissions of the same code yield exactly one success.
	ConsumeBackupCode(ctx context.Context, userID, hash string) (bool, error)

	// ReplaceBackupCodes swaps the entire hash set, invalidating every
	// previously issued code.
	ReplaceBackupCodes(ctx context.Context, userID string, hashes []string) error
}
