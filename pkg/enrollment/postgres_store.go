package enrollment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)

// Schema is the DDL for the table PostgresStore operates on. Deployments
// that manage migrations elsewhere can embed it into their own tooling;
// EnsureSchema applies it directly for development setups.
const Schema = `
CREATE TABLE IF NOT EXISTS two_factor_configs (
	user_id            TEXT PRIMARY KEY,
	secret_ciphertext  TEXT NOT NULL,
	backup_code_hashes TEXT[] NOT NULL DEFAULT '{}',
	enabled            BOOLEAN NOT NULL DEFAULT FALSE,
	created_at         TIMESTAMPTZ NOT NULL,
	enabled_at         TIMESTAMPTZ
)`

// PostgresStore persists Records in a single PostgreSQL row per user.
// Every conditional update is one statement, so row-level locking gives the
// same single-success guarantees as the document store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already-connected pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the backing table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (*Record, error) {
	record := Record{UserID: userID}
	var enabledAt *time.Time

	err := s.pool.QueryRow(ctx,
		`SELECT secret_ciphertext, backup_code_hashes, enabled, created_at, enabled_at
		 FROM two_factor_configs WHERE user_id = $1`,
		userID,
	).Scan(&record.SecretCiphertext, &record.BackupCodeHashes, &record.Enabled, &record.CreatedAt, &enabledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	if enabledAt != nil {
		record.EnabledAt = *enabledAt
	}
	return &record, nil
}

func (s *PostgresStore) Save(ctx context.Context, record *Record) error {
	var enabledAt *time.Time
	if !record.EnabledAt.IsZero() {
		enabledAt = &record.EnabledAt
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO two_factor_configs (user_id, secret_ciphertext, backup_code_hashes, enabled, created_at, enabled_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
			secret_ciphertext  = EXCLUDED.secret_ciphertext,
			backup_code_hashes = EXCLUDED.backup_code_hashes,
			enabled            = EXCLUDED.enabled,
			created_at         = EXCLUDED.created_at,
			enabled_at         = EXCLUDED.enabled_at`,
		record.UserID, record.SecretCiphertext, record.BackupCodeHashes,
		record.Enabled, record.CreatedAt, enabledAt,
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *PostgresStore) Enable(ctx context.Context, userID string, enabledAt time.Time) error {
	// The enabled = FALSE predicate makes the transition single-shot under
	// concurrent confirmations.
	tag, err := s.pool.Exec(ctx,
		`UPDATE two_factor_configs SET enabled = TRUE, enabled_at = $2
		 WHERE user_id = $1 AND enabled = FALSE`,
		userID, enabledAt,
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM two_factor_configs WHERE user_id = $1`, userID)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ConsumeBackupCode(ctx context.Context, userID, hash string) (bool, error) {
	// Matching the hash in the predicate and removing it in the same
	// statement is the anti-double-spend guard: the second of two racing
	// submissions matches zero rows.
	tag, err := s.pool.Exec(ctx,
		`UPDATE two_factor_configs
		 SET backup_code_hashes = array_remove(backup_code_hashes, $2)
		 WHERE user_id = $1 AND $2 = ANY(backup_code_hashes)`,
		userID, hash,
	)
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *PostgresStore) ReplaceBackupCodes(ctx context.Context, userID string, hashes []string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE two_factor_configs SET backup_code_hashes = $2 WHERE user_id = $1`,
		userID, hashes,
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
