package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultRetryAttempts = 3
	defaultRetryInterval = 5 * time.Second
)

// Connect opens a PostgreSQL pool for the durable enrollment store and
// verifies it with a ping. Retries back off linearly so simultaneous
// restarts do not hammer the database.
func Connect(ctx context.Context, connectionURL string) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(connectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConfig, err)
	}

	var lastErr error
	for i := range defaultRetryAttempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnect, ctx.Err())
		case <-time.After(time.Duration(i+1) * defaultRetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToConnect, lastErr)
}
