package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	defaultRetryAttempts = 3
	defaultRetryInterval = 5 * time.Second
)

// Connect opens a MongoDB client for the durable enrollment store and
// verifies it with a ping. It retries a few times so the subsystem can
// start while the database is still coming up.
func Connect(ctx context.Context, connectionURL string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(connectionURL).
		SetRetryWrites(true).
		SetRetryReads(true)

	var lastErr error
	for range defaultRetryAttempts {
		client, err := mongo.Connect(opts)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnect, ctx.Err())
		case <-time.After(defaultRetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToConnect, lastErr)
}
