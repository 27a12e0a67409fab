package enrollment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/enrollment"
)

func pendingRecord(userID string, hashes ...string) *enrollment.Record {
	return &enrollment.Record{
		UserID:           userID,
		SecretCiphertext: "ciphertext",
		BackupCodeHashes: hashes,
		CreatedAt:        time.Now(),
	}
}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := enrollment.NewMemoryStore()

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, enrollment.ErrNotFound)

	require.NoError(t, store.Save(ctx, pendingRecord("user-1", "h1", "h2")))

	record, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatePending, record.State())
	assert.Equal(t, []string{"h1", "h2"}, record.BackupCodeHashes)

	// Mutating the returned copy must not leak into the store.
	record.BackupCodeHashes[0] = "tampered"
	fresh, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "h1", fresh.BackupCodeHashes[0])

	require.NoError(t, store.Delete(ctx, "user-1"))
	assert.ErrorIs(t, store.Delete(ctx, "user-1"), enrollment.ErrNotFound)
}

func TestMemoryStore_Enable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := enrollment.NewMemoryStore()

	enabledAt := time.Now()

	assert.ErrorIs(t, store.Enable(ctx, "user-1", enabledAt), enrollment.ErrNotFound)

	require.NoError(t, store.Save(ctx, pendingRecord("user-1")))
	require.NoError(t, store.Enable(ctx, "user-1", enabledAt))

	record, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, record.Enabled)
	assert.Equal(t, enabledAt, record.EnabledAt)

	// Enabling is single-shot: an enabled record no longer matches.
	assert.ErrorIs(t, store.Enable(ctx, "user-1", enabledAt), enrollment.ErrNotFound)
}

func TestMemoryStore_ConsumeBackupCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := enrollment.NewMemoryStore()

	require.NoError(t, store.Save(ctx, pendingRecord("user-1", "h1", "h2", "h3")))

	ok, err := store.ConsumeBackupCode(ctx, "user-1", "h2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.ConsumeBackupCode(ctx, "user-1", "h2")
	require.NoError(t, err)
	assert.False(t, ok)

	record, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"h1", "h3"}, record.BackupCodeHashes)

	ok, err = store.ConsumeBackupCode(ctx, "nobody", "h1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_ConsumeBackupCode_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := enrollment.NewMemoryStore()

	require.NoError(t, store.Save(ctx, pendingRecord("user-1", "h1")))

	const racers = 8
	results := make(chan bool, racers)
	var wg sync.WaitGroup
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.ConsumeBackupCode(ctx, "user-1", "h1")
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	var successes int
	for ok := range results {
		if ok {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "a backup code must not double-spend")
}

func TestMemoryStore_ReplaceBackupCodes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := enrollment.NewMemoryStore()

	assert.ErrorIs(t, store.ReplaceBackupCodes(ctx, "user-1", []string{"x"}), enrollment.ErrNotFound)

	require.NoError(t, store.Save(ctx, pendingRecord("user-1", "h1")))
	require.NoError(t, store.ReplaceBackupCodes(ctx, "user-1", []string{"n1", "n2"}))

	record, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "n2"}, record.BackupCodeHashes)
}
