package backup_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/backup"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		count   int
		length  int
		wantErr error
	}{
		{name: "defaults", count: backup.DefaultCount, length: backup.DefaultLength},
		{name: "single code", count: 1, length: 8},
		{name: "longer codes", count: 5, length: 16},
		{name: "zero count", count: 0, length: 8, wantErr: backup.ErrInvalidCodeCount},
		{name: "negative count", count: -1, length: 8, wantErr: backup.ErrInvalidCodeCount},
		{name: "odd length", count: 3, length: 7, wantErr: backup.ErrInvalidCodeLength},
		{name: "zero length", count: 3, length: 0, wantErr: backup.ErrInvalidCodeLength},
	}

	codeFormat := regexp.MustCompile(`^[0-9A-F]+$`)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			codes, err := backup.Generate(tt.count, tt.length)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, codes)
				return
			}

			require.NoError(t, err)
			require.Len(t, codes, tt.count)

			seen := make(map[string]struct{}, tt.count)
			for _, code := range codes {
				assert.Len(t, code, tt.length)
				assert.Regexp(t, codeFormat, code)
				_, dup := seen[code]
				assert.False(t, dup, "duplicate code %s", code)
				seen[code] = struct{}{}
			}
		})
	}
}

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	codes, err := backup.Generate(1, 8)
	require.NoError(t, err)
	code := codes[0]
	hash := backup.Hash(code)

	assert.Len(t, hash, 64) // SHA-256 hex digest
	assert.NotEqual(t, code, hash)

	assert.True(t, backup.Verify(code, hash))
	assert.False(t, backup.Verify("00000000", hash))
	assert.False(t, backup.Verify(code, backup.Hash("FFFFFFFF")))
}

func TestVerify_NormalizesInput(t *testing.T) {
	t.Parallel()

	hash := backup.Hash("A1B2C3D4")

	assert.True(t, backup.Verify("a1b2c3d4", hash))
	assert.True(t, backup.Verify("  A1B2C3D4  ", hash))
	assert.True(t, backup.Verify("A1B2-C3D4", hash))
}

func TestHash_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, backup.Hash("DEADBEEF"), backup.Hash("DEADBEEF"))
	assert.NotEqual(t, backup.Hash("DEADBEEF"), backup.Hash("DEADBEEE"))
}
