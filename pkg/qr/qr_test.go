package qr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/qr"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("renders png", func(t *testing.T) {
		t.Parallel()
		png, err := qr.Generate("otpauth://totp/Acme:alice?secret=ABC&issuer=Acme", 256)
		require.NoError(t, err)
		// PNG magic bytes
		assert.True(t, len(png) > 8)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
	})

	t.Run("defaults size", func(t *testing.T) {
		t.Parallel()
		png, err := qr.Generate("content", 0)
		require.NoError(t, err)
		assert.NotEmpty(t, png)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := qr.Generate("   ", 256)
		assert.ErrorIs(t, err, qr.ErrEmptyContent)
	})
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()

	image, err := qr.GenerateBase64Image("otpauth://totp/Acme:alice?secret=ABC&issuer=Acme", 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(image, "data:image/png;base64,"))

	_, err = qr.GenerateBase64Image("", 128)
	assert.ErrorIs(t, err, qr.ErrEmptyContent)
}
