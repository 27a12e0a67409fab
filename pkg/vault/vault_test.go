package vault_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/twofactor/pkg/vault"
)

func newCodec(t *testing.T) *vault.Codec {
	t.Helper()
	key, err := vault.GenerateKey()
	require.NoError(t, err)
	codec, err := vault.New(key)
	require.NoError(t, err)
	return codec
}

func TestNew_InvalidKeyLength(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 16, 31, 33, 64} {
		_, err := vault.New(make([]byte, size))
		assert.ErrorIs(t, err, vault.ErrInvalidKeyLength, "key size %d", size)
	}
}

func TestEncryptDecrypt(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)
	secret := "3132333435363738393031323334353637383930"

	cipherText, err := codec.Encrypt(secret)
	require.NoError(t, err)
	assert.NotEqual(t, secret, cipherText)

	plainText, err := codec.Decrypt(cipherText)
	require.NoError(t, err)
	assert.Equal(t, secret, plainText)
}

func TestEncrypt_NonDeterministic(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)

	first, err := codec.Encrypt("secret")
	require.NoError(t, err)
	second, err := codec.Encrypt("secret")
	require.NoError(t, err)

	// Random nonces must make identical plaintexts encrypt differently.
	assert.NotEqual(t, first, second)
}

func TestDecrypt_Failures(t *testing.T) {
	t.Parallel()

	codec := newCodec(t)

	cipherText, err := codec.Encrypt("secret")
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()
		other := newCodec(t)
		_, err := other.Decrypt(cipherText)
		assert.ErrorIs(t, err, vault.ErrFailedToDecrypt)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		t.Parallel()
		raw, err := base64.StdEncoding.DecodeString(cipherText)
		require.NoError(t, err)
		raw[len(raw)-1] ^= 0x01
		_, err = codec.Decrypt(base64.StdEncoding.EncodeToString(raw))
		assert.ErrorIs(t, err, vault.ErrFailedToDecrypt)
	})

	t.Run("not base64", func(t *testing.T) {
		t.Parallel()
		_, err := codec.Decrypt("%%%not-base64%%%")
		assert.ErrorIs(t, err, vault.ErrFailedToDecrypt)
	})

	t.Run("too short", func(t *testing.T) {
		t.Parallel()
		_, err := codec.Decrypt(base64.StdEncoding.EncodeToString([]byte("abc")))
		assert.ErrorIs(t, err, vault.ErrCipherTooShort)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("valid key", func(t *testing.T) {
		t.Parallel()
		encoded, err := vault.GenerateEncodedKey()
		require.NoError(t, err)

		codec, err := vault.NewFromConfig(vault.Config{EncryptionKey: encoded})
		require.NoError(t, err)

		cipherText, err := codec.Encrypt("secret")
		require.NoError(t, err)
		plainText, err := codec.Decrypt(cipherText)
		require.NoError(t, err)
		assert.Equal(t, "secret", plainText)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		_, err := vault.NewFromConfig(vault.Config{})
		assert.ErrorIs(t, err, vault.ErrKeyNotSet)
	})

	t.Run("wrong length", func(t *testing.T) {
		t.Parallel()
		short := base64.StdEncoding.EncodeToString([]byte("short"))
		_, err := vault.NewFromConfig(vault.Config{EncryptionKey: short})
		assert.ErrorIs(t, err, vault.ErrInvalidKeyLength)
	})
}
