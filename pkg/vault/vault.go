package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

const KeySize = 32 // Required key size for AES-256 (256 bits / 8 = 32 bytes)

// Codec encrypts and decrypts TOTP secrets with AES-256-GCM before they
// touch durable storage. GCM is authenticated: a ciphertext that has been
// tampered with fails to decrypt instead of yielding garbage plaintext.
type Codec struct {
	key []byte
}

// New creates a Codec from a raw 32-byte key.
func New(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	return &Codec{key: key}, nil
}

// NewFromConfig creates a Codec from the base64-encoded key in the config.
func NewFromConfig(cfg Config) (*Codec, error) {
	key, err := decodeKey(cfg)
	if err != nil {
		return nil, err
	}
	return New(key)
}

// Encrypt seals the plaintext and returns base64(nonce || ciphertext || tag).
func (c *Codec) Encrypt(plainText string) (string, error) {
	aesGCM, err := c.gcm()
	if err != nil {
		return "", errors.Join(ErrFailedToEncrypt, err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrFailedToEncrypt, err)
	}

	cipherText := aesGCM.Seal(nonce, nonce, []byte(plainText), nil)
	return base64.StdEncoding.EncodeToString(cipherText), nil
}

// Decrypt opens a base64-encoded ciphertext produced by Encrypt.
func (c *Codec) Decrypt(cipherTextBase64 string) (string, error) {
	cipherText, err := base64.StdEncoding.DecodeString(cipherTextBase64)
	if err != nil {
		return "", errors.Join(ErrFailedToDecrypt, err)
	}

	aesGCM, err := c.gcm()
	if err != nil {
		return "", errors.Join(ErrFailedToDecrypt, err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(cipherText) < nonceSize {
		return "", errors.Join(ErrFailedToDecrypt, ErrCipherTooShort)
	}
	nonce, cipherText := cipherText[:nonceSize], cipherText[nonceSize:]

	plainText, err := aesGCM.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return "", errors.Join(ErrFailedToDecrypt, err)
	}

	return string(plainText), nil
}

func (c *Codec) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// GenerateKey creates a new random 32-byte key suitable for AES-256.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrFailedToGenerateKey, err)
	}
	return key, nil
}

// GenerateEncodedKey creates a new random key as a base64-encoded string,
// ready to be placed in the TWOFACTOR_ENCRYPTION_KEY environment variable.
func GenerateEncodedKey() (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

func decodeKey(cfg Config) ([]byte, error) {
	if cfg.EncryptionKey == "" {
		return nil, errors.Join(ErrFailedToLoadKey, ErrKeyNotSet)
	}

	key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadKey, err)
	}

	if len(key) != KeySize {
		return nil, errors.Join(ErrFailedToLoadKey, ErrInvalidKeyLength)
	}

	return key, nil
}
