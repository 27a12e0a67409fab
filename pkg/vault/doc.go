// Package vault encrypts durable 2FA secrets with AES-256-GCM so that a
// leaked database never exposes a usable TOTP secret.
//
// Ciphertexts are stored as base64(nonce || ciphertext || auth tag). The
// encryption key is a base64-encoded 32-byte value loaded from the
// TWOFACTOR_ENCRYPTION_KEY environment variable; GenerateEncodedKey produces
// a fresh one for initial deployment.
package vault
