package twofactor

import (
	"github.com/dmitrymomot/twofactor/pkg/challenge"
	"github.com/dmitrymomot/twofactor/pkg/enrollment"
	"github.com/dmitrymomot/twofactor/pkg/vault"
)

// Errors surfaced by enrollment-management calls. Verification entry points
// never return these: their failures collapse to a plain false.
var (
	ErrNotFound     = enrollment.ErrNotFound
	ErrInvalidCode  = enrollment.ErrInvalidCode
	ErrInvalidState = enrollment.ErrInvalidState
	ErrStoreFailure = enrollment.ErrStoreFailure

	// ErrEncoding indicates corrupt ciphertext in the durable store. 2FA
	// fails closed on it, but it is surfaced since it requires operator
	// intervention.
	ErrEncoding = vault.ErrFailedToDecrypt

	// ErrStoreUnavailable indicates the ephemeral store cannot be reached;
	// challenge operations deny rather than degrade.
	ErrStoreUnavailable = challenge.ErrStoreUnavailable
)
