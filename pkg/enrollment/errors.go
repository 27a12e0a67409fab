package enrollment

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("two-factor configuration not found")
	ErrInvalidCode  = errors.New("invalid verification code")
	ErrInvalidState = errors.New("invalid enrollment state")
	ErrStoreFailure = errors.New("durable store failure")

	ErrAlreadyEnabled = fmt.Errorf("%w: two-factor authentication already enabled", ErrInvalidState)
	ErrNotEnabled     = fmt.Errorf("%w: two-factor authentication not enabled", ErrInvalidState)
)
