package challenge

import "errors"

var (
	ErrKeyNotFound          = errors.New("key not found")
	ErrNotAnInteger         = errors.New("value is not an integer")
	ErrStoreUnavailable     = errors.New("ephemeral store unavailable")
	ErrUnsupportedMethod    = errors.New("unsupported challenge method")
	ErrMissingUserID        = errors.New("missing user id")
	ErrMissingAddress       = errors.New("missing delivery address")
	ErrFailedToGenerateCode = errors.New("failed to generate challenge code")
)
