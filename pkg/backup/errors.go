package backup

import "errors"

var (
	ErrInvalidCodeCount     = errors.New("invalid backup code count, must be greater than 0")
	ErrInvalidCodeLength    = errors.New("invalid backup code length, must be a positive even number")
	ErrFailedToGenerateCode = errors.New("failed to generate backup code")
)
