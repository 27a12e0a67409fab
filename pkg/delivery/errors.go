package delivery

import "errors"

var (
	ErrFailedToSend  = errors.New("failed to send message")
	ErrInvalidConfig = errors.New("invalid delivery config")
)
