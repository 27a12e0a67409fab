package pg

import "errors"

var (
	ErrFailedToConnect     = errors.New("failed to connect to postgres")
	ErrFailedToParseConfig = errors.New("failed to parse postgres connection url")
	ErrHealthcheckFailed   = errors.New("postgres healthcheck failed")
)
