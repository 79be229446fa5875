package store

import "errors"

var (
	ErrUnknownResource     = errors.New("store: unknown resource kind")
	ErrRecordNotFound      = errors.New("store: record not found")
	ErrArchiveUnsupported  = errors.New("store: only properties can be archived")
	ErrInvalidWindow       = errors.New("store: offset and limit must not be negative")
	ErrMissingOwnerID      = errors.New("store: owner id is required")
	ErrFailedToConnect     = errors.New("store: failed to connect")
	ErrFailedToParseConfig = errors.New("store: failed to parse connection config")
	ErrFailedToMigrate     = errors.New("store: failed to apply migrations")
	ErrHealthcheckFailed   = errors.New("store: healthcheck failed")
)
