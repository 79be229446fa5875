package config

import "errors"

var (
	ErrParsingConfig        = errors.New("config: failed to parse environment")
	ErrUnknownDriver        = errors.New("config: STORE_DRIVER must be memory, postgres or mongo")
	ErrMissingConnectionURL = errors.New("config: missing connection url")
)
