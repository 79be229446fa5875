package access

import "errors"

var (
	// ErrStoreUnavailable wraps any failure of the backing store. Callers must
	// treat it as deny: no creation, no "not blocked" answer.
	ErrStoreUnavailable = errors.New("access: store unavailable")

	// ErrInvalidResource is returned for resource kinds the operation does not support.
	ErrInvalidResource = errors.New("access: invalid resource")
)
