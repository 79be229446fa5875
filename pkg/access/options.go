package access

import (
	"log/slog"
	"time"
)

// Option configures a Service instance.
type Option func(*service)

// WithClock overrides the time source used to resolve subscription status.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for decision and failure records.
func WithLogger(log *slog.Logger) Option {
	return func(s *service) {
		if log != nil {
			s.log = log
		}
	}
}
