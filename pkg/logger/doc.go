// Package logger builds slog loggers with per-environment defaults and
// provides attribute helpers for the keys used across the service.
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "accessgate"),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.InfoContext(ctx, "quota exceeded", logger.OwnerID(ownerID), logger.Resource(plan.ResourceTenants))
package logger
