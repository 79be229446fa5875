// Package httpserver runs the API behind an http.Server with sane timeouts,
// graceful shutdown on context cancellation or SIGINT/SIGTERM, and
// liveness/readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
