package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rentwise/accessgate/internal/api"
	"github.com/rentwise/accessgate/internal/config"
	"github.com/rentwise/accessgate/pkg/access"
	"github.com/rentwise/accessgate/pkg/httpserver"
	"github.com/rentwise/accessgate/pkg/logger"
	"github.com/rentwise/accessgate/pkg/store"
)

func main() {
	envFile := flag.String("env-file", "", "optional .env file to load before reading the environment")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *envFile); err != nil {
		fmt.Fprintln(os.Stderr, "accessgate:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, envFile string) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextValue("request_id", api.RequestIDKey),
	)

	backend, probes, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var st store.ReadWriter = backend
	if cfg.Redis.Enabled() {
		client, err := store.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		st = store.NewSubscriptionCache(st, client, cfg.Redis.CacheTTL, log)
		probes = append(probes, httpserver.Probe{Name: "redis", Check: store.RedisHealthcheck(client)})
		log.InfoContext(ctx, "subscription cache enabled", "ttl", cfg.Redis.CacheTTL)
	}

	svc := access.NewService(st, access.WithLogger(log.With(logger.Component("access"))))

	router := api.NewRouter(svc, api.Options{
		Logger:    log.With(logger.Component("api")),
		Liveness:  httpserver.LivenessHandler(),
		Readiness: httpserver.ReadinessHandler(log, cfg.ReadinessTimeout, probes...),
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}
