// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/rentwise/accessgate/pkg/httpserver"
	"github.com/rentwise/accessgate/pkg/store"
)

// Driver selects the store backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverMongo    Driver = "mongo"
)

// Config is the complete service configuration.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"accessgate"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	StoreDriver      Driver        `env:"STORE_DRIVER" envDefault:"memory"`
	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"2s"`

	Postgres store.PostgresConfig
	Mongo    store.MongoConfig
	Redis    store.RedisConfig
	HTTP     httpserver.Config
}

// Load reads the given .env files, if they exist, and parses the environment.
// Variables already set in the process take precedence over the files.
// With no files it looks for ".env" in the working directory.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that depend on each other.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.Postgres.ConnectionString == "" {
			return errors.Join(ErrMissingConnectionURL, errors.New("PG_CONN_URL is required for the postgres driver"))
		}
	case DriverMongo:
		if c.Mongo.ConnectionURL == "" {
			return errors.Join(ErrMissingConnectionURL, errors.New("MONGODB_URL is required for the mongo driver"))
		}
	default:
		return ErrUnknownDriver
	}
	return nil
}
