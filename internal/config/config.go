package config

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Address        string        // HTTP listen address
	AMQPURL        string        // event broker URL, empty disables publishing
	EventsExchange string        // topic exchange for offer events
	LogLevel       string        // debug, info, warn, error
	DigestInterval time.Duration // marketplace digest log period
}

var (
	ErrAddressEmpty   = errors.New("address is an empty string")
	ErrExchangeEmpty  = errors.New("events_exchange is an empty string")
	ErrDigestInterval = errors.New("digest_interval must be positive")
)

func (cfg *Config) check() error {
	var errs []error

	if len(cfg.Address) == 0 {
		errs = append(errs, ErrAddressEmpty)
	}
	if len(cfg.EventsExchange) == 0 {
		errs = append(errs, ErrExchangeEmpty)
	}
	if cfg.DigestInterval <= 0 {
		errs = append(errs, ErrDigestInterval)
	}
	return errors.Join(errs...)
}

func (cfg *Config) ParseFlags() error {
	// A local .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	flag.StringVar(&cfg.Address, "a", "localhost:8080", "Service address and port")
	flag.StringVar(&cfg.AMQPURL, "q", "", "AMQP broker URL for offer events (empty disables publishing)")
	flag.StringVar(&cfg.EventsExchange, "x", "ecocash.offers", "Topic exchange for offer events")
	flag.StringVar(&cfg.LogLevel, "l", "info", "Log level")
	flag.DurationVar(&cfg.DigestInterval, "i", 30*time.Second, "Marketplace digest logging interval")

	flag.Parse()

	if envVarAddr := os.Getenv("RUN_ADDRESS"); envVarAddr != "" {
		cfg.Address = envVarAddr
	}

	if envVarAMQP := os.Getenv("AMQP_URL"); envVarAMQP != "" {
		cfg.AMQPURL = envVarAMQP
	}

	if envVarExch := os.Getenv("EVENTS_EXCHANGE"); envVarExch != "" {
		cfg.EventsExchange = envVarExch
	}

	if envVarLevel := os.Getenv("LOG_LEVEL"); envVarLevel != "" {
		cfg.LogLevel = envVarLevel
	}

	if envVarDigest := os.Getenv("DIGEST_INTERVAL"); envVarDigest != "" {
		if d, err := time.ParseDuration(envVarDigest); err == nil {
			cfg.DigestInterval = d
		}
	}
	return cfg.check()
}
