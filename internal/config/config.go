package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr         string `env:"BACKEND_ADDR"`
	Port         string `env:"PORT"`
	DatabasePath string `env:"DATABASE_PATH"`

	AppEnv                string   `env:"APP_ENV" envDefault:"development"`
	WSAllowedOrigins      []string `env:"WS_ALLOWED_ORIGINS" envSeparator:","`
	DevWebSocketsAllowAll bool     `env:"DEV_WEBSOCKETS_ALLOW_ALL"`

	// MaxHandSize caps hands accepted by the API; it is clamped to cribbage.MaxHandSize.
	MaxHandSize  int   `env:"MAX_HAND_SIZE" envDefault:"6"`
	HistoryLimit int64 `env:"HISTORY_LIMIT" envDefault:"50"`
}

func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return finalize(cfg)
}

func finalize(cfg Config) (Config, error) {
	cfg.AppEnv = strings.TrimSpace(cfg.AppEnv)
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}

	origins := cfg.WSAllowedOrigins[:0]
	for _, p := range cfg.WSAllowedOrigins {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	cfg.WSAllowedOrigins = origins

	if cfg.MaxHandSize <= 0 {
		fmt.Fprintf(os.Stderr, "WARNING: invalid MAX_HAND_SIZE=%d, using default 6\n", cfg.MaxHandSize)
		cfg.MaxHandSize = 6
	}
	if cfg.HistoryLimit <= 0 || cfg.HistoryLimit > 200 {
		cfg.HistoryLimit = 50
	}

	var missing []string
	if cfg.DatabasePath == "" {
		missing = append(missing, "DATABASE_PATH")
	}
	// BACKEND_ADDR is optional if PORT is set by the hosting environment.
	if cfg.Addr == "" {
		if port := strings.TrimSpace(cfg.Port); port != "" {
			// If PORT is a bare port, accept ":<port>". If it already includes host, keep it.
			if strings.Contains(port, ":") {
				cfg.Addr = port
			} else {
				cfg.Addr = ":" + port
			}
		}
	}
	if cfg.Addr == "" {
		missing = append(missing, "BACKEND_ADDR (or PORT)")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing/invalid env: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
