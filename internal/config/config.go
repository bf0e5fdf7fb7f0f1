// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr                string        `env:"CHESSVAR_ADDR" envDefault:":3000"`
	AllowOrigins        []string      `env:"CHESSVAR_ALLOW_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	MatchmakingInterval time.Duration `env:"CHESSVAR_MATCHMAKING_INTERVAL" envDefault:"1s"`
	WSBufferSize        int           `env:"CHESSVAR_WS_BUFFER_SIZE" envDefault:"1024"`
	LogLevel            string        `env:"CHESSVAR_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MatchmakingInterval <= 0 {
		return Config{}, fmt.Errorf("matchmaking interval must be positive, got %s", cfg.MatchmakingInterval)
	}
	if cfg.WSBufferSize <= 0 {
		return Config{}, fmt.Errorf("websocket buffer size must be positive, got %d", cfg.WSBufferSize)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Origins joins AllowOrigins the way the CORS middleware expects.
func (c Config) Origins() string {
	return strings.Join(c.AllowOrigins, ", ")
}

func ParseLogLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
