package config

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("expected :3000, got %q", cfg.Addr)
	}
	if cfg.MatchmakingInterval != time.Second {
		t.Errorf("expected 1s, got %s", cfg.MatchmakingInterval)
	}
	if cfg.Origins() != "http://localhost:5173" {
		t.Errorf("unexpected origins %q", cfg.Origins())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHESSVAR_ADDR", ":8080")
	t.Setenv("CHESSVAR_ALLOW_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("CHESSVAR_MATCHMAKING_INTERVAL", "250ms")
	t.Setenv("CHESSVAR_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.MatchmakingInterval != 250*time.Millisecond {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.AllowOrigins) != 2 || cfg.Origins() != "http://a.test, http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.AllowOrigins)
	}
	if level, _ := ParseLogLevel(cfg.LogLevel); level != log.LevelDebug {
		t.Fatalf("expected debug level, got %v", level)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"zero interval", "CHESSVAR_MATCHMAKING_INTERVAL", "0s"},
		{"unparsable interval", "CHESSVAR_MATCHMAKING_INTERVAL", "soon"},
		{"negative buffer", "CHESSVAR_WS_BUFFER_SIZE", "-1"},
		{"unknown level", "CHESSVAR_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
