package logger

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/minglun/v32/backend/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		wantLevel zerolog.Level
	}{
		{
			name: "debug level",
			cfg: &config.Config{
				Env:       "development",
				LogLevel:  "debug",
				LogFormat: "json",
			},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name: "info level",
			cfg: &config.Config{
				Env:       "production",
				LogLevel:  "info",
				LogFormat: "json",
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name: "console format",
			cfg: &config.Config{
				Env:       "development",
				LogLevel:  "warn",
				LogFormat: "console",
			},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name: "unknown level falls back to info",
			cfg: &config.Config{
				Env:       "development",
				LogLevel:  "loud",
				LogFormat: "json",
			},
			wantLevel: zerolog.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.cfg)
			if log == nil {
				t.Fatal("New() returned nil")
			}
			if got := zerolog.GlobalLevel(); got != tt.wantLevel {
				t.Errorf("global level = %v, want %v", got, tt.wantLevel)
			}
		})
	}
}

func TestWithField(t *testing.T) {
	log := New(&config.Config{Env: "development", LogLevel: "debug", LogFormat: "json"})

	child := log.WithField("symbol", "AAPL")
	if child == nil {
		t.Fatal("WithField returned nil")
	}
	if child == log {
		t.Error("WithField should return a new logger")
	}
}

func TestWithError(t *testing.T) {
	log := New(&config.Config{Env: "development", LogLevel: "debug", LogFormat: "json"})

	child := log.WithError(errors.New("boom"))
	if child == nil {
		t.Fatal("WithError returned nil")
	}
}
