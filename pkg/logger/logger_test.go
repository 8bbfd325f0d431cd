package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/wonpil/sentrev/pkg/config"
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
			name: "warn level",
			cfg: &config.Config{
				Env:       "staging",
				LogLevel:  "warn",
				LogFormat: "json",
			},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name: "console format",
			cfg: &config.Config{
				Env:       "development",
				LogLevel:  "error",
				LogFormat: "console",
			},
			wantLevel: zerolog.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.cfg)
			if logger == nil {
				t.Fatal("Expected logger to be created")
			}

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("Expected global level %v, got %v", tt.wantLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"INFO", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	cfg := &config.Config{Env: "test", LogLevel: "debug", LogFormat: "json"}
	base := New(cfg)

	derived := base.WithFields(map[string]interface{}{
		"run_id": "r-001",
		"stage":  "factors",
	})
	if derived == nil {
		t.Fatal("Expected derived logger")
	}
	if derived == base {
		t.Error("WithFields should return a new logger instance")
	}
}

func TestDomainTags(t *testing.T) {
	cfg := &config.Config{Env: "test", LogLevel: "debug", LogFormat: "json"}
	base := New(cfg)

	derived := base.WithRunID("run_20260302_110000").WithStage("S4").WithSymbol("AAPL")
	if derived == nil {
		t.Fatal("Expected derived logger")
	}
	if derived == base {
		t.Error("Domain tag helpers should return a new logger instance")
	}
}

func TestWithError(t *testing.T) {
	cfg := &config.Config{Env: "test", LogLevel: "debug", LogFormat: "json"}
	base := New(cfg)

	derived := base.WithError(nil)
	if derived == nil {
		t.Fatal("Expected derived logger")
	}
}
