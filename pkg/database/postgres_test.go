package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/wonpil/sentrev/pkg/config"
)

func TestNew(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		t.Errorf("Failed to ping database: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := db.HealthCheck(ctx)
	if err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
	if !status.Healthy {
		t.Error("Expected healthy status")
	}
	if status.Stats.MaxConns == 0 {
		t.Error("Expected pool stats to be populated")
	}
}

func TestNewPoolConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.URL = "postgres://sentrev:pw@localhost:5432/sentrev"
	cfg.Database.MaxConns = 8
	cfg.Database.MinConns = 2
	cfg.Database.MaxConnLifetime = time.Hour
	cfg.Database.MaxConnIdleTime = 30 * time.Minute

	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		t.Fatalf("newPoolConfig() error = %v", err)
	}

	if poolConfig.MaxConns != 8 || poolConfig.MinConns != 2 {
		t.Errorf("pool limits = %d/%d, want 8/2", poolConfig.MaxConns, poolConfig.MinConns)
	}

	params := poolConfig.ConnConfig.RuntimeParams
	if params["application_name"] != "sentrev" {
		t.Errorf("application_name = %q, want %q", params["application_name"], "sentrev")
	}
	if params["timezone"] != "UTC" {
		t.Errorf("timezone = %q, want UTC", params["timezone"])
	}
	if params["statement_timeout"] != "30000" {
		t.Errorf("statement_timeout = %q, want 30000", params["statement_timeout"])
	}
}

func TestNewInvalidURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.URL = "not-a-valid-url\x00"

	if _, err := New(cfg); err == nil {
		t.Error("Expected error for invalid database URL")
	}
}
