package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != AppEnvDev {
		t.Fatalf("expected App.Env to default to development, got %q", cfg.App.Env)
	}
	if !cfg.App.IsDev() {
		t.Fatalf("expected IsDev for default env")
	}
	if cfg.DB.DSN != "file::memory:?cache=shared" {
		t.Fatalf("unexpected default DSN: %q", cfg.DB.DSN)
	}
	if cfg.DB.MaxOpenConns != 1 {
		t.Fatalf("expected single writer connection, got %d", cfg.DB.MaxOpenConns)
	}
	if !cfg.Seed.SampleData {
		t.Fatalf("expected sample data seeding to default on")
	}
	if cfg.Password.ArgonKeyLen != 32 {
		t.Fatalf("unexpected argon key len %d", cfg.Password.ArgonKeyLen)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvDBDSN, "file:scratch?mode=memory&cache=shared")
	t.Setenv(EnvSeed, "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Fatalf("expected production env, got %q", cfg.App.Env)
	}
	if cfg.DB.DSN != "file:scratch?mode=memory&cache=shared" {
		t.Fatalf("unexpected DSN %q", cfg.DB.DSN)
	}
	if cfg.Seed.SampleData {
		t.Fatalf("expected seeding disabled")
	}
}
