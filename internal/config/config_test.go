package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backup.File != DefaultBackupFile {
		t.Errorf("Expected backup file %q, got %q", DefaultBackupFile, cfg.Backup.File)
	}
	if cfg.Seed.Endpoint != "http://localhost:3030/api/v1/create-account" {
		t.Errorf("Unexpected seed endpoint %q", cfg.Seed.Endpoint)
	}
	if cfg.Seed.From != 3 || cfg.Seed.To != 100 {
		t.Errorf("Expected seed range 3..100, got %d..%d", cfg.Seed.From, cfg.Seed.To)
	}
	if cfg.Seed.Password != "user2747" {
		t.Errorf("Unexpected seed password %q", cfg.Seed.Password)
	}
	if cfg.Seed.Timeout != 0 {
		t.Errorf("Expected no client timeout by default, got %v", cfg.Seed.Timeout)
	}
	if cfg.Sync.BatchSize != 500 {
		t.Errorf("Expected batch size 500, got %d", cfg.Sync.BatchSize)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BACKUP_FILE", "/tmp/other.json")
	t.Setenv("SEED_FROM", "10")
	t.Setenv("SEED_TO", "12")
	t.Setenv("SEED_TIMEOUT", "5s")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backup.File != "/tmp/other.json" {
		t.Errorf("Expected file from env, got %q", cfg.Backup.File)
	}
	if cfg.Seed.From != 10 || cfg.Seed.To != 12 {
		t.Errorf("Expected range 10..12, got %d..%d", cfg.Seed.From, cfg.Seed.To)
	}
	if cfg.Seed.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.Seed.Timeout)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Expected db host from env, got %q", cfg.Database.Host)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected debug log level, got %q", cfg.Log.Level)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SEED_TO", "50")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("to", 0, "")
	flags.String("file", "", "")
	if err := flags.Parse([]string{"--to", "20"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Seed.To != 20 {
		t.Errorf("Expected flag to win over env, got %d", cfg.Seed.To)
	}
	// unset flag must not clobber the default
	if cfg.Backup.File != DefaultBackupFile {
		t.Errorf("Expected default file, got %q", cfg.Backup.File)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty file", mutate: func(c *Config) { c.Backup.File = "" }, wantErr: true},
		{name: "inverted range", mutate: func(c *Config) { c.Seed.From = 10; c.Seed.To = 5 }, wantErr: true},
		{name: "email format without index", mutate: func(c *Config) { c.Seed.EmailFormat = "user@gmail.com" }, wantErr: true},
		{name: "zero batch size", mutate: func(c *Config) { c.Sync.BatchSize = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Backup: BackupConfig{File: "backup.json"},
				Seed:   SeedConfig{Endpoint: "http://localhost", From: 3, To: 100, EmailFormat: "user%d@gmail.com"},
				Sync:   SyncConfig{BatchSize: 100},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=h port=1 user=u password=p dbname=n sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
