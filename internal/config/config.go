package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultBackupFile is the backup document the editor opens when nothing else is configured
const DefaultBackupFile = "backup_2025-07-31T06-12-48-777Z.json"

// Config holds all application configuration
type Config struct {
	// Backup document settings for the editor
	Backup BackupConfig

	// Seed generator settings
	Seed SeedConfig

	// HTTP server configuration (account stub)
	Server ServerConfig

	// Database configuration (backup sync)
	Database DatabaseConfig

	// Dump/restore settings
	Sync SyncConfig

	// Logging configuration
	Log LogConfig
}

// BackupConfig holds backup document settings
type BackupConfig struct {
	File         string
	KeepPrevious bool
}

// SeedConfig holds seed generator settings
type SeedConfig struct {
	Endpoint    string
	From        int
	To          int
	Password    string
	EmailFormat string
	Timeout     time.Duration // zero means no client timeout
	RandomSeed  uint64        // zero means a random seed
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// SyncConfig holds dump/restore settings
type SyncConfig struct {
	BatchSize      int
	OutputDir      string
	MigrationsPath string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// flagKeys maps command-line flag names to config keys.
// Only flags a command actually defines are bound.
var flagKeys = map[string]string{
	"file":          "backup.file",
	"keep-previous": "backup.keep_previous",
	"endpoint":      "seed.endpoint",
	"from":          "seed.from",
	"to":            "seed.to",
	"password":      "seed.password",
	"email-format":  "seed.email_format",
	"timeout":       "seed.timeout",
	"random-seed":   "seed.random_seed",
	"port":          "port",
	"batch-size":    "sync.batch_size",
	"output-dir":    "sync.output_dir",
	"migrations":    "migrations_path",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backup.file", DefaultBackupFile)
	v.SetDefault("backup.keep_previous", false)

	v.SetDefault("seed.endpoint", "http://localhost:3030/api/v1/create-account")
	v.SetDefault("seed.from", 3)
	v.SetDefault("seed.to", 100)
	v.SetDefault("seed.password", "user2747")
	v.SetDefault("seed.email_format", "user%d@gmail.com")
	v.SetDefault("seed.timeout", time.Duration(0))
	v.SetDefault("seed.random_seed", uint64(0))

	v.SetDefault("port", "3030")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "shop")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 2)
	v.SetDefault("db.max_lifetime", 5*time.Minute)

	v.SetDefault("sync.batch_size", 500)
	v.SetDefault("sync.output_dir", ".")
	v.SetDefault("migrations_path", "./migrations")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "pretty")
}

// Load reads configuration from defaults, environment variables and,
// when flags is non-nil, any flags the caller set explicitly.
// Environment names follow the key with dots replaced: seed.from -> SEED_FROM.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		Backup: BackupConfig{
			File:         v.GetString("backup.file"),
			KeepPrevious: v.GetBool("backup.keep_previous"),
		},
		Seed: SeedConfig{
			Endpoint:    v.GetString("seed.endpoint"),
			From:        v.GetInt("seed.from"),
			To:          v.GetInt("seed.to"),
			Password:    v.GetString("seed.password"),
			EmailFormat: v.GetString("seed.email_format"),
			Timeout:     v.GetDuration("seed.timeout"),
			RandomSeed:  v.GetUint64("seed.random_seed"),
		},
		Server: ServerConfig{
			Port:            v.GetString("port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("db.host"),
			Port:         v.GetString("db.port"),
			User:         v.GetString("db.user"),
			Password:     v.GetString("db.password"),
			Name:         v.GetString("db.name"),
			SSLMode:      v.GetString("db.sslmode"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
			MaxIdleConns: v.GetInt("db.max_idle_conns"),
			MaxLifetime:  v.GetDuration("db.max_lifetime"),
		},
		Sync: SyncConfig{
			BatchSize:      v.GetInt("sync.batch_size"),
			OutputDir:      v.GetString("sync.output_dir"),
			MigrationsPath: v.GetString("migrations_path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Backup.File == "" {
		return fmt.Errorf("BACKUP_FILE is required")
	}
	if c.Seed.Endpoint == "" {
		return fmt.Errorf("SEED_ENDPOINT is required")
	}
	if c.Seed.From > c.Seed.To {
		return fmt.Errorf("SEED_FROM (%d) must not exceed SEED_TO (%d)", c.Seed.From, c.Seed.To)
	}
	if !strings.Contains(c.Seed.EmailFormat, "%d") {
		return fmt.Errorf("SEED_EMAIL_FORMAT must contain %%d")
	}
	if c.Sync.BatchSize <= 0 {
		return fmt.Errorf("SYNC_BATCH_SIZE must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
