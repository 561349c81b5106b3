package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application-wide configuration tree.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Session  SessionConfig  `mapstructure:"session"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Log      LogConfig      `mapstructure:"log"`

	// Departments maps department codes from the workbook to display names.
	// Unknown codes fall back to the code itself.
	Departments map[string]string `mapstructure:"departments"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig holds Redis settings. Redis is optional: when disabled or
// unreachable the server runs with in-memory sessions and without upload
// rate limiting.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig controls ingestion-session retention.
type SessionConfig struct {
	// Store selects the session backend: "memory" or "redis".
	Store string `mapstructure:"store"`
	// TTL is how long an untouched session stays retrievable.
	TTL time.Duration `mapstructure:"ttl"`
	// MaxSessions bounds the in-memory store; creation beyond the bound
	// fails once expired sessions have been swept.
	MaxSessions int `mapstructure:"max_sessions"`
}

// UploadConfig bounds spreadsheet ingestion.
type UploadConfig struct {
	MaxRows      int   `mapstructure:"max_rows"`
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
	// RateLimit / RateWindow bound upload requests per client IP.
	RateLimit  int           `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`
}

// CatalogConfig controls the resource catalogs.
type CatalogConfig struct {
	// SeedTimeSlots creates the standard Monday-Friday slots on first start
	// when the time_slots table is empty.
	SeedTimeSlots bool `mapstructure:"seed_time_slots"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment.
// Precedence: environment variables > config file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "schedule_builder")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Europe/Tirane")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.store", "memory")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.max_sessions", 100)

	v.SetDefault("upload.max_rows", 2000)
	v.SetDefault("upload.max_body_bytes", int64(5<<20)) // 5MB
	v.SetDefault("upload.rate_limit", 10)
	v.SetDefault("upload.rate_window", "1m")

	v.SetDefault("catalog.seed_time_slots", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Display names for the faculty's known department codes.
	v.SetDefault("departments", map[string]string{
		"AEM": "Applied Economics and Management",
		"EK":  "Economics",
		"BF":  "Business Finance",
		"MXH": "Management and Human Resources",
		"Kon": "Accounting",
		"MK":  "Marketing",
	})

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment variables ──
	v.SetEnvPrefix("SCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// Missing file is fine: defaults plus environment apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config validation: server.port must be within 1-65535")
	}
	if c.Session.Store != "memory" && c.Session.Store != "redis" {
		return fmt.Errorf("config validation: session.store must be %q or %q", "memory", "redis")
	}
	if c.Session.Store == "redis" && !c.Redis.Enabled {
		return fmt.Errorf("config validation: session.store=redis requires redis.enabled=true")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config validation: session.ttl must be positive")
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("config validation: session.max_sessions must be positive")
	}
	if c.Upload.MaxRows <= 0 {
		return fmt.Errorf("config validation: upload.max_rows must be positive")
	}
	return nil
}
