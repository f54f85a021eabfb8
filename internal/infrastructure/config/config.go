package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Uploads UploadConfig
	Login   LoginConfig
	Audit   AuditConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sms"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	DB           int           `env:"REDIS_DB,       default=0"`
	Timeout      time.Duration `env:"REDIS_TIMEOUT,  default=2s"`
	MenuCacheTTL time.Duration `env:"MENU_CACHE_TTL, default=10m"`
}

type UploadConfig struct {
	Dir      string `env:"UPLOAD_DIR,       default=./uploads"`
	MaxBytes int64  `env:"MAX_UPLOAD_BYTES, default=20971520"`

	// Blobs without metadata older than OrphanMinAge are removed on
	// OrphanSweepSchedule (cron syntax).
	OrphanSweepSchedule string        `env:"ORPHAN_SWEEP_SCHEDULE, default=30 2 * * *"`
	OrphanMinAge        time.Duration `env:"ORPHAN_MIN_AGE,        default=1h"`
}

// LoginConfig throttles POST /login per client IP.
type LoginConfig struct {
	RatePerSecond float64 `env:"LOGIN_RATE_RPS,   default=1"`
	Burst         int     `env:"LOGIN_RATE_BURST, default=5"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Validate rejects settings the API cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.Uploads.MaxBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	if c.Login.RatePerSecond <= 0 || c.Login.Burst <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_RPS and LOGIN_RATE_BURST must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
