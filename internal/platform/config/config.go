package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	dErrors "gatekeeper/pkg/domain-errors"
)

// Config is the process configuration, read once at startup.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Telegram TelegramConfig
	Server   ServerConfig
	Redis    RedisConfig
	Audit    AuditConfig
	Limits   LimitsConfig
}

// TelegramConfig identifies the bot, its single administrator and the gated group.
type TelegramConfig struct {
	Token       string        `env:"BOT_TOKEN"`
	AdminID     int64         `env:"ADMIN_ID"`
	GroupID     int64         `env:"GROUP_ID"`
	PollTimeout time.Duration `env:"BOT_POLL_TIMEOUT" envDefault:"60s"`
}

// ServerConfig captures the admin HTTP surface.
type ServerConfig struct {
	Addr      string `env:"GATEKEEPER_ADDR" envDefault:":8000"`
	AdminUser string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPass string `env:"ADMIN_PASS" envDefault:"admin"`
}

// RedisConfig is optional; an empty URL keeps all state in process memory.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// AuditConfig selects extra audit sinks. The in-memory sink is always on.
type AuditConfig struct {
	DatabaseURL  string   `env:"AUDIT_DATABASE_URL"`
	KafkaBrokers []string `env:"AUDIT_KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"AUDIT_KAFKA_TOPIC" envDefault:"gatekeeper.audit"`
	// MemoryCapacity bounds the in-memory audit ring; older events live only in the mirrors.
	MemoryCapacity int `env:"AUDIT_MEMORY_CAPACITY" envDefault:"10000"`
}

// LimitsConfig holds the verification throttles.
type LimitsConfig struct {
	RequestsPerWindow int           `env:"RATE_LIMIT_REQUESTS" envDefault:"5"`
	RequestWindow     time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
	MaxAttempts       int           `env:"ATTEMPT_MAX_FAILURES" envDefault:"3"`
	LockoutWindow     time.Duration `env:"ATTEMPT_LOCKOUT_WINDOW" envDefault:"1h"`
}

// DefaultLimits returns the throttle values the bot has always used.
func DefaultLimits() LimitsConfig {
	return LimitsConfig{
		RequestsPerWindow: 5,
		RequestWindow:     60 * time.Second,
		MaxAttempts:       3,
		LockoutWindow:     time.Hour,
	}
}

// Load reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func Load(files ...string) (*Config, error) {
	// A missing .env is the normal production case.
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the bot cannot run with.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return dErrors.New(dErrors.CodeValidation, "BOT_TOKEN is required")
	}
	if c.Telegram.AdminID == 0 {
		return dErrors.New(dErrors.CodeValidation, "ADMIN_ID is required")
	}
	if c.Telegram.GroupID == 0 {
		return dErrors.New(dErrors.CodeValidation, "GROUP_ID is required")
	}
	if c.Limits.RequestsPerWindow <= 0 || c.Limits.MaxAttempts <= 0 {
		return dErrors.New(dErrors.CodeValidation, "limits must be positive")
	}
	if c.Limits.RequestWindow <= 0 || c.Limits.LockoutWindow <= 0 {
		return dErrors.New(dErrors.CodeValidation, "limit windows must be positive")
	}
	return nil
}
