package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=5000"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	JWTSecret       string        `env:"JWT_SECRET,       required"`
	TokenTTL        time.Duration `env:"TOKEN_TTL,        default=1h"`
	APIPrefix       string        `env:"API_PREFIX,       default=/api"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,     default=*"`
	QRSize          int           `env:"QR_SIZE,          default=256"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	ActivityWorkers int           `env:"ACTIVITY_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI,          default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,           default=event_registration"`
	// Transactions requires a replica set.
	Transactions bool `env:"MONGO_TRANSACTIONS, default=false"`
}

// RedisConfig configures the optional registration lock. An empty Addr
// disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	LockTTL  time.Duration `env:"REDIS_LOCK_TTL, default=30s"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("config: API_PREFIX must start with '/', got %q", c.APIPrefix)
	}
	c.APIPrefix = strings.TrimRight(c.APIPrefix, "/")
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive")
	}
	if c.QRSize < 64 {
		return fmt.Errorf("config: QR_SIZE must be at least 64, got %d", c.QRSize)
	}
	return nil
}
