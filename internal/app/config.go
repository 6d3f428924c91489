package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/bloglist-backend/internal/cache"
	"github.com/yungbote/bloglist-backend/internal/data/db"
	"github.com/yungbote/bloglist-backend/internal/observability"
	"github.com/yungbote/bloglist-backend/internal/platform/envutil"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

const defaultJWTSecret = "defaultsecret"

type Config struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	DB db.Config `yaml:"db"`

	JWTSecretKey   string        `yaml:"jwt_secret_key"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
	BcryptCost     int           `yaml:"bcrypt_cost"`

	Redis              cache.RedisConfig        `yaml:"redis"`
	CORSAllowedOrigins []string                 `yaml:"cors_allowed_origins"`
	MetricsEnabled     bool                     `yaml:"metrics_enabled"`
	Otel               observability.OtelConfig `yaml:"otel"`
}

func defaultConfig() Config {
	return Config{
		Port:            "3003",
		ShutdownTimeout: 10 * time.Second,
		DB: db.Config{
			Driver: db.DriverPostgres,
			Postgres: db.PostgresConfig{
				Host:    "localhost",
				Port:    "5432",
				User:    "postgres",
				Name:    "bloglist",
				SSLMode: "disable",
			},
			SQLite: db.SQLiteConfig{Path: "bloglist.db"},
		},
		JWTSecretKey:   defaultJWTSecret,
		AccessTokenTTL: time.Hour,
		BcryptCost:     10,
		Redis:          cache.RedisConfig{TTL: 5 * time.Minute},
		Otel:           observability.OtelConfig{ServiceName: "bloglist", SampleRatio: 0.1},
	}
}

// LoadConfig starts from built-in defaults, applies the YAML file named by
// CONFIG_FILE when set, then lets environment variables override both.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()

	if path := envutil.String("CONFIG_FILE", "", log); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envutil.String("PORT", cfg.Port, log)
	cfg.ShutdownTimeout = envutil.Seconds("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout, log)

	cfg.DB.Driver = envutil.String("DB_DRIVER", cfg.DB.Driver, log)
	cfg.DB.Postgres.Host = envutil.String("POSTGRES_HOST", cfg.DB.Postgres.Host, log)
	cfg.DB.Postgres.Port = envutil.String("POSTGRES_PORT", cfg.DB.Postgres.Port, log)
	cfg.DB.Postgres.User = envutil.String("POSTGRES_USER", cfg.DB.Postgres.User, log)
	cfg.DB.Postgres.Password = envutil.String("POSTGRES_PASSWORD", cfg.DB.Postgres.Password, log)
	cfg.DB.Postgres.Name = envutil.String("POSTGRES_NAME", cfg.DB.Postgres.Name, log)
	cfg.DB.Postgres.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.DB.Postgres.SSLMode, log)
	cfg.DB.SQLite.Path = envutil.String("SQLITE_PATH", cfg.DB.SQLite.Path, log)

	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey, log)
	cfg.AccessTokenTTL = envutil.Seconds("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL, log)
	cfg.BcryptCost = envutil.Int("BCRYPT_COST", cfg.BcryptCost, log)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr, log)
	cfg.Redis.TTL = envutil.Seconds("STATS_CACHE_TTL", cfg.Redis.TTL, log)
	cfg.CORSAllowedOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins, log)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled, log)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled, log)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName, log)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment, log)
	cfg.Otel.Version = envutil.String("OTEL_SERVICE_VERSION", cfg.Otel.Version, log)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint, log)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure, log)
	if raw := envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log); raw != "" {
		cfg.Otel.Headers = observability.ParseHeaders(raw)
	}
	if raw := envutil.String("OTEL_SAMPLER_RATIO", "", log); raw != "" {
		if ratio, err := strconv.ParseFloat(raw, 64); err == nil {
			cfg.Otel.SampleRatio = ratio
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecretKey == defaultJWTSecret && log != nil {
		log.Warn("JWT_SECRET_KEY not set, using the built-in development secret")
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("config: port is required")
	}
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("config: jwt secret key is required")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("config: access token ttl must be positive")
	}
	switch strings.ToLower(c.DB.Driver) {
	case "", db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported db driver %q", c.DB.Driver)
	}
	return nil
}
