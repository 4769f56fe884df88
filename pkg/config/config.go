package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Values come from an
// optional YAML file, then environment variables on top (a .env file
// is honored when present). Environment always wins so deployments
// can override a checked-in file without editing it.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Forecast  ForecastConfig  `yaml:"forecast"`
	LogLevel  string          `yaml:"log_level"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the host:port the API server binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PostgresConfig locates the remote booking store. An empty Host
// means no remote store is configured and the in-memory fallback is
// used instead.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// Enabled reports whether a remote store address was provided.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// DSN renders the pgx connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Name, p.SSLMode)
}

// RedisConfig locates the forecast cache. An empty Addr disables
// caching.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// LifecycleConfig controls the booking state machine.
type LifecycleConfig struct {
	DataDir      string        `yaml:"data_dir"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// ForecastConfig selects the smoothing strategy and projection
// growth used for demand series.
type ForecastConfig struct {
	Method       string        `yaml:"method"`
	Window       int           `yaml:"window"`
	Alpha        float64       `yaml:"alpha"`
	GrowthFactor float64       `yaml:"growth_factor"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// Load builds the configuration. path names an optional YAML file; an
// empty path skips the file layer entirely.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: read %s: %w", op, path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", op, path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Postgres: PostgresConfig{
			Port:    5432,
			SSLMode: "disable",
		},
		Lifecycle: LifecycleConfig{
			DataDir:      "/var/lib/marquee",
			TickInterval: 5 * time.Minute,
		},
		Forecast: ForecastConfig{
			Method:       "moving_average",
			Window:       3,
			Alpha:        0.5,
			GrowthFactor: 1.05,
			CacheTTL:     5 * time.Minute,
		},
		LogLevel: "info",
	}
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "MARQUEE_SERVER_HOST")
	if err := setInt(&cfg.Server.Port, "MARQUEE_SERVER_PORT"); err != nil {
		return err
	}

	setString(&cfg.Postgres.Host, "POSTGRES_HOST")
	if err := setInt(&cfg.Postgres.Port, "POSTGRES_PORT"); err != nil {
		return err
	}
	setString(&cfg.Postgres.User, "POSTGRES_USER")
	setString(&cfg.Postgres.Password, "POSTGRES_PASSWORD")
	setString(&cfg.Postgres.Name, "POSTGRES_DB")
	setString(&cfg.Postgres.SSLMode, "POSTGRES_SSLMODE")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	if err := setInt(&cfg.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}

	setString(&cfg.Lifecycle.DataDir, "MARQUEE_DATA_DIR")
	if err := setDuration(&cfg.Lifecycle.TickInterval, "MARQUEE_TICK_INTERVAL"); err != nil {
		return err
	}

	setString(&cfg.Forecast.Method, "MARQUEE_FORECAST_METHOD")
	if err := setInt(&cfg.Forecast.Window, "MARQUEE_FORECAST_WINDOW"); err != nil {
		return err
	}
	if err := setFloat(&cfg.Forecast.Alpha, "MARQUEE_FORECAST_ALPHA"); err != nil {
		return err
	}
	if err := setFloat(&cfg.Forecast.GrowthFactor, "MARQUEE_FORECAST_GROWTH"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Forecast.CacheTTL, "MARQUEE_FORECAST_CACHE_TTL"); err != nil {
		return err
	}

	setString(&cfg.LogLevel, "MARQUEE_LOG_LEVEL")
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Lifecycle.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.Lifecycle.TickInterval)
	}
	if c.Forecast.Window < 1 {
		return fmt.Errorf("forecast window must be at least 1, got %d", c.Forecast.Window)
	}
	if c.Forecast.Alpha <= 0 || c.Forecast.Alpha > 1 {
		return fmt.Errorf("forecast alpha must be in (0, 1], got %g", c.Forecast.Alpha)
	}
	if c.Forecast.GrowthFactor <= 0 {
		return fmt.Errorf("forecast growth factor must be positive, got %g", c.Forecast.GrowthFactor)
	}
	if c.Postgres.Enabled() && (c.Postgres.User == "" || c.Postgres.Name == "") {
		return fmt.Errorf("postgres host set but user or database name missing")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = f
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
