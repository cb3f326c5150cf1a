package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config stores service settings.
type Config struct {
	Port             int           `yaml:"port"`
	DB               DB            `yaml:"db"`
	Redis            Redis         `yaml:"redis"`
	Auth             Auth          `yaml:"auth"`
	Kafka            Kafka         `yaml:"kafka"`
	CORS             CORS          `yaml:"cors"`
	Log              Log           `yaml:"log"`
	RateLimit        RateLimit     `yaml:"rate_limit"`
	Pprof            Pprof         `yaml:"pprof"`
	OperationTimeout time.Duration `yaml:"operation_timeout"`
}

// DB holds PostgreSQL connection settings for the account store.
type DB struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
	Name string `yaml:"name"`
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Redis holds pickup store settings.
type Redis struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// Auth holds the shared secret used to verify identity tokens.
type Auth struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// Kafka holds pickup event settings.
type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

// CORS holds cross-origin settings.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Log selects the logging backend.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// RateLimit configures per-caller request limiting. Backend is "memory"
// (one token bucket per key in this process) or "redis" (a fixed window
// shared by every replica).
type RateLimit struct {
	Enabled    bool          `yaml:"enabled"`
	Backend    string        `yaml:"backend"`
	Rate       float64       `yaml:"rate"`
	Burst      int           `yaml:"burst"`
	TTL        time.Duration `yaml:"ttl"`
	MaxBuckets int           `yaml:"max_buckets"`
}

// Pprof configures the debug profiling listener. Empty Addr disables it.
type Pprof struct {
	Addr string `yaml:"addr"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
}

// Load reads configuration in order: .env (if present) → YAML file named by
// CONFIG_FILE → environment → command-line flags.
func Load() (*Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs is Load with explicit command-line arguments.
func LoadArgs(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := defaults()

	flags := pflag.NewFlagSet("service-pickup", pflag.ContinueOnError)
	configFile := flags.String("config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	port := flags.IntP("port", "p", 0, "port to listen on")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn, error")
	redisAddr := flags.String("redis-addr", "", "redis address host:port")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if *configFile != "" {
		if err := loadYAML(*configFile, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if flags.Changed("port") {
		cfg.Port = *port
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr = *redisAddr
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}

	setString(&cfg.DB.Host, "POSTGRES_HOST")
	setString(&cfg.DB.Port, "POSTGRES_PORT")
	setString(&cfg.DB.User, "POSTGRES_USER")
	setString(&cfg.DB.Pass, "POSTGRES_PASSWORD")
	setString(&cfg.DB.Name, "POSTGRES_DB")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Redis.KeyPrefix, "REDIS_KEY_PREFIX")
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.Redis.DB = n
	}

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")

	setList(&cfg.Kafka.Brokers, "KAFKA_BROKERS")
	setString(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	setString(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")

	setList(&cfg.CORS.AllowedOrigins, "CORS_ALLOWED_ORIGINS")

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	setString(&cfg.Log.File, "LOG_FILE")

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_ENABLED %q: %w", v, err)
		}
		cfg.RateLimit.Enabled = b
	}
	setString(&cfg.RateLimit.Backend, "RATE_LIMIT_BACKEND")
	if v := os.Getenv("RATE_LIMIT_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RATE %q: %w", v, err)
		}
		cfg.RateLimit.Rate = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		cfg.RateLimit.Burst = n
	}

	setString(&cfg.Pprof.Addr, "PPROF_ADDR")
	setString(&cfg.Pprof.User, "PPROF_USER")
	setString(&cfg.Pprof.Pass, "PPROF_PASSWORD")

	if v := os.Getenv("OPERATION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid OPERATION_TIMEOUT %q: %w", v, err)
		}
		cfg.OperationTimeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid postgres port: %q", c.DB.Port)
	}
	if strings.TrimSpace(c.Redis.Addr) == "" {
		return errors.New("redis address is required")
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("invalid operation timeout: %s", c.OperationTimeout)
	}
	if c.RateLimit.Enabled {
		switch c.RateLimit.Backend {
		case RateLimitMemory, RateLimitRedis:
		default:
			return fmt.Errorf("invalid rate limit backend: %q", c.RateLimit.Backend)
		}
		if c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0 {
			return fmt.Errorf("invalid rate limit: rate %v burst %d", c.RateLimit.Rate, c.RateLimit.Burst)
		}
	}
	return nil
}
