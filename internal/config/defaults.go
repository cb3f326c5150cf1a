package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultRedis = Redis{
	Addr:      "127.0.0.1:6379",
	KeyPrefix: "pickup",
}

var defaultKafka = Kafka{
	Topic:   "pickup-events",
	GroupID: "pickup-audit",
}

var defaultLog = Log{
	Level:  "info",
	Format: "json",
}

const defaultOperationTimeout = 3 * time.Second

// Rate limit backends.
const (
	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
)

var defaultRateLimit = RateLimit{
	Backend:    RateLimitMemory,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 100000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultRedis returns the default Redis settings.
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultKafka returns the default Kafka settings. No brokers means events are
// not published.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultOperationTimeout returns the default per-operation store timeout.
func DefaultOperationTimeout() time.Duration {
	return defaultOperationTimeout
}

// DefaultRateLimit returns the default rate limit settings. Limiting is
// disabled unless enabled explicitly.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

func defaults() Config {
	return Config{
		Port:             defaultPort,
		DB:               defaultDB,
		Redis:            defaultRedis,
		Kafka:            defaultKafka,
		CORS:             CORS{AllowedOrigins: []string{"*"}},
		Log:              defaultLog,
		RateLimit:        defaultRateLimit,
		OperationTimeout: defaultOperationTimeout,
	}
}
