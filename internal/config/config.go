package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"patio-slots/internal/common/config"
)

// KV backends accepted by SLOTS_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config is the patio-slots service configuration.
type Config struct {
	Database config.DatabaseConfig
	Redis    config.RedisConfig
	MQTT     config.MQTTConfig

	HTTP struct {
		Addr            string
		ShutdownTimeout int // seconds
	}

	Slots struct {
		Backend   string // memory | redis | postgres
		KeyPrefix string
	}

	Events struct {
		MQTTEnabled  bool
		TopicPrefix  string
		Stream       string // empty disables the Redis stream
		StreamMaxLen int64
	}

	// Backend is the fleet API serving the yard catalog. Empty BaseURL uses the built-in yards.
	Backend struct {
		BaseURL string
		Token   string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.User = "postgres"
	cfg.Database.Password = "postgres"
	cfg.Database.Database = "patio"
	cfg.Database.SSLMode = "disable"
	cfg.Database.LoadFromEnv("DB")

	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.MQTT.Broker = "tcp://localhost:1883"
	cfg.MQTT.ClientID = "patio-slots"
	cfg.MQTT.QoS = 1
	cfg.MQTT.LoadFromEnv("MQTT")

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.HTTP.ShutdownTimeout = getEnvInt("HTTP_SHUTDOWN_TIMEOUT", 10)

	cfg.Slots.Backend = strings.ToLower(getEnv("SLOTS_BACKEND", BackendMemory))
	cfg.Slots.KeyPrefix = getEnv("SLOT_KEY_PREFIX", "slots_")

	cfg.Events.MQTTEnabled = getEnv("EVENTS_MQTT_ENABLED", "false") == "true"
	cfg.Events.TopicPrefix = getEnv("EVENTS_MQTT_TOPIC_PREFIX", "patio")
	cfg.Events.Stream = getEnv("EVENTS_STREAM", "")
	cfg.Events.StreamMaxLen = int64(getEnvInt("EVENTS_STREAM_MAXLEN", 10000))

	cfg.Backend.BaseURL = getEnv("BACKEND_BASE_URL", "")
	cfg.Backend.Token = getEnv("BACKEND_TOKEN", "")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	switch cfg.Slots.Backend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return nil, fmt.Errorf("unsupported SLOTS_BACKEND %q", cfg.Slots.Backend)
	}

	return cfg, nil
}

// NeedsRedis reports whether a Redis connection must be opened.
func (c *Config) NeedsRedis() bool {
	return c.Slots.Backend == BackendRedis || c.Events.Stream != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}
