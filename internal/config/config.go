package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// DatabaseConfig describes the readings store connection. URL, when set,
// overrides the discrete fields entirely (lib/pq accepts both forms).
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// DSN returns the lib/pq connection string.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Config is the hivewatch configuration, loaded from the environment with an
// optional .env file for local development.
type Config struct {
	HTTP struct {
		Addr string
	}

	// Env is the deployment mode: "development" or "production". Production
	// requires TLS toward the store; development defaults to sslmode=disable.
	Env string

	// DBEnabled=false swaps the Postgres store for the in-memory one, for
	// local development without a database.
	DBEnabled bool
	Database  DatabaseConfig

	// Redis is the optional latest-reading cache; empty Addr disables it.
	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	// MQTT is the optional device ingestion bridge; empty Broker disables it.
	MQTT struct {
		Broker   string
		ClientID string
		Username string
		Password string
		Topic    string
		QoS      byte
	}

	// Dashboard configures the hivewatch-dashboard client binary.
	Dashboard struct {
		APIBase      string
		PollInterval time.Duration
		View         string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from the environment. A missing .env file is fine.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.Env = getEnv("APP_ENV", "development")

	sslDefault := "disable"
	if cfg.Env == "production" {
		sslDefault = "require"
	}
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "hivewatch")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", sslDefault)
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.MQTT.Broker = os.Getenv("MQTT_BROKER")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "hivewatch-ingest-"+uuid.NewString()[:8])
	cfg.MQTT.Username = os.Getenv("MQTT_USERNAME")
	cfg.MQTT.Password = os.Getenv("MQTT_PASSWORD")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "hive/+/data")
	cfg.MQTT.QoS = byte(parseInt(getEnv("MQTT_QOS", "1"), 1))

	cfg.Dashboard.APIBase = getEnv("DASH_API_BASE", "http://localhost:8080")
	cfg.Dashboard.PollInterval = parseDuration(getEnv("DASH_POLL_INTERVAL", "5s"), 5*time.Second)
	cfg.Dashboard.View = getEnv("DASH_VIEW", "overview")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(s); err == nil && v > 0 {
		return v
	}
	return def
}
