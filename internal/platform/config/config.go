package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Event sinks.
const (
	SinkLog   = "log"
	SinkKafka = "kafka"
	SinkSQS   = "sqs"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	DBDriver      string
	DatabaseURL   string
	SQLitePath    string
	EnableDBCheck bool
	MigrationsURL string

	JWTSecret string
	JWTIssuer string

	CORSAllowedOrigins []string
	RateLimit          string

	EventSink    string
	KafkaBrokers []string
	KafkaTopic   string
	SQSQueueURL  string
	AWSRegion    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "loot.db")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "loot-ledger-app")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("EVENT_SINK", SinkLog)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "loot-ledger-events")
	v.SetDefault("SQS_QUEUE_URL", "")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.AutomaticEnv()

	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		MigrationsURL:      "file://" + v.GetString("MIGRATIONS_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          v.GetString("RATE_LIMIT"),
		EventSink:          strings.ToLower(v.GetString("EVENT_SINK")),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:         v.GetString("KAFKA_TOPIC"),
		SQSQueueURL:        v.GetString("SQS_QUEUE_URL"),
		AWSRegion:          v.GetString("AWS_REGION"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required when DB_DRIVER is %q", DriverPostgres)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DB_DRIVER is %q", DriverSQLite)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.EventSink {
	case SinkLog:
	case SinkKafka:
		if len(c.KafkaBrokers) == 0 || c.KafkaTopic == "" {
			return fmt.Errorf("KAFKA_BROKERS and KAFKA_TOPIC are required when EVENT_SINK is %q", SinkKafka)
		}
	case SinkSQS:
		if c.SQSQueueURL == "" {
			return fmt.Errorf("SQS_QUEUE_URL is required when EVENT_SINK is %q", SinkSQS)
		}
	default:
		return fmt.Errorf("unsupported EVENT_SINK %q", c.EventSink)
	}

	if c.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		if c.IsProduction {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
