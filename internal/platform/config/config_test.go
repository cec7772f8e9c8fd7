package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_SQLiteWithLogSink(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("EVENT_SINK", "log")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("MIGRATIONS_PATH", "db/migrations")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, ":memory:", cfg.SQLitePath)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "file://db/migrations", cfg.MigrationsURL)
	assert.Equal(t, "100-M", cfg.RateLimit)
}

func TestLoadConfig_PostgresNeedsURL(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("PGSQL_URL", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "PGSQL_URL")
}

func TestLoadConfig_KafkaSink(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("EVENT_SINK", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_TOPIC", "events")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoadConfig_SQSNeedsQueue(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("EVENT_SINK", "sqs")
	t.Setenv("SQS_QUEUE_URL", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "SQS_QUEUE_URL")
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
