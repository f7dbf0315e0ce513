package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("BKAP_ADDR", "")
	t.Setenv("DATABASE_URL", "")

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "edd_sample_license_status", cfg.License.StatusOption)
	assert.Equal(t, "woocommerce-booking", cfg.License.TextDomain)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("BKAP_ADDR", ":9090")
	t.Setenv("BKAP_LOCALE", "de_DE")
	t.Setenv("BKAP_REQUEST_TIMEOUT", "5s")
	t.Setenv("REDIS_POOL_SIZE", "40")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "de_DE", cfg.License.Locale)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 40, cfg.Redis.PoolSize)
	assert.Equal(t, "kafka-1:9092,kafka-2:9092", cfg.Kafka.Brokers)
}

func TestFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("BKAP_SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("DATABASE_MAX_IDLE_CONNS", "-3")

	cfg := FromEnv()

	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
}
