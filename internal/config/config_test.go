package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("JWT_ACCESS_EXPIRY", "")

	cfg := Load()

	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "secret", cfg.AdminPassword)
	assert.Equal(t, 5, cfg.CreateRateLimit)
	assert.Equal(t, time.Hour, cfg.JWTAccessExpiry)
	assert.Equal(t, "profile.events", cfg.KafkaTopic)
	assert.Nil(t, cfg.KafkaBrokers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")
	t.Setenv("CREATE_RATE_LIMIT", "10")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("JWT_ACCESS_EXPIRY", "15m")

	cfg := Load()

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 10, cfg.CreateRateLimit)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5433", DBSSLMode: "require"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC", cfg.DSN())
}
