package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "sharing_db", cfg.DBConfig.DBName)
	assert.False(t, cfg.KafkaConfig.Enabled())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SHARING_SERVICE_PORT", "9090")
	t.Setenv("SHARING_DB_HOST", "db.internal")
	t.Setenv("SHARING_KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SHARING_HTTP_READ_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "db.internal", cfg.DBConfig.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
	assert.True(t, cfg.KafkaConfig.Enabled())
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
}
