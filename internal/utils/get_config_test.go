package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
DB_HOST: localhost
JWT_SECRET: secret
REDIS_DB: "2"
CACHE_TTL_SECONDS: nope
KAFKA_BROKERS: "kafka-1:9092, ,kafka-2:9092"
`), 0o600))

	LoadConfigFrom(path)

	assert.Equal(t, "localhost", GetConfig("DB_HOST"))
	assert.Equal(t, "secret", os.Getenv("JWT_SECRET"))
	assert.Equal(t, 2, GetConfigInt("REDIS_DB", 0))
	assert.Equal(t, 300, GetConfigInt("CACHE_TTL_SECONDS", 300))
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, GetConfigList("KAFKA_BROKERS"))
	assert.Empty(t, GetConfig("UNKNOWN"))
}

func TestLoadConfigFromMissingFileKeepsPrevious(t *testing.T) {
	config = Config{DBHost: "db"}

	LoadConfigFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "db", GetConfig("DB_HOST"))
	assert.Nil(t, GetConfigList("KAFKA_BROKERS"))
}
