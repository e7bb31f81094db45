package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.InDelta(t, 0.8, cfg.LLM.Content.Temperature, 0.0001)
	assert.Equal(t, 2000, cfg.LLM.Content.MaxTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Chat.Temperature, 0.0001)
	assert.Equal(t, 1000, cfg.LLM.Chat.MaxTokens)
	assert.False(t, cfg.LLM.PreferExternal)
	assert.Equal(t, time.Hour, cfg.MinIO.URLExpiry)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8081"
  mode: "debug"
llm:
  model: "gpt-4o-mini"
  prefer_external: true
  timeout: 10s
rate_limit:
  per_minute: 5
kafka:
  brokers: "localhost:9092"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.True(t, cfg.LLM.PreferExternal)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
	assert.EqualValues(t, 5, cfg.RateLimit.PerMinute)
	assert.Equal(t, "localhost:9092", cfg.Kafka.Brokers)
	assert.Equal(t, "kreatiq.events", cfg.Kafka.Topic)
}

func TestOptionalDependenciesFromEnv(t *testing.T) {
	t.Setenv("KREATIQ_REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("KREATIQ_RATE_LIMIT_PER_MINUTE", "12")
	t.Setenv("KREATIQ_KAFKA_BROKERS", "kafka:9092")
	t.Setenv("KREATIQ_MINIO_ENDPOINT", "minio:9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.EqualValues(t, 12, cfg.RateLimit.PerMinute)
	assert.Equal(t, "kafka:9092", cfg.Kafka.Brokers)
	assert.Equal(t, "minio:9000", cfg.MinIO.Endpoint)
}

func TestLoadDefaultsLeavesOptionalDependenciesOff(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Zero(t, cfg.RateLimit.PerMinute)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Empty(t, cfg.MinIO.Endpoint)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestTrustedProxiesFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  trusted_proxies: ["10.0.0.0/8", "127.0.0.1"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.Server.TrustedProxies)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOpenAIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-live")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-live", cfg.LLM.APIKey)
	assert.True(t, cfg.LLM.Configured())
}

func TestLLMConfigured(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"empty", "", false},
		{"blank", "   ", false},
		{"placeholder", PlaceholderAPIKey, false},
		{"real", "sk-abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LLMConfig{APIKey: tt.key}.Configured())
		})
	}
}
