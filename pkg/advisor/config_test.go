package advisor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromReader(t *testing.T) {
	yaml := `
base_url: https://api.example.test/v1
api_key: sk-test
model: gpt-4o-mini
timeout: 15s
max_retries: 4
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test/v1", cfg.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.MaxRetries)
}

func TestLoadConfig_EnvExpansionAndOverride(t *testing.T) {
	t.Setenv("MY_KEY", "sk-from-env")
	cfg, err := LoadConfigFromReader(strings.NewReader(`
api_key: ${MY_KEY}
model: gpt-4o-mini
`))
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.APIKey)
	assert.Equal(t, defaultTimeout, cfg.Timeout)

	t.Setenv("ADVISOR_MODEL", "gpt-4o")
	cfg, err = LoadConfigFromReader(strings.NewReader(`
api_key: sk-test
model: gpt-4o-mini
`))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.Model, "ADVISOR_MODEL wins over yaml")
}

func TestLoadConfig_MissingRequirements(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("model: gpt-4o-mini"))
	assert.ErrorContains(t, err, "api_key")

	_, err = LoadConfigFromReader(strings.NewReader("api_key: sk-test"))
	assert.ErrorContains(t, err, "model")

	_, err = LoadConfigFromReader(strings.NewReader(`
api_key: sk-test
model: m
timeout: bogus
`))
	assert.ErrorContains(t, err, "timeout")
}

func TestNewClient_RequiresValidConfig(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)

	_, err = NewClient(&Config{Model: "m"})
	assert.Error(t, err)
}
