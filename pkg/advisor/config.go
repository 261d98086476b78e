// Package advisor backs the "talk it through" flow a caution recommendation
// suggests: a chat model reviews the setup and the mindset breakdown and
// replies with a short, grounded take. It is strictly optional; scoring never
// depends on it.
package advisor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"mindtrade-api/pkg/confkit"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 2

	envAPIKey  = "ADVISOR_API_KEY"
	envBaseURL = "ADVISOR_BASE_URL"
	envModel   = "ADVISOR_MODEL"
)

// Config holds runtime settings for the advisor client.
type Config struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Model      string        `yaml:"model"`
	Timeout    time.Duration `yaml:"-"`
	TimeoutRaw string        `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open advisor config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads advisor configuration from the default project location and panics on error.
func MustLoad() *Config {
	path := confkit.MustProjectPath("etc/advisor.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	confkit.LoadDotenvOnce()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read advisor config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal advisor config: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	if err := cfg.parseTimeout(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
}

func (c *Config) applyEnvOverrides() {
	c.BaseURL = expandAndOverride(c.BaseURL, envBaseURL)
	c.APIKey = expandAndOverride(c.APIKey, envAPIKey)
	c.Model = expandAndOverride(c.Model, envModel)
	c.TimeoutRaw = os.ExpandEnv(c.TimeoutRaw)
}

func (c *Config) parseTimeout() error {
	if strings.TrimSpace(c.TimeoutRaw) == "" {
		c.Timeout = defaultTimeout
		return nil
	}
	d, err := time.ParseDuration(c.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("advisor config: invalid timeout %q: %w", c.TimeoutRaw, err)
	}
	if d <= 0 {
		return fmt.Errorf("advisor config: timeout must be positive, got %s", d)
	}
	c.Timeout = d
	return nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("advisor config: api_key is required")
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("advisor config: model is required")
	}
	return nil
}

func expandAndOverride(current, envKey string) string {
	current = strings.TrimSpace(os.ExpandEnv(current))
	if envVal := os.Getenv(envKey); envVal != "" {
		return envVal
	}
	return current
}
