package trade

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mindtrade-api/pkg/confkit"
)

// Config controls runtime behaviour for the trade flow.
type Config struct {
	// FetchTimeout bounds the best-effort context fetch before scoring.
	FetchTimeout    time.Duration `yaml:"-"`
	FetchTimeoutRaw string        `yaml:"fetch_timeout"`

	// MaxOpenPositions caps concurrently open paper positions per user.
	// Zero disables the cap.
	MaxOpenPositions int `yaml:"max_open_positions"`
}

const defaultFetchTimeout = 10 * time.Second

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trade config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads trade configuration from the default project location and panics on error.
func MustLoad() *Config {
	path := confkit.MustProjectPath("etc/trade.yaml")
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
		return nil, fmt.Errorf("read trade config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal trade config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.parseDurations(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.FetchTimeout = defaultFetchTimeout
	return cfg
}

func (c *Config) applyDefaults() {
	if c.FetchTimeoutRaw == "" {
		c.FetchTimeoutRaw = defaultFetchTimeout.String()
	}
}

func (c *Config) parseDurations() error {
	d, err := time.ParseDuration(c.FetchTimeoutRaw)
	if err != nil {
		return fmt.Errorf("trade config: invalid fetch_timeout %q: %w", c.FetchTimeoutRaw, err)
	}
	if d <= 0 {
		return fmt.Errorf("trade config: fetch_timeout must be positive, got %s", d)
	}
	c.FetchTimeout = d
	return nil
}

// Validate ensures the configuration is structurally sound.
func (c *Config) Validate() error {
	if c.MaxOpenPositions < 0 {
		return fmt.Errorf("trade config: max_open_positions cannot be negative, got %d", c.MaxOpenPositions)
	}
	return nil
}
