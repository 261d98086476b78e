package mindset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"mindtrade-api/pkg/confkit"
)

// Config holds the component weights and tier boundaries of the mindset
// engine. Defaults reproduce the production 40/30/30 weighting.
type Config struct {
	EmotionalWeight  float64 `yaml:"emotional_weight"`
	HistoryWeight    float64 `yaml:"history_weight"`
	DisciplineWeight float64 `yaml:"discipline_weight"`

	ReadyThreshold   int `yaml:"ready_threshold"`
	PrepareThreshold int `yaml:"prepare_threshold"`
	CautionThreshold int `yaml:"caution_threshold"`

	// NeutralHistoryScore is returned for traders with no recorded trades;
	// new traders are not penalised for lacking history.
	NeutralHistoryScore float64 `yaml:"neutral_history_score"`
}

// DefaultConfig returns the production weighting and tier boundaries.
func DefaultConfig() *Config {
	return &Config{
		EmotionalWeight:  0.4,
		HistoryWeight:    0.3,
		DisciplineWeight: 0.3,

		ReadyThreshold:   80,
		PrepareThreshold: 60,
		CautionThreshold: 40,

		NeutralHistoryScore: 70,
	}
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mindset config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads the engine configuration from the default project location
// and panics on error.
func MustLoad() *Config {
	path := confkit.MustProjectPath("etc/mindset.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfigFromReader constructs a Config from a reader. Unset fields keep
// their defaults.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read mindset config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal mindset config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures configuration sanity.
func (c *Config) Validate() error {
	for _, w := range []float64{c.EmotionalWeight, c.HistoryWeight, c.DisciplineWeight} {
		if w < 0 || w > 1 {
			return errors.New("mindset config: weights must be between 0 and 1")
		}
	}
	if sum := c.EmotionalWeight + c.HistoryWeight + c.DisciplineWeight; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("mindset config: weights must sum to 1, got %.3f", sum)
	}
	if !(c.ReadyThreshold > c.PrepareThreshold && c.PrepareThreshold > c.CautionThreshold && c.CautionThreshold > 0) {
		return errors.New("mindset config: thresholds must satisfy ready > prepare > caution > 0")
	}
	if c.ReadyThreshold > 100 {
		return errors.New("mindset config: ready_threshold cannot exceed 100")
	}
	if c.NeutralHistoryScore < 0 || c.NeutralHistoryScore > 100 {
		return errors.New("mindset config: neutral_history_score must be between 0 and 100")
	}
	return nil
}
