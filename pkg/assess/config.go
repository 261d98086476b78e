package assess

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"mindtrade-api/pkg/confkit"
)

// Config holds the deduction thresholds and penalties applied by the setup
// quality scorer. Defaults reproduce the production scoring table.
type Config struct {
	MinRiskReward  float64 `yaml:"min_risk_reward"`  // below this the R:R deduction applies
	GoodRiskReward float64 `yaml:"good_risk_reward"` // at or above this the R:R is called out as a strength

	MaxEntryDeviationPct   float64 `yaml:"max_entry_deviation_pct"`   // |deviation| beyond this is penalised
	TightEntryDeviationPct float64 `yaml:"tight_entry_deviation_pct"` // |deviation| under this is a success note
	MaxStopWideningPct     float64 `yaml:"max_stop_widening_pct"`     // risk-widening stop move beyond this is penalised
	MaxTargetExtensionPct  float64 `yaml:"max_target_extension_pct"`  // target moved further than this is penalised

	HighLeverage     int `yaml:"high_leverage"`      // above this leverage draws a warning
	VeryHighLeverage int `yaml:"very_high_leverage"` // above this leverage draws a heavier penalty

	RiskRewardPenalty       int `yaml:"risk_reward_penalty"`
	EntryDeviationPenalty   int `yaml:"entry_deviation_penalty"`
	StopWideningPenalty     int `yaml:"stop_widening_penalty"`
	TargetExtensionPenalty  int `yaml:"target_extension_penalty"`
	HighLeveragePenalty     int `yaml:"high_leverage_penalty"`
	VeryHighLeveragePenalty int `yaml:"very_high_leverage_penalty"`
}

// DefaultConfig returns the production scoring thresholds.
func DefaultConfig() *Config {
	return &Config{
		MinRiskReward:  1.0,
		GoodRiskReward: 1.5,

		MaxEntryDeviationPct:   2.0,
		TightEntryDeviationPct: 0.5,
		MaxStopWideningPct:     2.0,
		MaxTargetExtensionPct:  3.0,

		HighLeverage:     20,
		VeryHighLeverage: 50,

		RiskRewardPenalty:       20,
		EntryDeviationPenalty:   15,
		StopWideningPenalty:     15,
		TargetExtensionPenalty:  10,
		HighLeveragePenalty:     10,
		VeryHighLeveragePenalty: 20,
	}
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open assess config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads the scorer configuration from the default project location
// and panics on error.
func MustLoad() *Config {
	path := confkit.MustProjectPath("etc/assess.yaml")
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
		return nil, fmt.Errorf("read assess config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal assess config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures configuration sanity.
func (c *Config) Validate() error {
	if c.MinRiskReward <= 0 {
		return errors.New("assess config: min_risk_reward must be positive")
	}
	if c.GoodRiskReward < c.MinRiskReward {
		return errors.New("assess config: good_risk_reward must not be below min_risk_reward")
	}
	if c.MaxEntryDeviationPct <= 0 || c.MaxStopWideningPct <= 0 || c.MaxTargetExtensionPct <= 0 {
		return errors.New("assess config: deviation thresholds must be positive")
	}
	if c.TightEntryDeviationPct < 0 || c.TightEntryDeviationPct > c.MaxEntryDeviationPct {
		return errors.New("assess config: tight_entry_deviation_pct must sit within the entry deviation band")
	}
	if c.HighLeverage <= 0 || c.VeryHighLeverage <= c.HighLeverage {
		return errors.New("assess config: very_high_leverage must exceed high_leverage, both positive")
	}
	for _, penalty := range []int{c.RiskRewardPenalty, c.EntryDeviationPenalty, c.StopWideningPenalty, c.TargetExtensionPenalty, c.HighLeveragePenalty, c.VeryHighLeveragePenalty} {
		if penalty < 0 || penalty > 100 {
			return errors.New("assess config: penalties must be between 0 and 100")
		}
	}
	return nil
}
