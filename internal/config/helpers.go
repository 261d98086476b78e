package config

import (
	advisorpkg "mindtrade-api/pkg/advisor"
	assesspkg "mindtrade-api/pkg/assess"
	marketpkg "mindtrade-api/pkg/market"
	mindsetpkg "mindtrade-api/pkg/mindset"
	tradepkg "mindtrade-api/pkg/trade"
)

// MustLoadAssess loads etc/assess.yaml from the project root and panics on error.
func MustLoadAssess() *assesspkg.Config {
	return assesspkg.MustLoad()
}

// MustLoadMindset loads etc/mindset.yaml from the project root and panics on error.
func MustLoadMindset() *mindsetpkg.Config {
	return mindsetpkg.MustLoad()
}

// MustLoadTrade loads etc/trade.yaml from the project root and panics on error.
func MustLoadTrade() *tradepkg.Config {
	return tradepkg.MustLoad()
}

// MustLoadMarket loads etc/market.yaml from the project root and panics on error.
func MustLoadMarket() *marketpkg.Config {
	return marketpkg.MustLoad()
}

// MustLoadAdvisor loads etc/advisor.yaml from the project root and panics on error.
func MustLoadAdvisor() *advisorpkg.Config {
	return advisorpkg.MustLoad()
}

// MustBuildMarketProviders loads market config from the default path and
// builds provider instances; returns the map and default provider name.
func MustBuildMarketProviders() (map[string]marketpkg.Provider, string) {
	cfg := MustLoadMarket()
	providers, err := cfg.BuildProviders()
	if err != nil {
		panic(err)
	}
	return providers, cfg.Default
}
