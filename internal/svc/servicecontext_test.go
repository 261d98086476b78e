package svc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindtrade-api/internal/config"
	"mindtrade-api/internal/svc"
	marketpkg "mindtrade-api/pkg/market"
)

func minimalConfig() config.Config {
	var c config.Config
	c.Env = "test"
	c.TTL = config.CacheTTL{Short: 10, Medium: 60, Long: 300}
	c.Market.Value = &marketpkg.Config{
		Default: "static",
		Providers: map[string]*marketpkg.ProviderConfig{
			"static": {
				Type:   "static",
				Prices: map[string]float64{"BTCUSDT": 50000},
			},
		},
	}
	return c
}

func TestNewServiceContext_WiresFlow(t *testing.T) {
	ctx := svc.NewServiceContext(minimalConfig())

	require.NotNil(t, ctx.Flow, "flow should always be constructed")
	require.NotNil(t, ctx.Scorer)
	require.NotNil(t, ctx.Engine)
	require.NotNil(t, ctx.DefaultMarket, "default market provider should resolve")

	quote, err := ctx.DefaultMarket.CurrentPrice(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, 50000.0, quote.Price)
}

func TestNewServiceContext_WithoutStorage(t *testing.T) {
	ctx := svc.NewServiceContext(minimalConfig())

	assert.Nil(t, ctx.DBConn, "no DSN means no database connection")
	assert.Nil(t, ctx.Repos, "no DSN means no repositories")
	assert.Nil(t, ctx.Advisor, "no advisor config means no advisor client")
}
