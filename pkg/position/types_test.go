package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSetup_OK(t *testing.T) {
	s, err := ParseSetup(RawSetup{
		Symbol:     " btcusdt ",
		Direction:  "long",
		Entry:      "100.5",
		StopLoss:   "95",
		TakeProfit: "115",
		Margin:     "100",
		Leverage:   10,
		Mode:       "custom",
	})
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", s.Symbol)
	assert.Equal(t, Long, s.Direction)
	assert.Equal(t, ModeCustom, s.Mode)
	assert.Equal(t, 100.5, s.Entry)
}

func TestParseSetup_RejectsNonFinite(t *testing.T) {
	_, err := ParseSetup(RawSetup{Symbol: "BTC", Direction: "LONG", Entry: "NaN", StopLoss: "95", TakeProfit: "115", Margin: "100", Leverage: 10})
	assert.Error(t, err, "NaN prices must be rejected at the boundary")

	_, err = ParseSetup(RawSetup{Symbol: "BTC", Direction: "LONG", Entry: "+Inf", StopLoss: "95", TakeProfit: "115", Margin: "100", Leverage: 10})
	assert.Error(t, err, "infinite prices must be rejected at the boundary")
}

func TestParseSetup_DefaultsToPatternMode(t *testing.T) {
	s, err := ParseSetup(RawSetup{Symbol: "ETH", Direction: "SHORT", Entry: "100", StopLoss: "105", TakeProfit: "90", Margin: "50", Leverage: 5})
	require.NoError(t, err)
	assert.Equal(t, ModePattern, s.Mode)
}

func TestParseSetup_MissingStopLossParsesToZero(t *testing.T) {
	s, err := ParseSetup(RawSetup{Symbol: "BTC", Direction: "LONG", Entry: "100", StopLoss: "", TakeProfit: "115", Margin: "100", Leverage: 10, Mode: "CUSTOM"})
	require.NoError(t, err, "an omitted stop loss reaches the scorer, not a parse error")
	assert.Zero(t, s.StopLoss)
}

func TestValidate_StopLossByMode(t *testing.T) {
	pattern := Setup{Symbol: "BTC", Direction: Long, Entry: 100, StopLoss: 0, TakeProfit: 115, Margin: 100, Leverage: 10, Mode: ModePattern}
	assert.Error(t, pattern.Validate(0), "pattern mode requires a positive stop loss")

	custom := pattern
	custom.Mode = ModeCustom
	assert.NoError(t, custom.Validate(0), "custom mode defers a missing stop loss to quality scoring")

	custom.StopLoss = 105
	assert.Error(t, custom.Validate(0), "a stop loss that is set still has to sit on the right side of entry")
}

func TestValidate_OrderingByDirection(t *testing.T) {
	long := Setup{Symbol: "BTC", Direction: Long, Entry: 100, StopLoss: 105, TakeProfit: 115, Margin: 100, Leverage: 10}
	assert.Error(t, long.Validate(0), "long stop above entry must be a validation error, not corrected")

	short := Setup{Symbol: "BTC", Direction: Short, Entry: 100, StopLoss: 95, TakeProfit: 90, Margin: 100, Leverage: 10}
	assert.Error(t, short.Validate(0), "short stop below entry must be a validation error")
}

func TestValidate_MarginAgainstBalance(t *testing.T) {
	s := Setup{Symbol: "BTC", Direction: Long, Entry: 100, StopLoss: 95, TakeProfit: 115, Margin: 100, Leverage: 10}
	assert.NoError(t, s.Validate(100))
	assert.Error(t, s.Validate(99), "margin above available balance is caller-correctable")
}

func TestValidate_LeverageMenu(t *testing.T) {
	s := Setup{Symbol: "BTC", Direction: Long, Entry: 100, StopLoss: 95, TakeProfit: 115, Margin: 100, Leverage: 7}
	assert.Error(t, s.Validate(0), "leverage outside the allowed menu is rejected")
}
