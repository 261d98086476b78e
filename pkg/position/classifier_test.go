package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_LongBelowMarketIsLimit(t *testing.T) {
	c := Classify(Long, 95, 100)
	assert.True(t, c.IsLimitOrder, "long entry below market waits for a dip")
	assert.False(t, c.InvalidLimit)
}

func TestClassify_LongAboveMarketIsInvalid(t *testing.T) {
	c := Classify(Long, 105, 100)
	assert.False(t, c.IsLimitOrder, "invalid limit must not be reported as a waiting limit")
	assert.True(t, c.InvalidLimit, "long entry above market needs explicit caller confirmation")
}

func TestClassify_ShortMirrorsLong(t *testing.T) {
	// SHORT with entry/market swapped around mirrors LONG.
	assert.True(t, Classify(Short, 105, 100).IsLimitOrder, "short entry above market waits for a rise")
	assert.True(t, Classify(Short, 95, 100).InvalidLimit, "short entry below market is invalid")
}

func TestClassify_EqualityIsMarket(t *testing.T) {
	for _, dir := range []Direction{Long, Short} {
		c := Classify(dir, 100, 100)
		assert.False(t, c.IsLimitOrder, "equality executes as market for %s", dir)
		assert.False(t, c.InvalidLimit)
	}
}

func TestClassify_MissingMarketPriceFallsBackToMarket(t *testing.T) {
	c := Classify(Long, 100, 0)
	assert.False(t, c.IsLimitOrder, "missing market price assumes market order")
	assert.False(t, c.InvalidLimit)
}
