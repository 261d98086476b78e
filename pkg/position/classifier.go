package position

// Classification is the outcome of comparing a custom entry price against
// the live market price.
type Classification struct {
	// IsLimitOrder is true when the order must wait for price to reach the
	// custom entry before executing.
	IsLimitOrder bool
	// InvalidLimit is true when the custom entry sits on the wrong side of
	// the market for the direction (a LONG entry above market, a SHORT entry
	// below). The caller must either reject the order or re-price it to
	// market after explicit user confirmation; it is never substituted
	// silently.
	InvalidLimit bool
}

// Classify determines whether an order at customEntry would execute
// immediately (market) or wait for the market to reach it (limit). A
// marketPrice of zero or below means the live price is unavailable and the
// order falls back to market execution. Equality is market execution for
// both directions.
func Classify(direction Direction, customEntry, marketPrice float64) Classification {
	if marketPrice <= 0 || customEntry <= 0 {
		return Classification{}
	}
	switch direction {
	case Long:
		if customEntry < marketPrice {
			return Classification{IsLimitOrder: true}
		}
		if customEntry > marketPrice {
			return Classification{InvalidLimit: true}
		}
	case Short:
		if customEntry > marketPrice {
			return Classification{IsLimitOrder: true}
		}
		if customEntry < marketPrice {
			return Classification{InvalidLimit: true}
		}
	}
	return Classification{}
}
