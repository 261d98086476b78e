// Package position contains the pure position sizing calculator and the
// limit-versus-market order classifier for the paper trading engine.
package position

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Direction is the side of a trade.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Valid reports whether the direction is one of the supported values.
func (d Direction) Valid() bool { return d == Long || d == Short }

// Mode distinguishes pattern-suggested setups from user-edited ones.
type Mode string

const (
	// ModePattern uses system-suggested levels verbatim.
	ModePattern Mode = "PATTERN"
	// ModeCustom allows user-edited levels and triggers quality scoring.
	ModeCustom Mode = "CUSTOM"
)

// AllowedLeverages is the menu of leverage multipliers the entry UI offers.
var AllowedLeverages = []int{1, 5, 10, 20, 50, 100}

// Setup is a canonical, validated candidate trade. All fallback resolution
// and string parsing happens once at the boundary; formulas never re-resolve.
type Setup struct {
	Symbol     string
	Direction  Direction
	Entry      float64
	StopLoss   float64
	TakeProfit float64
	Margin     float64
	Leverage   int
	Mode       Mode
}

// RawSetup carries boundary input as it arrives from the entry UI, where
// prices may be strings and fields may be missing.
type RawSetup struct {
	Symbol     string
	Direction  string
	Entry      string
	StopLoss   string
	TakeProfit string
	Margin     string
	Leverage   int
	Mode       string
}

// ParseSetup converts raw boundary input into a canonical Setup, rejecting
// non-finite or malformed numerics before they can enter any formula.
func ParseSetup(raw RawSetup) (Setup, error) {
	setup := Setup{
		Symbol:   strings.ToUpper(strings.TrimSpace(raw.Symbol)),
		Leverage: raw.Leverage,
	}

	dir := Direction(strings.ToUpper(strings.TrimSpace(raw.Direction)))
	if !dir.Valid() {
		return Setup{}, fmt.Errorf("position: invalid direction %q", raw.Direction)
	}
	setup.Direction = dir

	mode := Mode(strings.ToUpper(strings.TrimSpace(raw.Mode)))
	switch mode {
	case "", ModePattern:
		setup.Mode = ModePattern
	case ModeCustom:
		setup.Mode = ModeCustom
	default:
		return Setup{}, fmt.Errorf("position: invalid mode %q", raw.Mode)
	}

	var err error
	if setup.Entry, err = parsePrice("entry", raw.Entry); err != nil {
		return Setup{}, err
	}
	// A missing stop loss parses to zero: custom-mode submissions carry it
	// through to the quality scorer, which hard-blocks them with a readable
	// result instead of a parse error.
	if strings.TrimSpace(raw.StopLoss) == "" {
		setup.StopLoss = 0
	} else if setup.StopLoss, err = parsePrice("stop_loss", raw.StopLoss); err != nil {
		return Setup{}, err
	}
	if setup.TakeProfit, err = parsePrice("take_profit", raw.TakeProfit); err != nil {
		return Setup{}, err
	}
	if setup.Margin, err = parsePrice("margin", raw.Margin); err != nil {
		return Setup{}, err
	}
	return setup, nil
}

func parsePrice(field, value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("position: %s is required", field)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("position: invalid %s %q: %w", field, value, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("position: %s must be finite, got %q", field, value)
	}
	return v, nil
}

// Validate checks the structural invariants of a setup. Ordering violations
// are reported as errors, never silently corrected.
func (s Setup) Validate(availableBalance float64) error {
	if s.Symbol == "" {
		return fmt.Errorf("position: symbol is required")
	}
	if !s.Direction.Valid() {
		return fmt.Errorf("position: invalid direction %q", s.Direction)
	}
	if s.Entry <= 0 {
		return fmt.Errorf("position: entry must be positive, got %v", s.Entry)
	}
	// In custom mode a missing stop loss is a scoring hard block, not a
	// validation error, so the caller gets a blocked assessment to act on.
	if s.StopLoss <= 0 && s.Mode != ModeCustom {
		return fmt.Errorf("position: stop loss is required and must be positive, got %v", s.StopLoss)
	}
	if s.TakeProfit <= 0 {
		return fmt.Errorf("position: take profit must be positive, got %v", s.TakeProfit)
	}
	if s.Margin <= 0 {
		return fmt.Errorf("position: margin must be positive, got %v", s.Margin)
	}
	if availableBalance > 0 && s.Margin > availableBalance {
		return fmt.Errorf("position: margin %.2f exceeds available balance %.2f", s.Margin, availableBalance)
	}
	if !allowedLeverage(s.Leverage) {
		return fmt.Errorf("position: leverage %dx not in allowed set %v", s.Leverage, AllowedLeverages)
	}
	switch s.Direction {
	case Long:
		if s.StopLoss > 0 && s.StopLoss >= s.Entry {
			return fmt.Errorf("position: long requires stop loss %v below entry %v", s.StopLoss, s.Entry)
		}
		if s.TakeProfit <= s.Entry {
			return fmt.Errorf("position: long requires take profit %v above entry %v", s.TakeProfit, s.Entry)
		}
	case Short:
		if s.StopLoss > 0 && s.StopLoss <= s.Entry {
			return fmt.Errorf("position: short requires stop loss %v above entry %v", s.StopLoss, s.Entry)
		}
		if s.TakeProfit >= s.Entry {
			return fmt.Errorf("position: short requires take profit %v below entry %v", s.TakeProfit, s.Entry)
		}
	}
	return nil
}

func allowedLeverage(leverage int) bool {
	for _, allowed := range AllowedLeverages {
		if leverage == allowed {
			return true
		}
	}
	return false
}
