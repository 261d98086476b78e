package cache

import (
	"strings"
	"time"

	"mindtrade-api/internal/config"
)

// Namespace is the Redis key prefix for the application.
const Namespace = "mindtrade"

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const (
	TTLShort  TTLClass = "short"
	TTLMedium TTLClass = "medium"
	TTLLong   TTLClass = "long"
)

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Short:  durationOrDefault(cfg.Short, 10*time.Second),
		Medium: durationOrDefault(cfg.Medium, time.Minute),
		Long:   durationOrDefault(cfg.Long, 5*time.Minute),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLShort:
		return t.Short
	case TTLMedium:
		return t.Medium
	case TTLLong:
		return t.Long
	default:
		return 0
	}
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// --- Price Keys -------------------------------------------------------------

// PriceLatestKey returns the latest observed price key for a symbol.
func PriceLatestKey(symbol string) string {
	return formatKey("price", "latest", symbol)
}

// --- Assessment Keys --------------------------------------------------------

// AssessmentLatestKey holds the most recent scored assessment per user.
func AssessmentLatestKey(userID string) string {
	return formatKey("assessment", "latest", userID)
}

// --- Trade History Keys -----------------------------------------------------

// HistorySummaryKey caches the computed trade history summary per user.
func HistorySummaryKey(userID string) string {
	return formatKey("history", "summary", userID)
}

// --- Discipline Keys --------------------------------------------------------

// DisciplineDayKey caches a day's ritual completion snapshot per user.
func DisciplineDayKey(userID, day string) string {
	return formatKey("discipline", userID, day)
}

// --- TTL Helpers ------------------------------------------------------------

// PriceTTL returns the short-lived TTL for price keys.
func PriceTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLShort)
}

// AssessmentLatestTTL returns the TTL for latest-assessment payloads.
func AssessmentLatestTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLLong)
}

// HistorySummaryTTL returns the TTL for history summary caches.
func HistorySummaryTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLMedium)
}

// DisciplineTTL returns the TTL for discipline snapshots.
func DisciplineTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLMedium)
}
