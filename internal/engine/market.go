package engine

import (
	"fmt"
	"math"
	"time"
)

// TicketCategory is the only shop category subject to price inflation.
const TicketCategory = "tickets"

// InflationQuote is the computed price state for one shop item.
type InflationQuote struct {
	CurrentPrice     int
	InflationPercent float64
}

// CalculateInflation computes an item's current price from how many
// un-consumed units the user holds. Order- and time-independent: only the
// inventory count matters. A zero count or zero rate yields the exact base
// price and exactly 0 percent.
func CalculateInflation(costCoins int, baseInflation float64, inventoryCount int) InflationQuote {
	if inventoryCount <= 0 || baseInflation == 0 {
		return InflationQuote{CurrentPrice: costCoins}
	}
	factor := baseInflation * float64(inventoryCount)
	price := int(math.Round(float64(costCoins) * (1 + factor)))
	return InflationQuote{
		CurrentPrice:     price,
		InflationPercent: factor * 100,
	}
}

// InflationResetRemaining returns how long until inflation expires for a
// purchase record, floored at zero.
func InflationResetRemaining(lastPurchasedAt time.Time, cooldown time.Duration, now time.Time) time.Duration {
	remaining := lastPurchasedAt.Add(cooldown).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatTimeRemaining renders a countdown as zero-padded "HH:MM".
func FormatTimeRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// InflationBand classifies inflation severity for display.
type InflationBand string

const (
	InflationLow     InflationBand = "low"
	InflationMedium  InflationBand = "medium"
	InflationHigh    InflationBand = "high"
	InflationExtreme InflationBand = "extreme"
)

// ClassifyInflation buckets an inflation percentage into monotonic bands.
func ClassifyInflation(percent float64) InflationBand {
	switch {
	case percent < 50:
		return InflationLow
	case percent < 150:
		return InflationMedium
	case percent < 250:
		return InflationHigh
	default:
		return InflationExtreme
	}
}
