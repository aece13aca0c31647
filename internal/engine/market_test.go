package engine

import (
	"testing"
	"time"
)

func TestCalculateInflation(t *testing.T) {
	cases := []struct {
		cost        int
		rate        float64
		count       int
		wantPrice   int
		wantPercent float64
	}{
		{100, 0.25, 0, 100, 0},
		{100, 0.25, 1, 125, 25},
		{100, 0.25, 2, 150, 50},
		{400, 0.25, 3, 700, 75},
		{100, 0, 5, 100, 0},
		{100, 0.25, -1, 100, 0},
		// rounding: 50 * 1.25 = 62.5 rounds up
		{50, 0.25, 1, 63, 25},
	}
	for _, c := range cases {
		got := CalculateInflation(c.cost, c.rate, c.count)
		if got.CurrentPrice != c.wantPrice {
			t.Fatalf("CalculateInflation(%d, %v, %d).CurrentPrice=%d, want %d", c.cost, c.rate, c.count, got.CurrentPrice, c.wantPrice)
		}
		if got.InflationPercent != c.wantPercent {
			t.Fatalf("CalculateInflation(%d, %v, %d).InflationPercent=%v, want %v", c.cost, c.rate, c.count, got.InflationPercent, c.wantPercent)
		}
	}
}

func TestInflationOrderIndependence(t *testing.T) {
	// Same inventory count must quote the same price regardless of when or
	// how the units were bought.
	a := CalculateInflation(100, 0.25, 3)
	b := CalculateInflation(100, 0.25, 3)
	if a != b {
		t.Fatalf("quotes diverged: %+v vs %+v", a, b)
	}
}

func TestInflationResetRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bought := now.Add(-22 * time.Hour)
	if got := InflationResetRemaining(bought, 24*time.Hour, now); got != 2*time.Hour {
		t.Fatalf("remaining=%v, want 2h", got)
	}

	expired := now.Add(-30 * time.Hour)
	if got := InflationResetRemaining(expired, 24*time.Hour, now); got != 0 {
		t.Fatalf("expired remaining=%v, want 0", got)
	}
}

func TestFormatTimeRemaining(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{2 * time.Hour, "02:00"},
		{90 * time.Minute, "01:30"},
		{59 * time.Second, "00:00"},
		{25*time.Hour + 5*time.Minute, "25:05"},
		{-time.Hour, "00:00"},
	}
	for _, c := range cases {
		if got := FormatTimeRemaining(c.d); got != c.want {
			t.Fatalf("FormatTimeRemaining(%v)=%q, want %q", c.d, got, c.want)
		}
	}
}

func TestClassifyInflation(t *testing.T) {
	cases := []struct {
		percent float64
		want    InflationBand
	}{
		{0, InflationLow},
		{49.9, InflationLow},
		{50, InflationMedium},
		{149.9, InflationMedium},
		{150, InflationHigh},
		{249.9, InflationHigh},
		{250, InflationExtreme},
		{900, InflationExtreme},
	}
	for _, c := range cases {
		if got := ClassifyInflation(c.percent); got != c.want {
			t.Fatalf("ClassifyInflation(%v)=%s, want %s", c.percent, got, c.want)
		}
	}
}
