package engine

import (
	"math"
	"testing"
)

func TestStatRankValueBoundaries(t *testing.T) {
	cases := []struct {
		raw  float64
		want int
	}{
		{-3, 0},
		{0, 0},
		{4.9, 0},
		{5, 1},
		{9.99, 1},
		{10, 2},
		{59.9, 11},
		{60, 12},
		{9000, 12},
	}
	for _, c := range cases {
		if got := StatRankValue(c.raw); got != c.want {
			t.Fatalf("StatRankValue(%v)=%d, want %d", c.raw, got, c.want)
		}
	}
}

func TestCalculateOverallRank(t *testing.T) {
	cases := []struct {
		body, mind, soul, will float64
		wantScore              float64
		wantTier               string
	}{
		{0, 0, 0, 0, 0, "F"},
		// ranks 6/6/6 with will rank 2: 6*0.7 + 2*0.3 = 4.8
		{30, 30, 30, 10, 4.8, "D+"},
		// all rank 6: exact integer score keeps the base label
		{30, 30, 30, 30, 6.0, "C"},
		// everything maxed
		{60, 60, 60, 60, 12, "S"},
	}
	for _, c := range cases {
		got := CalculateOverallRank(c.body, c.mind, c.soul, c.will)
		if math.Abs(got.FinalScore-c.wantScore) > 1e-6 {
			t.Fatalf("FinalScore(%v,%v,%v,%v)=%v, want %v", c.body, c.mind, c.soul, c.will, got.FinalScore, c.wantScore)
		}
		if got.RankTier != c.wantTier {
			t.Fatalf("RankTier(%v,%v,%v,%v)=%q, want %q", c.body, c.mind, c.soul, c.will, got.RankTier, c.wantTier)
		}
	}
}

func TestCalculateOverallRankDeterministic(t *testing.T) {
	a := CalculateOverallRank(12, 7, 33, 21)
	for i := 0; i < 100; i++ {
		b := CalculateOverallRank(12, 7, 33, 21)
		if a != b {
			t.Fatalf("rank not deterministic: %+v vs %+v", a, b)
		}
	}
}
