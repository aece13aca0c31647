package engine

import "math"

const (
	// rankStepRaw is the raw-score width of one rank step (F..S).
	rankStepRaw = 5.0

	// maxRankValue is the top of the 0..12 rank scale.
	maxRankValue = 12

	// eliteWeight / anchorWeight split the final score between the
	// body/mind/soul average and the will anchor.
	eliteWeight  = 0.7
	anchorWeight = 0.3
)

// rankLabels spans the 0..12 rank scale.
var rankLabels = [maxRankValue + 1]string{
	"F", "F+", "E", "E+", "D", "D+", "C", "C+", "B", "B+", "A", "A+", "S",
}

// StatRankValue converts a raw dimension score into its 0..12 rank value.
// Every 5 raw points is one rank step.
func StatRankValue(raw float64) int {
	if raw <= 0 {
		return 0
	}
	v := int(math.Floor(raw / rankStepRaw))
	if v > maxRankValue {
		return maxRankValue
	}
	return v
}

// OverallRank is the weighted rank across the four dimensions.
type OverallRank struct {
	FinalScore float64
	RankTier   string
}

// CalculateOverallRank computes the overall rank tier from the four raw
// dimension scores. Body, mind and soul form the elite average; will is the
// anchor dimension weighted separately. Deterministic: same inputs always
// produce the same score and label.
func CalculateOverallRank(body, mind, soul, will float64) OverallRank {
	elite := float64(StatRankValue(body)+StatRankValue(mind)+StatRankValue(soul)) / 3.0
	score := elite*eliteWeight + float64(StatRankValue(will))*anchorWeight
	return OverallRank{FinalScore: score, RankTier: rankTierForScore(score)}
}

// rankTierForScore maps a 0..12 score to its label. An exact integer score
// keeps the base label; any fractional excess over a non-plus label promotes
// it to the "+" sub-tier (4.8 -> "D+", 6.0 -> "C").
func rankTierForScore(score float64) string {
	if score <= 0 {
		return rankLabels[0]
	}
	if score >= maxRankValue {
		return rankLabels[maxRankValue]
	}
	// Weighted sums can land a hair under an integer boundary (6*0.7+6*0.3
	// is 5.9999999999999996); the tolerant floor keeps those on the base
	// label.
	v := int(math.Floor(score + 1e-9))
	if v > maxRankValue {
		v = maxRankValue
	}
	label := rankLabels[v]
	frac := score - float64(v)
	if frac > 1e-9 && label[len(label)-1] != '+' {
		label += "+"
	}
	return label
}
