package engine

// Tier is the coarse rank band above the 1..10 level ladder.
type Tier string

const (
	TierD      Tier = "D"
	TierDPlus  Tier = "D+"
	TierC      Tier = "C"
	TierCPlus  Tier = "C+"
	TierB      Tier = "B"
	TierBPlus  Tier = "B+"
	TierA      Tier = "A"
	TierAPlus  Tier = "A+"
	TierS      Tier = "S"
	TierSPlus  Tier = "S+"
	TierSS     Tier = "SS"
	TierSSPlus Tier = "SS+"
	TierSSS    Tier = "SSS"
)

// MaxLevelPerTier is the level ceiling inside a tier; level 10 rolls over
// into the next tier at level 1.
const MaxLevelPerTier = 10

// tierOrder is the canonical 13-step ladder. Earlier versions dropped some
// "+" sub-ranks from ordering; the full ladder is authoritative everywhere.
var tierOrder = []Tier{
	TierD, TierDPlus,
	TierC, TierCPlus,
	TierB, TierBPlus,
	TierA, TierAPlus,
	TierS, TierSPlus,
	TierSS, TierSSPlus,
	TierSSS,
}

var tierRequiredDays = map[Tier]int{
	TierD:      5,
	TierDPlus:  6,
	TierC:      8,
	TierCPlus:  10,
	TierB:      12,
	TierBPlus:  14,
	TierA:      17,
	TierAPlus:  19,
	TierS:      22,
	TierSPlus:  24,
	TierSS:     27,
	TierSSPlus: 30,
	TierSSS:    33,
}

// DefaultRequiredDays is used when a stored tier string is unknown.
const DefaultRequiredDays = 5

func (t Tier) IsValid() bool {
	_, ok := tierRequiredDays[t]
	return ok
}

// RequiredDaysForTier returns how many completed days advance one level
// within the given tier.
func RequiredDaysForTier(t Tier) int {
	if d, ok := tierRequiredDays[t]; ok {
		return d
	}
	return DefaultRequiredDays
}

// NextTier returns the successor tier. SSS is the progression ceiling and
// maps to itself.
func NextTier(t Tier) Tier {
	for i, cur := range tierOrder {
		if cur == t {
			if i+1 < len(tierOrder) {
				return tierOrder[i+1]
			}
			return TierSSS
		}
	}
	return TierD
}

// TierIndex returns the position of the tier in the canonical ladder, used
// for best-identity ordering. Unknown tiers sort first.
func TierIndex(t Tier) int {
	for i, cur := range tierOrder {
		if cur == t {
			return i
		}
	}
	return -1
}

// FinalTier reports whether the tier has no successor.
func FinalTier(t Tier) bool {
	return t == TierSSS
}
