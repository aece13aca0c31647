package engine

// CapEpsilon is the accepted near-equality tolerance for cap comparisons.
// Repeated fractional additions drift; comparisons within this epsilon are
// treated as saturated. Do not tighten without revalidating the numeric
// contracts in the tests.
const CapEpsilon = 1e-4

// LevelConfig describes the accrual caps for one identity level.
type LevelConfig struct {
	MainStatLimit float64
	GateStatCap   float64
	DaysRequired  int
}

// LevelConfigForTier derives the standard tempering config for a tier:
// one full point per level, split evenly across the five gates, earned over
// the tier's required days.
func LevelConfigForTier(t Tier) LevelConfig {
	return LevelConfig{
		MainStatLimit: 1.0,
		GateStatCap:   1.0 / float64(len(AllGates)),
		DaysRequired:  RequiredDaysForTier(t),
	}
}

// LevelProgress is the per-(identity, level) gate accrual state. Created
// lazily on first completion at a level; a fresh zeroed record supersedes it
// when the identity advances.
type LevelProgress struct {
	Gates             map[Gate]float64
	TotalPointsEarned float64
}

func NewLevelProgress() *LevelProgress {
	return &LevelProgress{Gates: make(map[Gate]float64)}
}

// AccrualResult reports a committed gate accrual.
type AccrualResult struct {
	PointsAwarded float64
	GateProgress  float64
	TotalProgress float64
}

// AccrueGatePoints awards one gate-task completion worth of stat points,
// clamped so that the gate never exceeds GateStatCap and the level total
// never exceeds MainStatLimit. A saturated gate or level yields exactly 0.
// Mutates lp in place; the caller observes the committed state afterward.
func AccrueGatePoints(lp *LevelProgress, gate Gate, cfg LevelConfig) (AccrualResult, error) {
	if !gate.IsValid() {
		return AccrualResult{}, InvariantViolationError{Reason: "unknown gate: " + string(gate)}
	}
	if cfg.DaysRequired <= 0 {
		return AccrualResult{}, InvariantViolationError{Reason: "level config requires daysRequired > 0"}
	}
	if cfg.GateStatCap <= 0 || cfg.MainStatLimit <= 0 {
		return AccrualResult{}, InvariantViolationError{Reason: "level config caps must be positive"}
	}
	if lp.Gates == nil {
		lp.Gates = make(map[Gate]float64)
	}

	gateProgress := lp.Gates[gate]
	if lp.TotalPointsEarned >= cfg.MainStatLimit-CapEpsilon || gateProgress >= cfg.GateStatCap-CapEpsilon {
		return AccrualResult{
			PointsAwarded: 0,
			GateProgress:  gateProgress,
			TotalProgress: lp.TotalPointsEarned,
		}, nil
	}

	award := cfg.GateStatCap / float64(cfg.DaysRequired)
	if gateProgress+award > cfg.GateStatCap {
		award = cfg.GateStatCap - gateProgress
	}
	if lp.TotalPointsEarned+award > cfg.MainStatLimit {
		award = cfg.MainStatLimit - lp.TotalPointsEarned
	}
	if award < 0 {
		award = 0
	}

	lp.Gates[gate] = gateProgress + award
	lp.TotalPointsEarned += award

	return AccrualResult{
		PointsAwarded: award,
		GateProgress:  lp.Gates[gate],
		TotalProgress: lp.TotalPointsEarned,
	}, nil
}
