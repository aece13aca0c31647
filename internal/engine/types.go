package engine

import "strings"

// Gate is one of the fixed daily-task sub-categories within a level.
type Gate string

const (
	GateRooting    Gate = "rooting"
	GateFoundation Gate = "foundation"
	GateCore       Gate = "core"
	GateFlow       Gate = "flow"
	GateBreath     Gate = "breath"
)

// AllGates lists every gate in display order.
var AllGates = []Gate{GateRooting, GateFoundation, GateCore, GateFlow, GateBreath}

func (g Gate) IsValid() bool {
	switch g {
	case GateRooting, GateFoundation, GateCore, GateFlow, GateBreath:
		return true
	default:
		return false
	}
}

// ParseGate parses user input to a Gate. Returns false for unknown input.
func ParseGate(input string) (Gate, bool) {
	g := Gate(strings.TrimSpace(strings.ToLower(input)))
	if g.IsValid() {
		return g, true
	}
	return "", false
}

// Dimension is one of the four stat dimensions rewards accrue into.
type Dimension string

const (
	DimensionBody Dimension = "body"
	DimensionMind Dimension = "mind"
	DimensionSoul Dimension = "soul"
	DimensionWill Dimension = "will"
)

// GateDimension maps a gate to the stat dimension its points feed.
func GateDimension(g Gate) Dimension {
	switch g {
	case GateRooting, GateFoundation:
		return DimensionBody
	case GateCore:
		return DimensionMind
	case GateFlow:
		return DimensionSoul
	case GateBreath:
		return DimensionWill
	default:
		return DimensionBody
	}
}

// DayLayout is the calendar-day key format used across history, progress
// and reset stamping.
const DayLayout = "2006-01-02"
