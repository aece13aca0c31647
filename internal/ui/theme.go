package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cultivator/internal/engine"
)

// Cultivator theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconPath    = "⛩️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconFlame   = "🔥"
	IconEmber   = "🕯️"
	IconStar    = "⭐"
	IconCoin    = "🪙"
	IconWill    = "💎"
	IconShop    = "🏮"
	IconTicket  = "🎟️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconQuest   = "📜"
	IconReset   = "🌅"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeTierUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("TIER UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// TierText colors a tier by how far up the ladder it sits.
func TierText(tier string) string {
	idx := engine.TierIndex(engine.Tier(tier))
	switch {
	case idx >= engine.TierIndex(engine.TierS):
		return Gold.Render(tier)
	case idx >= engine.TierIndex(engine.TierB):
		return Good.Render(tier)
	case idx >= engine.TierIndex(engine.TierC):
		return H2.Render(tier)
	default:
		return Muted.Render(tier)
	}
}

// StageText renders a streak stage with its flame icon.
func StageText(stage engine.StreakStage) string {
	switch stage {
	case engine.StageEmber:
		return Muted.Render(IconEmber + " ember")
	case engine.StageFlame:
		return Warn.Render(IconFlame + " flame")
	case engine.StageSingularity:
		return Gold.Render("🌀 singularity")
	case engine.StageExplosion:
		return Bad.Render("💥 explosion")
	default:
		return Muted.Render(string(stage))
	}
}

// BandText renders an inflation band.
func BandText(band engine.InflationBand) string {
	switch band {
	case engine.InflationLow:
		return Good.Render("low")
	case engine.InflationMedium:
		return Warn.Render("medium")
	case engine.InflationHigh:
		return Bad.Render("high")
	case engine.InflationExtreme:
		return Bad.Render("EXTREME")
	default:
		return Muted.Render(string(band))
	}
}
