package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cultivator/internal/engine"
	"cultivator/internal/storage"
	"cultivator/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	profile    *storage.Profile
	identities []storage.Identity
	streak     *storage.StreakStateRow
	gatesDone  map[int64]map[engine.Gate]bool

	selected int

	// inFlight guards against double-submitting a completion for the same
	// identity while a previous one is still persisting.
	inFlight map[int64]bool

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	profile    *storage.Profile
	identities []storage.Identity
	streak     *storage.StreakStateRow
	gatesDone  map[int64]map[engine.Gate]bool
	err        error
}

type gateDoneMsg struct {
	identityID int64
	res        *engine.GateTaskResult
	err        error
}

type dayDoneMsg struct {
	identityID int64
	res        *engine.DayResult
	err        error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		inFlight: map[int64]bool{},
		loading:  true,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.svc.ProfileRepo().GetOrCreateMain(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		idents, err := m.svc.IdentityRepo().ListActive(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		streak, err := m.svc.StreakRepo().GetOrCreateMain(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		today := m.svc.Today()
		gatesDone := map[int64]map[engine.Gate]bool{}
		for _, ident := range idents {
			marks, err := m.svc.ProgressRepo().ListGateMarks(m.ctx, ident.ID, today)
			if err != nil {
				return loadedMsg{err: err}
			}
			done := map[engine.Gate]bool{}
			for _, g := range marks {
				done[engine.Gate(g)] = true
			}
			gatesDone[ident.ID] = done
		}
		return loadedMsg{profile: p, identities: idents, streak: streak, gatesDone: gatesDone}
	}
}

func (m boardModel) gateCmd(identityID int64, gate engine.Gate) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteGateTask(m.ctx, identityID, gate)
		return gateDoneMsg{identityID: identityID, res: res, err: err}
	}
}

func (m boardModel) dayCmd(identityID int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteDay(m.ctx, identityID)
		return dayDoneMsg{identityID: identityID, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.identities = msg.identities
		m.streak = msg.streak
		m.gatesDone = msg.gatesDone
		if m.selected >= len(m.identities) {
			m.selected = len(m.identities) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case gateDoneMsg:
		delete(m.inFlight, msg.identityID)
		if msg.err != nil {
			m.lastLog = "Gate failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("Gate %s: +%.3f pts (%d/%d gates)",
			msg.res.Gate, msg.res.PointsAwarded, msg.res.GatesDone, len(engine.AllGates))
		if msg.res.Day != nil {
			m.lastLog += dayLogSuffix(msg.res.Day)
		}
		return m, m.loadCmd()
	case dayDoneMsg:
		delete(m.inFlight, msg.identityID)
		if msg.err != nil {
			m.lastLog = "Day failed: " + msg.err.Error()
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("Day complete (streak %d)%s", msg.res.StreakDay, dayLogSuffix(msg.res))
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.identities)-1 {
				m.selected++
			}
			return m, nil
		case "1", "2", "3", "4", "5":
			ident := m.currentIdentity()
			if ident == nil {
				return m, nil
			}
			if m.inFlight[ident.ID] {
				m.lastLog = "Still saving — hold on."
				return m, nil
			}
			gate := engine.AllGates[int(msg.String()[0]-'1')]
			if m.gatesDone[ident.ID][gate] {
				m.lastLog = fmt.Sprintf("Gate %s already done today.", gate)
				return m, nil
			}
			m.inFlight[ident.ID] = true
			m.lastLog = fmt.Sprintf("Completing %s for %s…", gate, ident.Name)
			return m, m.gateCmd(ident.ID, gate)
		case "d", " ":
			ident := m.currentIdentity()
			if ident == nil {
				return m, nil
			}
			if m.inFlight[ident.ID] {
				m.lastLog = "Still saving — hold on."
				return m, nil
			}
			m.inFlight[ident.ID] = true
			m.lastLog = fmt.Sprintf("Completing the day for %s…", ident.Name)
			return m, m.dayCmd(ident.ID)
		}
	}
	return m, nil
}

func (m boardModel) currentIdentity() *storage.Identity {
	if m.selected < 0 || m.selected >= len(m.identities) {
		return nil
	}
	return &m.identities[m.selected]
}

func dayLogSuffix(day *engine.DayResult) string {
	var b strings.Builder
	if day.TierUp {
		fmt.Fprintf(&b, " — TIER UP %s→%s", day.TierBefore, day.TierAfter)
	} else if day.LevelUp {
		fmt.Fprintf(&b, " — level %d→%d", day.LevelBefore, day.LevelAfter)
	}
	if day.Milestone != nil {
		fmt.Fprintf(&b, " — milestone +%d coins", day.Milestone.Coins)
	}
	if day.Prestiged {
		b.WriteString(" — prestige!")
	}
	return b.String()
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.profile == nil {
		return "Cultivator — loading…"
	}
	rank := engine.CalculateOverallRank(m.profile.StatBody, m.profile.StatMind, m.profile.StatSoul, m.profile.StatWill)
	return fmt.Sprintf("Cultivator | Rank %s (%.2f) | %s%d %s%d %s%.1f",
		rank.RankTier, rank.FinalScore,
		ui.IconCoin, m.profile.Coins, ui.IconStar, m.profile.Stars, ui.IconWill, m.profile.Will)
}

func (m boardModel) renderSidebar() string {
	if m.profile == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Dimensions"}
	lines = append(lines, renderStat("BODY", m.profile.StatBody))
	lines = append(lines, renderStat("MIND", m.profile.StatMind))
	lines = append(lines, renderStat("SOUL", m.profile.StatSoul))
	lines = append(lines, renderStat("WILL", m.profile.StatWill))
	lines = append(lines, "")
	if m.streak != nil {
		visual := engine.StreakVisualState(m.streak.CurrentStreak, m.streak.CurrentLevel)
		lines = append(lines, "Streak")
		lines = append(lines, fmt.Sprintf("- day %d/%d L%d", m.streak.CurrentStreak,
			engine.MilestoneDays(m.streak.CurrentLevel), m.streak.CurrentLevel))
		lines = append(lines, "- "+string(visual.Stage))
		lines = append(lines, "")
	}
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- 1-5: complete gate")
	lines = append(lines, "- d/space: complete day")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Paths")
	if len(m.identities) == 0 {
		out = append(out, "(no identities — cv path \"Monk\")")
		return strings.Join(out, "\n")
	}
	for i, ident := range m.identities {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		bar := progressBar(ident.DaysCompleted, ident.RequiredDays, 16)
		busy := ""
		if m.inFlight[ident.ID] {
			busy = " …"
		}
		out = append(out, fmt.Sprintf("%s%d %s [%s] L%d %s%s",
			cursor, ident.ID, ident.Name, ident.Tier, ident.Level, bar, busy))
		if i == m.selected {
			out = append(out, "    "+m.renderGates(ident.ID))
		}
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderGates(identityID int64) string {
	done := m.gatesDone[identityID]
	parts := make([]string, 0, len(engine.AllGates))
	for idx, g := range engine.AllGates {
		mark := " "
		if done[g] {
			mark = "x"
		}
		parts = append(parts, fmt.Sprintf("[%s]%d %s", mark, idx+1, g))
	}
	return strings.Join(parts, "  ")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func renderStat(label string, value float64) string {
	rank := engine.StatRankValue(value)
	return fmt.Sprintf("- %s R%-2d %.2f", label, rank, value)
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
