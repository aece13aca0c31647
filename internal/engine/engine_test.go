package engine

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"cultivator/internal/logging"
	"cultivator/internal/storage"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func newTestService(t *testing.T) (*Service, *testClock, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	clock := &testClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	svc := NewService(db, logging.Nop(), clock)
	if err := svc.SeedShop(ctx); err != nil {
		t.Fatalf("seed shop: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
	}
	return svc, clock, cleanup
}

func setCoins(t *testing.T, svc *Service, coins int) {
	t.Helper()
	ctx := context.Background()
	p, err := svc.ProfileRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	p.Coins = coins
	if err := svc.ProfileRepo().Update(ctx, p); err != nil {
		t.Fatalf("update profile: %v", err)
	}
}

func TestCreateIdentityDefaults(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	ident, err := svc.CreateIdentity(ctx, CreateIdentityInput{Name: "  Monk  "})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}
	if ident.Name != "Monk" {
		t.Fatalf("name=%q, want trimmed Monk", ident.Name)
	}
	if ident.Tier != string(TierD) || ident.Level != 1 {
		t.Fatalf("new identity at %s/%d, want D/1", ident.Tier, ident.Level)
	}
	if ident.RequiredDays != RequiredDaysForTier(TierD) {
		t.Fatalf("RequiredDays=%d, want %d", ident.RequiredDays, RequiredDaysForTier(TierD))
	}
	if !ident.IsActive {
		t.Fatalf("new identity inactive")
	}

	if _, err := svc.CreateIdentity(ctx, CreateIdentityInput{Name: "   "}); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestRetireIdentityKeepsHistory(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	ident, err := svc.CreateIdentity(ctx, CreateIdentityInput{Name: "Scribe"})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}
	if _, err := svc.CompleteDay(ctx, ident.ID); err != nil {
		t.Fatalf("CompleteDay: %v", err)
	}

	if err := svc.RetireIdentity(ctx, ident.ID); err != nil {
		t.Fatalf("RetireIdentity: %v", err)
	}

	_, err = svc.CompleteDay(ctx, ident.ID)
	if !IsNotFound(err) {
		t.Fatalf("completing retired identity: err=%v, want not-found", err)
	}

	rows, err := svc.HistoryRepo().ListByIdentity(ctx, ident.ID)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("history rows=%d, want 1 preserved", len(rows))
	}
}

func TestGateTasksCompleteTheDay(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	ident, err := svc.CreateIdentity(ctx, CreateIdentityInput{Name: "Monk"})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	perTask := (1.0 / float64(len(AllGates))) / float64(RequiredDaysForTier(TierD))
	for i, gate := range AllGates {
		res, err := svc.CompleteGateTask(ctx, ident.ID, gate)
		if err != nil {
			t.Fatalf("CompleteGateTask(%s): %v", gate, err)
		}
		if math.Abs(res.PointsAwarded-perTask) > 1e-9 {
			t.Fatalf("gate %s award=%v, want %v", gate, res.PointsAwarded, perTask)
		}
		if res.GatesDone != i+1 {
			t.Fatalf("gate %s GatesDone=%d, want %d", gate, res.GatesDone, i+1)
		}
		if i < len(AllGates)-1 {
			if res.DayCompleted || res.Day != nil {
				t.Fatalf("day completed after %d/%d gates", i+1, len(AllGates))
			}
		} else {
			if !res.DayCompleted || res.Day == nil {
				t.Fatalf("last gate did not complete the day")
			}
			if res.Day.StreakDay != 1 {
				t.Fatalf("StreakDay=%d, want 1", res.Day.StreakDay)
			}
		}
	}

	// Two gates feed body, one each for mind/soul/will.
	p, err := svc.ProfileRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if math.Abs(p.StatBody-2*perTask) > 1e-9 {
		t.Fatalf("StatBody=%v, want %v", p.StatBody, 2*perTask)
	}
	if math.Abs(p.StatMind-perTask) > 1e-9 || math.Abs(p.StatSoul-perTask) > 1e-9 || math.Abs(p.StatWill-perTask) > 1e-9 {
		t.Fatalf("stats=%v/%v/%v, want %v each", p.StatMind, p.StatSoul, p.StatWill, perTask)
	}

	ident, err = svc.IdentityRepo().Get(ctx, ident.ID)
	if err != nil {
		t.Fatalf("get identity: %v", err)
	}
	if ident.DaysCompleted != 1 || ident.CurrentStreak != 1 {
		t.Fatalf("identity days=%d streak=%d, want 1/1", ident.DaysCompleted, ident.CurrentStreak)
	}
}

func TestCompleteDayOncePerDay(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	ident, err := svc.CreateIdentity(ctx, CreateIdentityInput{Name: "Monk"})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	first, err := svc.CompleteDay(ctx, ident.ID)
	if err != nil {
		t.Fatalf("CompleteDay #1: %v", err)
	}
	if first.StreakDay != 1 {
		t.Fatalf("first StreakDay=%d, want 1", first.StreakDay)
	}

	second, err := svc.CompleteDay(ctx, ident.ID)
	if err != nil {
		t.Fatalf("CompleteDay #2: %v", err)
	}
	if second.StreakDay != 1 || second.Milestone != nil || second.SubBonus != nil {
		t.Fatalf("second completion advanced the streak: %+v", second)
	}

	row, err := svc.StreakRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if row.CurrentStreak != 1 {
		t.Fatalf("stored streak=%d, want 1", row.CurrentStreak)
	}
}

func TestMilestoneRewardAndPrestige(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	ident, err := svc.CreateIdentity(ctx, CreateIdentityInput{Name: "Monk"})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	// Level 1 milestone sits at day 3.
	var last *DayResult
	for i := 0; i < 3; i++ {
		last, err = svc.CompleteDay(ctx, ident.ID)
		if err != nil {
			t.Fatalf("CompleteDay day %d: %v", i+1, err)
		}
		if i < 2 {
			clock.advanceDays(1)
		}
	}

	if last.Milestone == nil {
		t.Fatalf("day 3: no milestone reward")
	}
	if last.Milestone.Coins != 50 {
		t.Fatalf("milestone coins=%d, want 50", last.Milestone.Coins)
	}
	if last.WillGain != 1 {
		t.Fatalf("will gain=%v, want 1", last.WillGain)
	}
	if !last.Prestiged {
		t.Fatalf("expected prestige after level 1 milestone")
	}

	p, err := svc.ProfileRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.Coins != 50 || p.Will != 1 {
		t.Fatalf("ledger coins=%d will=%v, want 50/1", p.Coins, p.Will)
	}

	row, err := svc.StreakRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if row.CurrentLevel != 2 || row.CurrentStreak != 0 {
		t.Fatalf("after prestige: level=%d streak=%d, want 2/0", row.CurrentLevel, row.CurrentStreak)
	}

	hist, err := svc.StreakRepo().ListHistory(ctx)
	if err != nil {
		t.Fatalf("list streak history: %v", err)
	}
	if len(hist) != 1 || hist[0].Level != 1 || hist[0].MaxStreak != 3 {
		t.Fatalf("prestige history: %+v", hist)
	}
}

func TestEditCalendarReprojects(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	ident, err := svc.CreateIdentity(ctx, CreateIdentityInput{Name: "Monk"})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}

	// Backfill the D-tier requirement ending today.
	var proj *Projection
	for i := RequiredDaysForTier(TierD) - 1; i >= 0; i-- {
		d := clock.now.AddDate(0, 0, -i).Format(DayLayout)
		proj, err = svc.EditCalendar(ctx, ident.ID, d, true)
		if err != nil {
			t.Fatalf("EditCalendar(%s): %v", d, err)
		}
	}
	if proj.Level != 2 || proj.Tier != TierD {
		t.Fatalf("after backfill: %s/%d, want D/2", proj.Tier, proj.Level)
	}
	if proj.StreakDays != RequiredDaysForTier(TierD) {
		t.Fatalf("StreakDays=%d, want %d", proj.StreakDays, RequiredDaysForTier(TierD))
	}

	// Amend one mid-streak day to a miss; level drops back, streak shrinks.
	miss := clock.now.AddDate(0, 0, -2).Format(DayLayout)
	proj, err = svc.EditCalendar(ctx, ident.ID, miss, false)
	if err != nil {
		t.Fatalf("EditCalendar miss: %v", err)
	}
	if proj.Level != 1 {
		t.Fatalf("level after miss=%d, want 1", proj.Level)
	}
	if proj.StreakDays != 2 {
		t.Fatalf("streak after miss=%d, want 2", proj.StreakDays)
	}

	if _, err := svc.EditCalendar(ctx, ident.ID, "03/10/2026", true); err == nil {
		t.Fatalf("expected error for malformed day")
	}
}

func TestPurchaseInflationFlow(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	setCoins(t, svc, 1000)

	first, err := svc.Purchase(ctx, "ticket_small")
	if err != nil {
		t.Fatalf("Purchase #1: %v", err)
	}
	if first.PricePaid != 100 {
		t.Fatalf("first price=%d, want base 100", first.PricePaid)
	}
	if first.TicketID == "" {
		t.Fatalf("missing ticket id")
	}

	second, err := svc.Purchase(ctx, "ticket_small")
	if err != nil {
		t.Fatalf("Purchase #2: %v", err)
	}
	if second.PricePaid != 125 {
		t.Fatalf("second price=%d, want inflated 125", second.PricePaid)
	}
	if second.NewBalance != 1000-100-125 {
		t.Fatalf("balance=%d, want %d", second.NewBalance, 1000-100-125)
	}
	if second.TicketID == first.TicketID {
		t.Fatalf("ticket id reused across purchases")
	}

	// Comfort items never inflate.
	tea1, err := svc.Purchase(ctx, "comfort_tea")
	if err != nil {
		t.Fatalf("Purchase tea #1: %v", err)
	}
	tea2, err := svc.Purchase(ctx, "comfort_tea")
	if err != nil {
		t.Fatalf("Purchase tea #2: %v", err)
	}
	if tea1.PricePaid != 50 || tea2.PricePaid != 50 {
		t.Fatalf("comfort prices=%d/%d, want flat 50", tea1.PricePaid, tea2.PricePaid)
	}

	setCoins(t, svc, 10)
	_, err = svc.Purchase(ctx, "ticket_small")
	var insufficient InsufficientCoinsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("poor purchase err=%v, want InsufficientCoinsError", err)
	}

	_, err = svc.Purchase(ctx, "ticket_imaginary")
	if !IsNotFound(err) {
		t.Fatalf("unknown item err=%v, want not-found", err)
	}
}

func TestShopViewInflatesOnlyTickets(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	setCoins(t, svc, 1000)
	if _, err := svc.Purchase(ctx, "ticket_small"); err != nil {
		t.Fatalf("Purchase: %v", err)
	}

	entries, err := svc.ShopView(ctx)
	if err != nil {
		t.Fatalf("ShopView: %v", err)
	}

	byID := map[string]ShopEntry{}
	for _, e := range entries {
		byID[e.Item.ID] = e
	}

	ticket := byID["ticket_small"]
	if ticket.CurrentPrice == nil {
		t.Fatalf("ticket entry missing current price")
	}
	if *ticket.CurrentPrice != 125 || ticket.InflationPercent != 25 {
		t.Fatalf("ticket quote=%d@%v%%, want 125@25%%", *ticket.CurrentPrice, ticket.InflationPercent)
	}
	if ticket.Band != InflationLow {
		t.Fatalf("ticket band=%s, want low", ticket.Band)
	}
	if ticket.ResetIn == "" {
		t.Fatalf("ticket missing reset countdown")
	}
	if ticket.InventoryCount != 1 {
		t.Fatalf("ticket inventory=%d, want 1", ticket.InventoryCount)
	}

	tea := byID["comfort_tea"]
	if tea.CurrentPrice != nil {
		t.Fatalf("comfort item carries a current price: %d", *tea.CurrentPrice)
	}
}

func TestRunDailyResetNow(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	ident, err := svc.CreateIdentity(ctx, CreateIdentityInput{Name: "Monk"})
	if err != nil {
		t.Fatalf("CreateIdentity: %v", err)
	}
	if _, err := svc.CreateQuest(ctx, CreateQuestInput{Title: "Stretch", IsRecurring: true}); err != nil {
		t.Fatalf("CreateQuest: %v", err)
	}

	report, err := svc.RunDailyResetNow(ctx)
	if err != nil {
		t.Fatalf("reset #1: %v", err)
	}
	if !report.Performed {
		t.Fatalf("first reset not performed")
	}

	again, err := svc.RunDailyResetNow(ctx)
	if err != nil {
		t.Fatalf("reset #2: %v", err)
	}
	if again.Performed {
		t.Fatalf("same-day reset performed twice")
	}

	// Partial day (one gate of five), then cross the boundary.
	if _, err := svc.CompleteGateTask(ctx, ident.ID, GateRooting); err != nil {
		t.Fatalf("CompleteGateTask: %v", err)
	}
	ident, err = svc.IdentityRepo().Get(ctx, ident.ID)
	if err != nil {
		t.Fatalf("get identity: %v", err)
	}
	ident.CurrentStreak = 4
	if err := svc.IdentityRepo().Update(ctx, ident); err != nil {
		t.Fatalf("update identity: %v", err)
	}

	clock.advanceDays(1)
	report, err = svc.RunDailyResetNow(ctx)
	if err != nil {
		t.Fatalf("reset #3: %v", err)
	}
	if !report.Performed {
		t.Fatalf("next-day reset not performed")
	}
	if report.StreakResets != 1 {
		t.Fatalf("StreakResets=%d, want 1 (partial yesterday)", report.StreakResets)
	}
	if report.QuestsMoved != 1 {
		t.Fatalf("QuestsMoved=%d, want 1 (recurring quest)", report.QuestsMoved)
	}

	ident, err = svc.IdentityRepo().Get(ctx, ident.ID)
	if err != nil {
		t.Fatalf("get identity: %v", err)
	}
	if ident.CurrentStreak != 0 {
		t.Fatalf("streak after reset=%d, want 0", ident.CurrentStreak)
	}

	// Yesterday's gate marks are transient and must be gone.
	marks, err := svc.ProgressRepo().ListGateMarks(ctx, ident.ID, clock.now.AddDate(0, 0, -1).Format(DayLayout))
	if err != nil {
		t.Fatalf("list marks: %v", err)
	}
	if len(marks) != 0 {
		t.Fatalf("stale gate marks survived reset: %v", marks)
	}

	quests, err := svc.QuestRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if len(quests) != 1 || quests[0].Day != clock.now.Format(DayLayout) || quests[0].Status != QuestStatusToday {
		t.Fatalf("recurring quest after reset: %+v", quests)
	}
}

func TestBestIdentityOrdering(t *testing.T) {
	svc, clock, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CreateIdentity(ctx, CreateIdentityInput{Name: "Monk"}); err != nil {
		t.Fatalf("CreateIdentity a: %v", err)
	}
	b, err := svc.CreateIdentity(ctx, CreateIdentityInput{Name: "Scribe"})
	if err != nil {
		t.Fatalf("CreateIdentity b: %v", err)
	}

	// Push b a level ahead via calendar backfill.
	for i := RequiredDaysForTier(TierD) - 1; i >= 0; i-- {
		d := clock.now.AddDate(0, 0, -i).Format(DayLayout)
		if _, err := svc.EditCalendar(ctx, b.ID, d, true); err != nil {
			t.Fatalf("EditCalendar: %v", err)
		}
	}

	best, err := svc.BestIdentity(ctx)
	if err != nil {
		t.Fatalf("BestIdentity: %v", err)
	}
	if best == nil || best.ID != b.ID {
		t.Fatalf("best=%+v, want identity %d", best, b.ID)
	}
}

func TestOverallRankFromLedger(t *testing.T) {
	svc, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.ProfileRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	p.StatBody, p.StatMind, p.StatSoul, p.StatWill = 30, 30, 30, 10
	if err := svc.ProfileRepo().Update(ctx, p); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	rank, err := svc.OverallRank(ctx)
	if err != nil {
		t.Fatalf("OverallRank: %v", err)
	}
	if rank.RankTier != "D+" {
		t.Fatalf("rank=%q, want D+", rank.RankTier)
	}
}
