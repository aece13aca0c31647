package storage

import "time"

// Profile is the single local user's ledger and daily-reset stamp.
type Profile struct {
	Key           string
	Coins         int
	Stars         int
	Will          float64
	StatBody      float64
	StatMind      float64
	StatSoul      float64
	StatWill      float64
	LastResetDate string
}

// Identity is a user's instantiation of a cultivation path. Derived
// progression fields are a cached projection of the history log.
type Identity struct {
	ID            int64
	Name          string
	Tier          string
	Level         int
	DaysCompleted int
	RequiredDays  int
	CurrentStreak int
	IsActive      bool
	CreatedAt     time.Time
}

// HistoryRow is one calendar day's completion record for an identity.
type HistoryRow struct {
	IdentityID int64
	Day        string
	Completed  bool
}

// DailyProgressRow summarizes one identity-day: percentage of gates done
// and whether the day counted as completed.
type DailyProgressRow struct {
	IdentityID int64
	Day        string
	Percentage float64
	Completed  bool
}

// GateMark is a transient per-day record of a completed gate task.
type GateMark struct {
	IdentityID int64
	Day        string
	Gate       string
}

// LevelProgressRow is the persisted per-(identity, level) accrual state.
type LevelProgressRow struct {
	IdentityID  int64
	Level       int
	TotalPoints float64
	Gates       map[string]float64
}

// StreakStateRow is the persisted prestige ladder state.
type StreakStateRow struct {
	Key             string
	CurrentStreak   int
	MaxStreak       int
	CurrentLevel    int
	TotalWillEarned float64
}

// StreakHistoryRow is one archived prestige cycle.
type StreakHistoryRow struct {
	ID         int64
	Level      int
	MaxStreak  int
	RecordedAt time.Time
}

// ShopItem is a purchasable catalog entry.
type ShopItem struct {
	ID            string
	Title         string
	Category      string
	CostCoins     int
	BaseInflation float64
	CooldownHours int
}

// MarketStateRow is the per-item purchase/inflation record, overwritten on
// every purchase.
type MarketStateRow struct {
	ItemID          string
	TicketID        string
	LastPurchasedAt time.Time
	CooldownHours   int
	BaseInflation   float64
}

// Quest is a schedulable one-off or recurring item.
type Quest struct {
	ID          int64
	Title       string
	IsRecurring bool
	Status      string
	Day         string
}
