package engine

import (
	"context"

	"cultivator/internal/storage"
)

// Achievement is a badge the cultivator can earn.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker derives earned badges from current state.
type AchievementChecker struct {
	profile    *storage.Profile
	identities []storage.Identity
	streak     *storage.StreakStateRow
	prestige   []storage.StreakHistoryRow
}

func NewAchievementChecker(profile *storage.Profile, identities []storage.Identity, streak *storage.StreakStateRow, prestige []storage.StreakHistoryRow) *AchievementChecker {
	return &AchievementChecker{
		profile:    profile,
		identities: identities,
		streak:     streak,
		prestige:   prestige,
	}
}

// GetAchievements returns all achievements with their earned status.
func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		c.tierAchievement("first_ascent", "First Ascent", "Reach tier D+", "🌱", TierDPlus),
		c.tierAchievement("proven", "Proven", "Reach tier C", "🌿", TierC),
		c.tierAchievement("tempered", "Tempered", "Reach tier B", "🔥", TierB),
		c.tierAchievement("ascendant", "Ascendant", "Reach tier A", "⭐", TierA),
		c.tierAchievement("sovereign", "Sovereign", "Reach tier S", "🌟", TierS),
		c.tierAchievement("transcendent", "Transcendent", "Reach tier SSS", "💫", TierSSS),

		c.streakAchievement("kindled", "Kindled", "Reach a 3-day streak", "🕯️", 3),
		c.streakAchievement("burning", "Burning", "Reach a 7-day streak", "🔥", 7),
		c.streakAchievement("eternal_flame", "Eternal Flame", "Reach a 21-day streak", "☄️", 21),

		c.prestigeAchievement("reborn", "Reborn", "Complete a prestige cycle", "🌀"),
		c.willAchievement("iron_will", "Iron Will", "Earn 5 Will", "🗿", 5),
		c.willAchievement("unbreakable", "Unbreakable", "Earn the full Will ladder", "💎", 12),
	}
}

// CountEarned returns how many achievements have been earned.
func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

// CountTotal returns total number of achievements.
func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) tierAchievement(id, name, desc, icon string, tier Tier) Achievement {
	earned := false
	want := TierIndex(tier)
	for _, ident := range c.identities {
		if TierIndex(Tier(ident.Tier)) >= want {
			earned = true
			break
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) streakAchievement(id, name, desc, icon string, days int) Achievement {
	earned := c.streak != nil && c.streak.MaxStreak >= days
	if !earned {
		for _, h := range c.prestige {
			if h.MaxStreak >= days {
				earned = true
				break
			}
		}
	}
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) prestigeAchievement(id, name, desc, icon string) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: len(c.prestige) > 0}
}

func (c *AchievementChecker) willAchievement(id, name, desc, icon string, will float64) Achievement {
	earned := c.streak != nil && c.streak.TotalWillEarned >= will
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

// GetAchievementsForProfile is a convenience function.
func GetAchievementsForProfile(ctx context.Context, svc *Service) ([]Achievement, error) {
	profile, err := svc.ProfileRepo().GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	identities, err := svc.IdentityRepo().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	streak, err := svc.StreakRepo().GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	prestige, err := svc.StreakRepo().ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	checker := NewAchievementChecker(profile, identities, streak, prestige)
	return checker.GetAchievements(), nil
}
