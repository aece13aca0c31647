package engine

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cultivator/internal/storage"
)

// Clock supplies "now" so tests can pin arbitrary dates. Daily-boundary
// detection is the caller's job; the engines only compute state for a
// claimed today.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// FixedClock pins Now to a single instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time { return c.Instant }

// Service wires the rule engines to the repositories and the reward ledger
// (the profile's coin/star/stat balances).
type Service struct {
	db    *sql.DB
	log   zerolog.Logger
	clock Clock

	profiles   *storage.ProfileRepo
	identities *storage.IdentityRepo
	history    *storage.HistoryRepo
	progress   *storage.ProgressRepo
	levels     *storage.LevelRepo
	streaks    *storage.StreakRepo
	shop       *storage.ShopRepo
	market     *storage.MarketRepo
	quests     *storage.QuestRepo
}

func NewService(db *sql.DB, log zerolog.Logger, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock()
	}
	return &Service{
		db:         db,
		log:        log,
		clock:      clock,
		profiles:   storage.NewProfileRepo(db),
		identities: storage.NewIdentityRepo(db),
		history:    storage.NewHistoryRepo(db),
		progress:   storage.NewProgressRepo(db),
		levels:     storage.NewLevelRepo(db),
		streaks:    storage.NewStreakRepo(db),
		shop:       storage.NewShopRepo(db),
		market:     storage.NewMarketRepo(db),
		quests:     storage.NewQuestRepo(db),
	}
}

func (s *Service) ProfileRepo() *storage.ProfileRepo   { return s.profiles }
func (s *Service) IdentityRepo() *storage.IdentityRepo { return s.identities }
func (s *Service) HistoryRepo() *storage.HistoryRepo   { return s.history }
func (s *Service) ProgressRepo() *storage.ProgressRepo { return s.progress }
func (s *Service) StreakRepo() *storage.StreakRepo     { return s.streaks }
func (s *Service) ShopRepo() *storage.ShopRepo         { return s.shop }
func (s *Service) QuestRepo() *storage.QuestRepo       { return s.quests }

func (s *Service) todayKey() string {
	return s.clock.Now().Format(DayLayout)
}

// Today returns the clock's current day key (YYYY-MM-DD).
func (s *Service) Today() string { return s.todayKey() }

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.New("name is required")
	}
	return n, nil
}

// getIdentity returns an active identity or a NotFoundError.
func (s *Service) getIdentity(ctx context.Context, id int64) (*storage.Identity, error) {
	ident, err := s.identities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ident == nil || !ident.IsActive {
		return nil, NotFoundError{Resource: "identity", ID: itoa(id)}
	}
	return ident, nil
}

// OverallRank computes the weighted rank across the profile's four stat
// dimensions.
func (s *Service) OverallRank(ctx context.Context) (OverallRank, error) {
	p, err := s.profiles.GetOrCreateMain(ctx)
	if err != nil {
		return OverallRank{}, err
	}
	return CalculateOverallRank(p.StatBody, p.StatMind, p.StatSoul, p.StatWill), nil
}

// BestIdentity returns the furthest-progressed active identity, ordered by
// tier index, then level, then days completed. Nil when none exist.
func (s *Service) BestIdentity(ctx context.Context) (*storage.Identity, error) {
	idents, err := s.identities.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	var best *storage.Identity
	for i := range idents {
		cur := &idents[i]
		if best == nil || identityLess(best, cur) {
			best = cur
		}
	}
	return best, nil
}

func identityLess(a, b *storage.Identity) bool {
	ai, bi := TierIndex(Tier(a.Tier)), TierIndex(Tier(b.Tier))
	if ai != bi {
		return ai < bi
	}
	if a.Level != b.Level {
		return a.Level < b.Level
	}
	return a.DaysCompleted < b.DaysCompleted
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
