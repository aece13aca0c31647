package engine

import (
	"context"

	"cultivator/internal/storage"
)

// CreateIdentityInput describes a new path adoption.
type CreateIdentityInput struct {
	Name string
}

// CreateIdentity adopts a new path at tier D, level 1.
func (s *Service) CreateIdentity(ctx context.Context, in CreateIdentityInput) (*storage.Identity, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	id, err := s.identities.Insert(ctx, storage.IdentityInsert{
		Name:         name,
		Tier:         string(TierD),
		RequiredDays: RequiredDaysForTier(TierD),
	})
	if err != nil {
		return nil, err
	}
	return s.identities.Get(ctx, id)
}

// RetireIdentity soft-deletes an identity. History rows stay; the identity
// is never hard-deleted while history exists.
func (s *Service) RetireIdentity(ctx context.Context, identityID int64) error {
	if _, err := s.getIdentity(ctx, identityID); err != nil {
		return err
	}
	return s.identities.Deactivate(ctx, identityID)
}

// CreateQuestInput describes a new scheduled quest.
type CreateQuestInput struct {
	Title       string
	IsRecurring bool
}

// CreateQuest schedules a quest for today.
func (s *Service) CreateQuest(ctx context.Context, in CreateQuestInput) (*storage.Quest, error) {
	title, err := normalizeName(in.Title)
	if err != nil {
		return nil, err
	}

	id, err := s.quests.Insert(ctx, storage.QuestInsert{
		Title:       title,
		IsRecurring: in.IsRecurring,
		Status:      QuestStatusToday,
		Day:         s.todayKey(),
	})
	if err != nil {
		return nil, err
	}
	return s.quests.Get(ctx, id)
}

// CompleteQuest marks a quest completed. Recurring quests reopen at the next
// daily reset; completed one-offs are frozen forever.
func (s *Service) CompleteQuest(ctx context.Context, questID int64) error {
	q, err := s.quests.Get(ctx, questID)
	if err != nil {
		return err
	}
	if q == nil {
		return NotFoundError{Resource: "quest", ID: itoa(questID)}
	}
	return s.quests.MarkCompleted(ctx, questID)
}
