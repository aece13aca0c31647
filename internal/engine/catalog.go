package engine

import (
	"context"

	"cultivator/internal/storage"
)

// builtinShopItems is the seed catalog. Ticket items inflate with held
// inventory; comfort items keep a flat price.
func builtinShopItems() []storage.ShopItem {
	return []storage.ShopItem{
		{
			ID:            "ticket_small",
			Title:         "Lesser Reward Ticket",
			Category:      TicketCategory,
			CostCoins:     100,
			BaseInflation: 0.25,
			CooldownHours: 24,
		},
		{
			ID:            "ticket_large",
			Title:         "Greater Reward Ticket",
			Category:      TicketCategory,
			CostCoins:     400,
			BaseInflation: 0.25,
			CooldownHours: 48,
		},
		{
			ID:        "comfort_tea",
			Title:     "Evening Tea",
			Category:  "comforts",
			CostCoins: 50,
		},
		{
			ID:        "comfort_rest",
			Title:     "Rest Day Pass",
			Category:  "comforts",
			CostCoins: 250,
		},
	}
}

// SeedShop ensures the built-in catalog rows exist, updating any whose
// definitions changed between releases.
func (s *Service) SeedShop(ctx context.Context) error {
	for _, item := range builtinShopItems() {
		if err := s.shop.Upsert(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
