package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cultivator/internal/storage"
)

// ShopEntry is a catalog item with its computed price state attached.
// CurrentPrice is set only for inflation-bearing (ticket) items; other
// categories carry no current price at all.
type ShopEntry struct {
	Item             storage.ShopItem
	InventoryCount   int
	CurrentPrice     *int
	InflationPercent float64
	Band             InflationBand
	ResetIn          string
}

// ShopView lists the catalog with inflation applied to the tickets
// category, plus cooldown countdowns. Expired market records are pruned
// opportunistically on the way.
func (s *Service) ShopView(ctx context.Context) ([]ShopEntry, error) {
	now := s.clock.Now()
	if pruned, err := s.market.PruneExpired(ctx, now); err != nil {
		return nil, err
	} else if pruned > 0 {
		s.log.Debug().Int64("pruned", pruned).Msg("expired market records removed")
	}

	items, err := s.shop.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ShopEntry, 0, len(items))
	for _, item := range items {
		entry := ShopEntry{Item: item}

		count, err := s.shop.InventoryCount(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		entry.InventoryCount = count

		if item.Category == TicketCategory {
			quote := CalculateInflation(item.CostCoins, item.BaseInflation, count)
			price := quote.CurrentPrice
			entry.CurrentPrice = &price
			entry.InflationPercent = quote.InflationPercent
			entry.Band = ClassifyInflation(quote.InflationPercent)

			state, err := s.market.Get(ctx, item.ID)
			if err != nil {
				return nil, err
			}
			if state != nil {
				remaining := InflationResetRemaining(state.LastPurchasedAt, time.Duration(state.CooldownHours)*time.Hour, now)
				if remaining > 0 {
					entry.ResetIn = FormatTimeRemaining(remaining)
				}
			}
		}

		out = append(out, entry)
	}
	return out, nil
}

// PurchaseResult reports a completed purchase.
type PurchaseResult struct {
	ItemID     string
	TicketID   string
	PricePaid  int
	NewBalance int
}

// Purchase evaluates the item's current (possibly inflated) price, deducts
// coins, adds the unit to inventory, and overwrites the item's market state
// with a fresh ticket and purchase timestamp.
func (s *Service) Purchase(ctx context.Context, itemID string) (*PurchaseResult, error) {
	item, err := s.shop.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, NotFoundError{Resource: "shop item", ID: itemID}
	}

	price := item.CostCoins
	if item.Category == TicketCategory {
		count, err := s.shop.InventoryCount(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		price = CalculateInflation(item.CostCoins, item.BaseInflation, count).CurrentPrice
	}

	p, err := s.profiles.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	if p.Coins < price {
		return nil, InsufficientCoinsError{Price: price, Balance: p.Coins}
	}
	p.Coins -= price
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	if err := s.shop.IncrementInventory(ctx, item.ID); err != nil {
		return nil, err
	}

	ticket := uuid.NewString()
	if err := s.market.Upsert(ctx, storage.MarketStateRow{
		ItemID:          item.ID,
		TicketID:        ticket,
		LastPurchasedAt: s.clock.Now(),
		CooldownHours:   item.CooldownHours,
		BaseInflation:   item.BaseInflation,
	}); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("item", item.ID).
		Int("price", price).
		Int("balance", p.Coins).
		Msg("purchase completed")

	return &PurchaseResult{
		ItemID:     item.ID,
		TicketID:   ticket,
		PricePaid:  price,
		NewBalance: p.Coins,
	}, nil
}
