package game

import (
	"context"
	"errors"
	"fmt"
)

// SpendAll buys every affordable upgrade, cheapest first, then every
// affordable product, most expensive first.
func (b *Bot) SpendAll(ctx context.Context) (Purchases, error) {
	var p Purchases

	upgrades, err := b.BuyUpgrades(ctx)
	p.Upgrades = upgrades
	if err != nil {
		return p, err
	}

	products, err := b.BuyProducts(ctx)
	p.Products = products
	return p, err
}

// BuyUpgrades repeatedly buys the cheapest enabled upgrade until none is
// enabled. If a handle goes stale between query and click the loop ends
// early; the remaining upgrades wait for the next cycle.
func (b *Bot) BuyUpgrades(ctx context.Context) (int, error) {
	bought := 0
	for {
		if err := ctx.Err(); err != nil {
			return bought, err
		}

		upgrade, err := b.driver.FindOne(b.locators.EnabledUpgrade)
		if err != nil {
			return bought, fmt.Errorf("failed to query upgrades: %w", err)
		}
		if upgrade == nil {
			return bought, nil
		}

		if err := upgrade.Click(); err != nil {
			if errors.Is(err, ErrStale) {
				return bought, b.logStaleStop(bought)
			}
			return bought, fmt.Errorf("failed to buy upgrade: %w", err)
		}
		bought++
		b.logger.Debugf("bought upgrade #%d", bought)
	}
}

func (b *Bot) logStaleStop(bought int) error {
	left, err := b.EnabledUpgrades()
	if err != nil {
		return err
	}
	b.logger.Debugf("upgrade went stale after %d purchases, %d still enabled", bought, len(left))
	return nil
}

// EnabledUpgrades returns every currently enabled upgrade, cheapest first.
func (b *Bot) EnabledUpgrades() ([]Element, error) {
	upgrades, err := b.driver.FindAll(b.locators.EnabledUpgrade)
	if err != nil {
		return nil, fmt.Errorf("failed to query upgrades: %w", err)
	}
	return upgrades, nil
}

// BuyProducts selects single-unit bulk mode, then repeatedly buys the most
// expensive enabled product until none is enabled.
func (b *Bot) BuyProducts(ctx context.Context) (int, error) {
	toggle, err := b.require(b.locators.BulkMode)
	if err != nil {
		return 0, fmt.Errorf("failed to find bulk mode toggle: %w", err)
	}
	if err := toggle.Click(); err != nil {
		return 0, fmt.Errorf("failed to select bulk mode: %w", err)
	}

	bought := 0
	for {
		if err := ctx.Err(); err != nil {
			return bought, err
		}

		products, err := b.driver.FindAll(b.locators.EnabledProduct)
		if err != nil {
			return bought, fmt.Errorf("failed to query products: %w", err)
		}
		if len(products) == 0 {
			return bought, nil
		}

		if err := products[len(products)-1].Click(); err != nil {
			return bought, fmt.Errorf("failed to buy product: %w", err)
		}
		bought++
		b.logger.Debugf("bought product #%d (%d were enabled)", bought, len(products))
	}
}
