package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/entrhq/cookiebot/pkg/timer"
)

// ClickPhase clicks the primary action once per tick for one click window.
// An obscured click is skipped for that tick; the window still runs to the
// end. Any other click failure is returned.
func (b *Bot) ClickPhase(ctx context.Context) (ClickStats, error) {
	var stats ClickStats

	primary, err := b.primaryAction()
	if err != nil {
		return stats, err
	}

	window := timer.New(b.clickWindow,
		timer.WithInterval(b.clickInterval),
		timer.WithClock(b.clock),
	)
	for range window.All() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if err := primary.Click(); err != nil {
			if errors.Is(err, ErrObscured) {
				stats.Skipped++
				b.logger.Debugf("click obscured, skipped (does not affect gameplay)")
				continue
			}
			return stats, fmt.Errorf("failed to click primary action: %w", err)
		}
		stats.Clicked++
	}

	return stats, nil
}

// primaryAction returns the primary action handle, looking it up on first
// use and reusing it afterwards.
func (b *Bot) primaryAction() (Element, error) {
	if b.primary != nil {
		return b.primary, nil
	}

	el, err := b.driver.FindOne(b.locators.PrimaryAction)
	if err != nil {
		return nil, fmt.Errorf("failed to find primary action: %w", err)
	}
	if el == nil {
		return nil, fmt.Errorf("%w: %s", ErrPrimaryActionMissing, b.locators.PrimaryAction)
	}

	b.primary = el
	return el, nil
}
