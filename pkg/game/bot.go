// Package game drives one browser session through perpetual play of an
// incremental game: click the primary action for a while, spend everything
// that is affordable, repeat.
//
// The bot never caches purchase candidates. Every purchase is preceded by a
// fresh query because buying anything changes which options are enabled and
// invalidates existing element handles.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/entrhq/cookiebot/pkg/timer"
)

const (
	// DefaultClickWindow is how long each clicking phase lasts.
	DefaultClickWindow = 20 * time.Second
)

// ErrElementNotFound is returned when an element the bot must interact with
// (as opposed to a purchase candidate) is absent.
var ErrElementNotFound = errors.New("element not found")

// Logger is the logging surface the bot writes to. *logging.Logger
// satisfies it.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}

// Bot plays the game through a Driver. It owns the driver for its lifetime
// and is not safe for concurrent use.
type Bot struct {
	driver        Driver
	locators      Locators
	clickWindow   time.Duration
	clickInterval time.Duration
	clock         timer.Clock
	logger        Logger
	observer      Observer

	primary Element
}

// Option configures a Bot.
type Option func(*Bot)

// WithLocators overrides the page selectors. Empty selectors keep their
// defaults.
func WithLocators(l Locators) Option {
	return func(b *Bot) {
		b.locators = l.withDefaults()
	}
}

// WithClickWindow sets the length of each clicking phase.
func WithClickWindow(d time.Duration) Option {
	return func(b *Bot) {
		b.clickWindow = d
	}
}

// WithClickInterval sets the pause between clicks. Zero clicks as fast as
// the driver allows.
func WithClickInterval(d time.Duration) Option {
	return func(b *Bot) {
		b.clickInterval = d
	}
}

// WithClock sets the clock used to pace clicking phases.
func WithClock(c timer.Clock) Option {
	return func(b *Bot) {
		b.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(b *Bot) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithObserver registers an observer notified after every cycle.
func WithObserver(o Observer) Option {
	return func(b *Bot) {
		b.observer = o
	}
}

// NewBot creates a bot driving the given session.
func NewBot(driver Driver, opts ...Option) *Bot {
	b := &Bot{
		driver:      driver,
		locators:    DefaultLocators(),
		clickWindow: DefaultClickWindow,
		clock:       timer.SystemClock,
		logger:      nopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Locators returns the selectors in use.
func (b *Bot) Locators() Locators {
	return b.locators
}

// Run renames the game save once, then alternates clicking and purchasing
// until ctx is cancelled. It returns ctx.Err() on cancellation and the first
// fatal error otherwise.
func (b *Bot) Run(ctx context.Context, name string) error {
	if err := b.Rename(name); err != nil {
		return err
	}

	for cycle := 1; ; cycle++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		started := b.clock.Now()

		clicks, err := b.ClickPhase(ctx)
		if err != nil {
			return err
		}

		purchases, err := b.SpendAll(ctx)
		if err != nil {
			return err
		}

		report := CycleReport{
			Cycle:     cycle,
			Clicks:    clicks,
			Purchases: purchases,
			Duration:  b.clock.Now().Sub(started),
		}
		b.logger.Infof("cycle %d: %d clicks (%d skipped), %d upgrades, %d products",
			report.Cycle, clicks.Clicked, clicks.Skipped, purchases.Upgrades, purchases.Products)
		if b.observer != nil {
			b.observer.CycleCompleted(report)
		}
	}
}

// Rename changes the save name shown on the page: open the rename prompt,
// replace the text of its input and confirm. There is no retry.
func (b *Bot) Rename(name string) error {
	start, err := b.require(b.locators.RenameStart)
	if err != nil {
		return fmt.Errorf("failed to start rename: %w", err)
	}
	if err := start.Click(); err != nil {
		return fmt.Errorf("failed to start rename: %w", err)
	}

	input, err := b.require(b.locators.RenameInput)
	if err != nil {
		return fmt.Errorf("failed to find name input: %w", err)
	}
	if err := input.Clear(); err != nil {
		return fmt.Errorf("failed to clear name input: %w", err)
	}
	if err := input.SendText(name); err != nil {
		return fmt.Errorf("failed to type name: %w", err)
	}

	confirm, err := b.require(b.locators.RenameConfirm)
	if err != nil {
		return fmt.Errorf("failed to confirm rename: %w", err)
	}
	if err := confirm.Click(); err != nil {
		return fmt.Errorf("failed to confirm rename: %w", err)
	}

	b.logger.Infof("renamed to %q", name)
	return nil
}

// require looks up an element that must exist.
func (b *Bot) require(selector string) (Element, error) {
	el, err := b.driver.FindOne(selector)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return el, nil
}
