package browser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/cookiebot/pkg/game"
)

// Element wraps a Playwright element handle.
type Element struct {
	handle       playwright.ElementHandle
	clickTimeout time.Duration
}

var _ game.Element = (*Element)(nil)

// Click clicks the element. A click that another element would receive, or
// that cannot happen within the click timeout, fails with game.ErrObscured;
// a click on a detached element fails with game.ErrStale.
func (e *Element) Click() error {
	err := e.handle.Click(playwright.ElementHandleClickOptions{
		Timeout: milliseconds(e.clickTimeout),
	})
	if err != nil {
		return classifyClickError(err)
	}
	return nil
}

// Clear empties an input element.
func (e *Element) Clear() error {
	if err := e.handle.Fill(""); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	return nil
}

// SendText types text into the element key by key.
func (e *Element) SendText(text string) error {
	if err := e.handle.Type(text); err != nil {
		return fmt.Errorf("type failed: %w", err)
	}
	return nil
}

// Playwright reports these conditions only through its messages.
var (
	obscuredMarkers = []string{
		"intercepts pointer events",
		"element is outside of the viewport",
		"element is not visible",
	}
	staleMarkers = []string{
		"not attached to the dom",
		"element is detached",
		"jshandle is disposed",
		"elementhandle is disposed",
	}
)

func classifyClickError(err error) error {
	msg := strings.ToLower(err.Error())

	for _, m := range staleMarkers {
		if strings.Contains(msg, m) {
			return fmt.Errorf("%w: %w", game.ErrStale, err)
		}
	}
	for _, m := range obscuredMarkers {
		if strings.Contains(msg, m) {
			return fmt.Errorf("%w: %w", game.ErrObscured, err)
		}
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", game.ErrObscured, err)
	}

	return fmt.Errorf("click failed: %w", err)
}
