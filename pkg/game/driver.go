package game

import (
	"errors"
	"time"
)

var (
	// ErrObscured is returned by Element.Click when another element would
	// receive the click. The click had no effect on the game.
	ErrObscured = errors.New("click target obscured")

	// ErrStale is returned by Element.Click when the handle no longer refers
	// to an element on the page.
	ErrStale = errors.New("stale element reference")

	// ErrPrimaryActionMissing is returned when the primary action element
	// cannot be found once the page is ready.
	ErrPrimaryActionMissing = errors.New("primary action element not found")
)

// Element is a handle to a page element. A handle is only valid until the
// next action that changes the page; it must be looked up again afterwards.
type Element interface {
	Click() error
	Clear() error
	SendText(text string) error
}

// Driver is the subset of a browser session the bot needs.
type Driver interface {
	// WaitUntilPresent blocks until an element matching selector exists or
	// the timeout elapses.
	WaitUntilPresent(selector string, timeout time.Duration) error

	// FindOne returns the first element matching selector, or nil with no
	// error when nothing matches.
	FindOne(selector string) (Element, error)

	// FindAll returns every element matching selector in document order.
	// No match is an empty slice, not an error.
	FindAll(selector string) ([]Element, error)
}
