package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Default values for session options
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultTimeout        = 30 * time.Second
	DefaultClickTimeout   = 500 * time.Millisecond
)

// Options configures a new browser session.
type Options struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout is the default timeout for page operations
	Timeout time.Duration

	// ClickTimeout bounds how long a click waits for its target to become
	// clickable before it is reported as obscured
	ClickTimeout time.Duration

	// SkipInstall skips downloading the Playwright driver and browsers
	SkipInstall bool

	// Logger receives session lifecycle messages
	Logger Logger
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Logger is the logging surface used by the session.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}

// withDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Viewport == nil {
		o.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.ClickTimeout <= 0 {
		o.ClickTimeout = DefaultClickTimeout
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	return o
}

// milliseconds converts d to the float milliseconds Playwright expects.
func milliseconds(d time.Duration) *float64 {
	return playwright.Float(float64(d) / float64(time.Millisecond))
}
