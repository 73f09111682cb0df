package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/cookiebot/pkg/game"
)

// Session is a single browser page driven through Playwright.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	opts Options

	quitOnce sync.Once
	quitErr  error
}

var _ game.Driver = (*Session)(nil)

// Launch installs (unless skipped) and starts Playwright, then opens a
// Chromium page. On failure everything started so far is released.
func Launch(opts Options) (*Session, error) {
	opts = opts.withDefaults()

	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if !opts.SkipInstall {
		opts.Logger.Infof("installing playwright driver")
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	s := &Session{pw: pw, opts: opts}

	s.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		s.Quit()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	s.context, err = s.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	})
	if err != nil {
		s.Quit()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	s.page, err = s.context.NewPage()
	if err != nil {
		s.Quit()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	s.page.SetDefaultTimeout(*milliseconds(opts.Timeout))

	opts.Logger.Infof("browser launched (headless=%v, viewport=%dx%d)",
		opts.Headless, opts.Viewport.Width, opts.Viewport.Height)
	return s, nil
}

// Open navigates the page to url.
func (s *Session) Open(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	s.opts.Logger.Infof("opened %s", url)
	return nil
}

// WaitUntilPresent blocks until an element matching selector is attached to
// the page or the timeout elapses.
func (s *Session) WaitUntilPresent(selector string, timeout time.Duration) error {
	_, err := s.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: milliseconds(timeout),
	})
	if err != nil {
		return fmt.Errorf("wait for %s failed: %w", selector, err)
	}
	return nil
}

// FindOne returns the first element matching selector, or nil when there is
// none.
func (s *Session) FindOne(selector string) (game.Element, error) {
	handle, err := s.page.QuerySelector(selector)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}
	if handle == nil {
		return nil, nil
	}
	return s.wrap(handle), nil
}

// FindAll returns every element matching selector in document order.
func (s *Session) FindAll(selector string) ([]game.Element, error) {
	handles, err := s.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, fmt.Errorf("selector query failed: %w", err)
	}

	elements := make([]game.Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, s.wrap(h))
	}
	return elements, nil
}

func (s *Session) wrap(handle playwright.ElementHandle) *Element {
	return &Element{
		handle:       handle,
		clickTimeout: s.opts.ClickTimeout,
	}
}

// URL returns the page's current URL.
func (s *Session) URL() string {
	if s.page == nil {
		return ""
	}
	return s.page.URL()
}

// Quit closes the page, context and browser and stops Playwright. Only the
// first call does anything; later calls return the first result.
func (s *Session) Quit() error {
	s.quitOnce.Do(func() {
		var errs []error
		if s.page != nil {
			if err := s.page.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if s.context != nil {
			if err := s.context.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
			}
		}

		if len(errs) > 0 {
			s.quitErr = fmt.Errorf("errors closing session: %v", errs)
			return
		}
		s.opts.Logger.Infof("browser closed")
	})
	return s.quitErr
}
