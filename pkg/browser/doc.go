// Package browser provides the browser session the bot plays through,
// backed by Playwright.
//
// A Session owns one Playwright driver process, one Chromium browser, one
// context and one page. It implements game.Driver: selector lookups return
// element handles whose click failures are mapped onto game.ErrObscured and
// game.ErrStale so the bot can tell recoverable failures from fatal ones.
//
// # Lifecycle
//
//	session, err := browser.Launch(browser.Options{Headless: false})
//	if err != nil {
//	    return err
//	}
//	defer session.Quit()
//
//	if err := session.Open("https://orteil.dashnet.org/cookieclicker/"); err != nil {
//	    return err
//	}
//	if err := session.WaitUntilPresent("#bigCookie", time.Minute); err != nil {
//	    return err
//	}
//
// Quit is idempotent and must run on every exit path.
package browser
