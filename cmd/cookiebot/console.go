package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/cookiebot/pkg/game"
)

var (
	cookieBrown = lipgloss.Color("#C8936A")
	mintGreen   = lipgloss.Color("#A8E6CF")
	salmonPink  = lipgloss.Color("#FFB3BA")
	mutedGray   = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().
			Foreground(cookieBrown).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cookieBrown).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	cycleStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	noticeStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)
)

// console prints run progress for the person watching the terminal. The
// detailed trail goes to the log file.
type console struct {
	out io.Writer
}

func newConsole(out io.Writer) *console {
	return &console{out: out}
}

func (c *console) banner(url, name, logPath string) {
	fmt.Fprintln(c.out, headerStyle.Render(fmt.Sprintf("cookiebot v%s", version)))
	fmt.Fprintf(c.out, "%s %s\n", labelStyle.Render("game:"), url)
	fmt.Fprintf(c.out, "%s %s\n", labelStyle.Render("bakery:"), name)
	if logPath != "" {
		fmt.Fprintf(c.out, "%s %s\n", labelStyle.Render("log:"), logPath)
	}
	fmt.Fprintln(c.out, labelStyle.Render("press Ctrl-C to stop"))
}

// CycleCompleted implements game.Observer.
func (c *console) CycleCompleted(r game.CycleReport) {
	line := fmt.Sprintf("cycle %d  clicks %d", r.Cycle, r.Clicks.Clicked)
	if r.Clicks.Skipped > 0 {
		line += fmt.Sprintf(" (%d skipped)", r.Clicks.Skipped)
	}
	line += fmt.Sprintf("  upgrades %d  products %d", r.Purchases.Upgrades, r.Purchases.Products)
	fmt.Fprintln(c.out, cycleStyle.Render(line))
}

func (c *console) interrupted() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, noticeStyle.Render("Stopped by user, closing the browser..."))
}

func (c *console) failed(err error) {
	fmt.Fprintln(c.out, noticeStyle.Render(fmt.Sprintf("cookiebot failed: %v", err)))
}
