package game

import "time"

// ClickStats summarizes one clicking phase.
type ClickStats struct {
	// Clicked is the number of clicks that reached the primary action.
	Clicked int

	// Skipped is the number of ticks whose click was obscured.
	Skipped int
}

// Purchases counts what one purchasing phase bought.
type Purchases struct {
	Upgrades int
	Products int
}

// Total returns the number of purchases of either kind.
func (p Purchases) Total() int {
	return p.Upgrades + p.Products
}

// CycleReport describes one click-then-purchase cycle.
type CycleReport struct {
	Cycle     int
	Clicks    ClickStats
	Purchases Purchases
	Duration  time.Duration
}

// Observer is notified after every completed cycle.
type Observer interface {
	CycleCompleted(report CycleReport)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(CycleReport)

// CycleCompleted calls f(report).
func (f ObserverFunc) CycleCompleted(report CycleReport) {
	f(report)
}
