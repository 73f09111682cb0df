package game

import (
	"fmt"
	"time"
)

// recorder collects the actions performed on fake elements in order.
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...interface{}) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

type fakeElement struct {
	name string
	rec  *recorder

	// clickErrs is consumed one entry per click; nil entries succeed.
	clickErrs []error
	onClick   func()
}

func (e *fakeElement) Click() error {
	if e.onClick != nil {
		e.onClick()
	}
	if len(e.clickErrs) > 0 {
		err := e.clickErrs[0]
		e.clickErrs = e.clickErrs[1:]
		if err != nil {
			return err
		}
	}
	e.rec.add("click %s", e.name)
	return nil
}

func (e *fakeElement) Clear() error {
	e.rec.add("clear %s", e.name)
	return nil
}

func (e *fakeElement) SendText(text string) error {
	e.rec.add("type %s %s", e.name, text)
	return nil
}

// fakeDriver serves a scripted sequence of snapshots per selector. Each query
// consumes one snapshot; the last one repeats.
type fakeDriver struct {
	snapshots map[string][][]Element
	queries   map[string]int
	findErr   map[string]error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		snapshots: make(map[string][][]Element),
		queries:   make(map[string]int),
		findErr:   make(map[string]error),
	}
}

func (d *fakeDriver) script(selector string, snapshots ...[]Element) {
	d.snapshots[selector] = snapshots
}

func (d *fakeDriver) next(selector string) []Element {
	d.queries[selector]++
	snaps := d.snapshots[selector]
	if len(snaps) == 0 {
		return nil
	}
	snap := snaps[0]
	if len(snaps) > 1 {
		d.snapshots[selector] = snaps[1:]
	}
	return snap
}

func (d *fakeDriver) WaitUntilPresent(selector string, timeout time.Duration) error {
	return nil
}

func (d *fakeDriver) FindOne(selector string) (Element, error) {
	if err := d.findErr[selector]; err != nil {
		return nil, err
	}
	snap := d.next(selector)
	if len(snap) == 0 {
		return nil, nil
	}
	return snap[0], nil
}

func (d *fakeDriver) FindAll(selector string) ([]Element, error) {
	if err := d.findErr[selector]; err != nil {
		return nil, err
	}
	return d.next(selector), nil
}

// stepClock advances by step on every Sleep and when Tick is called.
type stepClock struct {
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func (c *stepClock) Tick(d time.Duration) { c.now = c.now.Add(d) }

func elements(rec *recorder, names ...string) []Element {
	out := make([]Element, 0, len(names))
	for _, n := range names {
		out = append(out, &fakeElement{name: n, rec: rec})
	}
	return out
}
