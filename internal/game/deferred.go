package game

import "time"

// deferredAction fires once after a delay unless stopped. It has no goroutine
// of its own: the owner polls Due from its tick, so firing happens on the
// caller's goroutine and Stop is always final.
type deferredAction struct {
	due   time.Time
	armed bool
}

// Schedule arms the action to fire delay after now, replacing any pending one.
func (d *deferredAction) Schedule(now time.Time, delay time.Duration) {
	d.due = now.Add(delay)
	d.armed = true
}

// Stop prevents the action from firing. Safe to call multiple times.
func (d *deferredAction) Stop() {
	d.armed = false
}

// Pending reports whether the action is armed.
func (d *deferredAction) Pending() bool {
	return d.armed
}

// Due reports whether the action should fire at now. A true result disarms it.
func (d *deferredAction) Due(now time.Time) bool {
	if !d.armed || now.Before(d.due) {
		return false
	}
	d.armed = false
	return true
}
