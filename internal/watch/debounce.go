package watch

import "time"

// Observation is the result of feeding one polled value to a Debouncer.
// When Stable is false the value is still settling and Value is empty.
type Observation struct {
	Stable bool
	Value  string
}

// Debouncer reports a value as stable once it has not changed for period,
// or once maxWait has passed since the first observation of the current
// window. It resets after every stable report.
type Debouncer struct {
	period  time.Duration
	maxWait time.Duration
	clock   Clock

	open    bool
	opened  time.Time
	changed time.Time
	last    string
}

// NewDebouncer returns a Debouncer using clock for time.
func NewDebouncer(period, maxWait time.Duration, clock Clock) *Debouncer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Debouncer{period: period, maxWait: maxWait, clock: clock}
}

// Observe records value and reports whether the window has settled.
func (d *Debouncer) Observe(value string) Observation {
	now := d.clock.Now()
	if !d.open {
		d.open = true
		d.opened = now
		d.changed = now
		d.last = value
	} else if value != d.last {
		d.last = value
		d.changed = now
	}

	settled := now.Sub(d.changed) >= d.period
	expired := d.maxWait > 0 && now.Sub(d.opened) >= d.maxWait
	if !settled && !expired {
		return Observation{}
	}

	d.Reset()
	return Observation{Stable: true, Value: value}
}

// Reset discards the current window.
func (d *Debouncer) Reset() {
	d.open = false
	d.last = ""
}
