package input

import "time"

// Debouncer suppresses menu intents that re-trigger within a fixed interval,
// so a held button does not fire a menu action every frame.
type Debouncer struct {
	interval time.Duration
	last     [5]time.Time
}

const (
	menuConfirm = iota
	menuCancel
	menuAlt
	menuPause
	menuQuit
)

// NewDebouncer creates a debouncer with the given minimum re-trigger interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Filter returns in with menu intents cleared when they fired less than the
// interval ago. Movement and the special trigger pass through untouched.
func (d *Debouncer) Filter(in Intent, now time.Time) Intent {
	in.Confirm = d.allow(menuConfirm, in.Confirm, now)
	in.Cancel = d.allow(menuCancel, in.Cancel, now)
	in.Alt = d.allow(menuAlt, in.Alt, now)
	in.Pause = d.allow(menuPause, in.Pause, now)
	in.Quit = d.allow(menuQuit, in.Quit, now)
	return in
}

func (d *Debouncer) allow(slot int, pressed bool, now time.Time) bool {
	if !pressed {
		return false
	}
	if !d.last[slot].IsZero() && now.Sub(d.last[slot]) < d.interval {
		return false
	}
	d.last[slot] = now
	return true
}
