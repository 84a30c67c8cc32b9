package grid

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is the quiet period before a typed filter term is committed.
const DefaultDebounce = 300 * time.Millisecond

var lastDebouncerID int64

func nextDebouncerID() int {
	return int(atomic.AddInt64(&lastDebouncerID, 1))
}

// DebounceMsg is delivered when a debounce window elapses. Only the message
// carrying the newest tag for its debouncer commits anything.
type DebounceMsg struct {
	id  int
	tag int
}

// Debouncer holds a filter term: raw updates on every keystroke, committed
// only after input has been quiet for Delay. Each Input resets the window.
type Debouncer struct {
	Delay time.Duration

	id        int
	tag       int
	raw       string
	committed string

	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

// NewDebouncer returns a debouncer with the given delay; zero uses
// DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{Delay: delay, id: nextDebouncerID(), tick: tea.Tick}
}

// Input records a new raw value and returns the command that fires when the
// window closes.
func (d *Debouncer) Input(value string) tea.Cmd {
	d.raw = value
	d.tag++
	id, tag := d.id, d.tag
	return d.tick(d.Delay, func(time.Time) tea.Msg {
		return DebounceMsg{id: id, tag: tag}
	})
}

// Update consumes a DebounceMsg. It returns true when the message was the
// latest one for this debouncer and the committed term changed.
func (d *Debouncer) Update(msg tea.Msg) bool {
	m, ok := msg.(DebounceMsg)
	if !ok || m.id != d.id || m.tag != d.tag {
		return false
	}
	if d.committed == d.raw {
		return false
	}
	d.committed = d.raw
	return true
}

// Flush commits raw immediately and invalidates pending windows.
func (d *Debouncer) Flush() bool {
	d.tag++
	changed := d.committed != d.raw
	d.committed = d.raw
	return changed
}

// Reset clears both terms and invalidates pending windows.
func (d *Debouncer) Reset() {
	d.tag++
	d.raw = ""
	d.committed = ""
}

// Cancel invalidates pending windows without committing. Call it when the
// owning component is torn down.
func (d *Debouncer) Cancel() { d.tag++ }

// Raw returns the value shown in the input control.
func (d *Debouncer) Raw() string { return d.raw }

// Committed returns the term the filter pipeline consumes.
func (d *Debouncer) Committed() string { return d.committed }
