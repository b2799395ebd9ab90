// Package typeahead buffers printable keystrokes and matches items by
// case-insensitive prefix, so typing "ap" lands on "Apricot" rather than
// cycling through every "a" entry.
package typeahead

import (
	"strings"
	"sync"
	"time"

	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// DefaultTimeout is how long the buffer survives between keystrokes.
const DefaultTimeout = 500 * time.Millisecond

// Options configures a TypeAhead.
type Options struct {
	// Timeout clears the buffer after a quiet period. Defaults to
	// DefaultTimeout when zero or negative.
	Timeout time.Duration
	// Items lazily supplies the candidate strings in display order.
	Items func() []string
	// OnMatch fires with the first item whose lowercased form has the
	// accumulated buffer as prefix.
	OnMatch func(item string, index int)
}

// TypeAhead accumulates characters and schedules the reset timer. Only one
// timer is ever pending; each keystroke reschedules rather than stacking.
type TypeAhead struct {
	opts Options

	mu        sync.Mutex
	buffer    string
	timer     *time.Timer
	destroyed bool
}

// New creates a TypeAhead.
func New(opts Options) *TypeAhead {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &TypeAhead{opts: opts}
}

// HandleKeyDown consumes single printable-character keys, appending to the
// buffer and attempting a match. Reports whether the event was consumed.
func (t *TypeAhead) HandleKeyDown(ev host.KeyEvent) bool {
	if !ev.Printable() {
		return false
	}
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return false
	}
	t.buffer += strings.ToLower(ev.Key)
	buffer := t.buffer
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.opts.Timeout, t.Reset)
	t.mu.Unlock()

	t.match(buffer)
	return true
}

// Buffer returns the accumulated lowercase buffer.
func (t *TypeAhead) Buffer() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buffer
}

// Reset clears the buffer and cancels the pending timer.
func (t *TypeAhead) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buffer = ""
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Destroy resets and disables the type-ahead. Safe to call repeatedly.
func (t *TypeAhead) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.destroyed = true
	t.buffer = ""
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *TypeAhead) match(buffer string) {
	if t.opts.Items == nil || t.opts.OnMatch == nil || buffer == "" {
		return
	}
	for i, item := range t.opts.Items() {
		if strings.HasPrefix(strings.ToLower(item), buffer) {
			t.opts.OnMatch(item, i)
			return
		}
	}
}
