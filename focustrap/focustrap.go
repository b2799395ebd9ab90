// Package focustrap constrains Tab navigation to a container's focusable
// set. The set is re-queried from the live host on every Tab press because
// trapped content changes while open, and focus returns to where it was
// when the trap deactivates.
package focustrap

import "github.com/hypoth-org/hypoth-ui-sub001/host"

// Options configures a Trap.
type Options struct {
	// Focusables queries the container's focusable elements in tab order.
	// Called on every Tab interception, never cached.
	Focusables func() []host.Element
	// ActiveElement reports the host's currently focused element, used to
	// find the current position and to capture the restore target.
	ActiveElement func() host.Element
	// InitialFocus receives focus on activation. Defaults to the first
	// focusable when the active element is outside the container.
	InitialFocus host.Element
	// ReturnFocus overrides the restore target captured at activation.
	ReturnFocus host.Element
}

// Trap intercepts Tab/Shift+Tab within a container.
type Trap struct {
	opts   Options
	active bool
	prev   host.Element
}

// New creates an inactive trap.
func New(opts Options) *Trap {
	return &Trap{opts: opts}
}

// Activate captures the restore target and moves focus into the container
// if it is not already there. Repeated calls are no-ops.
func (t *Trap) Activate() {
	if t.active {
		return
	}
	t.active = true
	current := t.activeElement()
	t.prev = current
	if t.contains(current) {
		return
	}
	if t.opts.InitialFocus != nil && t.opts.InitialFocus.Connected() {
		t.opts.InitialFocus.Focus()
		return
	}
	if els := t.focusables(); len(els) > 0 {
		els[0].Focus()
	}
}

// Deactivate stops interception and restores focus to the element focused
// at activation (or the configured return target). Restoration is skipped
// without error when the target is gone. Repeated calls are no-ops, and the
// trap tolerates its container having left the host tree.
func (t *Trap) Deactivate() {
	if !t.active {
		return
	}
	t.active = false
	target := t.opts.ReturnFocus
	if target == nil {
		target = t.prev
	}
	t.prev = nil
	if target != nil && target.Connected() {
		target.Focus()
	}
}

// Active reports whether the trap is intercepting.
func (t *Trap) Active() bool { return t.active }

// HandleKeyDown intercepts Tab and Shift+Tab, cycling focus through the
// live-queried focusable set. Reports whether the event was consumed.
func (t *Trap) HandleKeyDown(ev host.KeyEvent) bool {
	if !t.active || ev.Key != host.KeyTab {
		return false
	}
	els := t.focusables()
	if len(els) == 0 {
		// Container emptied or removed while trapped; swallow the Tab so
		// focus cannot escape.
		return true
	}
	current := t.currentIndex(els)
	var next int
	switch {
	case current < 0:
		next = 0
		if ev.Shift {
			next = len(els) - 1
		}
	case ev.Shift:
		next = (current - 1 + len(els)) % len(els)
	default:
		next = (current + 1) % len(els)
	}
	els[next].Focus()
	return true
}

func (t *Trap) focusables() []host.Element {
	if t.opts.Focusables == nil {
		return nil
	}
	els := t.opts.Focusables()
	kept := els[:0:0]
	for _, el := range els {
		if el != nil && el.Connected() {
			kept = append(kept, el)
		}
	}
	return kept
}

func (t *Trap) activeElement() host.Element {
	if t.opts.ActiveElement == nil {
		return nil
	}
	return t.opts.ActiveElement()
}

func (t *Trap) contains(el host.Element) bool {
	if el == nil {
		return false
	}
	for _, candidate := range t.focusables() {
		if candidate.ID() == el.ID() {
			return true
		}
	}
	return false
}

func (t *Trap) currentIndex(els []host.Element) int {
	current := t.activeElement()
	if current == nil {
		return -1
	}
	for i, el := range els {
		if el.ID() == current.ID() {
			return i
		}
	}
	return -1
}
