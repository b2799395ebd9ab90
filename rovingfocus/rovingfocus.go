// Package rovingfocus manages the single tab stop of a composite widget:
// exactly one enabled item carries tabindex 0 while its siblings carry -1,
// and arrow keys move the stop per the roving-tabindex pattern.
package rovingfocus

import "github.com/hypoth-org/hypoth-ui-sub001/host"

// Orientation selects which arrow-key axis moves focus.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Item is one navigable entry. Element is optional; when present the roving
// focus calls Focus() on it as the stop moves.
type Item struct {
	Value    string
	Disabled bool
	Element  host.Element
}

// Options configures a Roving. Every field has a usable zero value.
type Options struct {
	Orientation Orientation
	// Loop wraps navigation at the ends instead of stopping.
	Loop bool
	// SkipDisabled excludes disabled items from navigation targets. They
	// remain registered and keep tabindex -1.
	SkipDisabled bool
	// OnActiveChange fires when the tab stop moves to a new item.
	OnActiveChange func(value string, index int)
}

// Roving tracks the active tab stop over a caller-supplied item list.
type Roving struct {
	opts      Options
	items     []Item
	active    int
	destroyed bool
}

// New creates a roving focus with no items. Call SetItems before navigating.
func New(opts Options) *Roving {
	return &Roving{opts: opts, active: -1}
}

// SetItems replaces the item list. The active stop is kept when its value is
// still present and enabled; otherwise it falls back to the first enabled
// item, or none.
func (r *Roving) SetItems(items []Item) {
	if r.destroyed {
		return
	}
	prev := ""
	if r.active >= 0 && r.active < len(r.items) {
		prev = r.items[r.active].Value
	}
	r.items = append(r.items[:0:0], items...)
	r.active = -1
	if prev != "" {
		for i, item := range r.items {
			if item.Value == prev && r.navigable(i) {
				r.active = i
				return
			}
		}
	}
	r.active = r.firstEnabled()
}

// Active returns the active item's value and index, or "" and -1.
func (r *Roving) Active() (string, int) {
	if r.active < 0 || r.active >= len(r.items) {
		return "", -1
	}
	return r.items[r.active].Value, r.active
}

// SetActive moves the stop to the item with the given value. Stale or
// disabled values are ignored.
func (r *Roving) SetActive(value string) {
	if r.destroyed {
		return
	}
	for i, item := range r.items {
		if item.Value == value && r.navigable(i) {
			r.moveTo(i)
			return
		}
	}
}

// Next moves the stop to the next enabled item.
func (r *Roving) Next() { r.step(1) }

// Prev moves the stop to the previous enabled item.
func (r *Roving) Prev() { r.step(-1) }

// First moves the stop to the first enabled item.
func (r *Roving) First() {
	if r.destroyed {
		return
	}
	if i := r.firstEnabled(); i >= 0 {
		r.moveTo(i)
	}
}

// Last moves the stop to the last enabled item.
func (r *Roving) Last() {
	if r.destroyed {
		return
	}
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.navigable(i) {
			r.moveTo(i)
			return
		}
	}
}

// HandleKeyDown applies arrow/Home/End navigation and reports whether the
// event was consumed.
func (r *Roving) HandleKeyDown(ev host.KeyEvent) bool {
	if r.destroyed {
		return false
	}
	next, prev := host.KeyArrowDown, host.KeyArrowUp
	if r.opts.Orientation == Horizontal {
		next, prev = host.KeyArrowRight, host.KeyArrowLeft
	}
	switch ev.Key {
	case next:
		r.Next()
	case prev:
		r.Prev()
	case host.KeyHome:
		r.First()
	case host.KeyEnd:
		r.Last()
	default:
		return false
	}
	return true
}

// ItemProps returns the tabindex map for the item at index i.
func (r *Roving) ItemProps(i int) map[string]string {
	props := map[string]string{"tabindex": "-1"}
	if i == r.active {
		props["tabindex"] = "0"
	}
	if i >= 0 && i < len(r.items) && r.items[i].Disabled {
		props["aria-disabled"] = "true"
	}
	return props
}

// Destroy releases the roving focus. Navigation afterwards is a no-op and
// repeated calls are harmless.
func (r *Roving) Destroy() {
	r.destroyed = true
	r.items = nil
	r.active = -1
}

func (r *Roving) navigable(i int) bool {
	if i < 0 || i >= len(r.items) {
		return false
	}
	return !r.opts.SkipDisabled || !r.items[i].Disabled
}

func (r *Roving) firstEnabled() int {
	for i := range r.items {
		if r.navigable(i) {
			return i
		}
	}
	return -1
}

// step advances the stop by delta, wrapping when Loop is set. With no
// enabled items it is a no-op.
func (r *Roving) step(delta int) {
	if r.destroyed || len(r.items) == 0 {
		return
	}
	n := len(r.items)
	start := r.active
	if start < 0 {
		r.First()
		return
	}
	i := start
	for range r.items {
		i += delta
		if i < 0 || i >= n {
			if !r.opts.Loop {
				return
			}
			i = (i + n) % n
		}
		if r.navigable(i) {
			r.moveTo(i)
			return
		}
	}
}

func (r *Roving) moveTo(i int) {
	if i == r.active {
		return
	}
	r.active = i
	item := r.items[i]
	if item.Element != nil && item.Element.Connected() {
		item.Element.Focus()
	}
	if r.opts.OnActiveChange != nil {
		r.opts.OnActiveChange(item.Value, i)
	}
}
