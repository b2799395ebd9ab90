// Package viewport tracks which observed elements intersect a container's
// viewport, with a buffer margin so items materialize slightly before they
// scroll into view. It is the engine half of list virtualization: the
// adapter renders and unrenders rows as the tracker reports transitions.
package viewport

import "github.com/hypoth-org/hypoth-ui-sub001/host"

// DefaultMargin is the buffer around the viewport within which elements
// count as visible.
const DefaultMargin = 300.0

// Options configures a Tracker.
type Options struct {
	// Viewport supplies the container's viewport rect on each evaluation.
	Viewport func() host.Rect
	// Margin expands the viewport on every side. Defaults to DefaultMargin
	// when zero; negative values shrink.
	Margin float64
	// OnRender fires exactly once per not-visible → visible transition,
	// including an initially visible Observe.
	OnRender func(id string, el host.Element)
	// OnUnrender fires exactly once per visible → not-visible transition,
	// and for still-visible entries on Unobserve and Destroy.
	OnUnrender func(id string, el host.Element)
	// RequestScroll asks the adapter to scroll an element into view.
	// Behavior is "auto" or "smooth", forwarded verbatim.
	RequestScroll func(el host.Element, behavior string)
}

type entry struct {
	el      host.Element
	id      string
	visible bool
}

// Tracker is the shared observer for one container. Entries are evaluated
// in observation order.
type Tracker struct {
	opts      Options
	order     []*entry
	byElement map[host.Element]*entry
	destroyed bool
}

// NewTracker creates a tracker for one container viewport.
func NewTracker(opts Options) *Tracker {
	if opts.Margin == 0 {
		opts.Margin = DefaultMargin
	}
	return &Tracker{opts: opts, byElement: make(map[host.Element]*entry)}
}

// Observe begins visibility tracking for el under id and evaluates it
// immediately; an initially visible element renders right away.
// Re-observing a tracked element with a new id unrenders the old id first.
func (t *Tracker) Observe(el host.Element, id string) {
	if t.destroyed || el == nil {
		return
	}
	if existing, ok := t.byElement[el]; ok {
		if existing.id == id {
			t.evaluate(existing)
			return
		}
		t.forceUnrender(existing)
		existing.id = id
		t.evaluate(existing)
		return
	}
	e := &entry{el: el, id: id}
	t.byElement[el] = e
	t.order = append(t.order, e)
	t.evaluate(e)
}

// Unobserve stops tracking el, force-unrendering it when still visible.
// Unknown elements are ignored.
func (t *Tracker) Unobserve(el host.Element) {
	e, ok := t.byElement[el]
	if !ok {
		return
	}
	t.forceUnrender(e)
	delete(t.byElement, el)
	for i, candidate := range t.order {
		if candidate == e {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Refresh re-evaluates every tracked element in observation order.
func (t *Tracker) Refresh() {
	if t.destroyed {
		return
	}
	for _, e := range t.order {
		t.evaluate(e)
	}
}

// ScrollToID asks the adapter to scroll the element tracked under id into
// view. Unknown ids are a no-op.
func (t *Tracker) ScrollToID(id string, behavior string) {
	if t.destroyed || t.opts.RequestScroll == nil {
		return
	}
	if behavior == "" {
		behavior = "auto"
	}
	for _, e := range t.order {
		if e.id == id {
			t.opts.RequestScroll(e.el, behavior)
			return
		}
	}
}

// IsVisible reports the tracked visibility of id.
func (t *Tracker) IsVisible(id string) bool {
	for _, e := range t.order {
		if e.id == id {
			return e.visible
		}
	}
	return false
}

// Len returns the number of tracked elements.
func (t *Tracker) Len() int { return len(t.order) }

// Destroy force-unrenders all visible entries and drops every callback
// registration. Safe to call repeatedly.
func (t *Tracker) Destroy() {
	if t.destroyed {
		return
	}
	for _, e := range t.order {
		t.forceUnrender(e)
	}
	t.destroyed = true
	t.order = nil
	t.byElement = nil
}

func (t *Tracker) evaluate(e *entry) {
	visible := t.inView(e.el)
	if visible == e.visible {
		return
	}
	e.visible = visible
	if visible {
		if t.opts.OnRender != nil {
			t.opts.OnRender(e.id, e.el)
		}
	} else if t.opts.OnUnrender != nil {
		t.opts.OnUnrender(e.id, e.el)
	}
}

func (t *Tracker) forceUnrender(e *entry) {
	if !e.visible {
		return
	}
	e.visible = false
	if t.opts.OnUnrender != nil {
		t.opts.OnUnrender(e.id, e.el)
	}
}

func (t *Tracker) inView(el host.Element) bool {
	if !el.Connected() {
		return false
	}
	view := host.Rect{}
	if t.opts.Viewport != nil {
		view = t.opts.Viewport()
	}
	return view.Expand(t.opts.Margin).Intersects(el.Bounds())
}
