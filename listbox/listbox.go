// Package listbox bundles roving focus, type-ahead, and selection behind a
// single keyboard entry point, implementing the listbox/option pattern for
// list-like widgets. Callers feed items and events; the composite sequences
// the primitives.
package listbox

import (
	"time"

	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
	"github.com/hypoth-org/hypoth-ui-sub001/rovingfocus"
	"github.com/hypoth-org/hypoth-ui-sub001/selection"
	"github.com/hypoth-org/hypoth-ui-sub001/typeahead"
)

// Item is one listbox option.
type Item struct {
	Value    string
	Label    string
	Disabled bool
	Element  host.Element
}

// Options configures a Listbox.
type Options struct {
	// Mode selects single or multiple selection. Defaults to single.
	Mode selection.Mode
	// RangeSelect enables shift-click/shift-space range selection in
	// multiple mode.
	RangeSelect bool
	// Loop wraps arrow navigation at the ends.
	Loop bool
	// TypeAheadTimeout overrides the type-ahead buffer timeout.
	TypeAheadTimeout time.Duration
	// GenerateID mints the listbox and option ids. Defaults to a counter.
	GenerateID aria.Generator
	// OnSelectionChange fires with the selected values in display order.
	OnSelectionChange func(values []string)
	// OnActiveChange fires when the roving tab stop moves.
	OnActiveChange func(value string)
}

// Listbox composes the list primitives into one behavior.
type Listbox struct {
	opts      Options
	id        string
	items     []Item
	roving    *rovingfocus.Roving
	typing    *typeahead.TypeAhead
	selected  *selection.Set
	destroyed bool
}

// New creates an empty listbox. Call SetItems before forwarding events.
func New(opts Options) *Listbox {
	if opts.GenerateID == nil {
		opts.GenerateID = aria.NewGenerator("listbox")
	}
	l := &Listbox{
		opts:     opts,
		id:       opts.GenerateID(),
		selected: selection.New(opts.Mode),
	}
	l.roving = rovingfocus.New(rovingfocus.Options{
		Orientation:  rovingfocus.Vertical,
		Loop:         opts.Loop,
		SkipDisabled: true,
		OnActiveChange: func(value string, _ int) {
			if l.opts.OnActiveChange != nil {
				l.opts.OnActiveChange(value)
			}
		},
	})
	l.typing = typeahead.New(typeahead.Options{
		Timeout: opts.TypeAheadTimeout,
		Items:   l.labels,
		OnMatch: func(_ string, index int) {
			if index >= 0 && index < len(l.items) {
				l.roving.SetActive(l.items[index].Value)
			}
		},
	})
	return l
}

// ID returns the listbox element id.
func (l *Listbox) ID() string { return l.id }

// SetItems replaces the item registry, pruning stale selections and moving
// the tab stop if its item disappeared.
func (l *Listbox) SetItems(items []Item) {
	if l.destroyed {
		return
	}
	l.items = append(l.items[:0:0], items...)
	values := make([]string, len(items))
	rovingItems := make([]rovingfocus.Item, len(items))
	for i, item := range items {
		values[i] = item.Value
		rovingItems[i] = rovingfocus.Item{Value: item.Value, Disabled: item.Disabled, Element: item.Element}
	}
	before := l.selected.Len()
	l.selected.SetKnown(values)
	l.roving.SetItems(rovingItems)
	if l.selected.Len() != before {
		l.notifySelection()
	}
}

// Active returns the value holding the tab stop, or "".
func (l *Listbox) Active() string {
	value, _ := l.roving.Active()
	return value
}

// Selected returns the selected values in display order.
func (l *Listbox) Selected() []string { return l.selected.Values() }

// HandleKeyDown composes arrow navigation, Enter/Space selection, and
// type-ahead matching. Reports whether the event was consumed.
func (l *Listbox) HandleKeyDown(ev host.KeyEvent) bool {
	if l.destroyed {
		return false
	}
	if l.roving.HandleKeyDown(ev) {
		return true
	}
	switch ev.Key {
	case host.KeyEnter, host.KeySpace:
		value := l.Active()
		if value == "" {
			return true
		}
		if ev.Shift && l.opts.RangeSelect {
			if l.selected.SelectRange(value) {
				l.notifySelection()
			}
			return true
		}
		if l.toggleOrSelect(value) {
			l.notifySelection()
		}
		return true
	}
	return l.typing.HandleKeyDown(ev)
}

// HandleClick moves the tab stop to value and applies selection, honoring
// shift range selection when enabled. Stale values are ignored.
func (l *Listbox) HandleClick(value string, shift bool) {
	if l.destroyed || l.itemByValue(value) == nil {
		return
	}
	l.roving.SetActive(value)
	changed := false
	if shift && l.opts.RangeSelect {
		changed = l.selected.SelectRange(value)
	} else {
		changed = l.toggleOrSelect(value)
	}
	if changed {
		l.notifySelection()
	}
}

// SelectAll selects every item in multiple mode.
func (l *Listbox) SelectAll() {
	if l.destroyed {
		return
	}
	if l.selected.SelectAll() {
		l.notifySelection()
	}
}

// ClearSelection empties the selection.
func (l *Listbox) ClearSelection() {
	if l.destroyed {
		return
	}
	if l.selected.Clear() {
		l.notifySelection()
	}
}

// ListProps returns the attribute map for the list element.
func (l *Listbox) ListProps() map[string]string {
	props := map[string]string{
		"role": "listbox",
		"id":   l.id,
	}
	if l.opts.Mode == selection.Multiple {
		props["aria-multiselectable"] = "true"
	}
	return props
}

// ItemProps returns the attribute map for the option with the given value.
func (l *Listbox) ItemProps(value string) map[string]string {
	props := map[string]string{
		"role":          "option",
		"aria-selected": "false",
	}
	for i, item := range l.items {
		if item.Value != value {
			continue
		}
		for k, v := range l.roving.ItemProps(i) {
			props[k] = v
		}
		if l.selected.IsSelected(value) {
			props["aria-selected"] = "true"
		}
		break
	}
	return props
}

// Destroy tears down the composite. Repeated calls are no-ops.
func (l *Listbox) Destroy() {
	if l.destroyed {
		return
	}
	l.destroyed = true
	l.typing.Destroy()
	l.roving.Destroy()
	l.items = nil
}

func (l *Listbox) toggleOrSelect(value string) bool {
	if l.opts.Mode == selection.Multiple {
		return l.selected.Toggle(value)
	}
	return l.selected.Select(value)
}

func (l *Listbox) labels() []string {
	labels := make([]string, len(l.items))
	for i, item := range l.items {
		labels[i] = item.Label
		if item.Label == "" {
			labels[i] = item.Value
		}
	}
	return labels
}

func (l *Listbox) itemByValue(value string) *Item {
	for i := range l.items {
		if l.items[i].Value == value {
			return &l.items[i]
		}
	}
	return nil
}

func (l *Listbox) notifySelection() {
	if l.opts.OnSelectionChange != nil {
		l.opts.OnSelectionChange(l.selected.Values())
	}
}
