// Package selectbox implements the Select interaction behavior: a
// closed/open state machine over a caller-supplied option registry, with
// highlight navigation across the enabled subset, optional search, and an
// advisory virtualization flag for large option counts.
package selectbox

import (
	"strings"

	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// DefaultVirtualizationThreshold is the option count above which the
// behavior advertises that the renderer should virtualize.
const DefaultVirtualizationThreshold = 100

// Item is one option. The caller owns the registry; the behavior only
// tracks which value is selected or highlighted.
type Item struct {
	Value    string
	Label    string
	Disabled bool
}

// State is the behavior's snapshot, replaced wholesale on every accepted
// transition. Read it through State(); never mutate it.
type State struct {
	Open             bool
	Value            []string
	HighlightedValue string
	SearchQuery      string
	Virtualized      bool
}

// Options configures a Behavior. Fields default independently.
type Options struct {
	DefaultValue []string
	Multiple     bool
	Disabled     bool
	ReadOnly     bool
	// Searchable routes printable keys into SearchQuery while open.
	Searchable bool
	// Clearable permits Clear().
	Clearable bool
	// VirtualizationThreshold overrides DefaultVirtualizationThreshold.
	VirtualizationThreshold int
	// GenerateID mints the trigger and listbox ids.
	GenerateID aria.Generator

	OnValueChange     func(values []string)
	OnOpenChange      func(open bool)
	OnHighlightChange func(value string)
}

// Behavior is a Select state machine.
type Behavior struct {
	opts      Options
	triggerID string
	listboxID string
	items     []Item
	state     State
	destroyed bool
}

// New constructs the behavior with defaults applied.
func New(opts Options) *Behavior {
	if opts.GenerateID == nil {
		opts.GenerateID = aria.NewGenerator("select")
	}
	if opts.VirtualizationThreshold <= 0 {
		opts.VirtualizationThreshold = DefaultVirtualizationThreshold
	}
	b := &Behavior{
		opts:      opts,
		triggerID: opts.GenerateID(),
		listboxID: opts.GenerateID(),
	}
	b.state = State{Value: append([]string(nil), opts.DefaultValue...)}
	if !opts.Multiple && len(b.state.Value) > 1 {
		b.state.Value = b.state.Value[:1]
	}
	return b
}

// State returns the current snapshot.
func (b *Behavior) State() State { return b.state }

// SetItems replaces the option registry, silently dropping a highlight or
// selection whose value is no longer present.
func (b *Behavior) SetItems(items []Item) {
	if b.destroyed {
		return
	}
	b.items = append(b.items[:0:0], items...)
	next := b.state
	if next.HighlightedValue != "" && b.item(next.HighlightedValue) == nil {
		next.HighlightedValue = ""
	}
	kept := make([]string, 0, len(next.Value))
	for _, v := range next.Value {
		if b.item(v) != nil {
			kept = append(kept, v)
		}
	}
	if len(kept) != len(next.Value) {
		next.Value = kept
		b.replace(next)
		b.notifyValue()
		return
	}
	next.Value = kept
	b.replace(next)
}

// Items returns the current registry.
func (b *Behavior) Items() []Item { return b.items }

// Open opens the listbox, resetting the search query and highlighting the
// current selection (or the first enabled option). Blocked while disabled
// or read-only.
func (b *Behavior) Open() {
	if b.destroyed || b.state.Open || b.opts.Disabled || b.opts.ReadOnly {
		return
	}
	next := b.state
	next.Open = true
	next.SearchQuery = ""
	next.HighlightedValue = b.initialHighlight()
	highlightChanged := next.HighlightedValue != b.state.HighlightedValue
	b.replace(next)
	if b.opts.OnOpenChange != nil {
		b.opts.OnOpenChange(true)
	}
	if highlightChanged {
		b.notifyHighlight()
	}
}

// Close closes the listbox. Closing an already-closed behavior is a no-op.
func (b *Behavior) Close() {
	if b.destroyed || !b.state.Open {
		return
	}
	next := b.state
	next.Open = false
	b.replace(next)
	if b.opts.OnOpenChange != nil {
		b.opts.OnOpenChange(false)
	}
}

// Toggle opens or closes.
func (b *Behavior) Toggle() {
	if b.state.Open {
		b.Close()
		return
	}
	b.Open()
}

// Select commits a value: replacing in single mode (and closing), appending
// in multiple mode. Disabled options, unknown values, and disabled/read-only
// behaviors are no-ops.
func (b *Behavior) Select(value string) {
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly {
		return
	}
	item := b.item(value)
	if item == nil || item.Disabled {
		return
	}
	next := b.state
	if b.opts.Multiple {
		for _, v := range next.Value {
			if v == value {
				return
			}
		}
		next.Value = append(append([]string(nil), next.Value...), value)
	} else {
		next.Value = []string{value}
	}
	next.HighlightedValue = value
	b.replace(next)
	b.notifyValue()
	b.notifyHighlight()
	if !b.opts.Multiple {
		b.Close()
	}
}

// Deselect removes a value in multiple mode.
func (b *Behavior) Deselect(value string) {
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly || !b.opts.Multiple {
		return
	}
	next := b.state
	kept := make([]string, 0, len(next.Value))
	for _, v := range next.Value {
		if v != value {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(next.Value) {
		return
	}
	next.Value = kept
	b.replace(next)
	b.notifyValue()
}

// Clear empties the selection when the behavior is clearable.
func (b *Behavior) Clear() {
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly || !b.opts.Clearable {
		return
	}
	if len(b.state.Value) == 0 {
		return
	}
	next := b.state
	next.Value = nil
	b.replace(next)
	b.notifyValue()
}

// Highlight moves the highlight to value. Stale or disabled values are
// ignored.
func (b *Behavior) Highlight(value string) {
	if b.destroyed {
		return
	}
	item := b.item(value)
	if item == nil || item.Disabled || b.state.HighlightedValue == value {
		return
	}
	next := b.state
	next.HighlightedValue = value
	b.replace(next)
	b.notifyHighlight()
}

// HighlightNext moves the highlight to the next enabled option, wrapping.
func (b *Behavior) HighlightNext() { b.moveHighlight(1) }

// HighlightPrev moves the highlight to the previous enabled option,
// wrapping.
func (b *Behavior) HighlightPrev() { b.moveHighlight(-1) }

// HighlightFirst highlights the first enabled option.
func (b *Behavior) HighlightFirst() {
	if i := b.firstEnabled(); i >= 0 {
		b.Highlight(b.items[i].Value)
	}
}

// HighlightLast highlights the last enabled option.
func (b *Behavior) HighlightLast() {
	for i := len(b.items) - 1; i >= 0; i-- {
		if !b.items[i].Disabled {
			b.Highlight(b.items[i].Value)
			return
		}
	}
}

// SetSearchQuery records the query and highlights the first enabled option
// whose label matches by case-insensitive prefix. Advisory for the
// renderer; the registry is untouched.
func (b *Behavior) SetSearchQuery(query string) {
	if b.destroyed || !b.opts.Searchable || !b.state.Open {
		return
	}
	next := b.state
	next.SearchQuery = query
	lower := strings.ToLower(strings.TrimSpace(query))
	highlightChanged := false
	if lower != "" {
		for _, item := range b.items {
			if item.Disabled {
				continue
			}
			if strings.HasPrefix(strings.ToLower(b.label(item)), lower) {
				if next.HighlightedValue != item.Value {
					next.HighlightedValue = item.Value
					highlightChanged = true
				}
				break
			}
		}
	}
	b.replace(next)
	if highlightChanged {
		b.notifyHighlight()
	}
}

// SetOptionCount records the renderer's option count and flips the advisory
// Virtualized flag once it exceeds the threshold. No other behavior
// changes.
func (b *Behavior) SetOptionCount(n int) {
	if b.destroyed {
		return
	}
	virtualized := n > b.opts.VirtualizationThreshold
	if virtualized == b.state.Virtualized {
		return
	}
	next := b.state
	next.Virtualized = virtualized
	b.replace(next)
}

// HandleKeyDown drives the machine from trigger/listbox keyboard input.
// Reports whether the event was consumed.
func (b *Behavior) HandleKeyDown(ev host.KeyEvent) bool {
	if b.destroyed || b.opts.Disabled {
		return false
	}
	if !b.state.Open {
		switch ev.Key {
		case host.KeyEnter, host.KeySpace, host.KeyArrowDown, host.KeyArrowUp:
			b.Open()
			return true
		}
		return false
	}
	switch ev.Key {
	case host.KeyArrowDown:
		b.HighlightNext()
	case host.KeyArrowUp:
		b.HighlightPrev()
	case host.KeyHome:
		b.HighlightFirst()
	case host.KeyEnd:
		b.HighlightLast()
	case host.KeyEnter:
		if v := b.state.HighlightedValue; v != "" {
			b.Select(v)
		}
	case host.KeyEscape:
		b.Close()
	default:
		if b.opts.Searchable && ev.Printable() {
			b.SetSearchQuery(b.state.SearchQuery + ev.Key)
			return true
		}
		return false
	}
	return true
}

// TriggerProps returns the attribute map for the trigger element.
func (b *Behavior) TriggerProps() map[string]string {
	props := map[string]string{
		"id":            b.triggerID,
		"role":          "combobox",
		"aria-haspopup": "listbox",
		"aria-expanded": boolAttr(b.state.Open),
		"aria-controls": b.listboxID,
	}
	if b.opts.Disabled {
		props["aria-disabled"] = "true"
	}
	if b.opts.ReadOnly {
		props["aria-readonly"] = "true"
	}
	return props
}

// ListboxProps returns the attribute map for the listbox element.
func (b *Behavior) ListboxProps() map[string]string {
	props := map[string]string{
		"id":              b.listboxID,
		"role":            "listbox",
		"aria-labelledby": b.triggerID,
	}
	if b.opts.Multiple {
		props["aria-multiselectable"] = "true"
	}
	return props
}

// OptionProps returns the attribute map for one option.
func (b *Behavior) OptionProps(value string) map[string]string {
	props := map[string]string{
		"role":          "option",
		"aria-selected": boolAttr(b.isSelected(value)),
	}
	if item := b.item(value); item != nil && item.Disabled {
		props["aria-disabled"] = "true"
	}
	if b.state.HighlightedValue == value {
		props["data-highlighted"] = "true"
	}
	return props
}

// Destroy makes the behavior inert. Repeated calls are no-ops.
func (b *Behavior) Destroy() {
	b.destroyed = true
	b.items = nil
}

// replace swaps the state snapshot; every transition funnels through here.
func (b *Behavior) replace(next State) { b.state = next }

func (b *Behavior) item(value string) *Item {
	for i := range b.items {
		if b.items[i].Value == value {
			return &b.items[i]
		}
	}
	return nil
}

func (b *Behavior) label(item Item) string {
	if item.Label != "" {
		return item.Label
	}
	return item.Value
}

func (b *Behavior) isSelected(value string) bool {
	for _, v := range b.state.Value {
		if v == value {
			return true
		}
	}
	return false
}

func (b *Behavior) firstEnabled() int {
	for i, item := range b.items {
		if !item.Disabled {
			return i
		}
	}
	return -1
}

func (b *Behavior) initialHighlight() string {
	for _, v := range b.state.Value {
		if item := b.item(v); item != nil && !item.Disabled {
			return v
		}
	}
	if i := b.firstEnabled(); i >= 0 {
		return b.items[i].Value
	}
	return ""
}

func (b *Behavior) moveHighlight(delta int) {
	if b.destroyed || len(b.items) == 0 {
		return
	}
	current := -1
	if b.state.HighlightedValue != "" {
		for i := range b.items {
			if b.items[i].Value == b.state.HighlightedValue {
				current = i
				break
			}
		}
	}
	if current < 0 {
		b.HighlightFirst()
		return
	}
	n := len(b.items)
	i := current
	for range b.items {
		i = (i + delta + n) % n
		if !b.items[i].Disabled {
			b.Highlight(b.items[i].Value)
			return
		}
	}
}

func (b *Behavior) notifyValue() {
	if b.opts.OnValueChange != nil {
		b.opts.OnValueChange(append([]string(nil), b.state.Value...))
	}
}

func (b *Behavior) notifyHighlight() {
	if b.opts.OnHighlightChange != nil {
		b.opts.OnHighlightChange(b.state.HighlightedValue)
	}
}

func boolAttr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
