// Package combobox implements the Combobox interaction behavior: a text
// input coupled to a suggestion listbox, filtering a local item source or
// loading suggestions asynchronously with debounce, cancellation, and
// stale-result discard.
package combobox

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// DefaultDebounce is the delay between the last input edit and the async
// load it triggers.
const DefaultDebounce = 300 * time.Millisecond

// Status describes the suggestion pipeline.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// Item is one suggestion.
type Item struct {
	Value    string
	Label    string
	Disabled bool
}

// State is the behavior's snapshot, replaced wholesale on every accepted
// transition.
type State struct {
	Open             bool
	InputValue       string
	Value            []string
	HighlightedValue string
	Items            []Item
	Status           Status
	// LoadError holds the most recent load failure while Status is
	// StatusError.
	LoadError error
}

// LoadFunc produces suggestions for a query. It runs on its own goroutine
// and must honor ctx cancellation.
type LoadFunc func(ctx context.Context, query string) ([]Item, error)

// Options configures a Behavior.
type Options struct {
	Multiple bool
	// Creatable lets Commit mint an item from free text with no match.
	Creatable bool
	Disabled  bool
	ReadOnly  bool
	// LoadItems, when set, replaces local filtering with async loading.
	LoadItems LoadFunc
	// Debounce overrides DefaultDebounce; negative disables debouncing.
	Debounce time.Duration
	// GenerateID mints the input and listbox ids.
	GenerateID aria.Generator

	OnInputChange     func(value string)
	OnValueChange     func(values []string)
	OnOpenChange      func(open bool)
	OnHighlightChange func(value string)
	OnStatusChange    func(status Status)
}

// Behavior is a Combobox state machine. All exported methods are safe for
// concurrent use; callbacks fire outside the lock in transition order.
type Behavior struct {
	opts      Options
	inputID   string
	listboxID string

	mu         sync.Mutex
	state      State
	source     []Item
	generation uint64
	cancel     context.CancelFunc
	debounce   *time.Timer
	destroyed  bool
}

// New constructs the behavior with defaults applied.
func New(opts Options) *Behavior {
	if opts.GenerateID == nil {
		opts.GenerateID = aria.NewGenerator("combobox")
	}
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	return &Behavior{
		opts:      opts,
		inputID:   opts.GenerateID(),
		listboxID: opts.GenerateID(),
		state:     State{Status: StatusIdle},
	}
}

// State returns the current snapshot.
func (b *Behavior) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// SetItems replaces the local item source. With no loader configured the
// visible items are re-derived from the current input immediately.
func (b *Behavior) SetItems(items []Item) {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.source = append(b.source[:0:0], items...)
	var fire []func()
	if b.opts.LoadItems == nil {
		next := b.state
		next.Items = b.filter(next.InputValue)
		fire = b.applyLocked(next)
	}
	b.mu.Unlock()
	run(fire)
}

// SetInputValue records a new input buffer, opens the listbox, and kicks
// off filtering or a debounced load. Blocked while disabled or read-only.
func (b *Behavior) SetInputValue(value string) {
	b.mu.Lock()
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly || b.state.InputValue == value {
		b.mu.Unlock()
		return
	}
	next := b.state
	next.InputValue = value
	next.Open = true
	if b.opts.LoadItems == nil {
		next.Items = b.filter(value)
		if next.HighlightedValue != "" && findItem(next.Items, next.HighlightedValue) == nil {
			next.HighlightedValue = ""
		}
	}
	fire := b.applyLocked(next)
	if b.opts.LoadItems != nil {
		b.scheduleLoadLocked(value)
	}
	b.mu.Unlock()
	run(fire)
}

// Open opens the suggestion listbox.
func (b *Behavior) Open() {
	b.mu.Lock()
	if b.destroyed || b.opts.Disabled || b.state.Open {
		b.mu.Unlock()
		return
	}
	next := b.state
	next.Open = true
	fire := b.applyLocked(next)
	b.mu.Unlock()
	run(fire)
}

// Close closes the listbox, cancels any pending or in-flight load, and
// clears the highlight.
func (b *Behavior) Close() {
	b.mu.Lock()
	if b.destroyed || !b.state.Open {
		b.mu.Unlock()
		return
	}
	b.cancelLoadLocked()
	next := b.state
	next.Open = false
	next.HighlightedValue = ""
	if next.Status == StatusLoading {
		next.Status = StatusIdle
	}
	fire := b.applyLocked(next)
	b.mu.Unlock()
	run(fire)
}

// Select commits a suggestion by value. Single mode replaces the selection,
// writes the label into the input, and closes; multiple mode appends a tag
// and clears the input. Disabled or unknown items are ignored.
func (b *Behavior) Select(value string) {
	b.mu.Lock()
	fire := b.selectLocked(value)
	b.mu.Unlock()
	run(fire)
}

// Commit applies the Enter action: select the highlight when present,
// otherwise mint the trimmed input as a new value when creatable.
func (b *Behavior) Commit() {
	b.mu.Lock()
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly {
		b.mu.Unlock()
		return
	}
	var fire []func()
	if v := b.state.HighlightedValue; v != "" {
		fire = b.selectLocked(v)
	} else if b.opts.Creatable {
		fire = b.createLocked(strings.TrimSpace(b.state.InputValue))
	}
	b.mu.Unlock()
	run(fire)
}

// RemoveTag drops one selected value in multiple mode.
func (b *Behavior) RemoveTag(value string) {
	b.mu.Lock()
	fire := b.removeTagLocked(value)
	b.mu.Unlock()
	run(fire)
}

// RemoveLastTag drops the most recent tag, the Backspace-at-empty-input
// gesture.
func (b *Behavior) RemoveLastTag() {
	b.mu.Lock()
	var fire []func()
	if n := len(b.state.Value); n > 0 {
		fire = b.removeTagLocked(b.state.Value[n-1])
	}
	b.mu.Unlock()
	run(fire)
}

// HighlightNext moves the highlight to the next enabled suggestion,
// wrapping.
func (b *Behavior) HighlightNext() { b.moveHighlight(1) }

// HighlightPrev moves the highlight to the previous enabled suggestion,
// wrapping.
func (b *Behavior) HighlightPrev() { b.moveHighlight(-1) }

// HandleKeyDown drives the machine from input keyboard events. Reports
// whether the event was consumed.
func (b *Behavior) HandleKeyDown(ev host.KeyEvent) bool {
	b.mu.Lock()
	if b.destroyed || b.opts.Disabled {
		b.mu.Unlock()
		return false
	}
	open := b.state.Open
	empty := b.state.InputValue == ""
	b.mu.Unlock()

	switch ev.Key {
	case host.KeyArrowDown:
		if !open {
			b.Open()
		} else {
			b.HighlightNext()
		}
	case host.KeyArrowUp:
		if !open {
			b.Open()
		} else {
			b.HighlightPrev()
		}
	case host.KeyEnter:
		b.Commit()
	case host.KeyEscape:
		if !open {
			return false
		}
		b.Close()
	case host.KeyBackspace:
		if !b.opts.Multiple || !empty {
			return false
		}
		b.RemoveLastTag()
	default:
		return false
	}
	return true
}

// InputProps returns the attribute map for the text input.
func (b *Behavior) InputProps() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	props := map[string]string{
		"id":                b.inputID,
		"role":              "combobox",
		"aria-autocomplete": "list",
		"aria-expanded":     boolAttr(b.state.Open),
		"aria-controls":     b.listboxID,
	}
	if b.state.HighlightedValue != "" {
		props["aria-activedescendant"] = b.optionID(b.state.HighlightedValue)
	}
	if b.opts.Disabled {
		props["aria-disabled"] = "true"
	}
	if b.opts.ReadOnly {
		props["aria-readonly"] = "true"
	}
	return props
}

// ListboxProps returns the attribute map for the suggestion list.
func (b *Behavior) ListboxProps() map[string]string {
	props := map[string]string{
		"id":              b.listboxID,
		"role":            "listbox",
		"aria-labelledby": b.inputID,
	}
	if b.opts.Multiple {
		props["aria-multiselectable"] = "true"
	}
	return props
}

// OptionProps returns the attribute map for one suggestion.
func (b *Behavior) OptionProps(value string) map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	props := map[string]string{
		"id":            b.optionID(value),
		"role":          "option",
		"aria-selected": boolAttr(containsValue(b.state.Value, value)),
	}
	if item := findItem(b.state.Items, value); item != nil && item.Disabled {
		props["aria-disabled"] = "true"
	}
	if b.state.HighlightedValue == value {
		props["data-highlighted"] = "true"
	}
	return props
}

// Destroy cancels pending work and makes the behavior inert. In-flight
// loader results are discarded. Repeated calls are no-ops.
func (b *Behavior) Destroy() {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.cancelLoadLocked()
	b.destroyed = true
	b.source = nil
	b.mu.Unlock()
}

// applyLocked swaps the snapshot and returns the notifications owed for the
// transition, to be run after the lock is released.
func (b *Behavior) applyLocked(next State) []func() {
	prev := b.state
	b.state = next
	var fire []func()
	if next.Open != prev.Open && b.opts.OnOpenChange != nil {
		open := next.Open
		fire = append(fire, func() { b.opts.OnOpenChange(open) })
	}
	if next.InputValue != prev.InputValue && b.opts.OnInputChange != nil {
		value := next.InputValue
		fire = append(fire, func() { b.opts.OnInputChange(value) })
	}
	if !equalValues(next.Value, prev.Value) && b.opts.OnValueChange != nil {
		values := append([]string(nil), next.Value...)
		fire = append(fire, func() { b.opts.OnValueChange(values) })
	}
	if next.HighlightedValue != prev.HighlightedValue && b.opts.OnHighlightChange != nil {
		value := next.HighlightedValue
		fire = append(fire, func() { b.opts.OnHighlightChange(value) })
	}
	if next.Status != prev.Status && b.opts.OnStatusChange != nil {
		status := next.Status
		fire = append(fire, func() { b.opts.OnStatusChange(status) })
	}
	return fire
}

func (b *Behavior) selectLocked(value string) []func() {
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly {
		return nil
	}
	item := findItem(b.state.Items, value)
	if item == nil {
		item = findItem(b.source, value)
	}
	if item == nil || item.Disabled {
		return nil
	}
	next := b.state
	if b.opts.Multiple {
		if containsValue(next.Value, value) {
			return nil
		}
		next.Value = append(append([]string(nil), next.Value...), value)
		next.InputValue = ""
		if b.opts.LoadItems == nil {
			next.Items = b.filter("")
		}
	} else {
		next.Value = []string{value}
		next.InputValue = itemLabel(*item)
		next.Open = false
		next.HighlightedValue = ""
	}
	b.cancelLoadLocked()
	return b.applyLocked(next)
}

// createLocked mints a free-text value. The minted item joins the source so
// later selections can resolve it.
func (b *Behavior) createLocked(text string) []func() {
	if text == "" {
		return nil
	}
	if existing := findItem(b.source, text); existing == nil {
		b.source = append(b.source, Item{Value: text, Label: text})
	}
	return b.selectLocked(text)
}

func (b *Behavior) removeTagLocked(value string) []func() {
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly || !b.opts.Multiple {
		return nil
	}
	kept := make([]string, 0, len(b.state.Value))
	for _, v := range b.state.Value {
		if v != value {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(b.state.Value) {
		return nil
	}
	next := b.state
	next.Value = kept
	return b.applyLocked(next)
}

func (b *Behavior) moveHighlight(delta int) {
	b.mu.Lock()
	if b.destroyed || !b.state.Open || len(b.state.Items) == 0 {
		b.mu.Unlock()
		return
	}
	items := b.state.Items
	n := len(items)
	current := -1
	for i := range items {
		if items[i].Value == b.state.HighlightedValue {
			current = i
			break
		}
	}
	next := b.state
	i := current
	for range items {
		if i < 0 {
			if delta > 0 {
				i = 0
			} else {
				i = n - 1
			}
		} else {
			i = (i + delta + n) % n
		}
		if !items[i].Disabled {
			next.HighlightedValue = items[i].Value
			break
		}
	}
	fire := b.applyLocked(next)
	b.mu.Unlock()
	run(fire)
}

// scheduleLoadLocked restarts the debounce timer for query. The load that
// eventually runs captures a fresh generation; anything older is stale.
func (b *Behavior) scheduleLoadLocked(query string) {
	if b.debounce != nil {
		b.debounce.Stop()
	}
	if b.opts.Debounce == 0 {
		b.startLoadLocked(query)
		return
	}
	b.debounce = time.AfterFunc(b.opts.Debounce, func() {
		b.mu.Lock()
		if b.destroyed || b.state.InputValue != query {
			b.mu.Unlock()
			return
		}
		b.startLoadLocked(query)
		b.mu.Unlock()
	})
}

func (b *Behavior) startLoadLocked(query string) {
	if b.cancel != nil {
		b.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.generation++
	gen := b.generation

	next := b.state
	next.Status = StatusLoading
	next.LoadError = nil
	fire := b.applyLocked(next)
	go func() {
		run(fire)
		items, err := b.opts.LoadItems(ctx, query)
		b.finishLoad(gen, items, err, ctx.Err() != nil)
	}()
}

// finishLoad applies a loader result unless a newer generation superseded
// it or its context was cancelled.
func (b *Behavior) finishLoad(gen uint64, items []Item, err error, cancelled bool) {
	b.mu.Lock()
	if b.destroyed || gen != b.generation || cancelled {
		b.mu.Unlock()
		return
	}
	next := b.state
	if err != nil {
		next.Status = StatusError
		next.LoadError = err
		next.Items = nil
		next.HighlightedValue = ""
	} else {
		next.Status = StatusLoaded
		next.LoadError = nil
		next.Items = items
		next.HighlightedValue = firstEnabled(items)
	}
	fire := b.applyLocked(next)
	b.mu.Unlock()
	run(fire)
}

func (b *Behavior) cancelLoadLocked() {
	if b.debounce != nil {
		b.debounce.Stop()
		b.debounce = nil
	}
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.generation++
}

// filter derives the visible items from the local source. An empty query
// shows everything; otherwise labels are fuzzy-matched and ranked.
func (b *Behavior) filter(query string) []Item {
	if strings.TrimSpace(query) == "" {
		return append([]Item(nil), b.source...)
	}
	ranked := make([]struct {
		item Item
		rank int
	}, 0, len(b.source))
	for _, item := range b.source {
		r := fuzzy.RankMatchNormalizedFold(query, itemLabel(item))
		if r < 0 {
			continue
		}
		ranked = append(ranked, struct {
			item Item
			rank int
		}{item, r})
	}
	items := make([]Item, len(ranked))
	for i, r := range ranked {
		items[i] = r.item
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].rank < ranked[j-1].rank; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
	return items
}

func (b *Behavior) optionID(value string) string {
	return b.listboxID + "-opt-" + value
}

func firstEnabled(items []Item) string {
	for _, item := range items {
		if !item.Disabled {
			return item.Value
		}
	}
	return ""
}

func findItem(items []Item, value string) *Item {
	for i := range items {
		if items[i].Value == value {
			return &items[i]
		}
	}
	return nil
}

func itemLabel(item Item) string {
	if item.Label != "" {
		return item.Label
	}
	return item.Value
}

func containsValue(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func equalValues(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func run(fire []func()) {
	for _, f := range fire {
		f()
	}
}

func boolAttr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
