// Package tabs implements the tablist interaction behavior: roving focus
// across triggers with automatic or manual panel activation.
package tabs

import (
	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
	"github.com/hypoth-org/hypoth-ui-sub001/rovingfocus"
)

// Activation picks when a focused trigger activates its panel.
type Activation int

const (
	// Automatic activates the panel as focus moves.
	Automatic Activation = iota
	// Manual waits for Enter or Space.
	Manual
)

// Orientation controls which arrow pair moves focus. Tablists are
// horizontal by default.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Item is one tab trigger.
type Item struct {
	Value    string
	Disabled bool
	Element  host.Element
}

// Options configures a Tabs behavior.
type Options struct {
	// DefaultValue names the initially active tab. Empty picks the first
	// enabled item once items arrive.
	DefaultValue string
	// Activation defaults to Automatic.
	Activation Activation
	Orientation Orientation
	// Loop wraps arrow navigation. Defaults to true for tablists.
	Loop *bool
	// GenerateID mints the tab and panel ids.
	GenerateID aria.Generator
	// OnValueChange fires when the active panel changes.
	OnValueChange func(value string)
}

// Tabs is a tablist behavior.
type Tabs struct {
	opts      Options
	baseID    string
	items     []Item
	roving    *rovingfocus.Roving
	active    string
	destroyed bool
}

// New constructs the behavior. Call SetItems before forwarding events.
func New(opts Options) *Tabs {
	if opts.GenerateID == nil {
		opts.GenerateID = aria.NewGenerator("tabs")
	}
	loop := true
	if opts.Loop != nil {
		loop = *opts.Loop
	}
	axis := rovingfocus.Horizontal
	if opts.Orientation == Vertical {
		axis = rovingfocus.Vertical
	}
	t := &Tabs{opts: opts, baseID: opts.GenerateID(), active: opts.DefaultValue}
	t.roving = rovingfocus.New(rovingfocus.Options{
		Orientation:  axis,
		Loop:         loop,
		SkipDisabled: true,
		OnActiveChange: func(value string, _ int) {
			if t.opts.Activation == Automatic {
				t.Activate(value)
			}
		},
	})
	return t
}

// SetItems replaces the trigger registry. A missing or stale active tab
// falls back to the first enabled item.
func (t *Tabs) SetItems(items []Item) {
	if t.destroyed {
		return
	}
	t.items = append(t.items[:0:0], items...)
	rovingItems := make([]rovingfocus.Item, len(items))
	for i, item := range items {
		rovingItems[i] = rovingfocus.Item{Value: item.Value, Disabled: item.Disabled, Element: item.Element}
	}
	t.roving.SetItems(rovingItems)
	if item := t.item(t.active); item == nil || item.Disabled {
		t.active = ""
		for _, candidate := range t.items {
			if !candidate.Disabled {
				t.Activate(candidate.Value)
				break
			}
		}
	}
}

// Value returns the active tab value.
func (t *Tabs) Value() string { return t.active }

// Activate selects the panel for value. Disabled and unknown tabs are
// ignored.
func (t *Tabs) Activate(value string) {
	if t.destroyed || t.active == value {
		return
	}
	item := t.item(value)
	if item == nil || item.Disabled {
		return
	}
	t.active = value
	if t.opts.OnValueChange != nil {
		t.opts.OnValueChange(value)
	}
}

// Focus moves the roving tab stop to value without activating in manual
// mode.
func (t *Tabs) Focus(value string) {
	if t.destroyed {
		return
	}
	t.roving.SetActive(value)
}

// HandleKeyDown forwards arrows and Home/End to the roving focus group and
// maps Enter/Space to manual activation. Reports whether the event was
// consumed.
func (t *Tabs) HandleKeyDown(ev host.KeyEvent) bool {
	if t.destroyed {
		return false
	}
	if t.roving.HandleKeyDown(ev) {
		return true
	}
	switch ev.Key {
	case host.KeyEnter, host.KeySpace:
		if value, _ := t.roving.Active(); value != "" {
			t.Activate(value)
		}
		return true
	}
	return false
}

// HandleClick focuses and activates the clicked tab.
func (t *Tabs) HandleClick(value string) {
	if t.destroyed {
		return
	}
	item := t.item(value)
	if item == nil || item.Disabled {
		return
	}
	t.roving.SetActive(value)
	t.Activate(value)
}

// ListProps returns the attribute map for the tablist element.
func (t *Tabs) ListProps() map[string]string {
	props := map[string]string{
		"id":   t.baseID,
		"role": "tablist",
	}
	if t.opts.Orientation == Vertical {
		props["aria-orientation"] = "vertical"
	}
	return props
}

// TabProps returns the attribute map for one trigger.
func (t *Tabs) TabProps(value string) map[string]string {
	selected := t.active == value
	props := map[string]string{
		"id":            t.tabID(value),
		"role":          "tab",
		"aria-selected": boolAttr(selected),
		"aria-controls": t.panelID(value),
		"tabindex":      "-1",
	}
	if active, _ := t.roving.Active(); active == value {
		props["tabindex"] = "0"
	}
	if item := t.item(value); item != nil && item.Disabled {
		props["aria-disabled"] = "true"
	}
	return props
}

// PanelProps returns the attribute map for one panel. Inactive panels are
// hidden.
func (t *Tabs) PanelProps(value string) map[string]string {
	props := map[string]string{
		"id":              t.panelID(value),
		"role":            "tabpanel",
		"aria-labelledby": t.tabID(value),
		"tabindex":        "0",
	}
	if t.active != value {
		props["hidden"] = "true"
	}
	return props
}

// Destroy tears down the behavior. Repeated calls are no-ops.
func (t *Tabs) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.roving.Destroy()
	t.items = nil
}

func (t *Tabs) item(value string) *Item {
	for i := range t.items {
		if t.items[i].Value == value {
			return &t.items[i]
		}
	}
	return nil
}

func (t *Tabs) tabID(value string) string   { return t.baseID + "-tab-" + value }
func (t *Tabs) panelID(value string) string { return t.baseID + "-panel-" + value }

func boolAttr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
