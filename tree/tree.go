// Package tree implements the tree view interaction behavior over a flat
// parent-linked item list: expansion state, selection, a focused node, and
// the arrow-key contract for nested navigation. Visibility is computed, a
// node shows only while every ancestor is expanded.
package tree

import (
	"strconv"
	"time"

	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
	"github.com/hypoth-org/hypoth-ui-sub001/selection"
	"github.com/hypoth-org/hypoth-ui-sub001/typeahead"
)

// Item is one node. ParentID is empty for roots; document order of the
// slice fixes sibling order.
type Item struct {
	ID       string
	ParentID string
	Label    string
	Disabled bool
}

// Options configures a Tree.
type Options struct {
	// Mode selects single or multiple selection. Defaults to single.
	Mode selection.Mode
	// DefaultExpanded lists node ids expanded at construction.
	DefaultExpanded []string
	// TypeAheadTimeout overrides the type-ahead buffer timeout.
	TypeAheadTimeout time.Duration
	// GenerateID mints the tree element id.
	GenerateID aria.Generator

	OnSelectionChange func(ids []string)
	OnExpandedChange  func(id string, expanded bool)
	OnFocusChange     func(id string)
}

// Tree is a tree view behavior.
type Tree struct {
	opts      Options
	id        string
	items     []Item
	byID      map[string]int
	children  map[string][]string
	expanded  map[string]bool
	selected  *selection.Set
	focused   string
	typing    *typeahead.TypeAhead
	destroyed bool
}

// New constructs the behavior. Call SetItems before forwarding events.
func New(opts Options) *Tree {
	if opts.GenerateID == nil {
		opts.GenerateID = aria.NewGenerator("tree")
	}
	t := &Tree{
		opts:     opts,
		id:       opts.GenerateID(),
		expanded: make(map[string]bool),
		selected: selection.New(opts.Mode),
	}
	for _, id := range opts.DefaultExpanded {
		t.expanded[id] = true
	}
	t.typing = typeahead.New(typeahead.Options{
		Timeout: opts.TypeAheadTimeout,
		Items:   t.visibleLabels,
		OnMatch: func(_ string, index int) {
			visible := t.VisibleIDs()
			if index >= 0 && index < len(visible) {
				t.Focus(visible[index])
			}
		},
	})
	return t
}

// ID returns the tree element id.
func (t *Tree) ID() string { return t.id }

// SetItems replaces the node registry, pruning expansion, selection, and
// focus entries whose nodes disappeared.
func (t *Tree) SetItems(items []Item) {
	if t.destroyed {
		return
	}
	t.items = append(t.items[:0:0], items...)
	t.byID = make(map[string]int, len(items))
	t.children = make(map[string][]string)
	ids := make([]string, len(items))
	for i, item := range items {
		t.byID[item.ID] = i
		t.children[item.ParentID] = append(t.children[item.ParentID], item.ID)
		ids[i] = item.ID
	}
	for id := range t.expanded {
		if _, ok := t.byID[id]; !ok {
			delete(t.expanded, id)
		}
	}
	before := t.selected.Len()
	t.selected.SetKnown(ids)
	if t.selected.Len() != before {
		t.notifySelection()
	}
	if t.focused != "" {
		if _, ok := t.byID[t.focused]; !ok {
			t.focused = ""
		}
	}
}

// Focused returns the focused node id, or "".
func (t *Tree) Focused() string { return t.focused }

// Focus moves keyboard focus to id. Unknown and disabled nodes are
// ignored; hidden ancestors are expanded first so the node is reachable.
func (t *Tree) Focus(id string) {
	if t.destroyed || t.focused == id {
		return
	}
	item := t.item(id)
	if item == nil || item.Disabled {
		return
	}
	for parent := item.ParentID; parent != ""; {
		if !t.expanded[parent] {
			t.setExpanded(parent, true)
		}
		next := t.item(parent)
		if next == nil {
			break
		}
		parent = next.ParentID
	}
	t.focused = id
	if t.opts.OnFocusChange != nil {
		t.opts.OnFocusChange(id)
	}
}

// IsBranch reports whether id has children.
func (t *Tree) IsBranch(id string) bool { return len(t.children[id]) > 0 }

// IsExpanded reports the expansion state of id.
func (t *Tree) IsExpanded(id string) bool { return t.expanded[id] }

// Expand opens a branch. Leaves and unknown ids are ignored.
func (t *Tree) Expand(id string) {
	if t.destroyed || !t.IsBranch(id) || t.expanded[id] {
		return
	}
	t.setExpanded(id, true)
}

// Collapse closes a branch, pulling focus up when the focused node would
// become hidden.
func (t *Tree) Collapse(id string) {
	if t.destroyed || !t.expanded[id] {
		return
	}
	if t.focused != "" && t.focused != id && t.hasAncestor(t.focused, id) {
		t.Focus(id)
	}
	t.setExpanded(id, false)
}

// ToggleExpanded flips a branch.
func (t *Tree) ToggleExpanded(id string) {
	if t.expanded[id] {
		t.Collapse(id)
		return
	}
	t.Expand(id)
}

// ExpandSiblings expands every branch at the focused node's level, the
// asterisk gesture.
func (t *Tree) ExpandSiblings(id string) {
	item := t.item(id)
	if t.destroyed || item == nil {
		return
	}
	for _, sibling := range t.children[item.ParentID] {
		t.Expand(sibling)
	}
}

// Select commits id to the selection per the selection mode.
func (t *Tree) Select(id string) {
	if t.destroyed {
		return
	}
	item := t.item(id)
	if item == nil || item.Disabled {
		return
	}
	changed := false
	if t.opts.Mode == selection.Multiple {
		changed = t.selected.Toggle(id)
	} else {
		changed = t.selected.Select(id)
	}
	if changed {
		t.notifySelection()
	}
}

// Selected returns the selected ids in document order.
func (t *Tree) Selected() []string { return t.selected.Values() }

// VisibleIDs returns, in document order, every node whose ancestors are
// all expanded.
func (t *Tree) VisibleIDs() []string {
	out := make([]string, 0, len(t.items))
	for _, item := range t.items {
		if t.visible(item.ID) {
			out = append(out, item.ID)
		}
	}
	return out
}

// HandleKeyDown applies the tree keyboard contract. Reports whether the
// event was consumed.
func (t *Tree) HandleKeyDown(ev host.KeyEvent) bool {
	if t.destroyed {
		return false
	}
	switch ev.Key {
	case host.KeyArrowDown:
		t.moveFocus(1)
	case host.KeyArrowUp:
		t.moveFocus(-1)
	case host.KeyArrowRight:
		id := t.focused
		if id == "" {
			return false
		}
		if t.IsBranch(id) && !t.expanded[id] {
			t.Expand(id)
		} else if kids := t.enabledChildren(id); t.expanded[id] && len(kids) > 0 {
			t.Focus(kids[0])
		}
	case host.KeyArrowLeft:
		id := t.focused
		if id == "" {
			return false
		}
		if t.expanded[id] {
			t.Collapse(id)
		} else if item := t.item(id); item != nil && item.ParentID != "" {
			t.Focus(item.ParentID)
		}
	case host.KeyHome:
		if visible := t.navigableVisible(); len(visible) > 0 {
			t.Focus(visible[0])
		}
	case host.KeyEnd:
		if visible := t.navigableVisible(); len(visible) > 0 {
			t.Focus(visible[len(visible)-1])
		}
	case host.KeyEnter, host.KeySpace:
		if t.focused == "" {
			return false
		}
		t.Select(t.focused)
	case "*":
		if t.focused == "" {
			return false
		}
		t.ExpandSiblings(t.focused)
	default:
		return t.typing.HandleKeyDown(ev)
	}
	return true
}

// TreeProps returns the attribute map for the tree element.
func (t *Tree) TreeProps() map[string]string {
	props := map[string]string{
		"id":   t.id,
		"role": "tree",
	}
	if t.opts.Mode == selection.Multiple {
		props["aria-multiselectable"] = "true"
	}
	return props
}

// ItemProps returns the attribute map for one node, including its level
// and position among siblings.
func (t *Tree) ItemProps(id string) map[string]string {
	item := t.item(id)
	if item == nil {
		return nil
	}
	props := map[string]string{
		"role":          "treeitem",
		"aria-selected": boolAttr(t.selected.IsSelected(id)),
		"aria-level":    strconv.Itoa(t.level(id)),
		"tabindex":      "-1",
	}
	siblings := t.children[item.ParentID]
	props["aria-setsize"] = strconv.Itoa(len(siblings))
	for i, sibling := range siblings {
		if sibling == id {
			props["aria-posinset"] = strconv.Itoa(i + 1)
			break
		}
	}
	if t.IsBranch(id) {
		props["aria-expanded"] = boolAttr(t.expanded[id])
	}
	if item.Disabled {
		props["aria-disabled"] = "true"
	}
	if t.focused == id {
		props["tabindex"] = "0"
	}
	return props
}

// Destroy tears down the behavior. Repeated calls are no-ops.
func (t *Tree) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.typing.Destroy()
	t.items = nil
	t.byID = nil
	t.children = nil
}

func (t *Tree) item(id string) *Item {
	i, ok := t.byID[id]
	if !ok {
		return nil
	}
	return &t.items[i]
}

func (t *Tree) visible(id string) bool {
	item := t.item(id)
	if item == nil {
		return false
	}
	for parent := item.ParentID; parent != ""; {
		if !t.expanded[parent] {
			return false
		}
		next := t.item(parent)
		if next == nil {
			return false
		}
		parent = next.ParentID
	}
	return true
}

func (t *Tree) level(id string) int {
	depth := 1
	item := t.item(id)
	for item != nil && item.ParentID != "" {
		depth++
		item = t.item(item.ParentID)
	}
	return depth
}

func (t *Tree) hasAncestor(id, ancestor string) bool {
	item := t.item(id)
	for item != nil && item.ParentID != "" {
		if item.ParentID == ancestor {
			return true
		}
		item = t.item(item.ParentID)
	}
	return false
}

func (t *Tree) setExpanded(id string, expanded bool) {
	t.expanded[id] = expanded
	if !expanded {
		delete(t.expanded, id)
	}
	if t.opts.OnExpandedChange != nil {
		t.opts.OnExpandedChange(id, expanded)
	}
}

func (t *Tree) enabledChildren(id string) []string {
	kids := t.children[id]
	out := make([]string, 0, len(kids))
	for _, kid := range kids {
		if item := t.item(kid); item != nil && !item.Disabled {
			out = append(out, kid)
		}
	}
	return out
}

// navigableVisible is the visible list minus disabled nodes, the arrow-key
// traversal order.
func (t *Tree) navigableVisible() []string {
	visible := t.VisibleIDs()
	out := visible[:0]
	for _, id := range visible {
		if item := t.item(id); item != nil && !item.Disabled {
			out = append(out, id)
		}
	}
	return out
}

func (t *Tree) moveFocus(delta int) {
	visible := t.navigableVisible()
	if len(visible) == 0 {
		return
	}
	if t.focused == "" {
		t.Focus(visible[0])
		return
	}
	for i, id := range visible {
		if id == t.focused {
			j := i + delta
			if j >= 0 && j < len(visible) {
				t.Focus(visible[j])
			}
			return
		}
	}
	t.Focus(visible[0])
}

func (t *Tree) visibleLabels() []string {
	visible := t.VisibleIDs()
	labels := make([]string, len(visible))
	for i, id := range visible {
		item := t.item(id)
		labels[i] = item.Label
		if item.Label == "" {
			labels[i] = item.ID
		}
	}
	return labels
}

func boolAttr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
