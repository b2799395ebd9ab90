// Package selection tracks which item ids are selected over a caller-owned
// registry. The caller remains the source of truth for what exists; the set
// only records membership and prunes ids that disappear.
package selection

// Mode controls how many items may be selected at once.
type Mode int

const (
	// Single keeps at most one id selected; a new selection replaces it.
	Single Mode = iota
	// Multiple allows arbitrary membership.
	Multiple
)

// Set is a selection over known item ids.
type Set struct {
	mode     Mode
	known    []string
	index    map[string]struct{}
	selected map[string]struct{}
	anchor   string
}

// New creates an empty set in the given mode.
func New(mode Mode) *Set {
	return &Set{
		mode:     mode,
		index:    make(map[string]struct{}),
		selected: make(map[string]struct{}),
	}
}

// Mode returns the set's selection mode.
func (s *Set) Mode() Mode { return s.mode }

// SetKnown replaces the known-id registry, preserving order, and drops
// selections and the range anchor when their ids are no longer present.
func (s *Set) SetKnown(ids []string) {
	s.known = append(s.known[:0:0], ids...)
	s.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.index[id] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := s.index[id]; !ok {
			delete(s.selected, id)
		}
	}
	if _, ok := s.index[s.anchor]; !ok {
		s.anchor = ""
	}
}

// IsSelected reports whether the id is selected.
func (s *Set) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Select adds the id to the selection. Unknown ids are ignored. In single
// mode any previous selection is replaced. Reports whether membership
// changed.
func (s *Set) Select(id string) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	if s.IsSelected(id) {
		return false
	}
	if s.mode == Single {
		for prev := range s.selected {
			delete(s.selected, prev)
		}
	}
	s.selected[id] = struct{}{}
	s.anchor = id
	return true
}

// Deselect removes the id from the selection.
func (s *Set) Deselect(id string) bool {
	if !s.IsSelected(id) {
		return false
	}
	delete(s.selected, id)
	return true
}

// Toggle flips selection membership for the id. Unknown ids are ignored.
func (s *Set) Toggle(id string) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	if s.IsSelected(id) {
		return s.Deselect(id)
	}
	return s.Select(id)
}

// SelectRange selects every id between the current anchor and id inclusive,
// in multi mode. Without an anchor it behaves like Select. The anchor is
// kept so a subsequent range re-extends from the same origin.
func (s *Set) SelectRange(id string) bool {
	if s.mode != Multiple || s.anchor == "" {
		return s.Select(id)
	}
	from, to := s.indexOf(s.anchor), s.indexOf(id)
	if from < 0 || to < 0 {
		return false
	}
	if from > to {
		from, to = to, from
	}
	changed := false
	for _, known := range s.known[from : to+1] {
		if !s.IsSelected(known) {
			s.selected[known] = struct{}{}
			changed = true
		}
	}
	return changed
}

// SelectAll selects every known id in multi mode; a no-op in single mode.
func (s *Set) SelectAll() bool {
	if s.mode != Multiple {
		return false
	}
	changed := false
	for _, id := range s.known {
		if !s.IsSelected(id) {
			s.selected[id] = struct{}{}
			changed = true
		}
	}
	return changed
}

// Clear removes all selections.
func (s *Set) Clear() bool {
	if len(s.selected) == 0 {
		return false
	}
	for id := range s.selected {
		delete(s.selected, id)
	}
	return true
}

// Values returns the selected ids in registry order.
func (s *Set) Values() []string {
	if len(s.selected) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.selected))
	for _, id := range s.known {
		if s.IsSelected(id) {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of selected ids.
func (s *Set) Len() int { return len(s.selected) }

func (s *Set) indexOf(id string) int {
	for i, known := range s.known {
		if known == id {
			return i
		}
	}
	return -1
}
