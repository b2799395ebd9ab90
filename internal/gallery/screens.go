package gallery

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/hypoth-org/hypoth-ui-sub001/combobox"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
	"github.com/hypoth-org/hypoth-ui-sub001/internal/format/table"
	"github.com/hypoth-org/hypoth-ui-sub001/internal/logging/events"
	"github.com/hypoth-org/hypoth-ui-sub001/internal/source"
	"github.com/hypoth-org/hypoth-ui-sub001/internal/theme"
	"github.com/hypoth-org/hypoth-ui-sub001/listbox"
	"github.com/hypoth-org/hypoth-ui-sub001/pininput"
	"github.com/hypoth-org/hypoth-ui-sub001/selectbox"
	"github.com/hypoth-org/hypoth-ui-sub001/selection"
	"github.com/hypoth-org/hypoth-ui-sub001/tree"
)

// listboxScreen drives a multi-select listbox over the rotating roster, so
// items appear and disappear underneath a live selection.
type listboxScreen struct {
	list   *listbox.Listbox
	roster []string
}

func newListboxScreen(announce func(string)) *listboxScreen {
	s := &listboxScreen{}
	trace := events.Widget("listbox")
	s.list = listbox.New(listbox.Options{
		Mode:        selection.Multiple,
		RangeSelect: true,
		Loop:        true,
		OnSelectionChange: func(values []string) {
			trace.Selection(values)
			announce(fmt.Sprintf("%d selected", len(values)))
		},
	})
	return s
}

func (s *listboxScreen) Title() string { return "Listbox" }

// SetRoster feeds the next roster window into the listbox; selections on
// departed items are pruned by the behavior.
func (s *listboxScreen) SetRoster(names []string) {
	s.roster = names
	items := make([]listbox.Item, len(names))
	for i, name := range names {
		items[i] = listbox.Item{Value: name, Label: name}
	}
	s.list.SetItems(items)
}

func (s *listboxScreen) HandleKey(ev host.KeyEvent) bool {
	return s.list.HandleKeyDown(ev)
}

func (s *listboxScreen) View(st *theme.Styles, _ int) string {
	var b strings.Builder
	b.WriteString(st.Info.Render("arrows move · space toggles · shift+space selects a range · type to jump"))
	b.WriteString("\n\n")
	active := s.list.Active()
	selected := make(map[string]bool)
	for _, v := range s.list.Selected() {
		selected[v] = true
	}
	for _, name := range s.roster {
		line := cursorFor(name == active) + checkbox(selected[name]) + " " + name
		switch {
		case name == active:
			b.WriteString(st.ActiveItem.Render(line))
		case selected[name]:
			b.WriteString(st.SelectedItem.Render(line))
		default:
			b.WriteString(st.Item.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *listboxScreen) Destroy() { s.list.Destroy() }

// selectScreen drives a searchable single Select over a fixed city slice.
type selectScreen struct {
	sel   *selectbox.Behavior
	items []selectbox.Item
}

func newSelectScreen(dir *source.Directory, announce func(string)) *selectScreen {
	s := &selectScreen{}
	trace := events.Widget("select")
	s.sel = selectbox.New(selectbox.Options{
		Searchable: true,
		Clearable:  true,
		OnOpenChange: func(open bool) {
			if open {
				trace.Open()
			} else {
				trace.Close()
			}
		},
		OnValueChange: func(values []string) {
			trace.Selection(values)
			if len(values) > 0 {
				announce(values[0] + " selected")
			}
		},
		OnHighlightChange: trace.Highlight,
	})
	names := dir.All()
	if len(names) > 12 {
		names = names[:12]
	}
	for _, name := range names {
		s.items = append(s.items, selectbox.Item{Value: name, Label: name})
	}
	s.sel.SetItems(s.items)
	s.sel.SetOptionCount(len(s.items))
	return s
}

func (s *selectScreen) Title() string { return "Select" }

func (s *selectScreen) HandleKey(ev host.KeyEvent) bool {
	return s.sel.HandleKeyDown(ev)
}

func (s *selectScreen) View(st *theme.Styles, _ int) string {
	state := s.sel.State()
	var b strings.Builder
	b.WriteString(st.Info.Render("enter opens · arrows highlight · enter commits · esc closes · type to search"))
	b.WriteString("\n\n")

	value := "(none)"
	if len(state.Value) > 0 {
		value = state.Value[0]
	}
	b.WriteString(st.Header.Render("City: "))
	b.WriteString(st.SelectedItem.Render(value))
	b.WriteString("\n")

	if !state.Open {
		return b.String()
	}
	if state.SearchQuery != "" {
		b.WriteString(st.InputPrompt.Render("search: "))
		b.WriteString(state.SearchQuery)
		b.WriteString("\n")
	}
	for _, item := range s.items {
		line := cursorFor(item.Value == state.HighlightedValue) + item.Label
		if item.Value == state.HighlightedValue {
			b.WriteString(st.ActiveItem.Render(line))
		} else {
			b.WriteString(st.Item.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *selectScreen) Destroy() { s.sel.Destroy() }

// comboboxScreen drives the async multi-select combobox against the
// latency-simulating directory.
type comboboxScreen struct {
	box   *combobox.Behavior
	input textinput.Model
}

func newComboboxScreen(dir *source.Directory, debounce time.Duration, announce func(string)) *comboboxScreen {
	s := &comboboxScreen{}
	trace := events.Widget("combobox")
	s.box = combobox.New(combobox.Options{
		Multiple:  true,
		Debounce:  debounce,
		LoadItems: dir.Search,
		OnValueChange: func(values []string) {
			trace.Selection(values)
			announce(fmt.Sprintf("%d cities picked", len(values)))
		},
		OnStatusChange: func(status combobox.Status) { trace.Status(string(status)) },
	})
	s.input = textinput.New()
	s.input.Placeholder = "search cities"
	s.input.Prompt = "> "
	s.input.Focus()
	return s
}

func (s *comboboxScreen) Title() string { return "Combobox" }

func (s *comboboxScreen) HandleKey(ev host.KeyEvent) bool {
	if s.box.HandleKeyDown(ev) {
		return true
	}
	state := s.box.State()
	switch {
	case ev.Key == host.KeyBackspace:
		if state.InputValue != "" {
			runes := []rune(state.InputValue)
			s.box.SetInputValue(string(runes[:len(runes)-1]))
		}
		return true
	case ev.Printable():
		s.box.SetInputValue(state.InputValue + ev.Key)
		return true
	}
	return false
}

func (s *comboboxScreen) View(st *theme.Styles, _ int) string {
	state := s.box.State()
	var b strings.Builder
	b.WriteString(st.Info.Render("type to search · arrows highlight · enter picks · backspace drops the last tag"))
	b.WriteString("\n\n")

	if len(state.Value) > 0 {
		tags := make([]string, len(state.Value))
		for i, v := range state.Value {
			tags[i] = st.Tag.Render(v)
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n")
	}

	s.input.SetValue(state.InputValue)
	b.WriteString(s.input.View())
	b.WriteString("\n")

	switch state.Status {
	case combobox.StatusLoading:
		b.WriteString(st.Loading.Render("searching..."))
		b.WriteString("\n")
	case combobox.StatusError:
		b.WriteString(st.Error.Render("search failed: " + state.LoadError.Error()))
		b.WriteString("\n")
	}
	if !state.Open {
		return b.String()
	}
	rows := make([][]string, len(state.Items))
	for i, item := range state.Items {
		rows[i] = []string{item.Label, item.Value}
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})
	for i, item := range state.Items {
		line := cursorFor(item.Value == state.HighlightedValue) + lines[i]
		if item.Value == state.HighlightedValue {
			b.WriteString(st.ActiveItem.Render(line))
		} else {
			b.WriteString(st.Item.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *comboboxScreen) Destroy() { s.box.Destroy() }

// treeScreen drives the tree behavior over a small project layout.
type treeScreen struct {
	tr     *tree.Tree
	labels map[string]string
}

func newTreeScreen(announce func(string)) *treeScreen {
	s := &treeScreen{labels: make(map[string]string)}
	trace := events.Widget("tree")
	s.tr = tree.New(tree.Options{
		Mode:            selection.Multiple,
		DefaultExpanded: []string{"src"},
		OnExpandedChange: func(id string, expanded bool) {
			if expanded {
				trace.Open()
			} else {
				trace.Close()
			}
		},
		OnSelectionChange: func(ids []string) {
			trace.Selection(ids)
			announce(fmt.Sprintf("%d nodes selected", len(ids)))
		},
	})
	items := []tree.Item{
		{ID: "src", Label: "src"},
		{ID: "engine", ParentID: "src", Label: "engine"},
		{ID: "select.go", ParentID: "engine", Label: "select.go"},
		{ID: "combobox.go", ParentID: "engine", Label: "combobox.go"},
		{ID: "adapters", ParentID: "src", Label: "adapters"},
		{ID: "terminal.go", ParentID: "adapters", Label: "terminal.go"},
		{ID: "docs", Label: "docs"},
		{ID: "guide.md", ParentID: "docs", Label: "guide.md"},
	}
	for _, item := range items {
		s.labels[item.ID] = item.Label
	}
	s.tr.SetItems(items)
	return s
}

func (s *treeScreen) Title() string { return "Tree" }

func (s *treeScreen) HandleKey(ev host.KeyEvent) bool {
	return s.tr.HandleKeyDown(ev)
}

func (s *treeScreen) View(st *theme.Styles, _ int) string {
	var b strings.Builder
	b.WriteString(st.Info.Render("arrows navigate · right expands · left collapses · space selects · * expands siblings"))
	b.WriteString("\n\n")
	focused := s.tr.Focused()
	selected := make(map[string]bool)
	for _, id := range s.tr.Selected() {
		selected[id] = true
	}
	for _, id := range s.tr.VisibleIDs() {
		props := s.tr.ItemProps(id)
		depth, _ := strconv.Atoi(props["aria-level"])
		indent := strings.Repeat("  ", depth)
		marker := "  "
		if expanded, ok := props["aria-expanded"]; ok {
			marker = "▸ "
			if expanded == "true" {
				marker = "▾ "
			}
		}
		line := cursorFor(id == focused) + indent + marker + s.labels[id]
		switch {
		case id == focused:
			b.WriteString(st.ActiveItem.Render(line))
		case selected[id]:
			b.WriteString(st.SelectedItem.Render(line))
		default:
			b.WriteString(st.Item.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *treeScreen) Destroy() { s.tr.Destroy() }

// pinScreen drives the segmented code input.
type pinScreen struct {
	pin  *pininput.Behavior
	done string
}

func newPinScreen(announce func(string)) *pinScreen {
	s := &pinScreen{}
	s.pin = pininput.New(pininput.Options{
		Length: 6,
		OnComplete: func(value string) {
			s.done = value
			announce("code complete")
		},
		OnChange: func(string) { s.done = "" },
	})
	return s
}

func (s *pinScreen) Title() string { return "PIN" }

func (s *pinScreen) HandleKey(ev host.KeyEvent) bool {
	return s.pin.HandleKeyDown(ev)
}

func (s *pinScreen) View(st *theme.Styles, _ int) string {
	var b strings.Builder
	b.WriteString(st.Info.Render("type digits · backspace walks back · arrows move between cells"))
	b.WriteString("\n\n")
	cells := make([]string, 0, 6)
	for i := range 6 {
		props := s.pin.CellProps(i)
		ch := props["value"]
		if ch == "" {
			ch = "·"
		}
		cell := " " + ch + " "
		if i == s.pin.Focused() {
			cells = append(cells, st.ActiveItem.Render(cell))
		} else {
			cells = append(cells, st.Item.Render(cell))
		}
	}
	b.WriteString(strings.Join(cells, " "))
	b.WriteString("\n")
	if s.done != "" {
		b.WriteString(st.SelectedItem.Render("verified: " + s.done))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *pinScreen) Destroy() { s.pin.Destroy() }
