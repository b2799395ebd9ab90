// Package gallery is the terminal adapter for the interaction engine: one
// screen per behavior, forwarding Bubble Tea key events into the headless
// state machines and rendering their snapshots with Lip Gloss.
package gallery

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
	"github.com/hypoth-org/hypoth-ui-sub001/internal/logging/events"
	"github.com/hypoth-org/hypoth-ui-sub001/internal/source"
	"github.com/hypoth-org/hypoth-ui-sub001/internal/theme"
	"github.com/hypoth-org/hypoth-ui-sub001/tabs"
)

// Options configures the gallery model.
type Options struct {
	Screen    string
	Width     int
	Height    int
	Debounce  time.Duration
	Directory *source.Directory
	Watcher   *source.Watcher
	Verbose   bool
}

// screen is one gallery page backed by a behavior instance.
type screen interface {
	Title() string
	// HandleKey forwards a translated key event. Reports whether the
	// screen consumed it.
	HandleKey(ev host.KeyEvent) bool
	View(st *theme.Styles, width int) string
	Destroy()
}

type rosterMsg source.Event

type refreshMsg struct{}

// Model is the gallery's Bubble Tea root.
type Model struct {
	opts    Options
	styles  *theme.Styles
	width   int
	height  int
	nav     *tabs.Tabs
	screens map[string]screen
	order   []string
	live    *aria.LiveRegion
	notes   []string
	quit    bool
}

// NewModel wires every screen and selects the starting one.
func NewModel(opts Options) *Model {
	m := &Model{
		opts:    opts,
		styles:  theme.Default(),
		width:   opts.Width,
		height:  opts.Height,
		screens: make(map[string]screen),
	}
	m.live = aria.NewLiveRegion(func(a aria.Announcement) {
		m.note(string(a.Politeness) + ": " + a.Message)
	})

	m.order = []string{"listbox", "select", "combobox", "tree", "pininput"}
	m.screens["listbox"] = newListboxScreen(m.announce)
	m.screens["select"] = newSelectScreen(opts.Directory, m.announce)
	m.screens["combobox"] = newComboboxScreen(opts.Directory, opts.Debounce, m.announce)
	m.screens["tree"] = newTreeScreen(m.announce)
	m.screens["pininput"] = newPinScreen(m.announce)

	items := make([]tabs.Item, len(m.order))
	for i, name := range m.order {
		items[i] = tabs.Item{Value: name}
	}
	m.nav = tabs.New(tabs.Options{DefaultValue: opts.Screen})
	m.nav.SetItems(items)
	return m
}

// Init starts the roster feed and the repaint tick.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{refreshTick()}
	if m.opts.Watcher != nil {
		cmds = append(cmds, waitForRoster(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// Update routes messages: sizing, roster updates, repaint ticks, and keys.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.opts.Width == 0 {
			m.width = msg.Width
		}
		if m.opts.Height == 0 {
			m.height = msg.Height
		}
		return m, nil
	case rosterMsg:
		if msg.Err == nil {
			if lb, ok := m.screens["listbox"].(*listboxScreen); ok {
				lb.SetRoster(msg.Data)
			}
		}
		return m, waitForRoster(m.opts.Watcher)
	case refreshMsg:
		// Async combobox loads settle between keystrokes; a periodic
		// repaint keeps the status line current.
		return m, refreshTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quit = true
		m.destroy()
		events.App.Exit(nil)
		return m, tea.Quit
	}

	ev := translateKey(msg)
	if ev.Key == host.KeyTab {
		// Tab cycles screens; the nav tablist handles wrap and skip.
		arrow := host.KeyEvent{Key: host.KeyArrowRight}
		if ev.Shift {
			arrow.Key = host.KeyArrowLeft
		}
		m.nav.HandleKeyDown(arrow)
		return m, nil
	}
	if ev.Key == "" {
		return m, nil
	}
	if active := m.screens[m.nav.Value()]; active != nil {
		active.HandleKey(ev)
	}
	return m, nil
}

// View renders the tab header, the active screen, and the footer.
func (m *Model) View() string {
	if m.quit {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 80
	}

	var header []string
	for _, name := range m.order {
		title := m.screens[name].Title()
		if name == m.nav.Value() {
			header = append(header, m.styles.TabActive.Render(title))
		} else {
			header = append(header, m.styles.TabIdle.Render(title))
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("hypoth-ui gallery"))
	b.WriteString("  ")
	b.WriteString(strings.Join(header, "  "))
	b.WriteString("\n\n")
	if active := m.screens[m.nav.Value()]; active != nil {
		b.WriteString(active.View(m.styles, width))
	}
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) footer() string {
	parts := []string{m.styles.Footer.Render("tab: next screen · ctrl+c: quit")}
	if last := m.live.Last(); last.Message != "" {
		parts = append(parts, m.styles.Announcement.Render(last.Message))
	}
	if m.opts.Verbose && len(m.notes) > 0 {
		parts = append(parts, m.styles.Info.Render(m.notes[len(m.notes)-1]))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) announce(message string) {
	m.live.Announce(message, aria.Polite)
}

func (m *Model) note(entry string) {
	m.notes = append(m.notes, entry)
	if len(m.notes) > 50 {
		m.notes = m.notes[len(m.notes)-50:]
	}
}

func (m *Model) destroy() {
	for _, s := range m.screens {
		s.Destroy()
	}
	m.nav.Destroy()
}

func waitForRoster(w *source.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return nil
		}
		return rosterMsg(evt)
	}
}

func refreshTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

func cursorFor(active bool) string {
	if active {
		return "❯ "
	}
	return "  "
}
