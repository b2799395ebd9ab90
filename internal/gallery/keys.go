package gallery

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// translateKey maps a Bubble Tea key message onto the engine's host key
// vocabulary. Keys without an engine meaning map to an empty event.
func translateKey(msg tea.KeyMsg) host.KeyEvent {
	switch msg.Type {
	case tea.KeyUp:
		return host.KeyEvent{Key: host.KeyArrowUp}
	case tea.KeyDown:
		return host.KeyEvent{Key: host.KeyArrowDown}
	case tea.KeyLeft:
		return host.KeyEvent{Key: host.KeyArrowLeft}
	case tea.KeyRight:
		return host.KeyEvent{Key: host.KeyArrowRight}
	case tea.KeyHome:
		return host.KeyEvent{Key: host.KeyHome}
	case tea.KeyEnd:
		return host.KeyEvent{Key: host.KeyEnd}
	case tea.KeyPgUp:
		return host.KeyEvent{Key: host.KeyPageUp}
	case tea.KeyPgDown:
		return host.KeyEvent{Key: host.KeyPageDown}
	case tea.KeyEnter:
		return host.KeyEvent{Key: host.KeyEnter}
	case tea.KeyEsc:
		return host.KeyEvent{Key: host.KeyEscape}
	case tea.KeyTab:
		return host.KeyEvent{Key: host.KeyTab}
	case tea.KeyShiftTab:
		return host.KeyEvent{Key: host.KeyTab, Shift: true}
	case tea.KeyBackspace:
		return host.KeyEvent{Key: host.KeyBackspace}
	case tea.KeyDelete:
		return host.KeyEvent{Key: host.KeyDelete}
	case tea.KeySpace:
		return host.KeyEvent{Key: host.KeySpace}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return host.KeyEvent{Key: string(msg.Runes), Alt: msg.Alt}
		}
	}
	return host.KeyEvent{}
}
