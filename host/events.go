package host

import "unicode"

// Key identifiers follow the DOM KeyboardEvent.key names so adapters can
// forward events without a translation table. Printable keys carry the
// character itself.
const (
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyPageUp     = "PageUp"
	KeyPageDown   = "PageDown"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyTab        = "Tab"
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeySpace      = " "
)

// KeyEvent is a keyboard event forwarded by an adapter.
type KeyEvent struct {
	Key   string
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// Printable reports whether the event carries a single printable character
// with no command modifiers held.
func (e KeyEvent) Printable() bool {
	if e.Ctrl || e.Alt || e.Meta {
		return false
	}
	runes := []rune(e.Key)
	return len(runes) == 1 && unicode.IsPrint(runes[0])
}

// PointerEvent is a pointer-down event forwarded by an adapter. TargetID
// names the host node under the pointer when the adapter knows it.
type PointerEvent struct {
	X, Y     float64
	TargetID string
}
