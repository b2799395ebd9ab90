// Package pininput implements the segmented one-character-per-cell input
// behavior used for verification codes: typing advances, backspace walks
// backwards, and paste distributes across cells.
package pininput

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// Kind restricts which characters a cell accepts.
type Kind int

const (
	// Numeric accepts digits only.
	Numeric Kind = iota
	// Alphanumeric accepts letters and digits.
	Alphanumeric
	// AnyChar accepts any printable character.
	AnyChar
)

// Options configures a Behavior.
type Options struct {
	// Length is the cell count. Defaults to 6.
	Length int
	// Kind defaults to Numeric.
	Kind Kind
	// Mask hides entered characters from props.
	Mask       bool
	Disabled   bool
	GenerateID aria.Generator

	// OnChange fires with the joined value after every accepted edit.
	OnChange func(value string)
	// OnComplete fires once each time every cell becomes filled.
	OnComplete func(value string)
}

// Behavior is a PIN input state machine.
type Behavior struct {
	opts      Options
	baseID    string
	cells     []rune
	focused   int
	complete  bool
	destroyed bool
}

// New constructs the behavior with defaults applied.
func New(opts Options) *Behavior {
	if opts.Length <= 0 {
		opts.Length = 6
	}
	if opts.GenerateID == nil {
		opts.GenerateID = aria.NewGenerator("pininput")
	}
	return &Behavior{
		opts:   opts,
		baseID: opts.GenerateID(),
		cells:  make([]rune, opts.Length),
	}
}

// Value returns the joined cell contents, empty cells omitted.
func (b *Behavior) Value() string {
	var sb strings.Builder
	for _, r := range b.cells {
		if r != 0 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Focused returns the focused cell index.
func (b *Behavior) Focused() int { return b.focused }

// Focus moves focus to cell i, clamped to the cell range.
func (b *Behavior) Focus(i int) {
	if b.destroyed {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(b.cells) {
		i = len(b.cells) - 1
	}
	b.focused = i
}

// HandleKeyDown applies the PIN keyboard contract to the focused cell.
// Reports whether the event was consumed.
func (b *Behavior) HandleKeyDown(ev host.KeyEvent) bool {
	if b.destroyed || b.opts.Disabled {
		return false
	}
	switch ev.Key {
	case host.KeyBackspace:
		b.backspace()
	case host.KeyDelete:
		b.setCell(b.focused, 0)
	case host.KeyArrowLeft:
		b.Focus(b.focused - 1)
	case host.KeyArrowRight:
		b.Focus(b.focused + 1)
	case host.KeyHome:
		b.Focus(0)
	case host.KeyEnd:
		b.Focus(len(b.cells) - 1)
	default:
		if !ev.Printable() {
			return false
		}
		r := []rune(ev.Key)[0]
		if !b.accepts(r) {
			return false
		}
		b.setCell(b.focused, r)
		b.Focus(b.focused + 1)
	}
	return true
}

// HandlePaste distributes text across cells starting at the focused one,
// skipping characters the kind rejects. Focus lands past the last written
// cell.
func (b *Behavior) HandlePaste(text string) {
	if b.destroyed || b.opts.Disabled {
		return
	}
	i := b.focused
	wrote := false
	for _, r := range text {
		if i >= len(b.cells) {
			break
		}
		if !b.accepts(r) {
			continue
		}
		b.cells[i] = r
		wrote = true
		i++
	}
	if !wrote {
		return
	}
	b.Focus(i)
	b.changed()
}

// Clear empties every cell and refocuses the first.
func (b *Behavior) Clear() {
	if b.destroyed {
		return
	}
	emptied := false
	for i := range b.cells {
		if b.cells[i] != 0 {
			b.cells[i] = 0
			emptied = true
		}
	}
	b.focused = 0
	b.complete = false
	if emptied && b.opts.OnChange != nil {
		b.opts.OnChange("")
	}
}

// RootProps returns the attribute map for the cell group.
func (b *Behavior) RootProps() map[string]string {
	return map[string]string{
		"id":   b.baseID,
		"role": "group",
	}
}

// CellProps returns the attribute map for cell i.
func (b *Behavior) CellProps(i int) map[string]string {
	if i < 0 || i >= len(b.cells) {
		return nil
	}
	props := map[string]string{
		"id":           b.cellID(i),
		"inputmode":    b.inputMode(),
		"autocomplete": "one-time-code",
		"tabindex":     "-1",
	}
	if i == b.focused {
		props["tabindex"] = "0"
	}
	if r := b.cells[i]; r != 0 {
		if b.opts.Mask {
			props["value"] = "•"
		} else {
			props["value"] = string(r)
		}
	}
	if b.opts.Disabled {
		props["aria-disabled"] = "true"
	}
	return props
}

// Destroy makes the behavior inert. Repeated calls are no-ops.
func (b *Behavior) Destroy() { b.destroyed = true }

// backspace clears the focused cell, or steps back and clears when the
// focused cell is already empty.
func (b *Behavior) backspace() {
	if b.cells[b.focused] != 0 {
		b.setCell(b.focused, 0)
		return
	}
	if b.focused == 0 {
		return
	}
	b.Focus(b.focused - 1)
	b.setCell(b.focused, 0)
}

func (b *Behavior) setCell(i int, r rune) {
	if b.cells[i] == r {
		return
	}
	b.cells[i] = r
	b.changed()
}

func (b *Behavior) changed() {
	value := b.Value()
	if b.opts.OnChange != nil {
		b.opts.OnChange(value)
	}
	full := len(value) == len(b.cells)
	if full && !b.complete {
		b.complete = true
		if b.opts.OnComplete != nil {
			b.opts.OnComplete(value)
		}
	}
	if !full {
		b.complete = false
	}
}

func (b *Behavior) accepts(r rune) bool {
	switch b.opts.Kind {
	case Numeric:
		return unicode.IsDigit(r)
	case Alphanumeric:
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	default:
		return unicode.IsPrint(r)
	}
}

func (b *Behavior) inputMode() string {
	if b.opts.Kind == Numeric {
		return "numeric"
	}
	return "text"
}

func (b *Behavior) cellID(i int) string {
	return b.baseID + "-cell-" + strconv.Itoa(i)
}
