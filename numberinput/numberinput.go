// Package numberinput implements the spinbutton interaction behavior:
// a numeric value with clamping, stepping, and free-text entry that is
// validated on commit.
package numberinput

import (
	"math"
	"strconv"
	"strings"

	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// Validity classifies the current input text.
type Validity string

const (
	// Valid means the text parses and sits inside [Min, Max].
	Valid Validity = "valid"
	// RangeUnderflow and RangeOverflow mean the text parses but falls
	// outside the bounds.
	RangeUnderflow Validity = "rangeUnderflow"
	RangeOverflow  Validity = "rangeOverflow"
	// BadInput means the text does not parse as a number.
	BadInput Validity = "badInput"
)

// State is the behavior's snapshot.
type State struct {
	// Value is the committed numeric value. NaN while empty.
	Value float64
	// Text is the uncommitted input buffer.
	Text     string
	Validity Validity
}

// Options configures a Behavior. Min and Max default to the full float
// range, Step to 1.
type Options struct {
	DefaultValue *float64
	Min          *float64
	Max          *float64
	Step         float64
	// LargeStep multiplies Step for PageUp/PageDown. Defaults to 10.
	LargeStep float64
	// Clamp snaps out-of-range committed values to the nearest bound
	// instead of leaving them invalid.
	Clamp      bool
	Disabled   bool
	ReadOnly   bool
	GenerateID aria.Generator

	OnValueChange func(value float64, text string)
}

// Behavior is a spinbutton state machine.
type Behavior struct {
	opts      Options
	id        string
	state     State
	destroyed bool
}

// New constructs the behavior with defaults applied.
func New(opts Options) *Behavior {
	if opts.GenerateID == nil {
		opts.GenerateID = aria.NewGenerator("numberinput")
	}
	if opts.Step == 0 {
		opts.Step = 1
	}
	if opts.LargeStep == 0 {
		opts.LargeStep = 10
	}
	b := &Behavior{opts: opts, id: opts.GenerateID()}
	b.state = State{Value: math.NaN(), Validity: Valid}
	if opts.DefaultValue != nil {
		b.commit(*opts.DefaultValue, false)
	}
	return b
}

// State returns the current snapshot.
func (b *Behavior) State() State { return b.state }

// SetText replaces the input buffer without committing, reclassifying
// validity as the user types.
func (b *Behavior) SetText(text string) {
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly {
		return
	}
	next := b.state
	next.Text = text
	next.Validity = b.classify(text)
	b.state = next
}

// Commit parses the buffer and commits it, clamping when configured.
// An empty buffer clears the value.
func (b *Behavior) Commit() {
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly {
		return
	}
	text := strings.TrimSpace(b.state.Text)
	if text == "" {
		b.clear()
		return
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		next := b.state
		next.Validity = BadInput
		b.state = next
		return
	}
	b.commit(value, true)
}

// SetValue commits a numeric value directly.
func (b *Behavior) SetValue(value float64) {
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly {
		return
	}
	b.commit(value, true)
}

// Increment steps the value up. An empty value starts from zero or Min.
func (b *Behavior) Increment() { b.stepBy(b.opts.Step) }

// Decrement steps the value down.
func (b *Behavior) Decrement() { b.stepBy(-b.opts.Step) }

// HandleKeyDown applies the spinbutton keyboard contract. Reports whether
// the event was consumed.
func (b *Behavior) HandleKeyDown(ev host.KeyEvent) bool {
	if b.destroyed || b.opts.Disabled {
		return false
	}
	switch ev.Key {
	case host.KeyArrowUp:
		b.Increment()
	case host.KeyArrowDown:
		b.Decrement()
	case host.KeyPageUp:
		b.stepBy(b.opts.Step * b.opts.LargeStep)
	case host.KeyPageDown:
		b.stepBy(-b.opts.Step * b.opts.LargeStep)
	case host.KeyHome:
		if b.opts.Min != nil {
			b.SetValue(*b.opts.Min)
		}
	case host.KeyEnd:
		if b.opts.Max != nil {
			b.SetValue(*b.opts.Max)
		}
	case host.KeyEnter:
		b.Commit()
	default:
		return false
	}
	return true
}

// Props returns the attribute map for the input element.
func (b *Behavior) Props() map[string]string {
	props := map[string]string{
		"id":        b.id,
		"role":      "spinbutton",
		"inputmode": "decimal",
	}
	if !math.IsNaN(b.state.Value) {
		props["aria-valuenow"] = formatNumber(b.state.Value)
	}
	if b.opts.Min != nil {
		props["aria-valuemin"] = formatNumber(*b.opts.Min)
	}
	if b.opts.Max != nil {
		props["aria-valuemax"] = formatNumber(*b.opts.Max)
	}
	if b.state.Validity != Valid {
		props["aria-invalid"] = "true"
	}
	if b.opts.Disabled {
		props["aria-disabled"] = "true"
	}
	if b.opts.ReadOnly {
		props["aria-readonly"] = "true"
	}
	return props
}

// IncrementProps returns the attribute map for the step-up button.
func (b *Behavior) IncrementProps() map[string]string {
	return b.stepperProps(b.opts.Max, func(v, bound float64) bool { return v >= bound })
}

// DecrementProps returns the attribute map for the step-down button.
func (b *Behavior) DecrementProps() map[string]string {
	return b.stepperProps(b.opts.Min, func(v, bound float64) bool { return v <= bound })
}

// Destroy makes the behavior inert. Repeated calls are no-ops.
func (b *Behavior) Destroy() { b.destroyed = true }

func (b *Behavior) stepperProps(bound *float64, saturated func(v, bound float64) bool) map[string]string {
	props := map[string]string{
		"tabindex":      "-1",
		"aria-hidden":   "true",
		"aria-controls": b.id,
	}
	if b.opts.Disabled || b.opts.ReadOnly {
		props["aria-disabled"] = "true"
	} else if bound != nil && !math.IsNaN(b.state.Value) && saturated(b.state.Value, *bound) {
		props["aria-disabled"] = "true"
	}
	return props
}

func (b *Behavior) stepBy(delta float64) {
	if b.destroyed || b.opts.Disabled || b.opts.ReadOnly {
		return
	}
	current := b.state.Value
	if math.IsNaN(current) {
		current = 0
		if b.opts.Min != nil && *b.opts.Min > 0 {
			current = *b.opts.Min
		}
		if b.opts.Max != nil && *b.opts.Max < 0 {
			current = *b.opts.Max
		}
		b.commitClamped(current)
		return
	}
	b.commitClamped(roundStep(current + delta))
}

// commitClamped always snaps to the bounds; stepping never produces an
// out-of-range value even when Clamp is off.
func (b *Behavior) commitClamped(value float64) {
	if b.opts.Min != nil && value < *b.opts.Min {
		value = *b.opts.Min
	}
	if b.opts.Max != nil && value > *b.opts.Max {
		value = *b.opts.Max
	}
	b.commit(value, true)
}

func (b *Behavior) commit(value float64, notify bool) {
	validity := Valid
	if b.opts.Min != nil && value < *b.opts.Min {
		if b.opts.Clamp {
			value = *b.opts.Min
		} else {
			validity = RangeUnderflow
		}
	}
	if b.opts.Max != nil && value > *b.opts.Max {
		if b.opts.Clamp {
			value = *b.opts.Max
		} else {
			validity = RangeOverflow
		}
	}
	changed := b.state.Value != value || math.IsNaN(b.state.Value) != math.IsNaN(value)
	next := State{Value: value, Text: formatNumber(value), Validity: validity}
	b.state = next
	if notify && changed && b.opts.OnValueChange != nil {
		b.opts.OnValueChange(value, next.Text)
	}
}

func (b *Behavior) clear() {
	changed := !math.IsNaN(b.state.Value)
	b.state = State{Value: math.NaN(), Validity: Valid}
	if changed && b.opts.OnValueChange != nil {
		b.opts.OnValueChange(math.NaN(), "")
	}
}

func (b *Behavior) classify(text string) Validity {
	text = strings.TrimSpace(text)
	if text == "" {
		return Valid
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return BadInput
	}
	if b.opts.Min != nil && value < *b.opts.Min {
		return RangeUnderflow
	}
	if b.opts.Max != nil && value > *b.opts.Max {
		return RangeOverflow
	}
	return Valid
}

// roundStep trims float drift from repeated fractional steps.
func roundStep(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
