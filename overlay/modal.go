package overlay

import (
	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/dismiss"
	"github.com/hypoth-org/hypoth-ui-sub001/focustrap"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// ModalOptions configures a Modal.
type ModalOptions struct {
	// Element is the dialog container, used for outside-click hit testing.
	Element host.Element
	// Focusables queries the dialog's focusable elements in tab order.
	Focusables func() []host.Element
	// ActiveElement reports the host's focused element.
	ActiveElement func() host.Element
	// InitialFocus receives focus on open; defaults to the first focusable.
	InitialFocus host.Element
	// ReturnFocus overrides the restore target captured at open.
	ReturnFocus host.Element
	// Alert marks the dialog role alertdialog.
	Alert bool
	// Animated keeps the dialog mounted after Close until ExitComplete.
	Animated bool
	// CloseOnEscape and CloseOnOutsideClick default to true.
	CloseOnEscape       *bool
	CloseOnOutsideClick *bool
	// Stack is the dismiss registry. Nil uses the shared stack.
	Stack      *dismiss.Stack
	GenerateID aria.Generator

	OnOpenChange func(open bool)
	// OnExitComplete fires when the dialog unmounts after Close.
	OnExitComplete func()
}

// Modal is a dialog behavior: focus trapped while open, dismissable as the
// topmost layer, unmounted only after its exit animation.
type Modal struct {
	opts      ModalOptions
	contentID string
	titleID   string
	descID    string
	trap      *focustrap.Trap
	layer     *dismiss.Layer
	presence  presence
	destroyed bool
}

// NewModal constructs a closed modal.
func NewModal(opts ModalOptions) *Modal {
	if opts.GenerateID == nil {
		opts.GenerateID = aria.NewGenerator("modal")
	}
	m := &Modal{
		opts:      opts,
		contentID: opts.GenerateID(),
		titleID:   opts.GenerateID(),
		descID:    opts.GenerateID(),
	}
	m.trap = focustrap.New(focustrap.Options{
		Focusables:    opts.Focusables,
		ActiveElement: opts.ActiveElement,
		InitialFocus:  opts.InitialFocus,
		ReturnFocus:   opts.ReturnFocus,
	})
	m.layer = dismiss.NewLayer(dismiss.Options{
		Stack:     opts.Stack,
		OnDismiss: m.handleDismiss,
		Contains: func(ev host.PointerEvent) bool {
			el := m.opts.Element
			if el == nil || !el.Connected() {
				return false
			}
			if el.ID() != "" && el.ID() == ev.TargetID {
				return true
			}
			return el.Bounds().Contains(ev.X, ev.Y)
		},
	})
	m.presence.onExited = func() {
		if m.opts.OnExitComplete != nil {
			m.opts.OnExitComplete()
		}
	}
	return m
}

// Open mounts the dialog, pushes its dismiss layer, and traps focus.
// Repeated calls are no-ops.
func (m *Modal) Open() {
	if m.destroyed || m.presence.present {
		return
	}
	m.presence.show()
	m.layer.Activate()
	m.trap.Activate()
	if m.opts.OnOpenChange != nil {
		m.opts.OnOpenChange(true)
	}
}

// Close releases the dismiss layer immediately. Without animation the trap
// releases too and focus returns right away; with animation the dialog stays
// mounted and trapped until ExitComplete, which restores focus. Repeated
// calls are no-ops.
func (m *Modal) Close() {
	if m.destroyed || !m.presence.present {
		return
	}
	m.layer.Deactivate()
	if !m.opts.Animated {
		m.trap.Deactivate()
	}
	m.presence.hide(m.opts.Animated)
	if m.opts.OnOpenChange != nil {
		m.opts.OnOpenChange(false)
	}
}

// IsOpen reports whether the dialog is logically open.
func (m *Modal) IsOpen() bool { return m.presence.present }

// Mounted reports whether the dialog should remain in the host tree,
// including the exit-animation window.
func (m *Modal) Mounted() bool { return m.presence.mounted }

// ExitComplete signals that the exit animation finished; the trap releases,
// focus returns, the dialog unmounts, and OnExitComplete fires. Ignored
// while open.
func (m *Modal) ExitComplete() {
	if m.destroyed {
		return
	}
	if m.presence.exiting {
		m.trap.Deactivate()
	}
	m.presence.exitComplete()
}

// HandleKeyDown forwards Tab cycling to the focus trap. Escape arrives via
// the dismiss stack, not here. Reports whether the event was consumed.
func (m *Modal) HandleKeyDown(ev host.KeyEvent) bool {
	if m.destroyed || !m.presence.present {
		return false
	}
	return m.trap.HandleKeyDown(ev)
}

// ContentProps returns the attribute map for the dialog element.
func (m *Modal) ContentProps() map[string]string {
	role := "dialog"
	if m.opts.Alert {
		role = "alertdialog"
	}
	props := map[string]string{
		"id":               m.contentID,
		"role":             role,
		"aria-modal":       "true",
		"aria-labelledby":  m.titleID,
		"aria-describedby": m.descID,
	}
	if m.presence.exiting {
		props["data-state"] = "closed"
	} else if m.presence.present {
		props["data-state"] = "open"
	}
	return props
}

// TitleProps returns the attribute map for the dialog title.
func (m *Modal) TitleProps() map[string]string {
	return map[string]string{"id": m.titleID}
}

// DescriptionProps returns the attribute map for the dialog description.
func (m *Modal) DescriptionProps() map[string]string {
	return map[string]string{"id": m.descID}
}

// BackdropProps returns the attribute map for the backdrop element.
func (m *Modal) BackdropProps() map[string]string {
	props := map[string]string{"aria-hidden": "true"}
	if m.presence.present {
		props["data-state"] = "open"
	} else if m.presence.exiting {
		props["data-state"] = "closed"
	}
	return props
}

// Destroy closes without animation, releases the trap and layer, and drops
// all callbacks. A destroy during the exit phase cancels the pending
// OnExitComplete. Repeated calls are no-ops.
func (m *Modal) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.trap.Deactivate()
	m.layer.Deactivate()
	m.presence.cancel()
}

func (m *Modal) handleDismiss(reason Reason) {
	switch reason {
	case dismiss.ReasonEscape:
		if !enabled(m.opts.CloseOnEscape) {
			return
		}
	case dismiss.ReasonOutsideClick:
		if !enabled(m.opts.CloseOnOutsideClick) {
			return
		}
	}
	m.Close()
}

// Reason aliases the dismiss reason for overlay callers.
type Reason = dismiss.Reason

func enabled(flag *bool) bool {
	return flag == nil || *flag
}
