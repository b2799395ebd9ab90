package overlay

import (
	"github.com/hypoth-org/hypoth-ui-sub001/anchor"
	"github.com/hypoth-org/hypoth-ui-sub001/aria"
	"github.com/hypoth-org/hypoth-ui-sub001/dismiss"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// PopoverOptions configures a Popover.
type PopoverOptions struct {
	// Trigger is the anchor element. Clicks on it never count as outside.
	Trigger host.Element
	// Content is the floating element, measured on every Reposition.
	Content host.Element
	// Viewport supplies the collision boundary.
	Viewport func() host.Rect
	// Placement defaults to anchor.Bottom; Flip defaults to true.
	Placement anchor.Placement
	Offset    float64
	Flip      *bool
	// Animated keeps the content mounted after Close until ExitComplete.
	Animated bool
	// CloseOnEscape and CloseOnOutsideClick default to true.
	CloseOnEscape       *bool
	CloseOnOutsideClick *bool
	// Stack is the dismiss registry. Nil uses the shared stack.
	Stack      *dismiss.Stack
	GenerateID aria.Generator

	OnOpenChange      func(open bool)
	OnPlacementChange func(anchor.Placement)
	OnExitComplete    func()
}

// Popover is an anchored non-modal surface: positioned against its
// trigger, dismissable as the topmost layer, and kept mounted through its
// exit animation.
type Popover struct {
	opts       PopoverOptions
	triggerID  string
	contentID  string
	layer      *dismiss.Layer
	positioner *anchor.Positioner
	presence   presence
	destroyed  bool
}

// NewPopover constructs a closed popover.
func NewPopover(opts PopoverOptions) *Popover {
	if opts.GenerateID == nil {
		opts.GenerateID = aria.NewGenerator("popover")
	}
	p := &Popover{
		opts:      opts,
		triggerID: opts.GenerateID(),
		contentID: opts.GenerateID(),
	}
	flip := true
	if opts.Flip != nil {
		flip = *opts.Flip
	}
	p.positioner = anchor.NewPositioner(anchor.Options{
		Anchor:            opts.Trigger,
		Floating:          opts.Content,
		Viewport:          opts.Viewport,
		Placement:         opts.Placement,
		Offset:            opts.Offset,
		Flip:              flip,
		OnPlacementChange: opts.OnPlacementChange,
	})
	p.layer = dismiss.NewLayer(dismiss.Options{
		Stack:           opts.Stack,
		OnDismiss:       p.handleDismiss,
		ExcludeElements: []host.Element{opts.Trigger},
		Contains: func(ev host.PointerEvent) bool {
			el := p.opts.Content
			if el == nil || !el.Connected() {
				return false
			}
			if el.ID() != "" && el.ID() == ev.TargetID {
				return true
			}
			return el.Bounds().Contains(ev.X, ev.Y)
		},
	})
	p.presence.onExited = func() {
		if p.opts.OnExitComplete != nil {
			p.opts.OnExitComplete()
		}
	}
	return p
}

// Open mounts the content and pushes the dismiss layer. Repeated calls are
// no-ops.
func (p *Popover) Open() {
	if p.destroyed || p.presence.present {
		return
	}
	p.presence.show()
	p.layer.Activate()
	if p.opts.OnOpenChange != nil {
		p.opts.OnOpenChange(true)
	}
}

// Close pops the dismiss layer; with animation enabled the content stays
// mounted until ExitComplete. Repeated calls are no-ops.
func (p *Popover) Close() {
	if p.destroyed || !p.presence.present {
		return
	}
	p.layer.Deactivate()
	p.presence.hide(p.opts.Animated)
	if p.opts.OnOpenChange != nil {
		p.opts.OnOpenChange(false)
	}
}

// Toggle opens or closes.
func (p *Popover) Toggle() {
	if p.presence.present {
		p.Close()
		return
	}
	p.Open()
}

// IsOpen reports whether the popover is logically open.
func (p *Popover) IsOpen() bool { return p.presence.present }

// Mounted reports whether the content should remain in the host tree.
func (p *Popover) Mounted() bool { return p.presence.mounted }

// Reposition measures trigger and content and resolves the placement.
// Owners call it on open and from scroll/resize signals.
func (p *Popover) Reposition() anchor.Result {
	if p.destroyed {
		return anchor.Result{}
	}
	return p.positioner.Update()
}

// ExitComplete signals that the exit animation finished. Ignored while
// open.
func (p *Popover) ExitComplete() {
	if p.destroyed {
		return
	}
	p.presence.exitComplete()
}

// TriggerProps returns the attribute map for the trigger element.
func (p *Popover) TriggerProps() map[string]string {
	return map[string]string{
		"id":            p.triggerID,
		"aria-haspopup": "dialog",
		"aria-expanded": boolAttr(p.presence.present),
		"aria-controls": p.contentID,
	}
}

// ContentProps returns the attribute map for the floating element.
func (p *Popover) ContentProps() map[string]string {
	props := map[string]string{
		"id":   p.contentID,
		"role": "dialog",
	}
	if p.presence.exiting {
		props["data-state"] = "closed"
	} else if p.presence.present {
		props["data-state"] = "open"
	}
	return props
}

// Destroy closes without animation and drops all callbacks; a destroy
// mid-exit cancels the pending OnExitComplete. Repeated calls are no-ops.
func (p *Popover) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.layer.Deactivate()
	p.positioner.Destroy()
	p.presence.cancel()
}

func (p *Popover) handleDismiss(reason Reason) {
	switch reason {
	case dismiss.ReasonEscape:
		if !enabled(p.opts.CloseOnEscape) {
			return
		}
	case dismiss.ReasonOutsideClick:
		if !enabled(p.opts.CloseOnOutsideClick) {
			return
		}
	}
	p.Close()
}

func boolAttr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
