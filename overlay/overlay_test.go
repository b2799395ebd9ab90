package overlay

import (
	"testing"

	"github.com/hypoth-org/hypoth-ui-sub001/anchor"
	"github.com/hypoth-org/hypoth-ui-sub001/dismiss"
	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// doc is a minimal focus-tracking host for overlay tests.
type doc struct {
	active host.Element
}

func (d *doc) el(id string, r host.Rect) *trackedElement {
	return &trackedElement{StaticElement: host.StaticElement{Id: id, Rect: r}, doc: d}
}

type trackedElement struct {
	host.StaticElement
	doc *doc
}

func (e *trackedElement) Focus() {
	e.StaticElement.Focus()
	e.doc.active = e
}

func newModalFixture(stack *dismiss.Stack) (*doc, *Modal, *trackedElement) {
	d := &doc{}
	trigger := d.el("trigger", host.Rect{X: 0, Y: 0, Width: 50, Height: 20})
	content := d.el("content", host.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	confirm := d.el("confirm", host.Rect{X: 110, Y: 200, Width: 60, Height: 20})
	cancel := d.el("cancel", host.Rect{X: 180, Y: 200, Width: 60, Height: 20})
	trigger.Focus()
	m := NewModal(ModalOptions{
		Element:       content,
		Focusables:    func() []host.Element { return []host.Element{confirm, cancel} },
		ActiveElement: func() host.Element { return d.active },
		Stack:         stack,
	})
	return d, m, trigger
}

func TestModalEscapeDismissalEndToEnd(t *testing.T) {
	stack := dismiss.NewStack()
	d, m, trigger := newModalFixture(stack)
	defer m.Destroy()
	var opens []bool
	m.opts.OnOpenChange = func(o bool) { opens = append(opens, o) }

	m.Open()
	if !m.IsOpen() || stack.Len() != 1 {
		t.Fatal("expected open modal on the stack")
	}
	if d.active.ID() != "confirm" {
		t.Fatalf("expected initial focus inside dialog, got %q", d.active.ID())
	}

	if !stack.HandleKeyDown(host.KeyEvent{Key: host.KeyEscape}) {
		t.Fatal("expected escape consumed")
	}
	if m.IsOpen() || stack.Len() != 0 {
		t.Fatal("expected escape to close and pop the layer")
	}
	if d.active.ID() != trigger.ID() {
		t.Fatalf("expected focus restored to trigger, got %q", d.active.ID())
	}
	if len(opens) != 2 || opens[0] != true || opens[1] != false {
		t.Fatalf("unexpected open sequence %v", opens)
	}
}

func TestModalOutsideClickRespectsHitTest(t *testing.T) {
	stack := dismiss.NewStack()
	_, m, _ := newModalFixture(stack)
	defer m.Destroy()
	m.Open()

	stack.HandlePointerDown(host.PointerEvent{X: 150, Y: 150}) // inside dialog bounds
	if !m.IsOpen() {
		t.Fatal("expected inside click ignored")
	}
	stack.HandlePointerDown(host.PointerEvent{X: 10, Y: 400})
	if m.IsOpen() {
		t.Fatal("expected outside click to close")
	}
}

func TestModalCloseOnEscapeOptOut(t *testing.T) {
	stack := dismiss.NewStack()
	off := false
	d := &doc{}
	m := NewModal(ModalOptions{
		Element:       d.el("content", host.Rect{Width: 10, Height: 10}),
		CloseOnEscape: &off,
		Stack:         stack,
	})
	defer m.Destroy()
	m.Open()
	stack.HandleKeyDown(host.KeyEvent{Key: host.KeyEscape})
	if !m.IsOpen() {
		t.Fatal("expected escape suppressed")
	}
	stack.HandlePointerDown(host.PointerEvent{X: 500, Y: 500})
	if m.IsOpen() {
		t.Fatal("expected outside click still active")
	}
}

func TestModalTabCyclesTrappedFocus(t *testing.T) {
	stack := dismiss.NewStack()
	d, m, _ := newModalFixture(stack)
	defer m.Destroy()
	m.Open()

	m.HandleKeyDown(host.KeyEvent{Key: host.KeyTab})
	if d.active.ID() != "cancel" {
		t.Fatalf("expected tab to advance, got %q", d.active.ID())
	}
	m.HandleKeyDown(host.KeyEvent{Key: host.KeyTab})
	if d.active.ID() != "confirm" {
		t.Fatalf("expected tab to wrap, got %q", d.active.ID())
	}
	m.HandleKeyDown(host.KeyEvent{Key: host.KeyTab, Shift: true})
	if d.active.ID() != "cancel" {
		t.Fatalf("expected shift-tab to reverse, got %q", d.active.ID())
	}
}

func TestNestedModalsDismissTopmostFirst(t *testing.T) {
	stack := dismiss.NewStack()
	_, outer, _ := newModalFixture(stack)
	defer outer.Destroy()
	_, inner, _ := newModalFixture(stack)
	defer inner.Destroy()

	outer.Open()
	inner.Open()
	stack.HandleKeyDown(host.KeyEvent{Key: host.KeyEscape})
	if inner.IsOpen() || !outer.IsOpen() {
		t.Fatal("expected only the topmost modal dismissed")
	}
	stack.HandleKeyDown(host.KeyEvent{Key: host.KeyEscape})
	if outer.IsOpen() {
		t.Fatal("expected second escape to dismiss the outer modal")
	}
}

func TestAnimatedModalStaysMountedUntilExitComplete(t *testing.T) {
	stack := dismiss.NewStack()
	d := &doc{}
	var exited int
	m := NewModal(ModalOptions{
		Element:        d.el("content", host.Rect{Width: 10, Height: 10}),
		Animated:       true,
		Stack:          stack,
		OnExitComplete: func() { exited++ },
	})
	defer m.Destroy()

	m.Open()
	m.Close()
	if m.IsOpen() || !m.Mounted() {
		t.Fatal("expected closed but still mounted during exit")
	}
	if m.ContentProps()["data-state"] != "closed" {
		t.Fatal("expected exiting state advertised")
	}
	m.ExitComplete()
	m.ExitComplete() // second signal ignored
	if m.Mounted() || exited != 1 {
		t.Fatalf("expected single unmount, got mounted=%v exited=%d", m.Mounted(), exited)
	}
}

func TestAnimatedModalRestoresFocusOnExitComplete(t *testing.T) {
	stack := dismiss.NewStack()
	d := &doc{}
	trigger := d.el("trigger", host.Rect{Width: 50, Height: 20})
	content := d.el("content", host.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	confirm := d.el("confirm", host.Rect{X: 110, Y: 200, Width: 60, Height: 20})
	trigger.Focus()
	m := NewModal(ModalOptions{
		Element:       content,
		Focusables:    func() []host.Element { return []host.Element{confirm} },
		ActiveElement: func() host.Element { return d.active },
		Animated:      true,
		Stack:         stack,
	})
	defer m.Destroy()

	m.Open()
	if d.active.ID() != "confirm" {
		t.Fatalf("expected focus inside dialog, got %q", d.active.ID())
	}
	m.Close()
	if d.active.ID() != "confirm" {
		t.Fatalf("expected focus held during exit animation, got %q", d.active.ID())
	}
	m.ExitComplete()
	if d.active.ID() != "trigger" {
		t.Fatalf("expected focus restored after exit completed, got %q", d.active.ID())
	}
}

func TestDestroyMidExitCancelsCallback(t *testing.T) {
	stack := dismiss.NewStack()
	d := &doc{}
	var exited int
	m := NewModal(ModalOptions{
		Element:        d.el("content", host.Rect{Width: 10, Height: 10}),
		Animated:       true,
		Stack:          stack,
		OnExitComplete: func() { exited++ },
	})

	m.Open()
	m.Close()
	m.Destroy()
	m.ExitComplete()
	if exited != 0 {
		t.Fatalf("expected no exit callback after destroy, got %d", exited)
	}
	if stack.Len() != 0 {
		t.Fatal("expected layer removed on destroy")
	}
}

func newPopoverFixture(stack *dismiss.Stack) (*doc, *Popover, *trackedElement, *trackedElement) {
	d := &doc{}
	trigger := d.el("trigger", host.Rect{X: 100, Y: 100, Width: 80, Height: 30})
	content := d.el("pop", host.Rect{Width: 120, Height: 60})
	p := NewPopover(PopoverOptions{
		Trigger:  trigger,
		Content:  content,
		Viewport: func() host.Rect { return host.Rect{Width: 800, Height: 600} },
		Stack:    stack,
	})
	return d, p, trigger, content
}

func TestPopoverTriggerClickIsNotOutside(t *testing.T) {
	stack := dismiss.NewStack()
	_, p, _, _ := newPopoverFixture(stack)
	defer p.Destroy()

	p.Open()
	if stack.HandlePointerDown(host.PointerEvent{TargetID: "trigger", X: 110, Y: 110}) {
		t.Fatal("expected trigger click excluded from outside dismissal")
	}
	if !p.IsOpen() {
		t.Fatal("expected popover still open")
	}
	stack.HandlePointerDown(host.PointerEvent{X: 700, Y: 500})
	if p.IsOpen() {
		t.Fatal("expected outside click to close")
	}
}

func TestPopoverRepositionFlips(t *testing.T) {
	stack := dismiss.NewStack()
	d := &doc{}
	trigger := d.el("trigger", host.Rect{X: 100, Y: 550, Width: 80, Height: 30})
	content := d.el("pop", host.Rect{Width: 120, Height: 100})
	var placements []anchor.Placement
	p := NewPopover(PopoverOptions{
		Trigger:           trigger,
		Content:           content,
		Viewport:          func() host.Rect { return host.Rect{Width: 800, Height: 600} },
		Stack:             stack,
		OnPlacementChange: func(pl anchor.Placement) { placements = append(placements, pl) },
	})
	defer p.Destroy()

	p.Open()
	result := p.Reposition()
	if result.Placement != anchor.Top {
		t.Fatalf("expected bottom placement to flip to top, got %q", result.Placement)
	}
	p.Reposition() // same resolution, no extra callback
	if len(placements) != 1 {
		t.Fatalf("expected one placement callback, got %v", placements)
	}

	trigger.Rect.Y = 100
	p.Reposition()
	if len(placements) != 2 || placements[1] != anchor.Bottom {
		t.Fatalf("expected flip back to bottom, got %v", placements)
	}
}

func TestPopoverToggleAndProps(t *testing.T) {
	stack := dismiss.NewStack()
	_, p, _, _ := newPopoverFixture(stack)
	defer p.Destroy()

	if p.TriggerProps()["aria-expanded"] != "false" {
		t.Fatal("expected collapsed trigger")
	}
	p.Toggle()
	props := p.TriggerProps()
	if props["aria-expanded"] != "true" || props["aria-haspopup"] != "dialog" {
		t.Fatalf("unexpected trigger props %#v", props)
	}
	if p.ContentProps()["data-state"] != "open" {
		t.Fatal("expected open content state")
	}
	p.Toggle()
	if p.IsOpen() {
		t.Fatal("expected toggle to close")
	}
}
