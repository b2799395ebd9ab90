package focustrap

import (
	"testing"

	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// hostDoc is a minimal focus-tracking host for trap tests.
type hostDoc struct {
	focused  *host.StaticElement
	elements []*host.StaticElement
}

func (d *hostDoc) element(id string) *host.StaticElement {
	el := &host.StaticElement{Id: id}
	d.elements = append(d.elements, el)
	return el
}

func (d *hostDoc) active() host.Element {
	if d.focused == nil {
		return nil
	}
	return d.focused
}

func (d *hostDoc) track() {
	for _, el := range d.elements {
		if el.Focused {
			el.Focused = false
			d.focused = el
		}
	}
}

func newTrapFixture(t *testing.T) (*hostDoc, *Trap, []*host.StaticElement) {
	t.Helper()
	doc := &hostDoc{}
	outside := doc.element("outside")
	first := doc.element("first")
	second := doc.element("second")
	third := doc.element("third")
	inside := []*host.StaticElement{first, second, third}
	trap := New(Options{
		Focusables: func() []host.Element {
			els := make([]host.Element, 0, len(inside))
			for _, el := range inside {
				els = append(els, el)
			}
			return els
		},
		ActiveElement: doc.active,
	})
	doc.focused = outside
	return doc, trap, inside
}

func tab(shift bool) host.KeyEvent { return host.KeyEvent{Key: host.KeyTab, Shift: shift} }

func TestActivateMovesFocusIntoContainer(t *testing.T) {
	doc, trap, inside := newTrapFixture(t)
	trap.Activate()
	doc.track()
	if doc.focused != inside[0] {
		t.Fatalf("expected first focusable focused, got %v", doc.focused)
	}
}

func TestTabCyclesForwardWithWrap(t *testing.T) {
	doc, trap, inside := newTrapFixture(t)
	trap.Activate()
	doc.track()

	for _, want := range []*host.StaticElement{inside[1], inside[2], inside[0]} {
		if !trap.HandleKeyDown(tab(false)) {
			t.Fatal("expected tab consumed")
		}
		doc.track()
		if doc.focused != want {
			t.Fatalf("expected %s focused, got %s", want.Id, doc.focused.Id)
		}
	}
}

func TestShiftTabCyclesBackward(t *testing.T) {
	doc, trap, inside := newTrapFixture(t)
	trap.Activate()
	doc.track()

	trap.HandleKeyDown(tab(true))
	doc.track()
	if doc.focused != inside[2] {
		t.Fatalf("expected wrap to last, got %s", doc.focused.Id)
	}
}

func TestLiveQueryPicksUpContentChanges(t *testing.T) {
	doc, trap, inside := newTrapFixture(t)
	trap.Activate()
	doc.track()

	// Second focusable leaves the tree while trapped.
	inside[1].Detached = true
	trap.HandleKeyDown(tab(false))
	doc.track()
	if doc.focused != inside[2] {
		t.Fatalf("expected detached element skipped, got %s", doc.focused.Id)
	}
}

func TestDeactivateRestoresPreviousFocus(t *testing.T) {
	doc, trap, _ := newTrapFixture(t)
	previous := doc.focused
	trap.Activate()
	doc.track()
	trap.Deactivate()
	doc.track()
	if doc.focused != previous {
		t.Fatalf("expected focus restored to %s, got %s", previous.Id, doc.focused.Id)
	}
}

func TestRestoreSkippedWhenTargetDisconnected(t *testing.T) {
	doc, trap, inside := newTrapFixture(t)
	previous := doc.focused
	trap.Activate()
	doc.track()
	previous.Detached = true
	trap.Deactivate()
	doc.track()
	if doc.focused == previous {
		t.Fatal("expected restoration skipped for disconnected target")
	}
	if doc.focused != inside[0] {
		t.Fatalf("expected focus to stay put, got %s", doc.focused.Id)
	}
}

func TestReturnFocusOverride(t *testing.T) {
	doc, _, _ := newTrapFixture(t)
	trigger := doc.element("trigger")
	trap := New(Options{
		Focusables:    func() []host.Element { return []host.Element{doc.elements[1]} },
		ActiveElement: doc.active,
		ReturnFocus:   trigger,
	})
	trap.Activate()
	doc.track()
	trap.Deactivate()
	doc.track()
	if doc.focused != trigger {
		t.Fatalf("expected trigger refocused, got %s", doc.focused.Id)
	}
}

func TestContainerRemovalDoesNotPanic(t *testing.T) {
	doc, trap, inside := newTrapFixture(t)
	trap.Activate()
	doc.track()
	for _, el := range inside {
		el.Detached = true
	}
	if !trap.HandleKeyDown(tab(false)) {
		t.Fatal("expected tab swallowed while container empty")
	}
	trap.Deactivate()
	trap.Deactivate()
}

func TestLifecycleIdempotent(t *testing.T) {
	doc, trap, inside := newTrapFixture(t)
	trap.Activate()
	trap.Activate()
	doc.track()
	if doc.focused != inside[0] {
		t.Fatalf("expected single activation effect, got %s", doc.focused.Id)
	}
	trap.Deactivate()
	trap.Deactivate()
	if trap.Active() {
		t.Fatal("expected trap inactive")
	}
	if trap.HandleKeyDown(tab(false)) {
		t.Fatal("expected inactive trap to ignore tab")
	}
}
