package rovingfocus

import (
	"testing"

	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

func items(values ...string) []Item {
	out := make([]Item, len(values))
	for i, v := range values {
		out[i] = Item{Value: v}
	}
	return out
}

func key(k string) host.KeyEvent { return host.KeyEvent{Key: k} }

func TestFirstEnabledItemIsInitialStop(t *testing.T) {
	r := New(Options{SkipDisabled: true})
	r.SetItems([]Item{{Value: "a", Disabled: true}, {Value: "b"}, {Value: "c"}})
	if v, i := r.Active(); v != "b" || i != 1 {
		t.Fatalf("expected initial stop b/1, got %s/%d", v, i)
	}
}

func TestExactlyOneTabStop(t *testing.T) {
	r := New(Options{})
	r.SetItems(items("a", "b", "c"))
	r.Next()
	zero := 0
	for i := range 3 {
		if r.ItemProps(i)["tabindex"] == "0" {
			zero++
		}
	}
	if zero != 1 {
		t.Fatalf("expected exactly one tabindex 0, got %d", zero)
	}
}

func TestArrowNavigationSkipsDisabled(t *testing.T) {
	r := New(Options{SkipDisabled: true, Loop: true})
	r.SetItems([]Item{{Value: "a"}, {Value: "b", Disabled: true}, {Value: "c"}})
	if !r.HandleKeyDown(key(host.KeyArrowDown)) {
		t.Fatal("expected arrow to be consumed")
	}
	if v, _ := r.Active(); v != "c" {
		t.Fatalf("expected disabled item skipped, active %q", v)
	}
	if props := r.ItemProps(1); props["aria-disabled"] != "true" {
		t.Fatalf("expected disabled item to keep aria-disabled, got %#v", props)
	}
}

func TestLoopWrapsAtEnds(t *testing.T) {
	r := New(Options{Loop: true})
	r.SetItems(items("a", "b"))
	r.Prev()
	if v, _ := r.Active(); v != "b" {
		t.Fatalf("expected wrap to last, got %q", v)
	}
	r.Next()
	if v, _ := r.Active(); v != "a" {
		t.Fatalf("expected wrap to first, got %q", v)
	}
}

func TestNoLoopStopsAtEnds(t *testing.T) {
	r := New(Options{})
	r.SetItems(items("a", "b"))
	r.Prev()
	if v, _ := r.Active(); v != "a" {
		t.Fatalf("expected stop to stay at first, got %q", v)
	}
	r.Last()
	r.Next()
	if v, _ := r.Active(); v != "b" {
		t.Fatalf("expected stop to stay at last, got %q", v)
	}
}

func TestHorizontalOrientationUsesLeftRight(t *testing.T) {
	r := New(Options{Orientation: Horizontal})
	r.SetItems(items("a", "b"))
	if r.HandleKeyDown(key(host.KeyArrowDown)) {
		t.Fatal("expected vertical arrows ignored in horizontal mode")
	}
	if !r.HandleKeyDown(key(host.KeyArrowRight)) {
		t.Fatal("expected right arrow consumed")
	}
	if v, _ := r.Active(); v != "b" {
		t.Fatalf("expected b active, got %q", v)
	}
}

func TestNoEnabledItemsIsNoOp(t *testing.T) {
	r := New(Options{SkipDisabled: true})
	r.SetItems([]Item{{Value: "a", Disabled: true}})
	r.Next()
	r.First()
	r.Last()
	if v, i := r.Active(); v != "" || i != -1 {
		t.Fatalf("expected no active stop, got %s/%d", v, i)
	}
}

func TestSetItemsPreservesActiveByValue(t *testing.T) {
	r := New(Options{})
	r.SetItems(items("a", "b", "c"))
	r.SetActive("c")
	r.SetItems(items("b", "c", "d"))
	if v, i := r.Active(); v != "c" || i != 1 {
		t.Fatalf("expected c preserved at index 1, got %s/%d", v, i)
	}
	r.SetItems(items("x", "y"))
	if v, _ := r.Active(); v != "x" {
		t.Fatalf("expected fallback to first enabled, got %q", v)
	}
}

func TestMoveFocusesRegisteredElement(t *testing.T) {
	el := &host.StaticElement{Id: "opt-b"}
	r := New(Options{})
	r.SetItems([]Item{{Value: "a"}, {Value: "b", Element: el}})
	r.Next()
	if !el.Focused {
		t.Fatal("expected element focused when stop moved")
	}
}

func TestActiveChangeCallback(t *testing.T) {
	var got []string
	r := New(Options{OnActiveChange: func(v string, _ int) { got = append(got, v) }})
	r.SetItems(items("a", "b"))
	r.Next()
	r.Next() // at end, no loop: no move, no callback
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected single callback for b, got %v", got)
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	r := New(Options{})
	r.SetItems(items("a"))
	r.Destroy()
	r.Destroy()
	r.Next()
	r.SetActive("a")
	if v, i := r.Active(); v != "" || i != -1 {
		t.Fatalf("expected destroyed roving inert, got %s/%d", v, i)
	}
}
