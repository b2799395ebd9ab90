package pininput

import (
	"testing"

	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

func key(k string) host.KeyEvent { return host.KeyEvent{Key: k} }

func TestTypingAdvancesAndCompletes(t *testing.T) {
	var completed string
	var changes []string
	b := New(Options{Length: 4, OnChange: func(v string) { changes = append(changes, v) }, OnComplete: func(v string) { completed = v }})
	defer b.Destroy()

	for _, d := range []string{"1", "2", "3", "4"} {
		if !b.HandleKeyDown(key(d)) {
			t.Fatalf("expected digit %q accepted", d)
		}
	}
	if b.Value() != "1234" {
		t.Fatalf("expected full value, got %q", b.Value())
	}
	if completed != "1234" {
		t.Fatalf("expected completion callback, got %q", completed)
	}
	if b.Focused() != 3 {
		t.Fatalf("expected focus clamped to last cell, got %d", b.Focused())
	}
	if len(changes) != 4 {
		t.Fatalf("expected four change callbacks, got %v", changes)
	}
}

func TestNumericKindRejectsLetters(t *testing.T) {
	b := New(Options{Length: 4})
	defer b.Destroy()
	if b.HandleKeyDown(key("a")) {
		t.Fatal("expected letter rejected in numeric mode")
	}
	if b.Value() != "" {
		t.Fatalf("expected empty value, got %q", b.Value())
	}

	alnum := New(Options{Length: 4, Kind: Alphanumeric})
	defer alnum.Destroy()
	if !alnum.HandleKeyDown(key("a")) {
		t.Fatal("expected letter accepted in alphanumeric mode")
	}
}

func TestBackspaceWalksBackwards(t *testing.T) {
	b := New(Options{Length: 4})
	defer b.Destroy()
	b.HandleKeyDown(key("1"))
	b.HandleKeyDown(key("2")) // focus now on cell 2 (empty)

	b.HandleKeyDown(key(host.KeyBackspace)) // steps back, clears cell 1
	if b.Value() != "1" || b.Focused() != 1 {
		t.Fatalf("expected step-back clear, got %q focus %d", b.Value(), b.Focused())
	}
	b.HandleKeyDown(key("9"))
	b.Focus(1)
	b.HandleKeyDown(key(host.KeyBackspace)) // cell filled, clears in place
	if b.Value() != "1" || b.Focused() != 1 {
		t.Fatalf("expected in-place clear, got %q focus %d", b.Value(), b.Focused())
	}
}

func TestPasteDistributesFromFocus(t *testing.T) {
	var completed string
	b := New(Options{Length: 6, OnComplete: func(v string) { completed = v }})
	defer b.Destroy()

	b.HandleKeyDown(key("9"))
	b.HandlePaste("12-34 5x6789") // non-digits skipped, overflow dropped
	if b.Value() != "912345" {
		t.Fatalf("expected distributed paste, got %q", b.Value())
	}
	if completed != "912345" {
		t.Fatalf("expected completion after paste, got %q", completed)
	}
	if b.Focused() != 5 {
		t.Fatalf("expected focus on last cell, got %d", b.Focused())
	}
}

func TestPasteWithNoAcceptedCharsIsNoOp(t *testing.T) {
	var changes int
	b := New(Options{Length: 4, OnChange: func(string) { changes++ }})
	defer b.Destroy()
	b.HandlePaste("abc")
	if changes != 0 || b.Value() != "" {
		t.Fatalf("expected rejected paste ignored, got %q", b.Value())
	}
}

func TestCompleteFiresAgainAfterEdit(t *testing.T) {
	var completions int
	b := New(Options{Length: 2, OnComplete: func(string) { completions++ }})
	defer b.Destroy()

	b.HandleKeyDown(key("1"))
	b.HandleKeyDown(key("2"))
	b.HandleKeyDown(key(host.KeyBackspace))
	b.HandleKeyDown(key("3"))
	if completions != 2 {
		t.Fatalf("expected completion per fill, got %d", completions)
	}
}

func TestClearResets(t *testing.T) {
	var last string
	b := New(Options{Length: 3, OnChange: func(v string) { last = v }})
	defer b.Destroy()
	b.HandlePaste("123")
	b.Clear()
	if b.Value() != "" || b.Focused() != 0 || last != "" {
		t.Fatalf("expected reset, got %q focus %d", b.Value(), b.Focused())
	}
}

func TestProps(t *testing.T) {
	b := New(Options{Length: 3, Mask: true})
	defer b.Destroy()
	b.HandleKeyDown(key("7"))

	if props := b.RootProps(); props["role"] != "group" {
		t.Fatalf("unexpected root props %#v", props)
	}
	first := b.CellProps(0)
	if first["value"] != "•" || first["inputmode"] != "numeric" || first["autocomplete"] != "one-time-code" {
		t.Fatalf("unexpected masked cell props %#v", first)
	}
	if first["tabindex"] != "-1" {
		t.Fatalf("expected tab stop to follow focus, got %#v", first)
	}
	if b.CellProps(1)["tabindex"] != "0" {
		t.Fatal("expected focused cell to carry the tab stop")
	}
	if b.CellProps(9) != nil {
		t.Fatal("expected out-of-range cell to return nil props")
	}
}

func TestDisabledAndDestroyedInert(t *testing.T) {
	d := New(Options{Length: 4, Disabled: true})
	defer d.Destroy()
	if d.HandleKeyDown(key("1")) {
		t.Fatal("expected disabled input to ignore keys")
	}
	d.HandlePaste("1234")
	if d.Value() != "" {
		t.Fatalf("expected disabled paste ignored, got %q", d.Value())
	}

	b := New(Options{Length: 4})
	b.Destroy()
	b.Destroy()
	if b.HandleKeyDown(key("1")) {
		t.Fatal("expected destroyed input to ignore keys")
	}
}
