package tabs

import (
	"testing"

	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

func key(k string) host.KeyEvent { return host.KeyEvent{Key: k} }

func panels() []Item {
	return []Item{
		{Value: "general"},
		{Value: "billing"},
		{Value: "danger", Disabled: true},
		{Value: "advanced"},
	}
}

func TestDefaultsToFirstEnabled(t *testing.T) {
	var changes []string
	tb := New(Options{OnValueChange: func(v string) { changes = append(changes, v) }})
	defer tb.Destroy()
	tb.SetItems(panels())
	if tb.Value() != "general" {
		t.Fatalf("expected first enabled tab active, got %q", tb.Value())
	}
	if len(changes) != 1 || changes[0] != "general" {
		t.Fatalf("expected initial activation callback, got %v", changes)
	}
}

func TestDefaultValueHonored(t *testing.T) {
	tb := New(Options{DefaultValue: "billing"})
	defer tb.Destroy()
	tb.SetItems(panels())
	if tb.Value() != "billing" {
		t.Fatalf("expected default tab active, got %q", tb.Value())
	}
}

func TestAutomaticActivationFollowsArrows(t *testing.T) {
	var changes []string
	tb := New(Options{OnValueChange: func(v string) { changes = append(changes, v) }})
	defer tb.Destroy()
	tb.SetItems(panels())

	tb.HandleKeyDown(key(host.KeyArrowRight)) // billing
	tb.HandleKeyDown(key(host.KeyArrowRight)) // danger disabled, advanced
	if tb.Value() != "advanced" {
		t.Fatalf("expected arrow focus to activate, got %q", tb.Value())
	}
	tb.HandleKeyDown(key(host.KeyArrowRight)) // wraps to general
	if tb.Value() != "general" {
		t.Fatalf("expected wrap, got %q", tb.Value())
	}
	want := []string{"general", "billing", "advanced", "general"}
	if len(changes) != len(want) {
		t.Fatalf("expected %v, got %v", want, changes)
	}
}

func TestManualActivationWaitsForEnter(t *testing.T) {
	tb := New(Options{Activation: Manual})
	defer tb.Destroy()
	tb.SetItems(panels())

	tb.HandleKeyDown(key(host.KeyArrowRight))
	if tb.Value() != "general" {
		t.Fatalf("expected focus move without activation, got %q", tb.Value())
	}
	tb.HandleKeyDown(key(host.KeyEnter))
	if tb.Value() != "billing" {
		t.Fatalf("expected Enter to activate, got %q", tb.Value())
	}
}

func TestVerticalOrientationUsesUpDown(t *testing.T) {
	tb := New(Options{Orientation: Vertical})
	defer tb.Destroy()
	tb.SetItems(panels())

	if tb.HandleKeyDown(key(host.KeyArrowRight)) {
		t.Fatal("expected horizontal arrows ignored in vertical tablist")
	}
	tb.HandleKeyDown(key(host.KeyArrowDown))
	if tb.Value() != "billing" {
		t.Fatalf("expected down arrow to move, got %q", tb.Value())
	}
	if tb.ListProps()["aria-orientation"] != "vertical" {
		t.Fatal("expected vertical orientation advertised")
	}
}

func TestClickActivatesEnabledOnly(t *testing.T) {
	tb := New(Options{})
	defer tb.Destroy()
	tb.SetItems(panels())

	tb.HandleClick("danger")
	if tb.Value() != "general" {
		t.Fatalf("expected disabled click ignored, got %q", tb.Value())
	}
	tb.HandleClick("advanced")
	if tb.Value() != "advanced" {
		t.Fatalf("expected click activation, got %q", tb.Value())
	}
}

func TestStaleActiveFallsBack(t *testing.T) {
	tb := New(Options{DefaultValue: "advanced"})
	defer tb.Destroy()
	tb.SetItems(panels())
	tb.SetItems(panels()[:2]) // advanced gone
	if tb.Value() != "general" {
		t.Fatalf("expected fallback to first enabled, got %q", tb.Value())
	}
}

func TestProps(t *testing.T) {
	tb := New(Options{})
	defer tb.Destroy()
	tb.SetItems(panels())

	list := tb.ListProps()
	if list["role"] != "tablist" {
		t.Fatalf("unexpected list props %#v", list)
	}
	active := tb.TabProps("general")
	if active["role"] != "tab" || active["aria-selected"] != "true" || active["tabindex"] != "0" {
		t.Fatalf("unexpected active tab props %#v", active)
	}
	idle := tb.TabProps("billing")
	if idle["aria-selected"] != "false" || idle["tabindex"] != "-1" {
		t.Fatalf("unexpected idle tab props %#v", idle)
	}
	if tb.TabProps("danger")["aria-disabled"] != "true" {
		t.Fatal("expected disabled tab marked")
	}
	panel := tb.PanelProps("general")
	if panel["role"] != "tabpanel" || panel["aria-labelledby"] != active["id"] || panel["hidden"] != "" {
		t.Fatalf("unexpected active panel props %#v", panel)
	}
	if tb.PanelProps("billing")["hidden"] != "true" {
		t.Fatal("expected inactive panel hidden")
	}
}

func TestDestroyedTabsInert(t *testing.T) {
	tb := New(Options{})
	tb.SetItems(panels())
	tb.Destroy()
	tb.Destroy()
	if tb.HandleKeyDown(key(host.KeyArrowRight)) {
		t.Fatal("expected destroyed tabs to ignore keys")
	}
	tb.HandleClick("billing")
	if tb.Value() != "general" {
		t.Fatalf("expected value frozen after destroy, got %q", tb.Value())
	}
}
