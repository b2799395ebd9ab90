package anchor

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

var viewport = host.Rect{X: 0, Y: 0, Width: 1000, Height: 800}

func TestBottomPlacementCentersOnAnchor(t *testing.T) {
	anchorRect := host.Rect{X: 400, Y: 100, Width: 200, Height: 40}
	floating := host.Rect{Width: 100, Height: 50}
	got := Compute(anchorRect, floating, viewport, ComputeOptions{Placement: Bottom, Offset: 8})
	if got.Placement != Bottom {
		t.Fatalf("expected bottom, got %s", got.Placement)
	}
	if got.X != 450 || got.Y != 148 {
		t.Fatalf("unexpected coordinates %v/%v", got.X, got.Y)
	}
}

func TestStartAndEndAlignment(t *testing.T) {
	anchorRect := host.Rect{X: 400, Y: 100, Width: 200, Height: 40}
	floating := host.Rect{Width: 100, Height: 50}

	start := Compute(anchorRect, floating, viewport, ComputeOptions{Placement: BottomStart})
	if start.X != 400 {
		t.Fatalf("expected start-aligned x 400, got %v", start.X)
	}
	end := Compute(anchorRect, floating, viewport, ComputeOptions{Placement: BottomEnd})
	if end.X != 500 {
		t.Fatalf("expected end-aligned x 500, got %v", end.X)
	}
}

func TestFlipWhenPreferredCollides(t *testing.T) {
	// Anchor near the bottom edge: bottom placement overflows, top fits.
	anchorRect := host.Rect{X: 400, Y: 740, Width: 200, Height: 40}
	floating := host.Rect{Width: 100, Height: 50}
	got := Compute(anchorRect, floating, viewport, ComputeOptions{Placement: Bottom, Flip: true})
	if got.Placement != Top {
		t.Fatalf("expected flip to top, got %s", got.Placement)
	}
	if got.Y != 690 {
		t.Fatalf("unexpected y %v", got.Y)
	}
}

func TestNoFlipWhenPreferredFits(t *testing.T) {
	anchorRect := host.Rect{X: 400, Y: 100, Width: 200, Height: 40}
	floating := host.Rect{Width: 100, Height: 50}
	got := Compute(anchorRect, floating, viewport, ComputeOptions{Placement: Bottom, Flip: true})
	if got.Placement != Bottom {
		t.Fatalf("expected preferred placement kept, got %s", got.Placement)
	}
}

func TestNeitherFitsKeepsPreferredSide(t *testing.T) {
	// Floating taller than the space on either side.
	anchorRect := host.Rect{X: 400, Y: 390, Width: 200, Height: 20}
	floating := host.Rect{Width: 100, Height: 500}
	got := Compute(anchorRect, floating, viewport, ComputeOptions{Placement: Bottom, Flip: true})
	if got.Placement != Bottom {
		t.Fatalf("expected preferred side kept when neither fits, got %s", got.Placement)
	}
}

func TestHorizontalFlip(t *testing.T) {
	anchorRect := host.Rect{X: 950, Y: 300, Width: 40, Height: 40}
	floating := host.Rect{Width: 200, Height: 100}
	got := Compute(anchorRect, floating, viewport, ComputeOptions{Placement: Right, Flip: true})
	if got.Placement != Left {
		t.Fatalf("expected flip to left, got %s", got.Placement)
	}
}

func TestPlacementFitsViewportProperty(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 300
	properties := gopter.NewProperties(params)

	placements := []Placement{Top, TopStart, TopEnd, Bottom, BottomStart, BottomEnd, Left, LeftStart, LeftEnd, Right, RightStart, RightEnd}

	properties.Property("resolved placement fits whenever either candidate fits", prop.ForAll(
		func(ax, ay int, pi int) bool {
			anchorRect := host.Rect{X: float64(ax), Y: float64(ay), Width: 80, Height: 30}
			floating := host.Rect{Width: 150, Height: 120}
			preferred := placements[pi%len(placements)]
			got := Compute(anchorRect, floating, viewport, ComputeOptions{Placement: preferred, Flip: true, Offset: 4})

			if got.Placement != preferred && got.Placement != mirror(preferred) {
				return false
			}
			primary := place(anchorRect, floating, preferred, 4)
			mirrored := place(anchorRect, floating, mirror(preferred), 4)
			anyFits := fits(primary, floating, viewport) || fits(mirrored, floating, viewport)
			if anyFits {
				return fits(got, floating, viewport)
			}
			return true
		},
		gen.IntRange(0, 920),
		gen.IntRange(0, 770),
		gen.IntRange(0, 11),
	))

	properties.TestingRun(t)
}

func TestPositionerFiresOnResolvedChangeOnly(t *testing.T) {
	anchorEl := &host.StaticElement{Id: "a", Rect: host.Rect{X: 400, Y: 100, Width: 200, Height: 40}}
	floatingEl := &host.StaticElement{Id: "f", Rect: host.Rect{Width: 100, Height: 50}}
	var changes []Placement
	p := NewPositioner(Options{
		Anchor:            anchorEl,
		Floating:          floatingEl,
		Viewport:          func() host.Rect { return viewport },
		Placement:         Bottom,
		Flip:              true,
		OnPlacementChange: func(pl Placement) { changes = append(changes, pl) },
	})

	p.Update()
	p.Update() // same resolution, no extra callback
	anchorEl.Rect.Y = 740
	p.Update() // flips to top
	anchorEl.Rect.Y = 745
	p.Update() // still top, pixel move only

	want := []Placement{Bottom, Top}
	if len(changes) != len(want) || changes[0] != want[0] || changes[1] != want[1] {
		t.Fatalf("expected changes %v, got %v", want, changes)
	}
}

func TestPositionerDestroyIdempotent(t *testing.T) {
	p := NewPositioner(Options{
		Anchor:   &host.StaticElement{Id: "a"},
		Floating: &host.StaticElement{Id: "f"},
		Viewport: func() host.Rect { return viewport },
	})
	p.Destroy()
	p.Destroy()
	if got := p.Update(); got != (Result{}) {
		t.Fatalf("expected zero result after destroy, got %#v", got)
	}
}
