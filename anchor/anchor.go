// Package anchor computes floating-element placement relative to an anchor,
// flipping to the mirrored side when the preferred placement would collide
// with the viewport. Recomputation is explicit: callers wire their own
// scroll/resize notifications and call Update.
package anchor

import "github.com/hypoth-org/hypoth-ui-sub001/host"

// Placement names one of the 12 standard positions: a side, optionally
// qualified by start/end alignment along the cross axis.
type Placement string

const (
	Top         Placement = "top"
	TopStart    Placement = "top-start"
	TopEnd      Placement = "top-end"
	Bottom      Placement = "bottom"
	BottomStart Placement = "bottom-start"
	BottomEnd   Placement = "bottom-end"
	Left        Placement = "left"
	LeftStart   Placement = "left-start"
	LeftEnd     Placement = "left-end"
	Right       Placement = "right"
	RightStart  Placement = "right-start"
	RightEnd    Placement = "right-end"
)

// Result is a resolved placement with the floating element's top-left
// corner.
type Result struct {
	Placement Placement
	X, Y      float64
}

// ComputeOptions configures a single placement computation.
type ComputeOptions struct {
	Placement Placement
	// Offset is the gap between anchor and floating element along the main
	// axis.
	Offset float64
	// Flip tries the mirrored side when the preferred placement collides
	// with the viewport and the mirror does not.
	Flip bool
}

// Compute resolves coordinates for floating relative to anchorRect within
// viewport. The result's placement is always the preferred placement or its
// mirror, and when either candidate fits entirely inside the viewport the
// fitting one wins, preferred first.
func Compute(anchorRect, floating, viewport host.Rect, opts ComputeOptions) Result {
	placement := opts.Placement
	if placement == "" {
		placement = Bottom
	}
	primary := place(anchorRect, floating, placement, opts.Offset)
	if !opts.Flip {
		return clampCross(primary, floating, viewport)
	}
	if fits(primary, floating, viewport) {
		return primary
	}
	mirrored := place(anchorRect, floating, mirror(placement), opts.Offset)
	if fits(mirrored, floating, viewport) {
		return mirrored
	}
	// Neither side fits on the main axis; keep the preferred side and at
	// least pull the cross axis inside the viewport.
	return clampCross(primary, floating, viewport)
}

func side(p Placement) Placement {
	switch p {
	case Top, TopStart, TopEnd:
		return Top
	case Left, LeftStart, LeftEnd:
		return Left
	case Right, RightStart, RightEnd:
		return Right
	default:
		return Bottom
	}
}

func alignment(p Placement) string {
	switch p {
	case TopStart, BottomStart, LeftStart, RightStart:
		return "start"
	case TopEnd, BottomEnd, LeftEnd, RightEnd:
		return "end"
	default:
		return "center"
	}
}

// mirror flips a placement to the opposite side, preserving alignment.
func mirror(p Placement) Placement {
	table := map[Placement]Placement{
		Top: Bottom, TopStart: BottomStart, TopEnd: BottomEnd,
		Bottom: Top, BottomStart: TopStart, BottomEnd: TopEnd,
		Left: Right, LeftStart: RightStart, LeftEnd: RightEnd,
		Right: Left, RightStart: LeftStart, RightEnd: LeftEnd,
	}
	return table[p]
}

func place(anchorRect, floating host.Rect, p Placement, offset float64) Result {
	var x, y float64
	switch side(p) {
	case Top:
		y = anchorRect.Y - floating.Height - offset
		x = crossAxis(anchorRect.X, anchorRect.Width, floating.Width, alignment(p))
	case Bottom:
		y = anchorRect.Bottom() + offset
		x = crossAxis(anchorRect.X, anchorRect.Width, floating.Width, alignment(p))
	case Left:
		x = anchorRect.X - floating.Width - offset
		y = crossAxis(anchorRect.Y, anchorRect.Height, floating.Height, alignment(p))
	case Right:
		x = anchorRect.Right() + offset
		y = crossAxis(anchorRect.Y, anchorRect.Height, floating.Height, alignment(p))
	}
	return Result{Placement: p, X: x, Y: y}
}

func crossAxis(anchorStart, anchorSize, floatingSize float64, align string) float64 {
	switch align {
	case "start":
		return anchorStart
	case "end":
		return anchorStart + anchorSize - floatingSize
	default:
		return anchorStart + anchorSize/2 - floatingSize/2
	}
}

func fits(r Result, floating, viewport host.Rect) bool {
	return r.X >= viewport.X &&
		r.Y >= viewport.Y &&
		r.X+floating.Width <= viewport.Right() &&
		r.Y+floating.Height <= viewport.Bottom()
}

// clampCross shifts the floating box along the cross axis to stay inside
// the viewport without changing the resolved side.
func clampCross(r Result, floating, viewport host.Rect) Result {
	switch side(r.Placement) {
	case Top, Bottom:
		if r.X < viewport.X {
			r.X = viewport.X
		}
		if limit := viewport.Right() - floating.Width; r.X > limit && limit >= viewport.X {
			r.X = limit
		}
	default:
		if r.Y < viewport.Y {
			r.Y = viewport.Y
		}
		if limit := viewport.Bottom() - floating.Height; r.Y > limit && limit >= viewport.Y {
			r.Y = limit
		}
	}
	return r
}
