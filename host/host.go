// Package host defines the minimal surface the behavior engine shares with
// whatever renders it: element references for measurement and focus, and
// keyboard/pointer events forwarded verbatim by adapters. Nothing in this
// package renders; it is the dependency-free seam between the state machines
// and the host environment.
package host

// Rect is an axis-aligned box in host coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point lies within the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether the two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Expand grows the rect by margin on every side. Negative margins shrink it.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Element is the engine's view of a host node. Behaviors only measure and
// focus elements; attributes flow the other way, through prop getters.
type Element interface {
	// ID returns the host-assigned identifier for the node.
	ID() string
	// Bounds returns the node's current box in host coordinates.
	Bounds() Rect
	// Connected reports whether the node is still attached to the host tree.
	Connected() bool
	// Focus asks the host to move keyboard focus to the node.
	Focus()
}

// StaticElement is a plain value implementation of Element for hosts without
// a retained node tree, such as terminal adapters and tests.
type StaticElement struct {
	Id       string
	Rect     Rect
	Detached bool
	Focused  bool
}

func (e *StaticElement) ID() string      { return e.Id }
func (e *StaticElement) Bounds() Rect    { return e.Rect }
func (e *StaticElement) Connected() bool { return !e.Detached }
func (e *StaticElement) Focus()          { e.Focused = true }
