package anchor

import "github.com/hypoth-org/hypoth-ui-sub001/host"

// Options configures a Positioner.
type Options struct {
	// Anchor is the reference element.
	Anchor host.Element
	// Floating is the positioned element; only its size is read.
	Floating host.Element
	// Viewport supplies the collision boundary on each update.
	Viewport func() host.Rect
	// Placement is the preferred placement. Defaults to Bottom.
	Placement Placement
	Offset    float64
	Flip      bool
	// OnPlacementChange fires when the resolved placement differs from the
	// previous resolution, not on pixel-level repositioning.
	OnPlacementChange func(Placement)
}

// Positioner recomputes placement on demand. It performs no polling of its
// own; owners call Update from whatever scroll/resize signal their host
// provides.
type Positioner struct {
	opts      Options
	last      Placement
	resolved  bool
	destroyed bool
}

// NewPositioner creates a positioner. Call Update to get coordinates.
func NewPositioner(opts Options) *Positioner {
	if opts.Placement == "" {
		opts.Placement = Bottom
	}
	return &Positioner{opts: opts}
}

// Update measures the anchor and floating elements and resolves placement.
// Returns the zero Result after Destroy or when measurement is impossible.
func (p *Positioner) Update() Result {
	if p.destroyed || p.opts.Anchor == nil || p.opts.Floating == nil {
		return Result{}
	}
	viewport := host.Rect{}
	if p.opts.Viewport != nil {
		viewport = p.opts.Viewport()
	}
	result := Compute(p.opts.Anchor.Bounds(), p.opts.Floating.Bounds(), viewport, ComputeOptions{
		Placement: p.opts.Placement,
		Offset:    p.opts.Offset,
		Flip:      p.opts.Flip,
	})
	if !p.resolved || result.Placement != p.last {
		p.resolved = true
		p.last = result.Placement
		if p.opts.OnPlacementChange != nil {
			p.opts.OnPlacementChange(result.Placement)
		}
	}
	return result
}

// Destroy releases the positioner; further updates return the zero Result.
// Safe to call repeatedly.
func (p *Positioner) Destroy() {
	p.destroyed = true
	p.opts.OnPlacementChange = nil
}
