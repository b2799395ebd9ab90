// Package dismiss implements stack-aware dismissal for layered surfaces.
// Adapters forward document-level key and pointer events into a Stack; only
// the topmost active layer reacts, which gives nested overlays the correct
// escape/outside-click precedence without each layer listening on its own.
package dismiss

import (
	"sync"

	"github.com/hypoth-org/hypoth-ui-sub001/host"
)

// Reason identifies what triggered a dismissal.
type Reason string

const (
	ReasonEscape       Reason = "escape"
	ReasonOutsideClick Reason = "outside-click"
)

// Options configures a Layer.
type Options struct {
	// OnDismiss fires with the dismissal reason. The owner decides whether
	// to actually close.
	OnDismiss func(Reason)
	// Contains reports whether a pointer event landed inside the layer's
	// own surface. A nil hit-test treats every pointer event as outside.
	Contains func(host.PointerEvent) bool
	// ExcludeElements are never treated as outside, typically the trigger
	// that opened the layer. Matching is by target id or bounds.
	ExcludeElements []host.Element
	// ExcludeIDs supplements ExcludeElements for adapters that only track
	// ids.
	ExcludeIDs []string
	// Stack is the layer registry to participate in. Nil uses the shared
	// process-wide stack.
	Stack *Stack
}

// Layer is one dismissable surface. Activate pushes it on the stack;
// Deactivate removes it. Both are idempotent.
type Layer struct {
	opts  Options
	stack *Stack

	mu     sync.Mutex
	active bool
}

// NewLayer creates an inactive layer.
func NewLayer(opts Options) *Layer {
	stack := opts.Stack
	if stack == nil {
		stack = Shared()
	}
	return &Layer{opts: opts, stack: stack}
}

// Activate registers the layer as topmost. Repeated calls are no-ops.
func (l *Layer) Activate() {
	l.mu.Lock()
	if l.active {
		l.mu.Unlock()
		return
	}
	l.active = true
	l.mu.Unlock()
	l.stack.push(l)
}

// Deactivate removes the layer from the stack, wherever it sits. Layers
// above it are unaffected. Repeated calls are no-ops.
func (l *Layer) Deactivate() {
	l.mu.Lock()
	if !l.active {
		l.mu.Unlock()
		return
	}
	l.active = false
	l.mu.Unlock()
	l.stack.remove(l)
}

// Active reports whether the layer is currently on the stack.
func (l *Layer) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

func (l *Layer) dismiss(reason Reason) {
	if l.opts.OnDismiss != nil {
		l.opts.OnDismiss(reason)
	}
}

// excluded reports whether the pointer event targets an exclude element.
func (l *Layer) excluded(ev host.PointerEvent) bool {
	for _, id := range l.opts.ExcludeIDs {
		if id != "" && id == ev.TargetID {
			return true
		}
	}
	for _, el := range l.opts.ExcludeElements {
		if el == nil {
			continue
		}
		if el.ID() != "" && el.ID() == ev.TargetID {
			return true
		}
		if el.Connected() && el.Bounds().Contains(ev.X, ev.Y) {
			return true
		}
	}
	return false
}

// Stack is an ordered registry of active layers, topmost last. A process
// normally uses the shared stack; tests and embedded hosts can run their
// own.
type Stack struct {
	mu     sync.Mutex
	layers []*Layer
}

// NewStack creates an isolated layer stack.
func NewStack() *Stack { return &Stack{} }

var shared = NewStack()

// Shared returns the process-wide stack used when Options.Stack is nil.
func Shared() *Stack { return shared }

// Len returns the number of active layers.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.layers)
}

// Top returns the topmost layer, or nil.
func (s *Stack) Top() *Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// HandleKeyDown routes Escape to the topmost layer. Reports whether the
// event was consumed.
func (s *Stack) HandleKeyDown(ev host.KeyEvent) bool {
	if ev.Key != host.KeyEscape {
		return false
	}
	top := s.Top()
	if top == nil {
		return false
	}
	top.dismiss(ReasonEscape)
	return true
}

// HandlePointerDown routes an outside pointer-down to the topmost layer.
// Events inside the layer or on an excluded element are not dismissals.
func (s *Stack) HandlePointerDown(ev host.PointerEvent) bool {
	top := s.Top()
	if top == nil {
		return false
	}
	if top.excluded(ev) {
		return false
	}
	if top.opts.Contains != nil && top.opts.Contains(ev) {
		return false
	}
	top.dismiss(ReasonOutsideClick)
	return true
}

func (s *Stack) push(l *Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers = append(s.layers, l)
}

// remove deletes the layer preserving the order of the rest.
func (s *Stack) remove(l *Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, candidate := range s.layers {
		if candidate == l {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return
		}
	}
}
