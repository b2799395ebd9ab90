// Package overlay implements the layered-surface behaviors: modal dialogs
// with focus trapping and popovers with anchored positioning, both stacked
// on the shared dismiss registry and both holding their host node mounted
// until an exit animation reports completion.
package overlay

// presence gates unmounting behind the host's exit animation. A surface is
// present while logically open and stays mounted through the exit phase;
// the host calls ExitComplete when its animation finishes.
type presence struct {
	present bool
	mounted bool
	exiting bool
	// onExited runs when the exit phase ends. Cleared by cancel so a
	// destroyed surface never fires a late unmount.
	onExited func()
}

func (p *presence) show() {
	p.present = true
	p.mounted = true
	p.exiting = false
}

// hide begins the exit phase. With animate false the surface unmounts
// immediately and onExited still runs.
func (p *presence) hide(animate bool) {
	if !p.present {
		return
	}
	p.present = false
	if animate {
		p.exiting = true
		return
	}
	p.mounted = false
	p.finish()
}

// exitComplete ends a pending exit phase. Calls outside an exit phase are
// ignored, so stray animation events cannot unmount an open surface.
func (p *presence) exitComplete() {
	if !p.exiting {
		return
	}
	p.exiting = false
	p.mounted = false
	p.finish()
}

// cancel abandons any pending exit without firing onExited.
func (p *presence) cancel() {
	p.present = false
	p.mounted = false
	p.exiting = false
	p.onExited = nil
}

func (p *presence) finish() {
	if p.onExited != nil {
		p.onExited()
	}
}
