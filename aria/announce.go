package aria

// Politeness selects how urgently assistive technology should interrupt.
type Politeness string

const (
	Polite    Politeness = "polite"
	Assertive Politeness = "assertive"
)

// Announcement is a single live-region message.
type Announcement struct {
	Message    string
	Politeness Politeness
}

// LiveRegion forwards announcements to the adapter, which owns the rendered
// live-region node. Messages are delivered synchronously in call order.
type LiveRegion struct {
	onAnnounce func(Announcement)
	last       Announcement
}

// NewLiveRegion creates a live region delivering to onAnnounce. A nil
// callback makes Announce a no-op, which keeps callers unconditional.
func NewLiveRegion(onAnnounce func(Announcement)) *LiveRegion {
	return &LiveRegion{onAnnounce: onAnnounce}
}

// Announce delivers a message. Empty messages are dropped.
func (l *LiveRegion) Announce(message string, politeness Politeness) {
	if message == "" {
		return
	}
	if politeness != Assertive {
		politeness = Polite
	}
	a := Announcement{Message: message, Politeness: politeness}
	l.last = a
	if l.onAnnounce != nil {
		l.onAnnounce(a)
	}
}

// Last returns the most recent announcement.
func (l *LiveRegion) Last() Announcement { return l.last }

// Props returns the attribute map for the rendered live-region node.
func (l *LiveRegion) Props(politeness Politeness) map[string]string {
	role := "status"
	if politeness == Assertive {
		role = "alert"
	} else {
		politeness = Polite
	}
	return map[string]string{
		"role":        role,
		"aria-live":   string(politeness),
		"aria-atomic": "true",
	}
}
