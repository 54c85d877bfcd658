package launcher

// Visibility is the state of the single launcher session
type Visibility int

const (
	// Hidden means no session is shown
	Hidden Visibility = iota
	// Visible means the session is on screen
	Visible
)

// String returns the string representation of the visibility
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// Visibility returns the current session state
func (l *Launcher) Visibility() Visibility {
	return l.visibility
}

// Show makes the session visible
func (l *Launcher) Show() {
	l.visibility = Visible
}

// Hide hides the session
func (l *Launcher) Hide() {
	l.visibility = Hidden
}

// Signal handles an activation request: a hidden session is shown, a visible
// one is hidden. Returns the new state.
func (l *Launcher) Signal() Visibility {
	if l.visibility == Visible {
		l.visibility = Hidden
	} else {
		l.visibility = Visible
	}
	return l.visibility
}
