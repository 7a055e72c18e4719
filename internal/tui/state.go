package tui

// State is the top-level screen the controller is in
type State int

const (
	StateMenu State = iota
	StateStartNewSession
	StateSessionRunning
	StateExit
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateStartNewSession:
		return "start-new-session"
	case StateSessionRunning:
		return "session-running"
	case StateExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Event drives transitions between states
type Event int

const (
	EventKey1 Event = iota
	EventKey2
	EventKey3
	EventOtherKey
	EventSessionCreated
	EventSessionCancelled
	// EventRunEnded fires when the run's popup is dismissed or the run is
	// abandoned
	EventRunEnded
)

// KeyEvent maps a menu keypress to its event
func KeyEvent(key string) Event {
	switch key {
	case "1":
		return EventKey1
	case "2":
		return EventKey2
	case "3":
		return EventKey3
	default:
		return EventOtherKey
	}
}

// Next returns the state after e. Pairs without a transition keep the
// current state.
func Next(s State, e Event) State {
	switch s {
	case StateMenu:
		switch e {
		case EventKey1:
			return StateStartNewSession
		case EventKey2:
			return StateSessionRunning
		case EventKey3:
			return StateExit
		}
	case StateStartNewSession:
		switch e {
		case EventSessionCreated, EventSessionCancelled:
			return StateMenu
		}
	case StateSessionRunning:
		if e == EventRunEnded {
			return StateMenu
		}
	}
	return s
}
