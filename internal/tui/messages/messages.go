package messages

import (
	"time"

	"github.com/angristan/hue-scenes/internal/sequence"
	"github.com/angristan/hue-scenes/internal/session"
)

// SessionCreatedMsg carries a session whose configuration loaded
type SessionCreatedMsg struct {
	Session *session.Session
}

// SessionErrorMsg indicates the session could not be created
type SessionErrorMsg struct {
	Err error
}

// SessionCancelledMsg leaves the new-session screen without a session
type SessionCancelledMsg struct{}

// RunStartedMsg carries a started runner, or why it could not start
type RunStartedMsg struct {
	RunID  int
	Runner *sequence.Runner
	Err    error
}

// TickMsg polls the run identified by RunID
type TickMsg struct {
	RunID int
	Time  time.Time
}

// RunEndedMsg returns from the running screen to the menu
type RunEndedMsg struct{}
