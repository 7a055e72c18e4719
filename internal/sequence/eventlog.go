package sequence

import (
	"fmt"
	"os"
	"time"
)

// MessageSessionStarted opens every session log
const MessageSessionStarted = "Session started"

// SceneStarted is the log message for a scene starting
func SceneStarted(name string) string {
	return fmt.Sprintf("Sequence \"%s\" started", name)
}

// SceneFinished is the log message for a scene finishing
func SceneFinished(name string) string {
	return fmt.Sprintf("Sequence \"%s\" finished", name)
}

// EventLog is the flat, human readable session log. The file is opened
// and closed for every line so nothing is lost if the process dies.
type EventLog struct {
	path string
}

// NewEventLog creates a log writing to path
func NewEventLog(path string) *EventLog {
	return &EventLog{path: path}
}

// Path returns the log file path
func (l *EventLog) Path() string {
	return l.path
}

// FormatLine renders one log line in ctime style
func FormatLine(at time.Time, message string) string {
	return fmt.Sprintf("[%s] %s\n", at.Format(time.ANSIC), message)
}

// Begin truncates the log and writes the session start line
func (l *EventLog) Begin(at time.Time) error {
	return l.write(os.O_WRONLY|os.O_CREATE|os.O_TRUNC, at, MessageSessionStarted)
}

// Append adds one line to the end of the log
func (l *EventLog) Append(at time.Time, message string) error {
	return l.write(os.O_WRONLY|os.O_CREATE|os.O_APPEND, at, message)
}

func (l *EventLog) write(flag int, at time.Time, message string) (err error) {
	f, err := os.OpenFile(l.path, flag, 0644)
	if err != nil {
		return fmt.Errorf("failed to open session log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close session log: %w", cerr)
		}
	}()

	if _, err := f.WriteString(FormatLine(at, message)); err != nil {
		return fmt.Errorf("failed to write session log: %w", err)
	}
	return nil
}
