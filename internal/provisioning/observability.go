package provisioning

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "container-runtime")
	Message   string            // Human-readable message
	Output    string            // Captured command output, if any
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventRunStarted indicates a sequence has started.
	EventRunStarted EventType = "run.started"
	// EventRunCompleted indicates every phase of a sequence succeeded.
	EventRunCompleted EventType = "run.completed"

	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseWaiting indicates a phase is waiting out its fixed delay.
	EventPhaseWaiting EventType = "phase.waiting"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"
	// EventPhaseSkipped indicates a phase was not started because an earlier one failed.
	EventPhaseSkipped EventType = "phase.skipped"

	// EventCommandStarted indicates a command is about to run.
	EventCommandStarted EventType = "command.started"
	// EventCommandSucceeded indicates a command exited 0.
	EventCommandSucceeded EventType = "command.succeeded"
	// EventCommandFailed indicates a success-required command failed.
	EventCommandFailed EventType = "command.failed"
	// EventCommandIgnored indicates a best-effort command failed.
	EventCommandIgnored EventType = "command.ignored"
	// EventCommandRetrying indicates a command will be retried after a backoff.
	EventCommandRetrying EventType = "command.retrying"

	// EventArtifactWritten indicates an artifact was persisted on the host.
	EventArtifactWritten EventType = "artifact.written"
)

// Field keys used on events.
const (
	FieldOrdinal  = "ordinal"
	FieldTotal    = "total"
	FieldTitle    = "title"
	FieldIndex    = "index"
	FieldCommand  = "command"
	FieldPolicy   = "policy"
	FieldExitCode = "exit_code"
	FieldAttempt  = "attempt"
	FieldDelay    = "delay"
	FieldArtifact = "artifact"
	FieldPath     = "path"
	FieldDuration = "duration"
	FieldHost     = "host"
	FieldRole     = "role"
)

// ConsoleObserver implements Observer on top of a logrus logger.
type ConsoleObserver struct {
	entry *logrus.Entry
}

// NewConsoleObserver creates an observer writing through logger.
// A nil logger uses the logrus standard logger.
func NewConsoleObserver(logger *logrus.Logger) *ConsoleObserver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ConsoleObserver{entry: logrus.NewEntry(logger)}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	o.entry.Infof(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	fields := logrus.Fields{"event": string(event.Type)}
	if event.Phase != "" {
		fields["phase"] = event.Phase
	}
	for k, v := range event.Fields {
		fields[k] = v
	}

	entry := o.entry.WithFields(fields).WithTime(event.Timestamp)
	entry.Log(levelFor(event.Type), event.Message)

	if event.Output != "" {
		entry.Trace(event.Output)
	}
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	entry := o.entry.WithField("phase", phase)
	if total == 0 {
		entry.Debugf("Progress: %d/%d", current, total)
		return
	}
	entry.Debugf("Progress: %d/%d (%d%%)", current, total, (current*100)/total)
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	lf := make(logrus.Fields, len(fields))
	for k, v := range fields {
		lf[k] = v
	}
	return &ConsoleObserver{entry: o.entry.WithFields(lf)}
}

func levelFor(t EventType) logrus.Level {
	switch t {
	case EventPhaseFailed, EventCommandFailed:
		return logrus.ErrorLevel
	case EventCommandIgnored, EventCommandRetrying, EventPhaseSkipped:
		return logrus.WarnLevel
	case EventCommandStarted, EventCommandSucceeded:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// MultiObserver fans events out to several observers.
type MultiObserver []Observer

// Printf implements Logger.
func (m MultiObserver) Printf(format string, v ...interface{}) {
	for _, o := range m {
		o.Printf(format, v...)
	}
}

// Event implements Observer.
func (m MultiObserver) Event(event Event) {
	for _, o := range m {
		o.Event(event)
	}
}

// Progress implements Observer.
func (m MultiObserver) Progress(phase string, current, total int) {
	for _, o := range m {
		o.Progress(phase, current, total)
	}
}

// WithFields implements Observer.
func (m MultiObserver) WithFields(fields map[string]string) Observer {
	out := make(MultiObserver, len(m))
	for i, o := range m {
		out[i] = o.WithFields(fields)
	}
	return out
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) Printf(string, ...interface{})           {}
func (NopObserver) Event(Event)                             {}
func (NopObserver) Progress(string, int, int)               {}
func (n NopObserver) WithFields(map[string]string) Observer { return n }

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string, ordinal, total int, title string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: fmt.Sprintf("Phase %d: %s", ordinal, title),
		Fields: map[string]string{
			FieldOrdinal: fmt.Sprint(ordinal),
			FieldTotal:   fmt.Sprint(total),
			FieldTitle:   title,
		},
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, ordinal int, title string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("Phase %d completed: %s", ordinal, title),
		Fields: map[string]string{
			FieldOrdinal:  fmt.Sprint(ordinal),
			FieldTitle:    title,
			FieldDuration: duration.Round(time.Millisecond).String(),
		},
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, ordinal int, title string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("Phase %d failed: %s: %v", ordinal, title, err),
		Fields: map[string]string{
			FieldOrdinal: fmt.Sprint(ordinal),
			FieldTitle:   title,
		},
	})
}

// LogPhaseSkipped logs that a phase will not run.
func LogPhaseSkipped(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseSkipped,
		Phase:   phase,
		Message: "skipped after earlier failure",
	})
}
