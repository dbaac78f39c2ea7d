package report

import (
	"strconv"

	"github.com/imamik/kubeprov/internal/plan"
	"github.com/imamik/kubeprov/internal/platform/shell"
	"github.com/imamik/kubeprov/internal/provisioning"
)

// failureTailLines bounds the output shown for a failed command.
const failureTailLines = 20

// Observer turns provisioning events into status lines.
type Observer struct {
	r *Reporter
}

// NewObserver returns a provisioning.Observer writing through r.
func NewObserver(r *Reporter) *Observer {
	return &Observer{r: r}
}

// Printf implements provisioning.Logger.
func (o *Observer) Printf(format string, v ...interface{}) {
	o.r.Infof(format, v...)
}

// Progress implements provisioning.Observer. Progress is implied by the command lines.
func (o *Observer) Progress(string, int, int) {}

// WithFields implements provisioning.Observer. Fields are not shown to the operator.
func (o *Observer) WithFields(map[string]string) provisioning.Observer {
	return o
}

// Event implements provisioning.Observer.
func (o *Observer) Event(e provisioning.Event) {
	switch e.Type {
	case provisioning.EventRunStarted:
		o.r.Banner(e.Message)
	case provisioning.EventPhaseStarted:
		ordinal, _ := strconv.Atoi(e.Fields[provisioning.FieldOrdinal])
		total, _ := strconv.Atoi(e.Fields[provisioning.FieldTotal])
		o.r.Phase(ordinal, total, e.Fields[provisioning.FieldTitle])
	case provisioning.EventPhaseWaiting:
		o.r.Infof("%s", e.Message)
	case provisioning.EventCommandStarted:
		o.r.Infof("%s", e.Message)
		if o.r.showCommands || o.r.verbose {
			o.r.Output("$ " + e.Fields[provisioning.FieldCommand])
		}
	case provisioning.EventCommandSucceeded:
		if o.r.verbose || e.Fields[provisioning.FieldPolicy] == plan.BestEffort.String() {
			o.r.Output(e.Output)
		}
	case provisioning.EventCommandIgnored:
		o.r.Warningf("%s", e.Message)
		o.r.Output(e.Output)
	case provisioning.EventCommandRetrying:
		o.r.Warningf("%s", e.Message)
	case provisioning.EventCommandFailed:
		o.r.Errorf("%s (exit status %s)", e.Message, e.Fields[provisioning.FieldExitCode])
		o.r.Output(shell.LastLines(e.Output, failureTailLines))
	case provisioning.EventPhaseFailed:
		o.r.Errorf("%s", e.Message)
	case provisioning.EventPhaseCompleted, provisioning.EventArtifactWritten, provisioning.EventRunCompleted:
		o.r.Successf("%s", e.Message)
	case provisioning.EventPhaseSkipped:
		o.r.Warningf("Skipping %s: %s", e.Phase, e.Message)
	}
}
