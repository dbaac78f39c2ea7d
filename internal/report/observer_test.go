package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/kubeprov/internal/provisioning"
)

func TestObserver_Events(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(New(&buf))

	obs.Event(provisioning.Event{
		Type: provisioning.EventPhaseStarted,
		Fields: map[string]string{
			provisioning.FieldOrdinal: "4",
			provisioning.FieldTotal:   "7",
			provisioning.FieldTitle:   "Cluster Initialization",
		},
	})
	obs.Event(provisioning.Event{Type: provisioning.EventCommandStarted, Message: "Initializing Kubernetes cluster"})
	obs.Event(provisioning.Event{Type: provisioning.EventCommandSucceeded, Output: "hidden output", Fields: map[string]string{provisioning.FieldPolicy: "success-required"}})
	obs.Event(provisioning.Event{Type: provisioning.EventArtifactWritten, Message: "Saved join-command to /tmp/kubeadm-join-command.txt"})

	assert.Equal(t, "\nPhase 4/7: Cluster Initialization\n"+
		"[INFO] Initializing Kubernetes cluster\n"+
		"[SUCCESS] Saved join-command to /tmp/kubeadm-join-command.txt\n", buf.String())
}

func TestObserver_BestEffortOutputShown(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(New(&buf))

	obs.Event(provisioning.Event{
		Type:   provisioning.EventCommandSucceeded,
		Output: "master-node   Ready",
		Fields: map[string]string{provisioning.FieldPolicy: "best-effort"},
	})

	assert.Equal(t, "    master-node   Ready\n", buf.String())
}

func TestObserver_VerboseShowsAllOutput(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(New(&buf, WithVerbose(true)))

	obs.Event(provisioning.Event{Type: provisioning.EventCommandSucceeded, Output: "Reading package lists..."})

	assert.Contains(t, buf.String(), "Reading package lists...")
}

func TestObserver_Failures(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(New(&buf))

	obs.Event(provisioning.Event{
		Type:    provisioning.EventCommandFailed,
		Message: "Installing kubeadm failed",
		Output:  "E: Unable to locate package kubeadm\n",
		Fields:  map[string]string{provisioning.FieldExitCode: "100"},
	})
	obs.Event(provisioning.Event{Type: provisioning.EventCommandIgnored, Message: "Node Status failed, continuing", Output: "refused"})
	obs.Event(provisioning.Event{Type: provisioning.EventPhaseSkipped, Phase: "verification", Message: "skipped after earlier failure"})

	out := buf.String()
	assert.Contains(t, out, "[ERROR] Installing kubeadm failed (exit status 100)\n    E: Unable to locate package kubeadm\n")
	assert.Contains(t, out, "[WARNING] Node Status failed, continuing\n    refused\n")
	assert.Contains(t, out, "[WARNING] Skipping verification: skipped after earlier failure\n")
}

func TestObserver_WithFieldsReturnsSelf(t *testing.T) {
	obs := NewObserver(New(&bytes.Buffer{}))
	assert.Same(t, obs, obs.WithFields(map[string]string{"a": "b"}))
}

func TestObserver_ShowCommands(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(New(&buf, WithCommands(true)))

	obs.Event(provisioning.Event{
		Type:    provisioning.EventCommandStarted,
		Message: "Disabling swap",
		Fields:  map[string]string{provisioning.FieldCommand: "swapoff -a"},
	})

	assert.Equal(t, "[INFO] Disabling swap\n    $ swapoff -a\n", buf.String())
}
