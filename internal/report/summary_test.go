package report

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	corev1 "k8s.io/api/core/v1"

	"github.com/imamik/kubeprov/internal/k8s"
	"github.com/imamik/kubeprov/internal/plan"
	"github.com/imamik/kubeprov/internal/provisioning"
)

func result(name string, outcome provisioning.Outcome) provisioning.RunResult {
	return provisioning.RunResult{Phase: plan.Phase{Name: name}, Outcome: outcome, Duration: 2 * time.Second}
}

func TestSummary_MasterSuccess(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	initResult := result(plan.PhaseClusterInitialization, provisioning.Succeeded)
	initResult.Artifacts = map[string]string{plan.ArtifactJoinCommand: "kubeadm join 10.0.0.10:6443 --token t \\\n--discovery-token-ca-cert-hash sha256:h"}
	verify := result(plan.PhaseVerification, provisioning.Succeeded)
	verify.BestEffortFailures = []*provisioning.CommandFailedError{{Phase: plan.PhaseVerification, Command: "kubectl cluster-info", ExitCode: 1}}

	r.Summary(&provisioning.Summary{
		Role:    plan.RoleMaster,
		Host:    "master-node",
		Results: []provisioning.RunResult{initResult, verify},
	}, plan.Options{OperatorUser: "ubuntu"})

	out := buf.String()
	assert.Contains(t, out, "Summary: master on master-node")
	assert.Contains(t, out, "[OK] cluster-initialization")
	assert.Contains(t, out, "[??] verification")
	assert.Contains(t, out, "[WARNING] verification: kubectl cluster-info exited with status 1")
	assert.Contains(t, out, "  kubeadm join 10.0.0.10:6443 --token t \\\n  --discovery-token-ca-cert-hash sha256:h\n")
	assert.Contains(t, out, "Or as a single line:")
	assert.Contains(t, out, "kubeadm join 10.0.0.10:6443 --token t --discovery-token-ca-cert-hash sha256:h")
	assert.Contains(t, out, "kubectl get pods -A")
	assert.Contains(t, out, "kubectl apply -f /home/ubuntu/sample-pod.yml")
	assert.Contains(t, out, "/usr/local/bin/k8s-security-scan cluster")
	assert.Contains(t, out, "/usr/local/bin/k8s-security-scan manifest /home/ubuntu/sample-pod.yml")
}

func TestSummary_MasterSingleLineJoin(t *testing.T) {
	var buf bytes.Buffer
	initResult := result(plan.PhaseClusterInitialization, provisioning.Succeeded)
	initResult.Artifacts = map[string]string{plan.ArtifactJoinCommand: "kubeadm join 10.0.0.10:6443 --token t"}

	New(&buf).Summary(&provisioning.Summary{
		Role:    plan.RoleMaster,
		Results: []provisioning.RunResult{initResult},
	}, plan.Options{})

	assert.Contains(t, buf.String(), "  kubeadm join 10.0.0.10:6443 --token t\n")
	assert.NotContains(t, buf.String(), "single line")
}

func TestSummary_VerifyScanSamples(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Summary(&provisioning.Summary{
		Role:    plan.RoleVerify,
		Results: []provisioning.RunResult{result(plan.PhaseVerification, provisioning.Succeeded)},
	}, plan.Options{})

	out := buf.String()
	assert.Contains(t, out, "Security scan samples:")
	assert.Contains(t, out, "/usr/local/bin/k8s-security-scan manifest /root/sample-pod.yml")
}

func TestSummary_WorkerSuccess(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Summary(&provisioning.Summary{
		Role:    plan.RoleWorker,
		Results: []provisioning.RunResult{result(plan.PhaseSystemPreparation, provisioning.Succeeded)},
	}, plan.Options{})

	assert.Contains(t, buf.String(), "saved there at /tmp/kubeadm-join-command.txt")
}

func TestSummary_AlreadyInitialized(t *testing.T) {
	cfe := &provisioning.CommandFailedError{
		Phase:    plan.PhaseClusterInitialization,
		Command:  "kubeadm init",
		ExitCode: 1,
		Output:   "[ERROR Port-6443]: Port 6443 is in use",
	}
	var buf bytes.Buffer
	New(&buf).Summary(&provisioning.Summary{
		Role:    plan.RoleMaster,
		Results: []provisioning.RunResult{result(plan.PhaseClusterInitialization, provisioning.Failed)},
		Skipped: []string{plan.PhaseSecurityScanner},
		Err:     fmt.Errorf("cluster-initialization phase failed: %w", cfe),
	}, plan.Options{})

	out := buf.String()
	assert.Contains(t, out, "[!!] cluster-initialization")
	assert.Contains(t, out, "[  ] security-scanner")
	assert.Contains(t, out, "kubeadm reset -f")
	assert.Contains(t, out, "Nothing was rolled back")
	assert.NotContains(t, out, "Next steps")
}

func TestSummary_ArtifactParseFailure(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Summary(&provisioning.Summary{
		Role: plan.RoleMaster,
		Err:  &provisioning.ArtifactParseError{Phase: plan.PhaseClusterInitialization, Artifact: "join-command", Err: errors.New("not found")},
	}, plan.Options{})

	assert.Contains(t, buf.String(), "did not contain a join command")
}

func TestHealth(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Health(&k8s.Health{
		ServerVersion: "v1.33.2",
		Nodes:         []k8s.NodeStatus{{Name: "master-node", Ready: true, ControlPlane: true}},
		SystemPods:    []k8s.PodStatus{{Name: "coredns-1", Phase: corev1.PodPending}},
	})

	out := buf.String()
	assert.Contains(t, out, "Cluster API (v1.33.2)")
	assert.Contains(t, out, "[OK] master-node")
	assert.Contains(t, out, "[!!] coredns-1")
	assert.Contains(t, out, "[WARNING] Not ready: pod/coredns-1")
}
