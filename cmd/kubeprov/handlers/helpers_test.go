package handlers

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/imamik/kubeprov/internal/config"
	"github.com/imamik/kubeprov/internal/k8s"
	"github.com/imamik/kubeprov/internal/platform/shell"
	"github.com/imamik/kubeprov/internal/provisioning"
)

const testJoin = "kubeadm join 10.0.0.10:6443 --token abcdef.0123456789abcdef \\\n" +
	"\t--discovery-token-ca-cert-hash sha256:feed"

// fakeHost answers every request with success unless respond says otherwise.
type fakeHost struct {
	mu       sync.Mutex
	requests []shell.Request
	respond  func(req shell.Request) (shell.Response, error)
	closed   bool
}

func (h *fakeHost) Name() string { return "fake-host" }

func (h *fakeHost) Run(_ context.Context, req shell.Request) (shell.Response, error) {
	h.mu.Lock()
	h.requests = append(h.requests, req)
	h.mu.Unlock()

	if h.respond != nil {
		return h.respond(req)
	}
	if req.Program == "kubeadm" && len(req.Args) > 0 && req.Args[0] == "init" {
		return shell.Response{Output: "Your Kubernetes control-plane has initialized successfully!\n\n" + testJoin + "\n"}, nil
	}
	return shell.Response{}, nil
}

func (h *fakeHost) ran(program string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.requests {
		if r.Program == program {
			return true
		}
	}
	return false
}

func (h *fakeHost) lookups() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var names []string
	for _, r := range h.requests {
		if r.Program == "sh" && len(r.Args) == 2 && strings.HasPrefix(r.Args[1], "command -v ") {
			names = append(names, strings.TrimPrefix(r.Args[1], "command -v "))
		}
	}
	return names
}

type fakePublisher struct {
	bucket, key, join string
	err               error
}

func (p *fakePublisher) PublishJoinCommand(_ context.Context, bucket, key, join string) error {
	p.bucket, p.key, p.join = bucket, key, join
	return p.err
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Verification.Delay = "1ms"
	return cfg
}

// stubHandlers replaces every collaborator with a fake and restores them
// when the test ends. The returned buffer receives operator output.
func stubHandlers(t *testing.T, cfg *config.Config, host *fakeHost) *bytes.Buffer {
	t.Helper()

	origDotEnv, origLoad, origTimeouts := loadDotEnv, loadConfig, loadTimeouts
	origHost, origPublisher, origProbe := newHost, newPublisher, probeCluster
	origConfirm, origInteractive, origEuid := confirm, isInteractive, geteuid
	origStdout, origStderr := stdout, stderr
	t.Cleanup(func() {
		loadDotEnv, loadConfig, loadTimeouts = origDotEnv, origLoad, origTimeouts
		newHost, newPublisher, probeCluster = origHost, origPublisher, origProbe
		confirm, isInteractive, geteuid = origConfirm, origInteractive, origEuid
		stdout, stderr = origStdout, origStderr
	})

	var out bytes.Buffer
	stdout = &out
	stderr = &bytes.Buffer{}

	loadDotEnv = func() error { return nil }
	loadConfig = func(string) (*config.Config, error) { return cfg, nil }
	loadTimeouts = func() *config.Timeouts {
		return &config.Timeouts{
			Command:           5 * time.Second,
			Network:           5 * time.Second,
			RetryMaxAttempts:  1,
			RetryInitialDelay: time.Millisecond,
			RetryMaxDelay:     time.Millisecond,
		}
	}
	newHost = func(*config.Config, bool) (provisioning.Host, func() error, error) {
		return host, func() error { host.closed = true; return nil }, nil
	}
	newPublisher = func(context.Context, config.S3) (joinPublisher, error) {
		t.Fatal("unexpected S3 client")
		return nil, nil
	}
	probeCluster = func(context.Context, []byte, time.Duration) (*k8s.Health, error) {
		return &k8s.Health{ServerVersion: "v1.33.1"}, nil
	}
	confirm = func(context.Context, string, string) (bool, error) {
		t.Fatal("unexpected confirmation prompt")
		return false, nil
	}
	isInteractive = func() bool { return false }
	geteuid = func() int { return 0 }

	return &out
}
