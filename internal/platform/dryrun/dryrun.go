// Package dryrun provides a host that records commands instead of running them.
package dryrun

import (
	"context"
	"sync"

	"github.com/imamik/kubeprov/internal/platform/shell"
)

// SampleJoinCommand is returned inside the simulated kubeadm init output.
const SampleJoinCommand = `kubeadm join <control-plane-ip>:6443 --token <token> \
	--discovery-token-ca-cert-hash sha256:<hash>`

const initOutput = `[dry-run] kubeadm init
Your Kubernetes control-plane has initialized successfully!

Then you can join any number of worker nodes by running the following on each as root:

` + SampleJoinCommand + "\n"

// Host records every request and reports success.
type Host struct {
	target string

	mu       sync.Mutex
	requests []shell.Request
}

// New returns a dry-run host standing in for target.
func New(target string) *Host {
	return &Host{target: target}
}

// Name implements provisioning.Host.
func (h *Host) Name() string {
	return h.target + " (dry-run)"
}

// Run records req. kubeadm init answers with output carrying a placeholder
// join command so artifact extraction can be exercised.
func (h *Host) Run(ctx context.Context, req shell.Request) (shell.Response, error) {
	if err := ctx.Err(); err != nil {
		return shell.Response{ExitCode: -1}, err
	}

	h.mu.Lock()
	h.requests = append(h.requests, req)
	h.mu.Unlock()

	if req.Program == "kubeadm" && len(req.Args) > 0 && req.Args[0] == "init" {
		return shell.Response{Output: initOutput}, nil
	}
	return shell.Response{}, nil
}

// Requests returns a copy of everything recorded so far.
func (h *Host) Requests() []shell.Request {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shell.Request(nil), h.requests...)
}
