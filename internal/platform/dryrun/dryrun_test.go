package dryrun

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kubeprov/internal/kubeadm"
	"github.com/imamik/kubeprov/internal/platform/shell"
)

func TestHost_RecordsRequests(t *testing.T) {
	h := New("node-1")
	assert.Equal(t, "node-1 (dry-run)", h.Name())

	resp, err := h.Run(context.Background(), shell.Request{Program: "swapoff", Args: []string{"-a"}})
	require.NoError(t, err)
	assert.True(t, resp.Succeeded())
	assert.Empty(t, resp.Output)

	require.Len(t, h.Requests(), 1)
	assert.Equal(t, "swapoff -a", h.Requests()[0].CommandLine())
}

func TestHost_KubeadmInitCarriesJoinCommand(t *testing.T) {
	h := New("node-1")

	resp, err := h.Run(context.Background(), shell.Request{Program: "kubeadm", Args: []string{"init", "--pod-network-cidr=192.168.0.0/16"}})
	require.NoError(t, err)

	join, err := kubeadm.ExtractJoinCommand(resp.Output)
	require.NoError(t, err)
	assert.Contains(t, join, "kubeadm join <control-plane-ip>:6443")
	assert.Contains(t, join, "--discovery-token-ca-cert-hash")
}

func TestHost_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("n").Run(ctx, shell.Request{Program: "true"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, New("n").Requests())
}
