package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kubeprov/internal/plan"
)

func TestPlan(t *testing.T) {
	out := stubHandlers(t, testConfig(), &fakeHost{})

	err := Plan("worker", "")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Plan for worker (3 phases)")
	assert.Contains(t, out.String(), "[system-preparation]")
	assert.Contains(t, out.String(), "$ swapoff -a")
	assert.NotContains(t, out.String(), "kubeadm init")
}

func TestPlan_Master(t *testing.T) {
	out := stubHandlers(t, testConfig(), &fakeHost{})

	require.NoError(t, Plan("MASTER", ""))
	assert.Contains(t, out.String(), "Plan for master (7 phases)")
	assert.Contains(t, out.String(), "-> /tmp/kubeadm-join-command.txt")
}

func TestPlan_UnknownRole(t *testing.T) {
	stubHandlers(t, testConfig(), &fakeHost{})

	err := Plan("etcd", "")
	require.ErrorIs(t, err, plan.ErrUnknownRole)
}
