package k8s

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	k8sfake "k8s.io/client-go/kubernetes/fake"
)

func node(name string, ready bool, labels map[string]string) *corev1.Node {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{{Type: corev1.NodeReady, Status: status}},
			Addresses:  []corev1.NodeAddress{{Type: corev1.NodeInternalIP, Address: "10.0.0.10"}},
			NodeInfo:   corev1.NodeSystemInfo{KubeletVersion: "v1.33.2"},
		},
	}
}

func pod(name string, phase corev1.PodPhase, ready bool) *corev1.Pod {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: metav1.NamespaceSystem},
		Status: corev1.PodStatus{
			Phase:             phase,
			Conditions:        []corev1.PodCondition{{Type: corev1.PodReady, Status: status}},
			ContainerStatuses: []corev1.ContainerStatus{{RestartCount: 2}},
		},
	}
}

func newFakeClient(objects ...runtime.Object) *Client {
	return NewClientFromInterface(k8sfake.NewSimpleClientset(objects...))
}

func TestProbe_Healthy(t *testing.T) {
	c := newFakeClient(
		node("master-node", true, map[string]string{"node-role.kubernetes.io/control-plane": ""}),
		pod("kube-apiserver-master-node", corev1.PodRunning, true),
		pod("calico-node-abcde", corev1.PodRunning, true),
	)

	h, err := c.Probe(context.Background())
	require.NoError(t, err)

	require.Len(t, h.Nodes, 1)
	assert.True(t, h.Nodes[0].Ready)
	assert.True(t, h.Nodes[0].ControlPlane)
	assert.Equal(t, "v1.33.2", h.Nodes[0].KubeletVersion)
	assert.Equal(t, "10.0.0.10", h.Nodes[0].InternalIP)

	require.Len(t, h.SystemPods, 2)
	assert.Equal(t, "calico-node-abcde", h.SystemPods[0].Name, "pods are sorted by name")
	assert.Equal(t, int32(2), h.SystemPods[0].Restarts)
	assert.True(t, h.Healthy())
	assert.Empty(t, h.NotReady())
}

func TestProbe_NotReady(t *testing.T) {
	c := newFakeClient(
		node("master-node", false, nil),
		pod("coredns-1", corev1.PodPending, false),
	)

	h, err := c.Probe(context.Background())
	require.NoError(t, err)
	assert.False(t, h.Healthy())
	assert.Equal(t, []string{"node/master-node", "pod/coredns-1"}, h.NotReady())
}

func TestHealth_NoNodes(t *testing.T) {
	assert.False(t, (&Health{}).Healthy())
}

func TestHealth_CompletedPodsIgnored(t *testing.T) {
	h := &Health{
		Nodes:      []NodeStatus{{Name: "n", Ready: true}},
		SystemPods: []PodStatus{{Name: "job", Phase: corev1.PodSucceeded}},
	}
	assert.True(t, h.Healthy())
}

func TestWaitForHealthy(t *testing.T) {
	c := newFakeClient(node("master-node", true, nil))

	h, err := c.WaitForHealthy(context.Background(), 10*time.Millisecond, time.Second)
	require.NoError(t, err)
	assert.Len(t, h.Nodes, 1)
}

func TestWaitForHealthy_Timeout(t *testing.T) {
	c := newFakeClient(node("master-node", false, nil))

	h, err := c.WaitForHealthy(context.Background(), 10*time.Millisecond, 50*time.Millisecond)
	require.Error(t, err)
	require.NotNil(t, h)
	assert.Contains(t, err.Error(), "node/master-node")
}

func TestNewClientFromBytes_Invalid(t *testing.T) {
	_, err := NewClientFromBytes([]byte("not a kubeconfig"))
	require.Error(t, err)
}

func TestNewClientFromBytes(t *testing.T) {
	kubeconfig := []byte(`apiVersion: v1
kind: Config
clusters:
- name: kubernetes
  cluster:
    server: https://10.0.0.10:6443
    insecure-skip-tls-verify: true
contexts:
- name: admin
  context:
    cluster: kubernetes
    user: admin
current-context: admin
users:
- name: admin
  user:
    token: abc
`)
	c, err := NewClientFromBytes(kubeconfig)
	require.NoError(t, err)
	assert.NotNil(t, c)

	config, err := restConfigFromBytes(kubeconfig)
	require.NoError(t, err)
	assert.Equal(t, RequestTimeout, config.Timeout)
	assert.Equal(t, "https://10.0.0.10:6443", config.Host)
}
