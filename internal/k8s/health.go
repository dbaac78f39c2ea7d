package k8s

import (
	"context"
	"fmt"
	"sort"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
)

// NodeStatus is the readiness of one node.
type NodeStatus struct {
	Name           string
	Ready          bool
	ControlPlane   bool
	KubeletVersion string
	InternalIP     string
}

// PodStatus is the state of one kube-system pod.
type PodStatus struct {
	Name     string
	Phase    corev1.PodPhase
	Ready    bool
	Restarts int32
}

// Health is a point-in-time view of the cluster.
type Health struct {
	ServerVersion string
	Nodes         []NodeStatus
	SystemPods    []PodStatus
}

// Healthy reports whether at least one node exists, every node is ready
// and every kube-system pod is running and ready.
func (h *Health) Healthy() bool {
	if len(h.Nodes) == 0 {
		return false
	}
	for _, n := range h.Nodes {
		if !n.Ready {
			return false
		}
	}
	for _, p := range h.SystemPods {
		if p.Phase == corev1.PodSucceeded {
			continue
		}
		if p.Phase != corev1.PodRunning || !p.Ready {
			return false
		}
	}
	return true
}

// NotReady lists the names of nodes and pods that are not ready.
func (h *Health) NotReady() []string {
	var out []string
	for _, n := range h.Nodes {
		if !n.Ready {
			out = append(out, "node/"+n.Name)
		}
	}
	for _, p := range h.SystemPods {
		if p.Phase != corev1.PodSucceeded && (p.Phase != corev1.PodRunning || !p.Ready) {
			out = append(out, "pod/"+p.Name)
		}
	}
	return out
}

// Probe collects node and kube-system pod status.
func (c *Client) Probe(ctx context.Context) (*Health, error) {
	h := &Health{}

	if v, err := c.clientset.Discovery().ServerVersion(); err == nil {
		h.ServerVersion = v.GitVersion
	}

	nodes, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	for i := range nodes.Items {
		h.Nodes = append(h.Nodes, nodeStatus(&nodes.Items[i]))
	}
	sort.Slice(h.Nodes, func(i, j int) bool { return h.Nodes[i].Name < h.Nodes[j].Name })

	pods, err := c.clientset.CoreV1().Pods(metav1.NamespaceSystem).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list kube-system pods: %w", err)
	}
	for i := range pods.Items {
		h.SystemPods = append(h.SystemPods, podStatus(&pods.Items[i]))
	}
	sort.Slice(h.SystemPods, func(i, j int) bool { return h.SystemPods[i].Name < h.SystemPods[j].Name })

	return h, nil
}

// ProbeKubeconfig builds a client from kubeconfig bytes and probes once.
func ProbeKubeconfig(ctx context.Context, kubeconfig []byte) (*Health, error) {
	c, err := NewClientFromBytes(kubeconfig)
	if err != nil {
		return nil, err
	}
	return c.Probe(ctx)
}

// WaitForHealthy polls Probe until the cluster is healthy or timeout elapses.
// The last observed health is returned in both cases.
func (c *Client) WaitForHealthy(ctx context.Context, interval, timeout time.Duration) (*Health, error) {
	var last *Health
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		h, err := c.Probe(ctx)
		if err != nil {
			return false, nil
		}
		last = h
		return h.Healthy(), nil
	})
	if err != nil {
		if last != nil {
			return last, fmt.Errorf("cluster not healthy after %s, not ready: %v: %w", timeout, last.NotReady(), err)
		}
		return nil, fmt.Errorf("cluster API unreachable after %s: %w", timeout, err)
	}
	return last, nil
}

func nodeStatus(node *corev1.Node) NodeStatus {
	s := NodeStatus{
		Name:           node.Name,
		KubeletVersion: node.Status.NodeInfo.KubeletVersion,
	}
	if _, ok := node.Labels["node-role.kubernetes.io/control-plane"]; ok {
		s.ControlPlane = true
	}
	for _, c := range node.Status.Conditions {
		if c.Type == corev1.NodeReady && c.Status == corev1.ConditionTrue {
			s.Ready = true
		}
	}
	for _, a := range node.Status.Addresses {
		if a.Type == corev1.NodeInternalIP {
			s.InternalIP = a.Address
			break
		}
	}
	return s
}

func podStatus(pod *corev1.Pod) PodStatus {
	s := PodStatus{Name: pod.Name, Phase: pod.Status.Phase}
	for _, c := range pod.Status.Conditions {
		if c.Type == corev1.PodReady && c.Status == corev1.ConditionTrue {
			s.Ready = true
		}
	}
	for _, cs := range pod.Status.ContainerStatuses {
		s.Restarts += cs.RestartCount
	}
	return s
}
