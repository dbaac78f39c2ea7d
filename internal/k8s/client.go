// Package k8s inspects a freshly provisioned cluster through the Kubernetes API.
package k8s

import (
	"fmt"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// RequestTimeout bounds every API request made by a Client.
const RequestTimeout = 15 * time.Second

// Client wraps the read-only API calls used for health checks.
type Client struct {
	clientset kubernetes.Interface
}

// NewClientFromBytes creates a new Kubernetes client from kubeconfig bytes.
func NewClientFromBytes(kubeconfigData []byte) (*Client, error) {
	config, err := restConfigFromBytes(kubeconfigData)
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &Client{clientset: clientset}, nil
}

func restConfigFromBytes(kubeconfigData []byte) (*rest.Config, error) {
	config, err := clientcmd.RESTConfigFromKubeConfig(kubeconfigData)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig from bytes: %w", err)
	}
	config.Timeout = RequestTimeout
	return config, nil
}

// NewClientFromInterface wraps an existing clientset.
func NewClientFromInterface(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}
