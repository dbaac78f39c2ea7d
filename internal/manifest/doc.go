// Package manifest renders the helper files installed on a freshly initialized
// control plane: a sample workload manifest for trying out the security
// scanner, and the k8s-security-scan wrapper script.
package manifest
