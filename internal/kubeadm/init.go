package kubeadm

import "strings"

// InitArgs builds the arguments for "kubeadm init".
func InitArgs(podNetworkCIDR, criSocket string, ignorePreflightErrors []string) []string {
	args := []string{"init"}
	if podNetworkCIDR != "" {
		args = append(args, "--pod-network-cidr="+podNetworkCIDR)
	}
	if criSocket != "" {
		args = append(args, "--cri-socket="+criSocket)
	}
	if len(ignorePreflightErrors) > 0 {
		args = append(args, "--ignore-preflight-errors="+strings.Join(ignorePreflightErrors, ","))
	}
	return args
}

// alreadyInitializedMarkers are preflight failures kubeadm reports when the
// control plane is already running on the host.
var alreadyInitializedMarkers = []string{
	"/etc/kubernetes/manifests/kube-apiserver.yaml already exists",
	"FileAvailable--etc-kubernetes-manifests-kube-apiserver.yaml",
	"Port-6443]: Port 6443 is in use",
	"Port-10250]: Port 10250 is in use",
}

// IsAlreadyInitialized reports whether kubeadm init output indicates the host
// already runs a control plane.
func IsAlreadyInitialized(output string) bool {
	for _, m := range alreadyInitializedMarkers {
		if strings.Contains(output, m) {
			return true
		}
	}
	return false
}
