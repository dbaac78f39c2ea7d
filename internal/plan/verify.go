package plan

// PhaseClusterHealth is the single phase of the verify plan.
const PhaseClusterHealth = "cluster-health"

func verifyPhases(o Options) []Phase {
	kc := o.AdminKubeconfig
	return []Phase{
		{
			Name:  PhaseClusterHealth,
			Title: "Kubernetes Cluster Health Check",
			Commands: []Command{
				run("Node Status", "kubectl", "--kubeconfig", kc, "get", "nodes", "-o", "wide").bestEffort(),
				run("System Pods Status", "kubectl", "--kubeconfig", kc, "get", "pods", "-n", "kube-system").bestEffort(),
				run("Cluster Information", "kubectl", "--kubeconfig", kc, "cluster-info").bestEffort(),
				run("kubeaudit Version", "kubeaudit", "version").bestEffort(),
				run("Container Runtime Status", "systemctl", "status", "containerd", "--no-pager", "-l").bestEffort(),
			},
		},
	}
}
