package plan

import (
	"fmt"
	"path"

	"github.com/imamik/kubeprov/internal/kubeadm"
	"github.com/imamik/kubeprov/internal/manifest"
)

// Phase names specific to the master plan.
const (
	PhaseClusterInitialization = "cluster-initialization"
	PhaseSecurityScanner       = "security-scanner"
	PhaseHelperArtifacts       = "helper-artifacts"
	PhaseVerification          = "verification"
)

// Artifact names produced by cluster initialization.
const (
	ArtifactJoinCommand = "join-command"
	ArtifactInitLog     = "init-log"
)

func clusterInitialization(o Options) Phase {
	home := o.OperatorHome()
	kubeDir := path.Join(home, ".kube")
	userConfig := path.Join(kubeDir, "config")

	calicoURL := fmt.Sprintf(
		"https://raw.githubusercontent.com/projectcalico/calico/%s/manifests/calico.yaml", o.Versions.Calico)

	commands := []Command{
		run("Initializing Kubernetes cluster", "kubeadm",
			kubeadm.InitArgs(o.PodNetworkCIDR, o.CRISocket, o.IgnorePreflightErrors)...).
			withArtifacts(
				Artifact{Name: ArtifactInitLog, Path: o.InitLogPath},
				Artifact{Name: ArtifactJoinCommand, Path: o.JoinCommandPath, Extract: kubeadm.ExtractJoinCommand},
			),
		run("Creating kubeconfig directory", "mkdir", "-p", kubeDir),
		run(fmt.Sprintf("Copying admin kubeconfig to %s", userConfig), "cp", "-f", o.AdminKubeconfig, userConfig),
	}
	if home != "/root" {
		owner := o.OperatorUser + ":" + o.OperatorUser
		commands = append(commands,
			run("Handing kubeconfig to "+o.OperatorUser, "chown", "-R", owner, kubeDir))
	}
	commands = append(commands,
		run("Installing Calico CNI", "kubectl", "--kubeconfig", o.AdminKubeconfig, "apply", "-f", calicoURL).network())

	return Phase{
		Name:     PhaseClusterInitialization,
		Title:    "Cluster Initialization",
		Commands: commands,
	}
}

func securityScanner(o Options) Phase {
	v := o.Versions.Kubeaudit
	url := fmt.Sprintf(
		"https://github.com/Shopify/kubeaudit/releases/download/v%[1]s/kubeaudit_%[1]s_linux_%[2]s.tar.gz", v, o.Arch)
	fetch, tarball := download("Downloading kubeaudit", url, o.DownloadDir)
	binary := path.Join(o.DownloadDir, "kubeaudit")

	return Phase{
		Name:  PhaseSecurityScanner,
		Title: "kubeaudit Security Scanner Installation",
		Commands: []Command{
			fetch,
			run("Unpacking kubeaudit", "tar", "-xzf", tarball, "-C", o.DownloadDir, "kubeaudit"),
			run("Installing kubeaudit", "install", "-m", "755", binary, "/usr/local/bin/kubeaudit"),
			run("Checking kubeaudit", "kubeaudit", "version"),
		},
	}
}

func helperArtifacts(o Options) (Phase, error) {
	pod, err := manifest.SamplePod()
	if err != nil {
		return Phase{}, err
	}

	home := o.OperatorHome()
	podPath := path.Join(home, manifest.SamplePodFile)

	commands := []Command{
		run("Creating operator home", "mkdir", "-p", home),
		writeFile("Writing sample pod manifest", podPath, pod),
	}
	if home != "/root" {
		commands = append(commands,
			run("Handing sample manifest to "+o.OperatorUser, "chown", o.OperatorUser+":"+o.OperatorUser, podPath))
	}
	commands = append(commands,
		writeFile("Installing k8s-security-scan helper", manifest.SecurityScanPath, manifest.SecurityScanScript()),
		run("Making k8s-security-scan executable", "chmod", "+x", manifest.SecurityScanPath),
	)

	return Phase{
		Name:     PhaseHelperArtifacts,
		Title:    "Helper Scripts and Sample Files",
		Commands: commands,
	}, nil
}

// verification queries run after the cluster is considered provisioned.
// They are best-effort: a failing query is reported but the node stays
// provisioned.
func verification(o Options) Phase {
	return Phase{
		Name:  PhaseVerification,
		Title: "Final Verification",
		Delay: o.VerificationDelay,
		Commands: []Command{
			run("Checking node status", "kubectl", "--kubeconfig", o.AdminKubeconfig, "get", "nodes").bestEffort(),
			run("Checking system pods", "kubectl", "--kubeconfig", o.AdminKubeconfig,
				"get", "pods", "-n", "kube-system").bestEffort(),
			run("Testing kubeaudit", "kubeaudit", "version").bestEffort(),
		},
	}
}

func masterPhases(o Options) ([]Phase, error) {
	helpers, err := helperArtifacts(o)
	if err != nil {
		return nil, err
	}

	phases := nodePhases(o)
	phases = append(phases,
		clusterInitialization(o),
		securityScanner(o),
		helpers,
		verification(o),
	)
	return phases, nil
}
