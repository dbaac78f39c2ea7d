package plan

import (
	"fmt"
	"path"
)

// Phase names shared by master and worker plans.
const (
	PhaseSystemPreparation  = "system-preparation"
	PhaseContainerRuntime   = "container-runtime"
	PhaseKubernetesPackages = "kubernetes-packages"
)

const (
	modulesLoadPath       = "/etc/modules-load.d/k8s.conf"
	sysctlPath            = "/etc/sysctl.d/k8s.conf"
	containerdConfigPath  = "/etc/containerd/config.toml"
	containerdUnitPath    = "/etc/systemd/system/containerd.service"
	containerdUnitURL     = "https://raw.githubusercontent.com/containerd/containerd/main/containerd.service"
	kubernetesKeyringPath = "/etc/apt/keyrings/kubernetes-apt-keyring.gpg"
	kubernetesListPath    = "/etc/apt/sources.list.d/kubernetes.list"
	cniBinDir             = "/opt/cni/bin"
)

var kubernetesPackages = []string{"kubelet", "kubeadm", "kubectl"}

const modulesLoadConf = `overlay
br_netfilter
`

const sysctlConf = `net.bridge.bridge-nf-call-iptables = 1
net.bridge.bridge-nf-call-ip6tables = 1
net.ipv4.ip_forward = 1
`

func systemPreparation(o Options) Phase {
	return Phase{
		Name:  PhaseSystemPreparation,
		Title: "System Preparation",
		Commands: []Command{
			run("Updating package index", "apt-get", "update").network(),
			run("Upgrading system packages", "apt-get", "upgrade", "-y").network().withEnv(aptEnv),
			run(fmt.Sprintf("Setting hostname to %s", o.Hostname), "hostnamectl", "set-hostname", o.Hostname),
			run("Disabling swap", "swapoff", "-a"),
			run("Removing swap from fstab", "sed", "-i", "/swap/d", "/etc/fstab"),
			run("Loading overlay module", "modprobe", "overlay"),
			run("Loading br_netfilter module", "modprobe", "br_netfilter"),
			writeFile("Persisting kernel modules", modulesLoadPath, []byte(modulesLoadConf)),
			writeFile("Writing sysctl parameters", sysctlPath, []byte(sysctlConf)),
			run("Applying sysctl parameters", "sysctl", "--system"),
		},
	}
}

func containerRuntime(o Options) Phase {
	v := o.Versions
	dir := o.DownloadDir

	containerdURL := fmt.Sprintf(
		"https://github.com/containerd/containerd/releases/download/v%[1]s/containerd-%[1]s-linux-%[2]s.tar.gz",
		v.Containerd, o.Arch)
	runcURL := fmt.Sprintf("https://github.com/opencontainers/runc/releases/download/v%s/runc.%s", v.Runc, o.Arch)
	cniURL := fmt.Sprintf(
		"https://github.com/containernetworking/plugins/releases/download/v%[1]s/cni-plugins-linux-%[2]s-v%[1]s.tgz",
		v.CNIPlugins, o.Arch)

	fetchContainerd, containerdTarball := download("Downloading containerd", containerdURL, dir)
	fetchRunc, runcBinary := download("Downloading runc", runcURL, dir)
	fetchCNI, cniTarball := download("Downloading CNI plugins", cniURL, dir)

	return Phase{
		Name:  PhaseContainerRuntime,
		Title: "containerd Installation",
		Commands: []Command{
			run("Installing prerequisites", "apt-get", "install", "-y",
				"apt-transport-https", "ca-certificates", "curl", "software-properties-common", "wget").
				network().withEnv(aptEnv),
			fetchContainerd,
			run("Installing containerd", "tar", "Cxzvf", "/usr/local", containerdTarball),
			fetchRunc,
			run("Installing runc", "install", "-m", "755", runcBinary, "/usr/local/sbin/runc"),
			fetchCNI,
			run("Creating CNI plugin directory", "mkdir", "-p", cniBinDir),
			run("Installing CNI plugins", "tar", "Cxzvf", cniBinDir, cniTarball),
			run("Creating containerd config directory", "mkdir", "-p", path.Dir(containerdConfigPath)),
			script("Generating default containerd config",
				"/usr/local/bin/containerd config default > "+containerdConfigPath),
			run("Enabling systemd cgroup driver", "sed", "-i",
				"s/SystemdCgroup = false/SystemdCgroup = true/g", containerdConfigPath),
			run("Installing containerd systemd unit", "curl", "-fsSL", containerdUnitURL, "-o", containerdUnitPath).network(),
			run("Reloading systemd", "systemctl", "daemon-reload"),
			run("Starting containerd", "systemctl", "enable", "--now", "containerd"),
			run("Checking containerd is running", "systemctl", "is-active", "--quiet", "containerd"),
		},
	}
}

func kubernetesPackagesPhase(o Options) Phase {
	repo := fmt.Sprintf("https://pkgs.k8s.io/core:/stable:/%s/deb/", o.Versions.Kubernetes)
	sourcesList := fmt.Sprintf("deb [signed-by=%s] %s /\n", kubernetesKeyringPath, repo)

	hold := append([]string{"hold"}, kubernetesPackages...)
	install := append([]string{"install", "-y"}, kubernetesPackages...)

	return Phase{
		Name:  PhaseKubernetesPackages,
		Title: "Kubernetes Components Installation",
		Commands: []Command{
			run("Creating apt keyring directory", "mkdir", "-p", "-m", "755", path.Dir(kubernetesKeyringPath)),
			script("Adding Kubernetes repository key",
				fmt.Sprintf("curl -fsSL %sRelease.key | gpg --dearmor --batch --yes -o %s", repo, kubernetesKeyringPath)).network(),
			run("Setting keyring permissions", "chmod", "644", kubernetesKeyringPath),
			writeFile("Adding Kubernetes repository", kubernetesListPath, []byte(sourcesList)),
			run("Updating package index", "apt-get", "update").network(),
			run("Installing kubeadm, kubelet, kubectl", "apt-get", install...).network().withEnv(aptEnv),
			run("Holding Kubernetes package versions", "apt-mark", hold...),
		},
	}
}

func nodePhases(o Options) []Phase {
	return []Phase{
		systemPreparation(o),
		containerRuntime(o),
		kubernetesPackagesPhase(o),
	}
}
