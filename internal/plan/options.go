package plan

import "time"

// Versions pins every downloaded component.
type Versions struct {
	// Kubernetes is the pkgs.k8s.io minor channel, e.g. "v1.33".
	Kubernetes string
	Containerd string
	Runc       string
	CNIPlugins string
	Calico     string
	Kubeaudit  string
}

// Options parameterizes the plans. Zero fields take the defaults of
// DefaultOptions.
type Options struct {
	// Hostname overrides the role's default hostname.
	Hostname string

	// OperatorUser receives a copy of the admin kubeconfig and the sample
	// manifest. Empty or "root" means root's home.
	OperatorUser string

	Arch     string
	Versions Versions

	PodNetworkCIDR        string
	CRISocket             string
	IgnorePreflightErrors []string

	AdminKubeconfig string
	JoinCommandPath string
	InitLogPath     string
	DownloadDir     string

	VerificationDelay time.Duration
}

// DefaultOptions returns the pins and paths of the reference setup.
func DefaultOptions() Options {
	return Options{
		Arch: "amd64",
		Versions: Versions{
			Kubernetes: "v1.33",
			Containerd: "1.7.18",
			Runc:       "1.1.12",
			CNIPlugins: "1.5.1",
			Calico:     "v3.28.1",
			Kubeaudit:  "0.22.2",
		},
		PodNetworkCIDR:        "192.168.0.0/16",
		CRISocket:             "unix:///run/containerd/containerd.sock",
		IgnorePreflightErrors: []string{"NumCPU", "Mem"},
		AdminKubeconfig:       "/etc/kubernetes/admin.conf",
		JoinCommandPath:       "/tmp/kubeadm-join-command.txt",
		InitLogPath:           "/tmp/kubeadm-init.log",
		DownloadDir:           "/tmp",
		VerificationDelay:     30 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults(role Role) Options {
	d := DefaultOptions()

	if o.Hostname == "" {
		o.Hostname = role.DefaultHostname()
	}
	if o.Arch == "" {
		o.Arch = d.Arch
	}
	if o.Versions.Kubernetes == "" {
		o.Versions.Kubernetes = d.Versions.Kubernetes
	}
	if o.Versions.Containerd == "" {
		o.Versions.Containerd = d.Versions.Containerd
	}
	if o.Versions.Runc == "" {
		o.Versions.Runc = d.Versions.Runc
	}
	if o.Versions.CNIPlugins == "" {
		o.Versions.CNIPlugins = d.Versions.CNIPlugins
	}
	if o.Versions.Calico == "" {
		o.Versions.Calico = d.Versions.Calico
	}
	if o.Versions.Kubeaudit == "" {
		o.Versions.Kubeaudit = d.Versions.Kubeaudit
	}
	if o.PodNetworkCIDR == "" {
		o.PodNetworkCIDR = d.PodNetworkCIDR
	}
	if o.CRISocket == "" {
		o.CRISocket = d.CRISocket
	}
	if o.IgnorePreflightErrors == nil {
		o.IgnorePreflightErrors = d.IgnorePreflightErrors
	}
	if o.AdminKubeconfig == "" {
		o.AdminKubeconfig = d.AdminKubeconfig
	}
	if o.JoinCommandPath == "" {
		o.JoinCommandPath = d.JoinCommandPath
	}
	if o.InitLogPath == "" {
		o.InitLogPath = d.InitLogPath
	}
	if o.DownloadDir == "" {
		o.DownloadDir = d.DownloadDir
	}
	if o.VerificationDelay == 0 {
		o.VerificationDelay = d.VerificationDelay
	}
	return o
}

// OperatorHome returns the home directory of the operator user.
func (o Options) OperatorHome() string {
	if o.OperatorUser == "" || o.OperatorUser == "root" {
		return "/root"
	}
	return "/home/" + o.OperatorUser
}
