package config

import (
	"fmt"
	"time"

	"github.com/imamik/kubeprov/internal/plan"
)

// DefaultConfigFilename is the configuration file looked up when no path is given.
const DefaultConfigFilename = "kubeprov.yaml"

// Config is the complete kubeprov configuration.
type Config struct {
	// Hostname overrides the per-role default (master-node / worker-node).
	Hostname string `yaml:"hostname,omitempty"`

	// OperatorUser receives the admin kubeconfig and sample manifest.
	// Defaults to $SUDO_USER when provisioning the local host.
	OperatorUser string `yaml:"operator_user,omitempty"`

	Arch string `yaml:"arch"`

	Target       Target       `yaml:"target"`
	Versions     Versions     `yaml:"versions"`
	Cluster      Cluster      `yaml:"cluster"`
	Verification Verification `yaml:"verification"`
	Artifacts    Artifacts    `yaml:"artifacts"`
}

// Target selects the host being provisioned. An empty Host means the local machine.
type Target struct {
	Host           string `yaml:"host,omitempty"`
	Port           int    `yaml:"port,omitempty"`
	User           string `yaml:"user,omitempty"`
	PrivateKeyPath string `yaml:"private_key_path,omitempty"`
}

// IsLocal reports whether the target is the machine kubeprov runs on.
func (t Target) IsLocal() bool {
	return t.Host == "" || t.Host == "localhost" || t.Host == "127.0.0.1"
}

// Versions pins downloaded components.
type Versions struct {
	Kubernetes string `yaml:"kubernetes"`
	Containerd string `yaml:"containerd"`
	Runc       string `yaml:"runc"`
	CNIPlugins string `yaml:"cni_plugins"`
	Calico     string `yaml:"calico"`
	Kubeaudit  string `yaml:"kubeaudit"`
}

// Cluster holds kubeadm init settings.
type Cluster struct {
	PodNetworkCIDR        string   `yaml:"pod_network_cidr"`
	CRISocket             string   `yaml:"cri_socket"`
	IgnorePreflightErrors []string `yaml:"ignore_preflight_errors"`
	AdminKubeconfig       string   `yaml:"admin_kubeconfig"`
}

// Verification tunes the final master phase.
type Verification struct {
	// Delay is waited before the verification queries, as a Go duration string.
	Delay string `yaml:"delay"`
}

// Artifacts configures where run artifacts end up.
type Artifacts struct {
	JoinCommandPath string `yaml:"join_command_path"`
	InitLogPath     string `yaml:"init_log_path"`
	S3              S3     `yaml:"s3,omitempty"`
}

// S3 configures optional publishing of the join command to S3-compatible storage.
type S3 struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`
	Key      string `yaml:"key,omitempty"`

	// Credentials come from the environment only.
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// Enabled reports whether publishing is configured.
func (s S3) Enabled() bool {
	return s.Bucket != ""
}

// Default returns the configuration of the reference setup.
func Default() *Config {
	d := plan.DefaultOptions()
	return &Config{
		Arch: d.Arch,
		Target: Target{
			Port: 22,
			User: "root",
		},
		Versions: Versions{
			Kubernetes: d.Versions.Kubernetes,
			Containerd: d.Versions.Containerd,
			Runc:       d.Versions.Runc,
			CNIPlugins: d.Versions.CNIPlugins,
			Calico:     d.Versions.Calico,
			Kubeaudit:  d.Versions.Kubeaudit,
		},
		Cluster: Cluster{
			PodNetworkCIDR:        d.PodNetworkCIDR,
			CRISocket:             d.CRISocket,
			IgnorePreflightErrors: append([]string(nil), d.IgnorePreflightErrors...),
			AdminKubeconfig:       d.AdminKubeconfig,
		},
		Verification: Verification{
			Delay: d.VerificationDelay.String(),
		},
		Artifacts: Artifacts{
			JoinCommandPath: d.JoinCommandPath,
			InitLogPath:     d.InitLogPath,
			S3: S3{
				Key: "kubeadm-join-command.txt",
			},
		},
	}
}

// VerificationDelay returns the parsed verification delay.
func (c *Config) VerificationDelay() (time.Duration, error) {
	if c.Verification.Delay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Verification.Delay)
	if err != nil {
		return 0, fmt.Errorf("invalid verification delay %q: %w", c.Verification.Delay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("verification delay must not be negative, got %s", d)
	}
	return d, nil
}

// PlanOptions converts the configuration into plan options.
func (c *Config) PlanOptions() (plan.Options, error) {
	delay, err := c.VerificationDelay()
	if err != nil {
		return plan.Options{}, err
	}

	return plan.Options{
		Hostname:     c.Hostname,
		OperatorUser: c.OperatorUser,
		Arch:         c.Arch,
		Versions: plan.Versions{
			Kubernetes: c.Versions.Kubernetes,
			Containerd: c.Versions.Containerd,
			Runc:       c.Versions.Runc,
			CNIPlugins: c.Versions.CNIPlugins,
			Calico:     c.Versions.Calico,
			Kubeaudit:  c.Versions.Kubeaudit,
		},
		PodNetworkCIDR:        c.Cluster.PodNetworkCIDR,
		CRISocket:             c.Cluster.CRISocket,
		IgnorePreflightErrors: c.Cluster.IgnorePreflightErrors,
		AdminKubeconfig:       c.Cluster.AdminKubeconfig,
		JoinCommandPath:       c.Artifacts.JoinCommandPath,
		InitLogPath:           c.Artifacts.InitLogPath,
		VerificationDelay:     delay,
	}, nil
}
