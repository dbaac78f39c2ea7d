package config

import (
	"fmt"
	"net"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ValidArchitectures lists the release architectures the download URLs exist for.
var ValidArchitectures = map[string]bool{
	"amd64": true,
	"arm64": true,
}

// kubernetesMinor matches the package repository channel, e.g. v1.33.
var kubernetesMinor = regexp.MustCompile(`^v\d+\.\d+$`)

// minKubernetes is the oldest minor published on pkgs.k8s.io.
var minKubernetes = semver.MustParse("1.24")

// Validate checks the configuration for common errors and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	if !ValidArchitectures[c.Arch] {
		return fmt.Errorf("invalid arch %q: must be one of %v", c.Arch, getMapKeys(ValidArchitectures))
	}

	if err := c.validateVersions(); err != nil {
		return fmt.Errorf("version validation failed: %w", err)
	}

	if err := c.validateCluster(); err != nil {
		return fmt.Errorf("cluster validation failed: %w", err)
	}

	if err := c.validateTarget(); err != nil {
		return fmt.Errorf("target validation failed: %w", err)
	}

	if _, err := c.VerificationDelay(); err != nil {
		return err
	}

	if err := c.validateArtifacts(); err != nil {
		return fmt.Errorf("artifact validation failed: %w", err)
	}

	return nil
}

func (c *Config) validateVersions() error {
	v := c.Versions

	if !kubernetesMinor.MatchString(v.Kubernetes) {
		return fmt.Errorf("kubernetes version %q must be a minor channel such as v1.33", v.Kubernetes)
	}
	k8s, err := semver.NewVersion(v.Kubernetes)
	if err != nil {
		return fmt.Errorf("invalid kubernetes version %q: %w", v.Kubernetes, err)
	}
	if k8s.LessThan(minKubernetes) {
		return fmt.Errorf("kubernetes version %s is older than the oldest published channel v%s", v.Kubernetes, minKubernetes)
	}

	pins := []struct {
		name, value string
		vprefix     bool
	}{
		{"containerd", v.Containerd, false},
		{"runc", v.Runc, false},
		{"cni_plugins", v.CNIPlugins, false},
		{"calico", v.Calico, true},
		{"kubeaudit", v.Kubeaudit, false},
	}
	for _, p := range pins {
		if p.value == "" {
			return fmt.Errorf("%s version is required", p.name)
		}
		if p.vprefix != strings.HasPrefix(p.value, "v") {
			if p.vprefix {
				return fmt.Errorf("%s version %q must start with v", p.name, p.value)
			}
			return fmt.Errorf("%s version %q must not start with v", p.name, p.value)
		}
		if _, err := semver.StrictNewVersion(strings.TrimPrefix(p.value, "v")); err != nil {
			return fmt.Errorf("invalid %s version %q: %w", p.name, p.value, err)
		}
	}
	return nil
}

func (c *Config) validateCluster() error {
	if _, _, err := net.ParseCIDR(c.Cluster.PodNetworkCIDR); err != nil {
		return fmt.Errorf("invalid pod_network_cidr %q: %w", c.Cluster.PodNetworkCIDR, err)
	}
	if !strings.HasPrefix(c.Cluster.CRISocket, "unix://") {
		return fmt.Errorf("cri_socket %q must be a unix:// endpoint", c.Cluster.CRISocket)
	}
	if c.Cluster.AdminKubeconfig == "" {
		return fmt.Errorf("admin_kubeconfig is required")
	}
	return nil
}

func (c *Config) validateTarget() error {
	if c.Target.IsLocal() {
		return nil
	}
	if c.Target.Port < 1 || c.Target.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Target.Port)
	}
	if c.Target.User == "" {
		return fmt.Errorf("user is required for remote host %s", c.Target.Host)
	}
	if c.Target.PrivateKeyPath == "" {
		return fmt.Errorf("private_key_path is required for remote host %s", c.Target.Host)
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	if c.Artifacts.JoinCommandPath == "" {
		return fmt.Errorf("join_command_path is required")
	}
	if c.Artifacts.InitLogPath == "" {
		return fmt.Errorf("init_log_path is required")
	}

	s3 := c.Artifacts.S3
	if !s3.Enabled() {
		return nil
	}
	if s3.Key == "" {
		return fmt.Errorf("s3.key is required when s3.bucket is set")
	}
	if s3.Region == "" {
		return fmt.Errorf("s3.region is required when s3.bucket is set")
	}
	if (s3.AccessKey == "") != (s3.SecretKey == "") {
		return fmt.Errorf("%s and %s must be set together", EnvS3AccessKey, EnvS3SecretKey)
	}
	return nil
}

func getMapKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
