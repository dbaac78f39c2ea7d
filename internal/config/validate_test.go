package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:   "arm64",
			mutate: func(c *Config) { c.Arch = "arm64" },
		},
		{
			name:    "unknown arch",
			mutate:  func(c *Config) { c.Arch = "386" },
			wantErr: "invalid arch",
		},
		{
			name:    "kubernetes patch version",
			mutate:  func(c *Config) { c.Versions.Kubernetes = "v1.33.1" },
			wantErr: "minor channel",
		},
		{
			name:    "kubernetes too old",
			mutate:  func(c *Config) { c.Versions.Kubernetes = "v1.23" },
			wantErr: "older than",
		},
		{
			name:    "containerd with v prefix",
			mutate:  func(c *Config) { c.Versions.Containerd = "v1.7.18" },
			wantErr: "must not start with v",
		},
		{
			name:    "calico without v prefix",
			mutate:  func(c *Config) { c.Versions.Calico = "3.28.1" },
			wantErr: "must start with v",
		},
		{
			name:    "runc not semver",
			mutate:  func(c *Config) { c.Versions.Runc = "latest" },
			wantErr: "invalid runc version",
		},
		{
			name:    "missing kubeaudit",
			mutate:  func(c *Config) { c.Versions.Kubeaudit = "" },
			wantErr: "kubeaudit version is required",
		},
		{
			name:    "bad cidr",
			mutate:  func(c *Config) { c.Cluster.PodNetworkCIDR = "192.168.0.0" },
			wantErr: "invalid pod_network_cidr",
		},
		{
			name:    "tcp cri socket",
			mutate:  func(c *Config) { c.Cluster.CRISocket = "tcp://localhost:1234" },
			wantErr: "unix://",
		},
		{
			name: "remote without key",
			mutate: func(c *Config) {
				c.Target.Host = "10.0.0.9"
			},
			wantErr: "private_key_path is required",
		},
		{
			name: "remote bad port",
			mutate: func(c *Config) {
				c.Target.Host = "10.0.0.9"
				c.Target.Port = 70000
				c.Target.PrivateKeyPath = "/k"
			},
			wantErr: "invalid port",
		},
		{
			name:    "bad delay",
			mutate:  func(c *Config) { c.Verification.Delay = "soon" },
			wantErr: "invalid verification delay",
		},
		{
			name:    "negative delay",
			mutate:  func(c *Config) { c.Verification.Delay = "-1s" },
			wantErr: "must not be negative",
		},
		{
			name:    "s3 without region",
			mutate:  func(c *Config) { c.Artifacts.S3.Bucket = "b" },
			wantErr: "s3.region is required",
		},
		{
			name: "s3 half credentials",
			mutate: func(c *Config) {
				c.Artifacts.S3.Bucket = "b"
				c.Artifacts.S3.Region = "us-east-1"
				c.Artifacts.S3.AccessKey = "a"
			},
			wantErr: "must be set together",
		},
		{
			name:    "no join path",
			mutate:  func(c *Config) { c.Artifacts.JoinCommandPath = "" },
			wantErr: "join_command_path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
