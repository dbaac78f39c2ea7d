package handlers

import (
	"context"
	"time"

	"github.com/imamik/kubeprov/internal/config"
	"github.com/imamik/kubeprov/internal/k8s"
	"github.com/imamik/kubeprov/internal/platform/shell"
	"github.com/imamik/kubeprov/internal/provisioning"
	"github.com/imamik/kubeprov/internal/report"
)

const healthPollInterval = 5 * time.Second

// probeTimeout bounds a single API probe when verify does not wait.
var probeTimeout = 30 * time.Second

// verifyAPI probes the cluster through its API using the admin kubeconfig
// read from the host. Every failure is reported as a warning.
func verifyAPI(ctx context.Context, host provisioning.Host, cfg *config.Config, wait time.Duration, reporter *report.Reporter) {
	path := cfg.Cluster.AdminKubeconfig
	resp, err := host.Run(ctx, shell.Request{Program: "cat", Args: []string{path}})
	if err != nil || !resp.Succeeded() || resp.Output == "" {
		reporter.Warningf("Skipping API probe: %s is not readable on %s", path, host.Name())
		return
	}

	health, err := probeCluster(ctx, []byte(resp.Output), wait)
	if health != nil {
		reporter.Println("")
		reporter.Health(health)
	}
	if err != nil {
		reporter.Warningf("Cluster API probe failed: %v", err)
	}
}

func probeHealth(ctx context.Context, kubeconfig []byte, wait time.Duration) (*k8s.Health, error) {
	if wait <= 0 {
		ctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		return k8s.ProbeKubeconfig(ctx, kubeconfig)
	}
	client, err := k8s.NewClientFromBytes(kubeconfig)
	if err != nil {
		return nil, err
	}
	return client.WaitForHealthy(ctx, healthPollInterval, wait)
}
