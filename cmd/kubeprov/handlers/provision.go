package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imamik/kubeprov/internal/config"
	"github.com/imamik/kubeprov/internal/plan"
	"github.com/imamik/kubeprov/internal/provisioning"
	"github.com/imamik/kubeprov/internal/report"
	"github.com/imamik/kubeprov/internal/util/prerequisites"
)

// RunOptions holds the flags shared by master, worker and verify.
type RunOptions struct {
	ConfigPath  string
	DryRun      bool
	Yes         bool
	MetricsFile string
	Verbose     bool

	// Wait bounds how long verify waits for the cluster to become healthy.
	// Zero probes once.
	Wait time.Duration
}

// Provision runs the plan for role against the configured host.
//
// The run stops at the first failed phase; nothing is rolled back. The
// returned error wraps the failing phase's error so callers can inspect it
// with errors.As.
func Provision(ctx context.Context, role plan.Role, opts RunOptions) error {
	if err := loadDotEnv(); err != nil {
		return err
	}
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	planOpts, err := cfg.PlanOptions()
	if err != nil {
		return err
	}
	phases, err := plan.Phases(role, planOpts)
	if err != nil {
		return err
	}

	reporter := report.New(stdout, report.WithVerbose(opts.Verbose), report.WithCommands(opts.DryRun))

	host, closeHost, err := newHost(cfg, opts.DryRun)
	if err != nil {
		return err
	}
	defer func() { _ = closeHost() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !opts.DryRun {
		if role != plan.RoleVerify && cfg.Target.IsLocal() && geteuid() != 0 {
			return ErrNotRoot
		}
		if err := preflight(ctx, host, role, reporter); err != nil {
			return err
		}
		if role != plan.RoleVerify && !opts.Yes && isInteractive() {
			ok, err := confirm(ctx,
				fmt.Sprintf("Provision %s as a Kubernetes %s node?", host.Name(), role),
				fmt.Sprintf("%d phases will modify the host. Nothing is rolled back on failure.", len(phases)))
			if err != nil {
				return fmt.Errorf("confirmation failed: %w", err)
			}
			if !ok {
				return ErrAborted
			}
		}
	}

	var observer provisioning.Observer = report.NewObserver(reporter)
	if opts.Verbose {
		observer = provisioning.MultiObserver{observer, provisioning.NewConsoleObserver(newDiagnosticLogger(true))}
	}

	metrics := provisioning.NewMetrics()
	exec := provisioning.NewExecutor(host,
		provisioning.WithObserver(observer),
		provisioning.WithMetrics(metrics),
		provisioning.WithTimeouts(loadTimeouts()),
	)

	summary, runErr := provisioning.NewSequencer(exec).Run(ctx, role, phases)
	reporter.Summary(summary, planOpts)

	if runErr == nil {
		switch role {
		case plan.RoleMaster:
			publishJoinCommand(ctx, cfg, summary, opts.DryRun, reporter)
		case plan.RoleVerify:
			if !opts.DryRun {
				verifyAPI(ctx, host, cfg, opts.Wait, reporter)
			}
		}
	}

	if opts.MetricsFile != "" {
		if err := metrics.WriteTextfile(opts.MetricsFile); err != nil {
			reporter.Warningf("Failed to write metrics: %v", err)
		}
	}

	return runErr
}

// preflight checks that the host has the programs the plan relies on.
// Missing tools fail master and worker runs; verify only warns.
func preflight(ctx context.Context, host provisioning.Host, role plan.Role, reporter *report.Reporter) error {
	tools := prerequisites.HostTools()
	if role == plan.RoleVerify {
		tools = prerequisites.ClusterTools()
	}

	results := prerequisites.CheckWith(tools, hostLookup(ctx, host))
	for _, t := range results.Missing {
		if !t.Required || role == plan.RoleVerify {
			reporter.Warningf("%s not found on %s: %s", t.Name, host.Name(), t.Description)
		}
	}
	if role != plan.RoleVerify && results.HasErrors() {
		return fmt.Errorf("preflight failed on %s: %w", host.Name(), results.Error())
	}
	return nil
}

// publishJoinCommand uploads the join command when an S3 bucket is
// configured. Failures only warn; the node is already provisioned.
func publishJoinCommand(ctx context.Context, cfg *config.Config, summary *provisioning.Summary, dryRun bool, reporter *report.Reporter) {
	s3cfg := cfg.Artifacts.S3
	join := summary.JoinCommand()
	if !s3cfg.Enabled() || join == "" {
		return
	}
	dest := fmt.Sprintf("s3://%s/%s", s3cfg.Bucket, s3cfg.Key)
	if dryRun {
		reporter.Infof("Would publish the join command to %s", dest)
		return
	}

	publisher, err := newPublisher(ctx, s3cfg)
	if err != nil {
		reporter.Warningf("Failed to create S3 client: %v", err)
		return
	}
	if err := publisher.PublishJoinCommand(ctx, s3cfg.Bucket, s3cfg.Key, join); err != nil {
		reporter.Warningf("Failed to publish join command to %s: %v", dest, err)
		return
	}
	reporter.Successf("Published join command to %s", dest)
}
