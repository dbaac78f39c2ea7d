package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/imamik/kubeprov/internal/report"
	"github.com/imamik/kubeprov/internal/scan"
	"github.com/imamik/kubeprov/internal/util/prerequisites"
)

// ScanOptions holds the flags of the scan command.
type ScanOptions struct {
	ConfigPath string
	DryRun     bool
}

// Scan runs kubeaudit on the configured host. Unrecognized arguments print
// the usage text and succeed.
func Scan(ctx context.Context, args []string, opts ScanOptions) error {
	action, ok := scan.Parse(args)
	if !ok {
		_, err := io.WriteString(stdout, scan.Usage)
		return err
	}

	if err := loadDotEnv(); err != nil {
		return err
	}
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	reporter := report.New(stdout, report.WithCommands(opts.DryRun))

	host, closeHost, err := newHost(cfg, opts.DryRun)
	if err != nil {
		return err
	}
	defer func() { _ = closeHost() }()

	if !opts.DryRun {
		results := prerequisites.CheckWith(prerequisites.ScanTools(), hostLookup(ctx, host))
		if results.HasErrors() {
			return fmt.Errorf("preflight failed on %s: %w", host.Name(), results.Error())
		}
	}

	req := action.Request(cfg.Cluster.AdminKubeconfig)
	reporter.Infof("%s", action.Describe())
	if opts.DryRun {
		reporter.Output("$ " + req.String())
	}

	resp, err := host.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("kubeaudit on %s: %w", host.Name(), err)
	}
	if out := strings.TrimRight(resp.Output, "\n"); out != "" {
		reporter.Println(out)
	}
	if !resp.Succeeded() {
		return fmt.Errorf("kubeaudit exited with status %d", resp.ExitCode)
	}
	if action.Mode == scan.ModeAutofix {
		reporter.Successf("Fixed manifest written to %s", scan.FixedPath(action.Path))
	}
	return nil
}
