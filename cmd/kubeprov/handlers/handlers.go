// Package handlers implements the business logic behind the CLI commands.
//
// Each handler loads configuration, opens the target host and drives the
// provisioning packages. Collaborators are held in package variables so
// tests can substitute fakes.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/imamik/kubeprov/internal/config"
	"github.com/imamik/kubeprov/internal/platform/dryrun"
	"github.com/imamik/kubeprov/internal/platform/local"
	"github.com/imamik/kubeprov/internal/platform/s3"
	"github.com/imamik/kubeprov/internal/platform/shell"
	"github.com/imamik/kubeprov/internal/platform/ssh"
	"github.com/imamik/kubeprov/internal/provisioning"
)

var (
	// ErrAborted is returned when the operator declines the confirmation prompt.
	ErrAborted = errors.New("aborted by operator")

	// ErrNotRoot is returned when a local run lacks root privileges.
	ErrNotRoot = errors.New("provisioning the local host requires root privileges (run with sudo)")
)

// joinPublisher uploads the join command for other nodes to fetch.
type joinPublisher interface {
	PublishJoinCommand(ctx context.Context, bucket, key, joinCommand string) error
}

// Factory function variables - can be replaced in tests.
var (
	loadDotEnv = func() error { return config.LoadDotEnv() }

	loadConfig = config.Load

	loadTimeouts = config.LoadTimeouts

	// newHost opens the target host. The returned func releases it.
	newHost = openHost

	newPublisher = func(ctx context.Context, cfg config.S3) (joinPublisher, error) {
		return s3.NewClient(ctx, s3.Options{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	}

	probeCluster = probeHealth

	confirm = confirmPrompt

	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
	}

	geteuid = os.Geteuid

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func openHost(cfg *config.Config, dryRun bool) (provisioning.Host, func() error, error) {
	nop := func() error { return nil }

	if dryRun {
		target := cfg.Target.Host
		if cfg.Target.IsLocal() {
			target = "localhost"
		}
		return dryrun.New(target), nop, nil
	}

	if cfg.Target.IsLocal() {
		return local.New(), nop, nil
	}

	key, err := os.ReadFile(cfg.Target.PrivateKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read SSH private key: %w", err)
	}
	client, err := ssh.NewClient(&ssh.Config{
		Host:       cfg.Target.Host,
		Port:       cfg.Target.Port,
		User:       cfg.Target.User,
		PrivateKey: key,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create SSH client: %w", err)
	}
	return client, client.Close, nil
}

func confirmPrompt(ctx context.Context, title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// hostLookup resolves programs with `command -v` on the host.
func hostLookup(ctx context.Context, host provisioning.Host) func(string) (string, error) {
	return func(name string) (string, error) {
		resp, err := host.Run(ctx, shell.Request{Program: "sh", Args: []string{"-c", "command -v " + name}})
		if err != nil {
			return "", err
		}
		if !resp.Succeeded() {
			return "", fmt.Errorf("%s not found on %s", name, host.Name())
		}
		if p := strings.TrimSpace(resp.Output); p != "" {
			return p, nil
		}
		return name, nil
	}
}

func newDiagnosticLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
