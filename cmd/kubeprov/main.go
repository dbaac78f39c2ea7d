// Package main is the entry point for the kubeprov CLI.
//
// kubeprov turns a fresh Ubuntu host into a Kubernetes control-plane or
// worker node with kubeadm, containerd and Calico, and checks the health of
// the resulting cluster. Each run executes an ordered list of phases and
// stops at the first failure.
//
// Commands: master, worker, verify, plan, scan.
//
// For detailed usage information, run:
//
//	kubeprov --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/kubeprov/cmd/kubeprov/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
