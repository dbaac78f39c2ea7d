// Package scan maps k8s-security-scan style arguments onto kubeaudit
// invocations so the same checks can be driven from kubeprov against any
// target host.
package scan

import (
	"path"

	"github.com/MakeNowJust/heredoc"

	"github.com/imamik/kubeprov/internal/platform/shell"
)

// Mode selects what kubeaudit inspects.
type Mode string

const (
	ModeCluster  Mode = "cluster"
	ModeManifest Mode = "manifest"
	ModeAutofix  Mode = "autofix"
)

// FixedPrefix is prepended to the file name of an autofixed manifest.
const FixedPrefix = "fixed-"

// Action is a parsed scan request.
type Action struct {
	Mode Mode
	Path string // manifest path; empty for ModeCluster
}

// Usage is printed when the arguments are not recognized.
var Usage = heredoc.Doc(`
	Usage:
	  kubeprov scan cluster                 # Scan running cluster
	  kubeprov scan manifest <file.yml>     # Scan manifest file
	  kubeprov scan autofix <file.yml>      # Auto-fix manifest file
`)

// Parse interprets wrapper arguments. ok is false when the arguments match no
// subcommand; callers print Usage and treat that as a successful no-op.
func Parse(args []string) (Action, bool) {
	if len(args) == 0 {
		return Action{}, false
	}

	switch Mode(args[0]) {
	case ModeCluster:
		return Action{Mode: ModeCluster}, true
	case ModeManifest, ModeAutofix:
		if len(args) < 2 || args[1] == "" {
			return Action{}, false
		}
		return Action{Mode: Mode(args[0]), Path: args[1]}, true
	default:
		return Action{}, false
	}
}

// FixedPath returns the output path of an autofix run: the input file's
// directory with the file name prefixed by FixedPrefix.
func FixedPath(manifest string) string {
	dir, file := path.Split(manifest)
	return dir + FixedPrefix + file
}

// Request returns the kubeaudit invocation for the action.
func (a Action) Request(kubeconfig string) shell.Request {
	req := shell.Request{Program: "kubeaudit"}
	switch a.Mode {
	case ModeCluster:
		req.Args = []string{"all"}
		if kubeconfig != "" {
			req.Args = append(req.Args, "--kubeconfig", kubeconfig)
		}
	case ModeManifest:
		req.Args = []string{"all", "-f", a.Path}
	case ModeAutofix:
		req.Args = []string{"autofix", "-f", a.Path, "-o", FixedPath(a.Path)}
	}
	return req
}

// Describe returns the progress message printed before the scan runs.
func (a Action) Describe() string {
	switch a.Mode {
	case ModeCluster:
		return "Scanning entire cluster..."
	case ModeManifest:
		return "Scanning manifest file: " + a.Path
	case ModeAutofix:
		return "Auto-fixing manifest file: " + a.Path
	}
	return ""
}
