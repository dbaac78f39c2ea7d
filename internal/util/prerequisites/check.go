// Package prerequisites checks that the programs a run depends on exist
// before any command mutates the host.
package prerequisites

import (
	"fmt"
	"strings"
)

// Tool represents a program that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// Package names the Debian package providing the tool.
	Package string
}

// LookupFunc resolves a program name to its path.
type LookupFunc func(name string) (string, error)

// HostTools returns the programs a fresh node must already have for
// master and worker runs. Everything else is installed by the run itself.
func HostTools() []Tool {
	return []Tool{
		{Name: "apt-get", Required: true, Description: "Installs packages", Package: "apt"},
		{Name: "systemctl", Required: true, Description: "Manages containerd and kubelet", Package: "systemd"},
		{Name: "modprobe", Required: true, Description: "Loads overlay and br_netfilter", Package: "kmod"},
		{Name: "sysctl", Required: true, Description: "Applies bridge and forwarding settings", Package: "procps"},
		{Name: "swapoff", Required: true, Description: "Disables swap", Package: "util-linux"},
		{Name: "hostnamectl", Required: true, Description: "Sets the node hostname", Package: "systemd"},
		{Name: "sed", Required: true, Description: "Edits fstab and containerd config", Package: "sed"},
		{Name: "tar", Required: true, Description: "Unpacks release archives", Package: "tar"},
		{Name: "tee", Required: true, Description: "Writes configuration files", Package: "coreutils"},
		{Name: "gpg", Required: true, Description: "Dearmors the repository key", Package: "gnupg"},
	}
}

// ClusterTools returns the programs needed by verify runs.
func ClusterTools() []Tool {
	return []Tool{
		{Name: "kubectl", Required: true, Description: "Queries cluster state", Package: "kubectl"},
		{Name: "kubeaudit", Required: false, Description: "Reports its version during verification"},
	}
}

// ScanTools returns the programs needed by security scans.
func ScanTools() []Tool {
	return []Tool{
		{Name: "kubeaudit", Required: true, Description: "Audits cluster and manifests", Package: "installed by 'kubeprov master'"},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if !tool.Required {
			continue
		}
		if tool.Package != "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.Package))
		} else {
			missing = append(missing, tool.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// CheckWith verifies tool availability through lookup, which may query a
// remote host.
func CheckWith(tools []Tool, lookup LookupFunc) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookup(tool.Name)
		if err == nil && path != "" {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}
