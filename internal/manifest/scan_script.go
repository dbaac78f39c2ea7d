package manifest

import "github.com/MakeNowJust/heredoc"

// SecurityScanPath is where the scanner wrapper is installed on the host.
const SecurityScanPath = "/usr/local/bin/k8s-security-scan"

// SecurityScanScript returns the k8s-security-scan wrapper.
//
// Subcommands: "cluster" scans the running cluster, "manifest <file>" scans a
// file, "autofix <file>" writes a remediated copy named fixed-<file>. Anything
// else prints usage and exits 0.
func SecurityScanScript() []byte {
	return []byte(heredoc.Doc(`
		#!/bin/bash
		echo "Kubernetes Security Scanning with kubeaudit"
		echo "==========================================="

		if [ "$1" = "cluster" ]; then
		    echo "Scanning entire cluster..."
		    kubeaudit all
		elif [ "$1" = "manifest" ] && [ -n "$2" ]; then
		    echo "Scanning manifest file: $2"
		    kubeaudit all -f "$2"
		elif [ "$1" = "autofix" ] && [ -n "$2" ]; then
		    echo "Auto-fixing manifest file: $2"
		    fixed="$(dirname "$2")/fixed-$(basename "$2")"
		    kubeaudit autofix -f "$2" -o "$fixed"
		    echo "Fixed file created: $fixed"
		else
		    echo "Usage:"
		    echo "  k8s-security-scan cluster                 # Scan running cluster"
		    echo "  k8s-security-scan manifest <file.yml>     # Scan manifest file"
		    echo "  k8s-security-scan autofix <file.yml>      # Auto-fix manifest file"
		fi
	`))
}
