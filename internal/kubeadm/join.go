// Package kubeadm holds the small amount of kubeadm-specific knowledge the
// sequencer needs: init arguments and parsing of init output.
package kubeadm

import (
	"errors"
	"strings"
)

// ErrJoinCommandNotFound is returned when kubeadm init output carries no join command.
var ErrJoinCommandNotFound = errors.New("kubeadm join command not found in output")

const (
	joinMarker         = "kubeadm join"
	controlPlaneMarker = "--control-plane"
)

// ExtractJoinCommand returns the worker join command printed by kubeadm init.
//
// Each line containing "kubeadm join" starts a candidate, trimmed and followed
// by its continuation lines: kubeadm wraps the command with a trailing
// backslash, so every line ending in "\" pulls in the next one. Candidates
// carrying --control-plane join further control-plane nodes and are skipped.
func ExtractJoinCommand(output string) (string, error) {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")

	for i := 0; i < len(lines); i++ {
		if !strings.Contains(lines[i], joinMarker) {
			continue
		}
		block := joinBlock(lines[i:])
		if !strings.Contains(block, controlPlaneMarker) {
			return block, nil
		}
	}

	return "", ErrJoinCommandNotFound
}

func joinBlock(lines []string) string {
	var out []string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			break
		}
		out = append(out, line)
		if !strings.HasSuffix(line, `\`) {
			break
		}
	}
	return strings.Join(out, "\n")
}

// JoinCommandOneLine collapses a wrapped join command into a single line.
func JoinCommandOneLine(join string) string {
	var parts []string
	for _, line := range strings.Split(join, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), `\`))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
