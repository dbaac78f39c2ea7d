// Package shell defines the process invocation contract shared by all target
// host implementations (local, SSH, dry-run).
package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Request is a single process invocation on a target host.
type Request struct {
	Program string
	Args    []string

	// Stdin is fed to the process when non-nil.
	Stdin []byte

	// Env is added to the host's environment for this invocation only.
	Env map[string]string
}

// Response is the outcome of a process that ran to completion.
type Response struct {
	ExitCode int
	Output   string // combined stdout and stderr
}

// Succeeded reports whether the process exited with status 0.
func (r Response) Succeeded() bool {
	return r.ExitCode == 0
}

// CommandLine renders the request as a single POSIX shell command line.
// Environment entries are prefixed through env(1) in sorted order so the
// rendering is stable.
func (r Request) CommandLine() string {
	words := make([]string, 0, len(r.Env)+len(r.Args)+2)
	if len(r.Env) > 0 {
		words = append(words, "env")
		for _, k := range sortedKeys(r.Env) {
			words = append(words, fmt.Sprintf("%s=%s", k, r.Env[k]))
		}
	}
	words = append(words, r.Program)
	words = append(words, r.Args...)
	return shellquote.Join(words...)
}

// EnvList returns Env as KEY=VALUE pairs in sorted order.
func (r Request) EnvList() []string {
	out := make([]string, 0, len(r.Env))
	for _, k := range sortedKeys(r.Env) {
		out = append(out, k+"="+r.Env[k])
	}
	return out
}

func (r Request) String() string {
	line := r.CommandLine()
	if len(r.Stdin) > 0 {
		line += fmt.Sprintf(" <<< (%d bytes)", len(r.Stdin))
	}
	return line
}

// LastLines returns at most n trailing non-empty lines of output.
func LastLines(output string, n int) string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) <= n {
		return strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return strings.TrimSpace(strings.Join(lines[len(lines)-n:], "\n"))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
