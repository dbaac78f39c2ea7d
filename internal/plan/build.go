package plan

import (
	"path"
)

// aptEnv keeps apt from prompting on a non-interactive session.
var aptEnv = map[string]string{"DEBIAN_FRONTEND": "noninteractive"}

func run(description, program string, args ...string) Command {
	return Command{
		Description: description,
		Program:     program,
		Args:        args,
	}
}

// script runs a snippet through sh -c. Used only where a pipe or redirection
// is part of the step.
func script(description, snippet string) Command {
	return run(description, "sh", "-c", snippet)
}

// writeFile replaces path with content on the target host.
func writeFile(description, dest string, content []byte) Command {
	c := run(description, "tee", dest)
	c.Stdin = content
	return c
}

// download fetches url into dir and returns the command and the local path.
func download(description, url, dir string) (Command, string) {
	dest := path.Join(dir, path.Base(url))
	return run(description, "wget", "-q", "-O", dest, url).network(), dest
}

func (c Command) network() Command {
	c.Retry = RetryNetwork
	return c
}

func (c Command) bestEffort() Command {
	c.Policy = BestEffort
	return c
}

func (c Command) withEnv(env map[string]string) Command {
	c.Env = env
	return c
}

func (c Command) withArtifacts(artifacts ...Artifact) Command {
	c.Artifacts = append(c.Artifacts, artifacts...)
	return c
}
