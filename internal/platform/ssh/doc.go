// Package ssh runs provisioning commands on a remote host over SSH.
//
// One connection is established lazily, with retries, and reused for every
// command of a run. Each command gets its own session; stdin is streamed
// and environment variables are rendered into the command line since most
// sshd configurations reject SetEnv.
package ssh
