// Package retry provides exponential backoff retry logic for transient failures.
//
// The [Do] function retries an operation with configurable max attempts,
// initial delay, and maximum delay. It is used for commands that fetch from
// the network (package mirrors, release downloads, manifests) and for SSH
// connection establishment while a target host is still booting.
package retry
