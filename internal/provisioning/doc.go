// Package provisioning runs provisioning plans against a target host.
//
// # Core Types
//
// Host is the target host handle: every command of a run is dispatched through
// it, so several hosts can be driven from one process without sharing state.
// Executor runs a single phase with fail-fast semantics and returns a RunResult.
// Sequencer runs a whole plan in order, stops at the first failed phase, and
// returns a Summary.
//
// # Failures
//
// A success-required command that exits non-zero yields *CommandFailedError and
// halts the sequence. A failed artifact extraction yields *ArtifactParseError.
// Best-effort command failures are recorded on the RunResult and never halt.
// Nothing is rolled back.
package provisioning
