// Package report renders operator-facing output: leveled status lines, phase
// headings, live command events and the end-of-run summary.
//
// Writing never fails from the caller's point of view; output errors are
// dropped so reporting can not abort provisioning.
package report
