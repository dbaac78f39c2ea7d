// Package plan declares the provisioning plan for each node role as data.
//
// A plan is an ordered list of [Phase] values, each holding the [Command]
// values to run on the target host. Nothing here executes anything: the
// provisioning package consumes plans, and the same plan can be listed,
// validated, or dry-run without side effects.
//
// # Roles
//
//   - master: system preparation, container runtime, Kubernetes packages,
//     cluster initialization, security scanner, helper artifacts, verification
//   - worker: the first three master phases; joining is left to the operator
//   - verify: best-effort health queries against an existing control plane
package plan
