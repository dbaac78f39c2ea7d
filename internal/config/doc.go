// Package config defines the kubeprov configuration model.
//
// A [Config] is read from kubeprov.yaml, overlaid with environment
// variables for anything secret, validated, and converted to plan options.
// The file is optional: the defaults reproduce the reference single-node
// setup on the local host. Timeouts and retry tuning come from the
// environment only, see [LoadTimeouts].
package config
