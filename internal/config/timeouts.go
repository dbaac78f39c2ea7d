package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the command execution budget and retry tuning.
// These values can be customized via environment variables.
type Timeouts struct {
	Command           time.Duration // Per-command timeout
	Network           time.Duration // Per-command timeout for downloads and repository access
	RetryMaxAttempts  int           // Total attempts for network commands, first one included
	RetryInitialDelay time.Duration // Delay before the first retry
	RetryMaxDelay     time.Duration // Cap for exponential backoff
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - KUBEPROV_TIMEOUT_COMMAND (default: 15m)
//   - KUBEPROV_TIMEOUT_NETWORK (default: 10m)
//   - KUBEPROV_RETRY_MAX_ATTEMPTS (default: 3)
//   - KUBEPROV_RETRY_INITIAL_DELAY (default: 2s)
//   - KUBEPROV_RETRY_MAX_DELAY (default: 30s)
func LoadTimeouts() *Timeouts {
	t := &Timeouts{
		Command:           parseDuration("KUBEPROV_TIMEOUT_COMMAND", 15*time.Minute),
		Network:           parseDuration("KUBEPROV_TIMEOUT_NETWORK", 10*time.Minute),
		RetryMaxAttempts:  parseInt("KUBEPROV_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("KUBEPROV_RETRY_INITIAL_DELAY", 2*time.Second),
		RetryMaxDelay:     parseDuration("KUBEPROV_RETRY_MAX_DELAY", 30*time.Second),
	}
	if t.RetryMaxAttempts < 1 {
		t.RetryMaxAttempts = 1
	}
	return t
}

// DefaultTimeouts returns the built-in values, ignoring the environment.
func DefaultTimeouts() *Timeouts {
	return &Timeouts{
		Command:           15 * time.Minute,
		Network:           10 * time.Minute,
		RetryMaxAttempts:  3,
		RetryInitialDelay: 2 * time.Second,
		RetryMaxDelay:     30 * time.Second,
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set, invalid or not positive, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
