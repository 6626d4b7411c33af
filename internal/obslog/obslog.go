// Package obslog wraps github.com/hashicorp/go-hclog the way
// hashicorp/nomad wires it through its subsystems: a small
// constructor that defaults to a no-op sink so library callers pay
// nothing unless they opt in, plus a helper that derives a per-phase
// named sub-logger.
package obslog

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// Logger is hclog.Logger itself. Keeping this as a type alias (not a fresh interface) lets callers pass any
// hclog.Logger straight through, including one already configured
// with their own sinks and levels.
type Logger = hclog.Logger

// Null returns a logger that discards everything, the default for
// verifier.Options when the caller supplies none.
func Null() Logger {
	return hclog.NewNullLogger()
}

// New builds a leveled logger named "mlproofcheck" writing to stderr,
// for CLI use.
func New(level hclog.Level) Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "mlproofcheck",
		Level:  level,
		Output: os.Stderr,
	})
}

// Phase returns a sub-logger scoped to one interpreter phase, mirroring
// how nomad derives per-subsystem loggers via logger.Named/With.
func Phase(l Logger, phase string) Logger {
	return l.Named(phase)
}
