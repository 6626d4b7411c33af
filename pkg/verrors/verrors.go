// Package verrors defines the closed set of error kinds the engine can
// raise (spec §7) and the helpers for attaching instruction-level
// context to them with github.com/pkg/errors, the wrapping library
// vmware-tanzu/sonobuoy reaches for throughout its CLI and aggregation
// code.
//
// Every error raised by pkg/machine is fatal: there is no recovery
// path inside the core (spec §7), so this package only needs to make
// failures diagnosable, not resumable.
package verrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is one of the abstract error kinds of spec §7.
type Kind string

const (
	StackUnderflow                Kind = "stack_underflow"
	TagMismatch                   Kind = "tag_mismatch"
	UnknownOpcode                 Kind = "unknown_opcode"
	TruncatedStream               Kind = "truncated_stream"
	IllFormedConstruction         Kind = "ill_formed_construction"
	InstantiationConstraintBroken Kind = "instantiation_constraint_broken"
	ModusPonensMismatch           Kind = "modus_ponens_mismatch"
	GeneralizationNotFresh        Kind = "generalization_not_fresh"
	ClaimMismatch                 Kind = "claim_mismatch"
	UndischargedClaims            Kind = "undischarged_claims"
	MemoryOutOfRange              Kind = "memory_out_of_range"
	ReservedOpcode                Kind = "reserved_opcode"
)

// Phase identifies which of the three interpreter invocations raised
// the error.
type Phase string

const (
	PhaseTheory Phase = "theory"
	PhaseClaim  Phase = "claim"
	PhaseProof  Phase = "proof"
)

// CheckError is a hard-abort diagnostic: the kind of precondition that
// failed, the phase it failed in, and the 0-based instruction offset
// (counted in opcodes dispatched within that phase, not raw bytes)
// that triggered it.
type CheckError struct {
	Kind   Kind
	Phase  Phase
	Offset int
	cause  error
}

func (e *CheckError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: phase=%s instruction=%d: %v", e.Kind, e.Phase, e.Offset, e.cause)
	}
	return fmt.Sprintf("%s: phase=%s instruction=%d", e.Kind, e.Phase, e.Offset)
}

// Unwrap lets errors.Is/errors.As see through to the underlying cause.
func (e *CheckError) Unwrap() error { return e.cause }

// Is reports whether target is a *CheckError with the same Kind,
// letting callers write errors.Is(err, verrors.New(verrors.ClaimMismatch, ...))-
// style comparisons against a zero-valued sentinel, or more simply
// errors.As to recover the Kind.
func (e *CheckError) Is(target error) bool {
	t, ok := target.(*CheckError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds a CheckError for phase/offset with no wrapped cause.
func New(kind Kind, phase Phase, offset int) *CheckError {
	return &CheckError{Kind: kind, Phase: phase, Offset: offset}
}

// Wrap builds a CheckError wrapping cause with additional context via
// errors.Wrapf, preserving cause's message in the error chain.
func Wrap(cause error, kind Kind, phase Phase, offset int, format string, args ...interface{}) *CheckError {
	return &CheckError{
		Kind:   kind,
		Phase:  phase,
		Offset: offset,
		cause:  errors.Wrapf(cause, format, args...),
	}
}

// Newf builds a CheckError whose cause is a freshly formatted message,
// for failures that have no underlying Go error to wrap.
func Newf(kind Kind, phase Phase, offset int, format string, args ...interface{}) *CheckError {
	return &CheckError{
		Kind:   kind,
		Phase:  phase,
		Offset: offset,
		cause:  errors.Errorf(format, args...),
	}
}
