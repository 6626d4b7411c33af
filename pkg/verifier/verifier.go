// Package verifier is the orchestrator: it runs the three
// phase-scoped interpreter invocations (Γ, Claim, Proof) in order with
// correctly seeded state (spec §4.5's "Three-phase orchestration").
package verifier

import (
	"github.com/gitrdm/mlproofcheck/internal/obslog"
	"github.com/gitrdm/mlproofcheck/pkg/bytesource"
	"github.com/gitrdm/mlproofcheck/pkg/machine"
)

// Options configures a Verify call. The zero value is valid: Logger
// nil means obslog.Null().
type Options struct {
	Logger obslog.Logger
}

// Result carries the final state of the proof phase, for callers that
// want to inspect what was proved. The CLI does not use it.
type Result struct {
	Stack  machine.Stack
	Axioms machine.Axioms
}

// Verify runs the theory, claim, and proof streams through the
// interpreter in order and reports whether the proof discharges every
// published claim. A non-nil error is a hard abort identifying the
// offending instruction and precondition (spec §7); there is no
// partial-success result.
func Verify(theory, claims, proof bytesource.NextFunc, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = obslog.Null()
	}
	schemas := machine.NewSchemas()

	var axioms machine.Axioms
	theoryInterp := machine.NewInterpreter(machine.RoleTheory, theory, nil, &axioms, nil, schemas, log)
	if err := theoryInterp.Run(); err != nil {
		return Result{}, err
	}

	var claimQueue machine.Claims
	claimInterp := machine.NewInterpreter(machine.RoleClaim, claims, nil, nil, &claimQueue, schemas, log)
	if err := claimInterp.Run(); err != nil {
		return Result{}, err
	}

	proofMemory := make(machine.Memory, len(axioms))
	copy(proofMemory, axioms)
	proofInterp := machine.NewInterpreter(machine.RoleProof, proof, proofMemory, &axioms, &claimQueue, schemas, log)
	if err := proofInterp.Run(); err != nil {
		return Result{}, err
	}

	return Result{Stack: proofInterp.Stack(), Axioms: axioms}, nil
}
