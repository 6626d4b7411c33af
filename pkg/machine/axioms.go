package machine

import "github.com/gitrdm/mlproofcheck/pkg/pattern"

// Schemas holds the five fixed axiom schemas the interpreter pushes
// for Prop1/Prop2/Prop3/Quantifier/Existence, built once per
// verification run and shared by its three phase Interpreters rather
// than built on every dispatch — mirroring how the original checker builds
// prop1/prop2/prop3/quantifier once before its dispatch loop (see
// SPEC_FULL.md §12.2).
type Schemas struct {
	Prop1      pattern.Pattern
	Prop2      pattern.Pattern
	Prop3      pattern.Pattern
	Quantifier pattern.Pattern
	Existence  pattern.Pattern
}

// NewSchemas builds the canonical schemas from MetaVar 0, 1, 2:
//
//	Prop1:      phi0 -> (phi1 -> phi0)
//	Prop2:      (phi0 -> (phi1 -> phi2)) -> ((phi0 -> phi1) -> (phi0 -> phi2))
//	Prop3:      not(not(phi0)) -> phi0
//	Quantifier: phi0[x1/x0] -> exists x0. phi0
//	Existence:  exists x0. x0
func NewSchemas() Schemas {
	phi0 := pattern.NewMetaVarUnconstrained(0)
	phi1 := pattern.NewMetaVarUnconstrained(1)
	phi2 := pattern.NewMetaVarUnconstrained(2)

	prop1 := pattern.NewImplication(phi0, pattern.NewImplication(phi1, phi0))
	prop2 := pattern.NewImplication(
		pattern.NewImplication(phi0, pattern.NewImplication(phi1, phi2)),
		pattern.NewImplication(
			pattern.NewImplication(phi0, phi1),
			pattern.NewImplication(phi0, phi2),
		),
	)
	prop3 := pattern.NewImplication(pattern.Not(pattern.Not(phi0)), phi0)
	quantifier := pattern.NewImplication(
		pattern.NewESubstUnchecked(phi0, 0, pattern.EVar(1)),
		pattern.NewExists(0, phi0),
	)

	existence := pattern.NewExists(0, pattern.EVar(0))

	return Schemas{Prop1: prop1, Prop2: prop2, Prop3: prop3, Quantifier: quantifier, Existence: existence}
}
