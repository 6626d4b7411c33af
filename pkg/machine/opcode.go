package machine

import "github.com/gitrdm/mlproofcheck/pkg/verrors"

// Opcode is a single wire instruction byte, spec §6.
type Opcode uint8

const (
	OpEVar               Opcode = 2
	OpSVar               Opcode = 3
	OpSymbol             Opcode = 4
	OpImplication        Opcode = 5
	OpApplication        Opcode = 6
	OpMu                 Opcode = 7
	OpExists             Opcode = 8
	OpMetaVar            Opcode = 9
	OpESubst             Opcode = 10
	OpSSubst             Opcode = 11
	OpProp1              Opcode = 12
	OpProp2              Opcode = 13
	OpProp3              Opcode = 14
	OpQuantifier         Opcode = 15
	OpPropagationOr      Opcode = 16
	OpPropagationExists  Opcode = 17
	OpPreFixpoint        Opcode = 18
	OpExistence          Opcode = 19
	OpSingleton          Opcode = 20
	OpModusPonens        Opcode = 21
	OpGeneralization     Opcode = 22
	OpFrame              Opcode = 23
	OpSubstitution       Opcode = 24
	OpKnasterTarski      Opcode = 25
	OpInstantiate        Opcode = 26
	OpPop                Opcode = 27
	OpSave               Opcode = 28
	OpLoad               Opcode = 29
	OpPublish            Opcode = 30
)

// reservedOpcodes are decoded but reject execution (spec §4.5's
// "Others" row, §9 open question 3). Existence has concrete defined
// semantics in spec §4.5 and is NOT reserved, despite §6's byte-range
// table grouping it with the reserved opcodes 16-20; §4.5's per-opcode
// dispatch table is authoritative.
var reservedOpcodes = map[Opcode]bool{
	OpPropagationOr:     true,
	OpPropagationExists: true,
	OpPreFixpoint:       true,
	OpSingleton:         true,
	OpFrame:             true,
	OpKnasterTarski:     true,
}

// decodeOpcode maps a wire byte to an Opcode, aborting with
// UnknownOpcode for bytes 0, 1, and anything above 30.
func decodeOpcode(b byte, phase verrors.Phase, offset int) (Opcode, error) {
	op := Opcode(b)
	switch op {
	case OpEVar, OpSVar, OpSymbol, OpImplication, OpApplication, OpMu, OpExists,
		OpMetaVar, OpESubst, OpSSubst,
		OpProp1, OpProp2, OpProp3, OpQuantifier,
		OpPropagationOr, OpPropagationExists, OpPreFixpoint, OpExistence, OpSingleton,
		OpModusPonens, OpGeneralization, OpFrame, OpSubstitution, OpKnasterTarski,
		OpInstantiate, OpPop, OpSave, OpLoad, OpPublish:
		return op, nil
	default:
		return 0, verrors.Newf(verrors.UnknownOpcode, phase, offset, "unknown opcode byte %d", b)
	}
}
