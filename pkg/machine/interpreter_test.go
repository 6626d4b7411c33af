package machine

import (
	"testing"

	"github.com/gitrdm/mlproofcheck/pkg/bytesource"
	"github.com/gitrdm/mlproofcheck/pkg/pattern"
	"github.com/gitrdm/mlproofcheck/pkg/verrors"
	"github.com/stretchr/testify/require"
)

// runPhases wires the three-phase orchestration directly against the
// machine package, mirroring pkg/verifier.Verify without importing it
// (pkg/verifier imports pkg/machine, so a test-time import the other
// way would cycle).
func runPhases(t *testing.T, theory, claims, proof []byte) (*Interpreter, Axioms, error) {
	t.Helper()
	schemas := NewSchemas()

	var axioms Axioms
	theoryInterp := NewInterpreter(RoleTheory, bytesource.FromBytes(theory), nil, &axioms, nil, schemas, nil)
	if err := theoryInterp.Run(); err != nil {
		return nil, nil, err
	}

	var claimQueue Claims
	claimInterp := NewInterpreter(RoleClaim, bytesource.FromBytes(claims), nil, nil, &claimQueue, schemas, nil)
	if err := claimInterp.Run(); err != nil {
		return nil, nil, err
	}

	proofMemory := make(Memory, len(axioms))
	copy(proofMemory, axioms)
	proofInterp := NewInterpreter(RoleProof, bytesource.FromBytes(proof), proofMemory, &axioms, &claimQueue, schemas, nil)
	err := proofInterp.Run()
	return proofInterp, axioms, err
}

func metaVar0Bytes(id byte) []byte {
	return []byte{byte(OpMetaVar), id, 0, 0, 0, 0, 0}
}

// TestScenario_IdentityRoundTrip builds the claim phi0 -> phi0 and
// discharges it via Prop1/Prop2/Instantiate/ModusPonens, the way
// original_source/checker's test_phi_implies_phi_impl derives it, now
// routed through a published claim rather than a bare stack check.
func TestScenario_IdentityRoundTrip(t *testing.T) {
	var claimBytes []byte
	claimBytes = append(claimBytes, metaVar0Bytes(0)...)
	claimBytes = append(claimBytes, byte(OpSave))
	claimBytes = append(claimBytes, byte(OpLoad), 0)
	claimBytes = append(claimBytes, byte(OpImplication))
	claimBytes = append(claimBytes, byte(OpPublish))

	var proofBytes []byte
	proofBytes = append(proofBytes, byte(OpProp1))
	proofBytes = append(proofBytes, metaVar0Bytes(0)...)
	proofBytes = append(proofBytes, byte(OpSave))
	proofBytes = append(proofBytes, byte(OpInstantiate), 1, 1)
	proofBytes = append(proofBytes, byte(OpProp1))
	proofBytes = append(proofBytes, byte(OpLoad), 0)
	proofBytes = append(proofBytes, byte(OpLoad), 0)
	proofBytes = append(proofBytes, byte(OpImplication))
	proofBytes = append(proofBytes, byte(OpSave))
	proofBytes = append(proofBytes, byte(OpInstantiate), 1, 1)
	proofBytes = append(proofBytes, byte(OpProp2))
	proofBytes = append(proofBytes, byte(OpLoad), 1)
	proofBytes = append(proofBytes, byte(OpInstantiate), 1, 1)
	proofBytes = append(proofBytes, byte(OpLoad), 0)
	proofBytes = append(proofBytes, byte(OpInstantiate), 1, 2)
	proofBytes = append(proofBytes, byte(OpModusPonens))
	proofBytes = append(proofBytes, byte(OpModusPonens))
	proofBytes = append(proofBytes, byte(OpPublish))

	interp, _, err := runPhases(t, nil, claimBytes, proofBytes)
	require.NoError(t, err)
	require.Empty(t, interp.Stack())
}

// TestScenario_ModusPonensMismatch publishes two unrelated axioms and
// tries to apply one as the rule against the other as antecedent.
func TestScenario_ModusPonensMismatch(t *testing.T) {
	theoryBytes := []byte{
		byte(OpSymbol), 0,
		byte(OpSymbol), 1,
		byte(OpImplication),
		byte(OpPublish),
		byte(OpSymbol), 2,
		byte(OpPublish),
	}
	proofBytes := []byte{
		byte(OpLoad), 0,
		byte(OpLoad), 1,
		byte(OpModusPonens),
	}
	_, _, err := runPhases(t, theoryBytes, nil, proofBytes)
	require.Error(t, err)
	var ce *verrors.CheckError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, verrors.ModusPonensMismatch, ce.Kind)
}

// TestScenario_GeneralizationNotFresh proves Symbol0 -> EVar0 as an
// axiom, then tries to generalize over EVar0, which occurs free in the
// conclusion.
func TestScenario_GeneralizationNotFresh(t *testing.T) {
	theoryBytes := []byte{
		byte(OpSymbol), 0,
		byte(OpEVar), 0,
		byte(OpImplication),
		byte(OpPublish),
	}
	proofBytes := []byte{
		byte(OpLoad), 0,
		byte(OpGeneralization),
	}
	_, _, err := runPhases(t, theoryBytes, nil, proofBytes)
	require.Error(t, err)
	var ce *verrors.CheckError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, verrors.GeneralizationNotFresh, ce.Kind)
}

// TestScenario_AxiomReuseDischarge publishes Symbol(5) both as the
// sole theory axiom and the sole claim, then discharges the claim by
// loading the axiom straight out of the proof phase's seeded memory.
func TestScenario_AxiomReuseDischarge(t *testing.T) {
	theoryBytes := []byte{byte(OpSymbol), 5, byte(OpPublish)}
	claimBytes := []byte{byte(OpSymbol), 5, byte(OpPublish)}
	proofBytes := []byte{byte(OpLoad), 0, byte(OpPublish)}

	interp, axioms, err := runPhases(t, theoryBytes, claimBytes, proofBytes)
	require.NoError(t, err)
	require.Len(t, axioms, 1)
	require.Empty(t, interp.Stack())
}

// TestScenario_UndischargedClaim publishes a claim the proof phase
// never addresses; Run must reject the dangling queue.
func TestScenario_UndischargedClaim(t *testing.T) {
	claimBytes := []byte{byte(OpSymbol), 7, byte(OpPublish)}
	_, _, err := runPhases(t, nil, claimBytes, nil)
	require.Error(t, err)
	var ce *verrors.CheckError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, verrors.UndischargedClaims, ce.Kind)
}

func TestDecodeOpcode_UnknownByte(t *testing.T) {
	_, err := decodeOpcode(1, verrors.PhaseProof, 0)
	require.Error(t, err)
	var ce *verrors.CheckError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, verrors.UnknownOpcode, ce.Kind)
}

func TestRun_ReservedOpcodeAborts(t *testing.T) {
	interp := NewInterpreter(RoleProof, bytesource.FromBytes([]byte{byte(OpFrame)}), nil, nil, new(Claims), NewSchemas(), nil)
	err := interp.Run()
	require.Error(t, err)
	var ce *verrors.CheckError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, verrors.ReservedOpcode, ce.Kind)
}

func TestStack_UnderflowOnPop(t *testing.T) {
	interp := NewInterpreter(RoleProof, bytesource.FromBytes([]byte{byte(OpPop)}), nil, nil, new(Claims), NewSchemas(), nil)
	err := interp.Run()
	require.Error(t, err)
	var ce *verrors.CheckError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, verrors.StackUnderflow, ce.Kind)
}

func TestExistence_PushesExistsEVar0(t *testing.T) {
	interp := NewInterpreter(RoleProof, bytesource.FromBytes([]byte{byte(OpExistence)}), nil, nil, new(Claims), NewSchemas(), nil)
	require.NoError(t, interp.Run())
	stack := interp.Stack()
	require.Len(t, stack, 1)
	require.Equal(t, TagProved, stack[0].Tag)
	require.True(t, pattern.Equal(pattern.NewExists(0, pattern.EVar(0)), stack[0].Pattern))
}

// TestMu_RejectsNonPositiveBinder builds mu X0. (X0 -> bot) on the
// wire, where X0 occurs negatively in its own body, and checks the
// interpreter rejects the construction.
func TestMu_RejectsNonPositiveBinder(t *testing.T) {
	proofBytes := []byte{
		byte(OpSVar), 0, // left operand of the coming Implication (the "not"'s argument)
		byte(OpSVar), 0, // Bot's inner SVar
		byte(OpMu), 0, // Bot = mu X0. X0
		byte(OpImplication), // X0 -> Bot  (not X0)
		byte(OpMu), 0, // mu X0. (X0 -> Bot): X0 occurs negatively
	}
	interp := NewInterpreter(RoleProof, bytesource.FromBytes(proofBytes), nil, nil, new(Claims), NewSchemas(), nil)
	err := interp.Run()
	require.Error(t, err)
	var ce *verrors.CheckError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, verrors.IllFormedConstruction, ce.Kind)
}
