package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEFresh_Exists(t *testing.T) {
	e1 := EVar(1)
	left := NewExists(1, e1)
	require.True(t, EFresh(left, 1))

	right := NewExists(2, e1)
	require.False(t, EFresh(right, 1))

	implication := NewImplication(left, right)
	require.False(t, EFresh(implication, 1))
}

func TestSFresh_Mu(t *testing.T) {
	s1 := SVar(1)
	left := NewMuUnchecked(1, s1)
	require.True(t, SFresh(left, 1))

	right := NewMuUnchecked(2, s1)
	require.False(t, SFresh(right, 1))

	implication := NewImplication(left, right)
	require.False(t, SFresh(implication, 1))
}

// P1: apply_esubst/apply_ssubst on a concrete head substitutes children
// without changing the outer constructor.
func TestApplyESubst_ConcreteHeadEagerness(t *testing.T) {
	p := NewImplication(EVar(0), EVar(1))
	got := ApplyESubst(p, 0, Symbol(9))
	want := NewImplication(Symbol(9), EVar(1))
	require.True(t, Equal(got, want))
}

func TestApplySSubst_ConcreteHeadEagerness(t *testing.T) {
	p := NewApplication(SVar(0), SVar(1))
	got := ApplySSubst(p, 0, Symbol(9))
	want := NewApplication(Symbol(9), SVar(1))
	require.True(t, Equal(got, want))
}

// P2: binder shadowing.
func TestApplyESubst_ExistsShadow(t *testing.T) {
	body := EVar(0)
	p := NewExists(0, body)
	got := ApplyESubst(p, 0, Symbol(9))
	require.True(t, Equal(got, p))
}

func TestApplySSubst_MuShadow(t *testing.T) {
	body := SVar(0)
	p := NewMuUnchecked(0, body)
	got := ApplySSubst(p, 0, Symbol(9))
	require.True(t, Equal(got, p))
}

// P4: instantiation identity when v does not appear as a MetaVar id.
func TestInstantiate_Identity(t *testing.T) {
	p := NewImplication(NewMetaVarUnconstrained(0), EVar(3))
	got, ok := Instantiate(p, []uint8{7}, []Pattern{Symbol(1)})
	require.True(t, ok)
	require.True(t, Equal(got, p))
}

// P5: instantiation fires a pending ESubst once its MetaVar is concretised.
func TestInstantiate_FiresPendingESubst(t *testing.T) {
	pending := NewESubstUnchecked(NewMetaVarUnconstrained(0), 1, EVar(2))
	concrete := NewImplication(EVar(1), EVar(5))

	got, ok := Instantiate(pending, []uint8{0}, []Pattern{concrete})
	require.True(t, ok)

	want := ApplyESubst(concrete, 1, EVar(2))
	require.True(t, Equal(got, want))
}

// P6: freshness soundness under Implication/Application.
func TestFreshnessSoundness(t *testing.T) {
	p := Symbol(0)
	q := EVar(2)
	require.True(t, EFresh(p, 1))
	require.True(t, EFresh(q, 1))
	require.True(t, EFresh(NewImplication(p, q), 1))
	require.True(t, EFresh(NewApplication(p, q), 1))
}

func TestInstantiate_DuplicateIdsFirstWins(t *testing.T) {
	mv := NewMetaVarUnconstrained(3)
	got, ok := Instantiate(mv, []uint8{3, 3}, []Pattern{Symbol(1), Symbol(2)})
	require.True(t, ok)
	require.True(t, Equal(got, Symbol(1)))
}

func TestInstantiate_ConstraintViolationFails(t *testing.T) {
	mv := &MetaVar{ID: 0, EFresh: []uint8{5}}
	_, ok := Instantiate(mv, []uint8{0}, []Pattern{EVar(5)})
	require.False(t, ok)
}

func TestMetaVar_WellFormed_RejectsOverlap(t *testing.T) {
	mv := &MetaVar{ID: 0, EFresh: []uint8{1}, AppCtxHoles: []uint8{1}}
	require.False(t, WellFormed(mv))
}

func TestMu_WellFormed_RequiresPositivity(t *testing.T) {
	// mu X0 . (X0 -> bot) is not well-formed: X0 occurs negatively.
	notX0 := Not(SVar(0))
	mu := NewMuUnchecked(0, notX0)
	require.False(t, WellFormed(mu))

	muOK := NewMuUnchecked(0, SVar(0))
	require.True(t, WellFormed(muOK))
}

func TestBuildPendingESubst_NoOpWhenFresh(t *testing.T) {
	p := Symbol(1) // e_fresh in every evar
	got, applied := BuildPendingESubst(p, 0, EVar(9))
	require.False(t, applied)
	require.True(t, Equal(got, p))
}

func TestBuildPendingESubst_WrapsWhenNotFresh(t *testing.T) {
	p := NewMetaVarUnconstrained(0)
	got, applied := BuildPendingESubst(p, 0, EVar(9))
	require.True(t, applied)
	require.Equal(t, KindESubst, got.Kind())
}

// Pins the historical inversion documented in DESIGN.md open question 1.
func TestBuildPendingSSubst_InvertedBranch(t *testing.T) {
	notFresh := NewMetaVarUnconstrained(0)
	got, applied := BuildPendingSSubst(notFresh, 0, SVar(9))
	require.False(t, applied, "well-formed (not fresh) case pushes unchanged per the inverted branch")
	require.True(t, Equal(got, notFresh))

	fresh := Symbol(1)
	got2, applied2 := BuildPendingSSubst(fresh, 0, SVar(9))
	require.True(t, applied2, "ill-formed (fresh) case wraps per the inverted branch")
	require.Equal(t, KindSSubst, got2.Kind())
}

func TestEqual_StructuralByValue(t *testing.T) {
	a := NewImplication(EVar(0), SVar(1))
	b := NewImplication(EVar(0), SVar(1))
	require.True(t, Equal(a, b))
	require.NotSame(t, a, b)
}
