// Package pattern implements the matching-logic pattern algebra: the
// closed sum type of patterns, the structural predicates checked on
// them (freshness, polarity, well-formedness), and the two
// capture-avoiding substitution builders together with multi-variable
// meta-level instantiation.
//
// Patterns are immutable once built. Composite patterns hold their
// children as ordinary Go interface values; since those values are
// themselves immutable and the garbage collector reclaims them once
// unreferenced, this gives the reference-counted sharing the source
// implementation expresses with Rc<Pattern> without any extra
// bookkeeping. Structural equality is by value, not by identity: two
// separately built patterns that describe the same formula compare
// equal via Equal.
package pattern

import "fmt"

// Kind identifies which variant of the closed Pattern sum type a value
// holds. Callers should switch on Kind (or type-switch on Pattern)
// rather than attempt to extend the set of variants.
type Kind uint8

const (
	KindEVar Kind = iota
	KindSVar
	KindSymbol
	KindImplication
	KindApplication
	KindExists
	KindMu
	KindMetaVar
	KindESubst
	KindSSubst
)

func (k Kind) String() string {
	switch k {
	case KindEVar:
		return "EVar"
	case KindSVar:
		return "SVar"
	case KindSymbol:
		return "Symbol"
	case KindImplication:
		return "Implication"
	case KindApplication:
		return "Application"
	case KindExists:
		return "Exists"
	case KindMu:
		return "Mu"
	case KindMetaVar:
		return "MetaVar"
	case KindESubst:
		return "ESubst"
	case KindSSubst:
		return "SSubst"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Pattern is the closed sum type of matching-logic patterns. The
// interface is sealed: only the variants in this package implement it.
type Pattern interface {
	Kind() Kind
	sealed()
}

// EVar is an element-variable atom.
type EVar uint8

func (EVar) Kind() Kind { return KindEVar }
func (EVar) sealed()    {}

// SVar is a set-variable atom.
type SVar uint8

func (SVar) Kind() Kind { return KindSVar }
func (SVar) sealed()    {}

// Symbol is a constant-symbol atom.
type Symbol uint8

func (Symbol) Kind() Kind { return KindSymbol }
func (Symbol) sealed()    {}

// Implication is `left -> right`.
type Implication struct {
	Left, Right Pattern
}

func (*Implication) Kind() Kind { return KindImplication }
func (*Implication) sealed()    {}

// Application is `left right` (matching-logic application, not a
// function call).
type Application struct {
	Left, Right Pattern
}

func (*Application) Kind() Kind { return KindApplication }
func (*Application) sealed()    {}

// Exists is `exists Var . Body`, binding an element variable.
type Exists struct {
	Var  uint8
	Body Pattern
}

func (*Exists) Kind() Kind { return KindExists }
func (*Exists) sealed()    {}

// Mu is `mu Var . Body`, binding a set variable. Every constructed Mu
// must satisfy Positive(Body, Var); see NewMuUnchecked and WellFormed.
type Mu struct {
	Var  uint8
	Body Pattern
}

func (*Mu) Kind() Kind { return KindMu }
func (*Mu) sealed()    {}

// MetaVar is a placeholder pattern with five constraint sets: the
// variables it must be fresh in, the variables it must be positive or
// negative in, and the holes it may fill as an application context.
// Constraint sets are unordered and may contain duplicates without
// semantic effect.
type MetaVar struct {
	ID          uint8
	EFresh      []uint8
	SFresh      []uint8
	Positive    []uint8
	Negative    []uint8
	AppCtxHoles []uint8
}

func (*MetaVar) Kind() Kind { return KindMetaVar }
func (*MetaVar) sealed()    {}

// ESubst is a pending element-variable substitution: Plug for EVarID
// in Pattern. Every constructed ESubst must satisfy
// !EFresh(Pattern, EVarID); see BuildPendingESubst.
type ESubst struct {
	Pattern Pattern
	EVarID  uint8
	Plug    Pattern
}

func (*ESubst) Kind() Kind { return KindESubst }
func (*ESubst) sealed()    {}

// SSubst is a pending set-variable substitution: Plug for SVarID in
// Pattern. Every constructed SSubst must satisfy
// !SFresh(Pattern, SVarID); see WellFormed. BuildPendingSSubst, used
// by the SSubst and Substitution opcodes, does not enforce this.
type SSubst struct {
	Pattern Pattern
	SVarID  uint8
	Plug    Pattern
}

func (*SSubst) Kind() Kind { return KindSSubst }
func (*SSubst) sealed()    {}

// NewImplication builds `left -> right`.
func NewImplication(left, right Pattern) *Implication {
	return &Implication{Left: left, Right: right}
}

// NewApplication builds `left right`.
func NewApplication(left, right Pattern) *Application {
	return &Application{Left: left, Right: right}
}

// NewExists builds `exists v . body`.
func NewExists(v uint8, body Pattern) *Exists {
	return &Exists{Var: v, Body: body}
}

// NewMuUnchecked builds `mu v . body` without verifying positivity.
// Callers that must police well-formedness at construction time (the
// interpreter) should check WellFormed on the result and reject it
// rather than publish it; internal callers that already know the
// invariant holds (e.g. the fixed axiom schemas) may use this
// directly.
func NewMuUnchecked(v uint8, body Pattern) *Mu {
	return &Mu{Var: v, Body: body}
}

// NewMetaVarUnconstrained builds a MetaVar with all five constraint
// sets empty.
func NewMetaVarUnconstrained(id uint8) *MetaVar {
	return &MetaVar{ID: id}
}

// NewESubstUnchecked builds an ESubst node without verifying that
// !EFresh(pattern, evarID). See BuildPendingESubst for the checked
// builder the ESubst opcode uses.
func NewESubstUnchecked(p Pattern, evarID uint8, plug Pattern) *ESubst {
	return &ESubst{Pattern: p, EVarID: evarID, Plug: plug}
}

// NewSSubstUnchecked builds an SSubst node without verifying that
// !SFresh(pattern, svarID). See BuildPendingSSubst for the builder
// the SSubst and Substitution opcodes use.
func NewSSubstUnchecked(p Pattern, svarID uint8, plug Pattern) *SSubst {
	return &SSubst{Pattern: p, SVarID: svarID, Plug: plug}
}
