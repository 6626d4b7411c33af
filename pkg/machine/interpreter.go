package machine

import (
	"github.com/gitrdm/mlproofcheck/internal/obslog"
	"github.com/gitrdm/mlproofcheck/pkg/bytesource"
	"github.com/gitrdm/mlproofcheck/pkg/pattern"
	"github.com/gitrdm/mlproofcheck/pkg/verrors"
)

// Role selects the phase-dependent behavior of Publish (spec §4.5):
// committing an axiom, queueing a claim, or discharging one.
type Role uint8

const (
	RoleTheory Role = iota
	RoleClaim
	RoleProof
)

func (r Role) phase() verrors.Phase {
	switch r {
	case RoleTheory:
		return verrors.PhaseTheory
	case RoleClaim:
		return verrors.PhaseClaim
	default:
		return verrors.PhaseProof
	}
}

// Interpreter is one phase-scoped invocation of the instruction
// dispatcher. A fresh Interpreter is built per phase by the
// orchestrator (pkg/verifier's Verify); phases share no state except
// the Axioms and Claims collections threaded explicitly between them.
type Interpreter struct {
	role    Role
	next    bytesource.NextFunc
	stack   Stack
	memory  Memory
	axioms  *Axioms // written in RoleTheory, not used by the other roles
	claims  *Claims // written in RoleClaim, consumed from the tail in RoleProof
	schemas Schemas
	log     obslog.Logger
	offset  int
}

// NewInterpreter builds an Interpreter for one phase. memory seeds the
// initial memory (empty for theory/claim phases, the axiom pool for
// the proof phase).
func NewInterpreter(role Role, next bytesource.NextFunc, memory Memory, axioms *Axioms, claims *Claims, schemas Schemas, log obslog.Logger) *Interpreter {
	if log == nil {
		log = obslog.Null()
	}
	return &Interpreter{
		role:    role,
		next:    next,
		memory:  memory,
		axioms:  axioms,
		claims:  claims,
		schemas: schemas,
		log:     obslog.Phase(log, string(role.phase())),
	}
}

// Stack exposes the final stack contents, mainly for tests asserting
// against spec §8 scenarios.
func (in *Interpreter) Stack() Stack { return in.stack }

// Memory exposes the final memory contents.
func (in *Interpreter) Memory() Memory { return in.memory }

func (in *Interpreter) phase() verrors.Phase { return in.role.phase() }

// readByte pulls the next immediate byte, aborting with
// TruncatedStream if the stream ends where an immediate was required.
func (in *Interpreter) readByte(what string) (byte, error) {
	b, ok := in.next()
	if !ok {
		return 0, verrors.Newf(verrors.TruncatedStream, in.phase(), in.offset, "expected %s, stream ended", what)
	}
	return b, nil
}

// readList reads a 1-byte length L followed by L id bytes.
func (in *Interpreter) readList(what string) ([]uint8, error) {
	n, err := in.readByte(what + " length")
	if err != nil {
		return nil, err
	}
	ids := make([]uint8, 0, n)
	for i := byte(0); i < n; i++ {
		id, err := in.readByte(what + " element")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Run drives the dispatch loop to stream exhaustion. End-of-stream on
// the next opcode position is the normal way to finish a phase;
// end-of-stream mid-instruction is TruncatedStream (raised by
// readByte/readList).
func (in *Interpreter) Run() error {
	for {
		b, ok := in.next()
		if !ok {
			break
		}
		op, err := decodeOpcode(b, in.phase(), in.offset)
		if err != nil {
			return err
		}
		if reservedOpcodes[op] {
			return verrors.Newf(verrors.ReservedOpcode, in.phase(), in.offset, "opcode %d is reserved", op)
		}
		in.log.Trace("dispatch", "opcode", op, "offset", in.offset)
		if err := in.dispatch(op); err != nil {
			return err
		}
		in.offset++
	}
	if in.role == RoleProof && len(*in.claims) != 0 {
		return verrors.Newf(verrors.UndischargedClaims, in.phase(), in.offset, "%d claim(s) remain undischarged", len(*in.claims))
	}
	return nil
}

func (in *Interpreter) dispatch(op Opcode) error {
	switch op {
	case OpEVar:
		return in.opAtom(func(id uint8) pattern.Pattern { return pattern.EVar(id) }, "EVar id")
	case OpSVar:
		return in.opAtom(func(id uint8) pattern.Pattern { return pattern.SVar(id) }, "SVar id")
	case OpSymbol:
		return in.opAtom(func(id uint8) pattern.Pattern { return pattern.Symbol(id) }, "Symbol id")
	case OpImplication:
		return in.opBinary(func(l, r pattern.Pattern) pattern.Pattern { return pattern.NewImplication(l, r) })
	case OpApplication:
		return in.opBinary(func(l, r pattern.Pattern) pattern.Pattern { return pattern.NewApplication(l, r) })
	case OpExists:
		return in.opExists()
	case OpMu:
		return in.opMu()
	case OpMetaVar:
		return in.opMetaVar()
	case OpESubst:
		return in.opESubst()
	case OpSSubst:
		return in.opSSubst()
	case OpProp1:
		in.stack = append(in.stack, provedTerm(in.schemas.Prop1))
		return nil
	case OpProp2:
		in.stack = append(in.stack, provedTerm(in.schemas.Prop2))
		return nil
	case OpProp3:
		in.stack = append(in.stack, provedTerm(in.schemas.Prop3))
		return nil
	case OpQuantifier:
		in.stack = append(in.stack, provedTerm(in.schemas.Quantifier))
		return nil
	case OpExistence:
		in.stack = append(in.stack, provedTerm(in.schemas.Existence))
		return nil
	case OpModusPonens:
		return in.opModusPonens()
	case OpGeneralization:
		return in.opGeneralization()
	case OpSubstitution:
		return in.opSubstitution()
	case OpInstantiate:
		return in.opInstantiate()
	case OpPop:
		_, err := in.stack.pop(in.phase(), in.offset)
		return err
	case OpSave:
		return in.opSave()
	case OpLoad:
		return in.opLoad()
	case OpPublish:
		return in.opPublish()
	default:
		return verrors.Newf(verrors.UnknownOpcode, in.phase(), in.offset, "opcode %d has no dispatch case", op)
	}
}

func (in *Interpreter) opAtom(build func(uint8) pattern.Pattern, what string) error {
	id, err := in.readByte(what)
	if err != nil {
		return err
	}
	in.stack = append(in.stack, patternTerm(build(id)))
	return nil
}

func (in *Interpreter) opBinary(build func(l, r pattern.Pattern) pattern.Pattern) error {
	right, err := in.stack.popPattern(in.phase(), in.offset)
	if err != nil {
		return err
	}
	left, err := in.stack.popPattern(in.phase(), in.offset)
	if err != nil {
		return err
	}
	in.stack = append(in.stack, patternTerm(build(left, right)))
	return nil
}

func (in *Interpreter) opExists() error {
	v, err := in.readByte("Exists var")
	if err != nil {
		return err
	}
	body, err := in.stack.popPattern(in.phase(), in.offset)
	if err != nil {
		return err
	}
	in.stack = append(in.stack, patternTerm(pattern.NewExists(v, body)))
	return nil
}

// opMu builds Mu(v, body) and verifies well-formedness (positivity of
// v in body), aborting with IllFormedConstruction if it fails.
func (in *Interpreter) opMu() error {
	v, err := in.readByte("Mu var")
	if err != nil {
		return err
	}
	body, err := in.stack.popPattern(in.phase(), in.offset)
	if err != nil {
		return err
	}
	mu := pattern.NewMuUnchecked(v, body)
	if !pattern.WellFormed(mu) {
		return verrors.Newf(verrors.IllFormedConstruction, in.phase(), in.offset, "Mu %d is not positive in its binder", v)
	}
	in.stack = append(in.stack, patternTerm(mu))
	return nil
}

// opMetaVar reads an id and the five length-prefixed id lists (in
// order e_fresh, s_fresh, positive, negative, app_ctx_holes, per spec
// §4.4), builds the MetaVar, and verifies well-formedness.
func (in *Interpreter) opMetaVar() error {
	id, err := in.readByte("MetaVar id")
	if err != nil {
		return err
	}
	eFresh, err := in.readList("MetaVar e_fresh")
	if err != nil {
		return err
	}
	sFresh, err := in.readList("MetaVar s_fresh")
	if err != nil {
		return err
	}
	positive, err := in.readList("MetaVar positive")
	if err != nil {
		return err
	}
	negative, err := in.readList("MetaVar negative")
	if err != nil {
		return err
	}
	appCtxHoles, err := in.readList("MetaVar app_ctx_holes")
	if err != nil {
		return err
	}
	mv := &pattern.MetaVar{
		ID:          id,
		EFresh:      eFresh,
		SFresh:      sFresh,
		Positive:    positive,
		Negative:    negative,
		AppCtxHoles: appCtxHoles,
	}
	if !pattern.WellFormed(mv) {
		return verrors.Newf(verrors.IllFormedConstruction, in.phase(), in.offset, "MetaVar %d has overlapping e_fresh/app_ctx_holes", id)
	}
	in.stack = append(in.stack, patternTerm(mv))
	return nil
}

// opESubst pops pattern p then plug q; p's outer head must be
// MetaVar/ESubst/SSubst. Pushes p unchanged if the substitution would
// be redundant (p already fresh in v), else the wrapped ESubst node.
func (in *Interpreter) opESubst() error {
	v, err := in.readByte("ESubst evar")
	if err != nil {
		return err
	}
	p, err := in.stack.popPattern(in.phase(), in.offset)
	if err != nil {
		return err
	}
	q, err := in.stack.popPattern(in.phase(), in.offset)
	if err != nil {
		return err
	}
	if !pattern.CanDefer(p) {
		return verrors.Newf(verrors.IllFormedConstruction, in.phase(), in.offset, "ESubst may only wrap MetaVar/ESubst/SSubst, got %s", p.Kind())
	}
	result, _ := pattern.BuildPendingESubst(p, v, q)
	in.stack = append(in.stack, patternTerm(result))
	return nil
}

// opSSubst is opESubst's symmetric counterpart, with the inverted
// redundancy branch of spec §9 open question 1: see
// pattern.BuildPendingSSubst.
func (in *Interpreter) opSSubst() error {
	v, err := in.readByte("SSubst svar")
	if err != nil {
		return err
	}
	p, err := in.stack.popPattern(in.phase(), in.offset)
	if err != nil {
		return err
	}
	q, err := in.stack.popPattern(in.phase(), in.offset)
	if err != nil {
		return err
	}
	if !pattern.CanDefer(p) {
		return verrors.Newf(verrors.IllFormedConstruction, in.phase(), in.offset, "SSubst may only wrap MetaVar/ESubst/SSubst, got %s", p.Kind())
	}
	result, _ := pattern.BuildPendingSSubst(p, v, q)
	in.stack = append(in.stack, patternTerm(result))
	return nil
}

// opModusPonens pops the rule (top of stack) first: it must be a
// Proved Implication. It then pops the antecedent, which must equal
// the rule's left side structurally.
func (in *Interpreter) opModusPonens() error {
	rule, err := in.stack.popProved(in.phase(), in.offset)
	if err != nil {
		return err
	}
	impl, ok := rule.(*pattern.Implication)
	if !ok {
		return verrors.Newf(verrors.ModusPonensMismatch, in.phase(), in.offset, "expected an Implication as the first parameter, got %s", rule.Kind())
	}
	antecedent, err := in.stack.popProved(in.phase(), in.offset)
	if err != nil {
		return err
	}
	if !pattern.Equal(impl.Left, antecedent) {
		return verrors.Newf(verrors.ModusPonensMismatch, in.phase(), in.offset, "antecedent does not match")
	}
	in.stack = append(in.stack, provedTerm(impl.Right))
	return nil
}

// opGeneralization: the binder variable is fixed at 0 (spec §9 open
// question 2).
func (in *Interpreter) opGeneralization() error {
	const boundEVar = 0
	p, err := in.stack.popProved(in.phase(), in.offset)
	if err != nil {
		return err
	}
	impl, ok := p.(*pattern.Implication)
	if !ok {
		return verrors.Newf(verrors.ModusPonensMismatch, in.phase(), in.offset, "expected an Implication as the first parameter, got %s", p.Kind())
	}
	if !pattern.EFresh(impl.Right, boundEVar) {
		return verrors.Newf(verrors.GeneralizationNotFresh, in.phase(), in.offset, "binding variable %d occurs free in the conclusion", boundEVar)
	}
	concl := pattern.NewImplication(pattern.NewExists(boundEVar, impl.Left), impl.Right)
	in.stack = append(in.stack, provedTerm(concl))
	return nil
}

// opSubstitution pops a pattern q then a Proved p whose head is
// Meta/ESubst/SSubst, and mirrors opSSubst's inverted redundancy
// branch (spec §9 open question 1).
func (in *Interpreter) opSubstitution() error {
	v, err := in.readByte("Substitution svar")
	if err != nil {
		return err
	}
	q, err := in.stack.popPattern(in.phase(), in.offset)
	if err != nil {
		return err
	}
	p, err := in.stack.popProved(in.phase(), in.offset)
	if err != nil {
		return err
	}
	if !pattern.CanDefer(p) {
		return verrors.Newf(verrors.IllFormedConstruction, in.phase(), in.offset, "Substitution may only wrap MetaVar/ESubst/SSubst, got %s", p.Kind())
	}
	result, _ := pattern.BuildPendingSSubst(p, v, q)
	in.stack = append(in.stack, provedTerm(result))
	return nil
}

// opInstantiate reads n ids from the stream after popping n plugs from
// the stack; the plug popped at index k pairs with the k-th id read
// (spec §9 open question 4).
func (in *Interpreter) opInstantiate() error {
	n, err := in.readByte("Instantiate count")
	if err != nil {
		return err
	}
	plugs := make([]pattern.Pattern, 0, n)
	for i := byte(0); i < n; i++ {
		plug, err := in.stack.popPattern(in.phase(), in.offset)
		if err != nil {
			return err
		}
		plugs = append(plugs, plug)
	}
	ids := make([]uint8, 0, n)
	for i := byte(0); i < n; i++ {
		id, err := in.readByte("Instantiate id")
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	term, err := in.stack.pop(in.phase(), in.offset)
	if err != nil {
		return err
	}
	result, ok := pattern.Instantiate(term.Pattern, ids, plugs)
	if !ok {
		return verrors.Newf(verrors.InstantiationConstraintBroken, in.phase(), in.offset, "instantiation violates a freshness/polarity constraint")
	}
	in.stack = append(in.stack, Term{Tag: term.Tag, Pattern: result})
	return nil
}

func (in *Interpreter) opSave() error {
	if len(in.stack) == 0 {
		return verrors.New(verrors.StackUnderflow, in.phase(), in.offset)
	}
	top := in.stack[len(in.stack)-1]
	in.memory.push(top)
	return nil
}

func (in *Interpreter) opLoad() error {
	idx, err := in.readByte("Load index")
	if err != nil {
		return err
	}
	entry, err := in.memory.at(int(idx), in.phase(), in.offset)
	if err != nil {
		return err
	}
	in.stack = append(in.stack, entry)
	return nil
}

// opPublish is the only phase-dependent opcode (spec §4.5).
func (in *Interpreter) opPublish() error {
	switch in.role {
	case RoleTheory:
		p, err := in.stack.popPattern(in.phase(), in.offset)
		if err != nil {
			return err
		}
		*in.axioms = append(*in.axioms, provedTerm(p))
		return nil
	case RoleClaim:
		p, err := in.stack.popPattern(in.phase(), in.offset)
		if err != nil {
			return err
		}
		*in.claims = append(*in.claims, p)
		return nil
	default: // RoleProof
		p, err := in.stack.popProved(in.phase(), in.offset)
		if err != nil {
			return err
		}
		n := len(*in.claims)
		if n == 0 {
			return verrors.Newf(verrors.ClaimMismatch, in.phase(), in.offset, "no claims remain to discharge")
		}
		claim := (*in.claims)[n-1]
		*in.claims = (*in.claims)[:n-1]
		if !pattern.Equal(p, claim) {
			return verrors.Newf(verrors.ClaimMismatch, in.phase(), in.offset, "published theorem does not match the expected claim")
		}
		return nil
	}
}
