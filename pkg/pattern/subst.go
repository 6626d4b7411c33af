package pattern

// CanDefer reports whether p's outer constructor is one of the three
// that an ESubst/SSubst node is allowed to wrap (MetaVar, ESubst,
// SSubst). Substitution into any other ("concrete") head must be
// performed eagerly instead. See spec §3 invariants.
func CanDefer(p Pattern) bool {
	switch p.Kind() {
	case KindMetaVar, KindESubst, KindSSubst:
		return true
	default:
		return false
	}
}

// ApplyESubst is the eager element-variable substitution builder: it
// traverses p, pushing the substitution inward until it reaches a
// head that cannot absorb it (MetaVar/ESubst/SSubst), where it wraps
// the result as a new pending ESubst. See spec §4.2.
func ApplyESubst(p Pattern, v uint8, plug Pattern) Pattern {
	switch n := p.(type) {
	case EVar:
		if uint8(n) == v {
			return plug
		}
		return n
	case SVar, Symbol:
		return p
	case *Implication:
		return NewImplication(ApplyESubst(n.Left, v, plug), ApplyESubst(n.Right, v, plug))
	case *Application:
		return NewApplication(ApplyESubst(n.Left, v, plug), ApplyESubst(n.Right, v, plug))
	case *Exists:
		if n.Var == v {
			return n
		}
		return NewExists(n.Var, ApplyESubst(n.Body, v, plug))
	case *Mu:
		return NewMuUnchecked(n.Var, ApplyESubst(n.Body, v, plug))
	case *MetaVar, *ESubst, *SSubst:
		return NewESubstUnchecked(p, v, plug)
	default:
		panic("pattern: ApplyESubst: unreachable pattern kind")
	}
}

// ApplySSubst is the eager set-variable substitution builder,
// symmetric to ApplyESubst: EVar and Exists now always distribute,
// while SVar and Mu implement capture avoidance.
func ApplySSubst(p Pattern, v uint8, plug Pattern) Pattern {
	switch n := p.(type) {
	case SVar:
		if uint8(n) == v {
			return plug
		}
		return n
	case EVar, Symbol:
		return p
	case *Implication:
		return NewImplication(ApplySSubst(n.Left, v, plug), ApplySSubst(n.Right, v, plug))
	case *Application:
		return NewApplication(ApplySSubst(n.Left, v, plug), ApplySSubst(n.Right, v, plug))
	case *Mu:
		if n.Var == v {
			return n
		}
		return NewMuUnchecked(n.Var, ApplySSubst(n.Body, v, plug))
	case *Exists:
		return NewExists(n.Var, ApplySSubst(n.Body, v, plug))
	case *MetaVar, *ESubst, *SSubst:
		return NewSSubstUnchecked(p, v, plug)
	default:
		panic("pattern: ApplySSubst: unreachable pattern kind")
	}
}

// BuildPendingESubst implements the ESubst opcode's construction
// branch (spec §4.5): build ESubst(p, v, plug); if that node fails
// well-formedness (p is already fresh in v, so the substitution would
// be a no-op) return p unchanged; otherwise return the wrapped node.
// The bool result reports whether the node was introduced.
func BuildPendingESubst(p Pattern, v uint8, plug Pattern) (Pattern, bool) {
	node := NewESubstUnchecked(p, v, plug)
	if !WellFormed(node) {
		return p, false
	}
	return node, true
}

// BuildPendingSSubst implements the SSubst opcode's construction
// branch. It deliberately mirrors the historical inversion bug spec
// §9 calls out: when the candidate node IS well-formed (p is not
// fresh in v, so the substitution is not redundant) this pushes p
// unchanged; when it is NOT well-formed (p is already fresh in v) it
// pushes the wrapped node. This is backwards from BuildPendingESubst
// on purpose — see DESIGN.md open question 1.
func BuildPendingSSubst(p Pattern, v uint8, plug Pattern) (Pattern, bool) {
	node := NewSSubstUnchecked(p, v, plug)
	if WellFormed(node) {
		return p, false
	}
	return node, true
}

// Instantiate is the multi-variable meta-level instantiation operator:
// it simultaneously replaces every MetaVar(ids[k]) by plugs[k]
// wherever a MetaVar appears, recursively firing any ESubst/SSubst
// nodes whose MetaVar head becomes concrete. See spec §4.2.
//
// ok is false if an instantiation would violate one of a resolved
// MetaVar's freshness/polarity constraint sets, or if fewer plugs than
// ids were supplied for a used index.
func Instantiate(p Pattern, ids []uint8, plugs []Pattern) (Pattern, bool) {
	switch n := p.(type) {
	case EVar, SVar, Symbol:
		return p, true
	case *Implication:
		left, ok := Instantiate(n.Left, ids, plugs)
		if !ok {
			return nil, false
		}
		right, ok := Instantiate(n.Right, ids, plugs)
		if !ok {
			return nil, false
		}
		return NewImplication(left, right), true
	case *Application:
		left, ok := Instantiate(n.Left, ids, plugs)
		if !ok {
			return nil, false
		}
		right, ok := Instantiate(n.Right, ids, plugs)
		if !ok {
			return nil, false
		}
		return NewApplication(left, right), true
	case *Exists:
		body, ok := Instantiate(n.Body, ids, plugs)
		if !ok {
			return nil, false
		}
		return NewExists(n.Var, body), true
	case *Mu:
		body, ok := Instantiate(n.Body, ids, plugs)
		if !ok {
			return nil, false
		}
		return NewMuUnchecked(n.Var, body), true
	case *MetaVar:
		idx := firstIndex(ids, n.ID)
		if idx < 0 {
			return p, true
		}
		if idx >= len(plugs) {
			return nil, false
		}
		plug := plugs[idx]
		for _, x := range n.EFresh {
			if !EFresh(plug, x) {
				return nil, false
			}
		}
		for _, x := range n.SFresh {
			if !SFresh(plug, x) {
				return nil, false
			}
		}
		for _, x := range n.Positive {
			if !Positive(plug, x) {
				return nil, false
			}
		}
		for _, x := range n.Negative {
			if !Negative(plug, x) {
				return nil, false
			}
		}
		return plug, true
	case *ESubst:
		innerP, ok := Instantiate(n.Pattern, ids, plugs)
		if !ok {
			return nil, false
		}
		innerPlug, ok := Instantiate(n.Plug, ids, plugs)
		if !ok {
			return nil, false
		}
		return ApplyESubst(innerP, n.EVarID, innerPlug), true
	case *SSubst:
		innerP, ok := Instantiate(n.Pattern, ids, plugs)
		if !ok {
			return nil, false
		}
		innerPlug, ok := Instantiate(n.Plug, ids, plugs)
		if !ok {
			return nil, false
		}
		return ApplySSubst(innerP, n.SVarID, innerPlug), true
	default:
		panic("pattern: Instantiate: unreachable pattern kind")
	}
}

// firstIndex returns the lowest index k with ids[k] == id, or -1.
// Duplicate ids resolve to the earliest plug, matching spec §4.2's
// "first index wins" tie-break.
func firstIndex(ids []uint8, id uint8) int {
	for i, x := range ids {
		if x == id {
			return i
		}
	}
	return -1
}
