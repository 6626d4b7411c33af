package pattern

// EFresh reports whether every free occurrence of EVar(evar) is absent
// from p. See spec §4.1.
func EFresh(p Pattern, evar uint8) bool {
	switch v := p.(type) {
	case EVar:
		return uint8(v) != evar
	case SVar, Symbol:
		return true
	case *Implication:
		return EFresh(v.Left, evar) && EFresh(v.Right, evar)
	case *Application:
		return EFresh(v.Left, evar) && EFresh(v.Right, evar)
	case *Exists:
		return evar == v.Var || EFresh(v.Body, evar)
	case *Mu:
		return EFresh(v.Body, evar)
	case *MetaVar:
		return containsU8(v.EFresh, evar)
	case *ESubst:
		if evar == v.EVarID {
			return EFresh(v.Plug, evar)
		}
		return EFresh(v.Pattern, evar) && EFresh(v.Plug, evar)
	case *SSubst:
		return EFresh(v.Pattern, evar) && EFresh(v.Plug, evar)
	default:
		panic("pattern: EFresh: unreachable pattern kind")
	}
}

// SFresh reports whether every free occurrence of SVar(svar) is absent
// from p. See spec §4.1.
func SFresh(p Pattern, svar uint8) bool {
	switch v := p.(type) {
	case SVar:
		return uint8(v) != svar
	case EVar, Symbol:
		return true
	case *Implication:
		return SFresh(v.Left, svar) && SFresh(v.Right, svar)
	case *Application:
		return SFresh(v.Left, svar) && SFresh(v.Right, svar)
	case *Mu:
		return svar == v.Var || SFresh(v.Body, svar)
	case *Exists:
		return SFresh(v.Body, svar)
	case *MetaVar:
		return containsU8(v.SFresh, svar)
	case *ESubst:
		return SFresh(v.Pattern, svar) && SFresh(v.Plug, svar)
	case *SSubst:
		if svar == v.SVarID {
			return SFresh(v.Plug, svar)
		}
		return SFresh(v.Pattern, svar) && SFresh(v.Plug, svar)
	default:
		panic("pattern: SFresh: unreachable pattern kind")
	}
}

// Positive reports whether svar occurs only positively in p, the
// polarity check required by the Knaster-Tarski fixpoint-forming rule.
// See spec §4.1.
func Positive(p Pattern, svar uint8) bool {
	return polarity(p, svar, true)
}

// Negative reports whether svar occurs only negatively in p.
func Negative(p Pattern, svar uint8) bool {
	return polarity(p, svar, false)
}

// polarity implements Positive (pos=true) and Negative (pos=false) in
// one recursion, since every rule but the SVar atom and the Implication
// flip is shared between them.
func polarity(p Pattern, svar uint8, pos bool) bool {
	switch v := p.(type) {
	case EVar, Symbol:
		return true
	case SVar:
		if pos {
			return true
		}
		return uint8(v) != svar
	case *Implication:
		return polarity(v.Left, svar, !pos) && polarity(v.Right, svar, pos)
	case *Application:
		return polarity(v.Left, svar, pos) && polarity(v.Right, svar, pos)
	case *Exists:
		return polarity(v.Body, svar, pos)
	case *Mu:
		return svar == v.Var || polarity(v.Body, svar, pos)
	case *MetaVar:
		if pos {
			return containsU8(v.Positive, svar)
		}
		return containsU8(v.Negative, svar)
	case *ESubst:
		return polarity(v.Pattern, svar, pos) && SFresh(v.Plug, svar)
	case *SSubst:
		same := polarity(v.Pattern, v.SVarID, pos) && polarity(v.Plug, svar, pos)
		opposite := polarity(v.Pattern, v.SVarID, !pos) && polarity(v.Plug, svar, !pos)
		q := SFresh(v.Plug, svar) || same || opposite
		if svar == v.SVarID {
			return q
		}
		return polarity(v.Pattern, svar, pos) && q
	default:
		panic("pattern: polarity: unreachable pattern kind")
	}
}

// WellFormed performs the local well-formedness check of spec §4.1.
// It assumes children are already well-formed; atoms, Implication,
// Application and Exists are trivially well-formed and are not
// re-checked.
func WellFormed(p Pattern) bool {
	switch v := p.(type) {
	case *MetaVar:
		return !intersects(v.EFresh, v.AppCtxHoles)
	case *Mu:
		return Positive(v.Body, v.Var)
	case *ESubst:
		return !EFresh(v.Pattern, v.EVarID)
	case *SSubst:
		return !SFresh(v.Pattern, v.SVarID)
	default:
		return true
	}
}

// Equal is deep structural equality, recursing into shared children.
func Equal(a, b Pattern) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case EVar:
		return av == b.(EVar)
	case SVar:
		return av == b.(SVar)
	case Symbol:
		return av == b.(Symbol)
	case *Implication:
		bv := b.(*Implication)
		return Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)
	case *Application:
		bv := b.(*Application)
		return Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)
	case *Exists:
		bv := b.(*Exists)
		return av.Var == bv.Var && Equal(av.Body, bv.Body)
	case *Mu:
		bv := b.(*Mu)
		return av.Var == bv.Var && Equal(av.Body, bv.Body)
	case *MetaVar:
		bv := b.(*MetaVar)
		return av.ID == bv.ID &&
			equalU8Set(av.EFresh, bv.EFresh) &&
			equalU8Set(av.SFresh, bv.SFresh) &&
			equalU8Set(av.Positive, bv.Positive) &&
			equalU8Set(av.Negative, bv.Negative) &&
			equalU8Set(av.AppCtxHoles, bv.AppCtxHoles)
	case *ESubst:
		bv := b.(*ESubst)
		return av.EVarID == bv.EVarID && Equal(av.Pattern, bv.Pattern) && Equal(av.Plug, bv.Plug)
	case *SSubst:
		bv := b.(*SSubst)
		return av.SVarID == bv.SVarID && Equal(av.Pattern, bv.Pattern) && Equal(av.Plug, bv.Plug)
	default:
		panic("pattern: Equal: unreachable pattern kind")
	}
}

func containsU8(set []uint8, x uint8) bool {
	for _, v := range set {
		if v == x {
			return true
		}
	}
	return false
}

func intersects(a, b []uint8) bool {
	for _, x := range a {
		if containsU8(b, x) {
			return true
		}
	}
	return false
}

// equalU8Set compares two id sets as the unordered, duplicate-tolerant
// collections spec §3 describes: same set of distinct members.
func equalU8Set(a, b []uint8) bool {
	for _, x := range a {
		if !containsU8(b, x) {
			return false
		}
	}
	for _, x := range b {
		if !containsU8(a, x) {
			return false
		}
	}
	return true
}
