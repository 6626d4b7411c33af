package pattern

// Bot, Not and Forall are the small notation helpers the original
// checker (original_source/checker/src/lib.rs) builds the axiom
// schemas from: `bot()`, `not(p)`, and `forall(v, p)`. They are kept
// as a grounding for pkg/machine's fixed axiom schemas rather than
// inlined there.

// Bot is the matching-logic bottom pattern, `mu X0 . X0`.
func Bot() Pattern {
	return NewMuUnchecked(0, SVar(0))
}

// Not builds `p -> bot`.
func Not(p Pattern) Pattern {
	return NewImplication(p, Bot())
}

// Forall builds `not (exists v . not p)`.
func Forall(v uint8, p Pattern) Pattern {
	return Not(NewExists(v, Not(p)))
}
