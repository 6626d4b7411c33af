// Package machine implements the instruction interpreter: the typed
// stack, memory, axiom pool and claim queue of spec §4.3, the opcode
// decoder of §4.4, and the per-phase dispatch of §4.5.
package machine

import (
	"github.com/gitrdm/mlproofcheck/pkg/pattern"
	"github.com/gitrdm/mlproofcheck/pkg/verrors"
)

// Tag distinguishes the two variants a Term/Entry can hold (spec §3):
// a bare Pattern, or one proved by an axiom or inference rule.
type Tag uint8

const (
	TagPattern Tag = iota
	TagProved
)

// Term is a stack cell. Entry (a memory or axiom-pool cell) has the
// identical shape, so machine aliases it rather than duplicating the
// type.
type Term struct {
	Tag     Tag
	Pattern pattern.Pattern
}

// Entry is a memory or axiom-pool cell; see Term.
type Entry = Term

// Stack is the interpreter's operand stack.
type Stack []Term

// Memory is the interpreter's append-only-within-a-phase entry store.
type Memory []Entry

// Axioms is the Proved entries published during the theory phase,
// seeded as the initial memory of the proof phase.
type Axioms []Entry

// Claims is the FIFO-published, LIFO-discharged queue of patterns the
// proof phase must derive.
type Claims []pattern.Pattern

func provedTerm(p pattern.Pattern) Term  { return Term{Tag: TagProved, Pattern: p} }
func patternTerm(p pattern.Pattern) Term { return Term{Tag: TagPattern, Pattern: p} }

// pop removes and returns the top of the stack.
func (s *Stack) pop(phase verrors.Phase, offset int) (Term, error) {
	n := len(*s)
	if n == 0 {
		return Term{}, verrors.New(verrors.StackUnderflow, phase, offset)
	}
	t := (*s)[n-1]
	*s = (*s)[:n-1]
	return t, nil
}

// popPattern pops the top of the stack, aborting if it is not a
// Pattern term.
func (s *Stack) popPattern(phase verrors.Phase, offset int) (pattern.Pattern, error) {
	t, err := s.pop(phase, offset)
	if err != nil {
		return nil, err
	}
	if t.Tag != TagPattern {
		return nil, verrors.Newf(verrors.TagMismatch, phase, offset, "expected Pattern on stack, found Proved")
	}
	return t.Pattern, nil
}

// popProved pops the top of the stack, aborting if it is not a Proved
// term.
func (s *Stack) popProved(phase verrors.Phase, offset int) (pattern.Pattern, error) {
	t, err := s.pop(phase, offset)
	if err != nil {
		return nil, err
	}
	if t.Tag != TagProved {
		return nil, verrors.Newf(verrors.TagMismatch, phase, offset, "expected Proved on stack, found Pattern")
	}
	return t.Pattern, nil
}

// push appends an entry matching the peeked stack top's tag to m, the
// semantics of the Save opcode.
func (m *Memory) push(t Term) {
	*m = append(*m, t)
}

// at returns memory entry i, aborting if out of range.
func (m Memory) at(i int, phase verrors.Phase, offset int) (Entry, error) {
	if i < 0 || i >= len(m) {
		return Entry{}, verrors.Newf(verrors.MemoryOutOfRange, phase, offset, "memory index %d out of range (len %d)", i, len(m))
	}
	return m[i], nil
}
