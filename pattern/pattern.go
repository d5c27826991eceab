// Package pattern represents search patterns over e-graph terms.
//
// A pattern is a tree with some leaves replaced by named variables,
// serialized to a flat slot array: every slot is either a variable or a
// template node whose children index strictly earlier slots, and the root is
// the last slot. The flat form is what the match compiler in package machine
// consumes; producing it from concrete pattern syntax is the job of a parser
// outside this module.
package pattern

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/coregx/ematch/egraph"
)

// ErrMalformed indicates a pattern that violates the flat-tree shape:
// empty, or a slot whose children do not reference strictly earlier slots.
var ErrMalformed = errors.New("malformed pattern")

// Var names a pattern variable, conventionally spelled "?x".
type Var string

// SlotKind identifies the two kinds of pattern slot.
type SlotKind uint8

const (
	// SlotVar is a named variable slot.
	SlotVar SlotKind = iota

	// SlotNode is a template node slot; its children index earlier slots.
	SlotNode
)

// Slot is one entry of a flat pattern. The kind decides which accessor is
// meaningful.
type Slot struct {
	kind SlotKind
	v    Var
	node egraph.Node
}

// VarSlot returns a variable slot.
func VarSlot(v Var) Slot {
	return Slot{kind: SlotVar, v: v}
}

// NodeSlot returns a template node slot. The node's children must index
// earlier slots in the pattern.
func NodeSlot(n egraph.Node) Slot {
	return Slot{kind: SlotNode, node: n}
}

// Kind returns the slot's kind.
func (s *Slot) Kind() SlotKind {
	return s.kind
}

// Var returns the variable of a SlotVar slot.
func (s *Slot) Var() Var {
	return s.v
}

// Node returns the template node of a SlotNode slot.
func (s *Slot) Node() *egraph.Node {
	return &s.node
}

// String formats the slot as its variable name or template node.
func (s *Slot) String() string {
	if s.kind == SlotVar {
		return string(s.v)
	}
	return s.node.String()
}

// Pattern is a validated flat pattern. The zero value is not usable; build
// patterns with New.
type Pattern struct {
	slots []Slot
}

// New validates the slot sequence and returns it as a Pattern. It fails with
// ErrMalformed if the sequence is empty or any template child does not
// reference a strictly earlier slot; a malformed pattern is a caller bug,
// never a matching outcome.
func New(slots ...Slot) (*Pattern, error) {
	if len(slots) == 0 {
		return nil, errors.Wrap(ErrMalformed, "empty slot sequence")
	}
	for i := range slots {
		if slots[i].kind != SlotNode {
			continue
		}
		node := &slots[i].node
		for _, c := range node.Children() {
			if int64(c) >= int64(i) {
				return nil, errors.Wrapf(ErrMalformed,
					"slot %d template %s: child %d is not an earlier slot", i, node, c)
			}
		}
	}
	return &Pattern{slots: slots}, nil
}

// MustNew is like New but panics on a malformed pattern. It simplifies
// declaring fixed patterns in variable initializers.
func MustNew(slots ...Slot) *Pattern {
	p, err := New(slots...)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of slots.
func (p *Pattern) Len() int {
	return len(p.slots)
}

// Slot returns the i-th slot.
func (p *Pattern) Slot(i int) *Slot {
	return &p.slots[i]
}

// Root returns the root slot, which is always the last one.
func (p *Pattern) Root() *Slot {
	return &p.slots[len(p.slots)-1]
}

// Vars returns the distinct variables of the pattern in order of first
// appearance in the slot array. Note the compiled program's variable order
// is first appearance during compilation, which walks from the root; use
// Program.Vars for the order substitutions follow.
func (p *Pattern) Vars() []Var {
	var vars []Var
	seen := make(map[Var]struct{})
	for i := range p.slots {
		if p.slots[i].kind != SlotVar {
			continue
		}
		v := p.slots[i].v
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		vars = append(vars, v)
	}
	return vars
}

// String formats the pattern as its slot list, root last.
func (p *Pattern) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range p.slots {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(p.slots[i].String())
	}
	sb.WriteByte(']')
	return sb.String()
}
