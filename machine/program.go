package machine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/coregx/ematch/egraph"
	"github.com/coregx/ematch/pattern"
)

// Program is a compiled match program. It is immutable after compilation and
// can be run any number of times, against any e-graph and starting class,
// including concurrently: each Run owns its machine, registers and stack.
type Program struct {
	instrs []instruction
	vars   []pattern.Var
	config Config
}

// Vars returns the program's variables in first-seen order. Substitutions
// returned by Run list their bindings in this order.
func (p *Program) Vars() []pattern.Var {
	vars := make([]pattern.Var, len(p.vars))
	copy(vars, p.vars)
	return vars
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.instrs)
}

// Run matches the program against the class holding start and returns one
// substitution per match, possibly none. Every variable is bound to the
// canonical representative of the class it matched. The e-graph is only
// read; it must not be mutated for the duration of the call.
func (p *Program) Run(g egraph.Interface, start egraph.ID) []pattern.Subst {
	var substs []pattern.Subst
	m := newMachine(g, p)
	m.run(start, func(regs []int) {
		bindings := make([]pattern.Binding, len(regs))
		for i, r := range regs {
			bindings[i] = pattern.Binding{Var: p.vars[i], ID: g.Find(m.reg[r])}
		}
		substs = append(substs, pattern.NewSubst(bindings...))
	})
	p.config.Logger.Debug("ran program",
		zap.Uint32("start", uint32(start)),
		zap.Int("matches", len(substs)))
	return substs
}

// String returns the numbered instruction listing.
func (p *Program) String() string {
	var sb strings.Builder
	sb.WriteString("Program")
	for i := range p.instrs {
		fmt.Fprintf(&sb, "\n%d: %s", i, p.instrs[i].String())
	}
	return sb.String()
}
