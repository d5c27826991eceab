package machine

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cockroachdb/errors"

	"github.com/coregx/ematch/egraph"
)

// binder is one choice point: the base of the output register range, the
// resume address, and a live cursor over the candidate nodes.
type binder struct {
	out      int
	next     int
	searcher classSearcher
}

// machine executes one program against one e-graph. A machine, its register
// array and its choice-point stack live for exactly one run and share
// nothing, so concurrent runs over an unmutated e-graph are safe.
type machine struct {
	g     egraph.Interface
	prog  *Program
	pc    int
	reg   []egraph.ID
	stack []binder
	log   *zap.Logger
}

func newMachine(g egraph.Interface, prog *Program) *machine {
	return &machine{
		g:    g,
		prog: prog,
		log:  prog.config.Logger,
	}
}

// findReg resolves the id in a register to its canonical representative.
func (m *machine) findReg(reg int) egraph.ID {
	return m.g.Find(m.reg[reg])
}

// backtrack resumes the most recent choice point that still has a candidate:
// the candidate's children are written into the saved register range and the
// pc is set to the saved resume address. Exhausted choice points are popped.
// Reports false when the stack empties, which terminates the run.
func (m *machine) backtrack() bool {
	if ce := m.log.Check(zapcore.DebugLevel, "backtracking"); ce != nil {
		ce.Write(zap.Int("stack", len(m.stack)))
	}
	for len(m.stack) > 0 {
		b := &m.stack[len(m.stack)-1]
		n, ok := b.searcher.next()
		if !ok {
			m.stack = m.stack[:len(m.stack)-1]
			continue
		}
		m.resizeRegs(b.out + n.Arity())
		out := b.out
		n.ForEachChild(func(i int, id egraph.ID) {
			m.reg[out+i] = id
		})
		m.pc = b.next
		return true
	}
	return false
}

// resizeRegs grows or shrinks the register array to n entries. Shrinking
// discards the registers of undone binds; their ranges are rewritten before
// any instruction reads them.
func (m *machine) resizeRegs(n int) {
	if n <= cap(m.reg) {
		m.reg = m.reg[:n]
		return
	}
	m.reg = append(m.reg[:cap(m.reg)], make([]egraph.ID, n-cap(m.reg))...)
}

// run executes the program to exhaustion, starting from register 0 = start.
// yield is called once per match with the registers listed by the Yield
// instruction; it is the machine's only observable side effect.
func (m *machine) run(start egraph.ID, yield func(regs []int)) {
	m.pc = 0
	m.reg = append(m.reg[:0], start)
	m.stack = m.stack[:0]

	trace := m.log.Core().Enabled(zapcore.DebugLevel)

	for {
		in := &m.prog.instrs[m.pc]
		m.pc++

		if trace {
			m.log.Debug("executing", zap.Stringer("instr", in), zap.Int("pc", m.pc-1))
		}

		switch in.op {
		case opBind:
			nodes := m.g.ClassNodes(m.reg[in.src])
			m.stack = append(m.stack, binder{
				out:      in.out,
				next:     m.pc,
				searcher: newClassSearcher(&in.node, nodes, m.prog.config.LinearScanCutoff),
			})
			// A fresh Bind never proceeds on its own; it pulls its first
			// candidate through the backtracking path.
			if !m.backtrack() {
				return
			}
		case opCheck:
			if strictChecks && !in.node.IsLeaf() {
				panic(errors.AssertionFailedf("Check emitted for non-leaf template %s", in.node.String()))
			}
			if !m.classContains(m.reg[in.src], &in.node) {
				if !m.backtrack() {
					return
				}
			}
		case opCompare:
			if m.findReg(in.src) != m.findReg(in.out) {
				if !m.backtrack() {
					return
				}
			}
		case opYield:
			yield(in.regs)
			// Keep searching; the machine only stops when every choice
			// point is exhausted.
			if !m.backtrack() {
				return
			}
		}
	}
}

// classContains reports whether the class holding id contains the ground
// node. Membership is set membership in the node list, not recursive
// structure.
func (m *machine) classContains(id egraph.ID, node *egraph.Node) bool {
	for _, n := range m.g.ClassNodes(id) {
		if node.Equal(&n) {
			return true
		}
	}
	return false
}
