// Package machine compiles flat patterns into instruction programs and
// executes them against e-graphs with a backtracking virtual machine.
//
// A pattern compiles once into an immutable Program of four instructions over
// virtual registers holding e-class ids:
//
//	Bind(src, template, out)  open a choice point over the nodes of the class
//	                          in src that match template's shape; each
//	                          candidate writes its children into the fresh
//	                          contiguous register range starting at out
//	Check(src, node)          require the class in src to contain the ground
//	                          leaf node
//	Compare(a, b)             require registers a and b to resolve to the same
//	                          canonical class
//	Yield(regs)               report the registers holding the variables, then
//	                          keep backtracking for further matches
//
// The machine runs a program to exhaustion, reporting every satisfying
// substitution. It only reads the e-graph; all mutable state (registers,
// choice-point stack) is private to one run.
package machine

import (
	"fmt"
	"strings"

	"github.com/coregx/ematch/egraph"
)

// opcode identifies an instruction kind.
type opcode uint8

const (
	opBind opcode = iota
	opCheck
	opCompare
	opYield
)

// String returns a human-readable representation of the opcode.
func (o opcode) String() string {
	switch o {
	case opBind:
		return "Bind"
	case opCheck:
		return "Check"
	case opCompare:
		return "Compare"
	case opYield:
		return "Yield"
	default:
		return fmt.Sprintf("Unknown(%d)", o)
	}
}

// instruction is one step of a compiled match program. The opcode decides
// which fields are meaningful.
type instruction struct {
	op opcode

	// src is the inspected register: the class to search for Bind, the class
	// to test for Check, the left register for Compare.
	src int

	// node is the shape template for Bind and the ground leaf for Check.
	node egraph.Node

	// out is the base of the fresh child register range for Bind and the
	// right register for Compare.
	out int

	// regs lists the variable registers for Yield, in the program's
	// first-seen variable order.
	regs []int
}

// String returns a human-readable representation of the instruction.
func (in *instruction) String() string {
	switch in.op {
	case opBind:
		return fmt.Sprintf("Bind(r%d, %s, r%d)", in.src, in.node.String(), in.out)
	case opCheck:
		return fmt.Sprintf("Check(r%d, %s)", in.src, in.node.String())
	case opCompare:
		return fmt.Sprintf("Compare(r%d, r%d)", in.src, in.out)
	case opYield:
		var sb strings.Builder
		sb.WriteString("Yield([")
		for i, r := range in.regs {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "r%d", r)
		}
		sb.WriteString("])")
		return sb.String()
	default:
		return in.op.String()
	}
}
