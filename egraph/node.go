package egraph

import (
	"strconv"
	"strings"
)

// Node is one e-node: an operator application whose children reference
// e-classes by id. A node with no children is a leaf; leaf payloads (numbers,
// symbols) are folded into the operator string, so "3" and "4" are distinct
// operators.
//
// Node doubles as a pattern template inside compiled programs, where the
// children index pattern slots instead of e-classes. Shape matching
// (Matches) ignores children either way.
type Node struct {
	op       string
	children []ID
}

// New returns a node applying op to the given child classes.
func New(op string, children ...ID) Node {
	return Node{op: op, children: children}
}

// Leaf returns a childless node.
func Leaf(op string) Node {
	return Node{op: op}
}

// Op returns the node's operator.
func (n *Node) Op() string {
	return n.op
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Arity returns the number of children.
func (n *Node) Arity() int {
	return len(n.children)
}

// Children returns the node's child ids. The slice is read-only.
func (n *Node) Children() []ID {
	return n.children
}

// Child returns the i-th child id.
func (n *Node) Child(i int) ID {
	return n.children[i]
}

// Matches reports whether o has the same shape as n: equal operator and
// arity. Children are ignored.
func (n *Node) Matches(o *Node) bool {
	return n.op == o.op && len(n.children) == len(o.children)
}

// Equal reports whether o is structurally identical to n: equal operator,
// arity and children.
func (n *Node) Equal(o *Node) bool {
	if !n.Matches(o) {
		return false
	}
	for i, c := range n.children {
		if o.children[i] != c {
			return false
		}
	}
	return true
}

// MapChildren returns a copy of n with every child replaced by f(child).
func (n *Node) MapChildren(f func(ID) ID) Node {
	if len(n.children) == 0 {
		return Node{op: n.op}
	}
	children := make([]ID, len(n.children))
	for i, c := range n.children {
		children[i] = f(c)
	}
	return Node{op: n.op, children: children}
}

// ForEachChild calls f with each child's position and id.
func (n *Node) ForEachChild(f func(i int, id ID)) {
	for i, c := range n.children {
		f(i, c)
	}
}

// Compare orders nodes by operator, then arity, then children
// lexicographically. This is the canonical node order: under it, all nodes
// of one shape form a contiguous run in a sorted list.
func (n *Node) Compare(o *Node) int {
	if c := strings.Compare(n.op, o.op); c != 0 {
		return c
	}
	if len(n.children) != len(o.children) {
		if len(n.children) < len(o.children) {
			return -1
		}
		return 1
	}
	for i, c := range n.children {
		if c != o.children[i] {
			if c < o.children[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// String formats the node as op or op(c0, c1, ...).
func (n *Node) String() string {
	if len(n.children) == 0 {
		return n.op
	}
	var sb strings.Builder
	sb.WriteString(n.op)
	sb.WriteByte('(')
	for i, c := range n.children {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(uint64(c), 10))
	}
	sb.WriteByte(')')
	return sb.String()
}
