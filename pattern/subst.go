package pattern

import (
	"strconv"
	"strings"

	"github.com/coregx/ematch/egraph"
)

// Binding assigns one variable to the e-class it matched.
type Binding struct {
	Var Var
	ID  egraph.ID
}

// Subst is one substitution witnessing a match: an assignment of canonical
// e-class ids to every variable of a pattern, ordered by the compiled
// program's fixed variable order.
type Subst struct {
	bindings []Binding
}

// NewSubst returns a substitution over the given bindings. The binding order
// is preserved.
func NewSubst(bindings ...Binding) Subst {
	return Subst{bindings: bindings}
}

// Len returns the number of bindings.
func (s Subst) Len() int {
	return len(s.bindings)
}

// Binding returns the i-th binding.
func (s Subst) Binding(i int) Binding {
	return s.bindings[i]
}

// Get returns the id bound to v, if any.
func (s Subst) Get(v Var) (egraph.ID, bool) {
	for _, b := range s.bindings {
		if b.Var == v {
			return b.ID, true
		}
	}
	return 0, false
}

// String formats the substitution as {?x: 3, ?y: 7}.
func (s Subst) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, b := range s.bindings {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(b.Var))
		sb.WriteString(": ")
		sb.WriteString(strconv.FormatUint(uint64(b.ID), 10))
	}
	sb.WriteByte('}')
	return sb.String()
}
