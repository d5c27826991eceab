// Package egraph defines the e-graph query surface consumed by the match
// machine.
//
// This package does not build or maintain e-graphs. It declares the minimal
// read-only view the matcher needs: union-find lookups and per-class node
// lists. Any congruence-closure implementation can satisfy Interface.
//
// The one non-obvious requirement is node-list ordering: ClassNodes must
// return nodes sorted under Node.Compare, which keeps nodes of equal shape
// (operator and arity) contiguous. The searcher in package machine relies on
// that contiguity for its sub-linear candidate scans; violating it silently
// drops or duplicates matches. Build with the ematchstrict tag to turn
// violations into aborts.
package egraph

// ID identifies an e-class. Ids are resolved to their canonical
// representative through Interface.Find.
type ID uint32

// MaxID is reserved as a sentinel for binary-search bounds and must never
// identify a real e-class or appear as a node child.
const MaxID ID = 0xFFFFFFFF

// Interface is the read-only e-graph surface the match machine consumes.
//
// Implementations must accept non-canonical ids in both methods and resolve
// them internally. The matcher never mutates the e-graph; the slices returned
// by ClassNodes are borrowed for the duration of one Program.Run call and
// must not change during it.
type Interface interface {
	// Find returns the canonical representative of the class containing id.
	Find(id ID) ID

	// ClassNodes returns the nodes of the class containing id, sorted under
	// Node.Compare. The returned slice is read-only.
	ClassNodes(id ID) []Node
}
