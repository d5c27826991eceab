//go:build ematchstrict

package machine

// strictChecks enables the defensive re-verification of searcher candidates
// and machine invariants. Every node a searcher yields is re-checked against
// its template; a mismatch means the e-graph broke the sorted node-list
// contract and the machine aborts instead of silently dropping or
// duplicating matches.
const strictChecks = true
