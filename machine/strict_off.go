//go:build !ematchstrict

package machine

// strictChecks gates the defensive re-verification of searcher candidates
// and machine invariants. The default build compiles the checks out; build
// with -tags ematchstrict to turn node-list contract violations into aborts.
const strictChecks = false
