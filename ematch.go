// Package ematch provides pattern search over e-graphs.
//
// Given a tree pattern containing variables, ematch finds every way the
// pattern can be instantiated by terms reachable from a given equivalence
// class, returning the variable bindings for each match. It is the matching
// substrate for rewrite-rule and equality-saturation systems: the caller
// owns the e-graph, decides which rules to try, and applies the matches;
// ematch only searches and never mutates.
//
// A pattern compiles once into an immutable program, which is then run
// against any number of e-graphs and starting classes:
//
//	// (+ ?a ?a) as a flat pattern: children index earlier slots, root last
//	pat := pattern.MustNew(
//	    pattern.VarSlot("?a"),
//	    pattern.VarSlot("?a"),
//	    pattern.NodeSlot(egraph.New("+", 0, 1)),
//	)
//
//	prog, err := ematch.Compile(pat)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, subst := range prog.Run(g, root) {
//	    id, _ := subst.Get("?a")
//	    fmt.Println(id)
//	}
//
// The e-graph is consumed through egraph.Interface, a read-only view.
// Running is single-threaded and synchronous; concurrent Run calls are safe
// as long as the e-graph is not mutated underneath them. There is no
// built-in result limit or timeout: a run always enumerates every match.
//
// Build with -tags ematchstrict to re-verify every candidate node against
// its template and abort on sorted node-list contract violations instead of
// silently returning wrong results.
package ematch

import (
	"github.com/coregx/ematch/egraph"
	"github.com/coregx/ematch/machine"
	"github.com/coregx/ematch/pattern"
)

// Config configures compilation and execution of match programs.
type Config = machine.Config

// DefaultConfig returns the configuration used by Compile.
//
// Users can customize this and pass to CompileWithConfig:
//
//	config := ematch.DefaultConfig()
//	config.LinearScanCutoff = 32
//	prog, err := ematch.CompileWithConfig(pat, config)
func DefaultConfig() Config {
	return machine.DefaultConfig()
}

// Program is a compiled search pattern.
//
// A Program is immutable and safe to use concurrently from multiple
// goroutines: every Run owns its working state.
type Program struct {
	prog *machine.Program
	pat  *pattern.Pattern
}

// Compile compiles a flat pattern into a reusable Program.
func Compile(pat *pattern.Pattern) (*Program, error) {
	return CompileWithConfig(pat, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom configuration.
// Zero-value config fields are replaced by their defaults.
func CompileWithConfig(pat *pattern.Pattern, config Config) (*Program, error) {
	prog, err := machine.CompileWithConfig(pat, config)
	if err != nil {
		return nil, err
	}
	return &Program{prog: prog, pat: pat}, nil
}

// MustCompile is like Compile but panics if the pattern is malformed.
// It simplifies initializing package-level rule tables.
func MustCompile(pat *pattern.Pattern) *Program {
	prog, err := Compile(pat)
	if err != nil {
		panic(err)
	}
	return prog
}

// Run searches the class holding start and returns one substitution per
// match, possibly none. Bindings hold canonical ids and follow Vars order.
// The e-graph is only read and must not be mutated during the call.
func (p *Program) Run(g egraph.Interface, start egraph.ID) []pattern.Subst {
	return p.prog.Run(g, start)
}

// Vars returns the program's variables in first-seen order, the order
// substitution bindings follow.
func (p *Program) Vars() []pattern.Var {
	return p.prog.Vars()
}

// Pattern returns the pattern the program was compiled from.
func (p *Program) Pattern() *pattern.Pattern {
	return p.pat
}

// String returns the numbered instruction listing of the compiled program.
func (p *Program) String() string {
	return p.prog.String()
}
