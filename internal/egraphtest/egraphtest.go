// Package egraphtest provides a minimal in-memory e-graph for exercising the
// match machine in tests.
//
// It implements just enough of an e-graph to satisfy egraph.Interface with
// honest data: hashconsed insertion, union-find with path compression, and a
// Rebuild that recanonicalizes node children, restores congruence, dedupes,
// and keeps every class's node list sorted under egraph.Node.Compare — the
// contract the searcher relies on.
//
// This package is test scaffolding. Building and maintaining production
// e-graphs is outside this module.
package egraphtest

import (
	"sort"

	"github.com/coregx/ematch/egraph"
)

// EGraph is a small mutable e-graph. Not safe for concurrent mutation.
type EGraph struct {
	parent  []egraph.ID
	classes map[egraph.ID][]egraph.Node
	memo    map[string]egraph.ID
}

var _ egraph.Interface = (*EGraph)(nil)

// New returns an empty e-graph.
func New() *EGraph {
	return &EGraph{
		classes: make(map[egraph.ID][]egraph.Node),
		memo:    make(map[string]egraph.ID),
	}
}

// Find returns the canonical representative of the class containing id.
func (g *EGraph) Find(id egraph.ID) egraph.ID {
	for g.parent[id] != id {
		g.parent[id] = g.parent[g.parent[id]]
		id = g.parent[id]
	}
	return id
}

// ClassNodes returns the node list of the class containing id, sorted under
// egraph.Node.Compare. Callers must not modify it.
func (g *EGraph) ClassNodes(id egraph.ID) []egraph.Node {
	return g.classes[g.Find(id)]
}

// Add inserts a node, canonicalizing its children first. An existing
// structurally identical node returns its class instead of a new one.
func (g *EGraph) Add(n egraph.Node) egraph.ID {
	canon := n.MapChildren(g.Find)
	key := canon.String()
	if id, ok := g.memo[key]; ok {
		return g.Find(id)
	}
	id := egraph.ID(len(g.parent))
	g.parent = append(g.parent, id)
	g.classes[id] = []egraph.Node{canon}
	g.memo[key] = id
	return id
}

// Leaf inserts a childless node.
func (g *EGraph) Leaf(op string) egraph.ID {
	return g.Add(egraph.Leaf(op))
}

// Union merges the classes containing a and b and returns the merged
// representative. Callers must Rebuild before matching.
func (g *EGraph) Union(a, b egraph.ID) egraph.ID {
	ra, rb := g.Find(a), g.Find(b)
	if ra == rb {
		return ra
	}
	if len(g.classes[rb]) > len(g.classes[ra]) {
		ra, rb = rb, ra
	}
	g.parent[rb] = ra
	g.classes[ra] = append(g.classes[ra], g.classes[rb]...)
	delete(g.classes, rb)
	return ra
}

// Rebuild restores the invariants matching relies on: node children point at
// canonical ids, congruent nodes share a class, node lists are deduped and
// sorted. Runs to a fixpoint since each merge can expose further congruences.
func (g *EGraph) Rebuild() {
	for g.rebuildOnce() {
	}
}

// rebuildOnce canonicalizes every class once and reports whether any
// congruent classes were found and merged. Merges are deferred to the end of
// the pass so the class map is stable while it is rewritten.
func (g *EGraph) rebuildOnce() bool {
	g.memo = make(map[string]egraph.ID)

	type congruence struct{ a, b egraph.ID }
	var pending []congruence

	for id, nodes := range g.classes {
		seen := make(map[string]struct{}, len(nodes))
		canon := make([]egraph.Node, 0, len(nodes))
		for i := range nodes {
			n := nodes[i].MapChildren(g.Find)
			key := n.String()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			canon = append(canon, n)

			if other, ok := g.memo[key]; ok && other != id {
				pending = append(pending, congruence{other, id})
			} else {
				g.memo[key] = id
			}
		}
		sort.Slice(canon, func(i, j int) bool {
			return canon[i].Compare(&canon[j]) < 0
		})
		g.classes[id] = canon
	}

	for _, c := range pending {
		if g.Find(c.a) != g.Find(c.b) {
			g.Union(c.a, c.b)
		}
	}
	return len(pending) > 0
}
