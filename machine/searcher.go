package machine

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/coregx/ematch/egraph"
)

// DefaultLinearScanCutoff is the class size at which classSearcher switches
// from a linear contiguous-run scan to sentinel binary search.
const DefaultLinearScanCutoff = 100

// classSearcher is a lazy cursor over the nodes of one e-class that match a
// template's shape (operator and arity; children ignored).
//
// Both strategies rely on the class node list being sorted under
// egraph.Node.Compare, which keeps same-shape nodes contiguous:
//
//   - below the cutoff, a linear scan finds the first matching node and
//     extends the run while nodes keep matching;
//   - at or above it, two sentinel copies of the template (children forced
//     to 0 and to egraph.MaxID) are binary-searched for their insertion
//     points, and the interval between them is exactly the matching run.
//
// If the sort contract is broken, matches outside the first run are silently
// missed; under strictChecks every yielded node is re-verified and a
// mismatch aborts.
type classSearcher struct {
	template *egraph.Node
	run      []egraph.Node
	pos      int
}

func newClassSearcher(template *egraph.Node, nodes []egraph.Node, cutoff int) classSearcher {
	var run []egraph.Node
	if len(nodes) < cutoff {
		run = linearRun(template, nodes)
	} else {
		run = sortedRun(template, nodes)
	}
	return classSearcher{template: template, run: run}
}

// next returns the next matching node, or false when the run is exhausted.
func (s *classSearcher) next() (*egraph.Node, bool) {
	if s.pos >= len(s.run) {
		return nil, false
	}
	n := &s.run[s.pos]
	s.pos++
	if strictChecks && !s.template.Matches(n) {
		panic(errors.AssertionFailedf(
			"class node list broke the contiguity contract: %s does not match template %s",
			n.String(), s.template.String()))
	}
	return n, true
}

// linearRun scans to the first node matching the template and extends while
// nodes keep matching, returning that single contiguous run.
func linearRun(template *egraph.Node, nodes []egraph.Node) []egraph.Node {
	start := -1
	for i := range nodes {
		if template.Matches(&nodes[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	end := start + 1
	for end < len(nodes) && template.Matches(&nodes[end]) {
		end++
	}
	return nodes[start:end]
}

// sortedRun binary-searches the sorted node list for the insertion points of
// two sentinel nodes bracketing every node of the template's shape.
func sortedRun(template *egraph.Node, nodes []egraph.Node) []egraph.Node {
	lo := template.MapChildren(func(egraph.ID) egraph.ID { return 0 })
	hi := template.MapChildren(func(egraph.ID) egraph.ID { return egraph.MaxID })

	start := sort.Search(len(nodes), func(i int) bool {
		return nodes[i].Compare(&lo) >= 0
	})
	count := sort.Search(len(nodes)-start, func(i int) bool {
		return nodes[start+i].Compare(&hi) >= 0
	})
	if strictChecks && start+count < len(nodes) && nodes[start+count].Compare(&hi) == 0 {
		// A node with a MaxID child cannot exist; MaxID is reserved.
		panic(errors.AssertionFailedf("class contains sentinel node %s", hi.String()))
	}
	return nodes[start : start+count]
}
