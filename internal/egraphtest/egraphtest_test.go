package egraphtest

import (
	"testing"

	"github.com/coregx/ematch/egraph"
)

func TestAdd_Hashconses(t *testing.T) {
	g := New()
	a := g.Leaf("x")
	b := g.Leaf("x")
	if a != b {
		t.Errorf("adding the same leaf twice returned %d and %d", a, b)
	}

	f1 := g.Add(egraph.New("f", a))
	f2 := g.Add(egraph.New("f", b))
	if f1 != f2 {
		t.Errorf("adding the same node twice returned %d and %d", f1, f2)
	}
}

func TestUnion_MergesClasses(t *testing.T) {
	g := New()
	x := g.Leaf("x")
	y := g.Leaf("y")

	merged := g.Union(x, y)
	if g.Find(x) != g.Find(y) || g.Find(x) != merged {
		t.Fatalf("union did not merge: find(x)=%d find(y)=%d merged=%d", g.Find(x), g.Find(y), merged)
	}
	if n := len(g.ClassNodes(x)); n != 2 {
		t.Errorf("merged class has %d nodes, want 2", n)
	}
}

func TestRebuild_RestoresCongruence(t *testing.T) {
	g := New()
	x := g.Leaf("x")
	y := g.Leaf("y")
	fx := g.Add(egraph.New("f", x))
	fy := g.Add(egraph.New("f", y))
	if g.Find(fx) == g.Find(fy) {
		t.Fatal("f(x) and f(y) must start in different classes")
	}

	g.Union(x, y)
	g.Rebuild()

	// f(x) and f(y) are congruent once x = y.
	if g.Find(fx) != g.Find(fy) {
		t.Errorf("rebuild did not merge congruent classes: %d vs %d", g.Find(fx), g.Find(fy))
	}
	if n := len(g.ClassNodes(fx)); n != 1 {
		t.Errorf("congruent class has %d nodes after dedup, want 1", n)
	}
}

func TestRebuild_SortsAndCanonicalizesNodeLists(t *testing.T) {
	g := New()
	a, b, c := g.Leaf("a"), g.Leaf("b"), g.Leaf("c")
	root := g.Add(egraph.New("+", a, b))
	root = g.Union(root, g.Add(egraph.New("*", b, c)))
	root = g.Union(root, g.Add(egraph.New("+", c, a)))
	g.Union(a, c)
	g.Rebuild()

	nodes := g.ClassNodes(root)
	for i := 1; i < len(nodes); i++ {
		if nodes[i-1].Compare(&nodes[i]) > 0 {
			t.Fatalf("node list not sorted at %d: %s > %s", i, nodes[i-1].String(), nodes[i].String())
		}
	}
	for i := range nodes {
		nodes[i].ForEachChild(func(_ int, id egraph.ID) {
			if g.Find(id) != id {
				t.Errorf("node %s has non-canonical child %d", nodes[i].String(), id)
			}
		})
	}
}
