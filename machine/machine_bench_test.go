package machine

import (
	"strconv"
	"testing"

	"github.com/coregx/ematch/egraph"
	"github.com/coregx/ematch/internal/egraphtest"
	"github.com/coregx/ematch/pattern"
)

// benchGraph builds one class with n binary +-nodes among distractor shapes.
func benchGraph(n int) (*egraphtest.EGraph, egraph.ID) {
	g := egraphtest.New()
	var leaves []egraph.ID
	for i := 0; i < n+1; i++ {
		leaves = append(leaves, g.Leaf("c"+strconv.Itoa(i)))
	}
	root := g.Add(egraph.New("+", leaves[0], leaves[1]))
	for i := 1; i < n; i++ {
		root = g.Union(root, g.Add(egraph.New("+", leaves[i], leaves[i+1])))
	}
	for i := 0; i < n; i++ {
		root = g.Union(root, g.Add(egraph.New("*", leaves[i], leaves[i])))
	}
	g.Rebuild()
	return g, root
}

func benchmarkRun(b *testing.B, classSize int) {
	g, root := benchGraph(classSize)
	pat := pattern.MustNew(
		pattern.VarSlot("?x"),
		pattern.VarSlot("?y"),
		pattern.NodeSlot(egraph.New("+", 0, 1)),
	)
	prog, err := Compile(pat)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if substs := prog.Run(g, root); len(substs) != classSize {
			b.Fatalf("got %d matches, want %d", len(substs), classSize)
		}
	}
}

func BenchmarkRun_SmallClass(b *testing.B)  { benchmarkRun(b, 16) }
func BenchmarkRun_MediumClass(b *testing.B) { benchmarkRun(b, 96) }
func BenchmarkRun_LargeClass(b *testing.B)  { benchmarkRun(b, 1024) }

func BenchmarkCompile(b *testing.B) {
	pat := pattern.MustNew(
		pattern.VarSlot("?x"),
		pattern.NodeSlot(egraph.Leaf("2")),
		pattern.NodeSlot(egraph.New("*", 0, 1)),
		pattern.VarSlot("?y"),
		pattern.NodeSlot(egraph.New("+", 2, 3)),
	)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compile(pat); err != nil {
			b.Fatal(err)
		}
	}
}
