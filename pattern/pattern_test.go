package pattern

import (
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/coregx/ematch/egraph"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		slots   []Slot
		wantErr bool
	}{
		{
			name:    "empty",
			slots:   nil,
			wantErr: true,
		},
		{
			name:  "bare variable",
			slots: []Slot{VarSlot("?x")},
		},
		{
			name: "well-formed tree",
			slots: []Slot{
				VarSlot("?x"),
				NodeSlot(egraph.Leaf("1")),
				NodeSlot(egraph.New("+", 0, 1)),
			},
		},
		{
			name: "child references itself",
			slots: []Slot{
				NodeSlot(egraph.New("f", 0)),
			},
			wantErr: true,
		},
		{
			name: "child references a later slot",
			slots: []Slot{
				NodeSlot(egraph.New("f", 1)),
				VarSlot("?x"),
			},
			wantErr: true,
		},
		{
			name: "child out of range",
			slots: []Slot{
				VarSlot("?x"),
				NodeSlot(egraph.New("f", 7)),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.slots...)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("New() error = %v, want ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			if p.Len() != len(tt.slots) {
				t.Errorf("Len() = %d, want %d", p.Len(), len(tt.slots))
			}
		})
	}
}

func TestMustNew_PanicsOnMalformed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustNew did not panic on a malformed pattern")
		}
	}()
	MustNew(NodeSlot(egraph.New("f", 3)))
}

func TestPattern_Root(t *testing.T) {
	p := MustNew(
		VarSlot("?x"),
		NodeSlot(egraph.New("f", 0)),
	)
	root := p.Root()
	if root.Kind() != SlotNode || root.Node().Op() != "f" {
		t.Errorf("Root() = %s, want the f-template", root.String())
	}
}

func TestPattern_Vars(t *testing.T) {
	p := MustNew(
		VarSlot("?b"),
		VarSlot("?a"),
		VarSlot("?b"),
		NodeSlot(egraph.New("f", 0, 1, 2)),
	)
	vars := p.Vars()
	if len(vars) != 2 || vars[0] != "?b" || vars[1] != "?a" {
		t.Errorf("Vars() = %v, want [?b ?a]", vars)
	}
}

func TestPattern_String(t *testing.T) {
	p := MustNew(
		VarSlot("?x"),
		NodeSlot(egraph.New("f", 0)),
	)
	if got, want := p.String(), "[?x; f(0)]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSubst_GetAndOrder(t *testing.T) {
	s := NewSubst(
		Binding{Var: "?b", ID: 4},
		Binding{Var: "?a", ID: 9},
	)
	if id, ok := s.Get("?a"); !ok || id != 9 {
		t.Errorf("Get(?a) = %d, %v; want 9, true", id, ok)
	}
	if _, ok := s.Get("?missing"); ok {
		t.Error("Get(?missing) reported a binding")
	}
	if s.Len() != 2 || s.Binding(0).Var != "?b" {
		t.Errorf("binding order not preserved: %s", s)
	}
	if got, want := s.String(), "{?b: 4, ?a: 9}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
