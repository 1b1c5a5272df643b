package forkset

import (
	"errors"
	"math/big"
	"testing"
)

// newTestFork builds a minimal rule set for graph tests. Only the block
// reward attribute is populated; chronology never looks at attributes.
func newTestFork(name string, parent *RuleSet, reward int64) *RuleSet {
	return New(Definition{
		Name:     name,
		Parent:   parent,
		Deployed: true,
		Attrs: Attributes{
			BlockReward: ConstBig(big.NewInt(reward)),
		},
	})
}

// testChain registers a three-fork chain alpha -> beta -> gamma into a fresh
// registry and returns everything tests need.
func testChain(t *testing.T) (*Registry, *RuleSet, *RuleSet, *RuleSet) {
	t.Helper()
	alpha := newTestFork("Alpha", nil, 5)
	beta := newTestFork("Beta", alpha, 3)
	gamma := newTestFork("Gamma", beta, 2)
	reg := NewRegistry()
	reg.Register("testchain", map[string]*RuleSet{
		"Alpha": alpha, "Beta": beta, "Gamma": gamma,
	})
	return reg, alpha, beta, gamma
}

func names(list []*RuleSet) []string {
	out := make([]string, len(list))
	for i, rs := range list {
		out[i] = rs.Name()
	}
	return out
}

func equalNames(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestOrderedListChain verifies topological correctness on a plain chain:
// every parent precedes its child and the full sequence matches the parent
// pointers.
func TestOrderedListChain(t *testing.T) {
	reg, _, _, _ := testChain(t)

	ordered, err := OrderedList(reg, "testchain", Base)
	if err != nil {
		t.Fatalf("OrderedList failed: %v", err)
	}
	want := []string{"Alpha", "Beta", "Gamma"}
	if got := names(ordered); !equalNames(got, want) {
		t.Errorf("OrderedList = %v, want %v", got, want)
	}

	pos := make(map[*RuleSet]int)
	for i, rs := range ordered {
		pos[rs] = i
	}
	for _, rs := range ordered {
		if p := rs.Parent(); p != nil {
			if pos[p] >= pos[rs] {
				t.Errorf("parent %s does not precede child %s", p.Name(), rs.Name())
			}
		}
	}
}

// TestOrderedListDeterminism runs the sort repeatedly on a branchy graph and
// requires identical output every time: map iteration order must not leak.
func TestOrderedListDeterminism(t *testing.T) {
	root := newTestFork("Root", nil, 0)
	// Several siblings released together, plus a deeper chain.
	children := map[string]*RuleSet{"Root": root}
	for _, name := range []string{"Zeta", "Mid", "Echo", "Kilo"} {
		children[name] = newTestFork(name, root, 0)
	}
	children["Leaf"] = newTestFork("Leaf", children["Mid"], 0)

	reg := NewRegistry()
	reg.Register("branchy", children)

	first, err := OrderedList(reg, "branchy", Base)
	if err != nil {
		t.Fatalf("OrderedList failed: %v", err)
	}
	for i := 0; i < 50; i++ {
		again, err := OrderedList(reg, "branchy", Base)
		if err != nil {
			t.Fatalf("OrderedList failed on run %d: %v", i, err)
		}
		if !equalNames(names(first), names(again)) {
			t.Fatalf("run %d differs: %v vs %v", i, names(first), names(again))
		}
	}

	// Siblings released together come out name-ascending.
	want := []string{"Root", "Echo", "Kilo", "Mid", "Zeta", "Leaf"}
	if got := names(first); !equalNames(got, want) {
		t.Errorf("OrderedList = %v, want %v", got, want)
	}
}

// TestOrderedListStartCandidateDepth covers the first tie-break: among
// disconnected zero-in-degree candidates, the shallowest inheritance chain
// sorts first, so the true genesis fork leads even when a fork whose parent
// is outside the candidate set would sort earlier by name.
func TestOrderedListStartCandidateDepth(t *testing.T) {
	genesis := newTestFork("ZGenesis", nil, 0) // name sorts last, depth sorts first
	middle := newTestFork("Middle", genesis, 0)
	orphanParent := newTestFork("Hidden", middle, 0) // not registered
	orphan := newTestFork("AOrphan", orphanParent, 0)

	reg := NewRegistry()
	reg.Register("gapped", map[string]*RuleSet{
		"ZGenesis": genesis, "Middle": middle, "AOrphan": orphan,
	})

	ordered, err := OrderedList(reg, "gapped", Base)
	if err != nil {
		t.Fatalf("OrderedList failed: %v", err)
	}
	want := []string{"ZGenesis", "AOrphan", "Middle"}
	if got := names(ordered); !equalNames(got, want) {
		t.Errorf("OrderedList = %v, want %v", got, want)
	}
}

// TestOrderedListKinds verifies the candidate selection per kind.
func TestOrderedListKinds(t *testing.T) {
	reg, _, beta, gamma := testChain(t)
	tr, err := DefineTransition("BetaToGamma", beta, gamma, 7, 0)
	if err != nil {
		t.Fatalf("DefineTransition failed: %v", err)
	}
	reg.Register("testchain", map[string]*RuleSet{"BetaToGamma": tr})

	tests := []struct {
		kind Kind
		want []string
	}{
		{Base, []string{"Alpha", "Beta", "Gamma"}},
		{Transition, []string{"BetaToGamma"}},
		{All, []string{"Alpha", "Beta", "BetaToGamma", "Gamma"}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			ordered, err := OrderedList(reg, "testchain", tt.kind)
			if err != nil {
				t.Fatalf("OrderedList(%v) failed: %v", tt.kind, err)
			}
			if got := names(ordered); !equalNames(got, tt.want) {
				t.Errorf("OrderedList(%v) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

// TestOrderedListErrors covers the fatal configuration cases: unknown chain,
// empty candidate set and a cyclic parent relation.
func TestOrderedListErrors(t *testing.T) {
	reg, _, _, _ := testChain(t)

	if _, err := OrderedList(reg, "no-such-chain", All); !errors.Is(err, ErrConfig) {
		t.Errorf("unknown chain: got %v, want ErrConfig", err)
	}

	if _, err := OrderedList(reg, "testchain", Transition); !errors.Is(err, ErrConfig) {
		t.Errorf("empty candidate set: got %v, want ErrConfig", err)
	}

	// A cycle can only be constructed by reaching into the unexported
	// parent pointer; declaration alone cannot produce one.
	a := newTestFork("CycA", nil, 0)
	b := newTestFork("CycB", a, 0)
	a.parent = b
	cyc := NewRegistry()
	cyc.Register("cyclic", map[string]*RuleSet{"CycA": a, "CycB": b})
	if _, err := OrderedList(cyc, "cyclic", Base); !errors.Is(err, ErrConfig) {
		t.Errorf("cycle: got %v, want ErrConfig", err)
	}
}

// TestOrderedListPartialCycle verifies that a reachable root does not mask a
// cycle elsewhere: the sort must fail rather than return a truncated order.
func TestOrderedListPartialCycle(t *testing.T) {
	root := newTestFork("Root", nil, 0)
	a := newTestFork("LoopA", nil, 0)
	b := newTestFork("LoopB", a, 0)
	a.parent = b

	reg := NewRegistry()
	reg.Register("partial", map[string]*RuleSet{"Root": root, "LoopA": a, "LoopB": b})

	if _, err := OrderedList(reg, "partial", Base); !errors.Is(err, ErrConfig) {
		t.Errorf("partial cycle: got %v, want ErrConfig", err)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{All, "all"}, {Base, "base"}, {Transition, "transition"}, {Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
