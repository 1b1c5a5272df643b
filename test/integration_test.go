package test

import (
	"errors"
	"testing"

	"github.com/rony4d/go-forkset/forkset"
	"github.com/rony4d/go-forkset/forkset/ethereum"
	"github.com/rony4d/go-forkset/integration"
)

// These tests exercise the presets end to end: populate a registry, walk the
// chronology, compose features and resolve attributes across a transition —
// the same path the CLI commands take.

// TestMainnetPreset_populate verifies the mainnet profile: the canonical
// partition is filled, only deployed forks are enumerable and nothing extra
// is composed on top.
func TestMainnetPreset_populate(t *testing.T) {
	preset := integration.MainnetPreset()
	reg := forkset.NewRegistry()
	if err := preset.Populate(reg); err != nil {
		t.Fatalf("Populate failed: %v", err)
	}

	if preset.ChainID != forkset.MainnetChainID {
		t.Fatalf("ChainID = %q, want %q", preset.ChainID, forkset.MainnetChainID)
	}

	forks, err := preset.Forks(reg)
	if err != nil {
		t.Fatalf("Forks failed: %v", err)
	}
	for _, rs := range forks {
		if !rs.Deployed() {
			t.Fatalf("mainnet preset exposed development fork %s", rs.Name())
		}
	}
	last := forks[len(forks)-1]
	if last.Name() != "Prague" {
		t.Fatalf("newest deployed fork = %s, want Prague", last.Name())
	}
}

// TestDevnetPreset_populate verifies the fixture profile: its own partition,
// development forks visible, and the pending feature set composed onto the
// chain tip under its composed name.
func TestDevnetPreset_populate(t *testing.T) {
	preset := integration.DevnetPreset()
	reg := forkset.NewRegistry()
	if err := preset.Populate(reg); err != nil {
		t.Fatalf("Populate failed: %v", err)
	}

	forks, err := preset.Forks(reg)
	if err != nil {
		t.Fatalf("Forks failed: %v", err)
	}
	foundDev := false
	for _, rs := range forks {
		if !rs.Deployed() {
			foundDev = true
		}
	}
	if !foundDev {
		t.Fatal("devnet preset should expose development forks")
	}

	composed, err := reg.RuleSetByName(preset.ChainID, "Osaka+EIP-2537+EIP-7623")
	if err != nil {
		t.Fatalf("composed tip not registered: %v", err)
	}
	addrs, err := composed.Precompiles(forkset.HeadBlock, forkset.HeadTime)
	if err != nil {
		t.Fatalf("Precompiles failed: %v", err)
	}
	base, err := ethereum.Osaka.Precompiles(forkset.HeadBlock, forkset.HeadTime)
	if err != nil {
		t.Fatalf("Precompiles failed: %v", err)
	}
	// EIP-2537's seven BLS precompiles land on top of the tip's. The tip
	// already lists them via Prague, so the composed set carries both.
	if len(addrs) != len(base)+7 {
		t.Fatalf("composed precompiles = %d, want %d", len(addrs), len(base)+7)
	}

	// The mainnet partition is untouched by the devnet preset.
	if _, err := reg.ChainRuleSets("ethereum-devnet"); err != nil {
		t.Fatalf("devnet partition missing: %v", err)
	}
}

// TestGetPresetByName covers lookup and the error path.
func TestGetPresetByName(t *testing.T) {
	for _, name := range []string{"mainnet", "devnet"} {
		preset, err := integration.GetPresetByName(name)
		if err != nil {
			t.Fatalf("GetPresetByName(%q) failed: %v", name, err)
		}
		if preset.Name != name {
			t.Fatalf("Name = %q, want %q", preset.Name, name)
		}
	}
	for _, name := range []string{"", "unknown", "MAINNET"} {
		if _, err := integration.GetPresetByName(name); err == nil {
			t.Fatalf("GetPresetByName(%q) should fail", name)
		}
	}
}

// TestEndToEnd_transitionWalk drives the full path a fixture generator
// takes: populate, pick a transition from the chronology, resolve attributes
// on both sides of its activation point.
func TestEndToEnd_transitionWalk(t *testing.T) {
	preset := integration.MainnetPreset()
	reg := forkset.NewRegistry()
	if err := preset.Populate(reg); err != nil {
		t.Fatalf("Populate failed: %v", err)
	}

	transitions, err := forkset.OrderedList(reg, preset.ChainID, forkset.Transition)
	if err != nil {
		t.Fatalf("OrderedList failed: %v", err)
	}
	if len(transitions) == 0 {
		t.Fatal("no transition rule sets registered")
	}

	tr := transitions[0] // BerlinToLondonAt5
	from, to, atBlock, _, ok := tr.TransitionSides()
	if !ok {
		t.Fatalf("%s is not a transition", tr.Name())
	}
	if from.Name() != "Berlin" || to.Name() != "London" {
		t.Fatalf("first transition is %s->%s, want Berlin->London", from.Name(), to.Name())
	}

	before, err := tr.BaseFeeRequired(atBlock-1, 0)
	if err != nil {
		t.Fatalf("BaseFeeRequired failed: %v", err)
	}
	after, err := tr.BaseFeeRequired(atBlock, 0)
	if err != nil {
		t.Fatalf("BaseFeeRequired failed: %v", err)
	}
	if before || !after {
		t.Fatalf("base fee requirement = (%v, %v) around block %d, want (false, true)", before, after, uint64(atBlock))
	}

	// The attribute sweep the describe command performs must answer or
	// fail cleanly for every name on every rule set.
	chain, err := reg.ChainRuleSets(preset.ChainID)
	if err != nil {
		t.Fatalf("ChainRuleSets failed: %v", err)
	}
	for _, rs := range chain {
		for _, name := range forkset.AttributeNames() {
			if _, err := forkset.QueryAttribute(rs, name, forkset.HeadBlock, forkset.HeadTime); err != nil {
				if !errors.Is(err, forkset.ErrUnsupported) {
					t.Fatalf("QueryAttribute(%s, %s) failed: %v", rs.Name(), name, err)
				}
			}
		}
	}
}
