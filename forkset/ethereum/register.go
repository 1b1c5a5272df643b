package ethereum

import (
	"github.com/rony4d/go-forkset/forkset"
)

// The canonical transition rule sets. Each one behaves like its from side
// before the activation point and like its to side after it; fixtures use
// them to exercise the switchover itself.
var (
	// BerlinToLondonAt5 activates London at block 5.
	BerlinToLondonAt5 = forkset.MustDefineTransition(
		"BerlinToLondonAt5", Berlin, London, 5, 0)

	// ParisToShanghaiAtTime15k activates Shanghai at timestamp 15000.
	ParisToShanghaiAtTime15k = forkset.MustDefineTransition(
		"ParisToShanghaiAtTime15k", Paris, Shanghai, 0, 15000)

	// ShanghaiToCancunAtTime15k activates Cancun at timestamp 15000.
	ShanghaiToCancunAtTime15k = forkset.MustDefineTransition(
		"ShanghaiToCancunAtTime15k", Shanghai, Cancun, 0, 15000)

	// CancunToPragueAtTime15k activates Prague at timestamp 15000.
	CancunToPragueAtTime15k = forkset.MustDefineTransition(
		"CancunToPragueAtTime15k", Cancun, Prague, 0, 15000)

	// PragueToOsakaAtTime15k activates Osaka at timestamp 15000.
	PragueToOsakaAtTime15k = forkset.MustDefineTransition(
		"PragueToOsakaAtTime15k", Prague, Osaka, 0, 15000)
)

// RuleSets returns every rule set this package declares, keyed by name.
func RuleSets() map[string]*forkset.RuleSet {
	all := []*forkset.RuleSet{
		Frontier, Homestead, Byzantium, Constantinople, Istanbul,
		Berlin, London, GrayGlacier, Paris, Shanghai, Cancun, Prague, Osaka,
		BerlinToLondonAt5, ParisToShanghaiAtTime15k,
		ShanghaiToCancunAtTime15k, CancunToPragueAtTime15k,
		PragueToOsakaAtTime15k,
	}
	m := make(map[string]*forkset.RuleSet, len(all))
	for _, rs := range all {
		m[rs.Name()] = rs
	}
	return m
}

// RegisterInto populates a registry with the mainnet rule sets and the
// registered features. Call it exactly once per registry, before any query.
func RegisterInto(reg *forkset.Registry) {
	reg.Register(forkset.MainnetChainID, RuleSets())
	for _, f := range Features() {
		reg.RegisterFeature(f)
	}
}

// Register populates the process-wide default registry.
func Register() {
	RegisterInto(forkset.Default())
}
