// Package integration provides named chain presets: bundles of rule set
// registrations that tooling selects with a single flag instead of wiring a
// registry by hand.
//
// Usage:
//
//	preset, err := integration.GetPresetByName("devnet")
//	reg := forkset.NewRegistry()
//	err = preset.Populate(reg)
//
// Each preset populates one registry partition with the canonical Ethereum
// rule sets and decides which subset enumeration exposes.
package integration

import (
	"fmt"

	"github.com/rony4d/go-forkset/forkset"
	"github.com/rony4d/go-forkset/forkset/ethereum"
)

// Preset captures what varies across chain profiles: the registry partition,
// whether development forks are enumerable, and extra features composed onto
// the chain tip for fixture generation.
type Preset struct {
	Name               string // human-readable identifier (e.g. "mainnet", "devnet")
	ChainID            string // registry partition the preset populates
	IncludeDevelopment bool   // expose not-yet-deployed forks through Forks
	ExtraFeatures      []int  // EIP ids composed onto the chain tip during Populate
}

// MainnetPreset mirrors the live chain: only deployed forks are enumerable
// and nothing is composed on top.
func MainnetPreset() Preset {
	return Preset{
		Name:               "mainnet",
		ChainID:            forkset.MainnetChainID,
		IncludeDevelopment: false,
	}
}

// DevnetPreset is the fixture-generation profile: development forks are
// enumerable and pending features are composed onto the chain tip so
// fixtures can target "tip plus these EIPs" before a fork ships.
func DevnetPreset() Preset {
	return Preset{
		Name:               "devnet",
		ChainID:            "ethereum-devnet",
		IncludeDevelopment: true,
		ExtraFeatures:      []int{2537, 7623},
	}
}

// GetPresetByName looks a preset up by its string identifier. CLI flags like
// --preset=devnet resolve through here.
func GetPresetByName(name string) (Preset, error) {
	switch name {
	case "mainnet":
		return MainnetPreset(), nil
	case "devnet":
		return DevnetPreset(), nil
	default:
		return Preset{}, fmt.Errorf("unknown preset: %q (valid: mainnet, devnet)", name)
	}
}

// Populate registers the canonical rule sets and features into the preset's
// registry partition, then composes the preset's extra features onto the
// chain tip and registers the result under its composed name.
func (p Preset) Populate(reg *forkset.Registry) error {
	reg.Register(p.ChainID, ethereum.RuleSets())
	for _, f := range ethereum.Features() {
		reg.RegisterFeature(f)
	}

	if len(p.ExtraFeatures) == 0 {
		return nil
	}

	tip, err := p.tip(reg)
	if err != nil {
		return err
	}
	features := make([]*forkset.Feature, 0, len(p.ExtraFeatures))
	for _, id := range p.ExtraFeatures {
		f, ok := reg.FeatureByID(id)
		if !ok {
			return fmt.Errorf("preset %q: feature EIP-%d is not registered", p.Name, id)
		}
		features = append(features, f)
	}
	composed, err := forkset.Compose(tip, features)
	if err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	reg.Register(p.ChainID, map[string]*forkset.RuleSet{composed.Name(): composed})
	return nil
}

// Forks returns the preset's enumerable forks in chronological order,
// honoring the development visibility of the profile.
func (p Preset) Forks(reg *forkset.Registry) ([]*forkset.RuleSet, error) {
	if p.IncludeDevelopment {
		return forkset.AllForks(reg, p.ChainID)
	}
	return forkset.DeployedForks(reg, p.ChainID)
}

// tip returns the newest enumerable fork of the partition.
func (p Preset) tip(reg *forkset.Registry) (*forkset.RuleSet, error) {
	forks, err := p.Forks(reg)
	if err != nil {
		return nil, err
	}
	leaves := forkset.NoDescendantsWithin(forks)
	if len(leaves) == 0 {
		return nil, fmt.Errorf("preset %q: chain %q has no forks", p.Name, p.ChainID)
	}
	return leaves[len(leaves)-1], nil
}
