package forkset

import (
	"github.com/sirupsen/logrus"
)

// MainnetChainID is the chain identifier that is always present: the default
// Registry partition external tooling queries when no chain is named.
const MainnetChainID = "ethereum-mainnet"

// Registry is the store mapping chain identifiers to their named rule sets,
// plus a table of features by EIP id. Population happens once at start-up,
// before any query is issued; after that the registry is read-only and safe
// for concurrent readers. Callers building multiple chains concurrently must
// serialize registration or use one Registry per chain.
type Registry struct {
	chains   map[string]map[string]*RuleSet
	features map[int]*Feature
}

// NewRegistry returns an empty registry. Most programs use the process-wide
// default via the package-level Register/ChainRuleSets helpers; isolated
// registries exist for tests and for concurrent multi-chain construction.
func NewRegistry() *Registry {
	return &Registry{
		chains:   make(map[string]map[string]*RuleSet),
		features: make(map[int]*Feature),
	}
}

// Register merges the named rule sets into the chain's entry, creating the
// entry if the chain is new. Same-named rule sets are overwritten, which is
// how alternative chains override mainnet definitions.
func (reg *Registry) Register(chainID string, ruleSets map[string]*RuleSet) {
	chain, ok := reg.chains[chainID]
	if !ok {
		chain = make(map[string]*RuleSet, len(ruleSets))
		reg.chains[chainID] = chain
	}
	for name, rs := range ruleSets {
		if _, exists := chain[name]; exists {
			logrus.WithFields(logrus.Fields{"chain": chainID, "ruleset": name}).
				Debug("overriding registered rule set")
		}
		chain[name] = rs
	}
	logrus.WithFields(logrus.Fields{"chain": chainID, "count": len(ruleSets)}).
		Debug("registered rule sets")
}

// RegisterFeature inserts a feature by its EIP id. Re-registering an id
// overwrites the previous entry silently; the last registration wins.
func (reg *Registry) RegisterFeature(f *Feature) {
	if _, exists := reg.features[f.ID]; exists {
		logrus.WithField("eip", f.ID).Debug("overriding registered feature")
	}
	reg.features[f.ID] = f
}

// FeatureByID looks a feature up by EIP id. The second return reports
// whether the id is registered.
func (reg *Registry) FeatureByID(id int) (*Feature, bool) {
	f, ok := reg.features[id]
	return f, ok
}

// ChainRuleSets returns the named rule sets of a chain. Unknown chain
// identifiers are a configuration error: lookups only make sense after the
// chain's definition package has registered.
func (reg *Registry) ChainRuleSets(chainID string) (map[string]*RuleSet, error) {
	chain, ok := reg.chains[chainID]
	if !ok {
		return nil, configErrorf("ChainRuleSets", "unknown chain %q", chainID)
	}
	return chain, nil
}

// RuleSetByName looks up one rule set of a chain by name.
func (reg *Registry) RuleSetByName(chainID, name string) (*RuleSet, error) {
	chain, err := reg.ChainRuleSets(chainID)
	if err != nil {
		return nil, err
	}
	rs, ok := chain[name]
	if !ok {
		return nil, configErrorf("RuleSetByName", "chain %q has no rule set %q", chainID, name)
	}
	return rs, nil
}

// defaultRegistry is the process-wide store. Chain definition packages
// populate it from their registration routines at program start-up.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Register merges rule sets into a chain of the process-wide registry.
func Register(chainID string, ruleSets map[string]*RuleSet) {
	defaultRegistry.Register(chainID, ruleSets)
}

// RegisterFeature inserts a feature into the process-wide registry.
func RegisterFeature(f *Feature) {
	defaultRegistry.RegisterFeature(f)
}

// FeatureByID looks a feature up in the process-wide registry.
func FeatureByID(id int) (*Feature, bool) {
	return defaultRegistry.FeatureByID(id)
}

// ChainRuleSets returns a chain's rule sets from the process-wide registry.
func ChainRuleSets(chainID string) (map[string]*RuleSet, error) {
	return defaultRegistry.ChainRuleSets(chainID)
}
