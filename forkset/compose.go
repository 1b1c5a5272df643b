package forkset

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// Compose builds a rule set from a base plus an ordered list of features,
// folding each feature's deltas into the base attributes:
//
//   - Precompiles and system contracts fold in list order, so the base
//     addresses come first and each feature's contributions follow in the
//     order the features were listed.
//   - Transaction types fold in list order and are then de-duplicated
//     preserving first appearance, so a feature re-declaring an existing
//     type adds nothing.
//   - Gas costs fold in reverse list order: the first-listed feature is
//     applied last and therefore wins conflicting overrides.
//
// Attributes no feature touches fall through to the base unchanged. The
// composed rule set keeps the base as its parent and reports the feature
// list through Features.
//
// Compose validates the declared requires/incompatibleWith relations of
// every feature against the composed list and fails with a
// FeatureConflictError on violation.
//
// The base must be a plain rule set. A transition carries no attribute
// table of its own (every query routes to one of its sides), so composing
// onto one is a ConfigError; compose onto the side instead.
func Compose(base *RuleSet, features []*Feature) (*RuleSet, error) {
	if base.transition != nil {
		return nil, configErrorf("compose", "base %s is a transition rule set, compose onto one of its sides", base.name)
	}
	if err := checkFeatureRelations(features); err != nil {
		return nil, err
	}

	feats := append([]*Feature(nil), features...)
	r := &RuleSet{
		name:     composedName(base, feats),
		parent:   base,
		deployed: false, // composed sets are development constructs
		ignore:   base.ignore,
		compat:   base.compat,
		attrs:    base.attrs,
		features: feats,
	}

	if anyDelta(feats, func(f *Feature) bool { return f.Precompiles != nil }) {
		inner := base.attrs.Precompiles
		r.attrs.Precompiles = func(num idx.Block, t Timestamp) []common.Address {
			var v []common.Address
			if inner != nil {
				v = inner(num, t)
			}
			for _, f := range feats {
				if f.Precompiles != nil {
					v = f.Precompiles(v)
				}
			}
			return v
		}
	}

	if anyDelta(feats, func(f *Feature) bool { return f.SystemContracts != nil }) {
		inner := base.attrs.SystemContracts
		r.attrs.SystemContracts = func(num idx.Block, t Timestamp) []common.Address {
			var v []common.Address
			if inner != nil {
				v = inner(num, t)
			}
			for _, f := range feats {
				if f.SystemContracts != nil {
					v = f.SystemContracts(v)
				}
			}
			return v
		}
	}

	if anyDelta(feats, func(f *Feature) bool { return f.TxTypes != nil }) {
		inner := base.attrs.TxTypes
		r.attrs.TxTypes = func(num idx.Block, t Timestamp) []TxType {
			var v []TxType
			if inner != nil {
				v = inner(num, t)
			}
			for _, f := range feats {
				if f.TxTypes != nil {
					v = f.TxTypes(v)
				}
			}
			return dedupTxTypes(v)
		}
	}

	if anyDelta(feats, func(f *Feature) bool { return f.GasCosts != nil }) {
		inner := base.attrs.GasCosts
		r.attrs.GasCosts = func(num idx.Block, t Timestamp) GasCosts {
			var v GasCosts
			if inner != nil {
				v = inner(num, t)
			}
			for i := len(feats) - 1; i >= 0; i-- {
				if f := feats[i]; f.GasCosts != nil {
					v = f.GasCosts(v)
				}
			}
			return v
		}
	}

	return r, nil
}

// checkFeatureRelations enforces the declared requires/incompatibleWith
// lists against the composed feature list itself.
func checkFeatureRelations(features []*Feature) error {
	present := make(map[int]bool, len(features))
	for _, f := range features {
		present[f.ID] = true
	}
	for _, f := range features {
		for _, req := range f.Requires {
			if !present[req] {
				return &FeatureConflictError{Feature: f.ID, Other: req, Relation: "requires"}
			}
		}
		for _, inc := range f.IncompatibleWith {
			if present[inc] {
				return &FeatureConflictError{Feature: f.ID, Other: inc, Relation: "incompatible"}
			}
		}
	}
	return nil
}

func composedName(base *RuleSet, feats []*Feature) string {
	if len(feats) == 0 {
		return base.name
	}
	parts := make([]string, len(feats))
	for i, f := range feats {
		parts[i] = fmt.Sprintf("EIP-%d", f.ID)
	}
	return base.name + "+" + strings.Join(parts, "+")
}

func dedupTxTypes(types []TxType) []TxType {
	seen := make(map[TxType]bool, len(types))
	out := types[:0]
	for _, tt := range types {
		if !seen[tt] {
			seen[tt] = true
			out = append(out, tt)
		}
	}
	return out
}

func anyDelta(feats []*Feature, pred func(*Feature) bool) bool {
	for _, f := range feats {
		if pred(f) {
			return true
		}
	}
	return false
}
