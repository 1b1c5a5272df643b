package forkset

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/sirupsen/logrus"
)

// DefineTransition synthesizes a rule set that behaves like from before the
// activation threshold and like to from the threshold on. The guard is
// "blockNumber >= atBlock AND timestamp >= atTimestamp"; there is no reverse
// transition. Attribute dispatch happens in RuleSet.delegate, driven by the
// attribute table: prefer-to (genesis-only) attributes pin to the
// destination side unconditionally, everything else follows the guard.
//
// The synthesized set carries its own name, distinct from both sides, and
// inherits deployment/ignore metadata and tool-compatibility strings from
// the from side. Querying it at (HeadBlock, HeadTime) is equivalent to the
// source's no-argument query: fully transitioned.
//
// Definition fails with a ConfigError when:
//   - the attribute table does not cover the full attribute set (the
//     dispatch would silently skip attributes otherwise);
//   - the name collides with either side's name;
//   - either side is itself a transition rule set;
//   - from is not an ancestor-or-equal of to in the parent tree.
func DefineTransition(name string, from, to *RuleSet, atBlock idx.Block, atTime Timestamp) (*RuleSet, error) {
	if err := verifyAttributeTable(); err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, configErrorf("DefineTransition", "%q: both sides must be non-nil", name)
	}
	if name == from.name || name == to.name {
		return nil, configErrorf("DefineTransition", "%q: transition name must differ from both sides", name)
	}
	if from.IsTransition() || to.IsTransition() {
		return nil, configErrorf("DefineTransition", "%q: sides must be plain rule sets", name)
	}
	if !isAncestorOrEqual(from, to) {
		return nil, configErrorf("DefineTransition",
			"%q: %q is not an ancestor of %q in the parent tree", name, from.name, to.name)
	}

	logrus.WithFields(logrus.Fields{
		"name": name, "from": from.name, "to": to.name,
		"atBlock": uint64(atBlock), "atTime": uint64(atTime),
	}).Debug("defined transition rule set")

	return &RuleSet{
		name:     name,
		parent:   from,
		deployed: from.deployed,
		ignore:   from.ignore,
		compat:   from.compat,
		transition: &transitionRule{
			from:    from,
			to:      to,
			atBlock: atBlock,
			atTime:  atTime,
		},
	}, nil
}

// MustDefineTransition is DefineTransition for chain definition packages,
// where a failure is a broken build. It panics on error.
func MustDefineTransition(name string, from, to *RuleSet, atBlock idx.Block, atTime Timestamp) *RuleSet {
	rs, err := DefineTransition(name, from, to, atBlock, atTime)
	if err != nil {
		panic(err)
	}
	return rs
}

// TransitionSides returns the two sides and the activation threshold of a
// transition rule set. The ok return is false for plain rule sets.
func (r *RuleSet) TransitionSides() (from, to *RuleSet, atBlock idx.Block, atTime Timestamp, ok bool) {
	if r.transition == nil {
		return nil, nil, 0, 0, false
	}
	tr := r.transition
	return tr.from, tr.to, tr.atBlock, tr.atTime, true
}

// isAncestorOrEqual reports whether a is on b's parent chain (or a == b).
func isAncestorOrEqual(a, b *RuleSet) bool {
	for r := b; r != nil; r = r.parent {
		if r == a {
			return true
		}
	}
	return false
}
