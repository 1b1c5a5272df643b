package forkset

// Ordering and range queries over registered rule sets. Transition rule sets
// participate through resolution: a transition compares as its fully
// transitioned side, i.e. RuleSetAt(HeadBlock, HeadTime).

// resolve collapses a transition rule set to its destination side; plain
// rule sets resolve to themselves.
func resolve(r *RuleSet) *RuleSet {
	return r.RuleSetAt(HeadBlock, HeadTime)
}

// Newer reports a > b: the two differ and a resolves to a strict descendant
// of b's resolution in the parent tree.
func Newer(a, b *RuleSet) bool {
	if a == b {
		return false
	}
	ra, rb := resolve(a), resolve(b)
	return ra != rb && isAncestorOrEqual(rb, ra)
}

// NewerOrEqual reports a >= b.
func NewerOrEqual(a, b *RuleSet) bool {
	return a == b || Newer(a, b)
}

// Older reports a < b.
func Older(a, b *RuleSet) bool {
	return Newer(b, a)
}

// OlderOrEqual reports a <= b.
func OlderOrEqual(a, b *RuleSet) bool {
	return NewerOrEqual(b, a)
}

// FromUntil returns the contiguous ancestor chain from x to y inclusive,
// earliest first, by walking y's parent pointers back to x. The result is
// empty when x is not an ancestor-or-equal of y.
func FromUntil(x, y *RuleSet) []*RuleSet {
	var reversed []*RuleSet
	for r := y; r != nil; r = r.parent {
		reversed = append(reversed, r)
		if r == x {
			out := make([]*RuleSet, len(reversed))
			for i, rs := range reversed {
				out[len(out)-1-i] = rs
			}
			return out
		}
	}
	return nil
}

// NoParentsWithin returns the members of set that have no strictly older
// member: the entry points of an arbitrary fork subset.
func NoParentsWithin(set []*RuleSet) []*RuleSet {
	var out []*RuleSet
	for _, r := range set {
		entry := true
		for _, s := range set {
			if Newer(r, s) {
				entry = false
				break
			}
		}
		if entry {
			out = append(out, r)
		}
	}
	return out
}

// NoDescendantsWithin returns the members of set that have no strictly newer
// member: the leaves of an arbitrary fork subset.
func NoDescendantsWithin(set []*RuleSet) []*RuleSet {
	var out []*RuleSet
	for _, r := range set {
		leaf := true
		for _, s := range set {
			if Newer(s, r) {
				leaf = false
				break
			}
		}
		if leaf {
			out = append(out, r)
		}
	}
	return out
}

// TransitionsInto returns the chain's transition rule sets whose destination
// side is to, in chronological order.
func TransitionsInto(reg *Registry, chainID string, to *RuleSet) ([]*RuleSet, error) {
	transitions, err := OrderedList(reg, chainID, Transition)
	if err != nil {
		return nil, err
	}
	var out []*RuleSet
	for _, tr := range transitions {
		if tr.transition.to == to {
			out = append(out, tr)
		}
	}
	return out, nil
}

// TransitionBetween returns the chain's transition rule sets from x to y, in
// chronological order.
func TransitionBetween(reg *Registry, chainID string, x, y *RuleSet) ([]*RuleSet, error) {
	transitions, err := OrderedList(reg, chainID, Transition)
	if err != nil {
		return nil, err
	}
	var out []*RuleSet
	for _, tr := range transitions {
		if tr.transition.from == x && tr.transition.to == y {
			out = append(out, tr)
		}
	}
	return out, nil
}

// AllForks returns the chain's base rule sets in chronological order,
// skipping Ignore-flagged entries. This is the default enumeration used by
// test-generation tooling.
func AllForks(reg *Registry, chainID string) ([]*RuleSet, error) {
	ordered, err := OrderedList(reg, chainID, Base)
	if err != nil {
		return nil, err
	}
	var out []*RuleSet
	for _, rs := range ordered {
		if !rs.Ignored() {
			out = append(out, rs)
		}
	}
	return out, nil
}

// DeployedForks returns the deployed subset of AllForks.
func DeployedForks(reg *Registry, chainID string) ([]*RuleSet, error) {
	return filteredForks(reg, chainID, func(r *RuleSet) bool { return r.Deployed() })
}

// DevelopmentForks returns the not-yet-deployed subset of AllForks.
func DevelopmentForks(reg *Registry, chainID string) ([]*RuleSet, error) {
	return filteredForks(reg, chainID, func(r *RuleSet) bool { return !r.Deployed() })
}

// ForksFrom returns the subset of AllForks at or after x.
func ForksFrom(reg *Registry, chainID string, x *RuleSet) ([]*RuleSet, error) {
	return filteredForks(reg, chainID, func(r *RuleSet) bool { return NewerOrEqual(r, x) })
}

// ForksBetween returns the subset of AllForks between x and y inclusive.
func ForksBetween(reg *Registry, chainID string, x, y *RuleSet) ([]*RuleSet, error) {
	return filteredForks(reg, chainID, func(r *RuleSet) bool {
		return NewerOrEqual(r, x) && OlderOrEqual(r, y)
	})
}

func filteredForks(reg *Registry, chainID string, keep func(*RuleSet) bool) ([]*RuleSet, error) {
	forks, err := AllForks(reg, chainID)
	if err != nil {
		return nil, err
	}
	var out []*RuleSet
	for _, rs := range forks {
		if keep(rs) {
			out = append(out, rs)
		}
	}
	return out, nil
}
