package forkset

import (
	"sort"
)

// Kind selects which rule sets a chronology covers.
type Kind int

const (
	// All covers base and transition rule sets alike.
	All Kind = iota
	// Base covers only plain and composed rule sets.
	Base
	// Transition covers only transition rule sets.
	Transition
)

func (k Kind) String() string {
	switch k {
	case All:
		return "all"
	case Base:
		return "base"
	case Transition:
		return "transition"
	}
	return "unknown"
}

func (k Kind) selects(r *RuleSet) bool {
	switch k {
	case Base:
		return !r.IsTransition()
	case Transition:
		return r.IsTransition()
	}
	return true
}

// OrderedList returns the chain's rule sets of the requested kind, ordered
// from earliest to latest protocol version. The order is a topological sort
// over the parent relation restricted to the candidate set, with two
// deterministic tie-breaks:
//
//   - initial zero-in-degree candidates are ordered by ascending depth of
//     their full inheritance chain (then by name), so the true genesis rule
//     set sorts first even when disconnected candidates exist;
//   - children released together are ordered by name.
//
// Every parent precedes every child, and two calls on the same registry
// state return identical sequences. A cycle, an empty candidate set or an
// unknown chain is a fatal ConfigError; OrderedList never returns a partial
// order.
func OrderedList(reg *Registry, chainID string, kind Kind) ([]*RuleSet, error) {
	chain, err := reg.ChainRuleSets(chainID)
	if err != nil {
		return nil, err
	}

	candidates := make([]*RuleSet, 0, len(chain))
	inSet := make(map[*RuleSet]bool, len(chain))
	for _, rs := range chain {
		if kind.selects(rs) {
			candidates = append(candidates, rs)
			inSet[rs] = true
		}
	}
	if len(candidates) == 0 {
		return nil, configErrorf("OrderedList", "chain %q has no %s rule sets", chainID, kind)
	}
	// Map iteration order must not leak into the result.
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].name < candidates[j].name })

	// Edge parent -> child exists when both ends are candidates.
	inDegree := make(map[*RuleSet]int, len(candidates))
	children := make(map[*RuleSet][]*RuleSet, len(candidates))
	for _, rs := range candidates {
		if p := rs.parent; p != nil && inSet[p] {
			inDegree[rs]++
			children[p] = append(children[p], rs)
		}
	}

	var queue []*RuleSet
	for _, rs := range candidates {
		if inDegree[rs] == 0 {
			queue = append(queue, rs)
		}
	}
	if len(queue) == 0 {
		return nil, configErrorf("OrderedList", "chain %q: no root rule set, parent relation is cyclic", chainID)
	}
	sort.SliceStable(queue, func(i, j int) bool {
		di, dj := queue[i].depth(), queue[j].depth()
		if di != dj {
			return di < dj
		}
		return queue[i].name < queue[j].name
	})

	ordered := make([]*RuleSet, 0, len(candidates))
	for len(queue) > 0 {
		rs := queue[0]
		queue = queue[1:]
		ordered = append(ordered, rs)

		var released []*RuleSet
		for _, child := range children[rs] {
			inDegree[child]--
			if inDegree[child] == 0 {
				released = append(released, child)
			}
		}
		sort.Slice(released, func(i, j int) bool { return released[i].name < released[j].name })
		queue = append(queue, released...)
	}
	if len(ordered) != len(candidates) {
		return nil, configErrorf("OrderedList",
			"chain %q: parent relation is cyclic, %d of %d rule sets unreachable",
			chainID, len(candidates)-len(ordered), len(candidates))
	}
	return ordered, nil
}
