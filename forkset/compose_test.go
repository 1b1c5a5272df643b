package forkset

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(b byte) common.Address {
	return common.BytesToAddress([]byte{b})
}

func composeBase(t *testing.T) *RuleSet {
	t.Helper()
	return New(Definition{
		Name:     "ComposeBase",
		Deployed: true,
		Attrs: Attributes{
			BlockReward: ConstBig(big.NewInt(11)),
			Precompiles: ConstAddresses([]common.Address{addr(1), addr(2)}),
			TxTypes:     ConstTxTypes([]TxType{0}),
			GasCosts: ConstGasCosts(GasCosts{
				TxGas:            21000,
				TxDataNonZeroGas: 68,
			}),
		},
	})
}

// TestComposeAdditive checks that list-valued deltas fold in list order on
// top of the base values, and that attributes no feature touches fall
// through to the base unchanged.
func TestComposeAdditive(t *testing.T) {
	base := composeBase(t)
	f1 := &Feature{ID: 100, Precompiles: AppendAddresses(addr(10))}
	f2 := &Feature{ID: 200, Precompiles: AppendAddresses(addr(20)), TxTypes: AppendTxTypes(2)}

	composed, err := Compose(base, []*Feature{f1, f2})
	require.NoError(t, err)

	assert.Equal(t, "ComposeBase+EIP-100+EIP-200", composed.Name())
	assert.Equal(t, base, composed.Parent())
	assert.False(t, composed.Deployed())

	pre, err := composed.Precompiles(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{addr(1), addr(2), addr(10), addr(20)}, pre)

	types, err := composed.TxTypes(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []TxType{0, 2}, types)

	// Untouched attribute falls through.
	reward, err := composed.BlockReward(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(11), reward.Int64())

	// The base itself is not mutated by composition.
	basePre, err := base.Precompiles(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{addr(1), addr(2)}, basePre)
}

// TestComposeTxTypeDedup checks that a feature re-declaring an existing
// envelope type adds nothing: first appearance wins.
func TestComposeTxTypeDedup(t *testing.T) {
	base := composeBase(t)
	f := &Feature{ID: 300, TxTypes: AppendTxTypes(1, 0, 1, 3)}

	composed, err := Compose(base, []*Feature{f})
	require.NoError(t, err)

	types, err := composed.TxTypes(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []TxType{0, 1, 3}, types)
}

// TestComposeGasPrecedence checks the reverse fold of gas overrides: when two
// features override the same field, the first-listed feature wins, while
// non-conflicting overrides from both survive.
func TestComposeGasPrecedence(t *testing.T) {
	base := composeBase(t)
	first := &Feature{ID: 1, GasCosts: func(g GasCosts) GasCosts {
		g.TxDataNonZeroGas = 16
		return g
	}}
	second := &Feature{ID: 2, GasCosts: func(g GasCosts) GasCosts {
		g.TxDataNonZeroGas = 40
		g.TxCreateGas = 32000
		return g
	}}

	composed, err := Compose(base, []*Feature{first, second})
	require.NoError(t, err)

	gas, err := composed.GasCosts(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(16), gas.TxDataNonZeroGas, "first-listed feature must win")
	assert.Equal(t, uint64(32000), gas.TxCreateGas)
	assert.Equal(t, uint64(21000), gas.TxGas, "untouched field falls through")

	// Listing order is significant: swapping the features flips the winner.
	swapped, err := Compose(base, []*Feature{second, first})
	require.NoError(t, err)
	gas, err = swapped.GasCosts(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), gas.TxDataNonZeroGas)
}

// TestComposeEmpty checks the degenerate composition: same name, same
// attribute values, still a distinct development rule set.
func TestComposeEmpty(t *testing.T) {
	base := composeBase(t)
	composed, err := Compose(base, nil)
	require.NoError(t, err)

	assert.Equal(t, base.Name(), composed.Name())
	assert.False(t, composed.Deployed())
	assert.NotEqual(t, base, composed)

	gas, err := composed.GasCosts(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), gas.TxGas)
}

// TestComposeRelations checks the requires/incompatibleWith validation.
func TestComposeRelations(t *testing.T) {
	base := composeBase(t)
	needs := &Feature{ID: 10, Requires: []int{20}}
	dep := &Feature{ID: 20}
	clash := &Feature{ID: 30, IncompatibleWith: []int{10}}

	tests := []struct {
		name     string
		features []*Feature
		ok       bool
	}{
		{"requirement satisfied", []*Feature{needs, dep}, true},
		{"requirement missing", []*Feature{needs}, false},
		{"incompatible pair", []*Feature{needs, dep, clash}, false},
		{"incompatible absent", []*Feature{clash, dep}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(base, tt.features)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrFeatureConflict)
			}
		})
	}
}

// TestComposeTransitionBase checks that a transition rule set is rejected as
// a composition base: a transition holds no attribute table of its own, and
// folding onto it would drop every base attribute. Either side composes fine.
func TestComposeTransitionBase(t *testing.T) {
	from := composeBase(t)
	to := New(Definition{Name: "ComposeTo", Parent: from})
	tr := MustDefineTransition("ComposeFromToTo", from, to, 5, 0)

	f := &Feature{ID: 1, Precompiles: AppendAddresses(addr(9))}

	_, err := Compose(tr, []*Feature{f})
	assert.ErrorIs(t, err, ErrConfig)

	composed, err := Compose(to, []*Feature{f})
	require.NoError(t, err)
	reward, err := composed.BlockReward(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(11), reward.Int64(), "untouched attribute falls through to the base")
}

// TestComposeFeatures checks that the composed set reports its own feature
// list and that a copy is returned.
func TestComposeFeatures(t *testing.T) {
	base := composeBase(t)
	f := &Feature{ID: 7}
	composed, err := Compose(base, []*Feature{f})
	require.NoError(t, err)

	feats := composed.Features()
	require.Len(t, feats, 1)
	assert.Equal(t, f, feats[0])
	assert.Empty(t, base.Features())

	feats[0] = nil
	assert.Equal(t, f, composed.Features()[0], "Features must return a copy")
}
