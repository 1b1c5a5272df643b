package ethereum

import (
	"testing"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-forkset/forkset"
)

func idxBlock(n uint64) idx.Block { return idx.Block(n) }

func ruleSetNames(list []*forkset.RuleSet) []string {
	out := make([]string, len(list))
	for i, rs := range list {
		out[i] = rs.Name()
	}
	return out
}

// TestMainnetChronology pins the full mainnet fork order.
func TestMainnetChronology(t *testing.T) {
	reg := forkset.NewRegistry()
	RegisterInto(reg)

	ordered, err := forkset.OrderedList(reg, forkset.MainnetChainID, forkset.Base)
	require.NoError(t, err)
	want := []string{
		"Frontier", "Homestead", "Byzantium", "Constantinople", "Istanbul",
		"Berlin", "London", "GrayGlacier", "Paris", "Shanghai", "Cancun",
		"Prague", "Osaka",
	}
	assert.Equal(t, want, ruleSetNames(ordered))

	transitions, err := forkset.OrderedList(reg, forkset.MainnetChainID, forkset.Transition)
	require.NoError(t, err)
	want = []string{
		"BerlinToLondonAt5", "ParisToShanghaiAtTime15k", "ShanghaiToCancunAtTime15k",
		"CancunToPragueAtTime15k", "PragueToOsakaAtTime15k",
	}
	assert.Equal(t, want, ruleSetNames(transitions))
}

// TestRegistryContents checks RuleSets and the feature registrations.
func TestRegistryContents(t *testing.T) {
	all := RuleSets()
	assert.Len(t, all, 18)
	for name, rs := range all {
		assert.Equal(t, name, rs.Name())
	}

	reg := forkset.NewRegistry()
	RegisterInto(reg)

	rs, err := reg.RuleSetByName(forkset.MainnetChainID, "Prague")
	require.NoError(t, err)
	assert.Equal(t, Prague, rs)

	f, ok := reg.FeatureByID(7702)
	require.True(t, ok)
	assert.Equal(t, EIP7702, f)
	_, ok = reg.FeatureByID(1559)
	assert.False(t, ok, "EIP-1559 ships only as part of London, not as a feature")
}

// TestBerlinToLondonBoundary walks the block-activated transition across its
// threshold: London's fee market appears exactly at block 5.
func TestBerlinToLondonBoundary(t *testing.T) {
	tr := BerlinToLondonAt5

	for _, block := range []uint64{0, 4} {
		rs := tr.RuleSetAt(idxBlock(block), 0)
		assert.Equal(t, "Berlin", rs.Name(), "block %d", block)

		required, err := tr.BaseFeeRequired(idxBlock(block), 0)
		require.NoError(t, err)
		assert.False(t, required, "block %d", block)

		_, err = tr.InitialBaseFee(idxBlock(block), 0)
		assert.ErrorIs(t, err, forkset.ErrUnsupported, "block %d", block)
	}
	for _, block := range []uint64{5, 6, 100} {
		rs := tr.RuleSetAt(idxBlock(block), 0)
		assert.Equal(t, "London", rs.Name(), "block %d", block)

		required, err := tr.BaseFeeRequired(idxBlock(block), 0)
		require.NoError(t, err)
		assert.True(t, required, "block %d", block)
	}
}

// TestTimeActivatedTransitions walks one timestamp-activated transition and
// checks the genesis pinning of the destination side.
func TestTimeActivatedTransitions(t *testing.T) {
	tr := ShanghaiToCancunAtTime15k

	rs := tr.RuleSetAt(0, 14999)
	assert.Equal(t, "Shanghai", rs.Name())
	rs = tr.RuleSetAt(0, 15000)
	assert.Equal(t, "Cancun", rs.Name())

	// Blob fields only appear in headers after the switch...
	required, err := tr.ExcessBlobGasRequired(0, 0)
	require.NoError(t, err)
	assert.False(t, required)

	// ...but the blob schedule and the genesis allocation answer from the
	// destination side even at genesis: the beacon roots contract must
	// exist from block zero on a chain that will reach Cancun.
	sched, err := tr.BlobSchedule(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sched.Target)

	alloc, err := tr.PreAlloc(0, 0)
	require.NoError(t, err)
	cancunGenesis, err := Cancun.PreAlloc(0, 0)
	require.NoError(t, err)
	assert.Equal(t, cancunGenesis, alloc)

	// Fully transitioned, the rule set is indistinguishable from Cancun.
	assert.Equal(t, Cancun, tr.RuleSetAt(forkset.HeadBlock, forkset.HeadTime))
}

// TestTransitionQueries checks the chronology filters over the canonical
// transitions.
func TestTransitionQueries(t *testing.T) {
	reg := forkset.NewRegistry()
	RegisterInto(reg)

	into, err := forkset.TransitionsInto(reg, forkset.MainnetChainID, Cancun)
	require.NoError(t, err)
	assert.Equal(t, []string{"ShanghaiToCancunAtTime15k"}, ruleSetNames(into))

	between, err := forkset.TransitionBetween(reg, forkset.MainnetChainID, Berlin, London)
	require.NoError(t, err)
	assert.Equal(t, []string{"BerlinToLondonAt5"}, ruleSetNames(between))

	between, err = forkset.TransitionBetween(reg, forkset.MainnetChainID, Berlin, Cancun)
	require.NoError(t, err)
	assert.Empty(t, between)
}

// TestForkRanges spot-checks the range queries against the mainnet chain.
func TestForkRanges(t *testing.T) {
	reg := forkset.NewRegistry()
	RegisterInto(reg)

	forks, err := forkset.ForksFrom(reg, forkset.MainnetChainID, Shanghai)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shanghai", "Cancun", "Prague", "Osaka"}, ruleSetNames(forks))

	forks, err = forkset.ForksBetween(reg, forkset.MainnetChainID, London, Cancun)
	require.NoError(t, err)
	assert.Equal(t, []string{"London", "Paris", "Shanghai", "Cancun"}, ruleSetNames(forks))

	dev, err := forkset.DevelopmentForks(reg, forkset.MainnetChainID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Osaka"}, ruleSetNames(dev))

	span := forkset.FromUntil(Paris, Prague)
	assert.Equal(t, []string{"Paris", "Shanghai", "Cancun", "Prague"}, ruleSetNames(span))
}
