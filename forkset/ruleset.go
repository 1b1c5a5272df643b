package forkset

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
)

// RuleSet is one named, immutable version of the protocol rules. Every
// attribute query is a pure function of (block number, timestamp) plus the
// immutable state captured at construction, so a built RuleSet is safe for
// concurrent readers.
//
// Three construction paths exist:
//   - New(Definition): a base fork extending its parent
//   - Compose(base, features): a base fork plus folded feature deltas
//   - DefineTransition(...): a synthesized rule set switching between two
//     adjacent rule sets at an activation threshold
type RuleSet struct {
	name     string
	parent   *RuleSet
	deployed bool
	ignore   bool
	compat   map[string]string // opaque tool-compatibility strings, passed through verbatim

	attrs Attributes // fully resolved against the parent chain

	features   []*Feature      // non-nil only for composed rule sets
	transition *transitionRule // non-nil only for transition rule sets
}

// transitionRule is the state machine behind a transition rule set. The two
// states are the from and to sides; the single transition fires when both
// the block number and the timestamp reach the threshold.
type transitionRule struct {
	from    *RuleSet
	to      *RuleSet
	atBlock idx.Block
	atTime  Timestamp
}

func (tr *transitionRule) activated(num idx.Block, t Timestamp) bool {
	return num >= tr.atBlock && t >= tr.atTime
}

// Definition declares a base fork. Nil Attrs fields inherit the parent's
// resolved attribute functions; non-nil fields override them.
type Definition struct {
	Name     string
	Parent   *RuleSet // nil only for the chain's genesis rule set
	Deployed bool
	Ignore   bool              // skip in default enumeration (fork exists only for completeness)
	Compat   map[string]string // opaque tool-compatibility strings
	Attrs    Attributes
}

// New builds a RuleSet from a definition. The parent's resolved attribute
// table is copied and the definition's non-nil overrides applied on top, so
// resolution never walks the parent chain at query time.
func New(def Definition) *RuleSet {
	r := &RuleSet{
		name:     def.Name,
		parent:   def.Parent,
		deployed: def.Deployed,
		ignore:   def.Ignore,
		compat:   def.Compat,
	}
	if def.Parent != nil {
		r.attrs = def.Parent.attrs
	}
	mergeAttributes(&r.attrs, def.Attrs)
	return r
}

// mergeAttributes applies every non-nil function field of src onto dst.
// The two structs contain only function fields, checked by
// verifyAttributeTable, so the reflection here is a plain field walk.
func mergeAttributes(dst *Attributes, src Attributes) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src)
	for i := 0; i < sv.NumField(); i++ {
		if !sv.Field(i).IsNil() {
			dv.Field(i).Set(sv.Field(i))
		}
	}
}

// verifyAttributeTable checks that attrTable and the Attributes struct
// describe the same attribute set, field for field, and that every field is
// a function. Transition synthesis calls this before building dispatchers:
// a mismatch means some attribute would silently escape dispatch, which is a
// fatal configuration error rather than a gap to tolerate.
func verifyAttributeTable() error {
	at := reflect.TypeOf(Attributes{})
	if at.NumField() != int(attrCount) {
		return configErrorf("verifyAttributeTable",
			"attribute table has %d entries but Attributes has %d fields", attrCount, at.NumField())
	}
	for i := 0; i < at.NumField(); i++ {
		f := at.Field(i)
		if f.Type.Kind() != reflect.Func {
			return configErrorf("verifyAttributeTable", "Attributes.%s is not a function", f.Name)
		}
		if attrTable[i].name != f.Name {
			return configErrorf("verifyAttributeTable",
				"attribute table entry %d is %q, Attributes field is %q", i, attrTable[i].name, f.Name)
		}
		if attrTable[i].invoke == nil {
			return configErrorf("verifyAttributeTable", "attribute %q has no invoker", f.Name)
		}
	}
	return nil
}

// Name returns the rule set's unique name within its chain. For transition
// rule sets this is the synthetic name, never the name of either side.
func (r *RuleSet) Name() string { return r.name }

// Parent returns the immediately preceding protocol version, or nil for the
// chain's genesis rule set. A transition rule set's parent is its from side.
func (r *RuleSet) Parent() *RuleSet { return r.parent }

// Deployed reports whether the rule set is live on the target chain, as
// opposed to a development fork.
func (r *RuleSet) Deployed() bool { return r.deployed }

// Ignored reports whether default enumeration should skip this rule set.
func (r *RuleSet) Ignored() bool { return r.ignore }

// Compat returns the opaque tool-compatibility strings attached at
// declaration. The engine never interprets them.
func (r *RuleSet) Compat() map[string]string { return r.compat }

// IsTransition reports whether this rule set switches between two sides.
func (r *RuleSet) IsTransition() bool { return r.transition != nil }

// Features returns the feature list of a composed rule set in declaration
// order, or nil for plain rule sets.
func (r *RuleSet) Features() []*Feature {
	return append([]*Feature(nil), r.features...)
}

// RuleSetAt returns the concrete rule set active at the given position: for
// transition rule sets the from or to side as a whole, for everything else
// the receiver itself. Components needing "the rule set active right now"
// (rather than one attribute) must use this instead of per-attribute queries.
func (r *RuleSet) RuleSetAt(num idx.Block, t Timestamp) *RuleSet {
	if r.transition == nil {
		return r
	}
	if r.transition.activated(num, t) {
		return r.transition.to
	}
	return r.transition.from
}

// String implements fmt.Stringer.
func (r *RuleSet) String() string {
	switch {
	case r.transition != nil:
		return fmt.Sprintf("%s(%s->%s)", r.name, r.transition.from.name, r.transition.to.name)
	case r.parent != nil:
		return fmt.Sprintf("%s(parent=%s)", r.name, r.parent.name)
	default:
		return r.name
	}
}

// depth is the length of the parent chain down to the ultimate root.
// Chronology uses it to order disconnected start candidates.
func (r *RuleSet) depth() int {
	d := 0
	for p := r.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// delegate resolves which rule set actually answers an attribute query. For
// plain rule sets this is the receiver. For transition rule sets the
// prefer-to attributes pin to the destination side unconditionally; all
// other attributes follow the activation guard.
func (r *RuleSet) delegate(id attrID, num idx.Block, t Timestamp) *RuleSet {
	if r.transition == nil {
		return r
	}
	if attrTable[id].preferTo {
		return r.transition.to
	}
	return r.RuleSetAt(num, t)
}

func (r *RuleSet) unsupported(id attrID) error {
	return &AttributeError{RuleSet: r.name, Attribute: attrTable[id].name}
}

// Attribute accessors. Each one routes through delegate with its attrID and
// reports an AttributeError when the resolved rule set has no implementation.

// BlockReward returns the coinbase reward per block in wei.
func (r *RuleSet) BlockReward(num idx.Block, t Timestamp) (*big.Int, error) {
	rs := r.delegate(attrBlockReward, num, t)
	if rs.attrs.BlockReward == nil {
		return nil, r.unsupported(attrBlockReward)
	}
	return rs.attrs.BlockReward(num, t), nil
}

// BaseFeeMaxChangeDenominator returns the EIP-1559 base fee change bound.
func (r *RuleSet) BaseFeeMaxChangeDenominator(num idx.Block, t Timestamp) (uint64, error) {
	rs := r.delegate(attrBaseFeeMaxChangeDenominator, num, t)
	if rs.attrs.BaseFeeMaxChangeDenominator == nil {
		return 0, r.unsupported(attrBaseFeeMaxChangeDenominator)
	}
	return rs.attrs.BaseFeeMaxChangeDenominator(num, t), nil
}

// ElasticityMultiplier returns the EIP-1559 gas limit elasticity bound.
func (r *RuleSet) ElasticityMultiplier(num idx.Block, t Timestamp) (uint64, error) {
	rs := r.delegate(attrElasticityMultiplier, num, t)
	if rs.attrs.ElasticityMultiplier == nil {
		return 0, r.unsupported(attrElasticityMultiplier)
	}
	return rs.attrs.ElasticityMultiplier(num, t), nil
}

// InitialBaseFee returns the base fee of the first EIP-1559 block in wei.
func (r *RuleSet) InitialBaseFee(num idx.Block, t Timestamp) (uint64, error) {
	rs := r.delegate(attrInitialBaseFee, num, t)
	if rs.attrs.InitialBaseFee == nil {
		return 0, r.unsupported(attrInitialBaseFee)
	}
	return rs.attrs.InitialBaseFee(num, t), nil
}

// GasCosts returns the transaction-level gas cost record.
func (r *RuleSet) GasCosts(num idx.Block, t Timestamp) (GasCosts, error) {
	rs := r.delegate(attrGasCosts, num, t)
	if rs.attrs.GasCosts == nil {
		return GasCosts{}, r.unsupported(attrGasCosts)
	}
	return rs.attrs.GasCosts(num, t), nil
}

// TxGasLimitCap returns the per-transaction gas limit cap.
func (r *RuleSet) TxGasLimitCap(num idx.Block, t Timestamp) (uint64, error) {
	rs := r.delegate(attrTxGasLimitCap, num, t)
	if rs.attrs.TxGasLimitCap == nil {
		return 0, r.unsupported(attrTxGasLimitCap)
	}
	return rs.attrs.TxGasLimitCap(num, t), nil
}

// Precompiles returns the active precompiled contract addresses.
func (r *RuleSet) Precompiles(num idx.Block, t Timestamp) ([]common.Address, error) {
	rs := r.delegate(attrPrecompiles, num, t)
	if rs.attrs.Precompiles == nil {
		return nil, r.unsupported(attrPrecompiles)
	}
	return rs.attrs.Precompiles(num, t), nil
}

// SystemContracts returns the active system contract addresses.
func (r *RuleSet) SystemContracts(num idx.Block, t Timestamp) ([]common.Address, error) {
	rs := r.delegate(attrSystemContracts, num, t)
	if rs.attrs.SystemContracts == nil {
		return nil, r.unsupported(attrSystemContracts)
	}
	return rs.attrs.SystemContracts(num, t), nil
}

// ValidOpcodes returns the opcodes accepted by the rule set's EVM.
func (r *RuleSet) ValidOpcodes(num idx.Block, t Timestamp) ([]vm.OpCode, error) {
	rs := r.delegate(attrValidOpcodes, num, t)
	if rs.attrs.ValidOpcodes == nil {
		return nil, r.unsupported(attrValidOpcodes)
	}
	return rs.attrs.ValidOpcodes(num, t), nil
}

// TxTypes returns the accepted transaction envelope types.
func (r *RuleSet) TxTypes(num idx.Block, t Timestamp) ([]TxType, error) {
	rs := r.delegate(attrTxTypes, num, t)
	if rs.attrs.TxTypes == nil {
		return nil, r.unsupported(attrTxTypes)
	}
	return rs.attrs.TxTypes(num, t), nil
}

// ContractCreatingTxTypes returns the envelope types that may deploy code.
func (r *RuleSet) ContractCreatingTxTypes(num idx.Block, t Timestamp) ([]TxType, error) {
	rs := r.delegate(attrContractCreatingTxTypes, num, t)
	if rs.attrs.ContractCreatingTxTypes == nil {
		return nil, r.unsupported(attrContractCreatingTxTypes)
	}
	return rs.attrs.ContractCreatingTxTypes(num, t), nil
}

// MaxCodeSize returns the deployed-code size limit in bytes.
func (r *RuleSet) MaxCodeSize(num idx.Block, t Timestamp) (uint64, error) {
	rs := r.delegate(attrMaxCodeSize, num, t)
	if rs.attrs.MaxCodeSize == nil {
		return 0, r.unsupported(attrMaxCodeSize)
	}
	return rs.attrs.MaxCodeSize(num, t), nil
}

// MaxInitcodeSize returns the initcode size limit in bytes.
func (r *RuleSet) MaxInitcodeSize(num idx.Block, t Timestamp) (uint64, error) {
	rs := r.delegate(attrMaxInitcodeSize, num, t)
	if rs.attrs.MaxInitcodeSize == nil {
		return 0, r.unsupported(attrMaxInitcodeSize)
	}
	return rs.attrs.MaxInitcodeSize(num, t), nil
}

// BaseFeeRequired reports whether headers must carry a base fee.
func (r *RuleSet) BaseFeeRequired(num idx.Block, t Timestamp) (bool, error) {
	rs := r.delegate(attrBaseFeeRequired, num, t)
	if rs.attrs.BaseFeeRequired == nil {
		return false, r.unsupported(attrBaseFeeRequired)
	}
	return rs.attrs.BaseFeeRequired(num, t), nil
}

// PrevRandaoRequired reports whether headers carry prev-randao in place of
// a proof-of-work difficulty.
func (r *RuleSet) PrevRandaoRequired(num idx.Block, t Timestamp) (bool, error) {
	rs := r.delegate(attrPrevRandaoRequired, num, t)
	if rs.attrs.PrevRandaoRequired == nil {
		return false, r.unsupported(attrPrevRandaoRequired)
	}
	return rs.attrs.PrevRandaoRequired(num, t), nil
}

// WithdrawalsRequired reports whether headers must carry a withdrawals root.
func (r *RuleSet) WithdrawalsRequired(num idx.Block, t Timestamp) (bool, error) {
	rs := r.delegate(attrWithdrawalsRequired, num, t)
	if rs.attrs.WithdrawalsRequired == nil {
		return false, r.unsupported(attrWithdrawalsRequired)
	}
	return rs.attrs.WithdrawalsRequired(num, t), nil
}

// ExcessBlobGasRequired reports whether headers must carry blob gas fields.
func (r *RuleSet) ExcessBlobGasRequired(num idx.Block, t Timestamp) (bool, error) {
	rs := r.delegate(attrExcessBlobGasRequired, num, t)
	if rs.attrs.ExcessBlobGasRequired == nil {
		return false, r.unsupported(attrExcessBlobGasRequired)
	}
	return rs.attrs.ExcessBlobGasRequired(num, t), nil
}

// ParentBeaconRootRequired reports whether headers must carry the parent
// beacon block root.
func (r *RuleSet) ParentBeaconRootRequired(num idx.Block, t Timestamp) (bool, error) {
	rs := r.delegate(attrParentBeaconRootRequired, num, t)
	if rs.attrs.ParentBeaconRootRequired == nil {
		return false, r.unsupported(attrParentBeaconRootRequired)
	}
	return rs.attrs.ParentBeaconRootRequired(num, t), nil
}

// RequestsHashRequired reports whether headers must carry a requests hash.
func (r *RuleSet) RequestsHashRequired(num idx.Block, t Timestamp) (bool, error) {
	rs := r.delegate(attrRequestsHashRequired, num, t)
	if rs.attrs.RequestsHashRequired == nil {
		return false, r.unsupported(attrRequestsHashRequired)
	}
	return rs.attrs.RequestsHashRequired(num, t), nil
}

// EngineNewPayloadVersion returns the engine API newPayload version.
func (r *RuleSet) EngineNewPayloadVersion(num idx.Block, t Timestamp) (uint64, error) {
	rs := r.delegate(attrEngineNewPayloadVersion, num, t)
	if rs.attrs.EngineNewPayloadVersion == nil {
		return 0, r.unsupported(attrEngineNewPayloadVersion)
	}
	return rs.attrs.EngineNewPayloadVersion(num, t), nil
}

// EngineForkchoiceUpdatedVersion returns the engine API forkchoiceUpdated
// version.
func (r *RuleSet) EngineForkchoiceUpdatedVersion(num idx.Block, t Timestamp) (uint64, error) {
	rs := r.delegate(attrEngineForkchoiceUpdatedVersion, num, t)
	if rs.attrs.EngineForkchoiceUpdatedVersion == nil {
		return 0, r.unsupported(attrEngineForkchoiceUpdatedVersion)
	}
	return rs.attrs.EngineForkchoiceUpdatedVersion(num, t), nil
}

// EngineGetPayloadVersion returns the engine API getPayload version.
func (r *RuleSet) EngineGetPayloadVersion(num idx.Block, t Timestamp) (uint64, error) {
	rs := r.delegate(attrEngineGetPayloadVersion, num, t)
	if rs.attrs.EngineGetPayloadVersion == nil {
		return 0, r.unsupported(attrEngineGetPayloadVersion)
	}
	return rs.attrs.EngineGetPayloadVersion(num, t), nil
}

// BlobSchedule returns the blob throughput schedule. Genesis-only: on a
// transition rule set the destination side always answers.
func (r *RuleSet) BlobSchedule(num idx.Block, t Timestamp) (*BlobSchedule, error) {
	rs := r.delegate(attrBlobSchedule, num, t)
	if rs.attrs.BlobSchedule == nil {
		return nil, r.unsupported(attrBlobSchedule)
	}
	return rs.attrs.BlobSchedule(num, t), nil
}

// PreAlloc returns the genesis pre-allocation. Genesis-only: on a transition
// rule set the destination side always answers.
func (r *RuleSet) PreAlloc(num idx.Block, t Timestamp) (Alloc, error) {
	rs := r.delegate(attrPreAlloc, num, t)
	if rs.attrs.PreAlloc == nil {
		return nil, r.unsupported(attrPreAlloc)
	}
	return rs.attrs.PreAlloc(num, t), nil
}
