// Package forkset implements the fork/feature resolution engine: a registry
// of protocol rule sets ("forks"), incremental feature deltas ("EIPs"), the
// chronological ordering of rule sets, mixin-style composition of features
// onto a base rule set, and synthesized transition rule sets that switch
// between two adjacent rule sets at an activation point.
//
// This package provides:
//   - The RuleSet type: an immutable bundle of protocol-parameter queries,
//     every answer a pure function of (block number, timestamp)
//   - The Feature type: an optional, independently-registrable bundle of
//     deltas over a subset of RuleSet attributes
//   - A process-wide Registry keyed by chain identifier
//   - Chronology: deterministic topological ordering of registered rule sets
//   - Compose: delta-folding of features onto a base rule set
//   - DefineTransition: rule sets that switch from one side to the other at
//     a block/timestamp threshold
//   - Ordering and range queries over the chronology
//
// Registration happens once at start-up; after that every component is
// read-only and safe for concurrent readers.
package forkset

import (
	"math"
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
)

// Timestamp is a block timestamp in seconds since the Unix epoch.
type Timestamp uint64

// TxType is an EIP-2718 transaction envelope type identifier.
type TxType uint8

// Head sentinels. Querying a rule set at (HeadBlock, HeadTime) means "at the
// far end of the chain": on a transition rule set every guard resolves to the
// destination side. Callers that have no concrete position use these.
const (
	HeadBlock = idx.Block(math.MaxUint64)
	HeadTime  = Timestamp(math.MaxUint64)
)

// GasPerBlob is the blob gas consumed by a single blob (EIP-4844).
const GasPerBlob uint64 = 1 << 17

// GasCosts is the transaction-level gas cost record of a rule set. Zero is a
// meaningful value for several fields (e.g. TxCreateGas on Frontier), so the
// whole record is always fully populated by a fork definition.
type GasCosts struct {
	// TxGas is the flat cost charged for every transaction.
	TxGas uint64

	// TxCreateGas is the additional flat cost for contract-creating
	// transactions. Zero before Homestead.
	TxCreateGas uint64

	// TxDataZeroGas is the cost per zero byte of transaction payload.
	TxDataZeroGas uint64

	// TxDataNonZeroGas is the cost per non-zero byte of transaction payload.
	TxDataNonZeroGas uint64

	// TxAccessListAddressGas is the cost per address in an EIP-2930 access
	// list. Zero before Berlin.
	TxAccessListAddressGas uint64

	// TxAccessListStorageKeyGas is the cost per storage key in an EIP-2930
	// access list. Zero before Berlin.
	TxAccessListStorageKeyGas uint64

	// InitcodeWordGas is the cost per 32-byte word of initcode in a
	// contract-creating transaction (EIP-3860). Zero before Shanghai.
	InitcodeWordGas uint64

	// AuthorizationGas is the cost per authorization tuple of an EIP-7702
	// set-code transaction. Zero before Prague.
	AuthorizationGas uint64

	// StandardTokenGas is the per-token cost used by EIP-7623 calldata
	// accounting, where a zero byte counts as one token and a non-zero byte
	// as four.
	StandardTokenGas uint64

	// FloorTokenGas is the EIP-7623 per-token floor cost. Zero disables the
	// floor entirely (pre-Prague behaviour).
	FloorTokenGas uint64
}

// TxIntrinsicGas computes the intrinsic gas of a transaction under this cost
// record: the flat cost, payload costs, creation surcharge, access list and
// authorization costs, and, when FloorTokenGas is non-zero, the EIP-7623
// calldata floor.
func (g GasCosts) TxIntrinsicGas(zeroBytes, nonZeroBytes uint64, accessAddresses, accessKeys uint64, authorizations uint64, create bool, initcodeWords uint64) uint64 {
	gas := g.TxGas
	gas += zeroBytes * g.TxDataZeroGas
	gas += nonZeroBytes * g.TxDataNonZeroGas
	if create {
		gas += g.TxCreateGas
		gas += initcodeWords * g.InitcodeWordGas
	}
	gas += accessAddresses * g.TxAccessListAddressGas
	gas += accessKeys * g.TxAccessListStorageKeyGas
	gas += authorizations * g.AuthorizationGas

	if g.FloorTokenGas != 0 {
		tokens := zeroBytes + nonZeroBytes*4
		floor := g.TxGas + tokens*g.FloorTokenGas
		if floor > gas {
			return floor
		}
	}
	return gas
}

// BlobSchedule holds the blob throughput parameters of a rule set. It is a
// genesis-only attribute: a chain fixes its schedule once, so transition rule
// sets always answer with the destination side's schedule.
type BlobSchedule struct {
	Target                uint64 // target blobs per block
	Max                   uint64 // maximum blobs per block
	BaseFeeUpdateFraction uint64 // controls blob base fee responsiveness
	MinBlobGasPrice       uint64 // price floor in wei per blob gas
}

// TargetBlobGas returns the per-block blob gas target.
func (s BlobSchedule) TargetBlobGas() uint64 {
	return s.Target * GasPerBlob
}

// MaxBlobGas returns the per-block blob gas ceiling.
func (s BlobSchedule) MaxBlobGas() uint64 {
	return s.Max * GasPerBlob
}

// Account is a genesis account: balance, optional code and storage.
type Account struct {
	Balance *big.Int
	Nonce   uint64
	Code    []byte
	Storage map[common.Hash]common.Hash
}

// Alloc is a genesis pre-allocation: the accounts that exist at block zero.
// Like BlobSchedule it is genesis-only and pinned to the destination side of
// a transition rule set.
type Alloc map[common.Address]Account

// Copy returns a deep copy of the allocation. Definitions hand allocs to
// multiple forks, so queries must never share the underlying maps.
func (a Alloc) Copy() Alloc {
	cp := make(Alloc, len(a))
	for addr, acc := range a {
		acc.Balance = new(big.Int).Set(acc.Balance)
		if acc.Code != nil {
			code := make([]byte, len(acc.Code))
			copy(code, acc.Code)
			acc.Code = code
		}
		if acc.Storage != nil {
			st := make(map[common.Hash]common.Hash, len(acc.Storage))
			for k, v := range acc.Storage {
				st[k] = v
			}
			acc.Storage = st
		}
		cp[addr] = acc
	}
	return cp
}

// Attributes is the closed set of protocol queries a rule set can answer.
// Every field is a pure function of (block number, timestamp). In a
// Definition a nil field inherits the parent fork's function; a field that
// stays nil all the way to the root means the query is unsupported for that
// rule set and fails with an AttributeError.
//
// The set of fields must stay in lockstep with attrTable below; transition
// synthesis verifies the two agree and refuses to build otherwise.
type Attributes struct {
	// Rewards and fee market.
	BlockReward                 func(idx.Block, Timestamp) *big.Int
	BaseFeeMaxChangeDenominator func(idx.Block, Timestamp) uint64
	ElasticityMultiplier        func(idx.Block, Timestamp) uint64
	InitialBaseFee              func(idx.Block, Timestamp) uint64

	// Gas accounting.
	GasCosts      func(idx.Block, Timestamp) GasCosts
	TxGasLimitCap func(idx.Block, Timestamp) uint64

	// Address and opcode surfaces.
	Precompiles     func(idx.Block, Timestamp) []common.Address
	SystemContracts func(idx.Block, Timestamp) []common.Address
	ValidOpcodes    func(idx.Block, Timestamp) []vm.OpCode

	// Transaction envelopes.
	TxTypes                 func(idx.Block, Timestamp) []TxType
	ContractCreatingTxTypes func(idx.Block, Timestamp) []TxType

	// Code limits.
	MaxCodeSize     func(idx.Block, Timestamp) uint64
	MaxInitcodeSize func(idx.Block, Timestamp) uint64

	// Header field requirements.
	BaseFeeRequired          func(idx.Block, Timestamp) bool
	PrevRandaoRequired       func(idx.Block, Timestamp) bool
	WithdrawalsRequired      func(idx.Block, Timestamp) bool
	ExcessBlobGasRequired    func(idx.Block, Timestamp) bool
	ParentBeaconRootRequired func(idx.Block, Timestamp) bool
	RequestsHashRequired     func(idx.Block, Timestamp) bool

	// Engine API versions.
	EngineNewPayloadVersion        func(idx.Block, Timestamp) uint64
	EngineForkchoiceUpdatedVersion func(idx.Block, Timestamp) uint64
	EngineGetPayloadVersion        func(idx.Block, Timestamp) uint64

	// Genesis-only attributes: only meaningful at block zero, always pinned
	// to the destination side of a transition rule set.
	BlobSchedule func(idx.Block, Timestamp) *BlobSchedule
	PreAlloc     func(idx.Block, Timestamp) Alloc
}

// attrID indexes into attrTable. The constants must enumerate every field of
// Attributes, in declaration order.
type attrID int

const (
	attrBlockReward attrID = iota
	attrBaseFeeMaxChangeDenominator
	attrElasticityMultiplier
	attrInitialBaseFee
	attrGasCosts
	attrTxGasLimitCap
	attrPrecompiles
	attrSystemContracts
	attrValidOpcodes
	attrTxTypes
	attrContractCreatingTxTypes
	attrMaxCodeSize
	attrMaxInitcodeSize
	attrBaseFeeRequired
	attrPrevRandaoRequired
	attrWithdrawalsRequired
	attrExcessBlobGasRequired
	attrParentBeaconRootRequired
	attrRequestsHashRequired
	attrEngineNewPayloadVersion
	attrEngineForkchoiceUpdatedVersion
	attrEngineGetPayloadVersion
	attrBlobSchedule
	attrPreAlloc

	attrCount // must be last
)

// attrDesc describes one attribute for generic machinery: transition
// dispatch (the preferTo bit), completeness checking against the Attributes
// struct (the name) and uniform introspection (the invoker, used by the CLI
// and by tests that sweep the whole attribute set).
type attrDesc struct {
	name     string
	preferTo bool
	invoke   func(r *RuleSet, num idx.Block, t Timestamp) (interface{}, error)
}

// attrTable is the single source of truth for the attribute set. Order
// matches the attrID constants and the Attributes field order. Populated in
// init: the invoker closures call RuleSet accessors, which read attrTable
// for error reporting, and a plain var initializer would make that a
// package initialization cycle.
var attrTable [attrCount]attrDesc

func init() {
	attrTable = [attrCount]attrDesc{
		attrBlockReward: {name: "BlockReward", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.BlockReward(n, t)
		}},
		attrBaseFeeMaxChangeDenominator: {name: "BaseFeeMaxChangeDenominator", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.BaseFeeMaxChangeDenominator(n, t)
		}},
		attrElasticityMultiplier: {name: "ElasticityMultiplier", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.ElasticityMultiplier(n, t)
		}},
		attrInitialBaseFee: {name: "InitialBaseFee", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.InitialBaseFee(n, t)
		}},
		attrGasCosts: {name: "GasCosts", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.GasCosts(n, t)
		}},
		attrTxGasLimitCap: {name: "TxGasLimitCap", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.TxGasLimitCap(n, t)
		}},
		attrPrecompiles: {name: "Precompiles", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.Precompiles(n, t)
		}},
		attrSystemContracts: {name: "SystemContracts", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.SystemContracts(n, t)
		}},
		attrValidOpcodes: {name: "ValidOpcodes", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.ValidOpcodes(n, t)
		}},
		attrTxTypes: {name: "TxTypes", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.TxTypes(n, t)
		}},
		attrContractCreatingTxTypes: {name: "ContractCreatingTxTypes", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.ContractCreatingTxTypes(n, t)
		}},
		attrMaxCodeSize: {name: "MaxCodeSize", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.MaxCodeSize(n, t)
		}},
		attrMaxInitcodeSize: {name: "MaxInitcodeSize", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.MaxInitcodeSize(n, t)
		}},
		attrBaseFeeRequired: {name: "BaseFeeRequired", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.BaseFeeRequired(n, t)
		}},
		attrPrevRandaoRequired: {name: "PrevRandaoRequired", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.PrevRandaoRequired(n, t)
		}},
		attrWithdrawalsRequired: {name: "WithdrawalsRequired", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.WithdrawalsRequired(n, t)
		}},
		attrExcessBlobGasRequired: {name: "ExcessBlobGasRequired", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.ExcessBlobGasRequired(n, t)
		}},
		attrParentBeaconRootRequired: {name: "ParentBeaconRootRequired", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.ParentBeaconRootRequired(n, t)
		}},
		attrRequestsHashRequired: {name: "RequestsHashRequired", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.RequestsHashRequired(n, t)
		}},
		attrEngineNewPayloadVersion: {name: "EngineNewPayloadVersion", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.EngineNewPayloadVersion(n, t)
		}},
		attrEngineForkchoiceUpdatedVersion: {name: "EngineForkchoiceUpdatedVersion", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.EngineForkchoiceUpdatedVersion(n, t)
		}},
		attrEngineGetPayloadVersion: {name: "EngineGetPayloadVersion", invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.EngineGetPayloadVersion(n, t)
		}},
		attrBlobSchedule: {name: "BlobSchedule", preferTo: true, invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.BlobSchedule(n, t)
		}},
		attrPreAlloc: {name: "PreAlloc", preferTo: true, invoke: func(r *RuleSet, n idx.Block, t Timestamp) (interface{}, error) {
			return r.PreAlloc(n, t)
		}},
	}
}

// AttributeNames returns the names of every attribute in table order. Used by
// the CLI's describe command and by introspection tests.
func AttributeNames() []string {
	names := make([]string, attrCount)
	for i, d := range attrTable {
		names[i] = d.name
	}
	return names
}

// QueryAttribute answers a single attribute by name, routing through the
// same dispatch as the typed accessors. Unknown names report an
// AttributeError.
func QueryAttribute(r *RuleSet, name string, num idx.Block, t Timestamp) (interface{}, error) {
	for _, d := range attrTable {
		if d.name == name {
			return d.invoke(r, num, t)
		}
	}
	return nil, &AttributeError{RuleSet: r.Name(), Attribute: name, Unknown: true}
}

// Const helpers wrap a fixed value as an attribute function. Fork definitions
// are mostly tables of constants, so these keep them readable.

// ConstBig returns an attribute function yielding a fresh copy of v.
func ConstBig(v *big.Int) func(idx.Block, Timestamp) *big.Int {
	return func(idx.Block, Timestamp) *big.Int {
		return new(big.Int).Set(v)
	}
}

// ConstUint returns an attribute function yielding v.
func ConstUint(v uint64) func(idx.Block, Timestamp) uint64 {
	return func(idx.Block, Timestamp) uint64 {
		return v
	}
}

// ConstBool returns an attribute function yielding v.
func ConstBool(v bool) func(idx.Block, Timestamp) bool {
	return func(idx.Block, Timestamp) bool {
		return v
	}
}

// ConstGasCosts returns an attribute function yielding g.
func ConstGasCosts(g GasCosts) func(idx.Block, Timestamp) GasCosts {
	return func(idx.Block, Timestamp) GasCosts {
		return g
	}
}

// ConstAddresses returns an attribute function yielding a copy of addrs.
func ConstAddresses(addrs []common.Address) func(idx.Block, Timestamp) []common.Address {
	return func(idx.Block, Timestamp) []common.Address {
		return append([]common.Address(nil), addrs...)
	}
}

// ConstTxTypes returns an attribute function yielding a copy of types.
func ConstTxTypes(types []TxType) func(idx.Block, Timestamp) []TxType {
	return func(idx.Block, Timestamp) []TxType {
		return append([]TxType(nil), types...)
	}
}

// ConstOpcodes returns an attribute function yielding a copy of ops.
func ConstOpcodes(ops []vm.OpCode) func(idx.Block, Timestamp) []vm.OpCode {
	return func(idx.Block, Timestamp) []vm.OpCode {
		return append([]vm.OpCode(nil), ops...)
	}
}

// ConstBlobSchedule returns an attribute function yielding a copy of s.
func ConstBlobSchedule(s BlobSchedule) func(idx.Block, Timestamp) *BlobSchedule {
	return func(idx.Block, Timestamp) *BlobSchedule {
		cp := s
		return &cp
	}
}

// ConstAlloc returns an attribute function yielding a deep copy of a.
func ConstAlloc(a Alloc) func(idx.Block, Timestamp) Alloc {
	return func(idx.Block, Timestamp) Alloc {
		return a.Copy()
	}
}
