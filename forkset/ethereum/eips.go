package ethereum

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-forkset/forkset"
	"github.com/rony4d/go-forkset/forkset/contracts/consolidations"
	"github.com/rony4d/go-forkset/forkset/contracts/historystorage"
	"github.com/rony4d/go-forkset/forkset/contracts/withdrawals"
)

// Registered features. A feature bundles the deltas an EIP makes to a rule
// set so tooling can compose "base fork plus these EIPs" rule sets for
// devnet fixtures before the EIP lands in a base fork.

// blsPrecompileAddrs are the EIP-2537 precompile addresses 0x0b..0x11.
func blsPrecompileAddrs() []common.Address {
	addrs := make([]common.Address, 0, 7)
	for b := byte(0x0b); b <= 0x11; b++ {
		addrs = append(addrs, common.BytesToAddress([]byte{b}))
	}
	return addrs
}

// EIP2537 adds the BLS12-381 curve operation precompiles.
var EIP2537 = &forkset.Feature{
	ID:          2537,
	Fork:        "Prague",
	Precompiles: forkset.AppendAddresses(blsPrecompileAddrs()...),
}

// EIP4844 adds blob transactions. Composing it onto a pre-Cancun base yields
// the envelope type without the Cancun opcode surface, which is exactly what
// the early blob devnets ran.
var EIP4844 = &forkset.Feature{
	ID:      4844,
	Fork:    "Cancun",
	TxTypes: forkset.AppendTxTypes(TxBlob),
}

// EIP7685 is the general execution-layer request framework. It contributes
// no addresses itself; the request-producing contracts require it.
var EIP7685 = &forkset.Feature{
	ID:   7685,
	Fork: "Prague",
}

// EIP7002 adds the withdrawal request queue contract.
var EIP7002 = &forkset.Feature{
	ID:              7002,
	Fork:            "Prague",
	Requires:        []int{7685},
	SystemContracts: forkset.AppendAddresses(withdrawals.ContractAddress),
}

// EIP7251 adds the consolidation request queue contract.
var EIP7251 = &forkset.Feature{
	ID:              7251,
	Fork:            "Prague",
	Requires:        []int{7685},
	SystemContracts: forkset.AppendAddresses(consolidations.ContractAddress),
}

// EIP2935 adds the block hash history contract.
var EIP2935 = &forkset.Feature{
	ID:              2935,
	Fork:            "Prague",
	SystemContracts: forkset.AppendAddresses(historystorage.ContractAddress),
}

// EIP7702 adds set-code transactions and their authorization pricing. It
// supersedes EIP-3074 and must not be composed together with it.
var EIP7702 = &forkset.Feature{
	ID:               7702,
	Fork:             "Prague",
	IncompatibleWith: []int{3074},
	TxTypes:          forkset.AppendTxTypes(TxSetCode),
	GasCosts: func(base forkset.GasCosts) forkset.GasCosts {
		base.AuthorizationGas = authorizationGas
		return base
	},
}

// EIP3074 is the superseded sponsored-call proposal, registered so that the
// incompatibility with EIP-7702 is expressible.
var EIP3074 = &forkset.Feature{
	ID:               3074,
	Fork:             "Prague",
	IncompatibleWith: []int{7702},
}

// EIP7623 raises the calldata cost floor.
var EIP7623 = &forkset.Feature{
	ID:   7623,
	Fork: "Prague",
	GasCosts: func(base forkset.GasCosts) forkset.GasCosts {
		base.StandardTokenGas = standardTokenGas
		base.FloorTokenGas = floorTokenGas
		return base
	},
}

// Features lists every feature this package registers, in EIP id order.
func Features() []*forkset.Feature {
	return []*forkset.Feature{
		EIP2537, EIP2935, EIP3074, EIP4844, EIP7002, EIP7251, EIP7623, EIP7685, EIP7702,
	}
}
