package ethereum

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethparams "github.com/ethereum/go-ethereum/params"

	"github.com/rony4d/go-forkset/forkset"
	"github.com/rony4d/go-forkset/forkset/contracts/beaconroots"
	"github.com/rony4d/go-forkset/forkset/contracts/consolidations"
	"github.com/rony4d/go-forkset/forkset/contracts/deposit"
	"github.com/rony4d/go-forkset/forkset/contracts/historystorage"
	"github.com/rony4d/go-forkset/forkset/contracts/withdrawals"
)

// Transaction envelope types (EIP-2718).
const (
	TxLegacy     forkset.TxType = 0
	TxAccessList forkset.TxType = 1 // EIP-2930
	TxDynamicFee forkset.TxType = 2 // EIP-1559
	TxBlob       forkset.TxType = 3 // EIP-4844
	TxSetCode    forkset.TxType = 4 // EIP-7702
)

// Block rewards in wei.
var (
	frontierReward       = new(big.Int).Mul(big.NewInt(5), big.NewInt(1e18))
	byzantiumReward      = new(big.Int).Mul(big.NewInt(3), big.NewInt(1e18))
	constantinopleReward = new(big.Int).Mul(big.NewInt(2), big.NewInt(1e18))
)

// precompileAddrs maps the low-byte precompile range 0x01..n to addresses.
func precompileAddrs(n byte) []common.Address {
	addrs := make([]common.Address, 0, n)
	for b := byte(1); b <= n; b++ {
		addrs = append(addrs, common.BytesToAddress([]byte{b}))
	}
	return addrs
}

// The mainnet fork chain. Each definition extends its parent and overrides
// only what the fork changed; everything else falls through. Queries that a
// fork predates (e.g. the blob schedule before Cancun) stay nil and answer
// with forkset.ErrUnsupported.

// Frontier is the genesis rule set: every attribute that exists from the
// start of the chain is defined here.
var Frontier = forkset.New(forkset.Definition{
	Name:     "Frontier",
	Deployed: true,
	Compat:   map[string]string{"solc": ">=0.8.0"},
	Attrs: forkset.Attributes{
		BlockReward:              forkset.ConstBig(frontierReward),
		GasCosts:                 forkset.ConstGasCosts(frontierGasCosts()),
		Precompiles:              forkset.ConstAddresses(precompileAddrs(4)),
		SystemContracts:          forkset.ConstAddresses(nil),
		ValidOpcodes:             forkset.ConstOpcodes(frontierOpcodes()),
		TxTypes:                  forkset.ConstTxTypes([]forkset.TxType{TxLegacy}),
		ContractCreatingTxTypes:  forkset.ConstTxTypes([]forkset.TxType{TxLegacy}),
		BaseFeeRequired:          forkset.ConstBool(false),
		PrevRandaoRequired:       forkset.ConstBool(false),
		WithdrawalsRequired:      forkset.ConstBool(false),
		ExcessBlobGasRequired:    forkset.ConstBool(false),
		ParentBeaconRootRequired: forkset.ConstBool(false),
		RequestsHashRequired:     forkset.ConstBool(false),
		PreAlloc:                 forkset.ConstAlloc(frontierAlloc()),
	},
})

// Homestead adds DELEGATECALL and the contract creation surcharge.
var Homestead = forkset.New(forkset.Definition{
	Name:     "Homestead",
	Parent:   Frontier,
	Deployed: true,
	Attrs: forkset.Attributes{
		GasCosts:     forkset.ConstGasCosts(homesteadGasCosts()),
		ValidOpcodes: forkset.ConstOpcodes(homesteadOpcodes()),
	},
})

// Byzantium adds the modexp and bn256 precompiles, static calls and revert,
// lowers the block reward and introduces the deployed-code size limit
// (carried over from the intervening Spurious Dragon rules).
var Byzantium = forkset.New(forkset.Definition{
	Name:     "Byzantium",
	Parent:   Homestead,
	Deployed: true,
	Attrs: forkset.Attributes{
		BlockReward:  forkset.ConstBig(byzantiumReward),
		Precompiles:  forkset.ConstAddresses(precompileAddrs(8)),
		ValidOpcodes: forkset.ConstOpcodes(byzantiumOpcodes()),
		MaxCodeSize:  forkset.ConstUint(ethparams.MaxCodeSize),
	},
})

// Constantinople adds shifts, CREATE2 and EXTCODEHASH and lowers the reward
// again.
var Constantinople = forkset.New(forkset.Definition{
	Name:     "Constantinople",
	Parent:   Byzantium,
	Deployed: true,
	Attrs: forkset.Attributes{
		BlockReward:  forkset.ConstBig(constantinopleReward),
		ValidOpcodes: forkset.ConstOpcodes(constantinopleOpcodes()),
	},
})

// Istanbul adds blake2f, CHAINID and SELFBALANCE and reprices calldata.
var Istanbul = forkset.New(forkset.Definition{
	Name:     "Istanbul",
	Parent:   Constantinople,
	Deployed: true,
	Attrs: forkset.Attributes{
		GasCosts:     forkset.ConstGasCosts(istanbulGasCosts()),
		Precompiles:  forkset.ConstAddresses(precompileAddrs(9)),
		ValidOpcodes: forkset.ConstOpcodes(istanbulOpcodes()),
	},
})

// Berlin introduces typed transactions and access lists.
var Berlin = forkset.New(forkset.Definition{
	Name:     "Berlin",
	Parent:   Istanbul,
	Deployed: true,
	Attrs: forkset.Attributes{
		GasCosts:                forkset.ConstGasCosts(berlinGasCosts()),
		TxTypes:                 forkset.ConstTxTypes([]forkset.TxType{TxLegacy, TxAccessList}),
		ContractCreatingTxTypes: forkset.ConstTxTypes([]forkset.TxType{TxLegacy, TxAccessList}),
	},
})

// London introduces the EIP-1559 fee market.
var London = forkset.New(forkset.Definition{
	Name:     "London",
	Parent:   Berlin,
	Deployed: true,
	Attrs: forkset.Attributes{
		BaseFeeRequired:             forkset.ConstBool(true),
		BaseFeeMaxChangeDenominator: forkset.ConstUint(ethparams.BaseFeeChangeDenominator),
		ElasticityMultiplier:        forkset.ConstUint(ethparams.ElasticityMultiplier),
		InitialBaseFee:              forkset.ConstUint(ethparams.InitialBaseFee),
		ValidOpcodes:                forkset.ConstOpcodes(londonOpcodes()),
		TxTypes:                     forkset.ConstTxTypes([]forkset.TxType{TxLegacy, TxAccessList, TxDynamicFee}),
		ContractCreatingTxTypes:     forkset.ConstTxTypes([]forkset.TxType{TxLegacy, TxAccessList, TxDynamicFee}),
	},
})

// GrayGlacier only rescheduled the difficulty bomb. It exists for
// completeness and is skipped by default enumeration; Paris descends from
// London directly.
var GrayGlacier = forkset.New(forkset.Definition{
	Name:     "GrayGlacier",
	Parent:   London,
	Deployed: true,
	Ignore:   true,
})

// Paris is the merge: proof of work ends, the reward drops to zero and the
// header's difficulty field becomes prev-randao. The engine API exists from
// here on.
var Paris = forkset.New(forkset.Definition{
	Name:     "Paris",
	Parent:   London,
	Deployed: true,
	Attrs: forkset.Attributes{
		BlockReward:                    forkset.ConstBig(new(big.Int)),
		PrevRandaoRequired:             forkset.ConstBool(true),
		EngineNewPayloadVersion:        forkset.ConstUint(1),
		EngineForkchoiceUpdatedVersion: forkset.ConstUint(1),
		EngineGetPayloadVersion:        forkset.ConstUint(1),
	},
})

// Shanghai enables withdrawals, PUSH0 and initcode limits.
var Shanghai = forkset.New(forkset.Definition{
	Name:     "Shanghai",
	Parent:   Paris,
	Deployed: true,
	Compat:   map[string]string{"solc": ">=0.8.20"},
	Attrs: forkset.Attributes{
		GasCosts:                       forkset.ConstGasCosts(shanghaiGasCosts()),
		ValidOpcodes:                   forkset.ConstOpcodes(shanghaiOpcodes()),
		MaxInitcodeSize:                forkset.ConstUint(maxInitcodeSize),
		WithdrawalsRequired:            forkset.ConstBool(true),
		EngineNewPayloadVersion:        forkset.ConstUint(2),
		EngineForkchoiceUpdatedVersion: forkset.ConstUint(2),
		EngineGetPayloadVersion:        forkset.ConstUint(2),
	},
})

// Cancun introduces blobs, transient storage, the kzg point evaluation
// precompile and the beacon roots system contract.
var Cancun = forkset.New(forkset.Definition{
	Name:     "Cancun",
	Parent:   Shanghai,
	Deployed: true,
	Compat:   map[string]string{"solc": ">=0.8.24"},
	Attrs: forkset.Attributes{
		ValidOpcodes:    forkset.ConstOpcodes(cancunOpcodes()),
		Precompiles:     forkset.ConstAddresses(precompileAddrs(10)),
		SystemContracts: forkset.ConstAddresses([]common.Address{beaconroots.ContractAddress}),
		TxTypes: forkset.ConstTxTypes([]forkset.TxType{
			TxLegacy, TxAccessList, TxDynamicFee, TxBlob,
		}),
		ExcessBlobGasRequired:    forkset.ConstBool(true),
		ParentBeaconRootRequired: forkset.ConstBool(true),
		BlobSchedule: forkset.ConstBlobSchedule(forkset.BlobSchedule{
			Target:                3,
			Max:                   6,
			BaseFeeUpdateFraction: blobBaseFeeFracCancun,
			MinBlobGasPrice:       1,
		}),
		PreAlloc:                       forkset.ConstAlloc(cancunAlloc()),
		EngineNewPayloadVersion:        forkset.ConstUint(3),
		EngineForkchoiceUpdatedVersion: forkset.ConstUint(3),
		EngineGetPayloadVersion:        forkset.ConstUint(3),
	},
})

// Prague introduces the BLS precompiles, set-code transactions, the calldata
// floor and the execution layer request contracts.
var Prague = forkset.New(forkset.Definition{
	Name:     "Prague",
	Parent:   Cancun,
	Deployed: true,
	Attrs: forkset.Attributes{
		GasCosts:    forkset.ConstGasCosts(pragueGasCosts()),
		Precompiles: forkset.ConstAddresses(precompileAddrs(17)),
		SystemContracts: forkset.ConstAddresses([]common.Address{
			beaconroots.ContractAddress,
			historystorage.ContractAddress,
			withdrawals.ContractAddress,
			consolidations.ContractAddress,
			deposit.ContractAddress,
		}),
		TxTypes: forkset.ConstTxTypes([]forkset.TxType{
			TxLegacy, TxAccessList, TxDynamicFee, TxBlob, TxSetCode,
		}),
		// Set-code transactions carry a mandatory destination and cannot
		// create contracts, same as blob transactions.
		ContractCreatingTxTypes: forkset.ConstTxTypes([]forkset.TxType{
			TxLegacy, TxAccessList, TxDynamicFee,
		}),
		RequestsHashRequired: forkset.ConstBool(true),
		BlobSchedule: forkset.ConstBlobSchedule(forkset.BlobSchedule{
			Target:                6,
			Max:                   9,
			BaseFeeUpdateFraction: blobBaseFeeFracPrague,
			MinBlobGasPrice:       1,
		}),
		PreAlloc:                       forkset.ConstAlloc(pragueAlloc()),
		EngineNewPayloadVersion:        forkset.ConstUint(4),
		EngineForkchoiceUpdatedVersion: forkset.ConstUint(3),
		EngineGetPayloadVersion:        forkset.ConstUint(4),
	},
})

// Osaka is the current development fork: the per-transaction gas cap.
var Osaka = forkset.New(forkset.Definition{
	Name:   "Osaka",
	Parent: Prague,
	Attrs: forkset.Attributes{
		TxGasLimitCap:           forkset.ConstUint(txGasLimitCapOsaka),
		EngineNewPayloadVersion: forkset.ConstUint(5),
		EngineGetPayloadVersion: forkset.ConstUint(5),
	},
})
