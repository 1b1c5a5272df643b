// Package ethereum declares the canonical Ethereum mainnet rule sets — the
// Frontier..Osaka fork chain, the registered EIP features and the standard
// transition rule sets — and registers them under the "ethereum-mainnet"
// chain identifier.
//
// Definitions follow the engine's inheritance model: each fork extends its
// parent and overrides only what the fork changed. The values here are a
// representative, API-complete subset of the full per-fork parameter tables;
// gas constants come from go-ethereum's params package wherever that version
// defines them.
package ethereum

import (
	ethparams "github.com/ethereum/go-ethereum/params"

	"github.com/rony4d/go-forkset/forkset"
)

// Gas constants newer than the vendored go-ethereum params package.
const (
	initcodeWordGas       uint64 = 2     // EIP-3860, per 32-byte initcode word
	authorizationGas      uint64 = 25000 // EIP-7702, per authorization tuple
	standardTokenGas      uint64 = 4     // EIP-7623 token accounting
	floorTokenGas         uint64 = 10    // EIP-7623 calldata floor per token
	txGasLimitCapOsaka    uint64 = 1 << 24
	maxInitcodeSize       uint64 = 2 * ethparams.MaxCodeSize
	blobBaseFeeFracCancun uint64 = 3338477
	blobBaseFeeFracPrague uint64 = 5007716
)

// frontierGasCosts is the root gas record every later fork derives from.
// Contract creation carries no surcharge yet and calldata is priced at the
// original Frontier rates.
func frontierGasCosts() forkset.GasCosts {
	return forkset.GasCosts{
		TxGas:            ethparams.TxGas,
		TxCreateGas:      0,
		TxDataZeroGas:    ethparams.TxDataZeroGas,
		TxDataNonZeroGas: ethparams.TxDataNonZeroGasFrontier,
	}
}

// homesteadGasCosts adds the contract creation surcharge.
func homesteadGasCosts() forkset.GasCosts {
	g := frontierGasCosts()
	g.TxCreateGas = ethparams.TxGasContractCreation - ethparams.TxGas
	return g
}

// istanbulGasCosts reprices non-zero calldata (EIP-2028).
func istanbulGasCosts() forkset.GasCosts {
	g := homesteadGasCosts()
	g.TxDataNonZeroGas = ethparams.TxDataNonZeroGasEIP2028
	return g
}

// berlinGasCosts adds access list pricing (EIP-2930).
func berlinGasCosts() forkset.GasCosts {
	g := istanbulGasCosts()
	g.TxAccessListAddressGas = ethparams.TxAccessListAddressGas
	g.TxAccessListStorageKeyGas = ethparams.TxAccessListStorageKeyGas
	return g
}

// shanghaiGasCosts adds initcode metering (EIP-3860).
func shanghaiGasCosts() forkset.GasCosts {
	g := berlinGasCosts()
	g.InitcodeWordGas = initcodeWordGas
	return g
}

// pragueGasCosts adds authorization pricing (EIP-7702) and the calldata
// floor (EIP-7623).
func pragueGasCosts() forkset.GasCosts {
	g := shanghaiGasCosts()
	g.AuthorizationGas = authorizationGas
	g.StandardTokenGas = standardTokenGas
	g.FloorTokenGas = floorTokenGas
	return g
}
