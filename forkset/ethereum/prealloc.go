package ethereum

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-forkset/forkset"
	"github.com/rony4d/go-forkset/forkset/contracts/beaconroots"
	"github.com/rony4d/go-forkset/forkset/contracts/consolidations"
	"github.com/rony4d/go-forkset/forkset/contracts/historystorage"
	"github.com/rony4d/go-forkset/forkset/contracts/withdrawals"
)

// TestSenderAddress is the funded account every generated fixture spends
// from. The key pair behind it is the one client test suites have used since
// the original Ethereum consensus tests.
var TestSenderAddress = common.HexToAddress("0xa94f5374Fce5edBC8E2a8697C15331677e6EbF0B")

// testSenderBalance funds the sender generously enough for any fixture.
var testSenderBalance = new(big.Int).Mul(big.NewInt(0x10000000000), big.NewInt(0x10000000000))

// frontierAlloc is the pre-allocation shared by every pre-Cancun rule set:
// just the funded test sender.
func frontierAlloc() forkset.Alloc {
	return forkset.Alloc{
		TestSenderAddress: {
			Balance: new(big.Int).Set(testSenderBalance),
		},
	}
}

// cancunAlloc adds the beacon roots contract (EIP-4788), which exists from
// genesis on chains whose rules start at Cancun.
func cancunAlloc() forkset.Alloc {
	a := frontierAlloc()
	a[beaconroots.ContractAddress] = beaconroots.Account()
	return a
}

// pragueAlloc adds the request queue contracts (EIP-7002, EIP-7251) and the
// block hash history contract (EIP-2935).
func pragueAlloc() forkset.Alloc {
	a := cancunAlloc()
	a[historystorage.ContractAddress] = historystorage.Account()
	a[withdrawals.ContractAddress] = withdrawals.Account()
	a[consolidations.ContractAddress] = consolidations.Account()
	return a
}
