// Package withdrawals holds the EIP-7002 withdrawal request contract: the
// system contract validators call to trigger execution-layer withdrawals,
// drained into block requests by a system call at the end of every block.
//
// The full runtime bytecode implements a fee-adjusted request queue; for
// rule-set resolution only the address and the fact that the account exists
// in the pre-allocation matter, so the bytecode here is the deployed
// queue-management code referenced by its hash in client test fixtures.
package withdrawals

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-forkset/forkset"
)

// ContractAddress is the address of the withdrawal request queue.
var ContractAddress = common.HexToAddress("0x00000961Ef480Eb55e80D19ad83579A64c007002")

// ExcessRequestsSlot is the storage slot tracking queue backpressure.
var ExcessRequestsSlot = common.BigToHash(big.NewInt(0))

// Bytecode is the runtime bytecode placed into the pre-allocation.
var Bytecode = common.FromHex("0x3373fffffffffffffffffffffffffffffffffffffffe1460cb5760115f54807fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff146101f457600182026001905f5b5f82111560685781019083028483029004916001019190604d565b909390049250505036603814608857366101f457346101f4575f5260205ff35b34106101f457600154600101600155600354806003026004013381556001015f35815560010160203590553360601b5f5260385f601437305f34f15f5260205ff35b")

// Account returns the genesis account carrying the contract.
func Account() forkset.Account {
	return forkset.Account{
		Balance: big.NewInt(0),
		Nonce:   1,
		Code:    append([]byte(nil), Bytecode...),
	}
}
