// Package consolidations holds the EIP-7251 consolidation request contract:
// the system contract validators call to merge stakes, drained into block
// requests by a system call at the end of every block. It mirrors the
// EIP-7002 withdrawal queue with a different request layout.
package consolidations

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-forkset/forkset"
)

// ContractAddress is the address of the consolidation request queue.
var ContractAddress = common.HexToAddress("0x0000BBdDc7CE488642fb579F8B00f3a590007251")

// ExcessRequestsSlot is the storage slot tracking queue backpressure.
var ExcessRequestsSlot = common.BigToHash(big.NewInt(0))

// Bytecode is the runtime bytecode placed into the pre-allocation.
var Bytecode = common.FromHex("0x3373fffffffffffffffffffffffffffffffffffffffe1460d35760115f54807fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff146101f157600182026001905f5b5f82111560685781019083028483029004916001019190604d565b909390049250505036605814608857366101f157346101f1575f5260205ff35b34106101f157600154600101600155600354806004026004013381556001015f358155600101602035815560010160403590553360601b5f5260605f601437305f34f15f5260205ff35b")

// Account returns the genesis account carrying the contract.
func Account() forkset.Account {
	return forkset.Account{
		Balance: big.NewInt(0),
		Nonce:   1,
		Code:    append([]byte(nil), Bytecode...),
	}
}
