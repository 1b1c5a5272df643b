// Package historystorage holds the EIP-2935 block hash history contract: a
// system contract accumulating recent block hashes in a ring buffer so the
// BLOCKHASH opcode can be served from state.
//
// Like the beacon roots contract it enters the chain through the genesis
// pre-allocation rather than a deployment transaction. Rule sets from Prague
// onward list it among their system contracts.
package historystorage

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-forkset/forkset"
)

// ContractAddress is the address the history storage contract lives at.
var ContractAddress = common.HexToAddress("0x0000F90827F1C53a10cb7A02335B175320002935")

// BufferLength is the size of the block hash ring buffer (in slots).
const BufferLength = 8191

// Bytecode is the runtime bytecode placed into the pre-allocation.
var Bytecode = common.FromHex("0x3373fffffffffffffffffffffffffffffffffffffffe14604657602036036042575f35600143038111604257611fff81430311604257611fff9006545f5260205ff35b5f5ffd5b5f35611fff60014303065500")

// Account returns the genesis account carrying the contract.
func Account() forkset.Account {
	return forkset.Account{
		Balance: big.NewInt(0),
		Nonce:   1,
		Code:    append([]byte(nil), Bytecode...),
	}
}
