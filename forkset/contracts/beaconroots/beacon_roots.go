// Package beaconroots holds the EIP-4788 beacon roots contract: a system
// contract exposing parent beacon block roots to the EVM through a ring
// buffer keyed by timestamp.
//
// The contract is not deployed by a transaction; chains that include it
// place the runtime bytecode directly into the genesis pre-allocation, and
// the system address calls it at the start of every block to store the new
// root. Rule sets from Cancun onward list it among their system contracts
// and carry it in their pre-allocation.
package beaconroots

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-forkset/forkset"
)

// ContractAddress is the address the beacon roots contract lives at.
var ContractAddress = common.HexToAddress("0x000F3df6D732807Ef1319fB7B8bB8522d0Beac02")

// BufferLength is the size of the timestamp ring buffer (in slots).
const BufferLength = 8191

// Bytecode is the runtime bytecode placed into the pre-allocation.
var Bytecode = common.FromHex("0x3373fffffffffffffffffffffffffffffffffffffffe14604d57602036146024575f5ffd5b5f35801560495762001fff810690815414603c575f5ffd5b62001fff01545f5260205ff35b5f5ffd5b62001fff42064281555f359062001fff015500")

// Account returns the genesis account carrying the contract.
func Account() forkset.Account {
	return forkset.Account{
		Balance: big.NewInt(0),
		Nonce:   1,
		Code:    append([]byte(nil), Bytecode...),
	}
}
