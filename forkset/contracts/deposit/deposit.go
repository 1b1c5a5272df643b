// Package deposit holds the beacon chain deposit contract identifiers. The
// contract itself has been live since the beacon chain launch; what changes
// at Prague (EIP-6110) is that its deposit events become execution-layer
// requests, which is why Prague rule sets list it among their system
// contracts.
//
// The deployed bytecode is several kilobytes of Vyper output and already on
// chain, so unlike the queue contracts it is not carried here; only the
// address and the deposit event topic are needed for request parsing.
package deposit

import "github.com/ethereum/go-ethereum/common"

// ContractAddress is the mainnet deposit contract address.
var ContractAddress = common.HexToAddress("0x00000000219ab540356cBB839Cbe05303d7705Fa")

// DepositEventTopic is the topic of the DepositEvent log entry that Prague
// turns into a deposit request.
var DepositEventTopic = common.HexToHash("0x649bbc62d0e31342afea4e5cd82d4049e7e1ee912fc0889aa790803be39038c5")
