package forkset

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Feature is an EIP: a named, independently-registrable bundle of deltas to
// a subset of RuleSet attributes. Features are pure data plus stateless delta
// functions; they are declared once, registered once and never mutated.
//
// Each delta receives the already-resolved base value and returns the new
// value, so a precompile delta typically appends addresses and a gas delta
// typically overwrites a handful of fields.
type Feature struct {
	// ID is the EIP number.
	ID int

	// Fork names the fork the EIP was scheduled into. Informational only.
	Fork string

	// Requires lists EIP ids that must be present in any composed set that
	// includes this feature. IncompatibleWith lists EIP ids that must not.
	// Compose validates both.
	Requires         []int
	IncompatibleWith []int

	// Deltas. A nil delta leaves the corresponding attribute untouched.
	Precompiles     func(base []common.Address) []common.Address
	SystemContracts func(base []common.Address) []common.Address
	TxTypes         func(base []TxType) []TxType
	GasCosts        func(base GasCosts) GasCosts
}

// String implements fmt.Stringer.
func (f *Feature) String() string {
	return fmt.Sprintf("EIP-%d", f.ID)
}

// AppendAddresses builds a delta that appends the given addresses to the
// resolved base list. Most precompile and system-contract contributions are
// exactly this.
func AppendAddresses(addrs ...common.Address) func([]common.Address) []common.Address {
	return func(base []common.Address) []common.Address {
		return append(append([]common.Address(nil), base...), addrs...)
	}
}

// AppendTxTypes builds a delta that appends the given envelope types to the
// resolved base list. Compose de-duplicates afterwards.
func AppendTxTypes(types ...TxType) func([]TxType) []TxType {
	return func(base []TxType) []TxType {
		return append(append([]TxType(nil), base...), types...)
	}
}
