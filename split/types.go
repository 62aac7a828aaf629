// Package split defines the configuration, commitment, and fixed-point
// percentage primitives for value-distribution ledgers.
//
// A split is a shared account that distributes deposits of a single fungible
// asset among a fixed recipient set according to percentage allocations
// expressed in millionths (PercentageScale). The configuration itself is not
// persisted in full; only a commitment hash over its canonical serialization
// is stored, and callers must resupply the configuration on every
// distribution for verification.
package split

import "bytes"

const (
	// PercentageScale is the fixed-point denominator for allocations and
	// fees. An allocation of PercentageScale represents 100%.
	PercentageScale = 1_000_000

	// MaxDistributorFee caps the caller-incentive fee at 10%.
	MaxDistributorFee = 100_000

	// MinRecipients is the minimum recipient count for a valid split.
	MinRecipients = 2

	// DefaultMaxRecipients bounds the recipient list when no explicit cap
	// is configured. Large enough for real configurations, small enough
	// to keep a single distribution's write set sane.
	DefaultMaxRecipients = 500

	// AddressSize is the byte length of an Address.
	AddressSize = 20

	// HashSize is the byte length of a commitment Hash.
	HashSize = 32
)

// Address identifies an account in the ledger.
type Address [AddressSize]byte

// ZeroAddress is the sentinel for "no address". Passing it as the incentive
// recipient of a distribution redirects the fee to the caller.
var ZeroAddress Address

// IsZero reports whether the address is the zero sentinel.
func (a Address) IsZero() bool { return a == ZeroAddress }

// Less reports whether a orders strictly before b by byte value.
func (a Address) Less(b Address) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// Hash is a commitment digest binding an exact configuration.
type Hash [HashSize]byte

// ZeroHash is the commitment of an uninitialized split record.
var ZeroHash Hash

// IsZero reports whether the hash is all zero.
func (h Hash) IsZero() bool { return h == ZeroHash }

// Config is a split's distribution configuration. Recipients must be
// strictly ascending by address value (which also enforces uniqueness),
// allocations are parallel to recipients and sum to PercentageScale, and
// the distributor fee is at most MaxDistributorFee.
type Config struct {
	Recipients     []Address
	Allocations    []uint32
	DistributorFee uint32
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := Config{DistributorFee: c.DistributorFee}
	if c.Recipients != nil {
		out.Recipients = make([]Address, len(c.Recipients))
		copy(out.Recipients, c.Recipients)
	}
	if c.Allocations != nil {
		out.Allocations = make([]uint32, len(c.Allocations))
		copy(out.Allocations, c.Allocations)
	}
	return out
}
