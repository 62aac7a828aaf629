package split

import (
	"encoding/binary"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"golang.org/x/crypto/sha3"
)

// serializeConfig produces the canonical byte form hashed into a commitment:
// count(u32 BE) + each recipient(20) + each allocation(u32 BE) + fee(u32 BE).
// The controller is deliberately excluded: it is tracked in the split record
// and must not invalidate the commitment when control changes hands.
func serializeConfig(cfg Config) []byte {
	size := 4 + len(cfg.Recipients)*AddressSize + len(cfg.Allocations)*4 + 4
	buf := make([]byte, 0, size)

	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(len(cfg.Recipients)))
	buf = append(buf, u32[:]...)

	for _, r := range cfg.Recipients {
		buf = append(buf, r[:]...)
	}
	for _, a := range cfg.Allocations {
		binary.BigEndian.PutUint32(u32[:], a)
		buf = append(buf, u32[:]...)
	}
	binary.BigEndian.PutUint32(u32[:], cfg.DistributorFee)
	buf = append(buf, u32[:]...)

	return buf
}

// CommitConfig computes the commitment hash binding the exact configuration.
// Any single-field change (a recipient, an allocation, the fee) yields a
// different commitment.
func CommitConfig(cfg Config) Hash {
	return Hash(sha3.Sum256(serializeConfig(cfg)))
}

// DeriveAddress computes a split's counterfactual address from its creation
// commitment and controller: Hash160(commitment || controller). Binding the
// controller here gives differently-controlled copies of the same
// configuration distinct addresses.
func DeriveAddress(commitment Hash, controller Address) Address {
	preimage := make([]byte, 0, HashSize+AddressSize)
	preimage = append(preimage, commitment[:]...)
	preimage = append(preimage, controller[:]...)

	var addr Address
	copy(addr[:], bsvhash.Hash160(preimage))
	return addr
}
