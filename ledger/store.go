package ledger

import (
	"fmt"
	"sync"

	"github.com/splitsorg/libsplit-go/split"
)

// SplitRecord is the persisted state of one split. The full configuration is
// not stored; only its commitment. A record's commitment is non-zero exactly
// when the address has been initialized as a split.
type SplitRecord struct {
	Commitment        split.Hash
	Controller        split.Address
	PendingController split.Address
	HasPending        bool
}

// Credit is one balance addition within a distribution's write set.
type Credit struct {
	Addr   split.Address
	Amount uint64
}

// Distribution is the computed write set of a single distribute call. It is
// applied atomically: either every credit, the split's new residue, and the
// deposit sweep commit together, or nothing does.
type Distribution struct {
	Split split.Address

	// SplitCredited is the split's own credited balance after the call:
	// the one-unit residue (when skimming applies) plus truncation dust.
	SplitCredited uint64

	// SweepDeposit zeroes the split's external deposit balance, which has
	// been folded into the pool.
	SweepDeposit bool

	// Credits lists per-recipient additions in payout order, with the
	// distributor-fee credit first when a fee applies.
	Credits []Credit

	// Gross is the pre-fee pool amount.
	Gross uint64
}

// Store persists split records and per-address balances. Credited balances
// are pull-claimable amounts owed to an address; deposit balances are
// externally received funds awaiting distribution.
type Store interface {
	// Split returns the record for addr, reporting whether it exists.
	Split(addr split.Address) (*SplitRecord, bool, error)

	// PutSplit stores or overwrites the record for addr.
	PutSplit(addr split.Address, rec *SplitRecord) error

	// Credited returns addr's pull-claimable balance.
	Credited(addr split.Address) (uint64, error)

	// SetCredited overwrites addr's pull-claimable balance.
	SetCredited(addr split.Address, amount uint64) error

	// Deposit returns addr's external deposit balance.
	Deposit(addr split.Address) (uint64, error)

	// AddDeposit increases addr's external deposit balance.
	AddDeposit(addr split.Address, amount uint64) error

	// ApplyDistribution commits a distribution's write set atomically.
	ApplyDistribution(d *Distribution) error
}

// MemStore is an in-memory Store for tests and ephemeral ledgers.
type MemStore struct {
	mu       sync.RWMutex
	splits   map[split.Address]SplitRecord
	credited map[split.Address]uint64
	deposits map[split.Address]uint64
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		splits:   make(map[split.Address]SplitRecord),
		credited: make(map[split.Address]uint64),
		deposits: make(map[split.Address]uint64),
	}
}

// Split returns the record for addr, reporting whether it exists.
func (s *MemStore) Split(addr split.Address) (*SplitRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.splits[addr]
	if !ok {
		return nil, false, nil
	}
	out := rec
	return &out, true, nil
}

// PutSplit stores or overwrites the record for addr.
func (s *MemStore) PutSplit(addr split.Address, rec *SplitRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.splits[addr] = *rec
	return nil
}

// Credited returns addr's pull-claimable balance.
func (s *MemStore) Credited(addr split.Address) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credited[addr], nil
}

// SetCredited overwrites addr's pull-claimable balance.
func (s *MemStore) SetCredited(addr split.Address, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCreditedLocked(addr, amount)
	return nil
}

func (s *MemStore) setCreditedLocked(addr split.Address, amount uint64) {
	if amount == 0 {
		delete(s.credited, addr)
		return
	}
	s.credited[addr] = amount
}

// Deposit returns addr's external deposit balance.
func (s *MemStore) Deposit(addr split.Address) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deposits[addr], nil
}

// AddDeposit increases addr's external deposit balance.
func (s *MemStore) AddDeposit(addr split.Address, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum, err := split.CheckedAdd(s.deposits[addr], amount)
	if err != nil {
		return err
	}
	s.deposits[addr] = sum
	return nil
}

// ApplyDistribution commits a distribution's write set atomically.
func (s *MemStore) ApplyDistribution(d *Distribution) error {
	if d == nil {
		return fmt.Errorf("%w: nil distribution", ErrInvalidRecord)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stage the full write set before touching state so a failure leaves
	// the store unchanged. The split's residue is an overwrite and must be
	// staged before credits so a credit to the split's own address (e.g.
	// as fee recipient) lands on top of the residue, not under it.
	next := map[split.Address]uint64{d.Split: d.SplitCredited}
	for _, c := range d.Credits {
		base, ok := next[c.Addr]
		if !ok {
			base = s.credited[c.Addr]
		}
		sum, err := split.CheckedAdd(base, c.Amount)
		if err != nil {
			return err
		}
		next[c.Addr] = sum
	}

	for addr, amount := range next {
		s.setCreditedLocked(addr, amount)
	}
	if d.SweepDeposit {
		delete(s.deposits, d.Split)
	}
	return nil
}
