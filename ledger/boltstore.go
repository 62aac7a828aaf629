package ledger

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/splitsorg/libsplit-go/split"
)

var (
	bucketSplits   = []byte("splits")
	bucketCredited = []byte("credited")
	bucketDeposits = []byte("deposits")
)

// splitRecordSize is the fixed serialized size of a SplitRecord:
// commitment(32) + controller(20) + pending flag(1) + pending(20).
const splitRecordSize = split.HashSize + split.AddressSize + 1 + split.AddressSize

// BoltStore persists the registry and balances in a bbolt database. All
// multi-key writes of a distribution commit in a single transaction.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSplits, bucketCredited, bucketDeposits} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// serializeRecord encodes a SplitRecord as a fixed-size big-endian record.
func serializeRecord(rec *SplitRecord) []byte {
	buf := make([]byte, splitRecordSize)
	offset := 0

	copy(buf[offset:], rec.Commitment[:])
	offset += split.HashSize

	copy(buf[offset:], rec.Controller[:])
	offset += split.AddressSize

	if rec.HasPending {
		buf[offset] = 1
	}
	offset++

	copy(buf[offset:], rec.PendingController[:])
	return buf
}

// deserializeRecord decodes a fixed-size record.
func deserializeRecord(data []byte) (*SplitRecord, error) {
	if len(data) != splitRecordSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidRecord, splitRecordSize, len(data))
	}
	rec := &SplitRecord{}
	offset := 0

	copy(rec.Commitment[:], data[offset:])
	offset += split.HashSize

	copy(rec.Controller[:], data[offset:])
	offset += split.AddressSize

	rec.HasPending = data[offset] == 1
	offset++

	copy(rec.PendingController[:], data[offset:])
	return rec, nil
}

func putAmount(b *bbolt.Bucket, addr split.Address, amount uint64) error {
	if amount == 0 {
		return b.Delete(addr[:])
	}
	var v [8]byte
	binary.BigEndian.PutUint64(v[:], amount)
	return b.Put(addr[:], v[:])
}

func getAmount(b *bbolt.Bucket, addr split.Address) (uint64, error) {
	v := b.Get(addr[:])
	if v == nil {
		return 0, nil
	}
	if len(v) != 8 {
		return 0, fmt.Errorf("%w: amount must be 8 bytes, got %d", ErrInvalidRecord, len(v))
	}
	return binary.BigEndian.Uint64(v), nil
}

// Split returns the record for addr, reporting whether it exists.
func (s *BoltStore) Split(addr split.Address) (*SplitRecord, bool, error) {
	var rec *SplitRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSplits).Get(addr[:])
		if data == nil {
			return nil
		}
		var err error
		rec, err = deserializeRecord(data)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return rec, rec != nil, nil
}

// PutSplit stores or overwrites the record for addr.
func (s *BoltStore) PutSplit(addr split.Address, rec *SplitRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSplits).Put(addr[:], serializeRecord(rec))
	})
}

// Credited returns addr's pull-claimable balance.
func (s *BoltStore) Credited(addr split.Address) (uint64, error) {
	var amount uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		amount, err = getAmount(tx.Bucket(bucketCredited), addr)
		return err
	})
	return amount, err
}

// SetCredited overwrites addr's pull-claimable balance.
func (s *BoltStore) SetCredited(addr split.Address, amount uint64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putAmount(tx.Bucket(bucketCredited), addr, amount)
	})
}

// Deposit returns addr's external deposit balance.
func (s *BoltStore) Deposit(addr split.Address) (uint64, error) {
	var amount uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		amount, err = getAmount(tx.Bucket(bucketDeposits), addr)
		return err
	})
	return amount, err
}

// AddDeposit increases addr's external deposit balance.
func (s *BoltStore) AddDeposit(addr split.Address, amount uint64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDeposits)
		current, err := getAmount(b, addr)
		if err != nil {
			return err
		}
		sum, err := split.CheckedAdd(current, amount)
		if err != nil {
			return err
		}
		return putAmount(b, addr, sum)
	})
}

// ApplyDistribution commits a distribution's write set in one transaction.
func (s *BoltStore) ApplyDistribution(d *Distribution) error {
	if d == nil {
		return fmt.Errorf("%w: nil distribution", ErrInvalidRecord)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		credited := tx.Bucket(bucketCredited)

		// The split's residue is an overwrite; stage it first so a credit
		// to the split's own address composes on top of it.
		next := map[split.Address]uint64{d.Split: d.SplitCredited}
		for _, c := range d.Credits {
			base, ok := next[c.Addr]
			if !ok {
				var err error
				base, err = getAmount(credited, c.Addr)
				if err != nil {
					return err
				}
			}
			sum, err := split.CheckedAdd(base, c.Amount)
			if err != nil {
				return err
			}
			next[c.Addr] = sum
		}

		for addr, amount := range next {
			if err := putAmount(credited, addr, amount); err != nil {
				return err
			}
		}
		if d.SweepDeposit {
			if err := tx.Bucket(bucketDeposits).Delete(d.Split[:]); err != nil {
				return err
			}
		}
		return nil
	})
}
