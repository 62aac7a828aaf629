package ledger

import (
	"fmt"

	"github.com/splitsorg/libsplit-go/split"
)

// Distribute verifies the caller-supplied configuration against the split's
// stored commitment and, on a match, distributes the split's pooled balance:
// the optional distributor fee first, then every recipient's share of the
// post-fee pool. Returns the gross (pre-fee) amount distributed.
//
// distributor receives the fee; the zero address falls back to caller. A
// configuration whose commitment does not match — including any single-field
// mutation of an accepted configuration, and any address never created as a
// split — fails with ErrInvalidConfiguration and mutates nothing.
func (e *Engine) Distribute(splitAddr split.Address, cfg split.Config, distributor, caller split.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.distributeLocked(splitAddr, cfg, distributor, caller)
}

// UpdateAndDistribute re-commits the configuration and distributes under it
// in one serialized operation. Only the controller may call it; the
// commitment check inside the distribution trivially passes against the
// just-stored hash.
func (e *Engine) UpdateAndDistribute(splitAddr split.Address, cfg split.Config, distributor, caller split.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.updateLocked(splitAddr, cfg, caller); err != nil {
		return 0, err
	}
	return e.distributeLocked(splitAddr, cfg, distributor, caller)
}

func (e *Engine) distributeLocked(splitAddr split.Address, cfg split.Config, distributor, caller split.Address) (uint64, error) {
	if e.store == nil {
		return 0, ErrNilStore
	}

	// Commitment check. An unregistered address has no record and so holds
	// the zero commitment, which no valid configuration hashes to.
	var stored split.Hash
	if rec, ok, err := e.store.Split(splitAddr); err != nil {
		return 0, err
	} else if ok {
		stored = rec.Commitment
	}
	if split.CommitConfig(cfg) != stored {
		return 0, fmt.Errorf("%w: split %x", ErrInvalidConfiguration, splitAddr)
	}

	d, err := e.computeDistribution(splitAddr, cfg, distributor, caller)
	if err != nil {
		return 0, err
	}
	if err := e.store.ApplyDistribution(d); err != nil {
		return 0, err
	}

	e.emit(Distributed{Split: splitAddr, GrossAmount: d.Gross, Distributor: feeRecipient(distributor, caller)})
	return d.Gross, nil
}

// computeDistribution builds the full write set of one distribution without
// mutating anything.
func (e *Engine) computeDistribution(splitAddr split.Address, cfg split.Config, distributor, caller split.Address) (*Distribution, error) {
	internal, err := e.store.Credited(splitAddr)
	if err != nil {
		return nil, err
	}
	external, err := e.store.Deposit(splitAddr)
	if err != nil {
		return nil, err
	}

	// One unit of a positive internal balance stays behind as permanent
	// residue: it keeps the account's balance slot warm so the next
	// distribution's write is an overwrite, not an insert. It is carried
	// forward, never paid out and never lost.
	residue := uint64(0)
	if e.residueSkim && internal > 0 {
		residue = 1
		internal--
	}

	pool, err := split.CheckedAdd(internal, external)
	if err != nil {
		return nil, err
	}
	gross := pool

	d := &Distribution{
		Split:        splitAddr,
		SweepDeposit: true,
		Credits:      make([]Credit, 0, len(cfg.Recipients)+1),
		Gross:        gross,
	}

	if cfg.DistributorFee != 0 {
		feeAmount := split.Scale(pool, cfg.DistributorFee)
		d.Credits = append(d.Credits, Credit{Addr: feeRecipient(distributor, caller), Amount: feeAmount})
		pool -= feeAmount
	}

	// Every share is scaled from the same post-fee pool; the allocations
	// sum to full scale, so shrinking the pool between iterations would
	// shortchange later recipients.
	var paid uint64
	for i, r := range cfg.Recipients {
		share := split.Scale(pool, cfg.Allocations[i])
		d.Credits = append(d.Credits, Credit{Addr: r, Amount: share})
		paid += share
	}

	// Floor truncation can leave up to len(recipients) dust units unpaid.
	// They return to the split's own credited balance and ride along in
	// the next distribution.
	d.SplitCredited = residue + (pool - paid)
	return d, nil
}

func feeRecipient(distributor, caller split.Address) split.Address {
	if distributor.IsZero() {
		return caller
	}
	return distributor
}
