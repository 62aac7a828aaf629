package ledger

import (
	"fmt"
	"sync"

	"github.com/splitsorg/libsplit-go/split"
)

// Engine owns the split registry and balance accounting. All mutating
// operations are serialized by an internal mutex: the read-pool/fee/credit
// sequence of a distribution must never interleave with another mutation of
// the same state, or the pool would be double-spent.
//
// Authorization is by explicit caller address. The engine trusts the host to
// have authenticated the caller; it enforces only the controller rules.
type Engine struct {
	mu      sync.Mutex
	store   Store
	emitter Emitter

	// residueSkim controls whether a distribution withholds one unit of a
	// positive internal balance as permanent residue (amortizing the cost
	// of the account's next balance write). Default on, matching the
	// original protocol's observable behavior.
	residueSkim bool

	maxRecipients int
}

// NewEngine creates an engine over the given store with a no-op emitter,
// residue skimming enabled, and the default recipient cap.
func NewEngine(store Store) *Engine {
	return &Engine{
		store:       store,
		emitter:     NoopEmitter{},
		residueSkim: true,
	}
}

// SetEmitter configures the event emitter. Passing nil resets it to a no-op.
func (e *Engine) SetEmitter(emitter Emitter) {
	if emitter == nil {
		e.emitter = NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetResidueSkim enables or disables the one-unit residue withheld from a
// positive internal balance during distribution.
func (e *Engine) SetResidueSkim(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.residueSkim = on
}

// SetMaxRecipients caps the recipient list accepted by create and update.
// Zero applies split.DefaultMaxRecipients.
func (e *Engine) SetMaxRecipients(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.maxRecipients = n
}

func (e *Engine) emit(ev Event) {
	if e.emitter != nil {
		e.emitter.Emit(ev)
	}
}

// Create validates the configuration, derives the split's address from the
// commitment and controller, and registers the split. The returned hash is
// the stored commitment, which deliberately excludes the controller so that
// later distributions verify against the same digest.
func (e *Engine) Create(cfg split.Config, controller split.Address) (split.Address, split.Hash, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return split.ZeroAddress, split.ZeroHash, ErrNilStore
	}
	if err := split.ValidateConfig(cfg, e.maxRecipients); err != nil {
		return split.ZeroAddress, split.ZeroHash, err
	}

	commitment := split.CommitConfig(cfg)
	addr := split.DeriveAddress(commitment, controller)

	if _, exists, err := e.store.Split(addr); err != nil {
		return split.ZeroAddress, split.ZeroHash, err
	} else if exists {
		return split.ZeroAddress, split.ZeroHash, fmt.Errorf("%w: %x", ErrSplitExists, addr)
	}

	rec := &SplitRecord{Commitment: commitment, Controller: controller}
	if err := e.store.PutSplit(addr, rec); err != nil {
		return split.ZeroAddress, split.ZeroHash, err
	}

	e.emit(Created{Split: addr, Controller: controller})
	return addr, commitment, nil
}

// Update re-commits a split's configuration. Only the current controller may
// update; the caller resupplies the full configuration, which is validated
// under the same rules as create.
func (e *Engine) Update(splitAddr split.Address, cfg split.Config, caller split.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updateLocked(splitAddr, cfg, caller)
}

func (e *Engine) updateLocked(splitAddr split.Address, cfg split.Config, caller split.Address) error {
	if e.store == nil {
		return ErrNilStore
	}

	rec, ok, err := e.store.Split(splitAddr)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %x", ErrSplitNotFound, splitAddr)
	}
	if rec.Controller != caller {
		return ErrNotController
	}
	if err := split.ValidateConfig(cfg, e.maxRecipients); err != nil {
		return err
	}

	rec.Commitment = split.CommitConfig(cfg)
	if err := e.store.PutSplit(splitAddr, rec); err != nil {
		return err
	}

	e.emit(Updated{Split: splitAddr})
	return nil
}

// InitiateControlTransfer records newController as the split's pending
// controller. The current controller keeps control until acceptance.
func (e *Engine) InitiateControlTransfer(splitAddr, newController, caller split.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.controlledRecord(splitAddr, caller)
	if err != nil {
		return err
	}

	rec.PendingController = newController
	rec.HasPending = true
	if err := e.store.PutSplit(splitAddr, rec); err != nil {
		return err
	}

	e.emit(ControlTransferInitiated{Split: splitAddr, NewController: newController})
	return nil
}

// CancelControlTransfer clears an in-flight control transfer. Only the
// current controller may cancel.
func (e *Engine) CancelControlTransfer(splitAddr, caller split.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.controlledRecord(splitAddr, caller)
	if err != nil {
		return err
	}
	if !rec.HasPending {
		return ErrNoPendingTransfer
	}

	rec.PendingController = split.ZeroAddress
	rec.HasPending = false
	return e.store.PutSplit(splitAddr, rec)
}

// AcceptControl completes a control transfer. Only the pending controller
// may accept; on success it becomes the controller and the pending slot is
// cleared.
func (e *Engine) AcceptControl(splitAddr, caller split.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return ErrNilStore
	}
	rec, ok, err := e.store.Split(splitAddr)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %x", ErrSplitNotFound, splitAddr)
	}
	if !rec.HasPending || rec.PendingController != caller {
		return ErrNotPendingController
	}

	rec.Controller = caller
	rec.PendingController = split.ZeroAddress
	rec.HasPending = false
	if err := e.store.PutSplit(splitAddr, rec); err != nil {
		return err
	}

	e.emit(ControlTransferred{Split: splitAddr, Controller: caller})
	return nil
}

// controlledRecord loads a split record and enforces that caller is its
// current controller.
func (e *Engine) controlledRecord(splitAddr, caller split.Address) (*SplitRecord, error) {
	if e.store == nil {
		return nil, ErrNilStore
	}
	rec, ok, err := e.store.Split(splitAddr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %x", ErrSplitNotFound, splitAddr)
	}
	if rec.Controller != caller {
		return nil, ErrNotController
	}
	return rec, nil
}

// DepositTo accepts an external deposit of the native asset into any
// address. No validation beyond overflow: deposits to non-split addresses
// are legal and simply sit until withdrawn.
func (e *Engine) DepositTo(addr split.Address, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return ErrNilStore
	}
	return e.store.AddDeposit(addr, amount)
}

// Withdraw reads and zeroes addr's credited balance, returning the amount
// owed. Transferring the returned amount to the address is the host's
// responsibility.
func (e *Engine) Withdraw(addr split.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return 0, ErrNilStore
	}
	amount, err := e.store.Credited(addr)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, nil
	}
	if err := e.store.SetCredited(addr, 0); err != nil {
		return 0, err
	}
	return amount, nil
}

// Controller returns the split's current controller.
func (e *Engine) Controller(splitAddr split.Address) (split.Address, error) {
	rec, err := e.record(splitAddr)
	if err != nil {
		return split.ZeroAddress, err
	}
	return rec.Controller, nil
}

// PendingController returns the pending controller and whether a transfer is
// in flight.
func (e *Engine) PendingController(splitAddr split.Address) (split.Address, bool, error) {
	rec, err := e.record(splitAddr)
	if err != nil {
		return split.ZeroAddress, false, err
	}
	return rec.PendingController, rec.HasPending, nil
}

// CommitmentOf returns the split's stored commitment hash.
func (e *Engine) CommitmentOf(splitAddr split.Address) (split.Hash, error) {
	rec, err := e.record(splitAddr)
	if err != nil {
		return split.ZeroHash, err
	}
	return rec.Commitment, nil
}

// Balance returns addr's total claimable funds: the credited balance, plus
// the external deposit balance when addr is a registered split (a deposit to
// a split is distributable and therefore part of what it holds).
func (e *Engine) Balance(addr split.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return 0, ErrNilStore
	}
	credited, err := e.store.Credited(addr)
	if err != nil {
		return 0, err
	}
	_, isSplit, err := e.store.Split(addr)
	if err != nil {
		return 0, err
	}
	if !isSplit {
		return credited, nil
	}
	deposit, err := e.store.Deposit(addr)
	if err != nil {
		return 0, err
	}
	return split.CheckedAdd(credited, deposit)
}

func (e *Engine) record(splitAddr split.Address) (*SplitRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store == nil {
		return nil, ErrNilStore
	}
	rec, ok, err := e.store.Split(splitAddr)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %x", ErrSplitNotFound, splitAddr)
	}
	return rec, nil
}
