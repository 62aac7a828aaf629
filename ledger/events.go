package ledger

import "github.com/splitsorg/libsplit-go/split"

// Event is an observable state-change notification. Events are emitted after
// the corresponding mutation commits, in operation order, at least once.
type Event interface {
	Type() string
}

// Emitter receives ledger events. Implementations must not block; the engine
// emits synchronously inside the operation.
type Emitter interface {
	Emit(Event)
}

// NoopEmitter discards all events. It is the engine's default.
type NoopEmitter struct{}

// Emit discards the event.
func (NoopEmitter) Emit(Event) {}

// Created is emitted when a split is registered.
type Created struct {
	Split      split.Address
	Controller split.Address
}

func (Created) Type() string { return "split.created" }

// Updated is emitted when a split's configuration is re-committed.
type Updated struct {
	Split split.Address
}

func (Updated) Type() string { return "split.updated" }

// ControlTransferInitiated is emitted when a controller hands control to a
// pending successor. The handover completes only on acceptance.
type ControlTransferInitiated struct {
	Split         split.Address
	NewController split.Address
}

func (ControlTransferInitiated) Type() string { return "split.control_transfer_initiated" }

// ControlTransferred is emitted when the pending controller accepts control.
type ControlTransferred struct {
	Split      split.Address
	Controller split.Address
}

func (ControlTransferred) Type() string { return "split.control_transferred" }

// Distributed is emitted after a distribution commits. GrossAmount is the
// pre-fee pool, not the net amount credited to recipients; external auditors
// reconcile fees from it.
type Distributed struct {
	Split       split.Address
	GrossAmount uint64
	Distributor split.Address
}

func (Distributed) Type() string { return "split.distributed" }
