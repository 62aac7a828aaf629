package ledger

import "errors"

var (
	// ErrInvalidConfiguration indicates the supplied configuration does not
	// match the split's stored commitment.
	ErrInvalidConfiguration = errors.New("ledger: configuration does not match commitment")

	// ErrSplitExists indicates a split with the derived address already exists.
	ErrSplitExists = errors.New("ledger: split already exists")

	// ErrSplitNotFound indicates the address is not a registered split.
	ErrSplitNotFound = errors.New("ledger: split not found")

	// ErrNotController indicates the caller is not the split's controller.
	ErrNotController = errors.New("ledger: caller is not the controller")

	// ErrNotPendingController indicates the caller is not the pending controller.
	ErrNotPendingController = errors.New("ledger: caller is not the pending controller")

	// ErrNoPendingTransfer indicates no control transfer is in flight.
	ErrNoPendingTransfer = errors.New("ledger: no pending control transfer")

	// ErrNilStore indicates the engine was constructed without a store.
	ErrNilStore = errors.New("ledger: store not configured")

	// ErrInvalidRecord indicates a persisted split record is malformed.
	ErrInvalidRecord = errors.New("ledger: invalid split record")
)
