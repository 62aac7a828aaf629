package split

import "errors"

var (
	// ErrTooFewRecipients indicates fewer than MinRecipients recipients.
	ErrTooFewRecipients = errors.New("split: too few recipients")

	// ErrTooManyRecipients indicates the recipient list exceeds the cap.
	ErrTooManyRecipients = errors.New("split: too many recipients")

	// ErrLengthMismatch indicates recipients and allocations differ in length.
	ErrLengthMismatch = errors.New("split: recipients and allocations length mismatch")

	// ErrInvalidAllocationSum indicates allocations do not sum to PercentageScale.
	ErrInvalidAllocationSum = errors.New("split: allocations must sum to percentage scale")

	// ErrOutOfOrder indicates recipients are not strictly ascending.
	ErrOutOfOrder = errors.New("split: recipients not strictly ascending")

	// ErrZeroAllocation indicates an allocation of zero.
	ErrZeroAllocation = errors.New("split: zero allocation")

	// ErrFeeTooHigh indicates the distributor fee exceeds MaxDistributorFee.
	ErrFeeTooHigh = errors.New("split: distributor fee too high")

	// ErrAmountOverflow indicates an amount exceeded the native word size.
	ErrAmountOverflow = errors.New("split: amount overflow")
)
