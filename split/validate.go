package split

import "fmt"

// ValidateConfig checks a configuration against the acceptance rules shared
// by create and update, returning the first violation. maxRecipients caps
// the recipient list; 0 applies DefaultMaxRecipients.
//
// Rules: at least MinRecipients recipients, parallel allocation list, each
// allocation positive, allocations summing exactly to PercentageScale,
// recipients strictly ascending by address value, and fee at most
// MaxDistributorFee. Errors carry the offending index or computed sum.
func ValidateConfig(cfg Config, maxRecipients int) error {
	if maxRecipients <= 0 {
		maxRecipients = DefaultMaxRecipients
	}

	if len(cfg.Recipients) < MinRecipients {
		return fmt.Errorf("%w: got %d, need at least %d", ErrTooFewRecipients, len(cfg.Recipients), MinRecipients)
	}
	if len(cfg.Recipients) > maxRecipients {
		return fmt.Errorf("%w: got %d, cap is %d", ErrTooManyRecipients, len(cfg.Recipients), maxRecipients)
	}
	if len(cfg.Recipients) != len(cfg.Allocations) {
		return fmt.Errorf("%w: %d recipients, %d allocations", ErrLengthMismatch, len(cfg.Recipients), len(cfg.Allocations))
	}
	if cfg.DistributorFee > MaxDistributorFee {
		return fmt.Errorf("%w: %d > %d", ErrFeeTooHigh, cfg.DistributorFee, MaxDistributorFee)
	}

	for i := 1; i < len(cfg.Recipients); i++ {
		if !cfg.Recipients[i-1].Less(cfg.Recipients[i]) {
			return fmt.Errorf("%w: index %d", ErrOutOfOrder, i)
		}
	}

	// uint64 accumulation of uint32 terms cannot wrap for any list that
	// fits in memory, so a maliciously huge allocation cannot fake the sum.
	var sum uint64
	for i, a := range cfg.Allocations {
		if a == 0 {
			return fmt.Errorf("%w: index %d", ErrZeroAllocation, i)
		}
		sum += uint64(a)
	}
	if sum != PercentageScale {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidAllocationSum, sum, PercentageScale)
	}

	return nil
}
