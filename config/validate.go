package config

import "fmt"

// minRecipients mirrors the split package's minimum without importing it;
// config sits below the accounting packages in the dependency order.
const minRecipients = 2

// Validate checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func Validate(cfg Config) error {
	if !cfg.InMemory && cfg.DataDir == "" {
		return ErrEmptyDataDir
	}
	if cfg.MaxRecipients < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxRecipients, cfg.MaxRecipients)
	}
	if cfg.MaxRecipients > 0 && cfg.MaxRecipients < minRecipients {
		return fmt.Errorf("%w: %d < %d", ErrMaxRecipientsTooLow, cfg.MaxRecipients, minRecipients)
	}
	return nil
}
