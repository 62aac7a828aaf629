package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty while a
	// persistent store was requested.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidMaxRecipients indicates a negative recipient cap.
	ErrInvalidMaxRecipients = errors.New("config: max recipients must not be negative")

	// ErrMaxRecipientsTooLow indicates a cap below the minimum split size.
	ErrMaxRecipientsTooLow = errors.New("config: max recipients below minimum recipient count")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")
)
