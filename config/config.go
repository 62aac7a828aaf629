// Package config holds the ledger library's operator-facing configuration:
// where the persistent store lives and which accounting knobs are enabled.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config configures a ledger instance.
type Config struct {
	// DataDir is the directory holding the bbolt database. Ignored when
	// InMemory is set.
	DataDir string `toml:"data_dir"`

	// InMemory selects the ephemeral in-memory store over bbolt.
	InMemory bool `toml:"in_memory"`

	// ResidueSkim keeps one unit of a split's positive internal balance
	// behind on every distribution, amortizing the next balance write.
	// Disable only if compatibility with the original protocol's
	// observable balances does not matter.
	ResidueSkim bool `toml:"residue_skim"`

	// MaxRecipients caps a split's recipient list. Zero applies the
	// library default.
	MaxRecipients int `toml:"max_recipients"`
}

// DefaultConfig returns the default configuration: persistent store under
// the user's home directory, residue skimming on.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:     filepath.Join(home, ".libsplit"),
		ResidueSkim: true,
	}
}

// Load reads a TOML configuration file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as TOML, creating the parent directory if
// needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}
