package ledger

import (
	"path/filepath"

	"github.com/splitsorg/libsplit-go/config"
)

// dbFileName is the bbolt database file inside the configured data directory.
const dbFileName = "ledger.db"

// Open builds an engine from a validated configuration: an in-memory store
// or a bbolt store under cfg.DataDir, with the accounting knobs applied.
// Callers owning a persistent engine must Close the returned store when done;
// it is nil for in-memory engines.
func Open(cfg config.Config) (*Engine, *BoltStore, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	var (
		engine *Engine
		bolt   *BoltStore
	)
	if cfg.InMemory {
		engine = NewEngine(NewMemStore())
	} else {
		var err error
		bolt, err = OpenBoltStore(filepath.Join(cfg.DataDir, dbFileName))
		if err != nil {
			return nil, nil, err
		}
		engine = NewEngine(bolt)
	}

	engine.SetResidueSkim(cfg.ResidueSkim)
	engine.SetMaxRecipients(cfg.MaxRecipients)
	return engine, bolt, nil
}
