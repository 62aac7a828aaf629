package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitsorg/libsplit-go/config"
	"github.com/splitsorg/libsplit-go/split"
)

func TestOpen_InMemory(t *testing.T) {
	engine, bolt, err := Open(config.Config{InMemory: true, ResidueSkim: true})
	require.NoError(t, err)
	assert.Nil(t, bolt)

	addr, _, err := engine.Create(thirtySeventy(0), controller)
	require.NoError(t, err)
	require.NoError(t, engine.DepositTo(addr, 10))

	gross, err := engine.Distribute(addr, thirtySeventy(0), split.ZeroAddress, stranger)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), gross)
}

func TestOpen_Persistent(t *testing.T) {
	cfg := config.Config{DataDir: t.TempDir(), ResidueSkim: true}

	engine, bolt, err := Open(cfg)
	require.NoError(t, err)
	require.NotNil(t, bolt)

	addr, _, err := engine.Create(thirtySeventy(0), controller)
	require.NoError(t, err)
	require.NoError(t, bolt.Close())

	// Reopening finds the split.
	engine, bolt, err = Open(cfg)
	require.NoError(t, err)
	defer bolt.Close()

	got, err := engine.Controller(addr)
	require.NoError(t, err)
	assert.Equal(t, controller, got)
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, _, err := Open(config.Config{})
	assert.ErrorIs(t, err, config.ErrEmptyDataDir)

	_, _, err = Open(config.Config{InMemory: true, MaxRecipients: 1})
	assert.ErrorIs(t, err, config.ErrMaxRecipientsTooLow)
}

func TestOpen_AppliesKnobs(t *testing.T) {
	engine, _, err := Open(config.Config{InMemory: true, MaxRecipients: 2})
	require.NoError(t, err)

	three := split.Config{
		Recipients:  []split.Address{makeAddr(0x01), makeAddr(0x02), makeAddr(0x03)},
		Allocations: []uint32{300_000, 300_000, 400_000},
	}
	_, _, err = engine.Create(three, controller)
	assert.ErrorIs(t, err, split.ErrTooManyRecipients)

	// ResidueSkim off: the full internal balance is distributed.
	engine, _, err = Open(config.Config{InMemory: true})
	require.NoError(t, err)

	addr, _, err := engine.Create(thirtySeventy(0), controller)
	require.NoError(t, err)
	require.NoError(t, engine.store.SetCredited(addr, 100))

	gross, err := engine.Distribute(addr, thirtySeventy(0), split.ZeroAddress, stranger)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), gross)
	assert.Equal(t, uint64(0), credited(t, engine, addr))
}
