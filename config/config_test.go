package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.False(t, cfg.InMemory)
	assert.True(t, cfg.ResidueSkim)
	assert.Zero(t, cfg.MaxRecipients)
	assert.NoError(t, Validate(cfg))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libsplit.toml")

	original := Config{
		DataDir:       "/tmp/test-libsplit",
		InMemory:      false,
		ResidueSkim:   false,
		MaxRecipients: 50,
	}
	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libsplit.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_recipients = 10\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxRecipients)
	assert.True(t, cfg.ResidueSkim)
	assert.Equal(t, DefaultConfig().DataDir, cfg.DataDir)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libsplit.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_recipients = \"ten\"\n"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"empty data dir", Config{}, ErrEmptyDataDir},
		{"in-memory needs no data dir", Config{InMemory: true}, nil},
		{"negative cap", Config{InMemory: true, MaxRecipients: -1}, ErrInvalidMaxRecipients},
		{"cap of one", Config{InMemory: true, MaxRecipients: 1}, ErrMaxRecipientsTooLow},
		{"cap of two", Config{InMemory: true, MaxRecipients: 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
