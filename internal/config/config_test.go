package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rf433d.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rx_pin: GPIO5\nverbose: true\n"), 0o644))

	cfg, err := Load(path, Default())
	require.NoError(t, err)
	assert.Equal(t, "GPIO5", cfg.RxPin)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, Default().DecoderDelayMs, cfg.DecoderDelayMs) // untouched field keeps default
}

func TestIsKnownTransmitter(t *testing.T) {
	cfg := Default()
	cfg.KnownTransmitters = []uint16{0x53cc, 0x835a}
	assert.True(t, cfg.IsKnownTransmitter(0x53cc))
	assert.False(t, cfg.IsKnownTransmitter(0x0001))
}
