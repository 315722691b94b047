package iso9660

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemAreaDefaultIsZeroed(t *testing.T) {
	cfg := DefaultConfig()
	area, err := buildSystemArea(cfg, 0, 100)
	require.NoError(t, err)
	require.Len(t, area, SystemAreaBytes)
	for _, b := range area {
		require.Zero(t, b)
	}
}

func TestWriteProtectiveMBRLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProtectiveMSDOSLabel = true
	area, err := buildSystemArea(cfg, 0, 100)
	require.NoError(t, err)

	assert.Equal(t, byte(0x80), area[0x1BE])
	assert.Equal(t, byte(0x17), area[0x1C2])
	assert.Equal(t, byte(0x55), area[0x1FE])
	assert.Equal(t, byte(0xAA), area[0x1FF])
}
