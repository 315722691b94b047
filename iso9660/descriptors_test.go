package iso9660

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrimaryVolumeDescriptorSize(t *testing.T) {
	SetRecordTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	root := &Directory{}
	root.ContinuationArea = erEntry()
	plan := Plan(root, 2, true, nil)

	cfg := DefaultConfig()
	pvd := buildPrimaryVolumeDescriptor(cfg, plan, root, true)

	require.Len(t, pvd, SectorSize)
	assert.Equal(t, vdTypePrimary, pvd[0])
	assert.Equal(t, "CD001", string(pvd[1:6]))
	assert.Equal(t, byte(0x01), pvd[6])
}

func TestBuildVolumeDescriptorTerminator(t *testing.T) {
	term := buildVolumeDescriptorTerminator()
	require.Len(t, term, SectorSize)
	assert.Equal(t, vdTypeTerminator, term[0])
	assert.Equal(t, "CD001", string(term[1:6]))
	for _, b := range term[7:] {
		assert.Zero(t, b)
	}
}

func TestBuildBootRecordVolumeDescriptor(t *testing.T) {
	brvd := buildBootRecordVolumeDescriptor(42)
	require.Len(t, brvd, SectorSize)
	assert.Equal(t, vdTypeBootRecord, brvd[0])
	assert.Equal(t, "EL TORITO SPECIFICATION", string(brvd[7:30]))
}
