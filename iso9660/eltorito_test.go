package iso9660

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBootCatalogLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BootLoadSize = 4
	cat := buildBootCatalog(cfg, 0x1234, 2048)

	assert.Equal(t, byte(0x01), cat[0]) // header id
	assert.Equal(t, byte(elToritoPlatformBIOS), cat[1])
	assert.Equal(t, byte(0x55), cat[30])
	assert.Equal(t, byte(0xAA), cat[31])

	assert.Equal(t, byte(0x88), cat[32]) // boot indicator, bootable by default
	sectorCount := binary.LittleEndian.Uint16(cat[38:40])
	assert.Equal(t, uint16(4), sectorCount) // ceil(2048/512) = 4, at the cfg.BootLoadSize floor
	lba := binary.LittleEndian.Uint32(cat[40:44])
	assert.Equal(t, uint32(0x1234), lba)
}

func TestBuildBootCatalogSectorCountDerivedFromFileSize(t *testing.T) {
	cfg := DefaultConfig()
	cat := buildBootCatalog(cfg, 0, 8192)
	sectorCount := binary.LittleEndian.Uint16(cat[38:40])
	assert.Equal(t, uint16(16), sectorCount) // ceil(8192/512) = 16, above the floor
}

func TestBuildBootCatalogSectorCountFlooredAtBootLoadSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BootLoadSize = 4
	cat := buildBootCatalog(cfg, 0, 512) // ceil(512/512) = 1, below the floor
	sectorCount := binary.LittleEndian.Uint16(cat[38:40])
	assert.Equal(t, uint16(4), sectorCount)
}

func TestBuildBootCatalogNoBoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoBoot = true
	cat := buildBootCatalog(cfg, 0, 0)
	assert.Equal(t, byte(0x00), cat[32])
}

func TestApplyInfoTablePatch(t *testing.T) {
	data := make([]byte, 2048)
	patched := applyInfoTablePatch(data, 500, 2048)
	assert.Equal(t, uint32(SystemAreaSectors), binary.LittleEndian.Uint32(patched[0x08:]))
	assert.Equal(t, uint32(500), binary.LittleEndian.Uint32(patched[0x0C:]))
	assert.Equal(t, uint32(2048), binary.LittleEndian.Uint32(patched[0x10:]))
}

func TestApplyGrub2InfoPatch(t *testing.T) {
	data := make([]byte, 100)
	patched := applyGrub2InfoPatch(data, 10)
	assert.Len(t, patched, grub2InfoOffset+8)
	assert.Equal(t, uint64(45), binary.LittleEndian.Uint64(patched[grub2InfoOffset:]))
}
