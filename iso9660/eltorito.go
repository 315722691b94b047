package iso9660

import "encoding/binary"

// El Torito platform identifiers (Validation Entry byte 1).
const (
	elToritoPlatformBIOS    = 0x00
	elToritoPlatformPowerPC = 0x01
	elToritoPlatformMac     = 0x02
	elToritoPlatformEFI     = 0xEF
)

// bootCatalogName is the fixed file name the orchestrator inserts into the
// root directory when El Torito is enabled. bootCatalogSize is its fixed
// content length (a 32-byte Validation Entry plus a 32-byte Default
// Entry), known upfront so the layout planner can reserve its space
// before the catalog's actual bytes are filled in after LBA assignment.
const (
	bootCatalogName = "boot.catalog"
	bootCatalogSize = 64
)

// bootSectorCount derives the Default Entry's "sector count" field: the
// number of 512-byte virtual sectors the BIOS loads at boot time, computed
// from the boot image's actual size (ceil(size/512)) and floored at
// cfg.BootLoadSize (default 4), exactly as original_source/src/iso/mod.rs's
// fill_boot_catalog derives it from the boot file's own size rather than
// from a fixed load-size constant.
func bootSectorCount(cfg Config, bootFileSize uint32) uint16 {
	count := (bootFileSize + 511) / 512
	if count < uint32(cfg.BootLoadSize) {
		count = uint32(cfg.BootLoadSize)
	}
	return uint16(count)
}

// buildBootCatalog assembles the 64-byte El Torito boot catalog: a
// Validation Entry followed by the Default (Initial) Entry. The
// validation checksum is left as a zero placeholder rather than
// computed (see DESIGN.md).
func buildBootCatalog(cfg Config, bootImageLBA, bootFileSize uint32) []byte {
	buf := make([]byte, 0, 64)

	// Validation Entry.
	buf = append(buf, 0x01) // header ID
	buf = append(buf, elToritoPlatformBIOS)
	buf = appendLE16(buf, 0) // reserved
	idField := make([]byte, 24)
	copy(idField, cfg.ElToritoID)
	buf = append(buf, idField...)
	buf = appendLE16(buf, 0)      // checksum placeholder, not computed
	buf = append(buf, 0x55, 0xAA) // key bytes

	// Default (Initial) Entry.
	bootIndicator := byte(0x88)
	if cfg.NoBoot {
		bootIndicator = 0x00
	}
	buf = append(buf, bootIndicator)
	buf = append(buf, 0x00) // media type: no emulation
	buf = appendLE16(buf, 0) // load segment
	buf = append(buf, 0) // system type
	buf = append(buf, 0) // unused
	buf = appendLE16(buf, bootSectorCount(cfg, bootFileSize))
	buf = appendLE32(buf, bootImageLBA)
	buf = append(buf, make([]byte, 20)...)

	return buf
}

// infoTableOffset and grub2InfoOffset are the fixed byte offsets within a
// boot image where the orchestrator patches back LBA/size information once
// layout is known.
const (
	infoTableOffset = 0x08
	grub2InfoOffset = 0x9F4
)

// applyInfoTablePatch writes the El Torito "boot info table" at offset
// 0x08 of data: the PVD's fixed LBA (16), the boot file's own LBA, its
// size, and a zero checksum, each as a plain little-endian u32. data is
// grown in place if it is too short to hold the patch.
func applyInfoTablePatch(data []byte, bootFileLBA, bootFileSize uint32) []byte {
	data = ensureLen(data, infoTableOffset+16)
	binary.LittleEndian.PutUint32(data[infoTableOffset:], SystemAreaSectors)
	binary.LittleEndian.PutUint32(data[infoTableOffset+4:], bootFileLBA)
	binary.LittleEndian.PutUint32(data[infoTableOffset+8:], bootFileSize)
	binary.LittleEndian.PutUint32(data[infoTableOffset+12:], 0)
	return data
}

// applyGrub2InfoPatch writes the GRUB2 boot-info pointer at offset 0x9F4:
// lba*4 + 5 as a little-endian u64.
func applyGrub2InfoPatch(data []byte, bootFileLBA uint32) []byte {
	data = ensureLen(data, grub2InfoOffset+8)
	binary.LittleEndian.PutUint64(data[grub2InfoOffset:], uint64(bootFileLBA)*4+5)
	return data
}

// ensureLen grows data with trailing zero bytes so it is at least n bytes
// long, leaving existing content untouched.
func ensureLen(data []byte, n int) []byte {
	if len(data) >= n {
		return data
	}
	grown := make([]byte, n)
	copy(grown, data)
	return grown
}
