package iso9660

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// buildSystemArea assembles the 32 KiB System Area: either zeros, a copy
// of an embedded boot blob, or a copy of a GRUB2 MBR blob patched with a
// boot-sector pointer, optionally overlaid with a protective MS-DOS
// partition table.
func buildSystemArea(cfg Config, bootImageLBA, totalBlocks uint32) ([]byte, error) {
	area := make([]byte, SystemAreaBytes)

	switch {
	case cfg.EmbeddedBoot != "":
		blob, err := readBootBlob(cfg.EmbeddedBoot)
		if err != nil {
			return nil, err
		}
		copy(area, blob)

	case cfg.Grub2MBR != "":
		blob, err := readBootBlob(cfg.Grub2MBR)
		if err != nil {
			return nil, err
		}
		copy(area, blob)
		binary.LittleEndian.PutUint64(area[0x1B0:], uint64(bootImageLBA)*4+4)
	}

	if cfg.ProtectiveMSDOSLabel {
		writeProtectiveMBR(area, totalBlocks)
	}

	return area, nil
}

// readBootBlob reads a boot blob from path, rejecting anything larger
// than the System Area.
func readBootBlob(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boot blob %s: %w", path, err)
	}
	if len(data) > SystemAreaBytes {
		return nil, fmt.Errorf("generic boot file is bigger than %d bytes!", SystemAreaBytes)
	}
	return data, nil
}

// writeProtectiveMBR overlays a single type-0x17 partition spanning the
// whole image (minus the MBR sector itself) at offset 0x1BE, the
// conventional "protective MBR" trick that lets the disc also mount as a
// plain block device.
func writeProtectiveMBR(area []byte, totalBlocks uint32) {
	const (
		mbrOffset = 0x1BE
		heads     = 64
		sectors   = 32
	)
	sizeInSectors := totalBlocks * (SectorSize / 512)

	p := area[mbrOffset:]
	p[0] = 0x80 // boot flag

	start := writeLBAToCHS(1, heads, sectors)
	copy(p[1:4], start[:])

	p[4] = 0x17 // partition type

	end := writeLBAToCHS(sizeInSectors-1, heads, sectors)
	copy(p[5:8], end[:])

	binary.LittleEndian.PutUint32(p[8:12], 1)
	binary.LittleEndian.PutUint32(p[12:16], sizeInSectors-1)

	// Three remaining partition entries stay zeroed (48 bytes).
	area[0x1FE] = 0x55
	area[0x1FF] = 0xAA
}

// writeSystemArea writes area (already SystemAreaBytes long) to w at the
// start of the image.
func writeSystemArea(w io.WriterAt, area []byte) error {
	_, err := w.WriteAt(area, 0)
	return err
}
