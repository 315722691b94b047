package iso9660

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// writeBlock writes data at the start of logical block lba via WriteAt,
// Go's pwrite-equivalent random-access write — the idiomatic replacement
// for the seek/write/seek-back dance spec.md §5 describes, since WriteAt
// never disturbs (or depends on) the file's current offset in the first
// place.
func writeBlock(f *os.File, lba uint32, data []byte) error {
	_, err := f.WriteAt(data, int64(lba)*SectorSize)
	return err
}

// writeDescriptors writes the Primary Volume Descriptor, optional Boot
// Record, and Terminator starting at logical block 16.
func writeDescriptors(f *os.File, cfg Config, plan *ImagePlan, root *Directory, bootCatalogLBA uint32) error {
	lba := uint32(SystemAreaSectors)

	pvd := buildPrimaryVolumeDescriptor(cfg, plan, root, rockRidgeEnabled)
	if err := writeBlock(f, lba, pvd); err != nil {
		return err
	}
	lba++

	if cfg.ElToritoEnabled() {
		catalogLBA := bootCatalogLBA
		for _, file := range root.Files {
			if file.Name == bootCatalogName {
				catalogLBA = file.LBA
			}
		}
		brvd := buildBootRecordVolumeDescriptor(catalogLBA)
		if err := writeBlock(f, lba, brvd); err != nil {
			return err
		}
		lba++
	}

	return writeBlock(f, lba, buildVolumeDescriptorTerminator())
}

// writePathTables writes the little-endian table at plan.PathTableStartLBA
// and the big-endian table one block later. It first rejects a table whose
// pathTableSize(root) exceeds the single reserved block; the bytes written
// are not otherwise compared against pathTableSize(root).
func writePathTables(f *os.File, plan *ImagePlan, root *Directory) error {
	if wantSize := pathTableSize(root); wantSize > SectorSize {
		return fmt.Errorf("path table of %d bytes exceeds the single reserved block (unsupported, see DESIGN.md)", wantSize)
	}

	le := buildPathTable(root, binary.LittleEndian)
	if err := writeBlock(f, plan.PathTableStartLBA, le); err != nil {
		return err
	}

	be := buildPathTable(root, binary.BigEndian)
	return writeBlock(f, plan.PathTableStartLBA+1, be)
}

// writeDirectoryTree writes every directory's extent at its planned LBA,
// depth-first, followed by the root's continuation area (if any)
// immediately after its own extent.
func writeDirectoryTree(f *os.File, d *Directory, rrEnabled bool) error {
	extent := buildDirectoryExtent(d, rrEnabled)
	if err := writeBlock(f, d.LBA, extent); err != nil {
		return fmt.Errorf("directory %q: %w", d.Name, err)
	}

	if d.HasContinuationArea() {
		ceLBA := d.LBA + d.ExtentBlocks
		ceBlock := make([]byte, SectorSize)
		copy(ceBlock, d.ContinuationArea)
		if uint32(len(d.ContinuationArea)) > SectorSize {
			return fmt.Errorf("directory %q: continuation area exceeds one block", d.Name)
		}
		if err := writeBlock(f, ceLBA, ceBlock); err != nil {
			return err
		}
	}

	for _, child := range d.Dirs {
		if err := writeDirectoryTree(f, child, rrEnabled); err != nil {
			return err
		}
	}
	return nil
}

// writeFilePayloads streams every file's content to its planned LBA,
// padded to a whole number of logical blocks, opening and closing each
// content provider on every exit path.
func writeFilePayloads(f *os.File, d *Directory) error {
	for _, file := range d.Files {
		if err := writeOneFile(f, file); err != nil {
			return fmt.Errorf("file %q: %w", file.Name, err)
		}
	}
	for _, child := range d.Dirs {
		if err := writeFilePayloads(f, child); err != nil {
			return err
		}
	}
	return nil
}

func writeOneFile(f *os.File, file *File) error {
	rc, err := file.Content.Open()
	if err != nil {
		return fmt.Errorf("open content: %w", err)
	}
	defer rc.Close()

	data := make([]byte, file.AlignedSize)
	n, err := io.ReadFull(rc, data)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("read content: %w", err)
	}
	_ = n

	return writeBlock(f, file.LBA, data)
}
