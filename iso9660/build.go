package iso9660

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// rockRidgeEnabled is always true: this implementation never emits a
// bare-ECMA-119 image without Rock Ridge, matching the ER entry the
// orchestrator always attaches to the root (spec.md §4.9 step 4, §6).
const rockRidgeEnabled = true

// erEntry is the fixed Rock Ridge Extension Reference entry placed in the
// root's continuation area, identifying the IEEE P1282 extension.
func erEntry() []byte {
	ext := "IEEE_1282"
	desc := "THE IEEE 1282 PROTOCOL PROVIDES SUPPORT FOR POSIX FILE SYSTEM SEMANTICS."
	src := "PLEASE CONTACT THE IEEE STANDARDS DEPARTMENT, PISCATAWAY, NJ, USA FOR THE 1282 SPECIFICATION."

	b := []byte{'E', 'R', 0xB6, 0x01}
	b = append(b, byte(len(ext)), byte(len(desc)), byte(len(src)), 0x01) // lengths, extension version
	b = append(b, ext...)
	b = append(b, desc...)
	b = append(b, src...)
	return b
}

// Build assembles and writes a complete ISO-9660 image to cfg.Output:
// attach the Rock Ridge ER entry and (for El Torito) the boot catalog to
// the root, import the source tree, count the volume descriptors, plan the
// layout (which also reserves path-table space), fill in El Torito, then
// write System Area, descriptors, marker block, path tables, directory
// extents, and file payloads in that order.
func Build(cfg Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	root := &Directory{}
	root.ContinuationArea = erEntry()

	var catalogFile *File
	if cfg.ElToritoEnabled() {
		catalogFile = &File{Name: bootCatalogName, Size: bootCatalogSize, Content: &BufferProvider{}}
		root.addFile(catalogFile)
	}

	fs := afero.NewOsFs()
	if err := Import(fs, root, cfg.InputDirs); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	descriptorCount := 2 // Primary + Terminator
	if cfg.ElToritoEnabled() {
		descriptorCount++ // Boot Record
	}

	plan := Plan(root, descriptorCount, rockRidgeEnabled, log)
	log.Info("layout planned", zap.Uint32("total_blocks", plan.TotalBlocks))

	var bootImageLBA uint32
	if cfg.ElToritoEnabled() {
		bootFile, err := findFile(root, cfg.ElToritoBoot)
		if err != nil {
			return fmt.Errorf("build: el torito: %w", err)
		}
		bootImageLBA = bootFile.LBA

		catalogFile.Content.(*BufferProvider).Set(buildBootCatalog(cfg, bootImageLBA, bootFile.Size))
		catalogFile.Content.(*BufferProvider).Freeze()

		if cfg.BootInfoTable || cfg.Grub2BootInfo {
			if err := patchBootImage(bootFile, cfg); err != nil {
				return fmt.Errorf("build: el torito: %w", err)
			}
		}
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("build: create output: %w", err)
	}
	defer out.Close()

	area, err := buildSystemArea(cfg, bootImageLBA, plan.TotalBlocks)
	if err != nil {
		return fmt.Errorf("build: system area: %w", err)
	}
	if err := writeSystemArea(out, area); err != nil {
		return fmt.Errorf("build: write system area: %w", err)
	}

	if err := writeDescriptors(out, cfg, plan, root, bootImageLBA); err != nil {
		return fmt.Errorf("build: write descriptors: %w", err)
	}

	markerLBA := SystemAreaSectors + uint32(descriptorCount)
	marker := make([]byte, SectorSize)
	copy(marker, markerBlockSignature)
	if err := writeBlock(out, markerLBA, marker); err != nil {
		return fmt.Errorf("build: write marker block: %w", err)
	}

	if err := writePathTables(out, plan, root); err != nil {
		return fmt.Errorf("build: write path tables: %w", err)
	}

	if err := writeDirectoryTree(out, root, rockRidgeEnabled); err != nil {
		return fmt.Errorf("build: write directory tree: %w", err)
	}

	if err := writeFilePayloads(out, root); err != nil {
		return fmt.Errorf("build: write file payloads: %w", err)
	}

	if err := out.Truncate(int64(plan.TotalBlocks) * SectorSize); err != nil {
		return fmt.Errorf("build: finalize size: %w", err)
	}

	log.Info("image written", zap.String("output", cfg.Output), zap.Uint32("blocks", plan.TotalBlocks))
	return nil
}

// findFile resolves a '/'-separated relative path within root to its File
// node.
func findFile(root *Directory, relPath string) (*File, error) {
	parts := strings.Split(strings.Trim(relPath, "/"), "/")
	dir := root
	for _, part := range parts[:len(parts)-1] {
		next := findSubdir(dir, part)
		if next == nil {
			return nil, fmt.Errorf("path %s: no such directory %q", relPath, part)
		}
		dir = next
	}
	name := parts[len(parts)-1]
	for _, f := range dir.Files {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("path %s: file not found", relPath)
}

func findSubdir(d *Directory, name string) *Directory {
	for _, child := range d.Dirs {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// patchBootImage reads bootFile's current content, applies the requested
// info-table and/or GRUB2 patches, and replaces its content provider with
// a frozen in-memory buffer of exactly the original size — patching must
// never change the file's planned length.
func patchBootImage(bootFile *File, cfg Config) error {
	rc, err := bootFile.Content.Open()
	if err != nil {
		return fmt.Errorf("open boot image: %w", err)
	}
	defer rc.Close()

	data := make([]byte, bootFile.Size)
	if _, err := io.ReadFull(rc, data); err != nil {
		return fmt.Errorf("read boot image: %w", err)
	}

	if cfg.BootInfoTable {
		data = applyInfoTablePatch(data, bootFile.LBA, bootFile.Size)
	}
	if cfg.Grub2BootInfo {
		data = applyGrub2InfoPatch(data, bootFile.LBA)
	}
	if uint32(len(data)) != bootFile.Size {
		return fmt.Errorf("patched boot image changed size from %d to %d", bootFile.Size, len(data))
	}

	buf := &BufferProvider{Buffer: data}
	buf.Freeze()
	bootFile.Content = buf
	return nil
}
