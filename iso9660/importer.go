package iso9660

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Import merges one or more source directories on fs into the given root
// Directory (keeping any entries it already holds), recursively, sorting children by name at every level so that
// child order is a stable function of the imported paths regardless of the
// host filesystem's directory-iteration order.
func Import(fs afero.Fs, roots *Directory, dirs []string) error {
	for _, dir := range dirs {
		if err := importInto(fs, roots, dir); err != nil {
			return fmt.Errorf("import %s: %w", dir, err)
		}
	}
	sortTree(roots)
	return nil
}

// sortTree re-sorts every directory's children by name, needed because
// merging multiple source directories can interleave entries out of order.
func sortTree(d *Directory) {
	sort.Slice(d.Dirs, func(i, j int) bool { return d.Dirs[i].Name < d.Dirs[j].Name })
	sort.Slice(d.Files, func(i, j int) bool { return d.Files[i].Name < d.Files[j].Name })
	for _, child := range d.Dirs {
		sortTree(child)
	}
}

func importInto(fs afero.Fs, dest *Directory, hostPath string) error {
	entries, err := afero.ReadDir(fs, hostPath)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, ent := range entries {
		if err := checkIdentifierLength(ent.Name()); err != nil {
			return err
		}
		childHostPath := filepath.Join(hostPath, ent.Name())
		if ent.IsDir() {
			child := findOrCreateSubdir(dest, ent.Name())
			if err := importInto(fs, child, childHostPath); err != nil {
				return err
			}
			continue
		}

		f := &File{
			Name: ent.Name(),
			Size: uint32(ent.Size()),
			Content: &RegularProvider{
				Fs:   fs,
				Path: childHostPath,
			},
		}
		dest.addFile(f)
	}
	return nil
}

// findOrCreateSubdir returns the existing child directory of dest named
// name, creating it if this is the first source directory contributing to
// it. This is what lets Import merge several input trees into one image.
func findOrCreateSubdir(dest *Directory, name string) *Directory {
	for _, d := range dest.Dirs {
		if d.Name == name {
			return d
		}
	}
	child := &Directory{Name: name}
	dest.addDir(child)
	return child
}

// checkIdentifierLength rejects names that would overflow the single-byte
// length field of a Rock Ridge NM entry (spec §7c: identifiers longer than
// maxIdentifierBytes abort the build rather than silently truncating or
// wrapping that length byte).
func checkIdentifierLength(name string) error {
	if len(name) > maxIdentifierBytes {
		return fmt.Errorf("identifier %q is %d bytes, exceeds the %d-byte limit", name, len(name), maxIdentifierBytes)
	}
	return nil
}
