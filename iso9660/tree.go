package iso9660

import "sort"

// File is a leaf entry in the image tree: either host-path-backed or
// buffer-backed content, with the size/LBA bookkeeping the layout planner
// fills in.
type File struct {
	// Name is the original (not yet shortened) file name.
	Name string

	Content ContentProvider

	// Size is the raw content length in bytes, captured at import time for
	// host-backed files or set when a buffered file is inserted (the boot
	// catalog gets its fixed length before its content is filled in).
	Size uint32

	// AlignedSize is Size rounded up to a multiple of SectorSize. Set by
	// the layout planner.
	AlignedSize uint32

	// LBA is the assigned logical block address of this file's payload.
	// Zero until the layout planner has run.
	LBA uint32

	shortName string
}

// Directory is an interior node in the image tree.
type Directory struct {
	// Name is the directory's own name (empty for the root).
	Name string

	Dirs  []*Directory
	Files []*File

	// PathTableIndex is this directory's 1-based index into the path
	// table, in [1, 65535]. Assigned breadth-first by the layout planner
	// so a parent's index is always strictly less than any descendant's.
	PathTableIndex uint16

	// ParentIndex is the PathTableIndex of this directory's parent. The
	// root's ParentIndex is 1, referencing itself.
	ParentIndex uint16

	// LBA is this directory's assigned extent start. Zero until planned.
	LBA uint32

	// ExtentBlocks is the directory extent's size in logical blocks, as
	// computed by simulating record emission (see extentSizeInLB in
	// layout.go).
	ExtentBlocks uint32

	// ContinuationArea holds the Rock Ridge continuation-area bytes
	// referenced by the root's CE entry. Only ever non-nil on the root,
	// and only when Rock Ridge is enabled.
	ContinuationArea []byte

	shortName string
	parent    *Directory
}

// IsRoot reports whether d has no parent.
func (d *Directory) IsRoot() bool {
	return d.parent == nil
}

// HasContinuationArea reports whether d carries a Rock Ridge continuation
// area that the layout planner must reserve a block for.
func (d *Directory) HasContinuationArea() bool {
	return d.ContinuationArea != nil
}

// addDir appends a child directory, wiring its parent pointer.
func (d *Directory) addDir(child *Directory) {
	child.parent = d
	d.Dirs = append(d.Dirs, child)
}

// addFile appends a child file.
func (d *Directory) addFile(f *File) {
	d.Files = append(d.Files, f)
}

// ShortName returns d's ISO Level-1 8.3 identifier, computed once and
// cached. The root has no on-disk name of its own (it is always emitted as
// the single byte 0x00), so ShortName is only meaningful for non-root
// directories.
func (d *Directory) ShortName() string {
	if d.shortName == "" {
		d.shortName = ConvertName(d.Name)
	}
	return d.shortName
}

// ShortIdentifier returns f's on-disk identifier including the mandatory
// ";1" version suffix.
func (f *File) ShortIdentifier() string {
	if f.shortName == "" {
		f.shortName = ConvertName(f.Name) + ";1"
	}
	return f.shortName
}

// dirEntry is one child record to be emitted in a directory's extent,
// either a subdirectory or a file, in the single name-sorted order shared
// by the layout planner's sizing simulation and the record serializer.
type dirEntry struct {
	isDir bool
	dir   *Directory
	file  *File
}

// Entries returns d's children — subdirectories and files — merged into a
// single slice sorted by name, the order both extent-size simulation and
// record emission must agree on.
func (d *Directory) Entries() []dirEntry {
	entries := make([]dirEntry, 0, len(d.Dirs)+len(d.Files))
	for _, sub := range d.Dirs {
		entries = append(entries, dirEntry{isDir: true, dir: sub})
	}
	for _, f := range d.Files {
		entries = append(entries, dirEntry{isDir: false, file: f})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].name() < entries[j].name()
	})
	return entries
}

func (e dirEntry) name() string {
	if e.isDir {
		return e.dir.Name
	}
	return e.file.Name
}
