package iso9660

import "go.uber.org/zap"

// ImagePlan is the global state produced by Plan: everything downstream
// serialization steps need in order to write bytes at the right offsets
// without re-deriving them.
type ImagePlan struct {
	SystemAreaBlocks  uint32
	DescriptorCount   int
	PathTableStartLBA uint32
	RootLBA           uint32
	TotalBlocks       uint32
}

// Plan walks root depth-first, assigning path-table indices, parent
// indices, directory extent LBAs, and file LBAs, then reserves file
// payload space in a second pass. descriptorCount is the number of volume
// descriptors that will occupy the blocks immediately after the System
// Area (Primary, optional Boot Record, Terminator).
func Plan(root *Directory, descriptorCount int, rrEnabled bool, log *zap.Logger) *ImagePlan {
	cursor := uint32(SystemAreaSectors) + uint32(descriptorCount) + 1 // +1: the "MKI " marker block
	pathTableStartLBA := cursor
	cursor += reservedPathTableBlocks

	root.PathTableIndex = 1
	root.ParentIndex = 1
	nextIndex := uint16(1)

	root.LBA = cursor
	planDirectory(root, &cursor, rrEnabled, &nextIndex, log)
	reserveFileSpace(root, &cursor)

	plan := &ImagePlan{
		SystemAreaBlocks:  SystemAreaSectors,
		DescriptorCount:   descriptorCount,
		PathTableStartLBA: pathTableStartLBA,
		RootLBA:           root.LBA,
		TotalBlocks:       cursor,
	}
	if log != nil {
		log.Debug("layout planned",
			zap.Uint32("root_lba", plan.RootLBA),
			zap.Uint32("path_table_start_lba", plan.PathTableStartLBA),
			zap.Uint32("total_blocks", plan.TotalBlocks),
		)
	}
	return plan
}

// planDirectory assigns d's extent (d.LBA must already be set for the
// root; non-root directories take the current cursor value), then — for
// the root only, since it is the only directory that ever carries one —
// reserves the continuation-area block immediately following the extent,
// matching the Rock Ridge CE entry's block-location formula (root LBA +
// extent_size_in_lb). It then assigns path-table indices to every
// immediate child before recursing into them, so a parent's index is
// always strictly less than any descendant's.
func planDirectory(d *Directory, cursor *uint32, rrEnabled bool, nextIndex *uint16, log *zap.Logger) {
	if !d.IsRoot() {
		d.LBA = *cursor
	}
	d.ExtentBlocks = extentSizeInLB(d, rrEnabled)
	*cursor += d.ExtentBlocks

	if d.HasContinuationArea() {
		*cursor++
	}

	for _, child := range d.Dirs {
		*nextIndex++
		child.PathTableIndex = *nextIndex
		child.ParentIndex = d.PathTableIndex
	}
	for _, child := range d.Dirs {
		planDirectory(child, cursor, rrEnabled, nextIndex, log)
	}
}

// reserveFileSpace walks the tree a second time, in the same depth-first
// order used for directory LBA assignment, handing every file the current
// cursor value and then advancing the cursor by one block more than the
// file's rounded-up size — a deliberate over-reservation the reference
// output depends on (see DESIGN.md).
func reserveFileSpace(d *Directory, cursor *uint32) {
	for _, f := range d.Files {
		f.LBA = *cursor
		f.AlignedSize = AlignUp(f.Size, SectorSize)
		*cursor += sectorsForBytes(f.Size) + 1
	}
	for _, child := range d.Dirs {
		reserveFileSpace(child, cursor)
	}
}

// extentSizeInLB simulates record emission to determine how many logical
// blocks d's directory extent occupies: "." and ".." always come first,
// then every child entry in name-sorted order; whenever a record would not
// fit in the remainder of the current block, a new block begins.
func extentSizeInLB(d *Directory, rrEnabled bool) uint32 {
	blocks := uint32(1)
	used := dotRecordSize(rrEnabled, d.IsRoot(), d.HasContinuationArea()) + dotDotRecordSize(rrEnabled)

	for _, e := range d.Entries() {
		var size uint32
		if e.isDir {
			size = childDirRecordSize(rrEnabled, e.dir.ShortName(), e.dir.Name)
		} else {
			size = fileRecordSize(rrEnabled, e.file.ShortIdentifier(), e.file.Name)
		}
		if used+size > SectorSize {
			blocks++
			used = 0
		}
		used += size
	}
	return blocks
}
