package iso9660

// This file computes the on-disk size of a single ECMA-119 directory
// record, optionally extended with Rock Ridge SUSP entries, per the
// fixed-base-plus-identifier-plus-system-use formula: the identifier
// already includes any version suffix (";1" for regular files), so a
// single `recordSize` covers every record kind without a separate
// "file adds two bytes" special case.

// recordSize returns the total serialized size of a directory record whose
// identifier is idLen bytes long and whose attached System Use Area is
// susLen bytes long. The fixed part is padded to an even total before the
// System Use Area is appended, matching the "pad to even" rule applied to
// every record kind.
func recordSize(idLen int, susLen uint32) uint32 {
	base := uint32(drFixedPartSize) + uint32(idLen)
	if base%2 != 0 {
		base++
	}
	return base + susLen
}

// susLenPX is the System Use length of a PX (POSIX attributes) entry,
// attached to every named record and to "." and "..".
func susLenPX() uint32 {
	return rrPXLen
}

// susLenSP is the System Use length of the SP (SUSP signature) entry,
// attached only to the root's "." record.
func susLenSP() uint32 {
	return rrSPLen
}

// susLenCE is the System Use length of the CE (continuation-area pointer)
// entry, attached only to the root's "." record when a continuation area
// exists.
func susLenCE() uint32 {
	return rrCELen
}

// susLenNM is the System Use length of an NM (alternate name) entry for a
// name of the given length, attached only to named (non-"."/"..") entries.
func susLenNM(name string) uint32 {
	return 0x05 + uint32(len(name))
}

// dotRecordSize returns the size of a directory's own "." record. The root
// carries SP, and CE when it has a continuation area; every "." carries PX
// when Rock Ridge is enabled.
func dotRecordSize(rrEnabled, isRoot, hasContinuation bool) uint32 {
	sus := uint32(0)
	if rrEnabled {
		sus += susLenPX()
		if isRoot {
			sus += susLenSP()
			if hasContinuation {
				sus += susLenCE()
			}
		}
	}
	return recordSize(1, sus)
}

// dotDotRecordSize returns the size of a directory's ".." record.
func dotDotRecordSize(rrEnabled bool) uint32 {
	sus := uint32(0)
	if rrEnabled {
		sus += susLenPX()
	}
	return recordSize(1, sus)
}

// childDirRecordSize returns the size of a child directory's record as it
// appears in its parent's extent, keyed by the child's own short name.
func childDirRecordSize(rrEnabled bool, shortName string, fullName string) uint32 {
	sus := uint32(0)
	if rrEnabled {
		sus += susLenPX() + susLenNM(fullName)
	}
	return recordSize(len(shortName), sus)
}

// fileRecordSize returns the size of a regular file's directory record. The
// identifier passed in must already include the ";1" version suffix.
func fileRecordSize(rrEnabled bool, identifier string, fullName string) uint32 {
	sus := uint32(0)
	if rrEnabled {
		sus += susLenPX() + susLenNM(fullName)
	}
	return recordSize(len(identifier), sus)
}
