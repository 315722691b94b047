package iso9660

const (
	// SectorSize is the ECMA-119 logical block size, fixed at 2048 bytes.
	SectorSize = 2048

	// SystemAreaSectors is the number of blank (or boot-data-carrying) sectors
	// reserved at the very start of the image before any ISO-9660 structure.
	SystemAreaSectors = 16
	SystemAreaBytes   = SystemAreaSectors * SectorSize

	// reservedPathTableBlocks is the fixed number of logical blocks set aside
	// for the L-type and M-type path tables (plus one spacer block each),
	// regardless of their actual size. Path tables larger than one block are
	// not supported by this design (spec open question, see DESIGN.md).
	reservedPathTableBlocks = 4

	// vdTypePrimary, vdTypeBootRecord, vdTypeTerminator identify volume
	// descriptor types (ECMA-119 Section 8).
	vdTypePrimary    byte = 1
	vdTypeBootRecord byte = 0
	vdTypeTerminator byte = 255

	// drFixedPartSize is the size of a Directory Record excluding the
	// identifier and any System Use entries (ECMA-119 Section 9.1).
	drFixedPartSize = 0x21

	// ptRecFixedPartSize is the size of a Path Table Record excluding the
	// identifier (ECMA-119 Section 9.4).
	ptRecFixedPartSize = 8

	// Rock Ridge / SUSP System Use entry lengths (IEEE P1281/P1282).
	rrPXLen = 0x2C
	rrSPLen = 0x07
	rrCELen = 0x1C

	// maxIdentifierBytes is the structural limit on a directory record
	// identifier; exceeding it aborts the build (spec §7c).
	maxIdentifierBytes = 251

	// markerBlockSignature is the 4-byte prefix of the opaque one-block
	// marker written right after the volume descriptor terminator. Its
	// origin is unclear; it is reproduced verbatim for compatibility with
	// known consumers (spec §9).
	markerBlockSignature = "MKI "
)
