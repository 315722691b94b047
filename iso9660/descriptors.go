package iso9660

import "encoding/binary"

// buildPrimaryVolumeDescriptor serializes the Primary Volume Descriptor
// (type 1) exactly per ECMA-119 Section 8.4, including the root
// directory's own "." record (with SUSP entries when Rock Ridge is
// enabled) embedded at its fixed offset.
func buildPrimaryVolumeDescriptor(cfg Config, plan *ImagePlan, root *Directory, rrEnabled bool) []byte {
	var b []byte
	b = append(b, vdTypePrimary)
	b = append(b, "CD001"...)
	b = append(b, 0x01) // version
	b = append(b, 0)    // reserved

	b = append(b, padString("", 32)...) // system identifier
	b = append(b, padString(cfg.VolumeIdentifier, 32)...)
	b = append(b, make([]byte, 8)...)

	b = appendBothEndian32(b, plan.TotalBlocks)
	b = append(b, make([]byte, 32)...)

	b = appendBothEndian16(b, 1) // volume set size
	b = appendBothEndian16(b, 1) // volume sequence number
	b = appendBothEndian16(b, SectorSize)

	b = appendBothEndian32(b, pathTableSize(root))

	leBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(leBytes, plan.PathTableStartLBA)
	b = append(b, leBytes...)
	b = append(b, make([]byte, 4)...) // optional L-path table LBA = 0

	beBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(beBytes, plan.PathTableStartLBA+1)
	b = append(b, beBytes...)
	b = append(b, make([]byte, 4)...) // optional M-path table LBA = 0

	b = append(b, buildDotRecord(root, rrEnabled)...)

	b = append(b, padString("", 128)...) // volume set identifier
	b = append(b, padString("", 128)...) // publisher identifier
	b = append(b, padString("", 128)...) // data preparer identifier
	b = append(b, padString("", 128)...) // application identifier
	b = append(b, padString("", 38)...)  // copyright file identifier
	b = append(b, padString("", 36)...)  // abstract file identifier
	b = append(b, padString("", 37)...)  // bibliographic file identifier

	b = append(b, formatTimestamp(recordTimestamp)...) // creation
	b = append(b, formatTimestamp(recordTimestamp)...) // modification
	b = append(b, formatTimestamp(zeroTime)...)        // expiration
	b = append(b, formatTimestamp(zeroTime)...)        // effective

	b = append(b, 0x01) // file structure version
	b = append(b, 0)    // reserved

	b = append(b, padString("", 512)...) // application-used

	if rem := SectorSize - len(b); rem > 0 {
		b = append(b, make([]byte, rem)...)
	}
	return b[:SectorSize]
}

// buildBootRecordVolumeDescriptor serializes the El Torito Boot Record
// (type 0) pointing at the boot catalog's assigned LBA.
func buildBootRecordVolumeDescriptor(catalogLBA uint32) []byte {
	var b []byte
	b = append(b, vdTypeBootRecord)
	b = append(b, "CD001"...)
	b = append(b, 0x01)
	b = append(b, "EL TORITO SPECIFICATION"...)
	b = append(b, make([]byte, 41)...)

	lbaBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(lbaBytes, catalogLBA)
	b = append(b, lbaBytes...)

	if rem := SectorSize - len(b); rem > 0 {
		b = append(b, make([]byte, rem)...)
	}
	return b[:SectorSize]
}

// buildVolumeDescriptorTerminator serializes the Volume Descriptor Set
// Terminator (type 0xFF).
func buildVolumeDescriptorTerminator() []byte {
	var b []byte
	b = append(b, vdTypeTerminator)
	b = append(b, "CD001"...)
	b = append(b, 0x01)
	b = append(b, make([]byte, SectorSize-len(b))...)
	return b
}
