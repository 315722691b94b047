package iso9660

import "encoding/binary"

// buildPathTable serializes the full path table for root in byte order bo
// (binary.LittleEndian or binary.BigEndian): the root entry first, then
// every directory in the tree's pre-order walk (parent before children,
// children in PathTableIndex order), padded to a whole number of logical
// blocks.
func buildPathTable(root *Directory, bo binary.ByteOrder) []byte {
	var out []byte
	out = appendPathTableRecord(out, bo, []byte{0x00}, root.LBA, 1)

	var walk func(d *Directory)
	walk = func(d *Directory) {
		for _, child := range d.Dirs {
			out = appendPathTableRecord(out, bo, []byte(child.ShortName()), child.LBA, child.ParentIndex)
		}
		for _, child := range d.Dirs {
			walk(child)
		}
	}
	walk(root)

	if rem := len(out) % SectorSize; rem != 0 {
		out = append(out, make([]byte, SectorSize-rem)...)
	}
	return out
}

// appendPathTableRecord appends one path table record: identifier length,
// extended-attribute length (always 0), byte-ordered extent LBA,
// byte-ordered parent directory number, identifier, and an evening pad
// byte when the identifier length is odd.
func appendPathTableRecord(out []byte, bo binary.ByteOrder, idBytes []byte, lba uint32, parent uint16) []byte {
	out = append(out, byte(len(idBytes)))
	out = append(out, 0) // extended attribute length
	lbaBytes := make([]byte, 4)
	bo.PutUint32(lbaBytes, lba)
	out = append(out, lbaBytes...)
	parentBytes := make([]byte, 2)
	bo.PutUint16(parentBytes, parent)
	out = append(out, parentBytes...)
	out = append(out, idBytes...)
	if len(idBytes)%2 != 0 {
		out = append(out, 0)
	}
	return out
}

// pathTableSize returns the serialized byte length of root's path table
// before block padding, used to assert the written size matches the
// planned size.
func pathTableSize(root *Directory) uint32 {
	size := uint32(ptRecFixedPartSize + 1 + 1) // root entry: id_len=1, odd, +1 pad byte
	var walk func(d *Directory)
	walk = func(d *Directory) {
		for _, child := range d.Dirs {
			idLen := len(child.ShortName())
			recLen := ptRecFixedPartSize + idLen
			if idLen%2 != 0 {
				recLen++
			}
			size += uint32(recLen)
		}
		for _, child := range d.Dirs {
			walk(child)
		}
	}
	walk(root)
	return size
}
