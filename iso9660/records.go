package iso9660

import "time"

// recordTimestamp is the value stamped into every directory record's
// recording-date field. It is set to the time the package was loaded, so
// every record written in one process carries the same time regardless of
// how long emission takes; Build does not reset it. Tests can override it
// via SetRecordTimestamp for the "idempotence modulo timestamps" property.
var recordTimestamp = time.Now()

// SetRecordTimestamp overrides the timestamp used for every directory
// record emitted afterwards. Intended for tests and for pinning a
// reproducible build time.
func SetRecordTimestamp(t time.Time) {
	recordTimestamp = t
}

// recordBuilder produces a record's on-disk bytes together with the size
// that extentSizeInLB already computed for it, so the emission pass below
// packs records into blocks using exactly the same arithmetic the layout
// planner used to size the extent.
type recordBuilder struct {
	size  uint32
	build func() []byte
}

// buildDirectoryExtent serializes d's full directory extent: "." and ".."
// first, then every child entry in the same name-sorted order
// extentSizeInLB walked, padding with zeros whenever a record would
// straddle a 2048-byte logical block boundary.
func buildDirectoryExtent(d *Directory, rrEnabled bool) []byte {
	builders := make([]recordBuilder, 0, 2+len(d.Dirs)+len(d.Files))

	builders = append(builders, recordBuilder{
		size:  dotRecordSize(rrEnabled, d.IsRoot(), d.HasContinuationArea()),
		build: func() []byte { return buildDotRecord(d, rrEnabled) },
	})
	builders = append(builders, recordBuilder{
		size:  dotDotRecordSize(rrEnabled),
		build: func() []byte { return buildDotDotRecord(d, rrEnabled) },
	})

	for _, e := range d.Entries() {
		e := e
		if e.isDir {
			builders = append(builders, recordBuilder{
				size:  childDirRecordSize(rrEnabled, e.dir.ShortName(), e.dir.Name),
				build: func() []byte { return buildChildDirRecord(d, e.dir, rrEnabled) },
			})
		} else {
			builders = append(builders, recordBuilder{
				size:  fileRecordSize(rrEnabled, e.file.ShortIdentifier(), e.file.Name),
				build: func() []byte { return buildFileRecord(e.file, rrEnabled) },
			})
		}
	}

	out := make([]byte, 0, d.ExtentBlocks*SectorSize)
	used := uint32(0)
	for _, b := range builders {
		if used+b.size > SectorSize {
			pad := SectorSize - used
			out = append(out, make([]byte, pad)...)
			used = 0
		}
		out = append(out, b.build()...)
		used += b.size
	}
	if rem := uint32(len(out)) % SectorSize; rem != 0 {
		out = append(out, make([]byte, SectorSize-rem)...)
	}
	if want := d.ExtentBlocks * SectorSize; uint32(len(out)) < want {
		out = append(out, make([]byte, want-uint32(len(out)))...)
	}
	return out
}

// buildRecord assembles one ECMA-119 directory record: the fixed part
// (length, extended-attribute length, both-endian extent location and
// size, recording date, flags, unit size, interleave gap, both-endian
// volume sequence number, identifier length, identifier, optional evening
// pad byte), followed by any Rock Ridge System Use entries in order.
func buildRecord(idBytes []byte, lba, extentSize uint32, isDir bool, sus [][]byte) []byte {
	susLen := 0
	for _, s := range sus {
		susLen += len(s)
	}
	size := recordSize(len(idBytes), uint32(susLen))

	rec := make([]byte, 0, size)
	rec = append(rec, byte(size))
	rec = append(rec, 0) // extended attribute length
	rec = appendBothEndian32(rec, lba)
	rec = appendBothEndian32(rec, extentSize)
	date := recordingDate(recordTimestamp)
	rec = append(rec, date[:]...)
	if isDir {
		rec = append(rec, 0x02)
	} else {
		rec = append(rec, 0x00)
	}
	rec = append(rec, 0, 0) // file unit size, interleave gap size
	rec = appendBothEndian16(rec, 1)
	rec = append(rec, byte(len(idBytes)))
	rec = append(rec, idBytes...)
	if len(idBytes)%2 == 0 {
		rec = append(rec, 0)
	}
	for _, s := range sus {
		rec = append(rec, s...)
	}
	return rec
}

func buildDotRecord(d *Directory, rrEnabled bool) []byte {
	var sus [][]byte
	if rrEnabled {
		if d.IsRoot() {
			sus = append(sus, susEntrySP())
			if d.HasContinuationArea() {
				sus = append(sus, susEntryCE(d.LBA+d.ExtentBlocks, uint32(len(d.ContinuationArea))))
			}
		}
		sus = append(sus, susEntryPX(true, d.LBA+uint32(d.PathTableIndex)))
	}
	return buildRecord([]byte{0x00}, d.LBA, d.ExtentBlocks*SectorSize, true, sus)
}

func buildDotDotRecord(d *Directory, rrEnabled bool) []byte {
	parentLBA, parentBlocks := d.LBA, d.ExtentBlocks
	parentIndex := d.ParentIndex
	if !d.IsRoot() {
		parentLBA = d.parent.LBA
		parentBlocks = d.parent.ExtentBlocks
		parentIndex = d.parent.PathTableIndex
	}
	var sus [][]byte
	if rrEnabled {
		sus = append(sus, susEntryPX(true, parentLBA+uint32(parentIndex)))
	}
	return buildRecord([]byte{0x01}, parentLBA, parentBlocks*SectorSize, true, sus)
}

func buildChildDirRecord(parent, child *Directory, rrEnabled bool) []byte {
	var sus [][]byte
	if rrEnabled {
		sus = append(sus, susEntryPX(true, child.LBA+uint32(child.PathTableIndex)))
		sus = append(sus, susEntryNM(child.Name))
	}
	return buildRecord([]byte(child.ShortName()), child.LBA, child.ExtentBlocks*SectorSize, true, sus)
}

func buildFileRecord(f *File, rrEnabled bool) []byte {
	var sus [][]byte
	if rrEnabled {
		sus = append(sus, susEntryPX(false, f.LBA))
		sus = append(sus, susEntryNM(f.Name))
	}
	return buildRecord([]byte(f.ShortIdentifier()), f.LBA, f.Size, false, sus)
}

// susEntrySP returns the SUSP signature entry attached only to the root's
// "." record.
func susEntrySP() []byte {
	return []byte{'S', 'P', 0x07, 0x01, 0xBE, 0xEF, 0x00}
}

// susEntryCE returns the continuation-area pointer entry.
func susEntryCE(blockLocation, length uint32) []byte {
	b := []byte{'C', 'E', rrCELen, 0x01}
	b = appendBothEndian32(b, blockLocation)
	b = appendBothEndian32(b, 0)
	b = appendBothEndian32(b, length)
	return b
}

// susEntryPX returns the POSIX attributes entry. serial is the record's
// own LBA-derived serial number (lba+path_table_index for directories,
// plain lba for files).
func susEntryPX(isDir bool, serial uint32) []byte {
	mode := uint32(0o100644)
	if isDir {
		mode = 0o040755
	}
	b := []byte{'P', 'X', rrPXLen, 0x01}
	b = appendBothEndian32(b, mode)
	b = appendBothEndian32(b, 1) // link count
	b = appendBothEndian32(b, 0) // uid
	b = appendBothEndian32(b, 0) // gid
	b = appendBothEndian32(b, serial)
	return b
}

// susEntryNM returns the alternate-name entry for a named (non-"."/"..")
// record.
func susEntryNM(name string) []byte {
	b := []byte{'N', 'M', byte(0x05 + len(name)), 0x01, 0x00}
	b = append(b, name...)
	return b
}
