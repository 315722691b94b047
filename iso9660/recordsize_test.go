package iso9660

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordSizeEvenPadding(t *testing.T) {
	// id_len=1 -> base=0x22 (already even), no SUSP.
	assert.Equal(t, uint32(0x22), recordSize(1, 0))
	// id_len=8 -> base=0x21+8=0x29, odd, pads to 0x2A.
	assert.Equal(t, uint32(0x2A), recordSize(8, 0))
}

func TestDotRecordSizeRootWithContinuation(t *testing.T) {
	size := dotRecordSize(true, true, true)
	// base(evenpad of 0x22) + PX(0x2C) + SP(0x07) + CE(0x1C)
	assert.Equal(t, uint32(0x22+rrPXLen+rrSPLen+rrCELen), size)
}

func TestDotRecordSizeNonRoot(t *testing.T) {
	size := dotRecordSize(true, false, false)
	assert.Equal(t, uint32(0x22+rrPXLen), size)
}

func TestDotRecordSizeNoRockRidge(t *testing.T) {
	size := dotRecordSize(false, true, true)
	assert.Equal(t, uint32(0x22), size)
}

func TestChildDirRecordSize(t *testing.T) {
	size := childDirRecordSize(true, "SUBDIR", "subdir")
	// id_len=6, base=0x21+6=0x27 odd -> 0x28, + PX + NM(5+6=11)
	assert.Equal(t, uint32(0x28+rrPXLen+11), size)
}

func TestFileRecordSize(t *testing.T) {
	size := fileRecordSize(true, "HELLO.TXT;1", "hello.txt")
	idLen := len("HELLO.TXT;1")
	assert.Equal(t, recordSize(idLen, susLenPX()+susLenNM("hello.txt")), size)
}
