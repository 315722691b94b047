package iso9660

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uint32(0), AlignUp(0, 2048))
	assert.Equal(t, uint32(2048), AlignUp(1, 2048))
	assert.Equal(t, uint32(2048), AlignUp(2048, 2048))
	assert.Equal(t, uint32(4096), AlignUp(2049, 2048))
}

func TestConvertName(t *testing.T) {
	assert.Equal(t, "LONGNAME", ConvertName("LONGNAME"))
	assert.Equal(t, "LONGNAME.TXT", ConvertName("LONGNAME.TXT"))
	assert.Equal(t, "LONGNAME.TXT", ConvertName("LONGNAME.TXTX"))
	assert.Equal(t, "LONGFILE.TXT", ConvertName("LONGFILENAME.TXT"))
	assert.Equal(t, "noext", ConvertName("noext"))
}

func TestSectorsForBytes(t *testing.T) {
	assert.Equal(t, uint32(1), sectorsForBytes(0))
	assert.Equal(t, uint32(1), sectorsForBytes(1))
	assert.Equal(t, uint32(1), sectorsForBytes(2048))
	assert.Equal(t, uint32(2), sectorsForBytes(2049))
}

func TestFormatTimestampZero(t *testing.T) {
	out := formatTimestamp(time.Time{})
	assert.Len(t, out, 17)
	for i := 0; i < 16; i++ {
		assert.Equal(t, byte('0'), out[i])
	}
	assert.Equal(t, byte(0), out[16])
}

func TestFormatTimestampNonZero(t *testing.T) {
	ts := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	out := formatTimestamp(ts)
	assert.Equal(t, "2024030405060700", string(out[:16]))
}

func TestWriteLBAToCHS(t *testing.T) {
	chs := writeLBAToCHS(1, 64, 32)
	assert.Len(t, chs, 3)
}

func TestAppendBothEndian32(t *testing.T) {
	buf := appendBothEndian32(nil, 0x01020304)
	assert.Len(t, buf, 8)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01, 0x01, 0x02, 0x03, 0x04}, buf)
}

func TestAppendBothEndian16(t *testing.T) {
	buf := appendBothEndian16(nil, 0x0102)
	assert.Equal(t, []byte{0x02, 0x01, 0x01, 0x02}, buf)
}

func TestPadString(t *testing.T) {
	out := padString("ISOIMAGE", 32)
	assert.Len(t, out, 32)
	assert.Equal(t, "ISOIMAGE", string(out[:8]))
	assert.Equal(t, byte(' '), out[31])
}
