package iso9660

import (
	"bytes"
	"io"

	"github.com/spf13/afero"
)

// ContentProvider supplies the bytes that back a single file entry in the
// image. Size must be stable once the layout planner has run; Open may be
// called more than once (the El Torito boot image is read once for
// patching, and every file again during the file-data writing pass).
type ContentProvider interface {
	// Open returns a fresh reader positioned at the start of the content.
	Open() (io.ReadCloser, error)
	// Size returns the content length in bytes.
	Size() (int64, error)
}

// RegularProvider backs a file entry with a path on an afero filesystem,
// generalizing the teacher's direct os.ReadFile access so the host importer
// can be exercised against afero.NewMemMapFs() in tests.
type RegularProvider struct {
	Fs   afero.Fs
	Path string
}

func (p *RegularProvider) Open() (io.ReadCloser, error) {
	return p.Fs.Open(p.Path)
}

func (p *RegularProvider) Size() (int64, error) {
	info, err := p.Fs.Stat(p.Path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// BufferProvider backs a file entry with an in-memory byte slice, for
// synthesized content such as the El Torito boot catalog. Its content may
// be replaced via Set until Freeze is called; the orchestrator fills the
// boot catalog after planning (into space reserved from File.Size) and
// then freezes it, so later mutation cannot desynchronize that space.
type BufferProvider struct {
	Buffer []byte
	frozen bool
}

func (p *BufferProvider) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(p.Buffer)), nil
}

func (p *BufferProvider) Size() (int64, error) {
	return int64(len(p.Buffer)), nil
}

// Freeze marks the buffer's current content as final. Subsequent calls to
// Set after Freeze panic, since they would invalidate an already-planned
// extent size.
func (p *BufferProvider) Freeze() {
	p.frozen = true
}

// Set replaces the buffer content. It must only be called before Freeze.
func (p *BufferProvider) Set(b []byte) {
	if p.frozen {
		panic("iso9660: BufferProvider.Set called after Freeze")
	}
	p.Buffer = b
}
