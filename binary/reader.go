// Package binary decodes the WebAssembly 1.0 (MVP) binary format into the
// wasm.Module data model, restricted to the subset spec.md describes.
package binary

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ralphmorton/wisp/leb128"
	"github.com/ralphmorton/wisp/wasm"
)

// reader is the byte source: a cursor over the module bytes that tracks
// how many bytes it has consumed, so callers can verify a section decoded
// exactly its declared length.
type reader struct {
	buffer *bytes.Buffer
	read   int
}

func newReader(b []byte) *reader {
	return &reader{buffer: bytes.NewBuffer(b)}
}

func (r *reader) Read(p []byte) (int, error) {
	n, err := r.buffer.Read(p)
	r.read += n
	return n, err
}

func (r *reader) ReadByte() (byte, error) {
	b, err := r.buffer.ReadByte()
	if err == nil {
		r.read++
	}
	return b, err
}

// take reads exactly n bytes, failing with wasm.ErrUnexpectedEOF if fewer
// remain.
func (r *reader) take(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", wasm.ErrUnexpectedEOF, err)
	}
	return buf, nil
}

func (r *reader) takeU8() (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", wasm.ErrUnexpectedEOF, err)
	}
	return b, nil
}

func (r *reader) peekByte() (byte, bool) {
	b, err := r.buffer.ReadByte()
	if err != nil {
		return 0, false
	}
	_ = r.buffer.UnreadByte()
	return b, true
}

func (r *reader) hasMore() bool {
	_, ok := r.peekByte()
	return ok
}

func (r *reader) takeULEB32() (uint32, error) {
	v, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", wasm.ErrUnexpectedEOF, err)
	}
	return v, nil
}

func (r *reader) takeSLEB32() (int32, error) {
	v, _, err := leb128.DecodeInt32(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", wasm.ErrUnexpectedEOF, err)
	}
	return v, nil
}

func (r *reader) takeName() (string, error) {
	n, err := r.takeULEB32()
	if err != nil {
		return "", fmt.Errorf("read name length: %w", err)
	}
	buf, err := r.take(int(n))
	if err != nil {
		return "", fmt.Errorf("read name bytes: %w", err)
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("name is not valid utf8")
	}
	return string(buf), nil
}
