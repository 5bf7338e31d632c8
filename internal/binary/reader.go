// Package binary provides low-level binary I/O operations for CWF file
// access. All 16-bit header codes and pixel samples are stored
// little-endian regardless of host byte order.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

var order = binary.LittleEndian

// Reader provides positioned reads over a CWF file.
type Reader struct {
	r io.ReaderAt
}

// NewReader creates a binary reader over r.
func NewReader(r io.ReaderAt) *Reader {
	return &Reader{r: r}
}

// Int16At reads the 2-byte code stored at the given byte offset.
func (r *Reader) Int16At(offset int64) (int16, error) {
	var buf [2]byte
	if _, err := r.r.ReadAt(buf[:], offset); err != nil {
		return 0, fmt.Errorf("reading code at offset %d: %w", offset, err)
	}
	return int16(order.Uint16(buf[:])), nil
}

// ReadAt fills p with the bytes stored at the given offset.
func (r *Reader) ReadAt(p []byte, offset int64) error {
	if _, err := r.r.ReadAt(p, offset); err != nil {
		return fmt.Errorf("reading %d bytes at offset %d: %w", len(p), offset, err)
	}
	return nil
}

// DecodeUint16 unpacks little-endian 2-byte samples from src into dst.
// len(src) must be 2*len(dst).
func DecodeUint16(dst []uint16, src []byte) {
	for i := range dst {
		dst[i] = order.Uint16(src[2*i:])
	}
}

// EncodeUint16 packs samples into little-endian bytes.
// len(dst) must be 2*len(src).
func EncodeUint16(dst []byte, src []uint16) {
	for i, v := range src {
		order.PutUint16(dst[2*i:], v)
	}
}

// Swap16 swaps adjacent byte pairs in place. The trailing byte of an
// odd-length slice is left untouched.
func Swap16(b []byte) {
	for i := 0; i+1 < len(b); i += 2 {
		b[i], b[i+1] = b[i+1], b[i]
	}
}

// Swap16Copy writes a pair-swapped copy of src into dst.
func Swap16Copy(dst, src []byte) {
	for i := 0; i+1 < len(src); i += 2 {
		dst[i], dst[i+1] = src[i+1], src[i]
	}
}
