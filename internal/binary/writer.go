package binary

import (
	"fmt"
	"io"
)

// Writer provides positioned writes over a CWF file.
type Writer struct {
	w io.WriterAt
}

// NewWriter creates a binary writer over w.
func NewWriter(w io.WriterAt) *Writer {
	return &Writer{w: w}
}

// PutInt16At writes the 2-byte code at the given byte offset.
func (w *Writer) PutInt16At(code int16, offset int64) error {
	var buf [2]byte
	order.PutUint16(buf[:], uint16(code))
	if _, err := w.w.WriteAt(buf[:], offset); err != nil {
		return fmt.Errorf("writing code at offset %d: %w", offset, err)
	}
	return nil
}

// WriteAt writes p at the given offset.
func (w *Writer) WriteAt(p []byte, offset int64) error {
	if _, err := w.w.WriteAt(p, offset); err != nil {
		return fmt.Errorf("writing %d bytes at offset %d: %w", len(p), offset, err)
	}
	return nil
}

// Zero writes n zero bytes starting at the given offset.
func (w *Writer) Zero(offset, n int64) error {
	const chunk = 4096
	buf := make([]byte, chunk)
	for n > 0 {
		m := n
		if m > chunk {
			m = chunk
		}
		if _, err := w.w.WriteAt(buf[:m], offset); err != nil {
			return fmt.Errorf("zero-filling %d bytes at offset %d: %w", m, offset, err)
		}
		offset += m
		n -= m
	}
	return nil
}
