// Package raster reads and writes rectangular sample windows from the
// row-major pixel plane of a dataset file. Reads honor a per-file
// registration shift; regions falling outside the stored plane are
// zero-filled. The package moves raw bytes only: sample decoding is the
// caller's business.
package raster

import (
	"fmt"
	"io"
)

// Grid describes the stored pixel plane.
type Grid struct {
	Rows      int64
	Cols      int64
	PixelSize int64 // bytes per sample
}

// Window is a rectangular region in row/column space.
type Window struct {
	StartRow, StartCol int64
	Rows, Cols         int64
}

// Len reports the window size in bytes for the given grid.
func (w Window) Len(g Grid) int64 { return w.Rows * w.Cols * g.PixelSize }

// In reports whether the window lies entirely within the grid.
func (w Window) In(g Grid) bool {
	return w.StartRow >= 0 && w.StartCol >= 0 &&
		w.Rows >= 1 && w.Cols >= 1 &&
		w.StartRow+w.Rows <= g.Rows && w.StartCol+w.Cols <= g.Cols
}

// HeadLen is the byte offset of the first pixel row: one full row of
// samples is reserved for the attribute header.
func (g Grid) HeadLen() int64 { return g.Cols * g.PixelSize }

// ReadWindow returns the window's samples shifted by (shiftRow,
// shiftCol). Samples outside the stored plane read as zero.
func ReadWindow(r io.ReaderAt, g Grid, w Window, shiftRow, shiftCol int64) ([]byte, error) {
	dst := make([]byte, w.Len(g))

	startRow := w.StartRow - shiftRow
	startCol := w.StartCol - shiftCol
	endRow := startRow + w.Rows - 1
	endCol := startCol + w.Cols - 1

	// Entirely off the plane: the zero fill is the answer.
	if startRow > g.Rows-1 || endRow < 0 || startCol > g.Cols-1 || endCol < 0 {
		return dst, nil
	}

	// Destination offsets for the part of the window hanging off the
	// top or left edge.
	dstRow := max64(0, -startRow)
	dstCol := max64(0, -startCol)

	srcRow := clamp64(startRow, 0, g.Rows)
	srcCol := clamp64(startCol, 0, g.Cols)
	nRows := clamp64(endRow, 0, g.Rows-1) - srcRow + 1
	nCols := clamp64(endCol, 0, g.Cols-1) - srcCol + 1

	rowStep := g.Cols * g.PixelSize
	offset := g.HeadLen() + srcRow*rowStep + srcCol*g.PixelSize
	dstOff := (dstRow*w.Cols + dstCol) * g.PixelSize
	span := nCols * g.PixelSize

	for i := int64(0); i < nRows; i++ {
		row := dst[dstOff+i*w.Cols*g.PixelSize:]
		if _, err := r.ReadAt(row[:span], offset+i*rowStep); err != nil {
			return nil, fmt.Errorf("raster: read row %d: %w", srcRow+i, err)
		}
	}
	return dst, nil
}

// WriteWindow stores src into the window. The window must lie entirely
// within the plane; no shift applies on write. src holds w.Len(g) bytes.
func WriteWindow(wr io.WriterAt, g Grid, w Window, src []byte) error {
	rowStep := g.Cols * g.PixelSize
	offset := g.HeadLen() + w.StartRow*rowStep + w.StartCol*g.PixelSize
	span := w.Cols * g.PixelSize

	for i := int64(0); i < w.Rows; i++ {
		row := src[i*span : (i+1)*span]
		if _, err := wr.WriteAt(row, offset+i*rowStep); err != nil {
			return fmt.Errorf("raster: write row %d: %w", w.StartRow+i, err)
		}
	}
	return nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func clamp64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
