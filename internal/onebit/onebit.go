// Package onebit implements the 1B compressed layout: a 1024-byte
// header followed by a delta-coded channel stream and a run-length
// coded graphics stream.
package onebit

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	cwbin "github.com/coastwatch-go/cwf/internal/binary"
	"github.com/coastwatch-go/cwf/internal/calibrate"
	"github.com/coastwatch-go/cwf/internal/raster"
)

// HeadLen is the fixed header size of a compressed file.
const HeadLen = 1024

// ErrFirstByte reports a channel stream that opens with a delta byte
// instead of an absolute sample.
var ErrFirstByte = errors.New("onebit: first stream byte is not an absolute sample")

const (
	flagAbsolute = 0x80 // first byte of a 2-byte absolute sample
	flagAbsNeg   = 0x08 // sign bit inside an absolute sample
	flagDeltaNeg = 0x40 // sign bit of a 1-byte delta
	deltaMax     = 63
)

// File is the random-access surface a working file must provide.
type File interface {
	io.ReaderAt
	io.WriterAt
}

// Compress encodes the uncompressed working plane in work into dst as a
// sequential compressed stream: 1024 header bytes, then the channel
// deltas, then the graphics runs.
func Compress(work io.ReaderAt, dst io.Writer, g raster.Grid) error {
	headLen := g.HeadLen()

	head := make([]byte, HeadLen)
	n := headLen
	if n > HeadLen {
		n = HeadLen
	}
	if _, err := work.ReadAt(head[:n], 0); err != nil {
		return fmt.Errorf("onebit: read header: %w", err)
	}
	if _, err := dst.Write(head); err != nil {
		return fmt.Errorf("onebit: write header: %w", err)
	}

	bw := bufio.NewWriter(dst)

	// Channel stream.
	packed := make([]uint16, g.Cols)
	data := make([]int16, g.Cols)
	var last int16
	for row := int64(0); row < g.Rows; row++ {
		raw, err := raster.ReadWindow(work, g, raster.Window{StartRow: row, Rows: 1, Cols: g.Cols}, 0, 0)
		if err != nil {
			return err
		}
		cwbin.DecodeUint16(packed, raw)
		calibrate.SeparateData(data, packed)
		for col := int64(0); col < g.Cols; col++ {
			v := data[col]
			delta := v - last
			if (row == 0 && col == 0) || delta > deltaMax || delta < -deltaMax {
				if err := writeAbsolute(bw, v); err != nil {
					return err
				}
			} else if err := writeDelta(bw, delta); err != nil {
				return err
			}
			last = v
		}
	}

	// Graphics stream.
	graphics := make([]byte, g.Cols)
	for row := int64(0); row < g.Rows; row++ {
		raw, err := raster.ReadWindow(work, g, raster.Window{StartRow: row, Rows: 1, Cols: g.Cols}, 0, 0)
		if err != nil {
			return err
		}
		cwbin.DecodeUint16(packed, raw)
		calibrate.SeparateGraphics(graphics, packed)
		for col := int64(0); col < g.Cols; {
			run := 0
			for col < g.Cols-1 && graphics[col] == graphics[col+1] && run < 255 {
				col++
				run++
			}
			if err := bw.WriteByte(graphics[col]); err != nil {
				return fmt.Errorf("onebit: write graphics: %w", err)
			}
			if err := bw.WriteByte(byte(run)); err != nil {
				return fmt.Errorf("onebit: write graphics: %w", err)
			}
			col++
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("onebit: flush: %w", err)
	}
	return nil
}

func writeAbsolute(bw *bufio.Writer, v int16) error {
	a := v
	if a < 0 {
		a = -a
	}
	b1 := byte(uint16(a)>>8) | flagAbsolute
	if v < 0 {
		b1 |= flagAbsNeg
	}
	b2 := byte(uint16(a) & 0xFF)
	if err := bw.WriteByte(b1); err != nil {
		return fmt.Errorf("onebit: write sample: %w", err)
	}
	if err := bw.WriteByte(b2); err != nil {
		return fmt.Errorf("onebit: write sample: %w", err)
	}
	return nil
}

func writeDelta(bw *bufio.Writer, delta int16) error {
	a := delta
	if a < 0 {
		a = -a
	}
	b := byte(a) & 0x3F
	if delta < 0 {
		b |= flagDeltaNeg
	}
	if err := bw.WriteByte(b); err != nil {
		return fmt.Errorf("onebit: write delta: %w", err)
	}
	return nil
}

// absolute recovers an absolute sample from its two stream bytes. The
// sign bit participates in the magnitude, matching existing encoders.
func absolute(b1, b2 byte) int16 {
	v := int16(b1&0x0F)<<8 + int16(b2)
	if b1&flagAbsNeg != 0 {
		v = -v
	}
	return v
}

func applyDelta(last int16, b byte) int16 {
	d := int16(b & 0x3F)
	if b&flagDeltaNeg != 0 {
		d = -d
	}
	return last + d
}

// Decompress expands the compressed stream in src into the working
// plane in work: a cols*pixelSize header row followed by fully combined
// channel+graphics samples.
func Decompress(src io.ReaderAt, work File, g raster.Grid) error {
	headLen := g.HeadLen()

	head := make([]byte, headLen)
	n := headLen
	if n > HeadLen {
		n = HeadLen
	}
	if _, err := src.ReadAt(head[:n], 0); err != nil {
		return fmt.Errorf("onebit: read header: %w", err)
	}
	if _, err := work.WriteAt(head, 0); err != nil {
		return fmt.Errorf("onebit: write header: %w", err)
	}

	br := bufio.NewReader(io.NewSectionReader(src, HeadLen, 1<<62))

	// Channel stream.
	data := make([]int16, g.Cols)
	packed := make([]uint16, g.Cols)
	raw := make([]byte, g.Cols*g.PixelSize)
	var last int16
	for row := int64(0); row < g.Rows; row++ {
		for col := int64(0); col < g.Cols; col++ {
			b, err := br.ReadByte()
			if err != nil {
				return fmt.Errorf("onebit: read sample: %w", err)
			}
			if b&flagAbsolute != 0 {
				b2, err := br.ReadByte()
				if err != nil {
					return fmt.Errorf("onebit: read sample: %w", err)
				}
				last = absolute(b, b2)
			} else {
				if row == 0 && col == 0 {
					return ErrFirstByte
				}
				last = applyDelta(last, b)
			}
			data[col] = last
		}
		calibrate.Combine(packed, data, nil)
		cwbin.EncodeUint16(raw, packed)
		if err := raster.WriteWindow(work, g, raster.Window{StartRow: row, Rows: 1, Cols: g.Cols}, raw); err != nil {
			return err
		}
	}

	// Graphics stream. A run may spill into the next row; the spilled
	// pixels repeat the previous row's final value.
	graphics := make([]byte, g.Cols)
	var spill, run, k int64
	var lastG byte
	for row := int64(0); row < g.Rows; row++ {
		j := int64(0)
		for ; j < spill && j < g.Cols; j++ {
			graphics[j] = lastG
		}
		for j < g.Cols {
			val, err := br.ReadByte()
			if err != nil {
				return fmt.Errorf("onebit: read graphics: %w", err)
			}
			count, err := br.ReadByte()
			if err != nil {
				return fmt.Errorf("onebit: read graphics: %w", err)
			}
			run = int64(count)
			for k = 0; k <= run && j < g.Cols; k++ {
				graphics[j] = val
				j++
			}
		}
		lastG = graphics[g.Cols-1]
		spill = run - k + 1

		rw, err := raster.ReadWindow(work, g, raster.Window{StartRow: row, Rows: 1, Cols: g.Cols}, 0, 0)
		if err != nil {
			return err
		}
		cwbin.DecodeUint16(packed, rw)
		calibrate.SeparateData(data, packed)
		calibrate.Combine(packed, data, graphics)
		cwbin.EncodeUint16(raw, packed)
		if err := raster.WriteWindow(work, g, raster.Window{StartRow: row, Rows: 1, Cols: g.Cols}, raw); err != nil {
			return err
		}
	}
	return nil
}
