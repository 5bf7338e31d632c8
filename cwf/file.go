package cwf

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	cwbin "github.com/coastwatch-go/cwf/internal/binary"
	"github.com/coastwatch-go/cwf/internal/log"
	"github.com/coastwatch-go/cwf/internal/onebit"
	"github.com/coastwatch-go/cwf/internal/raster"
	"github.com/coastwatch-go/cwf/internal/schema"
)

// CreateMode selects the behavior of Create when the file exists.
type CreateMode int

const (
	// Clobber truncates an existing file.
	Clobber CreateMode = iota
	// NoClobber refuses to overwrite an existing file.
	NoClobber
)

// AccessMode selects the behavior of Open.
type AccessMode int

const (
	ReadOnly AccessMode = iota
	ReadWrite
)

// File is an open dataset. A new dataset starts in define mode, where
// dimensions and the data variable are declared; EndDef (or the first
// Close) lays out the pixel plane. Files are not safe for concurrent
// use.
type File struct {
	reg  *Registry
	path string

	// f is the file all I/O goes through. When a compressed dataset is
	// expanded, f becomes the working copy and workPath records it.
	f        *os.File
	workPath string

	writable   bool
	defineMode bool

	class     int16 // data_id code, -1 until the data variable is defined
	graphics  bool
	dims      [schema.NumDims]int16 // -1 until defined
	pixelSize int16                 // bytes per sample, -1 until known
}

// Create makes a new dataset at path and leaves it in define mode.
// A failed create removes the partial file.
func (r *Registry) Create(path string, mode CreateMode) (*File, error) {
	switch mode {
	case Clobber, NoClobber:
	default:
		return nil, codeErr(ErrCreateMode)
	}
	if err := r.acquire(); err != nil {
		return nil, err
	}
	if mode == NoClobber {
		if _, err := os.Stat(path); err == nil {
			r.release()
			return nil, codeErr(ErrCreateExists)
		}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		r.release()
		return nil, wrapErr(ErrCreate, err)
	}

	header := make([]byte, schema.MinHeaderLen)
	header[0] = schema.MagicByte
	if _, err := f.WriteAt(header, 0); err != nil {
		f.Close()
		os.Remove(path)
		r.release()
		return nil, wrapErr(ErrCreateHeader, err)
	}
	log.Debug("dataset created", zap.String("path", path))

	return &File{
		reg:        r,
		path:       path,
		f:          f,
		writable:   true,
		defineMode: true,
		class:      -1,
		dims:       [schema.NumDims]int16{-1, -1},
		pixelSize:  -1,
	}, nil
}

// Open opens an existing dataset.
func (r *Registry) Open(path string, mode AccessMode) (*File, error) {
	switch mode {
	case ReadOnly, ReadWrite:
	default:
		return nil, codeErr(ErrAccessMode)
	}
	if err := r.acquire(); err != nil {
		return nil, err
	}

	flag := os.O_RDONLY
	if mode == ReadWrite {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		r.release()
		return nil, wrapErr(ErrAccess, err)
	}

	file, err := newOpenFile(r, path, f, mode == ReadWrite)
	if err != nil {
		f.Close()
		r.release()
		return nil, err
	}
	log.Debug("dataset opened",
		zap.String("path", path), zap.Int16("data_id", file.class))
	return file, nil
}

func newOpenFile(r *Registry, path string, f *os.File, writable bool) (*File, error) {
	var magic [1]byte
	if _, err := f.ReadAt(magic[:], 0); err != nil {
		return nil, wrapErr(ErrMagicRead, err)
	}
	if magic[0] != schema.MagicByte {
		return nil, codeErr(ErrMagic)
	}

	br := cwbin.NewReader(f)
	file := &File{reg: r, path: path, f: f, writable: writable, pixelSize: -1}

	var err error
	if file.class, err = br.Int16At(schema.OffDataID); err != nil {
		return nil, wrapErr(ErrReadAtt, err)
	}
	for i := range file.dims {
		if file.dims[i], err = br.Int16At(schema.Dimensions[i].Offset); err != nil {
			return nil, wrapErr(ErrReadAtt, err)
		}
	}

	switch file.class {
	case schema.DataVisible, schema.DataInfrared:
		if file.pixelSize, err = br.Int16At(schema.OffChannelPixelSize); err != nil {
			return nil, wrapErr(ErrReadAtt, err)
		}
		if file.pixelSize != 2 {
			return nil, codeErr(ErrUnsupPixelSize)
		}
		compression, err := br.Int16At(schema.OffCompressionType)
		if err != nil {
			return nil, wrapErr(ErrReadAtt, err)
		}
		file.graphics = compression != schema.CompressionFlat
	case schema.DataAncillary:
		if file.pixelSize, err = br.Int16At(schema.OffAncillaryPixelSize); err != nil {
			return nil, wrapErr(ErrReadAtt, err)
		}
		if file.pixelSize != 2 {
			return nil, codeErr(ErrUnsupPixelSize)
		}
	case schema.DataCloud:
		file.pixelSize = 1
	default:
		return nil, codeErr(ErrUnsupDataID)
	}
	return file, nil
}

func (f *File) grid() raster.Grid {
	return raster.Grid{
		Rows:      int64(f.dims[schema.DimRows]),
		Cols:      int64(f.dims[schema.DimColumns]),
		PixelSize: int64(f.pixelSize),
	}
}

func (f *File) readCode(offset int64) (int16, error) {
	v, err := cwbin.NewReader(f.f).Int16At(offset)
	if err != nil {
		return 0, wrapErr(ErrReadAtt, err)
	}
	return v, nil
}

func (f *File) writeCode(code int16, offset int64) error {
	if err := cwbin.NewWriter(f.f).PutInt16At(code, offset); err != nil {
		return wrapErr(ErrWriteAtt, err)
	}
	return nil
}

func (f *File) isImagery() bool {
	return f.class == schema.DataVisible || f.class == schema.DataInfrared
}

// EndDef leaves define mode: the header row is padded out and the pixel
// plane zero-filled. For a 1B-compressed imagery dataset the layout is
// built in a working copy that Close compresses back.
func (f *File) EndDef() error {
	if f.f == nil {
		return codeErr(ErrDatasetID)
	}
	if !f.defineMode {
		return codeErr(ErrNotDefineMode)
	}
	if f.dims[schema.DimRows] == -1 || f.dims[schema.DimColumns] == -1 {
		return codeErr(ErrDimUndefined)
	}
	if f.class == -1 {
		return codeErr(ErrVarUndefined)
	}

	if f.isImagery() && f.pixelSize == 2 {
		compression, err := f.readCode(schema.OffCompressionType)
		if err != nil {
			return err
		}
		if compression == schema.Compression1B {
			if err := f.moveToWorkingCopy(); err != nil {
				return err
			}
		}
	}

	g := f.grid()
	info, err := f.f.Stat()
	if err != nil {
		return wrapErr(ErrWriteData, err)
	}
	w := cwbin.NewWriter(f.f)
	offset := info.Size()
	if offset < g.HeadLen() {
		if err := w.Zero(offset, g.HeadLen()-offset); err != nil {
			return wrapErr(ErrWriteData, err)
		}
		offset = g.HeadLen()
	}
	if err := w.Zero(offset, g.Rows*g.Cols*g.PixelSize); err != nil {
		return wrapErr(ErrWriteData, err)
	}

	f.defineMode = false
	log.Debug("define mode ended", zap.String("path", f.path))
	return nil
}

// moveToWorkingCopy copies the dataset into a scratch file and makes it
// the active file.
func (f *File) moveToWorkingCopy() error {
	workPath := f.reg.tempPath()
	work, err := os.OpenFile(workPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return wrapErr(ErrUncompressedFile, err)
	}
	if _, err := f.f.Seek(0, io.SeekStart); err != nil {
		work.Close()
		os.Remove(workPath)
		return wrapErr(ErrUncompressedFile, err)
	}
	if _, err := io.Copy(work, f.f); err != nil {
		work.Close()
		os.Remove(workPath)
		return wrapErr(ErrUncompressedFile, err)
	}
	f.f.Close()
	f.f = work
	f.workPath = workPath
	return nil
}

// ensureUncompressed expands a 1B-compressed imagery dataset into a
// working copy on first pixel access. Flat and uncompressed layouts
// need no work.
func (f *File) ensureUncompressed() error {
	if f.workPath != "" || !f.isImagery() || f.pixelSize != 2 {
		return nil
	}
	compression, err := f.readCode(schema.OffCompressionType)
	if err != nil {
		return err
	}
	switch compression {
	case schema.CompressionNone, schema.CompressionFlat:
		return nil
	case schema.Compression1B:
	default:
		return codeErr(ErrUnsupCompression)
	}

	workPath := f.reg.tempPath()
	work, err := os.OpenFile(workPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return wrapErr(ErrUncompressedFile, err)
	}
	if err := onebit.Decompress(f.f, work, f.grid()); err != nil {
		work.Close()
		os.Remove(workPath)
		if errors.Is(err, onebit.ErrFirstByte) {
			return wrapErr(ErrCompressedFirstByte, err)
		}
		return wrapErr(ErrReadData, err)
	}
	f.f.Close()
	f.f = work
	f.workPath = workPath
	log.Debug("dataset decompressed", zap.String("path", f.path))
	return nil
}

// compress writes the working copy back to the dataset path as a 1B
// stream.
func (f *File) compress() error {
	dst, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return wrapErr(ErrCompressedFile, err)
	}
	if err := onebit.Compress(f.f, dst, f.grid()); err != nil {
		dst.Close()
		return wrapErr(ErrWriteData, err)
	}
	if err := dst.Close(); err != nil {
		return wrapErr(ErrCompressedFile, err)
	}
	log.Debug("dataset compressed", zap.String("path", f.path))
	return nil
}

// Close finalizes define mode if needed, recompresses a writable
// working copy, and releases the dataset's registry slot. Close is not
// idempotent: a second call reports an invalid dataset.
func (f *File) Close() error {
	if f.f == nil {
		return codeErr(ErrDatasetID)
	}
	if f.defineMode {
		if err := f.EndDef(); err != nil {
			return wrapErr(ErrEndDefFailed, err)
		}
	}

	if f.workPath != "" && f.writable {
		compression, err := f.readCode(schema.OffCompressionType)
		if err != nil {
			return err
		}
		if compression == schema.Compression1B {
			if err := f.compress(); err != nil {
				return err
			}
		}
	}

	f.f.Close()
	if f.workPath != "" {
		os.Remove(f.workPath)
	}
	f.f = nil
	f.reg.release()
	return nil
}
