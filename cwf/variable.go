package cwf

import (
	"errors"

	cwbin "github.com/coastwatch-go/cwf/internal/binary"
	"github.com/coastwatch-go/cwf/internal/calibrate"
	"github.com/coastwatch-go/cwf/internal/raster"
	"github.com/coastwatch-go/cwf/internal/schema"
)

// VarID identifies a variable: the single data variable, or the
// graphics overlay sharing its samples.
type VarID int

const (
	DataVar     VarID = 0
	GraphicsVar VarID = 1
)

// GraphicsName is the reserved variable name of the graphics overlay.
const GraphicsName = "graphics"

// BadValue fills pixels that carry no valid data, either because the
// stored count is out of range or because a navigational shift maps
// the pixel off the grid.
const BadValue = calibrate.BadValue

// Window is a rectangular region of the grid in row/column space.
type Window struct {
	StartRow, StartCol int64
	Rows, Cols         int64
}

func (w Window) toRaster() raster.Window {
	return raster.Window{StartRow: w.StartRow, StartCol: w.StartCol, Rows: w.Rows, Cols: w.Cols}
}

// DefVar defines the data variable by channel name, deriving the data
// class and its header defaults, or the graphics overlay (byte typed,
// only after a visible or infrared data variable).
func (f *File) DefVar(name string, xtype Type, dimIDs []DimID) (VarID, error) {
	if f.f == nil {
		return 0, codeErr(ErrDatasetID)
	}
	if !f.defineMode {
		return 0, codeErr(ErrNotDefineMode)
	}
	if len(dimIDs) != schema.NumDims {
		return 0, codeErr(ErrDimCount)
	}
	if dimIDs[0] != DimRows || dimIDs[1] != DimColumns {
		return 0, codeErr(ErrDimID)
	}
	if f.dims[schema.DimRows] == -1 || f.dims[schema.DimColumns] == -1 {
		return 0, codeErr(ErrDimID)
	}

	if name == GraphicsName {
		if !f.isImagery() {
			return 0, codeErr(ErrVar)
		}
		if xtype != Byte {
			return 0, codeErr(ErrDataType)
		}
		f.graphics = true
		return GraphicsVar, nil
	}

	if f.class != -1 {
		return 0, codeErr(ErrVarDefined)
	}
	channelAtt := &schema.Attributes[schema.AttChannelNumber]
	code, ok := channelAtt.CodeFor(name)
	if !ok {
		return 0, codeErr(ErrVar)
	}
	class, fileType, ok := schema.ClassForChannel(code)
	if !ok {
		return 0, codeErr(ErrInternal)
	}
	if xtype != Type(fileType) {
		return 0, codeErr(ErrDataType)
	}

	if err := f.writeCode(class, schema.OffDataID); err != nil {
		return 0, err
	}
	if err := f.writeCode(code, schema.OffChannelNumber); err != nil {
		return 0, err
	}
	f.class = class

	switch class {
	case schema.DataVisible, schema.DataInfrared:
		for _, p := range []struct {
			code   int16
			offset int64
		}{
			{2, schema.OffChannelPixelSize},
			{schema.CalibrationAlbedoTemperature, schema.OffCalibrationType},
			{1, schema.OffChannelsProduced},
			{schema.Compression1B, schema.OffCompressionType},
		} {
			if err := f.writeCode(p.code, p.offset); err != nil {
				return 0, err
			}
		}
		f.pixelSize = 2
	case schema.DataAncillary:
		if err := f.writeCode(2, schema.OffAncillaryPixelSize); err != nil {
			return 0, err
		}
		if err := f.writeCode(1, schema.OffAncillariesProduced); err != nil {
			return 0, err
		}
		f.pixelSize = 2
	case schema.DataCloud:
		f.pixelSize = 1
	default:
		return 0, codeErr(ErrInternal)
	}
	return DataVar, nil
}

// InqVarID resolves a variable name. The data variable's name must
// match the channel recorded in the header.
func (f *File) InqVarID(name string) (VarID, error) {
	if f.f == nil {
		return 0, codeErr(ErrDatasetID)
	}
	if name == GraphicsName {
		if !f.graphics {
			return 0, codeErr(ErrVar)
		}
		return GraphicsVar, nil
	}
	if f.class == -1 {
		return 0, codeErr(ErrVar)
	}
	fileCode, err := f.readCode(schema.OffChannelNumber)
	if err != nil {
		return 0, err
	}
	code, ok := schema.Attributes[schema.AttChannelNumber].CodeFor(name)
	if !ok || code != fileCode {
		return 0, codeErr(ErrVar)
	}
	return DataVar, nil
}

// InqVar returns a variable's name, external type, dimension IDs and
// attribute count.
func (f *File) InqVar(v VarID) (name string, xtype Type, dimIDs []DimID, natts int, err error) {
	if f.f == nil {
		return "", 0, nil, 0, codeErr(ErrDatasetID)
	}
	dimIDs = []DimID{DimRows, DimColumns}

	switch v {
	case GraphicsVar:
		if !f.graphics {
			return "", 0, nil, 0, codeErr(ErrVarID)
		}
		return GraphicsName, Byte, dimIDs, 0, nil
	case DataVar:
		if f.class == -1 {
			return "", 0, nil, 0, codeErr(ErrVarID)
		}
		channel, cerr := f.readCode(schema.OffChannelNumber)
		if cerr != nil {
			return "", 0, nil, 0, cerr
		}
		name, ok := schema.Attributes[schema.AttChannelNumber].NameFor(channel)
		if !ok {
			return "", 0, nil, 0, codeErr(ErrUnsupChannel)
		}
		switch f.class {
		case schema.DataVisible, schema.DataInfrared, schema.DataAncillary:
			xtype = Float
		case schema.DataCloud:
			xtype = Byte
		default:
			return "", 0, nil, 0, codeErr(ErrInternal)
		}
		return name, xtype, dimIDs, schema.NumAttributes, nil
	default:
		return "", 0, nil, 0, codeErr(ErrVarID)
	}
}

// accessWindow runs the checks shared by all pixel I/O: not in define
// mode, window inside the grid, compressed data expanded.
func (f *File) accessWindow(w Window) error {
	if f.f == nil {
		return codeErr(ErrDatasetID)
	}
	if f.defineMode {
		return codeErr(ErrDefineMode)
	}
	if !w.toRaster().In(f.grid()) {
		return codeErr(ErrVarIndex)
	}
	return f.ensureUncompressed()
}

func (f *File) readShifts() (rowShift, colShift int64, err error) {
	r, err := f.readCode(schema.OffVerticalShift)
	if err != nil {
		return 0, 0, err
	}
	c, err := f.readCode(schema.OffHorizontalShift)
	if err != nil {
		return 0, 0, err
	}
	return int64(r), int64(c), nil
}

// readPacked reads a window of 2-byte samples.
func (f *File) readPacked(w Window, rowShift, colShift int64) ([]uint16, error) {
	raw, err := raster.ReadWindow(f.f, f.grid(), w.toRaster(), rowShift, colShift)
	if err != nil {
		return nil, wrapErr(ErrReadData, err)
	}
	packed := make([]uint16, w.Rows*w.Cols)
	cwbin.DecodeUint16(packed, raw)
	return packed, nil
}

func (f *File) writePacked(w Window, packed []uint16) error {
	raw := make([]byte, len(packed)*2)
	cwbin.EncodeUint16(raw, packed)
	if err := raster.WriteWindow(f.f, f.grid(), w.toRaster(), raw); err != nil {
		return wrapErr(ErrWriteData, err)
	}
	return nil
}

func mapTransformErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, calibrate.ErrDataClass):
		return wrapErr(ErrUnsupDataID, err)
	case errors.Is(err, calibrate.ErrCalibration):
		return wrapErr(ErrUnsupCalibration, err)
	case errors.Is(err, calibrate.ErrChannel):
		return wrapErr(ErrUnsupChannel, err)
	default:
		return wrapErr(ErrInternal, err)
	}
}

// GetVarFloat reads a window of calibrated values. Visible and infrared
// channels decode through the calibration tables, ancillary channels
// through their own transforms, and cloud masks and graphics overlays
// are widened from bytes.
func (f *File) GetVarFloat(v VarID, w Window) ([]float32, error) {
	if err := f.accessWindow(w); err != nil {
		return nil, err
	}
	n := w.Rows * w.Cols

	switch v {
	case DataVar:
		rowShift, colShift, err := f.readShifts()
		if err != nil {
			return nil, err
		}
		dst := make([]float32, n)
		switch f.class {
		case schema.DataVisible, schema.DataInfrared:
			calibration, err := f.readCode(schema.OffCalibrationType)
			if err != nil {
				return nil, err
			}
			compression, err := f.readCode(schema.OffCompressionType)
			if err != nil {
				return nil, err
			}
			channel, err := f.readCode(schema.OffChannelNumber)
			if err != nil {
				return nil, err
			}
			packed, err := f.readPacked(w, rowShift, colShift)
			if err != nil {
				return nil, err
			}
			if err := calibrate.DecodeChannel(dst, packed, calibration, f.class, compression, channel); err != nil {
				return nil, mapTransformErr(err)
			}
		case schema.DataAncillary:
			channel, err := f.readCode(schema.OffChannelNumber)
			if err != nil {
				return nil, err
			}
			compression, err := f.readCode(schema.OffCompressionType)
			if err != nil {
				return nil, err
			}
			packed, err := f.readPacked(w, rowShift, colShift)
			if err != nil {
				return nil, err
			}
			if err := calibrate.DecodeAncillary(dst, packed, channel, compression); err != nil {
				return nil, mapTransformErr(err)
			}
		case schema.DataCloud:
			raw, err := raster.ReadWindow(f.f, f.grid(), w.toRaster(), rowShift, colShift)
			if err != nil {
				return nil, wrapErr(ErrReadData, err)
			}
			for i, b := range raw {
				dst[i] = float32(b)
			}
		default:
			return nil, codeErr(ErrUnsupDataID)
		}
		return dst, nil

	case GraphicsVar:
		overlay, err := f.getGraphics(w)
		if err != nil {
			return nil, err
		}
		dst := make([]float32, n)
		for i, b := range overlay {
			dst[i] = float32(b)
		}
		return dst, nil

	default:
		return nil, codeErr(ErrVarID)
	}
}

// GetVarByte reads a window of byte values: the cloud mask or the
// graphics overlay. Calibrated channels must be read as floats.
func (f *File) GetVarByte(v VarID, w Window) ([]byte, error) {
	if err := f.accessWindow(w); err != nil {
		return nil, err
	}

	switch v {
	case DataVar:
		if f.class != schema.DataCloud {
			return nil, codeErr(ErrVarValue)
		}
		rowShift, colShift, err := f.readShifts()
		if err != nil {
			return nil, err
		}
		raw, err := raster.ReadWindow(f.f, f.grid(), w.toRaster(), rowShift, colShift)
		if err != nil {
			return nil, wrapErr(ErrReadData, err)
		}
		return raw, nil
	case GraphicsVar:
		return f.getGraphics(w)
	default:
		return nil, codeErr(ErrVarID)
	}
}

// getGraphics reads the overlay nibble plane. No navigational shift
// applies to graphics.
func (f *File) getGraphics(w Window) ([]byte, error) {
	if !f.graphics {
		return nil, codeErr(ErrVarID)
	}
	if !f.isImagery() {
		return nil, codeErr(ErrVarID)
	}
	packed, err := f.readPacked(w, 0, 0)
	if err != nil {
		return nil, err
	}
	overlay := make([]byte, len(packed))
	calibrate.SeparateGraphics(overlay, packed)
	return overlay, nil
}

// putCheckWindow runs the write-path checks: shared access checks plus
// the shift restriction.
func (f *File) putCheckWindow(w Window, n int) error {
	if err := f.accessWindow(w); err != nil {
		return err
	}
	if int64(n) != w.Rows*w.Cols {
		return codeErr(ErrVarValue)
	}
	rowShift, colShift, err := f.readShifts()
	if err != nil {
		return err
	}
	if rowShift != 0 || colShift != 0 {
		return codeErr(ErrWriteShift)
	}
	return nil
}

// PutVarFloat writes a window of calibrated values through the encode
// transforms. The existing graphics overlay is preserved.
func (f *File) PutVarFloat(v VarID, w Window, values []float32) error {
	if err := f.putCheckWindow(w, len(values)); err != nil {
		return err
	}
	if v == GraphicsVar {
		// The overlay is byte typed.
		return codeErr(ErrVarValue)
	}
	if v != DataVar {
		return codeErr(ErrVarID)
	}

	switch f.class {
	case schema.DataVisible, schema.DataInfrared:
		calibration, err := f.readCode(schema.OffCalibrationType)
		if err != nil {
			return err
		}
		packed, err := f.readPacked(w, 0, 0)
		if err != nil {
			return err
		}
		overlay := make([]byte, len(packed))
		calibrate.SeparateGraphics(overlay, packed)
		if err := calibrate.EncodeChannel(packed, values, overlay, calibration, f.class); err != nil {
			return mapTransformErr(err)
		}
		return f.writePacked(w, packed)
	case schema.DataAncillary:
		channel, err := f.readCode(schema.OffChannelNumber)
		if err != nil {
			return err
		}
		packed := make([]uint16, len(values))
		if err := calibrate.EncodeAncillary(packed, values, channel); err != nil {
			return mapTransformErr(err)
		}
		return f.writePacked(w, packed)
	case schema.DataCloud:
		return codeErr(ErrVarValue)
	default:
		return codeErr(ErrUnsupDataID)
	}
}

// PutVarByte writes a window of byte values: the cloud mask, the
// graphics overlay, or byte-valued samples widened into a calibrated
// channel.
func (f *File) PutVarByte(v VarID, w Window, values []byte) error {
	if err := f.putCheckWindow(w, len(values)); err != nil {
		return err
	}

	switch v {
	case DataVar:
		if f.class == schema.DataCloud {
			if err := raster.WriteWindow(f.f, f.grid(), w.toRaster(), values); err != nil {
				return wrapErr(ErrWriteData, err)
			}
			return nil
		}
		widened := make([]float32, len(values))
		for i, b := range values {
			widened[i] = float32(b)
		}
		return f.PutVarFloat(v, w, widened)
	case GraphicsVar:
		if !f.graphics || !f.isImagery() {
			return codeErr(ErrVarID)
		}
		packed, err := f.readPacked(w, 0, 0)
		if err != nil {
			return err
		}
		data := make([]int16, len(packed))
		calibrate.SeparateData(data, packed)
		calibrate.Combine(packed, data, values)
		return f.writePacked(w, packed)
	default:
		return codeErr(ErrVarID)
	}
}
