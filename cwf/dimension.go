package cwf

import "github.com/coastwatch-go/cwf/internal/schema"

// DimID identifies one of the two grid dimensions.
type DimID int

const (
	DimRows    DimID = schema.DimRows
	DimColumns DimID = schema.DimColumns
)

// DefDim defines a dimension by name ("rows" or "columns"). Each may be
// defined exactly once, in define mode, with a positive length.
func (f *File) DefDim(name string, length int) (DimID, error) {
	if f.f == nil {
		return 0, codeErr(ErrDatasetID)
	}
	if !f.defineMode {
		return 0, codeErr(ErrNotDefineMode)
	}
	id, ok := schema.DimID(name)
	if !ok {
		return 0, codeErr(ErrDim)
	}
	if f.dims[id] != -1 {
		return 0, codeErr(ErrDimDefined)
	}
	if length < 1 || length > 1<<15-1 {
		return 0, codeErr(ErrDimSize)
	}
	if err := f.writeCode(int16(length), schema.Dimensions[id].Offset); err != nil {
		return 0, codeErr(ErrWriteDim)
	}
	f.dims[id] = int16(length)
	return DimID(id), nil
}

// InqDimID returns the ID of a defined dimension.
func (f *File) InqDimID(name string) (DimID, error) {
	if f.f == nil {
		return 0, codeErr(ErrDatasetID)
	}
	id, ok := schema.DimID(name)
	if !ok {
		return 0, codeErr(ErrDim)
	}
	if f.dims[id] == -1 {
		return 0, codeErr(ErrDim)
	}
	return DimID(id), nil
}

// InqDim returns a defined dimension's name and length.
func (f *File) InqDim(id DimID) (string, int, error) {
	if f.f == nil {
		return "", 0, codeErr(ErrDatasetID)
	}
	if id < 0 || int(id) >= schema.NumDims {
		return "", 0, codeErr(ErrDimID)
	}
	if f.dims[id] == -1 {
		return "", 0, codeErr(ErrDimID)
	}
	length, err := f.readCode(schema.Dimensions[id].Offset)
	if err != nil {
		return "", 0, codeErr(ErrReadDim)
	}
	return schema.Dimensions[id].Name, int(length), nil
}
