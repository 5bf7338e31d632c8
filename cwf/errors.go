package cwf

import "fmt"

// Code identifies a library error condition. Codes are stable and match
// the numbering used by every historical implementation of the format.
type Code int

const (
	ErrNone               Code = 0
	ErrCreate             Code = 1
	ErrCreateMode         Code = 2
	ErrAccess             Code = 3
	ErrAccessMode         Code = 4
	ErrNotDefineMode      Code = 5
	ErrDatasetID          Code = 6
	ErrEndDefFailed       Code = 7
	ErrDimDefined         Code = 8
	ErrDimSize            Code = 9
	ErrDim                Code = 10
	ErrVarDefined         Code = 11
	ErrDataType           Code = 12
	ErrDimCount           Code = 13
	ErrDimID              Code = 14
	ErrVar                Code = 15
	ErrVarID              Code = 16
	ErrVarIndex           Code = 17
	ErrVarValue           Code = 18
	ErrDefineMode         Code = 19
	ErrAtt                Code = 20
	ErrAttValue           Code = 21
	ErrNoMem              Code = 22
	ErrMaxFiles           Code = 23
	ErrCreateExists       Code = 24
	ErrCreateHeader       Code = 25
	ErrMagic              Code = 26
	ErrMagicRead          Code = 27
	ErrUnknown            Code = 28
	ErrAttID              Code = 29
	ErrReadDim            Code = 30
	ErrReadAtt            Code = 31
	ErrReadData           Code = 32
	ErrWriteDim           Code = 33
	ErrWriteAtt           Code = 34
	ErrWriteData          Code = 35
	ErrDimUndefined       Code = 36
	ErrVarUndefined       Code = 37
	ErrInternal           Code = 38
	ErrUnsupDataID        Code = 39
	ErrUnsupChannel       Code = 40
	ErrDatasetReadOnly    Code = 41
	ErrAttType            Code = 42
	ErrUnsupPixelSize     Code = 43
	ErrUnsupCalibration   Code = 44
	ErrCompressedFile     Code = 45
	ErrUncompressedFile   Code = 46
	ErrUnsupCompression   Code = 47
	ErrCompressedFirstByte Code = 48
	ErrAttLen             Code = 49
	ErrWriteShift         Code = 50
	ErrAttReadOnly        Code = 51
)

var errorTable = [...]string{
	"no error",
	"cannot create dataset",
	"invalid creation mode",
	"cannot access dataset",
	"invalid access mode",
	"dataset not in define mode",
	"invalid dataset id",
	"end of define mode failed",
	"dimension already defined",
	"dimension must be greater than 0",
	"invalid dimension",
	"variable already defined (only 1 allowed)",
	"invalid data type",
	"invalid number of dimensions",
	"invalid dimension id",
	"invalid variable",
	"invalid variable id",
	"variable index is out of range",
	"variable value is out of range",
	"dataset in define mode",
	"invalid attribute",
	"invalid attribute value",
	"failed to allocate memory",
	"maximum open file limit reached",
	"cannot create, dataset exists",
	"header creation failed",
	"wrong magic number, unrecognized format",
	"cannot read magic number",
	"unknown error",
	"invalid attribute id",
	"error reading dimension",
	"error reading attribute",
	"error reading data",
	"error writing dimension",
	"error writing attribute",
	"error writing data",
	"dimension must be defined",
	"data variable must be defined",
	"internal consistency error",
	"unsupported data id in header",
	"unsupported channel number in header",
	"dataset opened read-only",
	"attribute type mismatch",
	"unsupported pixel size in header",
	"unsupported calibration type in header",
	"error manipulating uncompressed file",
	"error manipulating compressed file",
	"unsupported compression type in header",
	"error in compressed file, byte 0",
	"invalid attribute length",
	"cannot write data to file with non-zero navigational shifts",
	"attribute is read-only",
}

// Strerror returns the message for a code. Unknown codes get the
// "unknown error" message.
func Strerror(c Code) string {
	if c < 0 || int(c) >= len(errorTable) {
		return errorTable[ErrUnknown]
	}
	return errorTable[c]
}

// Error is the error type returned by all dataset operations. It wraps
// an optional cause; errors.Is matches on the code.
type Error struct {
	Code  Code
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("cwf: %s: %v", Strerror(e.Code), e.cause)
	}
	return "cwf: " + Strerror(e.Code)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error carrying the same code, so sentinel comparisons
// like errors.Is(err, &Error{Code: ErrMagic}) and comparisons against
// codeErr work regardless of the wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// codeErr builds a bare coded error.
func codeErr(c Code) *Error { return &Error{Code: c} }

// wrapErr attaches a cause to a coded error.
func wrapErr(c Code, cause error) *Error { return &Error{Code: c, cause: cause} }
