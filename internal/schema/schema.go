// Package schema holds the fixed CWF header schema: the attribute table
// with byte offsets, enumerated code tables, access modes and scale
// factors, plus the two grid dimensions. The integer codes and offsets
// are part of the wire format and must not change.
package schema

// Type identifies the external storage type of an attribute or variable.
type Type int16

const (
	Byte  Type = iota // unsigned 8-bit pixel data
	Char              // enumerated code rendered as text
	Short             // plain 16-bit integer
	Float             // 16-bit integer scaled to a float
)

// CodePair maps an enumerated attribute value name to its wire code.
type CodePair struct {
	Name string
	Code int16
}

// Attribute describes one entry of the fixed header attribute table.
type Attribute struct {
	Name     string
	Offset   int64      // byte offset of the 2-byte code within the header
	Codes    []CodePair // nil for plain numeric attributes
	ReadOnly bool
	Scale    int16 // physical-to-stored scale factor, 0 for none
	Type     Type
}

// Dimension describes one of the two grid dimensions.
type Dimension struct {
	Name   string
	Offset int64
}

// Grid dimension identifiers. These double as indices into Dimensions.
const (
	DimRows    = 0
	DimColumns = 1
	NumDims    = 2
)

// Dimensions is the fixed dimension table.
var Dimensions = [NumDims]Dimension{
	{"rows", 34},
	{"columns", 36},
}

// Fixed file layout constants.
const (
	MagicByte         = 0xD5
	MinHeaderLen      = 136
	CompressedHeadLen = 1024
)

// Scale factors applied when converting float attributes to stored codes.
const (
	LatLonScale     = 128
	ResolutionScale = 100
)

// AttrID returns the index of the named attribute in Attributes.
func AttrID(name string) (int, bool) {
	for i := range Attributes {
		if Attributes[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// DimID returns the index of the named dimension in Dimensions.
func DimID(name string) (int, bool) {
	for i := range Dimensions {
		if Dimensions[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// CodeFor resolves an enumerated value name to its wire code.
func (a *Attribute) CodeFor(name string) (int16, bool) {
	for _, c := range a.Codes {
		if c.Name == name {
			return c.Code, true
		}
	}
	return 0, false
}

// NameFor resolves a wire code to its enumerated value name.
func (a *Attribute) NameFor(code int16) (string, bool) {
	for _, c := range a.Codes {
		if c.Code == code {
			return c.Name, true
		}
	}
	return "", false
}
