package cwf

import (
	"math"

	"github.com/coastwatch-go/cwf/internal/schema"
)

// Type identifies the external data type of a variable or attribute.
type Type int16

const (
	Byte  Type = Type(schema.Byte)
	Char  Type = Type(schema.Char)
	Short Type = Type(schema.Short)
	Float Type = Type(schema.Float)
)

// attLookup runs the shared attribute-access checks and resolves the
// attribute index. Attributes belong to the data variable only.
func (f *File) attLookup(v VarID, name string) (*schema.Attribute, error) {
	if f.f == nil {
		return nil, codeErr(ErrDatasetID)
	}
	if v == GraphicsVar {
		return nil, codeErr(ErrAtt)
	}
	if v != DataVar {
		return nil, codeErr(ErrVarID)
	}
	if f.class == -1 {
		return nil, codeErr(ErrVarID)
	}
	id, ok := schema.AttrID(name)
	if !ok {
		return nil, codeErr(ErrAtt)
	}
	return &schema.Attributes[id], nil
}

func (f *File) putCheck(att *schema.Attribute) error {
	if !f.writable {
		return codeErr(ErrDatasetReadOnly)
	}
	if att.ReadOnly {
		return codeErr(ErrAttReadOnly)
	}
	return nil
}

// GetAttText returns the name of an enumerated attribute's current
// code.
func (f *File) GetAttText(v VarID, name string) (string, error) {
	att, err := f.attLookup(v, name)
	if err != nil {
		return "", err
	}
	if att.Type != schema.Char {
		return "", codeErr(ErrAttType)
	}
	code, err := f.readCode(att.Offset)
	if err != nil {
		return "", err
	}
	text, ok := att.NameFor(code)
	if !ok {
		return "", codeErr(ErrAttValue)
	}
	return text, nil
}

// PutAttText stores an enumerated attribute by name.
func (f *File) PutAttText(v VarID, name, value string) error {
	att, err := f.attLookup(v, name)
	if err != nil {
		return err
	}
	if err := f.putCheck(att); err != nil {
		return err
	}
	if att.Type != schema.Char {
		return codeErr(ErrAttType)
	}
	code, ok := att.CodeFor(value)
	if !ok {
		return codeErr(ErrAttValue)
	}
	return f.writeCode(code, att.Offset)
}

// GetAttShort reads an integer attribute.
func (f *File) GetAttShort(v VarID, name string) (int16, error) {
	att, err := f.attLookup(v, name)
	if err != nil {
		return 0, err
	}
	if att.Type != schema.Short {
		return 0, codeErr(ErrAttType)
	}
	return f.readCode(att.Offset)
}

// PutAttShort stores an integer attribute.
func (f *File) PutAttShort(v VarID, name string, value int16) error {
	att, err := f.attLookup(v, name)
	if err != nil {
		return err
	}
	if err := f.putCheck(att); err != nil {
		return err
	}
	if att.Type != schema.Short {
		return codeErr(ErrAttType)
	}
	return f.writeCode(value, att.Offset)
}

// GetAttFloat reads a scaled-float attribute. Integer attributes are
// widened.
func (f *File) GetAttFloat(v VarID, name string) (float32, error) {
	att, err := f.attLookup(v, name)
	if err != nil {
		return 0, err
	}
	code, err := f.readCode(att.Offset)
	if err != nil {
		return 0, err
	}
	switch att.Type {
	case schema.Short:
		return float32(code), nil
	case schema.Float:
		return float32(code) / float32(att.Scale), nil
	default:
		return 0, codeErr(ErrAttType)
	}
}

// PutAttFloat stores a scaled-float attribute, rounding to the nearest
// stored code.
func (f *File) PutAttFloat(v VarID, name string, value float32) error {
	att, err := f.attLookup(v, name)
	if err != nil {
		return err
	}
	if err := f.putCheck(att); err != nil {
		return err
	}
	if att.Type != schema.Float {
		return codeErr(ErrAttType)
	}
	scaled := float64(value) * float64(att.Scale)
	var code int16
	if scaled > 0 {
		code = int16(math.Floor(scaled + 0.5))
	} else {
		code = int16(math.Ceil(scaled - 0.5))
	}
	return f.writeCode(code, att.Offset)
}

// InqAtt returns an attribute's external type and value length. The
// length of an enumerated attribute is the length of its current code
// name.
func (f *File) InqAtt(v VarID, name string) (Type, int, error) {
	att, err := f.attLookup(v, name)
	if err != nil {
		return 0, 0, err
	}
	switch att.Type {
	case schema.Short, schema.Float:
		return Type(att.Type), 1, nil
	case schema.Char:
		code, err := f.readCode(att.Offset)
		if err != nil {
			return 0, 0, err
		}
		text, ok := att.NameFor(code)
		if !ok {
			return 0, 0, codeErr(ErrAttValue)
		}
		return Char, len(text), nil
	default:
		return 0, 0, codeErr(ErrInternal)
	}
}

// InqAttID returns the index of a named attribute.
func (f *File) InqAttID(v VarID, name string) (int, error) {
	if f.f == nil {
		return 0, codeErr(ErrDatasetID)
	}
	if v == GraphicsVar {
		return 0, codeErr(ErrAtt)
	}
	if v != DataVar {
		return 0, codeErr(ErrVarID)
	}
	if f.class == -1 {
		return 0, codeErr(ErrVarID)
	}
	id, ok := schema.AttrID(name)
	if !ok {
		return 0, codeErr(ErrAtt)
	}
	return id, nil
}

// InqAttName returns the name of the attribute at the given index.
func (f *File) InqAttName(v VarID, id int) (string, error) {
	if f.f == nil {
		return "", codeErr(ErrDatasetID)
	}
	if v == GraphicsVar {
		return "", codeErr(ErrAttID)
	}
	if v != DataVar {
		return "", codeErr(ErrVarID)
	}
	if f.class == -1 {
		return "", codeErr(ErrVarID)
	}
	if id < 0 || id >= schema.NumAttributes {
		return "", codeErr(ErrAttID)
	}
	return schema.Attributes[id].Name, nil
}
