package cwf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// newDataset creates a dataset with the given channel and a small grid,
// leaving it in define mode.
func newDataset(t *testing.T, channel string, xtype Type, rows, cols int) (*File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), channel+".cwf")
	f, err := Create(path, Clobber)
	if err != nil {
		t.Fatal(err)
	}
	rid, err := f.DefDim("rows", rows)
	if err != nil {
		t.Fatal(err)
	}
	cid, err := f.DefDim("columns", cols)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.DefVar(channel, xtype, []DimID{rid, cid}); err != nil {
		t.Fatal(err)
	}
	return f, path
}

func TestCreateWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.cwf")
	f, err := Create(path, Clobber)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 136 {
		t.Errorf("header length %d, want 136", len(b))
	}
	if b[0] != 0xD5 {
		t.Errorf("magic byte %#x, want 0xd5", b[0])
	}
	for i, v := range b[1:] {
		if v != 0 {
			t.Fatalf("header byte %d not zero", i+1)
		}
	}

	// Close in define mode without dims fails to finalize.
	err = f.Close()
	if !errors.Is(err, codeErr(ErrEndDefFailed)) {
		t.Errorf("close in define mode: got %v, want end-define failure", err)
	}
}

func TestCreateNoClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exists.cwf")
	if err := os.WriteFile(path, []byte{0xD5}, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Create(path, NoClobber)
	if !errors.Is(err, codeErr(ErrCreateExists)) {
		t.Errorf("got %v, want create-exists", err)
	}
}

func TestCreateInvalidMode(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "x.cwf"), CreateMode(9))
	if !errors.Is(err, codeErr(ErrCreateMode)) {
		t.Errorf("got %v, want create-mode error", err)
	}
}

func TestOpenMagicErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.cwf")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(empty, ReadOnly); !errors.Is(err, codeErr(ErrMagicRead)) {
		t.Errorf("empty file: got %v, want magic-read error", err)
	}

	bad := filepath.Join(dir, "bad.cwf")
	if err := os.WriteFile(bad, make([]byte, 136), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(bad, ReadOnly); !errors.Is(err, codeErr(ErrMagic)) {
		t.Errorf("wrong magic: got %v, want magic error", err)
	}

	if _, err := Open(filepath.Join(dir, "missing.cwf"), ReadOnly); !errors.Is(err, codeErr(ErrAccess)) {
		t.Errorf("missing file: got %v, want access error", err)
	}

	if _, err := Open(bad, AccessMode(7)); !errors.Is(err, codeErr(ErrAccessMode)) {
		t.Errorf("bad mode: got %v, want access-mode error", err)
	}
}

func TestRegistryCapacity(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry(WithCapacity(1), WithTempDir(dir))

	f1, err := reg.Create(filepath.Join(dir, "a.cwf"), Clobber)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Create(filepath.Join(dir, "b.cwf"), Clobber); !errors.Is(err, codeErr(ErrMaxFiles)) {
		t.Fatalf("got %v, want max-files error", err)
	}

	// Finish the first dataset so its slot frees up.
	rid, _ := f1.DefDim("rows", 2)
	cid, _ := f1.DefDim("columns", 2)
	if _, err := f1.DefVar("cloud", Byte, []DimID{rid, cid}); err != nil {
		t.Fatal(err)
	}
	if err := f1.Close(); err != nil {
		t.Fatal(err)
	}

	f2, err := reg.Create(filepath.Join(dir, "b.cwf"), Clobber)
	if err != nil {
		t.Fatalf("after close: %v", err)
	}
	rid, _ = f2.DefDim("rows", 2)
	cid, _ = f2.DefDim("columns", 2)
	f2.DefVar("cloud", Byte, []DimID{rid, cid})
	f2.Close()
}

func TestEndDefLayout(t *testing.T) {
	f, path := newDataset(t, "cloud", Byte, 3, 40)
	if err := f.EndDef(); err != nil {
		t.Fatal(err)
	}
	if err := f.EndDef(); !errors.Is(err, codeErr(ErrNotDefineMode)) {
		t.Errorf("second EndDef: got %v, want not-define-mode", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	// One header row of 40 bytes plus a 3x40 byte plane. The 136-byte
	// minimum header exceeds the 40-byte row, so the plane starts at
	// the original end of file.
	if want := int64(136 + 3*40); info.Size() != want {
		t.Errorf("file size %d, want %d", info.Size(), want)
	}
}

func TestEndDefRequiresDimsAndVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.cwf")
	f, err := Create(path, Clobber)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.EndDef(); !errors.Is(err, codeErr(ErrDimUndefined)) {
		t.Errorf("no dims: got %v, want dim-undefined", err)
	}
	rid, _ := f.DefDim("rows", 2)
	cid, _ := f.DefDim("columns", 2)
	if err := f.EndDef(); !errors.Is(err, codeErr(ErrVarUndefined)) {
		t.Errorf("no var: got %v, want var-undefined", err)
	}
	if _, err := f.DefVar("cloud", Byte, []DimID{rid, cid}); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestCompressedLifecycle(t *testing.T) {
	// An infrared dataset defaults to 1B compression: the stored file
	// carries a 1024-byte header and the working copy is invisible to
	// the caller.
	f, path := newDataset(t, "mcsst", Float, 4, 80)
	if err := f.EndDef(); err != nil {
		t.Fatal(err)
	}

	w := Window{Rows: 4, Cols: 80}
	values := make([]float32, 4*80)
	for i := range values {
		values[i] = 10.0 + float32(i)*0.1
	}
	if err := f.PutVarFloat(DataVar, w, values); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() <= 1024 {
		t.Fatalf("compressed file size %d, want > 1024", info.Size())
	}

	// Read-only access must leave the stored stream untouched.
	before, _ := os.ReadFile(path)
	r, err := Open(path, ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.GetVarFloat(DataVar, w)
	if err != nil {
		t.Fatal(err)
	}
	for i := range values {
		if diff := got[i] - values[i]; diff > 0.1 || diff < -0.1 {
			t.Fatalf("value %d: got %g, want %g", i, got[i], values[i])
		}
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("read-only access modified the stored file")
	}
}

func TestCompressedRewrite(t *testing.T) {
	f, path := newDataset(t, "mcsst", Float, 2, 80)
	if err := f.EndDef(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	// Rewrite one row through the transparent decompression path.
	rw, err := Open(path, ReadWrite)
	if err != nil {
		t.Fatal(err)
	}
	row := Window{StartRow: 1, Rows: 1, Cols: 80}
	values := make([]float32, 80)
	for i := range values {
		values[i] = float32(i) * 0.25
	}
	if err := rw.PutVarFloat(DataVar, row, values); err != nil {
		t.Fatal(err)
	}
	if err := rw.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path, ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := r.GetVarFloat(DataVar, row)
	if err != nil {
		t.Fatal(err)
	}
	for i := range values {
		if diff := got[i] - values[i]; diff > 0.1 || diff < -0.1 {
			t.Fatalf("value %d: got %g, want %g", i, got[i], values[i])
		}
	}
}

func TestStrerror(t *testing.T) {
	if got := Strerror(ErrNone); got != "no error" {
		t.Errorf("code 0: %q", got)
	}
	if got := Strerror(ErrAttReadOnly); got != "attribute is read-only" {
		t.Errorf("code 51: %q", got)
	}
	if got := Strerror(Code(99)); got != "unknown error" {
		t.Errorf("out of range: %q", got)
	}
}

func TestErrorMatching(t *testing.T) {
	err := wrapErr(ErrMagic, os.ErrInvalid)
	if !errors.Is(err, codeErr(ErrMagic)) {
		t.Error("wrapped error does not match its code sentinel")
	}
	if errors.Is(err, codeErr(ErrMagicRead)) {
		t.Error("wrapped error matches a different code")
	}
	if !errors.Is(err, os.ErrInvalid) {
		t.Error("wrapped cause lost")
	}
}
