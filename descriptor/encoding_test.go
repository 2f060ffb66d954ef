package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func sampleMatrix(t *testing.T, typ ElementType) *Matrix {
	t.Helper()
	m, err := New(3, 4, typ)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", typ, err)
	}
	values := []float64{0, 1, 7, 100, 3, 5, 2, 90, 11, 13, 17, 19}
	if typ == Int8 || typ == Int16 || typ == Int32 || typ == Float32 || typ == Float64 {
		values[1] = -1
		values[6] = -42
	}
	if typ == Float32 || typ == Float64 {
		values[2] = 0.25
		values[9] = -3.5
	}
	for i, v := range values {
		m.Set(i/4, i%4, v)
	}
	return m
}

func TestSaveLoad_RoundTripAllTypes(t *testing.T) {
	dir := t.TempDir()
	for _, typ := range []ElementType{Int8, Uint8, Int16, Uint16, Int32, Float32, Float64} {
		orig := sampleMatrix(t, typ)
		path := filepath.Join(dir, typ.String()+".orb.descr")
		if err := Save(path, orig); err != nil {
			t.Fatalf("Save(%v) failed: %v", typ, err)
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%v) failed: %v", typ, err)
		}
		if !loaded.Equal(orig) {
			t.Fatalf("round trip for %v differs: got %+v, want %+v", typ, loaded, orig)
		}
	}
}

func TestSaveLoad_EmptyMatrix(t *testing.T) {
	orig, err := New(0, 32, Uint8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "nested", "empty.orb.descr")
	if err := Save(path, orig); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Rows != 0 || loaded.Cols != 32 || loaded.Type != Uint8 {
		t.Fatalf("loaded shape = %dx%d %v, want 0x32 uint8", loaded.Rows, loaded.Cols, loaded.Type)
	}
	if !loaded.Empty() {
		t.Fatalf("expected empty matrix")
	}
}

func TestMarshalBinary_Layout(t *testing.T) {
	m, err := FromUint8([][]uint8{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatalf("FromUint8 failed: %v", err)
	}
	data, err := m.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	want := []byte{3, 0, 0, 0, 2, 0, 0, 0, byte(Uint8), 1, 2, 3, 4, 5, 6}
	if string(data) != string(want) {
		t.Fatalf("record = %v, want %v", data, want)
	}
}

func TestUnmarshalBinary_Rejects(t *testing.T) {
	m := sampleMatrix(t, Int16)
	data, err := m.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	badTag := append([]byte(nil), data...)
	badTag[8] = 42

	cases := map[string][]byte{
		"short header": data[:5],
		"truncated":    data[:len(data)-1],
		"trailing":     append(append([]byte(nil), data...), 0),
		"unknown tag":  badTag,
		"huge shape":   {0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, byte(Float64), 1, 2},
	}
	for name, blob := range cases {
		var out Matrix
		err := out.UnmarshalBinary(blob)
		if !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: err = %v, want ErrCorrupt", name, err)
		}
		if out.Data != nil || out.Rows != 0 {
			t.Fatalf("%s: partial result left in receiver: %+v", name, out)
		}
	}
	var out Matrix
	if err := out.UnmarshalBinary(badTag); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("unknown tag err = %v, want ErrUnknownType", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.descr"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load(missing) err = %v, want ErrNotExist", err)
	}
}
