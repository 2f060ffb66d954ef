package descriptor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ElementType tags the native numeric type of matrix elements. The numeric
// values are part of the persisted record format.
type ElementType uint8

const (
	Int8 ElementType = iota
	Uint8
	Int16
	Uint16
	Int32
	Float32
	Float64
)

var (
	// ErrUnknownType is returned for an element type tag outside the supported set.
	ErrUnknownType = errors.New("descriptor: unknown element type")
	// ErrShape is returned when rows/cols are negative or data does not fit the shape.
	ErrShape = errors.New("descriptor: invalid matrix shape")
)

// Valid reports whether t is one of the supported element types.
func (t ElementType) Valid() bool { return t <= Float64 }

// Size returns the width in bytes of one element of type t, or 0 when t is unknown.
func (t ElementType) Size() int {
	switch t {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

func (t ElementType) String() string {
	switch t {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("ElementType(%d)", uint8(t))
}

// Matrix is an ordered sequence of descriptor vectors extracted from one
// image. Data holds Rows*Cols elements in row-major order, little-endian, at
// the native width of Type. A matrix with zero rows is valid and means no
// features were found.
type Matrix struct {
	Rows int
	Cols int
	Type ElementType
	Data []byte
}

// New allocates a zero-filled matrix of the given shape and element type.
func New(rows, cols int, typ ElementType) (*Matrix, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(typ))
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrShape, rows, cols)
	}
	return &Matrix{Rows: rows, Cols: cols, Type: typ, Data: make([]byte, rows*cols*typ.Size())}, nil
}

// FromFloat32 builds a Float32 matrix from equally sized rows.
func FromFloat32(rows [][]float32) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m, err := New(len(rows), cols, Float32)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, r, len(row), cols)
		}
		off := r * cols * 4
		for c, v := range row {
			binary.LittleEndian.PutUint32(m.Data[off+c*4:], math.Float32bits(v))
		}
	}
	return m, nil
}

// FromUint8 builds a Uint8 matrix (the layout binary extractors such as ORB
// produce) from equally sized rows.
func FromUint8(rows [][]uint8) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m, err := New(len(rows), cols, Uint8)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, r, len(row), cols)
		}
		copy(m.Data[r*cols:], row)
	}
	return m, nil
}

// Empty reports whether the matrix holds no vectors.
func (m *Matrix) Empty() bool { return m == nil || m.Rows == 0 }

// Validate checks that the element type is known and Data matches the shape.
func (m *Matrix) Validate() error {
	if !m.Type.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownType, uint8(m.Type))
	}
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("%w: %dx%d", ErrShape, m.Rows, m.Cols)
	}
	if want := m.Rows * m.Cols * m.Type.Size(); len(m.Data) != want {
		return fmt.Errorf("%w: %dx%d %v needs %d bytes, have %d", ErrShape, m.Rows, m.Cols, m.Type, want, len(m.Data))
	}
	return nil
}

// At returns element (r, c) widened to float64.
func (m *Matrix) At(r, c int) float64 {
	return m.element((r*m.Cols + c) * m.Type.Size())
}

// Set stores v at (r, c) using a plain numeric cast to the native type.
func (m *Matrix) Set(r, c int, v float64) {
	off := (r*m.Cols + c) * m.Type.Size()
	b := m.Data[off:]
	switch m.Type {
	case Int8:
		b[0] = byte(int8(v))
	case Uint8:
		b[0] = uint8(v)
	case Int16:
		binary.LittleEndian.PutUint16(b, uint16(int16(v)))
	case Uint16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case Int32:
		binary.LittleEndian.PutUint32(b, uint32(int32(v)))
	case Float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	case Float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	}
}

func (m *Matrix) element(off int) float64 {
	b := m.Data[off:]
	switch m.Type {
	case Int8:
		return float64(int8(b[0]))
	case Uint8:
		return float64(b[0])
	case Int16:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case Uint16:
		return float64(binary.LittleEndian.Uint16(b))
	case Int32:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return 0
}

// Row returns row r converted to the canonical float32 representation.
func (m *Matrix) Row(r int) []float32 {
	out := make([]float32, m.Cols)
	width := m.Type.Size()
	base := r * m.Cols * width
	if m.Type == Float32 {
		for c := range out {
			out[c] = math.Float32frombits(binary.LittleEndian.Uint32(m.Data[base+c*4:]))
		}
		return out
	}
	for c := range out {
		out[c] = float32(m.element(base + c*width))
	}
	return out
}

// Float32Rows converts every vector to float32. Integral types are widened by
// a plain cast; no normalization is applied.
func (m *Matrix) Float32Rows() [][]float32 {
	if m.Empty() {
		return nil
	}
	out := make([][]float32, m.Rows)
	for r := range out {
		out[r] = m.Row(r)
	}
	return out
}

// Canonical returns the matrix converted to Float32. A Float32 input is returned as is.
func (m *Matrix) Canonical() *Matrix {
	if m.Type == Float32 {
		return m
	}
	out := &Matrix{Rows: m.Rows, Cols: m.Cols, Type: Float32, Data: make([]byte, m.Rows*m.Cols*4)}
	width := m.Type.Size()
	for i := 0; i < m.Rows*m.Cols; i++ {
		binary.LittleEndian.PutUint32(out.Data[i*4:], math.Float32bits(float32(m.element(i*width))))
	}
	return out
}

// Equal reports whether both matrices have the same shape, element type and
// bit-identical data.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Rows == o.Rows && m.Cols == o.Cols && m.Type == o.Type && bytes.Equal(m.Data, o.Data)
}
