package descriptor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// headerSize is rows(uint32) + cols(uint32) + type tag(uint8).
const headerSize = 9

// ErrCorrupt is returned when a persisted record is truncated or malformed.
var ErrCorrupt = errors.New("descriptor: corrupt record")

// MarshalBinary encodes the matrix as: rows(uint32), cols(uint32), type(uint8),
// followed by rows*cols elements in row-major order at their native width,
// all little-endian.
func (m *Matrix) MarshalBinary() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Rows > math.MaxUint32 || m.Cols > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %dx%d exceeds record limits", ErrShape, m.Rows, m.Cols)
	}
	out := make([]byte, headerSize+len(m.Data))
	binary.LittleEndian.PutUint32(out[0:4], uint32(m.Rows))
	binary.LittleEndian.PutUint32(out[4:8], uint32(m.Cols))
	out[8] = byte(m.Type)
	copy(out[headerSize:], m.Data)
	return out, nil
}

// UnmarshalBinary restores a matrix from a record produced by MarshalBinary.
// The receiver is left untouched when the record is rejected.
func (m *Matrix) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("%w: %d byte header", ErrCorrupt, len(data))
	}
	rows := uint64(binary.LittleEndian.Uint32(data[0:4]))
	cols := uint64(binary.LittleEndian.Uint32(data[4:8]))
	typ := ElementType(data[8])
	if !typ.Valid() {
		return fmt.Errorf("%w: %w: tag %d", ErrCorrupt, ErrUnknownType, uint8(typ))
	}
	payload := uint64(len(data) - headerSize)
	// rows and cols are bounded by 2^32 so the product cannot overflow uint64
	// before the width multiplication is checked against the payload.
	elems := rows * cols
	if cols != 0 && elems/cols != rows {
		return fmt.Errorf("%w: shape %dx%d overflows", ErrCorrupt, rows, cols)
	}
	if elems > payload || elems*uint64(typ.Size()) != payload {
		return fmt.Errorf("%w: %dx%d %v needs %d bytes, have %d", ErrCorrupt, rows, cols, typ, elems*uint64(typ.Size()), payload)
	}
	buf := make([]byte, payload)
	copy(buf, data[headerSize:])
	*m = Matrix{Rows: int(rows), Cols: int(cols), Type: typ, Data: buf}
	return nil
}

// Save writes the matrix record to path, creating parent directories.
func Save(path string, m *Matrix) error {
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a matrix record from path. Any I/O failure, truncated file or
// unknown type tag fails without a partial result.
func Load(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Matrix{}
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
