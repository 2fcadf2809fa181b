package dump

import (
	"encoding/binary"

	"github.com/wippyai/castcheck"
	"github.com/wippyai/castcheck/errors"
)

var _ castcheck.Memory = (*Image)(nil)

// Image is the sparse memory a set of records describes. A later record
// overwrites an earlier one at the same address.
type Image struct {
	cells map[uint32]byte
}

// NewImage builds an Image from records.
func NewImage(records []Record) *Image {
	img := &Image{cells: make(map[uint32]byte)}
	for _, r := range records {
		for i, b := range r.Bytes {
			img.cells[uint32(r.Address)+uint32(i)] = b
		}
	}
	return img
}

// Len returns the number of recorded addresses.
func (m *Image) Len() int {
	return len(m.cells)
}

// Read reads bytes from memory.
func (m *Image) Read(offset uint32, length uint32) ([]byte, error) {
	out := make([]byte, length)
	for i := range out {
		b, ok := m.cells[offset+uint32(i)]
		if !ok {
			return nil, errors.OutOfBounds(offset, int(length))
		}
		out[i] = b
	}
	return out, nil
}

// ReadU8 reads an unsigned 8-bit value.
func (m *Image) ReadU8(offset uint32) (uint8, error) {
	b, err := m.Read(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads an unsigned 16-bit little-endian value.
func (m *Image) ReadU16(offset uint32) (uint16, error) {
	b, err := m.Read(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads an unsigned 32-bit little-endian value.
func (m *Image) ReadU32(offset uint32) (uint32, error) {
	b, err := m.Read(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads an unsigned 64-bit little-endian value.
func (m *Image) ReadU64(offset uint32) (uint64, error) {
	b, err := m.Read(offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
