// Package types is the catalog of fixed-width integer types a cast can
// read from or write to.
package types

import (
	"math/big"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/castcheck/errors"
)

// Descriptor describes one fixed-width integer type.
type Descriptor struct {
	Name    string // catalog identifier, e.g. "i16"
	CType   string // C spelling, e.g. "int16_t"
	Literal string // C literal of the sample value
	Bits    int
	Signed  bool
	sample  int64
}

var catalog = [...]Descriptor{
	{Name: "u8", CType: "uint8_t", Bits: 8, Signed: false, sample: 0xA5, Literal: "0xA5u"},
	{Name: "i8", CType: "int8_t", Bits: 8, Signed: true, sample: -0x27, Literal: "-0x27"},
	{Name: "u16", CType: "uint16_t", Bits: 16, Signed: false, sample: 0xA5A5, Literal: "0xA5A5u"},
	{Name: "i16", CType: "int16_t", Bits: 16, Signed: true, sample: -0x1234, Literal: "-0x1234"},
	{Name: "u32", CType: "uint32_t", Bits: 32, Signed: false, sample: 0x89ABCDEF, Literal: "0x89ABCDEFu"},
	{Name: "i32", CType: "int32_t", Bits: 32, Signed: true, sample: -0x1234567, Literal: "-0x1234567"},
	{Name: "u64", CType: "uint64_t", Bits: 64, Signed: false, sample: 0x0123456789ABCDEF, Literal: "0x0123456789ABCDEFULL"},
	{Name: "i64", CType: "int64_t", Bits: 64, Signed: true, sample: -0x123456789ABCD, Literal: "-0x123456789ABCDLL"},
}

// Convenience handles for the catalog entries.
var (
	U8  = catalog[0]
	I8  = catalog[1]
	U16 = catalog[2]
	I16 = catalog[3]
	U32 = catalog[4]
	I32 = catalog[5]
	U64 = catalog[6]
	I64 = catalog[7]
)

// Describe returns the descriptor registered under name.
func Describe(name string) (Descriptor, error) {
	for _, d := range catalog {
		if d.Name == name {
			return d, nil
		}
	}
	return Descriptor{}, errors.UnknownType(name)
}

// All returns every descriptor in catalog order.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out[:], catalog[:])
	return out
}

// Names returns the catalog identifiers in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, d := range catalog {
		names[i] = d.Name
	}
	return names
}

// Bytes is the storage size in bytes.
func (d Descriptor) Bytes() int {
	return d.Bits / 8
}

// Mask returns 2^Bits - 1.
func (d Descriptor) Mask() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(d.Bits))
	return m.Sub(m, big.NewInt(1))
}

// Min returns the smallest representable value.
func (d Descriptor) Min() *big.Int {
	if !d.Signed {
		return new(big.Int)
	}
	return new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(d.Bits-1)))
}

// Max returns the largest representable value.
func (d Descriptor) Max() *big.Int {
	if !d.Signed {
		return d.Mask()
	}
	m := new(big.Int).Lsh(big.NewInt(1), uint(d.Bits-1))
	return m.Sub(m, big.NewInt(1))
}

// Sample is the canonical source value the matrix generator feeds through a cast.
func (d Descriptor) Sample() *big.Int {
	return big.NewInt(d.sample)
}

// Wit returns the component-model primitive with the same width and signedness.
func (d Descriptor) Wit() wit.Type {
	switch d.Bits {
	case 8:
		if d.Signed {
			return wit.S8{}
		}
		return wit.U8{}
	case 16:
		if d.Signed {
			return wit.S16{}
		}
		return wit.U16{}
	case 32:
		if d.Signed {
			return wit.S32{}
		}
		return wit.U32{}
	case 64:
		if d.Signed {
			return wit.S64{}
		}
		return wit.U64{}
	}
	return nil
}

func (d Descriptor) String() string {
	return d.Name
}
