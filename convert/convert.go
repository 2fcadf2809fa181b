// Package convert predicts the value and byte image an integer cast produces.
//
// Convert applies two's-complement truncation and sign/zero-extension through
// one width-agnostic procedure: mask to the source width, reinterpret the sign,
// mask to the destination width, reinterpret again. Widening and narrowing need
// no separate handling. Intermediates are math/big so literals wider than a
// machine word are normalized before any narrowing.
package convert

import (
	"math/big"

	"github.com/wippyai/castcheck/types"
)

// Convert returns v cast from src to dst. v is not modified.
func Convert(v *big.Int, src, dst types.Descriptor) *big.Int {
	s := reinterpret(v, src)
	return reinterpret(s, dst)
}

// Cast is Convert for native values.
func Cast(v int64, src, dst types.Descriptor) *big.Int {
	return Convert(big.NewInt(v), src, dst)
}

// reinterpret reduces v modulo 2^bits and, for signed types with the top bit
// set, subtracts 2^bits.
func reinterpret(v *big.Int, d types.Descriptor) *big.Int {
	masked := new(big.Int).And(v, d.Mask())
	if d.Signed && masked.Bit(d.Bits-1) == 1 {
		masked.Sub(masked, new(big.Int).Lsh(big.NewInt(1), uint(d.Bits)))
	}
	return masked
}

// LittleEndian serializes v as dst.Bytes() bytes, least significant first.
func LittleEndian(v *big.Int, dst types.Descriptor) []byte {
	u := new(big.Int).And(v, dst.Mask())
	out := make([]byte, dst.Bytes())
	b := new(big.Int)
	ff := big.NewInt(0xFF)
	for i := range out {
		b.Rsh(u, uint(8*i))
		out[i] = byte(b.And(b, ff).Uint64())
	}
	return out
}

// FromLittleEndian reads dst.Bytes() bytes and returns the dst-typed value.
func FromLittleEndian(b []byte, dst types.Descriptor) *big.Int {
	n := dst.Bytes()
	if len(b) < n {
		n = len(b)
	}
	u := new(big.Int)
	for i := n - 1; i >= 0; i-- {
		u.Lsh(u, 8)
		u.Or(u, big.NewInt(int64(b[i])))
	}
	return reinterpret(u, dst)
}

// Expected is LittleEndian(Convert(v, src, dst), dst).
func Expected(v *big.Int, src, dst types.Descriptor) []byte {
	return LittleEndian(Convert(v, src, dst), dst)
}
