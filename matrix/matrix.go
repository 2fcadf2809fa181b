// Package matrix generates the cast test matrix: one case per ordered pair of
// catalog types, each feeding the source type's sample value through a cast
// and storing the destination bytes at castcheck.BaseAddr.
package matrix

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/wippyai/castcheck"
	"github.com/wippyai/castcheck/compare"
	"github.com/wippyai/castcheck/convert"
	"github.com/wippyai/castcheck/types"
)

// Case is one source/destination pair.
type Case struct {
	Value  *big.Int
	Source types.Descriptor
	Dest   types.Descriptor
}

// Cases returns all 64 cases in catalog order, source-major.
func Cases() []Case {
	all := types.All()
	out := make([]Case, 0, len(all)*len(all))
	for _, src := range all {
		for _, dst := range all {
			out = append(out, NewCase(src, dst))
		}
	}
	return out
}

// NewCase builds the case for src -> dst using the source's sample value.
func NewCase(src, dst types.Descriptor) Case {
	return Case{Source: src, Dest: dst, Value: src.Sample()}
}

// Lookup builds the case for two catalog names.
func Lookup(src, dst string) (Case, error) {
	s, err := types.Describe(src)
	if err != nil {
		return Case{}, err
	}
	d, err := types.Describe(dst)
	if err != nil {
		return Case{}, err
	}
	return NewCase(s, d), nil
}

// WithValue returns a copy of c converting v instead of the sample.
func (c Case) WithValue(v *big.Int) Case {
	c.Value = new(big.Int).Set(v)
	return c
}

// Name is the artifact base name, e.g. "sim-abi-i8-to-i16".
func (c Case) Name() string {
	return fmt.Sprintf("sim-abi-%s-to-%s", c.Source.Name, c.Dest.Name)
}

// Result is the destination-typed value the cast must produce.
func (c Case) Result() *big.Int {
	return convert.Convert(c.Value, c.Source, c.Dest)
}

// Expected is the little-endian byte image of Result.
func (c Case) Expected() []byte {
	return convert.LittleEndian(c.Result(), c.Dest)
}

// HexBytes formats Expected as space separated upper-case hex pairs.
func (c Case) HexBytes() string {
	b := c.Expected()
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(parts, " ")
}

// CheckMemory compares the bytes at castcheck.BaseAddr in m with Expected.
func (c Case) CheckMemory(m castcheck.Memory) (compare.Result, error) {
	observed, err := m.Read(castcheck.BaseAddr, uint32(c.Dest.Bytes()))
	if err != nil {
		return compare.Result{}, err
	}
	return compare.Compare(c.Expected(), observed)
}
