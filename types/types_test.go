package types

import (
	"errors"
	"math/big"
	"reflect"
	"testing"

	"go.bytecodealliance.org/wit"

	cerrors "github.com/wippyai/castcheck/errors"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name   string
		bits   int
		signed bool
		ctype  string
	}{
		{"u8", 8, false, "uint8_t"},
		{"i8", 8, true, "int8_t"},
		{"u16", 16, false, "uint16_t"},
		{"i16", 16, true, "int16_t"},
		{"u32", 32, false, "uint32_t"},
		{"i32", 32, true, "int32_t"},
		{"u64", 64, false, "uint64_t"},
		{"i64", 64, true, "int64_t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Describe(tt.name)
			if err != nil {
				t.Fatalf("Describe(%q) error: %v", tt.name, err)
			}
			if d.Bits != tt.bits || d.Signed != tt.signed || d.CType != tt.ctype {
				t.Errorf("Describe(%q) = %+v", tt.name, d)
			}
			if d.Bytes() != tt.bits/8 {
				t.Errorf("Bytes() = %d, want %d", d.Bytes(), tt.bits/8)
			}
		})
	}
}

func TestDescribe_Unknown(t *testing.T) {
	_, err := Describe("u128")
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !errors.Is(err, &cerrors.Error{Phase: cerrors.PhaseCatalog, Kind: cerrors.KindUnknownType}) {
		t.Errorf("error = %v, want unknown_type", err)
	}
}

func TestAll_IsCopy(t *testing.T) {
	all := All()
	if len(all) != 8 {
		t.Fatalf("len(All()) = %d, want 8", len(all))
	}
	all[0].Bits = 99
	if d, _ := Describe("u8"); d.Bits != 8 {
		t.Error("mutating All() result changed the catalog")
	}
	if got := Names(); got[0] != "u8" || got[7] != "i64" {
		t.Errorf("Names() = %v", got)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		d        Descriptor
		min, max string
	}{
		{U8, "0", "255"},
		{I8, "-128", "127"},
		{U16, "0", "65535"},
		{I32, "-2147483648", "2147483647"},
		{U64, "0", "18446744073709551615"},
		{I64, "-9223372036854775808", "9223372036854775807"},
	}
	for _, tt := range tests {
		t.Run(tt.d.Name, func(t *testing.T) {
			if got := tt.d.Min().String(); got != tt.min {
				t.Errorf("Min() = %s, want %s", got, tt.min)
			}
			if got := tt.d.Max().String(); got != tt.max {
				t.Errorf("Max() = %s, want %s", got, tt.max)
			}
		})
	}
}

func TestMask(t *testing.T) {
	want := new(big.Int).SetUint64(0xFFFF)
	if U16.Mask().Cmp(want) != 0 {
		t.Errorf("U16.Mask() = %s", U16.Mask())
	}
	m := U8.Mask()
	m.SetInt64(0)
	if U8.Mask().Int64() != 0xFF {
		t.Error("Mask must return a fresh value")
	}
}

func TestSample(t *testing.T) {
	if got := I8.Sample().Int64(); got != -0x27 {
		t.Errorf("I8.Sample() = %d", got)
	}
	if got := U64.Sample().Uint64(); got != 0x0123456789ABCDEF {
		t.Errorf("U64.Sample() = %#x", got)
	}
}

func TestWit(t *testing.T) {
	tests := []struct {
		d    Descriptor
		want wit.Type
	}{
		{U8, wit.U8{}},
		{I8, wit.S8{}},
		{U16, wit.U16{}},
		{I16, wit.S16{}},
		{U32, wit.U32{}},
		{I32, wit.S32{}},
		{U64, wit.U64{}},
		{I64, wit.S64{}},
	}
	for _, tt := range tests {
		if got := tt.d.Wit(); reflect.TypeOf(got) != reflect.TypeOf(tt.want) {
			t.Errorf("%s.Wit() = %T, want %T", tt.d.Name, got, tt.want)
		}
	}
}
