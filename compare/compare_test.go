package compare

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/wippyai/castcheck/errors"
)

func TestCompare_PrefixMatch(t *testing.T) {
	res, err := Compare([]byte{0x01, 0x02}, []byte{0x01, 0x02, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, 1, res.Trailing)
}

func TestCompare_Exact(t *testing.T) {
	res, err := Compare([]byte{0xD9, 0xFF}, []byte{0xD9, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, Result{Matched: 2}, res)
}

func TestCompare_EmptyExpected(t *testing.T) {
	res, err := Compare(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Matched)
}

func TestCompare_InsufficientLength(t *testing.T) {
	_, err := Compare([]byte{0x01, 0x02}, []byte{0x01})
	require.Error(t, err)

	var e *cerrors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, cerrors.KindInsufficientLength, e.Kind)
	assert.Equal(t, 2, e.Expected)
	assert.Equal(t, 1, e.Actual)
	assert.Equal(t, cerrors.ExitFailed, cerrors.ExitCode(err))
}

func TestCompare_ByteMismatch(t *testing.T) {
	tests := []struct {
		name     string
		expected []byte
		observed []byte
		index    int
		want     byte
		got      byte
	}{
		{"second byte", []byte{0x01, 0x02}, []byte{0x01, 0x03}, 1, 0x02, 0x03},
		{"first byte", []byte{0xA5}, []byte{0x00, 0xA5}, 0, 0xA5, 0x00},
		{"reports first of several", []byte{1, 2, 3, 4}, []byte{1, 9, 9, 9}, 1, 0x02, 0x09},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compare(tt.expected, tt.observed)
			require.Error(t, err)

			var e *cerrors.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, cerrors.KindByteMismatch, e.Kind)
			assert.Equal(t, tt.index, e.Index)
			assert.Equal(t, tt.want, e.Expected)
			assert.Equal(t, tt.got, e.Actual)
		})
	}
}

func TestCompare_LengthCheckedFirst(t *testing.T) {
	_, err := Compare([]byte{0x01, 0x02}, []byte{0x09})
	assert.True(t, errors.Is(err, &cerrors.Error{Phase: cerrors.PhaseCompare, Kind: cerrors.KindInsufficientLength}))
}
