package genutil

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitString_RoundTrip(t *testing.T) {
	cases := []struct {
		input string
		size  int
	}{
		{"", 1},
		{"a", 1},
		{"abcdef", 2},
		{"abcdefg", 3},
		{"abcdefg", 100},
	}

	for _, tc := range cases {
		chunks := SplitString(tc.input, tc.size)
		require.Equal(t, tc.input, strings.Join(chunks, ""),
			"concatenated chunks must reproduce the input for %q/%d", tc.input, tc.size)

		for i, chunk := range chunks {
			if i < len(chunks)-1 {
				require.Len(t, chunk, tc.size)
			} else {
				require.LessOrEqual(t, len(chunk), tc.size)
				require.NotEmpty(t, chunk)
			}
		}
	}
}

func TestSplitString_EmptyInput(t *testing.T) {
	require.Empty(t, SplitString("", 4))
}

func TestSplitString_NonPositiveSizePanics(t *testing.T) {
	require.Panics(t, func() { SplitString("abc", 0) })
	require.Panics(t, func() { SplitString("abc", -1) })
}

func TestVectorLiteral(t *testing.T) {
	require.Equal(t, `"00000001"`, VectorLiteral(1, 8))
	require.Equal(t, `"00000001_00000010"`, VectorLiteral(0x0102, 16))
	require.Equal(t, `"00000000_00000000_00000000_00000000"`, VectorLiteral(0, 32))
}

func TestVectorLiteral_BitsReproduceValue(t *testing.T) {
	for _, width := range []int{8, 16, 32} {
		value := uint64(0xA5) & (1<<uint(width) - 1)
		lit := VectorLiteral(value, width)

		bits := strings.Trim(lit, `"`)
		bits = strings.ReplaceAll(bits, "_", "")
		require.Len(t, bits, width)

		parsed, err := strconv.ParseUint(bits, 2, 64)
		require.NoError(t, err)
		require.Equal(t, value, parsed)
	}
}

func TestIdentifier(t *testing.T) {
	require.Equal(t, "DEVICE_ID", Identifier("device_id"))
	require.Equal(t, "ERR_NORM", Identifier("err-norm "))
	require.Equal(t, "INT_ENA_SET", Identifier("int ena set"))
}
