package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		input   string
		want    RGB
		wantErr bool
	}{
		{input: "#007acc", want: RGB{0x00, 0x7a, 0xcc}},
		{input: "007acc", want: RGB{0x00, 0x7a, 0xcc}},
		{input: "#FFF", want: RGB{0xff, 0xff, 0xff}},
		{input: "#abc", want: RGB{0xaa, 0xbb, 0xcc}},
		{input: "  #666666 ", want: RGB{0x66, 0x66, 0x66}},
		{input: "#12345", wantErr: true},
		{input: "#gghhii", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseHex(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDarken(t *testing.T) {
	c := MustParseHex("#646464") // 100, 100, 100

	require.Equal(t, RGB{80, 80, 80}, Darken(c, 0.2))
	require.Equal(t, c, Darken(c, 0))
	require.Equal(t, RGB{}, Darken(c, 1))
}

func TestContrastColor(t *testing.T) {
	black := RGB{0x00, 0x00, 0x00}
	white := RGB{0xff, 0xff, 0xff}

	require.Equal(t, white, ContrastColor(MustParseHex("#000000")))
	require.Equal(t, black, ContrastColor(MustParseHex("#ffffff")))
	// Saturated blue reads as dark despite a high blue channel.
	require.Equal(t, white, ContrastColor(MustParseHex("#0000ff")))
	// Pure green is bright under the 587 weighting.
	require.Equal(t, black, ContrastColor(MustParseHex("#00ff00")))
	require.Equal(t, white, ContrastColor(MustParseHex("#007acc")))
}

func TestHexRoundTrip(t *testing.T) {
	require.Equal(t, "#007acc", RGB{0x00, 0x7a, 0xcc}.Hex())
}
