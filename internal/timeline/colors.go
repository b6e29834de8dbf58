package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Hex renders the color as a #rrggbb string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rgb and #rrggbb color strings.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
	}, nil
}

// MustParseHex is ParseHex for trusted literals; it panics on bad input.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Darken scales each channel down by factor (0 leaves the color unchanged,
// 1 yields black), truncating toward zero.
func Darken(c RGB, factor float64) RGB {
	scale := 1 - factor
	return RGB{
		R: uint8(float64(c.R) * scale),
		G: uint8(float64(c.G) * scale),
		B: uint8(float64(c.B) * scale),
	}
}

// ContrastColor picks black or white text for the given background using
// the perceived-brightness weights 299/587/114 with a threshold of 128.
func ContrastColor(background RGB) RGB {
	brightness := (int(background.R)*299 + int(background.G)*587 + int(background.B)*114) / 1000
	if brightness > 128 {
		return RGB{0x00, 0x00, 0x00}
	}
	return RGB{0xff, 0xff, 0xff}
}
