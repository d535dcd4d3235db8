package utils

import (
	"image/color"
	"strconv"
	"strings"
)

// HexToRGBA converts a hex color string (#rgb or #rrggbb) to color.NRGBA.
// Invalid values fall back to opaque black.
func HexToRGBA(hex string) color.NRGBA {
	col := color.NRGBA{A: 0xff}
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return col
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return col
	}
	col.R = uint8(v >> 16)
	col.G = uint8(v >> 8)
	col.B = uint8(v)

	return col
}
