package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"blue":       {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"orange":     {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	"red":        {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"green":      {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"black":      {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"gray":       {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"purple":     {R: 0x80, G: 0x00, B: 0x80, A: 0xff},
	"tab:blue":   {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"tab:orange": {R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
}

// ParseColor accepts a small set of names or a #rrggbb hex string.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
	}
	return nil, fmt.Errorf("unknown color %q", s)
}
