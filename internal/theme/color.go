package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor decodes a hex color spec. Accepted forms, after dropping every
// non-alphanumeric character: RGB (12-bit), RRGGBB (24-bit) and AARRGGBB (32-bit).
func ParseColor(spec string) (color.RGBA, error) {
	hex := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, spec)

	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color spec %q", spec)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color spec %q: %w", spec, err)
	}

	switch len(hex) {
	case 3:
		return color.RGBA{
			R: uint8(v>>8) * 17,
			G: uint8(v>>4&0xF) * 17,
			B: uint8(v&0xF) * 17,
			A: 0xFF,
		}, nil
	case 6:
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
	case 8:
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}, nil
	default:
		return color.RGBA{}, fmt.Errorf("color spec %q must have 3, 6 or 8 hex digits", spec)
	}
}

// Gradient decodes every stop of a gradient, failing on the first bad spec
func Gradient(specs []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(specs))
	for i, spec := range specs {
		c, err := ParseColor(spec)
		if err != nil {
			return nil, fmt.Errorf("gradient stop %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
