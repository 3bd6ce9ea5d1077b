package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a hex color for text, outline or guide drawing.
//
// Accepted forms:
//   - "#RGB" and "#RRGGBB": opaque colors
//   - "#RRGGBBAA": color with alpha
//
// The leading "#" is optional. The result is non-premultiplied.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimSpace(s)
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	switch len(hex) {
	case 4, 7, 9:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}

	alpha := uint8(255)
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// ColorOrDefault parses s, returning def when s is empty.
func ColorOrDefault(s string, def color.NRGBA) (color.NRGBA, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return ParseColor(s)
}

// HexString formats c as "#RRGGBB", or "#RRGGBBAA" when not opaque.
func HexString(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", n.R, n.G, n.B, n.A)
}
