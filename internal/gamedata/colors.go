package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts "#RRGGBB" (or "RRGGBB") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	var rgb [3]int32
	for i := range rgb {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid color component %d in %s: %w", i, hex, err)
		}
		rgb[i] = int32(v)
	}
	return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), nil
}

// ColorOr parses hex, returning fallback when it is malformed.
func ColorOr(hex string, fallback tcell.Color) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return color
}
