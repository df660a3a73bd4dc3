package prompt

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/ncruces/zenity"
	"golang.org/x/xerrors"
)

// PickColor opens the desktop color chooser, preselecting initial when it is
// a valid hex color.
func PickColor(initial string) (string, error) {
	opts := []zenity.Option{zenity.Title("Select icon color")}
	if c, ok := ParseHex(initial); ok {
		opts = append(opts, zenity.Color(c))
	}

	c, err := zenity.SelectColor(opts...)
	if err != nil {
		return "", xerrors.Errorf("select color: %w", err)
	}
	return Hex(c), nil
}

// Hex formats c as #RRGGBB, dropping alpha.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}

func ParseHex(s string) (color.Color, bool) {
	if ValidateHex(s) != nil {
		return nil, false
	}
	digits := s[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
