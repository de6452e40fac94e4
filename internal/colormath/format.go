package colormath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat for an unrecognized format name.
var ErrUnknownFormat = errors.New("unknown color format")

// Format selects the textual rendering used by FormatColor.
type Format int

const (
	// FormatHex renders the normalized "#RRGGBB" string.
	FormatHex Format = iota
	// FormatRGB renders "rgb(r, g, b)".
	FormatRGB
	// FormatHSL renders "hsl(h, s%, l%)".
	FormatHSL
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatHex:
		return "hex"
	case FormatRGB:
		return "rgb"
	case FormatHSL:
		return "hsl"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a format name to a Format. The empty string selects
// FormatHex. Matching ignores case and surrounding whitespace.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hex":
		return FormatHex, nil
	case "rgb":
		return FormatRGB, nil
	case "hsl":
		return FormatHSL, nil
	default:
		return FormatHex, fmt.Errorf("%w: %q (valid formats: hex, rgb, hsl)", ErrUnknownFormat, name)
	}
}

// FormatColor renders a hex colour as CSS-style text.
//
// The hex is normalized first; invalid input fails with ErrInvalidColorFormat.
// A Format outside FormatHex, FormatRGB and FormatHSL fails with
// ErrUnknownFormat.
//
// Example:
//
//	s, _ := colormath.FormatColor("#FF5733", colormath.FormatRGB)
//	// s == "rgb(255, 87, 51)"
func FormatColor(s string, f Format) (string, error) {
	hex, err := NormalizeHex(s)
	if err != nil {
		return "", err
	}

	switch f {
	case FormatHex:
		return string(hex), nil
	case FormatRGB:
		rgb, err := HexToRGB(string(hex))
		if err != nil {
			return "", err
		}
		return formatRGB(rgb), nil
	case FormatHSL:
		hsl, err := HexToHSL(string(hex))
		if err != nil {
			return "", err
		}
		return formatHSL(hsl), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

func formatRGB(rgb RGB) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

func formatHSL(hsl HSL) string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hsl.H, hsl.S, hsl.L)
}

// Description contains one colour in every representation the tools expose.
type Description struct {
	Hex       Hex      `json:"hex"`
	RGB       RGB      `json:"rgb"`
	HSL       HSL      `json:"hsl"`
	CMYK      CMYK     `json:"cmyk"`
	CSSRGB    string   `json:"css_rgb"`
	CSSHSL    string   `json:"css_hsl"`
	Luminance float64  `json:"luminance"`
	Contrast  Contrast `json:"contrast"`
}

// Describe derives every representation of a hex colour in one call.
func Describe(s string) (*Description, error) {
	hex, err := NormalizeHex(s)
	if err != nil {
		return nil, err
	}
	rgb, err := HexToRGB(string(hex))
	if err != nil {
		return nil, err
	}
	hsl := RGBToHSL(rgb)

	return &Description{
		Hex:       hex,
		RGB:       rgb,
		HSL:       hsl,
		CMYK:      RGBToCMYK(rgb),
		CSSRGB:    formatRGB(rgb),
		CSSHSL:    formatHSL(hsl),
		Luminance: Luminance(rgb),
		Contrast:  contrastFor(rgb),
	}, nil
}
