package colormath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidColorFormat is returned when a string is not a 3 or 6 digit hex colour.
var ErrInvalidColorFormat = errors.New("invalid color format")

var hexPattern = regexp.MustCompile(`^#?([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// Hex is a normalized colour string of the form "#RRGGBB".
//
// Values produced by this package are always uppercase with a leading '#'.
type Hex string

// String returns the hex string.
func (h Hex) String() string {
	return string(h)
}

// RGB represents a colour with 8-bit integer channels.
type RGB struct {
	R int `json:"r" yaml:"r"` // Red component (0-255)
	G int `json:"g" yaml:"g"` // Green component (0-255)
	B int `json:"b" yaml:"b"` // Blue component (0-255)
}

// IsValidHex reports whether s is '#'-optional followed by exactly 3 or 6 hex
// digits. Case is ignored. It never fails.
func IsValidHex(s string) bool {
	return hexPattern.MatchString(s)
}

// NormalizeHex canonicalizes a hex colour string.
//
// A leading '#' is stripped, the 3-digit shorthand is expanded by doubling each
// digit ("f0a" becomes "ff00aa"), the digits are uppercased and the '#' prefix is
// restored.
//
// Parameters:
//   - s: A 3 or 6 digit hex colour, with or without '#'.
//
// Returns:
//   - Hex: The canonical "#RRGGBB" form.
//   - error: Wraps ErrInvalidColorFormat when s fails IsValidHex. Invalid input is
//     rejected rather than parsed best-effort.
//
// NormalizeHex is idempotent: normalizing its own output returns the same value.
func NormalizeHex(s string) (Hex, error) {
	if !IsValidHex(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}

	digits := strings.TrimPrefix(s, "#")
	if len(digits) == 3 {
		var b strings.Builder
		b.Grow(6)
		for _, c := range digits {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		digits = b.String()
	}

	return Hex("#" + strings.ToUpper(digits)), nil
}

// HexToRGB parses a hex colour into its three channels.
//
// The input is normalized first, so shorthand and lowercase forms are accepted.
// Any other input fails with an error wrapping ErrInvalidColorFormat.
func HexToRGB(s string) (RGB, error) {
	hex, err := NormalizeHex(s)
	if err != nil {
		return RGB{}, err
	}

	// NormalizeHex guarantees six hex digits after the '#'.
	val, err := strconv.ParseUint(string(hex[1:]), 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %v", ErrInvalidColorFormat, err)
	}

	return RGB{
		R: int((val >> 16) & 0xFF),
		G: int((val >> 8) & 0xFF),
		B: int(val & 0xFF),
	}, nil
}

// RGBToHex formats an RGB colour as "#RRGGBB".
//
// Each channel is clamped to 0-255 before formatting, so this never fails.
func RGBToHex(rgb RGB) Hex {
	return Hex(fmt.Sprintf("#%02X%02X%02X", clampChannel(rgb.R), clampChannel(rgb.G), clampChannel(rgb.B)))
}

func clampChannel(v int) int {
	return clampInt(v, 0, 255)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
