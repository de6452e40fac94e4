package colormath

import "math"

// ContrastThreshold is the luminance above which a background needs dark text.
const ContrastThreshold = 0.179

// Contrast names the foreground text tone that reads well on a background.
type Contrast string

const (
	// ContrastLight means light text should be used (dark background).
	ContrastLight Contrast = "light"
	// ContrastDark means dark text should be used (light background).
	ContrastDark Contrast = "dark"
)

// Luminance calculates the relative luminance of a colour.
// Returns a value between 0 (black) and 1 (white).
//
// Each channel is normalized to 0-1 and gamma-expanded: values at or below
// 0.03928 are divided by 12.92, larger values use ((v+0.055)/1.055)^2.4.
// The channels are then weighted 0.2126 R + 0.7152 G + 0.0722 B.
func Luminance(rgb RGB) float64 {
	r, g, b := normalized(rgb)
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastColor classifies a background colour as needing light or dark text.
// It returns ContrastDark when the luminance exceeds ContrastThreshold.
func ContrastColor(s string) (Contrast, error) {
	rgb, err := HexToRGB(s)
	if err != nil {
		return "", err
	}
	return contrastFor(rgb), nil
}

func contrastFor(rgb RGB) Contrast {
	if Luminance(rgb) > ContrastThreshold {
		return ContrastDark
	}
	return ContrastLight
}

// ContrastRatio calculates the WCAG contrast ratio between two colours.
// Returns a value between 1 and 21, where 21 is black against white.
// The argument order does not matter.
func ContrastRatio(a, b RGB) float64 {
	l1 := Luminance(a)
	l2 := Luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}
