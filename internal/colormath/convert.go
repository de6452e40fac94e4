package colormath

import "math"

// HSL represents a colour in HSL (Hue, Saturation, Lightness) colour space.
type HSL struct {
	H int `json:"h" yaml:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s" yaml:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l" yaml:"l"` // Lightness: 0-100 percent (0=black, 100=white)
}

// CMYK represents a colour in the subtractive CMYK colour space.
type CMYK struct {
	C int `json:"c" yaml:"c"` // Cyan: 0-100 percent
	M int `json:"m" yaml:"m"` // Magenta: 0-100 percent
	Y int `json:"y" yaml:"y"` // Yellow: 0-100 percent
	K int `json:"k" yaml:"k"` // Key (black): 0-100 percent
}

// round rounds half up, matching the behaviour expected for the
// non-negative values this package produces.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// normalized returns the channels of rgb clamped and scaled to 0-1.
func normalized(rgb RGB) (r, g, b float64) {
	return float64(clampChannel(rgb.R)) / 255.0,
		float64(clampChannel(rgb.G)) / 255.0,
		float64(clampChannel(rgb.B)) / 255.0
}

// RGBToHSL converts an RGB colour to HSL.
//
// The conversion follows the standard algorithm:
//  1. Normalize RGB to 0-1 range
//  2. Find min and max components
//  3. Lightness is (max + min) / 2
//  4. Saturation is delta/(2-max-min) above half lightness, else delta/(max+min)
//  5. Hue depends on which component is max, offset by 0, 2 or 4 sextants
//
// Achromatic input (r == g == b) yields hue 0 and saturation 0.
func RGBToHSL(rgb RGB) HSL {
	r, g, b := normalized(rgb)

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	if max == min {
		return HSL{H: 0, S: 0, L: round(l * 100)}
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h /= 6

	hue := round(h * 360)
	if hue == 360 {
		hue = 0
	}

	return HSL{
		H: hue,
		S: round(s * 100),
		L: round(l * 100),
	}
}

// HSLToRGB converts an HSL colour to RGB.
//
// Saturation and lightness are clamped to 0-100 and the hue is wrapped into
// 0-359 first. Zero saturation produces a gray derived from lightness alone.
func HSLToRGB(hsl HSL) RGB {
	h := float64(((hsl.H%360)+360)%360) / 360
	s := float64(clampInt(hsl.S, 0, 100)) / 100
	l := float64(clampInt(hsl.L, 0, 100)) / 100

	if s == 0 {
		gray := round(l * 255)
		return RGB{R: gray, G: gray, B: gray}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: round(hueToRGB(p, q, h+1.0/3) * 255),
		G: round(hueToRGB(p, q, h) * 255),
		B: round(hueToRGB(p, q, h-1.0/3) * 255),
	}
}

// hueToRGB evaluates one channel of the HSL to RGB conversion. t is the hue
// offset in turns and is wrapped into 0-1.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// HexToHSL parses a hex colour and converts it to HSL.
func HexToHSL(s string) (HSL, error) {
	rgb, err := HexToRGB(s)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(rgb), nil
}

// HSLToHex converts an HSL colour to its normalized hex form.
func HSLToHex(hsl HSL) Hex {
	return RGBToHex(HSLToRGB(hsl))
}

// RGBToCMYK converts an RGB colour to CMYK.
//
// K is 1 minus the largest normalized channel. Pure black short-circuits to
// C=M=Y=0, K=100 to avoid dividing by zero.
func RGBToCMYK(rgb RGB) CMYK {
	r, g, b := normalized(rgb)

	k := 1 - math.Max(r, math.Max(g, b))
	if k == 1 {
		return CMYK{C: 0, M: 0, Y: 0, K: 100}
	}

	return CMYK{
		C: round((1 - r - k) / (1 - k) * 100),
		M: round((1 - g - k) / (1 - k) * 100),
		Y: round((1 - b - k) / (1 - k) * 100),
		K: round(k * 100),
	}
}

// HexToCMYK parses a hex colour and converts it to CMYK.
func HexToCMYK(s string) (CMYK, error) {
	rgb, err := HexToRGB(s)
	if err != nil {
		return CMYK{}, err
	}
	return RGBToCMYK(rgb), nil
}
