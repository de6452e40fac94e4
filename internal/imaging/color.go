package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
)

// Sample is the colour of one pixel, as picked with the eyedropper.
//
// The colour channels are un-premultiplied, so a half-transparent red pixel
// reports #FF0000 with Alpha 128 rather than a darkened red.
type Sample struct {
	Hex   colormath.Hex  `json:"hex"`
	RGB   colormath.RGB  `json:"rgb"`
	HSL   colormath.HSL  `json:"hsl"`
	CMYK  colormath.CMYK `json:"cmyk"`
	Alpha int            `json:"alpha"` // 0 = fully transparent, 255 = fully opaque
}

// SampleColor reads the pixel at (x, y).
//
// Parameters:
//   - img: The source image to sample from.
//   - x, y: 0-based pixel coordinates.
//
// Returns:
//   - *Sample: The pixel colour in every representation.
//   - error: Non-nil if the coordinates are outside the image bounds.
func SampleColor(img image.Image, x, y int) (*Sample, error) {
	bounds := img.Bounds()
	if !(image.Point{X: x, Y: y}).In(bounds) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return sampleFromNRGBA(c), nil
}

func sampleFromNRGBA(c color.NRGBA) *Sample {
	rgb := colormath.RGB{R: int(c.R), G: int(c.G), B: int(c.B)}
	return &Sample{
		Hex:   colormath.RGBToHex(rgb),
		RGB:   rgb,
		HSL:   colormath.RGBToHSL(rgb),
		CMYK:  colormath.RGBToCMYK(rgb),
		Alpha: int(c.A),
	}
}

// LabeledPoint is a pixel coordinate with an optional label such as
// "button_background".
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// LabeledSample combines a sample with its location and label.
type LabeledSample struct {
	Label string `json:"label,omitempty"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color Sample `json:"color"`
}

// MultiSampleResult contains samples in the same order as the requested points.
type MultiSampleResult struct {
	Samples []LabeledSample `json:"samples"`
}

// SampleColorsMulti samples several points in one call. If any point is out of
// bounds no partial result is returned.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiSampleResult, error) {
	results := make([]LabeledSample, 0, len(points))

	for _, p := range points {
		s, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledSample{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *s,
		})
	}

	return &MultiSampleResult{Samples: results}, nil
}
