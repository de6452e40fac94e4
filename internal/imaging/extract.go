package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
)

// Palette extraction defaults.
const (
	DefaultPaletteCount   = 12
	DefaultPaletteMaxSize = 100
	DefaultPaletteStep    = 32
)

// PaletteOptions controls ExtractPalette. Zero values select the defaults.
type PaletteOptions struct {
	// Count is the maximum number of colours returned.
	Count int

	// MaxSize is the longest side, in pixels, the image is reduced to before
	// counting. Images that already fit are counted at full size and never
	// enlarged, so counts for small images are real pixel counts rather than
	// counts over an upsampled copy. Percentages come out about the same
	// either way.
	MaxSize int

	// Step is the quantization step applied to each channel. Channels are
	// rounded to the nearest multiple of Step.
	Step int

	// Region restricts extraction to part of the image. Nil means the whole image.
	Region *Region

	// MergeDistance folds colours closer than this CIEDE2000 distance into the
	// more frequent one, on the usual 0-100 scale where 2.3 is a just
	// noticeable difference. Zero disables merging.
	MergeDistance float64
}

func (o PaletteOptions) withDefaults() PaletteOptions {
	if o.Count <= 0 {
		o.Count = DefaultPaletteCount
	}
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultPaletteMaxSize
	}
	if o.Step <= 0 {
		o.Step = DefaultPaletteStep
	}
	return o
}

// PaletteColor is one extracted colour and how often it occurs.
type PaletteColor struct {
	Hex        colormath.Hex `json:"hex"`
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"` // Share of sampled pixels (0-100)
	RGB        colormath.RGB `json:"rgb"`
	HSL        colormath.HSL `json:"hsl"`
}

// PaletteResult lists extracted colours, most frequent first.
type PaletteResult struct {
	Colors        []PaletteColor `json:"colors"`
	SampledWidth  int            `json:"sampled_width"`
	SampledHeight int            `json:"sampled_height"`
}

// ExtractPalette finds the most common colours of an image.
//
// # Algorithm
//
//  1. Crop to opts.Region when set.
//  2. Downscale so the longer side is at most opts.MaxSize pixels, keeping the
//     aspect ratio (each side at least 1 pixel).
//  3. Quantize each channel to round(v/Step)*Step, clamped to 255, grouping
//     similar colours under one hex key.
//  4. Count pixels per key and sort by count (ties broken by hex so the
//     result is deterministic).
//  5. Optionally merge perceptually close colours (CIEDE2000).
//  6. Keep the first opts.Count colours.
//
// Fully transparent pixels are skipped. An image with no opaque pixels yields
// an empty palette.
func ExtractPalette(img image.Image, opts PaletteOptions) (*PaletteResult, error) {
	opts = opts.withDefaults()

	src := img
	if opts.Region != nil {
		if err := opts.Region.Within(img.Bounds()); err != nil {
			return nil, err
		}
		src = imaging.Crop(img, opts.Region.Rect())
	}

	src = downscale(src, opts.MaxSize)
	bounds := src.Bounds()

	counts := make(map[colormath.Hex]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			hex := colormath.RGBToHex(colormath.RGB{
				R: quantize(c.R, opts.Step),
				G: quantize(c.G, opts.Step),
				B: quantize(c.B, opts.Step),
			})
			counts[hex]++
			total++
		}
	}

	colors := make([]PaletteColor, 0, len(counts))
	for hex, n := range counts {
		colors = append(colors, PaletteColor{Hex: hex, Count: n})
	}
	sortByCount(colors)

	if opts.MergeDistance > 0 {
		var err error
		colors, err = mergeSimilar(colors, opts.MergeDistance)
		if err != nil {
			return nil, err
		}
	}

	if len(colors) > opts.Count {
		colors = colors[:opts.Count]
	}

	for i := range colors {
		rgb, err := colormath.HexToRGB(string(colors[i].Hex))
		if err != nil {
			return nil, err
		}
		colors[i].RGB = rgb
		colors[i].HSL = colormath.RGBToHSL(rgb)
		colors[i].Percentage = float64(colors[i].Count) / float64(total) * 100
	}

	return &PaletteResult{
		Colors:        colors,
		SampledWidth:  bounds.Dx(),
		SampledHeight: bounds.Dy(),
	}, nil
}

// downscale reduces img so neither side exceeds maxSize.
func downscale(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}

	scale := math.Min(float64(maxSize)/float64(w), float64(maxSize)/float64(h))
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return transform.Resize(img, nw, nh, transform.Linear)
}

func quantize(v uint8, step int) int {
	return int(math.Floor(float64(v)/float64(step)+0.5)) * step
}

func sortByCount(colors []PaletteColor) {
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Count != colors[j].Count {
			return colors[i].Count > colors[j].Count
		}
		return colors[i].Hex < colors[j].Hex
	})
}

// mergeSimilar folds each colour into the first more frequent colour within
// threshold. colors must already be sorted by count.
func mergeSimilar(colors []PaletteColor, threshold float64) ([]PaletteColor, error) {
	kept := make([]PaletteColor, 0, len(colors))
	keptLab := make([]colorful.Color, 0, len(colors))

	for _, c := range colors {
		cc, err := colorful.Hex(string(c.Hex))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", colormath.ErrInvalidColorFormat, err)
		}

		merged := false
		for i, k := range keptLab {
			if deltaE(cc, k) < threshold {
				kept[i].Count += c.Count
				merged = true
				break
			}
		}
		if !merged {
			kept = append(kept, c)
			keptLab = append(keptLab, cc)
		}
	}

	sortByCount(kept)
	return kept, nil
}

// deltaE is the CIEDE2000 difference on the 0-100 scale. go-colorful reports
// it on a 0-1 scale.
func deltaE(a, b colorful.Color) float64 {
	return a.DistanceCIEDE2000(b) * 100
}

// ColorDifference returns the CIEDE2000 difference between two hex colours
// on the 0-100 scale. Values below about 2.3 are hard to tell apart.
func ColorDifference(a, b string) (float64, error) {
	ca, err := toColorful(a)
	if err != nil {
		return 0, err
	}
	cb, err := toColorful(b)
	if err != nil {
		return 0, err
	}
	return deltaE(ca, cb), nil
}

func toColorful(s string) (colorful.Color, error) {
	hex, err := colormath.NormalizeHex(s)
	if err != nil {
		return colorful.Color{}, err
	}
	c, err := colorful.Hex(string(hex))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %v", colormath.ErrInvalidColorFormat, err)
	}
	return c, nil
}
