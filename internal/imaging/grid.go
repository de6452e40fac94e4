package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
)

// GridOverlayResult contains the image with grid overlay
type GridOverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	GridSpacing int    `json:"grid_spacing"`
}

// GridOverlay draws a coordinate grid over an image so a client can read off
// the coordinates to pass to the eyedropper.
//
// gridHex is any colour NormalizeHex accepts and opacity is 0-100 percent.
// Coordinate labels are drawn on the grid colour with light or dark text,
// whichever ContrastColor picks for it.
func GridOverlay(img image.Image, gridSpacing int, showCoordinates bool, gridHex string, opacity int) (*GridOverlayResult, error) {
	if gridSpacing < 1 {
		return nil, fmt.Errorf("grid spacing must be positive, got %d", gridSpacing)
	}
	if opacity < 0 || opacity > 100 {
		return nil, fmt.Errorf("opacity must be 0-100, got %d", opacity)
	}

	rgb, err := colormath.HexToRGB(gridHex)
	if err != nil {
		return nil, err
	}
	alpha := uint8((opacity*255 + 50) / 100)
	line := &image.Uniform{C: color.NRGBA{R: uint8(rgb.R), G: uint8(rgb.G), B: uint8(rgb.B), A: alpha}}

	result := imaging.Clone(img)
	bounds := result.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	for x := gridSpacing; x < width; x += gridSpacing {
		draw.Draw(result, image.Rect(x, 0, x+1, height), line, image.Point{}, draw.Over)
	}
	for y := gridSpacing; y < height; y += gridSpacing {
		draw.Draw(result, image.Rect(0, y, width, y+1), line, image.Point{}, draw.Over)
	}

	if showCoordinates {
		fg := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		if contrast, _ := colormath.ContrastColor(gridHex); contrast == colormath.ContrastDark {
			fg = color.NRGBA{A: 255}
		}
		bg := color.NRGBA{R: uint8(rgb.R), G: uint8(rgb.G), B: uint8(rgb.B), A: 255}

		for y := gridSpacing; y < height; y += gridSpacing {
			for x := gridSpacing; x < width; x += gridSpacing {
				drawLabel(result, x+2, y+2, fmt.Sprintf("%d,%d", x, y), fg, bg)
			}
		}
	}

	encoded, err := encodePNG(result)
	if err != nil {
		return nil, err
	}

	return &GridOverlayResult{
		Width:       width,
		Height:      height,
		ImageBase64: encoded,
		MimeType:    "image/png",
		GridSpacing: gridSpacing,
	}, nil
}

// glyphs is a 3x5 pixel font covering grid coordinates.
var glyphs = map[rune][5]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	const charWidth = 4
	const labelHeight = 7

	box := image.Rect(x-1, y-1, x+len(text)*charWidth, y+labelHeight).Intersect(img.Bounds())
	draw.Draw(img, box, &image.Uniform{C: bg}, image.Point{}, draw.Src)

	cx := x
	for _, ch := range text {
		if glyph, ok := glyphs[ch]; ok {
			for row, bits := range glyph {
				for col, bit := range bits {
					p := image.Pt(cx+col, y+row)
					if bit == '1' && p.In(img.Bounds()) {
						img.SetNRGBA(p.X, p.Y, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
