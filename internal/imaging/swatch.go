package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
)

// DefaultSwatchCellSize is the edge length of one swatch cell in pixels.
const DefaultSwatchCellSize = 64

const maxSwatchCellSize = 512

// SwatchResult contains a rendered palette strip encoded as base64 PNG.
type SwatchResult struct {
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Colors      []colormath.Hex `json:"colors"`
	ImageBase64 string          `json:"image_base64"`
	MimeType    string          `json:"mime_type"`
}

// RenderSwatch draws one square cell per colour, left to right.
//
// Parameters:
//   - hexes: Colours to draw, in any form NormalizeHex accepts.
//   - cellSize: Edge length of each cell. Zero selects DefaultSwatchCellSize.
//
// Returns an error wrapping colormath.ErrInvalidColorFormat for a bad colour,
// or a plain error for an empty list or out-of-range cell size.
func RenderSwatch(hexes []string, cellSize int) (*SwatchResult, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("swatch needs at least one color")
	}
	if cellSize == 0 {
		cellSize = DefaultSwatchCellSize
	}
	if cellSize < 1 || cellSize > maxSwatchCellSize {
		return nil, fmt.Errorf("cell size %d out of range 1-%d", cellSize, maxSwatchCellSize)
	}

	normalized := make([]colormath.Hex, len(hexes))
	for i, h := range hexes {
		hex, err := colormath.NormalizeHex(h)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		normalized[i] = hex
	}

	canvas := imaging.New(cellSize*len(normalized), cellSize, color.NRGBA{})
	for i, hex := range normalized {
		rgb, err := colormath.HexToRGB(string(hex))
		if err != nil {
			return nil, err
		}
		cell := imaging.New(cellSize, cellSize, color.NRGBA{R: uint8(rgb.R), G: uint8(rgb.G), B: uint8(rgb.B), A: 255})
		canvas = imaging.Paste(canvas, cell, image.Pt(i*cellSize, 0))
	}

	encoded, err := encodePNG(canvas)
	if err != nil {
		return nil, err
	}

	return &SwatchResult{
		Width:       canvas.Bounds().Dx(),
		Height:      canvas.Bounds().Dy(),
		Colors:      normalized,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}
