package server

import (
	"encoding/json"

	"github.com/ironsheep/color-tools-mcp/internal/imaging"
)

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireField(a.Path != "", "path"); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireField(len(a.Points) > 0, "points"); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

type imageExtractPaletteArgs struct {
	Path          string          `json:"path"`
	Count         int             `json:"count"`
	MaxSize       int             `json:"max_size"`
	Step          int             `json:"step"`
	MergeDistance float64         `json:"merge_distance"`
	Region        *imaging.Region `json:"region,omitempty"`
}

// handleImageExtractPalette fills unset options from the server config.
func (s *Server) handleImageExtractPalette(args json.RawMessage) (interface{}, error) {
	var a imageExtractPaletteArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = s.cfg.PaletteCount
	}
	if a.MaxSize == 0 {
		a.MaxSize = s.cfg.PaletteMaxSize
	}
	if a.Step == 0 {
		a.Step = s.cfg.PaletteStep
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ExtractPalette(img, imaging.PaletteOptions{
		Count:         a.Count,
		MaxSize:       a.MaxSize,
		Step:          a.Step,
		Region:        a.Region,
		MergeDistance: a.MergeDistance,
	})
}

type imageGridOverlayArgs struct {
	Path            string `json:"path"`
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates *bool  `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
	Opacity         *int   `json:"opacity"`
}

func (s *Server) handleImageGridOverlay(args json.RawMessage) (interface{}, error) {
	var a imageGridOverlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = 50
	}
	if a.GridColor == "" {
		a.GridColor = "#FF0000"
	}
	showCoordinates := true
	if a.ShowCoordinates != nil {
		showCoordinates = *a.ShowCoordinates
	}
	opacity := 50
	if a.Opacity != nil {
		opacity = *a.Opacity
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.GridOverlay(img, a.GridSpacing, showCoordinates, a.GridColor, opacity)
}

type imageCropArgs struct {
	Path   string  `json:"path"`
	X1     int     `json:"x1"`
	Y1     int     `json:"y1"`
	X2     int     `json:"x2"`
	Y2     int     `json:"y2"`
	Region string  `json:"region,omitempty"`
	Scale  float64 `json:"scale"`
}

// handleImageCrop crops either explicit coordinates or, when region is set,
// a named region such as "top-left" or "center".
func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	region := imaging.Region{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2}
	if a.Region != "" {
		if region, err = imaging.NamedRegion(img.Bounds(), a.Region); err != nil {
			return nil, err
		}
	}
	return imaging.Crop(img, region, a.Scale)
}

type paletteSwatchArgs struct {
	Colors   []string `json:"colors"`
	CellSize int      `json:"cell_size"`
}

func (s *Server) handlePaletteSwatch(args json.RawMessage) (interface{}, error) {
	var a paletteSwatchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.RenderSwatch(a.Colors, a.CellSize)
}
