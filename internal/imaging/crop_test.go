package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// decodeResultPNG decodes a base64 PNG produced by this package.
func decodeResultPNG(t *testing.T, b64 string) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	return img
}

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := Crop(img, Region{X1: 10, Y1: 10, X2: 40, Y2: 30}, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 30 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	cropped := decodeResultPNG(t, result.ImageBase64)
	r, g, b, _ := cropped.At(5, 5).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("cropped pixel: got (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestCrop_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{0, 128, 255, 255})

	result, err := Crop(img, Region{X1: 0, Y1: 0, X2: 20, Y2: 10}, 2.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 40 || result.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 40x20", result.Width, result.Height)
	}
}

func TestCrop_InvalidRegions(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name   string
		region Region
	}{
		{"negative origin", Region{X1: -1, Y1: 0, X2: 10, Y2: 10}},
		{"past right edge", Region{X1: 90, Y1: 0, X2: 101, Y2: 10}},
		{"past bottom edge", Region{X1: 0, Y1: 90, X2: 10, Y2: 101}},
		{"empty width", Region{X1: 10, Y1: 10, X2: 10, Y2: 20}},
		{"inverted", Region{X1: 20, Y1: 20, X2: 10, Y2: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.region, 1.0); err == nil {
				t.Errorf("Crop should fail for %+v", tt.region)
			}
		})
	}
}

func TestCrop_ScaleTooSmall(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})
	if _, err := Crop(img, Region{X1: 0, Y1: 0, X2: 2, Y2: 2}, 0.1); err == nil {
		t.Error("Crop should fail when scaling collapses the region")
	}
}

func TestCrop_NonPositiveScale(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})
	for _, scale := range []float64{0, -1, -2.5} {
		if _, err := Crop(img, Region{X1: 0, Y1: 0, X2: 5, Y2: 5}, scale); err == nil {
			t.Errorf("Crop should reject scale %v", scale)
		}
	}
}
