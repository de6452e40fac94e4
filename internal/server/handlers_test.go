package server

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
	"github.com/ironsheep/color-tools-mcp/internal/palette"
)

func isUnknownTool(err error) bool {
	return errors.Is(err, errUnknownTool)
}

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool sends a tools/call request through handleRequest.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// callToolOK calls a tool, fails the test on an error response, and decodes
// the text content into v.
func callToolOK(t *testing.T, s *Server, name string, args interface{}, v interface{}) {
	t.Helper()

	resp := callTool(t, s, name, args)
	if resp.Error != nil {
		t.Fatalf("%s: unexpected error: %+v", name, resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("%s: result should be a map", name)
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("%s: unexpected content %#v", name, result["content"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("%s: failed to decode result %q: %v", name, text, err)
	}
}

func wantErrorCode(t *testing.T, resp *MCPResponse, code int) {
	t.Helper()
	if resp.Error == nil {
		t.Fatalf("expected error code %d, got result %+v", code, resp.Result)
	}
	if resp.Error.Code != code {
		t.Errorf("Error.Code: got %d, want %d (%v)", resp.Error.Code, code, resp.Error.Data)
	}
}

// === Colour tools ===

func TestHandleToolsCall_ColorConvert(t *testing.T) {
	s := newTestServer()

	var desc colormath.Description
	callToolOK(t, s, "color_convert", map[string]interface{}{"hex": "ff5733"}, &desc)

	if desc.Hex != "#FF5733" {
		t.Errorf("Hex: got %s, want #FF5733", desc.Hex)
	}
	if desc.RGB != (colormath.RGB{R: 255, G: 87, B: 51}) {
		t.Errorf("RGB: got %+v", desc.RGB)
	}
	if desc.HSL != (colormath.HSL{H: 11, S: 100, L: 60}) {
		t.Errorf("HSL: got %+v", desc.HSL)
	}
	if desc.CMYK != (colormath.CMYK{C: 0, M: 66, Y: 80, K: 0}) {
		t.Errorf("CMYK: got %+v", desc.CMYK)
	}
}

func TestHandleToolsCall_ColorConvertInvalid(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "color_convert", map[string]interface{}{"hex": "#12345"})
	wantErrorCode(t, resp, codeToolFailed)
}

func TestHandleToolsCall_ColorValidateAndNormalize(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		hex   string
		valid bool
	}{
		{"#FFF", true},
		{"abcdef", true},
		{"#GGG", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			var got colorValidateResult
			callToolOK(t, s, "color_validate", map[string]interface{}{"hex": tt.hex}, &got)
			if got.Valid != tt.valid {
				t.Errorf("valid: got %v, want %v", got.Valid, tt.valid)
			}
		})
	}

	var norm map[string]string
	callToolOK(t, s, "color_normalize", map[string]interface{}{"hex": "f53"}, &norm)
	if norm["hex"] != "#FF5533" {
		t.Errorf("normalize: got %s, want #FF5533", norm["hex"])
	}
}

func TestHandleToolsCall_ColorFromRGBAndHSL(t *testing.T) {
	s := newTestServer()

	var fromRGB colormath.Description
	callToolOK(t, s, "color_from_rgb", map[string]interface{}{"r": 51, "g": 102, "b": 204}, &fromRGB)
	if fromRGB.Hex != "#3366CC" {
		t.Errorf("from rgb: got %s, want #3366CC", fromRGB.Hex)
	}

	var fromHSL colormath.Description
	callToolOK(t, s, "color_from_hsl", map[string]interface{}{"h": 220, "s": 60, "l": 50}, &fromHSL)
	if fromHSL.Hex != "#3366CC" {
		t.Errorf("from hsl: got %s, want #3366CC", fromHSL.Hex)
	}

	wantErrorCode(t, callTool(t, s, "color_from_rgb", map[string]interface{}{"r": 256, "g": 0, "b": 0}), codeToolFailed)
	wantErrorCode(t, callTool(t, s, "color_from_rgb", map[string]interface{}{"r": 1}), codeInvalidParams)
	wantErrorCode(t, callTool(t, s, "color_from_hsl", map[string]interface{}{"h": 0, "s": 120, "l": 50}), codeToolFailed)
}

func TestHandleToolsCall_ColorFormat(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		format string
		want   string
	}{
		{"", "#FF5733"},
		{"hex", "#FF5733"},
		{"rgb", "rgb(255, 87, 51)"},
		{"HSL", "hsl(11, 100%, 60%)"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var got colorFormatResult
			callToolOK(t, s, "color_format", map[string]interface{}{"hex": "#ff5733", "format": tt.format}, &got)
			if got.Value != tt.want {
				t.Errorf("value: got %q, want %q", got.Value, tt.want)
			}
		})
	}

	wantErrorCode(t, callTool(t, s, "color_format", map[string]interface{}{"hex": "#FFF", "format": "cmyk"}), codeToolFailed)
}

func TestHandleToolsCall_ColorContrast(t *testing.T) {
	s := newTestServer()

	var bgOnly colorContrastResult
	callToolOK(t, s, "color_contrast", map[string]interface{}{"background": "#FFFFFF"}, &bgOnly)
	if bgOnly.TextColor != colormath.ContrastDark {
		t.Errorf("text on white: got %s, want dark", bgOnly.TextColor)
	}
	if bgOnly.Luminance != 1 {
		t.Errorf("luminance of white: got %f, want 1", bgOnly.Luminance)
	}
	if bgOnly.WCAG != nil {
		t.Error("WCAG should be omitted without a foreground")
	}

	var pair colorContrastResult
	callToolOK(t, s, "color_contrast", map[string]interface{}{"background": "#FFF", "foreground": "#000"}, &pair)
	if pair.ContrastRatio != 21 {
		t.Errorf("contrast ratio: got %f, want 21", pair.ContrastRatio)
	}
	if pair.WCAG == nil || !pair.WCAG.AAA {
		t.Errorf("black on white should pass AAA: %+v", pair.WCAG)
	}
	if pair.DeltaE < 99 {
		t.Errorf("delta_e black/white: got %f, want about 100", pair.DeltaE)
	}

	wantErrorCode(t, callTool(t, s, "color_contrast", map[string]interface{}{"background": "#FFF", "foreground": "nope"}), codeToolFailed)
}

// === Image tools ===

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	callToolOK(t, s, "image_load", map[string]interface{}{"path": imgPath}, &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}

	wantErrorCode(t, callTool(t, s, "image_load", map[string]interface{}{}), codeInvalidParams)
	wantErrorCode(t, callTool(t, s, "image_load", map[string]interface{}{"path": "/nonexistent/x.png"}), codeToolFailed)
}

func TestHandleToolsCall_ImageSampleColor(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{51, 102, 204, 255})

	var sample struct {
		Hex   string `json:"hex"`
		Alpha int    `json:"alpha"`
	}
	callToolOK(t, s, "image_sample_color", map[string]interface{}{"path": imgPath, "x": 5, "y": 5}, &sample)
	if sample.Hex != "#3366CC" {
		t.Errorf("hex: got %s, want #3366CC", sample.Hex)
	}
	if sample.Alpha != 255 {
		t.Errorf("alpha: got %d, want 255", sample.Alpha)
	}

	wantErrorCode(t, callTool(t, s, "image_sample_color", map[string]interface{}{"path": imgPath, "x": 50, "y": 5}), codeToolFailed)
}

func TestHandleToolsCall_ImageSampleColorsMulti(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{0, 255, 0, 255})

	var result struct {
		Samples []struct {
			Label string `json:"label"`
			Hex   string `json:"hex"`
		} `json:"samples"`
	}
	callToolOK(t, s, "image_sample_colors_multi", map[string]interface{}{
		"path": imgPath,
		"points": []map[string]interface{}{
			{"x": 0, "y": 0, "label": "corner"},
			{"x": 9, "y": 9},
		},
	}, &result)

	if len(result.Samples) != 2 {
		t.Fatalf("samples: got %d, want 2", len(result.Samples))
	}
	if result.Samples[0].Label != "corner" || result.Samples[0].Hex != "#00FF00" {
		t.Errorf("first sample: got %+v", result.Samples[0])
	}
}

func TestHandleToolsCall_ImageExtractPalette(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 40, 40, color.RGBA{128, 128, 128, 255})

	var result struct {
		Colors []struct {
			Hex        string  `json:"hex"`
			Percentage float64 `json:"percentage"`
		} `json:"colors"`
	}
	callToolOK(t, s, "image_extract_palette", map[string]interface{}{"path": imgPath}, &result)

	if len(result.Colors) != 1 {
		t.Fatalf("colors: got %d, want 1", len(result.Colors))
	}
	if result.Colors[0].Hex != "#808080" || result.Colors[0].Percentage != 100 {
		t.Errorf("color: got %+v, want #808080 at 100%%", result.Colors[0])
	}
}

func TestHandleToolsCall_ImageGridOverlayAndCrop(t *testing.T) {
	s := newTestServer()
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{255, 255, 255, 255})

	var grid struct {
		Width       int    `json:"width"`
		GridSpacing int    `json:"grid_spacing"`
		ImageBase64 string `json:"image_base64"`
	}
	callToolOK(t, s, "image_grid_overlay", map[string]interface{}{"path": imgPath}, &grid)
	if grid.GridSpacing != 50 || grid.Width != 100 || grid.ImageBase64 == "" {
		t.Errorf("grid overlay: got %+v", grid)
	}

	var crop struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	callToolOK(t, s, "image_crop", map[string]interface{}{"path": imgPath, "region": "top-left", "scale": 2}, &crop)
	if crop.Width != 100 || crop.Height != 100 {
		t.Errorf("named crop at 2x: got %dx%d, want 100x100", crop.Width, crop.Height)
	}
	wantErrorCode(t, callTool(t, s, "image_crop", map[string]interface{}{"path": imgPath, "region": "top-left", "scale": -2}), codeToolFailed)

	callToolOK(t, s, "image_crop", map[string]interface{}{"path": imgPath, "x1": 10, "y1": 10, "x2": 30, "y2": 20}, &crop)
	if crop.Width != 20 || crop.Height != 10 {
		t.Errorf("crop: got %dx%d, want 20x10", crop.Width, crop.Height)
	}

	wantErrorCode(t, callTool(t, s, "image_crop", map[string]interface{}{"path": imgPath, "region": "middle-ish"}), codeToolFailed)
}

func TestHandleToolsCall_PaletteSwatch(t *testing.T) {
	s := newTestServer()

	var swatch struct {
		Width  int      `json:"width"`
		Colors []string `json:"colors"`
	}
	callToolOK(t, s, "palette_swatch", map[string]interface{}{"colors": []string{"#F00", "#0F0"}, "cell_size": 8}, &swatch)
	if swatch.Width != 16 || len(swatch.Colors) != 2 {
		t.Errorf("swatch: got %+v", swatch)
	}

	wantErrorCode(t, callTool(t, s, "palette_swatch", map[string]interface{}{"colors": []string{}}), codeToolFailed)
}

// === Workspace tools ===

func TestHandleToolsCall_WorkspaceFlow(t *testing.T) {
	s := newTestServer()

	var folder palette.Folder
	callToolOK(t, s, "folder_create", map[string]interface{}{"name": "Clients"}, &folder)

	var project palette.Project
	callToolOK(t, s, "project_create", map[string]interface{}{"name": "Acme", "folder_id": folder.ID}, &project)
	if project.FolderID == nil || *project.FolderID != folder.ID {
		t.Fatalf("project folder: got %v, want %s", project.FolderID, folder.ID)
	}

	var red, blue palette.Color
	callToolOK(t, s, "color_add", map[string]interface{}{"project_id": project.ID, "hex": "f00", "name": "Red"}, &red)
	callToolOK(t, s, "color_add", map[string]interface{}{"project_id": project.ID, "hex": "#0000ff", "source": "picker"}, &blue)
	if red.Source != palette.SourceManual {
		t.Errorf("default source: got %s, want manual", red.Source)
	}
	if red.Position != 0 || blue.Position != 1 {
		t.Errorf("positions: got %d,%d want 0,1", red.Position, blue.Position)
	}

	var reordered struct {
		Colors []palette.Color `json:"colors"`
	}
	callToolOK(t, s, "color_reorder", map[string]interface{}{"project_id": project.ID, "color_ids": []string{blue.ID, red.ID}}, &reordered)
	if len(reordered.Colors) != 2 || reordered.Colors[0].ID != blue.ID {
		t.Errorf("reorder: got %+v", reordered.Colors)
	}

	var updated palette.Color
	callToolOK(t, s, "color_update", map[string]interface{}{"id": red.ID, "hex": "#00FF00"}, &updated)
	if updated.Hex != "#00FF00" || updated.RGB != (colormath.RGB{G: 255}) || updated.Name != "Red" {
		t.Errorf("update: got %+v", updated)
	}

	var exported paletteExportResult
	callToolOK(t, s, "palette_export", map[string]interface{}{"project_id": project.ID, "format": "css"}, &exported)
	if !strings.Contains(exported.Content, "--acme-1: #0000FF;") || !strings.Contains(exported.Content, "--acme-2: #00FF00;") {
		t.Errorf("css export: got %q", exported.Content)
	}

	var moved palette.Project
	callToolOK(t, s, "project_move", map[string]interface{}{"id": project.ID}, &moved)
	if moved.FolderID != nil {
		t.Errorf("move to root: folder still %v", *moved.FolderID)
	}

	var rootProjects struct {
		Projects []palette.Project `json:"projects"`
	}
	callToolOK(t, s, "project_list", map[string]interface{}{}, &rootProjects)
	if len(rootProjects.Projects) != 1 {
		t.Errorf("root projects: got %d, want 1", len(rootProjects.Projects))
	}

	var deleted deletedResult
	callToolOK(t, s, "color_delete", map[string]interface{}{"id": blue.ID}, &deleted)
	callToolOK(t, s, "folder_delete", map[string]interface{}{"id": folder.ID}, &deleted)

	var ws workspaceResult
	callToolOK(t, s, "workspace_get", nil, &ws)
	if ws.Workspace.Name != "Test Workspace" || len(ws.Folders) != 0 || len(ws.Projects) != 1 {
		t.Errorf("workspace: got %+v", ws)
	}

	callToolOK(t, s, "project_delete", map[string]interface{}{"id": project.ID}, &deleted)
	wantErrorCode(t, callTool(t, s, "color_list", map[string]interface{}{"project_id": project.ID}), codeToolFailed)
}

func TestHandleToolsCall_UpdateTools(t *testing.T) {
	s := newTestServer()

	var ws palette.Workspace
	callToolOK(t, s, "workspace_rename", map[string]interface{}{"name": "  Studio  "}, &ws)
	if ws.Name != "Studio" {
		t.Errorf("workspace name: got %q, want Studio", ws.Name)
	}

	var parent, child palette.Folder
	callToolOK(t, s, "folder_create", map[string]interface{}{"name": "Brand"}, &parent)
	callToolOK(t, s, "folder_create", map[string]interface{}{"name": "Dark"}, &child)

	var folder palette.Folder
	callToolOK(t, s, "folder_update", map[string]interface{}{"id": child.ID, "name": "Dark mode", "icon": "moon", "parent_id": parent.ID}, &folder)
	if folder.Name != "Dark mode" || folder.Icon != "moon" || folder.ParentID == nil || *folder.ParentID != parent.ID {
		t.Errorf("folder update: got %+v", folder)
	}

	resp := callTool(t, s, "folder_update", map[string]interface{}{"id": parent.ID, "parent_id": child.ID})
	wantErrorCode(t, resp, codeToolFailed)
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "inside itself") {
		t.Errorf("cycle error data: got %q", data)
	}

	var project palette.Project
	callToolOK(t, s, "project_create", map[string]interface{}{"name": "Acme", "folder_id": parent.ID}, &project)
	var renamed palette.Project
	callToolOK(t, s, "project_update", map[string]interface{}{"id": project.ID, "name": "Acme Web", "description": "Site palette", "folder_id": ""}, &renamed)
	if renamed.Name != "Acme Web" || renamed.Description != "Site palette" || renamed.FolderID != nil {
		t.Errorf("project update: got %+v", renamed)
	}

	var added, moved palette.Color
	callToolOK(t, s, "color_add", map[string]interface{}{"project_id": project.ID, "hex": "#123456"}, &added)
	callToolOK(t, s, "color_update", map[string]interface{}{"id": added.ID, "position": 4}, &moved)
	if moved.Position != 4 || moved.Hex != "#123456" {
		t.Errorf("color position update: got %+v", moved)
	}

	tests := []struct {
		name string
		tool string
		args map[string]interface{}
	}{
		{"blank workspace name", "workspace_rename", map[string]interface{}{"name": " "}},
		{"unknown folder", "folder_update", map[string]interface{}{"id": "folder_999", "name": "X"}},
		{"long folder name", "folder_update", map[string]interface{}{"id": parent.ID, "name": strings.Repeat("a", 101)}},
		{"unknown parent", "folder_update", map[string]interface{}{"id": parent.ID, "parent_id": "folder_999"}},
		{"negative position", "project_update", map[string]interface{}{"id": project.ID, "position": -1}},
		{"long description", "project_update", map[string]interface{}{"id": project.ID, "description": strings.Repeat("d", 501)}},
		{"unknown project folder", "project_update", map[string]interface{}{"id": project.ID, "folder_id": "folder_999"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantErrorCode(t, callTool(t, s, tt.tool, tt.args), codeToolFailed)
		})
	}
}

func TestHandleToolsCall_WorkspaceValidation(t *testing.T) {
	s := newTestServer()

	resp := callTool(t, s, "project_create", map[string]interface{}{"name": "   "})
	wantErrorCode(t, resp, codeToolFailed)
	if data, _ := resp.Error.Data.(string); !strings.Contains(data, "Project name is required") {
		t.Errorf("error data: got %q", data)
	}

	wantErrorCode(t, callTool(t, s, "color_add", map[string]interface{}{"project_id": "project_999", "hex": "#FFF"}), codeToolFailed)
	wantErrorCode(t, callTool(t, s, "palette_export", map[string]interface{}{"project_id": "x", "format": "pdf"}), codeToolFailed)
}

// === Dispatch and metrics ===

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer()
	wantErrorCode(t, callTool(t, s, "image_ocr_full", map[string]interface{}{}), codeInvalidParams)
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer()

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: json.RawMessage(`"not an object"`)})
	wantErrorCode(t, resp, codeInvalidParams)

	resp = s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      2,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"color_convert","arguments":{"hex":42}}`),
	})
	wantErrorCode(t, resp, codeInvalidParams)
}

func TestHandleToolsCall_Metrics(t *testing.T) {
	s := newTestServer()

	callTool(t, s, "color_convert", map[string]interface{}{"hex": "#FFF"})
	callTool(t, s, "color_convert", map[string]interface{}{"hex": "#FFF"})
	callTool(t, s, "color_convert", map[string]interface{}{"hex": "bad"})
	callTool(t, s, "no_such_tool", map[string]interface{}{})

	if got := testutil.ToFloat64(s.metrics.ToolCalls.WithLabelValues("color_convert", "ok")); got != 2 {
		t.Errorf("ok calls: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(s.metrics.ToolCalls.WithLabelValues("color_convert", "error")); got != 1 {
		t.Errorf("error calls: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(s.metrics.ToolCalls.WithLabelValues("unknown", "error")); got != 1 {
		t.Errorf("unknown tool calls: got %v, want 1", got)
	}
	if got := testutil.CollectAndCount(s.metrics.ToolDuration); got != 2 {
		t.Errorf("duration series: got %d, want 2", got)
	}
}
