package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
	"github.com/ironsheep/color-tools-mcp/internal/imaging"
)

var (
	errUnknownTool      = errors.New("unknown tool")
	errInvalidArguments = errors.New("invalid arguments")
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "color_convert", "image_extract_palette").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Unknown tools and malformed arguments return -32602. Any other tool error
// returns -32000 with the error text as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	elapsed := time.Since(start)

	label := params.Name
	if errors.Is(err, errUnknownTool) {
		label = "unknown"
	}
	s.metrics.observe(label, elapsed, err)

	if err != nil {
		s.logger.Debug("tool call failed", "tool", params.Name, "duration", elapsed, "error", err)
		if errors.Is(err, errUnknownTool) || errors.Is(err, errInvalidArguments) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool call", "tool", params.Name, "duration", elapsed)

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Colour conversions
	case "color_validate":
		return s.handleColorValidate(args)
	case "color_normalize":
		return s.handleColorNormalize(args)
	case "color_convert":
		return s.handleColorConvert(args)
	case "color_from_rgb":
		return s.handleColorFromRGB(args)
	case "color_from_hsl":
		return s.handleColorFromHSL(args)
	case "color_format":
		return s.handleColorFormat(args)
	case "color_contrast":
		return s.handleColorContrast(args)

	// Images
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_extract_palette":
		return s.handleImageExtractPalette(args)
	case "image_grid_overlay":
		return s.handleImageGridOverlay(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "palette_swatch":
		return s.handlePaletteSwatch(args)

	// Workspace
	case "workspace_get":
		return s.handleWorkspaceGet(args)
	case "workspace_rename":
		return s.handleWorkspaceRename(args)
	case "folder_create":
		return s.handleFolderCreate(args)
	case "folder_update":
		return s.handleFolderUpdate(args)
	case "folder_delete":
		return s.handleFolderDelete(args)
	case "project_create":
		return s.handleProjectCreate(args)
	case "project_list":
		return s.handleProjectList(args)
	case "project_update":
		return s.handleProjectUpdate(args)
	case "project_move":
		return s.handleProjectMove(args)
	case "project_delete":
		return s.handleProjectDelete(args)
	case "color_add":
		return s.handleColorAdd(args)
	case "color_list":
		return s.handleColorList(args)
	case "color_update":
		return s.handleColorUpdate(args)
	case "color_delete":
		return s.handleColorDelete(args)
	case "color_reorder":
		return s.handleColorReorder(args)
	case "palette_export":
		return s.handlePaletteExport(args)

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as an empty
// object so tools with only optional fields can be called bare.
func decodeArgs(args json.RawMessage, v interface{}) error {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("{}")
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArguments, err)
	}
	return nil
}

func requireField(ok bool, name string) error {
	if !ok {
		return fmt.Errorf("%w: %s is required", errInvalidArguments, name)
	}
	return nil
}

// === Colour Handlers ===

type hexArgs struct {
	Hex string `json:"hex"`
}

type colorValidateResult struct {
	Hex   string `json:"hex"`
	Valid bool   `json:"valid"`
}

func (s *Server) handleColorValidate(args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return &colorValidateResult{Hex: a.Hex, Valid: colormath.IsValidHex(a.Hex)}, nil
}

func (s *Server) handleColorNormalize(args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	hex, err := colormath.NormalizeHex(a.Hex)
	if err != nil {
		return nil, err
	}
	return map[string]colormath.Hex{"hex": hex}, nil
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a hexArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return colormath.Describe(a.Hex)
}

type colorFromRGBArgs struct {
	R *int `json:"r"`
	G *int `json:"g"`
	B *int `json:"b"`
}

func (s *Server) handleColorFromRGB(args json.RawMessage) (interface{}, error) {
	var a colorFromRGBArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireField(a.R != nil && a.G != nil && a.B != nil, "r, g and b"); err != nil {
		return nil, err
	}
	for _, ch := range []struct {
		name string
		v    int
	}{{"r", *a.R}, {"g", *a.G}, {"b", *a.B}} {
		if ch.v < 0 || ch.v > 255 {
			return nil, fmt.Errorf("%s must be 0-255, got %d", ch.name, ch.v)
		}
	}
	hex := colormath.RGBToHex(colormath.RGB{R: *a.R, G: *a.G, B: *a.B})
	return colormath.Describe(string(hex))
}

type colorFromHSLArgs struct {
	H *int `json:"h"`
	S *int `json:"s"`
	L *int `json:"l"`
}

// handleColorFromHSL accepts any hue (it wraps around the wheel) but
// requires saturation and lightness in 0-100.
func (s *Server) handleColorFromHSL(args json.RawMessage) (interface{}, error) {
	var a colorFromHSLArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requireField(a.H != nil && a.S != nil && a.L != nil, "h, s and l"); err != nil {
		return nil, err
	}
	if *a.S < 0 || *a.S > 100 {
		return nil, fmt.Errorf("s must be 0-100, got %d", *a.S)
	}
	if *a.L < 0 || *a.L > 100 {
		return nil, fmt.Errorf("l must be 0-100, got %d", *a.L)
	}
	hex := colormath.HSLToHex(colormath.HSL{H: *a.H, S: *a.S, L: *a.L})
	return colormath.Describe(string(hex))
}

type colorFormatArgs struct {
	Hex    string `json:"hex"`
	Format string `json:"format"`
}

type colorFormatResult struct {
	Hex    colormath.Hex `json:"hex"`
	Format string        `json:"format"`
	Value  string        `json:"value"`
}

func (s *Server) handleColorFormat(args json.RawMessage) (interface{}, error) {
	var a colorFormatArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	format, err := colormath.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	hex, err := colormath.NormalizeHex(a.Hex)
	if err != nil {
		return nil, err
	}
	value, err := colormath.FormatColor(string(hex), format)
	if err != nil {
		return nil, err
	}
	return &colorFormatResult{Hex: hex, Format: format.String(), Value: value}, nil
}

type colorContrastArgs struct {
	Background string `json:"background"`
	Foreground string `json:"foreground,omitempty"`
}

// wcagResult reports which WCAG 2 levels a foreground/background pair meets.
type wcagResult struct {
	AA      bool `json:"aa"`
	AALarge bool `json:"aa_large"`
	AAA     bool `json:"aaa"`
}

type colorContrastResult struct {
	Background    colormath.Hex      `json:"background"`
	Luminance     float64            `json:"luminance"`
	TextColor     colormath.Contrast `json:"text_color"`
	Foreground    colormath.Hex      `json:"foreground,omitempty"`
	ContrastRatio float64            `json:"contrast_ratio,omitempty"`
	DeltaE        float64            `json:"delta_e,omitempty"`
	WCAG          *wcagResult        `json:"wcag,omitempty"`
}

func (s *Server) handleColorContrast(args json.RawMessage) (interface{}, error) {
	var a colorContrastArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	bg, err := colormath.NormalizeHex(a.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	bgRGB, err := colormath.HexToRGB(string(bg))
	if err != nil {
		return nil, err
	}
	text, err := colormath.ContrastColor(string(bg))
	if err != nil {
		return nil, err
	}

	result := &colorContrastResult{
		Background: bg,
		Luminance:  roundTo(colormath.Luminance(bgRGB), 4),
		TextColor:  text,
	}
	if a.Foreground == "" {
		return result, nil
	}

	fg, err := colormath.NormalizeHex(a.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}
	fgRGB, err := colormath.HexToRGB(string(fg))
	if err != nil {
		return nil, err
	}
	deltaE, err := imaging.ColorDifference(string(bg), string(fg))
	if err != nil {
		return nil, err
	}

	ratio := colormath.ContrastRatio(bgRGB, fgRGB)
	result.Foreground = fg
	result.ContrastRatio = roundTo(ratio, 2)
	result.DeltaE = roundTo(deltaE, 2)
	result.WCAG = &wcagResult{
		AA:      ratio >= 4.5,
		AALarge: ratio >= 3,
		AAA:     ratio >= 7,
	}
	return result, nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
