package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func propDefault(typ, description string, def interface{}) map[string]interface{} {
	p := prop(typ, description)
	p["default"] = def
	return p
}

var (
	hexProp  = prop("string", "Colour as hex: #RRGGBB, RRGGBB, #RGB or RGB (case-insensitive)")
	pathProp = prop("string", "Absolute path to the image file")
	idProp   = prop("string", "Record id")

	positionProp = prop("integer", "Position among siblings, 0 or greater")
)

var regionProp = map[string]interface{}{
	"type":        "object",
	"description": "Optional region to restrict to (x2, y2 exclusive)",
	"properties": map[string]interface{}{
		"x1": prop("integer", "Left edge"),
		"y1": prop("integer", "Top edge"),
		"x2": prop("integer", "Right edge (exclusive)"),
		"y2": prop("integer", "Bottom edge (exclusive)"),
	},
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Colour conversions
		{
			Name:        "color_validate",
			Description: "Check whether a string is a valid hex colour (3 or 6 hex digits, optional leading #).",
			InputSchema: objectSchema(map[string]interface{}{"hex": hexProp}, "hex"),
		},
		{
			Name:        "color_normalize",
			Description: "Normalize a hex colour to uppercase #RRGGBB, expanding 3-digit shorthand.",
			InputSchema: objectSchema(map[string]interface{}{"hex": hexProp}, "hex"),
		},
		{
			Name:        "color_convert",
			Description: "Return every representation of a hex colour: normalized hex, RGB, HSL, CMYK, CSS strings, relative luminance and the readable text colour (light or dark).",
			InputSchema: objectSchema(map[string]interface{}{"hex": hexProp}, "hex"),
		},
		{
			Name:        "color_from_rgb",
			Description: "Build a colour from RGB channels (0-255) and return every representation.",
			InputSchema: objectSchema(map[string]interface{}{
				"r": prop("integer", "Red 0-255"),
				"g": prop("integer", "Green 0-255"),
				"b": prop("integer", "Blue 0-255"),
			}, "r", "g", "b"),
		},
		{
			Name:        "color_from_hsl",
			Description: "Build a colour from HSL (hue in degrees, saturation and lightness in percent) and return every representation.",
			InputSchema: objectSchema(map[string]interface{}{
				"h": prop("integer", "Hue in degrees; wraps around 360"),
				"s": prop("integer", "Saturation 0-100"),
				"l": prop("integer", "Lightness 0-100"),
			}, "h", "s", "l"),
		},
		{
			Name:        "color_format",
			Description: "Format a hex colour as hex (#RRGGBB), rgb (rgb(r, g, b)) or hsl (hsl(h, s%, l%)).",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": hexProp,
				"format": map[string]interface{}{
					"type":        "string",
					"description": "Output format",
					"enum":        []string{"hex", "rgb", "hsl"},
					"default":     "hex",
				},
			}, "hex"),
		},
		{
			Name:        "color_contrast",
			Description: "Pick light or dark text for a background colour. With a foreground, also return the WCAG contrast ratio, AA/AAA results and the CIEDE2000 colour difference.",
			InputSchema: objectSchema(map[string]interface{}{
				"background": prop("string", "Background colour as hex"),
				"foreground": prop("string", "Optional foreground colour as hex"),
			}, "background"),
		},

		// Images
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, file size and whether it has transparency. The image is cached for later calls.",
			InputSchema: objectSchema(map[string]interface{}{"path": pathProp}, "path"),
		},
		{
			Name:        "image_sample_color",
			Description: "Eyedropper: get the exact colour of one pixel as hex, RGB, HSL and CMYK, plus its alpha.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
				"x":    prop("integer", "X coordinate (0-based)"),
				"y":    prop("integer", "Y coordinate (0-based)"),
			}, "path", "x", "y"),
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Eyedropper for several points at once, each with an optional label.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
				"points": map[string]interface{}{
					"type":        "array",
					"description": "Points to sample",
					"items": objectSchema(map[string]interface{}{
						"x":     prop("integer", "X coordinate"),
						"y":     prop("integer", "Y coordinate"),
						"label": prop("string", "Optional label such as 'button_background'"),
					}, "x", "y"),
				},
			}, "path", "points"),
		},
		{
			Name:        "image_extract_palette",
			Description: "Extract the most frequent colours of an image. The image is downscaled, channels are quantized, and near-duplicate colours can be merged by CIEDE2000 distance.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":           pathProp,
				"count":          prop("integer", "Maximum number of colours (server default 12)"),
				"max_size":       prop("integer", "Longest side in pixels to downscale to before counting (server default 100)"),
				"step":           prop("integer", "Quantization step per channel (server default 32)"),
				"merge_distance": propDefault("number", "Merge colours closer than this CIEDE2000 distance (0-100 scale); 0 disables", 0),
				"region":         regionProp,
			}, "path"),
		},
		{
			Name:        "image_grid_overlay",
			Description: "Return the image with a coordinate grid overlay to help choose eyedropper points.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":             pathProp,
				"grid_spacing":     propDefault("integer", "Pixels between grid lines", 50),
				"show_coordinates": propDefault("boolean", "Label grid intersections with coordinates", true),
				"grid_color":       propDefault("string", "Grid line colour as hex", "#FF0000"),
				"opacity":          propDefault("integer", "Grid opacity in percent 0-100", 50),
			}, "path"),
		},
		{
			Name:        "image_crop",
			Description: "Crop a region (by coordinates or by name: top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center) and return it as base64 PNG. Use it to zoom in before sampling.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":   pathProp,
				"x1":     prop("integer", "Left edge X coordinate (0-based)"),
				"y1":     prop("integer", "Top edge Y coordinate (0-based)"),
				"x2":     prop("integer", "Right edge X coordinate (exclusive)"),
				"y2":     prop("integer", "Bottom edge Y coordinate (exclusive)"),
				"region": prop("string", "Named region; overrides the coordinates when set"),
				"scale":  propDefault("number", "Scale factor (e.g. 2.0 to double size)", 1.0),
			}, "path"),
		},
		{
			Name:        "palette_swatch",
			Description: "Render a row of colour swatches as base64 PNG.",
			InputSchema: objectSchema(map[string]interface{}{
				"colors": map[string]interface{}{
					"type":        "array",
					"description": "Hex colours, left to right",
					"items":       map[string]interface{}{"type": "string"},
				},
				"cell_size": propDefault("integer", "Edge length of each swatch in pixels (max 512)", 64),
			}, "colors"),
		},

		// Workspace
		{
			Name:        "workspace_get",
			Description: "Return the workspace with all of its folders and projects.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "workspace_rename",
			Description: "Rename the workspace.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": prop("string", "Workspace name, 1-100 characters"),
			}, "name"),
		},
		{
			Name:        "folder_create",
			Description: "Create a folder at the workspace root or inside another folder.",
			InputSchema: objectSchema(map[string]interface{}{
				"name":      prop("string", "Folder name, 1-100 characters"),
				"parent_id": prop("string", "Optional parent folder id"),
				"icon":      prop("string", "Optional icon name"),
			}, "name"),
		},
		{
			Name:        "folder_update",
			Description: "Rename a folder, change its icon, move it under another folder or set its position. Omitted fields are unchanged.",
			InputSchema: objectSchema(map[string]interface{}{
				"id":        idProp,
				"name":      prop("string", "New name, 1-100 characters"),
				"icon":      prop("string", "New icon name"),
				"parent_id": prop("string", "New parent folder id, or \"\" for the workspace root"),
				"position":  positionProp,
			}, "id"),
		},
		{
			Name:        "folder_delete",
			Description: "Delete a folder and its sub-folders. Projects inside move to the workspace root.",
			InputSchema: objectSchema(map[string]interface{}{"id": idProp}, "id"),
		},
		{
			Name:        "project_create",
			Description: "Create a project at the workspace root or inside a folder.",
			InputSchema: objectSchema(map[string]interface{}{
				"name":        prop("string", "Project name, 1-100 characters"),
				"folder_id":   prop("string", "Optional folder id"),
				"description": prop("string", "Optional description, up to 500 characters"),
			}, "name"),
		},
		{
			Name:        "project_list",
			Description: "List the projects in a folder, or at the workspace root when folder_id is omitted, in order.",
			InputSchema: objectSchema(map[string]interface{}{
				"folder_id": prop("string", "Optional folder id"),
			}),
		},
		{
			Name:        "project_update",
			Description: "Rename a project, edit its description, move it to another folder or set its position. Omitted fields are unchanged.",
			InputSchema: objectSchema(map[string]interface{}{
				"id":          idProp,
				"name":        prop("string", "New name, 1-100 characters"),
				"description": prop("string", "New description, up to 500 characters"),
				"folder_id":   prop("string", "New folder id, or \"\" for the workspace root"),
				"position":    positionProp,
			}, "id"),
		},
		{
			Name:        "project_move",
			Description: "Move a project to the end of a folder, or to the workspace root when folder_id is omitted.",
			InputSchema: objectSchema(map[string]interface{}{
				"id":        idProp,
				"folder_id": prop("string", "Target folder id"),
			}, "id"),
		},
		{
			Name:        "project_delete",
			Description: "Delete a project and all of its colours.",
			InputSchema: objectSchema(map[string]interface{}{"id": idProp}, "id"),
		},
		{
			Name:        "color_add",
			Description: "Add a colour to the end of a project. RGB and HSL are derived from the hex.",
			InputSchema: objectSchema(map[string]interface{}{
				"project_id": prop("string", "Project id"),
				"hex":        hexProp,
				"name":       prop("string", "Optional name, up to 50 characters"),
				"notes":      prop("string", "Optional notes, up to 500 characters"),
				"source": map[string]interface{}{
					"type":        "string",
					"description": "How the colour was picked",
					"enum":        []string{"picker", "image", "manual"},
					"default":     "manual",
				},
			}, "project_id", "hex"),
		},
		{
			Name:        "color_list",
			Description: "List a project's colours in order.",
			InputSchema: objectSchema(map[string]interface{}{
				"project_id": prop("string", "Project id"),
			}, "project_id"),
		},
		{
			Name:        "color_update",
			Description: "Change a colour's hex, name, notes or position. A new hex re-derives RGB and HSL.",
			InputSchema: objectSchema(map[string]interface{}{
				"id":       idProp,
				"hex":      hexProp,
				"name":     prop("string", "New name"),
				"notes":    prop("string", "New notes"),
				"position": positionProp,
			}, "id"),
		},
		{
			Name:        "color_delete",
			Description: "Delete a colour.",
			InputSchema: objectSchema(map[string]interface{}{"id": idProp}, "id"),
		},
		{
			Name:        "color_reorder",
			Description: "Reorder a project's colours. Each listed colour takes its index as position; unlisted colours follow in their current order.",
			InputSchema: objectSchema(map[string]interface{}{
				"project_id": prop("string", "Project id"),
				"color_ids": map[string]interface{}{
					"type":        "array",
					"description": "Colour ids in the new order",
					"items":       map[string]interface{}{"type": "string"},
				},
			}, "project_id", "color_ids"),
		},
		{
			Name:        "palette_export",
			Description: "Export a project's colours as JSON, YAML or CSS custom properties.",
			InputSchema: objectSchema(map[string]interface{}{
				"project_id": prop("string", "Project id"),
				"format": map[string]interface{}{
					"type":        "string",
					"description": "Export format",
					"enum":        []string{"json", "yaml", "css"},
					"default":     "json",
				},
			}, "project_id"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
