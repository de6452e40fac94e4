// Package server implements the MCP (Model Context Protocol) server for the colour tools.
//
// This package provides a JSON-RPC 2.0 server that exposes colour conversion,
// image eyedropper and palette management through the MCP protocol, so an AI
// client or a desktop shell can pick, convert and organize colours.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Colour conversions:
//   - color_validate, color_normalize: hex checks
//   - color_convert: every representation of a hex colour
//   - color_from_rgb, color_from_hsl: build a colour from channels
//   - color_format: hex, rgb() or hsl() text
//   - color_contrast: readable text colour, WCAG ratio and colour difference
//
// Images:
//   - image_load: Load image and get metadata
//   - image_sample_color, image_sample_colors_multi: eyedropper
//   - image_extract_palette: most frequent colours
//   - image_grid_overlay: coordinate grid for picking points
//   - image_crop: zoom into a region
//   - palette_swatch: render colours as a PNG strip
//
// Workspace:
//   - workspace_get, workspace_rename
//   - folder_create, folder_update, folder_delete
//   - project_create, project_list, project_update, project_move, project_delete
//   - color_add, color_list, color_update, color_delete, color_reorder
//   - palette_export: JSON, YAML or CSS
//
// # State
//
// Loaded images are cached by path and the workspace lives in a palette.Store.
// Both persist for the lifetime of the server process.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32700 (parse error), -32601 (unknown method), -32602 (unknown
//     tool or malformed arguments) or -32000 (tool execution failure)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Metrics
//
// Every tool call is counted in colormcp_tool_calls_total{tool,status} and
// timed in colormcp_tool_duration_seconds{tool}. MetricsServer exposes them
// on /metrics.
package server
