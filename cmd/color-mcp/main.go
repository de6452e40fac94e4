// Command color-mcp is an MCP server for colour conversion, image colour
// picking and palette management. It speaks JSON-RPC over stdin/stdout;
// logs go to stderr.
package main

import "github.com/ironsheep/color-tools-mcp/internal/cli"

func main() {
	cli.Execute()
}
