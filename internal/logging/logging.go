// Package logging builds the hclog logger shared by the server and CLI.
//
// Logs always go to stderr or another writer the caller picks. Stdout is
// reserved for the JSON-RPC stream, so nothing here may default to it.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "color-mcp"

// New returns a logger at the given level writing to out. A nil out selects
// stderr. Unknown levels fall back to info.
func New(level string, out io.Writer) hclog.Logger {
	if out == nil {
		out = os.Stderr
	}

	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Output: out,
		Level:  lvl,
	})
}
