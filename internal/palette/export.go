package palette

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ErrUnknownExportFormat is returned for an export format other than json,
// yaml or css.
var ErrUnknownExportFormat = errors.New("unknown export format")

// ExportFormat selects the Export encoding.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
	ExportCSS  ExportFormat = "css"
)

// ParseExportFormat accepts json, yaml (or yml) and css in any case. An empty
// name selects json.
func ParseExportFormat(name string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return ExportJSON, nil
	case "yaml", "yml":
		return ExportYAML, nil
	case "css":
		return ExportCSS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExportFormat, name)
	}
}

// ExportDocument is the structure written by the json and yaml formats.
type ExportDocument struct {
	Project Project `json:"project" yaml:"project"`
	Colors  []Color `json:"colors" yaml:"colors"`
}

// Export encodes a project and its colours. Colours are written in the order
// given; Store.Colors already returns them by position.
func Export(project Project, colors []Color, format ExportFormat) ([]byte, error) {
	if colors == nil {
		colors = []Color{}
	}
	doc := ExportDocument{Project: project, Colors: colors}

	switch format {
	case ExportJSON:
		return json.MarshalIndent(doc, "", "  ")
	case ExportYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case ExportCSS:
		return exportCSS(project, colors), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExportFormat, string(format))
	}
}

// exportCSS writes one custom property per colour, numbered from 1.
func exportCSS(project Project, colors []Color) []byte {
	slug := Slug(project.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "/* %s */\n", strings.ReplaceAll(project.Name, "*/", "* /"))
	b.WriteString(":root {\n")
	for i, c := range colors {
		fmt.Fprintf(&b, "  --%s-%d: %s;\n", slug, i+1, c.Hex)
	}
	b.WriteString("}\n")
	return []byte(b.String())
}

// Slug lowercases name and joins its letter and digit runs with hyphens.
// A name with no letters or digits becomes "color".
func Slug(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "color"
	}
	return b.String()
}
