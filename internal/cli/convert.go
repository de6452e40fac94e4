package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
)

func newConvertCmd() *cobra.Command {
	var (
		noColor bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "convert <hex>",
		Short: "Show every representation of a hex colour",
		Example: `  color-mcp convert "#FF5733"
  color-mcp convert f53 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := colormath.Describe(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(desc)
			}

			if !noColor {
				fmt.Fprintln(out, swatch(desc.RGB))
			}
			printLine(out, "HEX", string(desc.Hex))
			printLine(out, "RGB", desc.CSSRGB)
			printLine(out, "HSL", desc.CSSHSL)
			printLine(out, "CMYK", fmt.Sprintf("%d, %d, %d, %d", desc.CMYK.C, desc.CMYK.M, desc.CMYK.Y, desc.CMYK.K))
			printLine(out, "Luminance", fmt.Sprintf("%.4f", desc.Luminance))
			printLine(out, "Text", string(desc.Contrast))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "do not print the colour preview")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

// swatch renders the colour as a truecolor block with its hex written in the
// readable text colour.
func swatch(rgb colormath.RGB) string {
	bg := color.BgRGB(rgb.R, rgb.G, rgb.B)
	if colormath.Luminance(rgb) > colormath.ContrastThreshold {
		bg.AddRGB(0, 0, 0)
	} else {
		bg.AddRGB(255, 255, 255)
	}
	return bg.Sprintf("  %s  ", colormath.RGBToHex(rgb))
}

func printLine(out io.Writer, label, value string) {
	fmt.Fprintf(out, "%-11s%s\n", label, value)
}
