package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/color-tools-mcp/internal/colormath"
	"github.com/ironsheep/color-tools-mcp/internal/imaging"
)

func newContrastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contrast <background> [foreground]",
		Short: "Pick a readable text colour, or check a colour pair against WCAG",
		Example: `  color-mcp contrast "#3366CC"
  color-mcp contrast "#FFFFFF" "#767676"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			bg, err := colormath.NormalizeHex(args[0])
			if err != nil {
				return fmt.Errorf("background: %w", err)
			}
			text, err := colormath.ContrastColor(string(bg))
			if err != nil {
				return err
			}
			printLine(out, "Background", string(bg))
			printLine(out, "Text", string(text))

			if len(args) == 1 {
				return nil
			}

			fg, err := colormath.NormalizeHex(args[1])
			if err != nil {
				return fmt.Errorf("foreground: %w", err)
			}
			bgRGB, err := colormath.HexToRGB(string(bg))
			if err != nil {
				return err
			}
			fgRGB, err := colormath.HexToRGB(string(fg))
			if err != nil {
				return err
			}
			deltaE, err := imaging.ColorDifference(string(bg), string(fg))
			if err != nil {
				return err
			}

			ratio := colormath.ContrastRatio(bgRGB, fgRGB)
			printLine(out, "Foreground", string(fg))
			printLine(out, "Ratio", fmt.Sprintf("%.2f:1", ratio))
			printLine(out, "AA", passFail(ratio >= 4.5))
			printLine(out, "AA large", passFail(ratio >= 3))
			printLine(out, "AAA", passFail(ratio >= 7))
			printLine(out, "Delta E", fmt.Sprintf("%.2f", deltaE))
			return nil
		},
	}
	return cmd
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
