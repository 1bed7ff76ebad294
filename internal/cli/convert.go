package cli

import (
	"github.com/spf13/cobra"

	hio "github.com/matzehuels/hypercuboid/pkg/io"
)

// convertCommand creates the convert command, which rewrites a problem file
// in the format implied by the output extension.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a problem file between JSON and TOML",
		Long: `Convert a problem file between JSON and TOML.

Boxes given as extent lists are written back in start/end form.`,
		Example: `  hypercuboid convert problem.json problem.toml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := hio.ImportProblem(args[0])
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("loaded problem", "file", args[0], "boxes", len(problem.Boxes))

			if err := hio.ExportProblem(problem, args[1]); err != nil {
				return err
			}
			printSuccess("Converted %d boxes", len(problem.Boxes))
			printFile(args[1])
			printNewline()
			printNextStep("Integrate it", "hypercuboid integrate "+args[1])
			return nil
		},
	}
}
