package app

import (
	"github.com/spf13/cobra"
)

func NewCrosscheckCmd(mgr Manager) *cobra.Command {
	packVal := pathValue("")

	cmd := &cobra.Command{
		Use:   "crosscheck [path]",
		Short: "Validate payloads against the Redfish JSON Schema pack",
		Long: `Validate payloads against the JSON Schema rendition of the Redfish data
model, as a second opinion alongside the CSDL catalog. Each payload's
@odata.type picks the schema file: the exact versioned file when the pack
carries it, the unversioned base file otherwise.`,
		Args: cobra.MaximumNArgs(1),
		Example: `
  rsv crosscheck --pack ./SchemaFiles/json-schema ./payloads
  rsv crosscheck ./captured.json   (pack directory from rsv-config.yml)
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) > 0 {
				target = args[0]
			}

			return mgr.Crosscheck(cmd.Context(), string(packVal), target, ValidateOptions{})
		},
	}

	cmd.Flags().VarP(&packVal, "pack", "p", "Directory of Redfish JSON Schema files (overrides config)")

	return cmd
}
