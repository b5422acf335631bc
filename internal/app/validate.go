package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func NewValidateCmd(mgr Manager) *cobra.Command {
	var verbose bool
	var continueOnError bool
	var lenient bool
	var workers int
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate one or more Redfish payloads against the schema catalog",
		Args:  cobra.MaximumNArgs(1),
		Example: `
VALIDATING A SINGLE PAYLOAD
- The payload's @odata.type picks the schema type:
  rsv validate ./payloads/ServiceRoot.json
- Or force a type with --type:
  rsv validate --type "Chassis.v1_9_0.Chassis" ./captured.json

VALIDATING A PAYLOAD TREE
- Every .json document under the directory is validated:
  rsv validate ./payloads

WATCH MODE
- Revalidate whenever a schema document or payload changes:
  rsv validate -w ./payloads`,
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed validation results")
	outputVal := formatValue("text")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().BoolVarP(&continueOnError, "continue-on-error", "C", false,
		"Continue validating even if a payload fails (default is to stop on first error)")

	typeVal := typeNameValue("")
	cmd.Flags().VarP(&typeVal, "type", "t", "Validate against this type instead of each payload's @odata.type")
	cmd.Flags().BoolVar(&lenient, "lenient", false,
		"Record non-conforming values instead of failing them; only unresolvable types are reported")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel validation workers (0 uses the default)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch for changes and rerun validation")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := "."
		if len(args) > 0 {
			target = args[0]
		}

		noColour, _ := cmd.Flags().GetBool("nocolour")

		opts := ValidateOptions{
			Verbose:         verbose,
			Format:          string(outputVal),
			UseColour:       !noColour,
			ContinueOnError: continueOnError,
			Lenient:         lenient,
			TypeOverride:    string(typeVal),
			Workers:         workers,
		}

		if watch {
			err := mgr.WatchValidation(cmd.Context(), target, opts, nil)
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Interrupted by user")
				return nil
			}
			return err
		}

		return mgr.ValidatePayload(cmd.Context(), target, opts)
	}

	return cmd
}
