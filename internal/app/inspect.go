package app

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kapil1024/Redfish-Service-Validator/internal/schema"
)

func NewInspectCmd(mgr Manager) *cobra.Command {
	outputVal := formatValue("text")

	cmd := &cobra.Command{
		Use:   "inspect <type>",
		Short: "Show the resolved skeleton of a schema type",
		Long: `Resolve a qualified type name in the catalog and show its kind, base chain,
flattened property set and enum members. Version fallback applies: asking for
a version the bundle does not carry resolves the closest earlier one.`,
		Args: cobra.ExactArgs(1),
		Example: `
  rsv inspect "ServiceRoot.v1_5_0.ServiceRoot"
  rsv inspect "#Chassis.v1_9_0.Chassis"
  rsv inspect -o json "Thermal.v1_3_0.Temperature"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := mgr.Inspect(args[0], string(outputVal))
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")

	return cmd
}

type propertyDescription struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	Navigation bool   `json:"navigation,omitempty"`
}

type typeDescription struct {
	Name       string                `json:"name"`
	Kind       string                `json:"kind"`
	Abstract   bool                  `json:"abstract,omitempty"`
	BaseChain  []string              `json:"baseChain,omitempty"`
	Properties []propertyDescription `json:"properties,omitempty"`
	Members    []string              `json:"members,omitempty"`
	Underlying string                `json:"underlying,omitempty"`
}

func describeType(t *schema.RedfishType) typeDescription {
	d := typeDescription{
		Name:       string(t.Name),
		Kind:       string(t.Kind),
		Abstract:   t.Abstract,
		Members:    t.Members(),
		Underlying: t.Underlying(),
	}

	for _, tn := range t.BaseChain()[1:] {
		d.BaseChain = append(d.BaseChain, string(tn))
	}
	for _, pd := range t.Properties() {
		d.Properties = append(d.Properties, propertyDescription{
			Name:       pd.Name,
			Type:       pd.Type,
			Nullable:   pd.Nullable,
			Navigation: pd.Navigation,
		})
	}
	return d
}

func marshalTypeJSON(t *schema.RedfishType) ([]byte, error) {
	return json.MarshalIndent(describeType(t), "", "  ")
}

func renderTypeText(t *schema.RedfishType) []byte {
	d := describeType(t)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s (%s", d.Name, d.Kind)
	if d.Abstract {
		buf.WriteString(", abstract")
	}
	buf.WriteString(")\n")

	if len(d.BaseChain) > 0 {
		buf.WriteString("Base chain:\n")
		for _, b := range d.BaseChain {
			fmt.Fprintf(&buf, "  %s\n", b)
		}
	}

	if len(d.Properties) > 0 {
		width := 0
		for _, pd := range d.Properties {
			if len(pd.Name) > width {
				width = len(pd.Name)
			}
		}

		buf.WriteString("Properties:\n")
		for _, pd := range d.Properties {
			fmt.Fprintf(&buf, "  %-*s  %s", width, pd.Name, pd.Type)
			if !pd.Nullable {
				buf.WriteString("  required")
			}
			if pd.Navigation {
				buf.WriteString("  navigation")
			}
			buf.WriteString("\n")
		}
	}

	if len(d.Members) > 0 {
		buf.WriteString("Members:\n")
		for _, m := range d.Members {
			fmt.Fprintf(&buf, "  %s\n", m)
		}
	}

	if d.Underlying != "" {
		fmt.Fprintf(&buf, "Underlying type: %s\n", d.Underlying)
	}

	return buf.Bytes()
}
