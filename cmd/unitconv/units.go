package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/unitconv/internal/registry"
	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

type unitsOptions struct {
	jsonOutput bool
}

func newUnitsCmd(app *AppContext) *cobra.Command {
	opts := &unitsOptions{}

	cmd := &cobra.Command{
		Use:     "units <system>",
		Short:   "List the units of a system",
		Example: "  unitconv units length\n  unitconv units temperature --json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnits(cmd, app, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type unitsJSONPayload struct {
	Version      string                    `json:"version"`
	System       string                    `json:"system"`
	InternalUnit string                    `json:"internal_unit"`
	Units        []registry.UnitDefinition `json:"units"`
}

func runUnits(cmd *cobra.Command, app *AppContext, opts *unitsOptions, systemID string) error {
	sys, ok := app.Service.GetSystem(systemID)
	if !ok {
		return newCommandError("list units", "looking up unit system", unitserrors.NewUnitSystemNotFoundError(systemID), "Run 'unitconv systems' to list the available systems.")
	}

	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), unitsJSONPayload{
			Version:      "1.0",
			System:       sys.ID,
			InternalUnit: sys.InternalUnit,
			Units:        sys.Units,
		})
	}

	writeHeading(cmd.OutOrStdout(), fmt.Sprintf("%s (internal unit %s)", sys.Name, sys.InternalUnit))
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "SYMBOL\tNAME\tCATEGORY\tPRECISION\tSTEP\tCONTEXT")
	for _, def := range sys.Units {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%s\t%s\n",
			def.Symbol,
			def.Name,
			def.Category,
			def.Precision,
			strconv.FormatFloat(def.Step, 'f', -1, 64),
			contextLabel(def),
		)
	}
	return writer.Flush()
}

func contextLabel(def registry.UnitDefinition) string {
	if !def.RequiresContext {
		return "-"
	}
	return string(def.ContextType)
}
