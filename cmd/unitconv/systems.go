package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type systemsOptions struct {
	jsonOutput bool
}

func newSystemsCmd(app *AppContext) *cobra.Command {
	opts := &systemsOptions{}

	cmd := &cobra.Command{
		Use:   "systems",
		Short: "List registered unit systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSystems(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type systemsJSONSystem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	InternalUnit string   `json:"internal_unit"`
	Units        []string `json:"units"`
}

type systemsJSONPayload struct {
	Version string              `json:"version"`
	Count   int                 `json:"count"`
	Systems []systemsJSONSystem `json:"systems"`
}

func runSystems(cmd *cobra.Command, app *AppContext, opts *systemsOptions) error {
	systems := app.Service.Registry().List()

	if opts.jsonOutput {
		payload := systemsJSONPayload{
			Version: "1.0",
			Count:   len(systems),
			Systems: make([]systemsJSONSystem, len(systems)),
		}
		for i, sys := range systems {
			payload.Systems[i] = systemsJSONSystem{
				ID:           sys.ID,
				Name:         sys.Name,
				InternalUnit: sys.InternalUnit,
				Units:        sys.Symbols(),
			}
		}
		return writeJSON(cmd.OutOrStdout(), payload)
	}

	writeHeading(cmd.OutOrStdout(), "Unit systems")
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tINTERNAL\tUNITS")
	for _, sys := range systems {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\n", sys.ID, sys.Name, sys.InternalUnit, len(sys.Units))
	}
	return writer.Flush()
}
