package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/unitconv/internal/binding"
	"github.com/alexisbeaulieu97/unitconv/internal/conversion"
	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

type convertOptions struct {
	system     string
	jsonOutput bool
	context    contextFlags
}

func newConvertCmd(app *AppContext) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <value> <from> [<to>]",
		Short: "Convert a value from one unit to another",
		Long: `Convert a value between two units of the same system. When <to> is omitted the
last unit chosen in 'unitconv field', the configured default unit or the system's
internal unit is used. Relative units read their reference from the context flags.`,
		Example: `  unitconv convert 1 in cm
  unitconv convert 50 % cm --axis height --ref-height 19
  unitconv convert --system temperature -- -40 °C °F`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, app, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.system, "system", "s", "", "Unit system to convert in (default from config, else length)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	opts.context.register(cmd)

	return cmd
}

type convertResult struct {
	System    string  `json:"system"`
	Value     float64 `json:"value"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Result    float64 `json:"result"`
	Formatted string  `json:"formatted"`
}

func runConvert(cmd *cobra.Command, app *AppContext, opts *convertOptions, args []string) error {
	value, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return newCommandError("convert", fmt.Sprintf("parsing value %q", args[0]), err, "Pass a plain number such as 12.5; put -- before negative values.")
	}

	systemID := app.resolveSystem(opts.system)
	if _, ok := app.Service.GetSystem(systemID); !ok {
		return newCommandError("convert", "selecting unit system", unitserrors.NewUnitSystemNotFoundError(systemID), "Run 'unitconv systems' to list the available systems.")
	}

	from := args[1]
	to := app.preferredUnit(systemID)
	if len(args) == 3 {
		to = args[2]
	}

	fromCtx, err := opts.context.forUnit(cmd, app.Service, systemID, from)
	if err != nil {
		return newCommandError("convert", "reading context flags", err, "Use --axis width, height, x or y.")
	}
	toCtx, err := opts.context.forUnit(cmd, app.Service, systemID, to)
	if err != nil {
		return newCommandError("convert", "reading context flags", err, "Use --axis width, height, x or y.")
	}

	result, err := convertValue(app.Service, value, from, to, systemID, fromCtx, toCtx)
	if err != nil {
		return newCommandError("convert", fmt.Sprintf("converting %s to %s in %s", from, to, systemID), err, conversionSuggestion(err, systemID))
	}

	app.Logger.Debug("converted value", "system", systemID, "from", from, "to", to, "value", value, "result", result)

	out := convertResult{
		System:    systemID,
		Value:     value,
		From:      from,
		To:        to,
		Result:    result,
		Formatted: app.Service.FormatValue(result, to, systemID),
	}

	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", app.Service.FormatValue(value, from, systemID), out.Formatted)
	return nil
}

// convertValue converts with one context per side, so from and to may need different
// kinds of context.
func convertValue(service *conversion.Service, value float64, from, to, systemID string, fromCtx, toCtx conversion.Context) (float64, error) {
	return binding.New(service, systemID, fromCtx, toCtx).Convert(value, from, to)
}

func conversionSuggestion(err error, systemID string) string {
	var missing *unitserrors.MissingContextError
	if errors.As(err, &missing) {
		if flag, ok := flagForField[missing.Field]; ok {
			return fmt.Sprintf("Pass --%s with a value in the system's internal unit.", flag)
		}
	}

	var zero *unitserrors.ZeroReferenceError
	if errors.As(err, &zero) {
		return "Use a non-zero reference value."
	}

	var unknownUnit *unitserrors.UnitNotFoundError
	if errors.As(err, &unknownUnit) {
		return fmt.Sprintf("Run 'unitconv units %s' to list the available units.", systemID)
	}

	return "Check the units and context flags and try again."
}
