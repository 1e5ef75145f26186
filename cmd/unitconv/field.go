package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/unitconv/internal/binding"
	"github.com/alexisbeaulieu97/unitconv/internal/tui"
	unitserrors "github.com/alexisbeaulieu97/unitconv/pkg/errors"
)

type fieldOptions struct {
	system  string
	unit    string
	value   float64
	context contextFlags
}

func newFieldCmd(app *AppContext) *cobra.Command {
	opts := &fieldOptions{}

	cmd := &cobra.Command{
		Use:   "field",
		Short: "Edit a value interactively in any unit of a system",
		Long: `Open an interactive input bound to a unit system. The value is kept in the
system's internal unit while tab cycles the display unit and the arrow keys step it.
The unit shown on exit is remembered for later conversions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, b, err := prepareField(cmd, app, opts)
			if err != nil {
				return err
			}
			return runField(cmd, app, field, b)
		},
	}

	cmd.Flags().StringVarP(&opts.system, "system", "s", "", "Unit system to edit in (default from config, else length)")
	cmd.Flags().StringVarP(&opts.unit, "unit", "u", "", "Initial display unit (default: remembered unit)")
	cmd.Flags().Float64Var(&opts.value, "value", 0, "Initial value, in the initial display unit")
	opts.context.register(cmd)

	return cmd
}

// prepareField resolves flags into a binding and the initial field model.
func prepareField(cmd *cobra.Command, app *AppContext, opts *fieldOptions) (tui.Field, *binding.Binding, error) {
	systemID := app.resolveSystem(opts.system)
	sys, ok := app.Service.GetSystem(systemID)
	if !ok {
		return tui.Field{}, nil, newCommandError("open field", "selecting unit system", unitserrors.NewUnitSystemNotFoundError(systemID), "Run 'unitconv systems' to list the available systems.")
	}

	unit := opts.unit
	if unit == "" {
		unit = app.preferredUnit(systemID)
	}
	if !app.Service.ValidateUnit(systemID, unit) {
		return tui.Field{}, nil, newCommandError("open field", "selecting unit", unitserrors.NewUnitNotFoundError(unit, systemID), fmt.Sprintf("Run 'unitconv units %s' to list the available units.", systemID))
	}

	contexts, err := opts.context.forSystem(cmd, app.Service, systemID, unit)
	if err != nil {
		return tui.Field{}, nil, newCommandError("open field", "reading context flags", err, "Use --axis width, height, x or y.")
	}

	b := binding.New(app.Service, systemID, contexts...)
	internal, err := b.ToInternal(opts.value, unit)
	if err != nil {
		return tui.Field{}, nil, newCommandError("open field", fmt.Sprintf("reading initial value in %s", unit), err, conversionSuggestion(err, systemID))
	}

	field := tui.NewField(b, unit, internal,
		tui.WithTitle(sys.Name),
		tui.WithOnError(func(err error) {
			app.Logger.Debug("field rejected input", "system", systemID, "error", err.Error())
		}),
	)
	return field, b, nil
}

func runField(cmd *cobra.Command, app *AppContext, field tui.Field, b *binding.Binding) error {
	program := tea.NewProgram(field, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	final, err := program.Run()
	if err != nil {
		return newCommandError("open field", "running interactive input", err, "Run the command from an interactive terminal.")
	}

	result, ok := final.(tui.Field)
	if !ok {
		return nil
	}
	return finishField(cmd, app, result, b)
}

// finishField remembers the display unit and prints the final value.
func finishField(cmd *cobra.Command, app *AppContext, field tui.Field, b *binding.Binding) error {
	unit := field.Unit()
	app.Prefs.Set(b.SystemID(), unit)
	if err := app.Prefs.Save(); err != nil {
		return newCommandError("open field", "saving unit preference", err, "Check preferences file permissions and try again.")
	}
	app.Logger.Debug("unit preference saved", "system", b.SystemID(), "unit", unit)

	stored := b.Format(field.Value(), b.InternalUnit())
	display, err := b.FromInternal(field.Value(), unit)
	if err != nil || unit == b.InternalUnit() {
		fmt.Fprintln(cmd.OutOrStdout(), stored)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", b.Format(display, unit), stored)
	return nil
}
