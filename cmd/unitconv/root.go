package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := &AppContext{}

	cmd := &cobra.Command{
		Use:           "unitconv",
		Short:         "Convert values between units of length, temperature, volume, weight and energy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return app.init(flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML or TOML config file (default ~/.unitconv/config.yaml)")

	cmd.AddCommand(newConvertCmd(app))
	cmd.AddCommand(newSystemsCmd(app))
	cmd.AddCommand(newUnitsCmd(app))
	cmd.AddCommand(newFieldCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
