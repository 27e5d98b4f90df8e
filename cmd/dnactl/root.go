package main

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the dnactl command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dnactl",
		Short: "Inspect, validate and format DNA descriptor documents",
		Long: `dnactl works with DNA descriptor documents: the JSON records that
describe an application package, its zomes and their capabilities.

It can scaffold a default descriptor, validate and canonically format
existing ones, convert between JSON and YAML, and emit a JSON Schema for
the document shape.`,
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newValidateCommand(),
		newFmtCommand(),
		newShowCommand(),
		newSchemaCommand(),
		newConvertCommand(),
	)

	return rootCmd
}
