// Package cli provides the routeway CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "routeway",
	Short:         "A configurable HTTP gateway",
	Long:          "routeway routes incoming requests across static files, directories,\nreverse proxies, JSON document stores and mock responses, driven by a\nYAML configuration file.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and returns the command error, if any.
func Execute() error {
	return rootCmd.Execute()
}
