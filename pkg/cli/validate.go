package cli

import (
	"github.com/spf13/cobra"
)

// validateFlags holds all flags for the validate command.
type validateFlags struct {
	configPath string
	routesDir  string
}

var validateFlagVals validateFlags

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file without starting the gateway",
	RunE:  runValidate,
}

func init() {
	f := &validateFlagVals

	validateCmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to the gateway config file (YAML or JSON)")
	validateCmd.Flags().StringVar(&f.routesDir, "routes-dir", "", "Directory of route files to merge (alternative to --config)")
	validateCmd.MarkFlagsMutuallyExclusive("config", "routes-dir")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	f := &validateFlagVals

	cfg, err := loadConfig(f.configPath, f.routesDir)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cmd.Printf("configuration is valid: %d route(s)\n", len(cfg.Routes))
	for i := range cfg.Routes {
		cmd.Printf("  %-30s %s\n", cfg.Routes[i].Route, cfg.Routes[i].Kind())
	}
	return nil
}
