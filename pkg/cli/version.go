package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo carries build-time version metadata from main.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

var buildInfo = BuildInfo{Version: "dev", Commit: "unknown", BuildDate: "unknown"}

// SetBuildInfo records the build metadata shown by the version command.
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("routeway %s (commit %s, built %s)\n",
			buildInfo.Version, buildInfo.Commit, buildInfo.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
