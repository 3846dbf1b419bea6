// routeway - a configurable HTTP gateway.
package main

import (
	"fmt"
	"os"

	"github.com/routeway/routeway/pkg/cli"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate})

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
