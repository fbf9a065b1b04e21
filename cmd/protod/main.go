// Protod is a demonstration daemon for the protothread library.
//
// It builds a workload of simulated entities (blinkers, patrols, a
// countdown), drives them with the polling runner, and serves health and
// Prometheus metrics over HTTP while the workload runs.
//
// Usage:
//
//	# Run with defaults
//	protod run
//
//	# Run with a config file, overridable via PROTOD_* environment
//	protod run --config protod.yaml
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "protod",
	Short:   "Cooperative protothread demo daemon",
	Long:    `protod runs a set of simulated entities as protothreads, polling them cooperatively and exposing health and metrics endpoints.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print detailed version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("protod %s (commit %s, built %s)\n", version, gitCommit, buildDate)
	},
}
