// prefmesh is the CLI for regional ad-evaluation runs.
//
// Usage:
//
//	prefmesh eval --ad-id=<id> --content=<text> [--targets=Tokyo,Osaka] [--config=<path>]
//	prefmesh regions [--config=<path>]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootFlags struct {
	configPath string
}

var rootCmd = &cobra.Command{
	Use:           "prefmesh",
	Short:         "Simulate regional persona evaluation of advertisements",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "Path to a YAML config file (environment overrides apply on top)")
	rootCmd.AddCommand(evalCmd, regionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
