// Package main implements the tickler command line tool: an interactive
// reminder console and a helper for minting API tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "tickler",
		Short:         "Tickler - a personal reminder tracker",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to a config file (defaults to ./config.yaml when present)")

	rootCmd.AddCommand(consoleCmd(&configPath))
	rootCmd.AddCommand(tokenCmd(&configPath))

	return rootCmd
}
