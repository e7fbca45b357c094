// Command termo-demo is a small walkthrough of the navigation engine: it
// registers a handful of screens, runs a scripted navigation session, and
// optionally exposes the HTTP inspector and persists history across runs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "termo-demo",
		Short: "Navigation engine demo",
		Long: `termo-demo walks through the termo navigation engine:

  • Route matching with :params and * wildcards
  • Guarded screens with redirects
  • History traversal (back/forward)
  • Prometheus metrics and the HTTP inspector
  • History snapshots persisted across runs`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		runCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("termo-demo %s (%s)\n", version, commit)
		},
	}
}
