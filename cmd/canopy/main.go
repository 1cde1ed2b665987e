package main

import (
	"fmt"
	"os"

	"github.com/epruesse/gocanopy/internal/logging"
	"github.com/epruesse/gocanopy/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "canopy",
		Short: "canopy - parallel canopy clustering for gene-abundance profiles",
		Long: `canopy groups high-dimensional, sparse gene-abundance profiles into
overlapping canopies using a correlation-based distance, a parallel
discovery loop, and a serial merge pass.`,
		Version: Version,
	}

	rootCmd.AddCommand(clusterCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*CheckExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("canopy version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}

// loggerFor returns a debug-level logger when verbose is set, otherwise the
// default info-level logger.
func loggerFor(verbose bool) *logging.Logger {
	if verbose {
		return logging.New(os.Stderr, logging.LevelDebug)
	}
	return logging.Default()
}
