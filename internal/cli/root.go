// Package cli implements the portalctl operator tool.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var outputFormat string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portalctl",
		Short: "Operator tool for the guest portal",
		Long: `portalctl is an operator tool for the guest Wi-Fi portal.

It can verify the portal configuration, validate network parameters the
access point would send, and append a probe row to the guestbook
spreadsheet to confirm credentials work end to end.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newCheckConfigCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newAppendCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
