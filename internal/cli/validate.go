package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lcabral/guestportal/internal/validate"
)

func newValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check network parameters the way the portal would",
	}

	validateCmd.AddCommand(&cobra.Command{
		Use:   "mac <address>",
		Short: "Check a MAC address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(args[0], validate.IsValidMAC(args[0]))
		},
	})

	validateCmd.AddCommand(&cobra.Command{
		Use:   "ip <address>",
		Short: "Check an IPv4 address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(args[0], validate.IsValidIP(args[0]))
		},
	})

	return validateCmd
}

func report(value string, ok bool) error {
	out := NewOutput(outputFormat)
	if !ok {
		out.Print(map[string]string{"value": value, "valid": "false"})
		return fmt.Errorf("invalid: %s", value)
	}
	out.Print(map[string]string{"value": value, "valid": "true"})
	return nil
}
