package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lcabral/guestportal/internal/config"
)

func newCheckConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Load and print the portal configuration",
		Long: `check-config loads the portal configuration from the environment (and a
.env file, when present) exactly the way the server does, and prints the
resolved settings. Secrets are redacted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			out := NewOutput(outputFormat)
			out.Print(map[string]string{
				"addr":               cfg.Addr(),
				"google_client_id":   cfg.GoogleClientID,
				"oauth_redirect_url": cfg.OAuthRedirectURL,
				"controller_ip":      cfg.ControllerIP,
				"session_secret":     redact(cfg.SessionSecret),
				"sheets_credentials": cfg.SheetsCredentialsFile,
				"sheets_spreadsheet": cfg.SheetsSpreadsheetID,
				"sheets_range":       cfg.SheetsRange,
				"storage_type":       cfg.StorageType,
				"redis_url":          cfg.RedisURL,
				"static_dir":         cfg.StaticDir,
			})
			return nil
		},
	}
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "(set, " + strconv.Itoa(len(s)) + " chars)"
}
