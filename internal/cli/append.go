package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lcabral/guestportal/internal/config"
	"github.com/lcabral/guestportal/internal/dependencies/clock"
	"github.com/lcabral/guestportal/internal/model"
	"github.com/lcabral/guestportal/internal/services/guestbook"
	"github.com/lcabral/guestportal/internal/sheets"
)

func newAppendCmd() *cobra.Command {
	var join model.JoinRequest
	name := "portalctl probe"
	email := "probe@example.invalid"

	appendCmd := &cobra.Command{
		Use:   "append",
		Short: "Append a probe row to the guestbook spreadsheet",
		Long: `append writes one probe row through the same serialized, retried path the
portal uses, confirming the service account credentials and spreadsheet
access work end to end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			clk := clock.New()

			client, err := sheets.New(sheets.Config{
				CredentialsFile: cfg.SheetsCredentialsFile,
				SpreadsheetID:   cfg.SheetsSpreadsheetID,
				Range:           cfg.SheetsRange,
			}, clk, logger)
			if err != nil {
				return err
			}

			book := guestbook.New(client, clk, guestbook.DefaultConfig(), logger)

			identity, err := model.NewManualIdentity(name, email)
			if err != nil {
				return err
			}

			if err := book.Record(cmd.Context(), identity, &join); err != nil {
				return err
			}

			out := NewOutput(outputFormat)
			out.Print(map[string]string{
				"spreadsheet": cfg.SheetsSpreadsheetID,
				"range":       cfg.SheetsRange,
				"appended":    "true",
			})
			return nil
		},
	}

	appendCmd.Flags().StringVar(&name, "name", name, "Display name for the probe row")
	appendCmd.Flags().StringVar(&email, "email", email, "Email for the probe row")
	appendCmd.Flags().StringVar(&join.ClientMAC, "client-mac", "", "Client MAC for the probe row")
	appendCmd.Flags().StringVar(&join.ClientIP, "client-ip", "", "Client IP for the probe row")
	appendCmd.Flags().StringVar(&join.APMAC, "ap-mac", "", "Access point MAC for the probe row")
	appendCmd.Flags().StringVar(&join.SSID, "ssid", "", "SSID for the probe row")

	return appendCmd
}
