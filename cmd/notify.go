package main

import (
	"context"
	"errors"
	"html/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/mstgnz/goepay/infra/config"
	"github.com/mstgnz/goepay/infra/logger"
	"github.com/mstgnz/goepay/infra/opensearch"
	"github.com/mstgnz/goepay/provider/epay"
)

type paymentFormData struct {
	Action string
	Fields template.HTML
}

var paymentFormTemplate = template.Must(template.New("payment-form").Parse(
	`<form action="{{.Action}}" method="POST">
{{.Fields}}<input type="submit" value="Pay">
</form>
`))

type parseOutput struct {
	Notifications []epay.Notification `json:"notifications"`
	Response      string              `json:"response"`
}

func newParseCommand() *cobra.Command {
	var encoded, checksum string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Verify and decode a gateway notification",
		Long: `Check the CHECKSUM of an ENCODED notification with the merchant secret,
print the invoice statuses it carries and the response body to send back.`,
		Example: `  goepay parse --encoded SU5WT0lDRT0xMjM6U1RBVFVTPVBBSUQ= --checksum 0f1e...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.EpayConfig()
			if err != nil {
				return err
			}

			notifications, err := epay.ParseNotifications(cfg.Secret, encoded, checksum)
			if err != nil {
				logger.Warn("Notification rejected", logger.LogContext{
					Fields: map[string]any{"error": err.Error()},
				})
				return err
			}

			for _, n := range notifications {
				logger.Info("Notification verified", logger.LogContext{
					Invoice: n.Invoice,
					Fields:  map[string]any{"status": string(n.Status)},
				})
			}

			return writeJSON(cmd.OutOrStdout(), parseOutput{
				Notifications: notifications,
				Response:      epay.Acknowledge(notifications),
			})
		},
	}

	cmd.Flags().StringVarP(&encoded, "encoded", "e", "", "ENCODED value posted by the gateway")
	cmd.Flags().StringVarP(&checksum, "checksum", "k", "", "CHECKSUM value posted by the gateway")
	_ = cmd.MarkFlagRequired("encoded")
	_ = cmd.MarkFlagRequired("checksum")

	return cmd
}

func newHistoryCommand() *cobra.Command {
	var invoice string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the notifications recorded for an invoice",
		Long:  `Query OpenSearch for the gateway notifications the notify handler recorded for an invoice, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := epay.ValidateInvoice(invoice); err != nil {
				return err
			}
			if store == nil {
				return errors.New("notification history needs ENABLE_OPENSEARCH_LOGGING=true")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			entries, err := store.GetNotifications(ctx, invoice)
			if err != nil {
				logger.Error("Notification lookup failed", err, logger.LogContext{Invoice: invoice})
				return err
			}

			if entries == nil {
				entries = []opensearch.NotificationLog{}
			}
			return writeJSON(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVarP(&invoice, "invoice", "i", "", "Invoice number")
	_ = cmd.MarkFlagRequired("invoice")

	return cmd
}
