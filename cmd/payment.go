package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mstgnz/goepay/infra/config"
	"github.com/mstgnz/goepay/infra/logger"
	"github.com/mstgnz/goepay/provider/epay"
)

// paymentInput holds the record flags shared by params, form and idn.
type paymentInput struct {
	Invoice     string `validate:"omitempty,epay_invoice"`
	Amount      string `validate:"required,epay_amount"`
	Expiration  string `validate:"omitempty,epay_exptime"`
	Description string `validate:"epay_desc"`
	Currency    string `validate:"omitempty,epay_currency"`
	Encoding    string `validate:"omitempty,eq=utf-8"`
	PaymentType string
	Language    string
	URLOK       string `validate:"omitempty,url"`
	URLCancel   string `validate:"omitempty,url"`
}

func (in *paymentInput) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&in.Invoice, "invoice", "i", "", "Invoice number (generated when EPAY_GENERATE_INVOICE is set)")
	f.StringVarP(&in.Amount, "amount", "a", "", "Amount, e.g. 25.50 (required)")
	f.StringVar(&in.Expiration, "expiration", "", "Expiration as DD.MM.YYYY HH:MM:SS (default now plus EPAY_EXPIRATION_HOURS)")
	f.StringVarP(&in.Description, "description", "d", "", "Payment description, up to 100 bytes")
	f.StringVarP(&in.Currency, "currency", "c", "", "BGN, USD or EUR (default EPAY_DEFAULT_CURRENCY)")
	f.StringVar(&in.Encoding, "encoding", "", "Set to utf-8 to send ENCODING=utf-8")
	f.StringVarP(&in.PaymentType, "type", "t", "", "paylogin, credit_paydirect, credit_payback or easypay")
	f.StringVarP(&in.Language, "lang", "l", "", "BG or EN")
	f.StringVar(&in.URLOK, "url-ok", "", "Return URL after payment (default EPAY_DEFAULT_URL_OK)")
	f.StringVar(&in.URLCancel, "url-cancel", "", "Return URL after cancel (default EPAY_DEFAULT_URL_CANCEL)")
}

func (in *paymentInput) record() epay.PaymentRecord {
	return epay.PaymentRecord{
		Invoice:        in.Invoice,
		Amount:         in.Amount,
		ExpirationTime: in.Expiration,
		Description:    in.Description,
		Currency:       in.Currency,
		Encoding:       in.Encoding,
	}
}

// session validates the input and builds a session from the environment.
func (in *paymentInput) session() (*epay.Session, epay.Config, error) {
	if err := config.App().Validator.Struct(in); err != nil {
		return nil, epay.Config{}, fmt.Errorf("invalid input: %w", err)
	}

	cfg, err := config.EpayConfig()
	if err != nil {
		return nil, cfg, err
	}

	opts := []epay.Option{epay.WithRecord(in.record())}
	if in.PaymentType != "" {
		opts = append(opts, epay.WithPaymentType(in.PaymentType))
	}
	if in.Language != "" {
		opts = append(opts, epay.WithLanguage(in.Language))
	}

	session, err := epay.NewSession(cfg, opts...)
	if err != nil {
		return nil, cfg, err
	}

	logger.Debug("Payment request encoded", logger.LogContext{
		Invoice: session.Invoice(),
		Fields: map[string]any{
			"page":   string(session.PaymentType()),
			"amount": session.Amount(),
		},
	})
	return session, cfg, nil
}

func newParamsCommand() *cobra.Command {
	var in paymentInput

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the signed payment parameters as JSON",
		Long:  `Encode and sign a payment request and print URL, PAGE, LANG, ENCODED, CHECKSUM, URL_OK and URL_CANCEL.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, _, err := in.session()
			if err != nil {
				return err
			}

			params, err := session.PaymentFields(in.URLOK, in.URLCancel)
			if err != nil {
				return err
			}
			params[epay.FieldURL] = session.TargetURL()

			return writeJSON(cmd.OutOrStdout(), params)
		},
	}
	in.bind(cmd)

	return cmd
}

func newFormCommand() *cobra.Command {
	var in paymentInput

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Print an HTML form posting the payment to the gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, _, err := in.session()
			if err != nil {
				return err
			}

			fields, err := session.PaymentFieldsHTML(in.URLOK, in.URLCancel)
			if err != nil {
				return err
			}

			return paymentFormTemplate.Execute(cmd.OutOrStdout(), paymentFormData{
				Action: session.TargetURL(),
				Fields: fields,
			})
		},
	}
	in.bind(cmd)

	return cmd
}

func newIDNCommand() *cobra.Command {
	var in paymentInput

	cmd := &cobra.Command{
		Use:   "idn",
		Short: "Register an easypay payment and print its IDN",
		Long:  `Send the signed request to the easypay registration endpoint and print the payment code the customer pays with at an EasyPay office.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, cfg, err := in.session()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTPTimeout+5*time.Second)
			defer cancel()

			idn, err := session.RequestIDNumber(ctx)
			if err != nil {
				logger.Error("Easypay registration failed", err, logger.LogContext{Invoice: session.Invoice()})
				return err
			}

			logger.Info("Easypay IDN issued", logger.LogContext{Invoice: session.Invoice()})
			return writeJSON(cmd.OutOrStdout(), map[string]string{
				"invoice": session.Invoice(),
				"idn":     idn,
			})
		},
	}
	in.bind(cmd)

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
