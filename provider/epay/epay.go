package epay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mstgnz/goepay/provider"
)

const (
	gatewayProductionURL = "https://epay.bg/"
	gatewayDemoURL       = "https://demo.epay.bg/"

	easypayProductionURL = "https://www.epay.bg/ezp/reg_bill.cgi"
	easypayDemoURL       = "https://demo.epay.bg/ezp/reg_bill.cgi"

	idnMarker   = "IDN="
	errorMarker = "ERR="
)

// Session builds outbound payment requests for one payment and parses the
// gateway callbacks for its merchant. A Session is not safe for concurrent use.
type Session struct {
	config      Config
	paymentType PaymentType
	language    Language

	record   PaymentRecord
	encoded  string
	checksum string
	idn      string

	httpClient provider.HTTPClient
	now        func() time.Time
	initial    *PaymentRecord
}

// Option configures a Session at construction.
type Option func(*Session) error

// WithPaymentType sets the gateway page. Unknown types fail construction.
func WithPaymentType(t string) Option {
	return func(s *Session) error {
		pt, err := ParsePaymentType(t)
		if err != nil {
			return err
		}
		s.paymentType = pt
		return nil
	}
}

// WithLanguage sets the page language, case-insensitively.
func WithLanguage(lang string) Option {
	return func(s *Session) error {
		l, err := ParseLanguage(lang)
		if err != nil {
			return err
		}
		s.language = l
		return nil
	}
}

// WithHTTPClient replaces the client used by RequestIDNumber.
func WithHTTPClient(client provider.HTTPClient) Option {
	return func(s *Session) error {
		if client == nil {
			return errors.New("epay: http client cannot be nil")
		}
		s.httpClient = client
		return nil
	}
}

// WithClock replaces the time source used for the default expiration.
func WithClock(now func() time.Time) Option {
	return func(s *Session) error {
		s.now = now
		return nil
	}
}

// WithRecord sets the initial payment data. It is applied through SetData
// once every other option has run.
func WithRecord(r PaymentRecord) Option {
	return func(s *Session) error {
		s.initial = &r
		return nil
	}
}

// NewSession validates cfg and returns a session. Payment type and language
// default to the configured ones, then to paylogin and BG.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.ExpirationHours == 0 {
		cfg.ExpirationHours = defaultExpirationHours
	}

	s := &Session{
		config:      cfg,
		paymentType: TypePayLogin,
		language:    LanguageBG,
		now:         time.Now,
	}

	if cfg.PaymentType != "" {
		pt, err := ParsePaymentType(cfg.PaymentType)
		if err != nil {
			return nil, err
		}
		s.paymentType = pt
	}
	if cfg.Language != "" {
		l, err := ParseLanguage(cfg.Language)
		if err != nil {
			return nil, err
		}
		s.language = l
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.httpClient == nil {
		s.httpClient = provider.NewProviderHTTPClient(provider.CreateHTTPClientConfig("", cfg.HTTPTimeout))
	}

	if s.initial != nil {
		if err := s.SetData(*s.initial); err != nil {
			return nil, err
		}
		s.initial = nil
	}

	return s, nil
}

// SetData replaces the payment record and re-encodes it. The merchant MIN
// is taken from the configuration. An empty invoice is generated when the
// configuration allows it, an empty expiration defaults to now plus the
// configured hours, and an empty currency falls back to the default one.
// On error the session keeps its previous record.
func (s *Session) SetData(r PaymentRecord) error {
	r.MIN = s.config.MIN

	if r.Invoice == "" && s.config.GenerateInvoice {
		r.Invoice = RandomInvoice()
	}
	if r.ExpirationTime == "" {
		r.ExpirationTime = s.now().Add(time.Duration(s.config.ExpirationHours) * time.Hour).Format(ExpirationLayout)
	}
	if r.Currency == "" {
		r.Currency = s.config.DefaultCurrency
	}

	if err := r.Validate(); err != nil {
		return err
	}

	s.record = r
	s.encode()
	return nil
}

// Refresh re-encodes the current record. Field setters do not re-encode, so
// call Refresh after them and before building request fields.
func (s *Session) Refresh() error {
	if err := s.record.Validate(); err != nil {
		return err
	}
	s.encode()
	return nil
}

func (s *Session) encode() {
	s.encoded = Encode(s.record)
	s.checksum = Sign(s.config.Secret, s.encoded)
}

// SetInvoice validates and stores the invoice without re-encoding.
func (s *Session) SetInvoice(v string) error {
	if err := ValidateInvoice(v); err != nil {
		return err
	}
	s.record.Invoice = v
	return nil
}

// SetAmount validates and stores the amount without re-encoding.
func (s *Session) SetAmount(v string) error {
	if err := ValidateAmount(v); err != nil {
		return err
	}
	s.record.Amount = v
	return nil
}

// SetExpiration validates and stores the expiration time without re-encoding.
func (s *Session) SetExpiration(v string) error {
	if err := ValidateExpiration(v); err != nil {
		return err
	}
	s.record.ExpirationTime = v
	return nil
}

// SetDescription validates and stores the description without re-encoding.
func (s *Session) SetDescription(v string) error {
	if err := ValidateDescription(v); err != nil {
		return err
	}
	s.record.Description = v
	return nil
}

// SetCurrency validates and stores the currency without re-encoding. An
// empty value removes CURRENCY from the record.
func (s *Session) SetCurrency(v string) error {
	if v != "" {
		if err := ValidateCurrency(v); err != nil {
			return err
		}
	}
	s.record.Currency = v
	return nil
}

// SetEncoding validates and stores the encoding marker without re-encoding.
// An empty value removes ENCODING from the record.
func (s *Session) SetEncoding(v string) error {
	if v != "" {
		if err := ValidateEncoding(v); err != nil {
			return err
		}
	}
	s.record.Encoding = v
	return nil
}

func (s *Session) Invoice() string        { return s.record.Invoice }
func (s *Session) Amount() string         { return s.record.Amount }
func (s *Session) ExpirationTime() string { return s.record.ExpirationTime }
func (s *Session) Description() string    { return s.record.Description }
func (s *Session) Currency() string       { return s.record.Currency }
func (s *Session) Encoding() string       { return s.record.Encoding }
func (s *Session) Record() PaymentRecord  { return s.record }

func (s *Session) PaymentType() PaymentType { return s.paymentType }
func (s *Session) Language() Language       { return s.language }

// Encoded returns the ENCODED field of the last SetData or Refresh.
func (s *Session) Encoded() string { return s.encoded }

// Checksum returns the CHECKSUM of Encoded.
func (s *Session) Checksum() string { return s.checksum }

// EasypayIDN returns the code obtained by the last RequestIDNumber.
func (s *Session) EasypayIDN() string { return s.idn }

// TargetURL is the gateway page the payment form posts to. The demo gateway
// serves English pages under en/.
func (s *Session) TargetURL() string {
	if s.config.GatewayURL != "" {
		return s.config.GatewayURL
	}
	if s.config.Production {
		return gatewayProductionURL
	}
	if s.language == LanguageEN {
		return gatewayDemoURL + "en/"
	}
	return gatewayDemoURL
}

func (s *Session) easypayURL() string {
	if s.config.EasypayURL != "" {
		return s.config.EasypayURL
	}
	if s.config.Production {
		return easypayProductionURL
	}
	return easypayDemoURL
}

// PaymentFields returns the hidden form fields for the gateway page. Empty
// URLs fall back to the configured defaults. LANG is sent lowercase, the
// form the gateway pages expect.
func (s *Session) PaymentFields(urlOK, urlCancel string) (map[string]string, error) {
	if s.encoded == "" {
		return nil, ErrMissingPayload
	}
	if urlOK == "" {
		urlOK = s.config.URLOK
	}
	if urlCancel == "" {
		urlCancel = s.config.URLCancel
	}

	return map[string]string{
		FieldPage:      string(s.paymentType),
		FieldLang:      strings.ToLower(string(s.language)),
		FieldEncoded:   s.encoded,
		FieldChecksum:  s.checksum,
		FieldURLOK:     urlOK,
		FieldURLCancel: urlCancel,
	}, nil
}

// PaymentParameters returns PaymentFields with the configured URLs plus
// the target URL under the URL key.
func (s *Session) PaymentParameters() (map[string]string, error) {
	params, err := s.PaymentFields("", "")
	if err != nil {
		return nil, err
	}
	params[FieldURL] = s.TargetURL()
	return params, nil
}

// RequestIDNumber registers the current payment for a cash payment and
// stores the IDN the gateway issues. It performs one GET through the
// session's HTTP client and never retries; bound ctx with a deadline.
func (s *Session) RequestIDNumber(ctx context.Context) (string, error) {
	if s.encoded == "" {
		return "", ErrMissingPayload
	}

	resp, err := s.httpClient.SendRaw(ctx, &provider.HTTPRequest{
		Method:   http.MethodGet,
		Endpoint: s.easypayURL(),
		QueryParams: map[string]string{
			FieldEncoded:  s.encoded,
			FieldChecksum: s.checksum,
		},
	})
	if err != nil {
		var statusErr *provider.StatusError
		if errors.As(err, &statusErr) {
			return "", fmt.Errorf("%w: HTTP %d", ErrInvalidEasypayResponse, statusErr.StatusCode)
		}
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrInvalidEasypayResponse, resp.StatusCode)
	}

	idn, err := parseIDN(resp.RawBody)
	if err != nil {
		return "", err
	}
	s.idn = idn
	return idn, nil
}

// parseIDN extracts the value after IDN= up to the first whitespace.
func parseIDN(body string) (string, error) {
	i := strings.Index(body, idnMarker)
	if i < 0 {
		if j := strings.Index(body, errorMarker); j >= 0 {
			return "", fmt.Errorf("%w: %s", ErrInvalidEasypayResponse, strings.TrimSpace(body[j+len(errorMarker):]))
		}
		return "", fmt.Errorf("%w: no IDN in response", ErrInvalidEasypayResponse)
	}

	fields := strings.Fields(body[i+len(idnMarker):])
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty IDN", ErrInvalidEasypayResponse)
	}
	return fields[0], nil
}

// ParseNotifications parses a callback with the session's secret.
func (s *Session) ParseNotifications(encoded, checksum string) ([]Notification, error) {
	return ParseNotifications(s.config.Secret, encoded, checksum)
}

// ParseResult parses a callback with the session's secret.
func (s *Session) ParseResult(encoded, checksum string) (*Result, error) {
	return ParseResult(s.config.Secret, encoded, checksum)
}
