package epay

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mstgnz/goepay/provider"
)

const (
	defaultExpirationHours = 72
	defaultHTTPTimeout     = 30 * time.Second
)

// Config is the merchant configuration a Session is built from.
type Config struct {
	Production      bool          `json:"production"`
	MIN             string        `json:"min" validate:"required,alphanum"`
	Secret          string        `json:"-" validate:"required"`
	URLOK           string        `json:"urlOk,omitempty" validate:"omitempty,url"`
	URLCancel       string        `json:"urlCancel,omitempty" validate:"omitempty,url"`
	DefaultCurrency string        `json:"currency,omitempty" validate:"omitempty,oneof=BGN USD EUR"`
	GenerateInvoice bool          `json:"generateInvoice"`
	// Zero means the 72 hour default.
	ExpirationHours int           `json:"expirationHours" validate:"gte=0"`
	PaymentType     string        `json:"paymentType,omitempty"`
	Language        string        `json:"language,omitempty"`
	HTTPTimeout     time.Duration `json:"httpTimeout" validate:"gte=0"`

	// Endpoint overrides. Empty means the production or demo default.
	GatewayURL string `json:"gatewayUrl,omitempty" validate:"omitempty,url"`
	EasypayURL string `json:"easypayUrl,omitempty" validate:"omitempty,url"`
}

var configValidator = validator.New()

// Validate checks the struct constraints of the configuration.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("epay: invalid configuration: %w", err)
	}
	return nil
}

// RequiredConfig describes the keys accepted by NewConfig.
func RequiredConfig() []provider.ConfigField {
	return []provider.ConfigField{
		{Key: "min", Required: true, Type: "string", Description: "Merchant identification number (KIN)", Example: "1000000000", Pattern: `^\w+$`},
		{Key: "secret", Required: true, Type: "string", Description: "Shared secret used for CHECKSUM", Example: "9KQ4F1VY...", MinLength: 8},
		{Key: "production", Type: "boolean", Description: "Use the production gateway", Example: "false"},
		{Key: "urlOk", Type: "url", Description: "Default URL after a successful payment", Example: "https://shop.example.com/epay/ok"},
		{Key: "urlCancel", Type: "url", Description: "Default URL after a cancelled payment", Example: "https://shop.example.com/epay/cancel"},
		{Key: "currency", Type: "string", Description: "Default currency", Example: "BGN", Enum: Currencies},
		{Key: "generateInvoice", Type: "boolean", Description: "Generate an invoice number when none is given", Example: "true"},
		{Key: "expirationHours", Type: "number", Description: "Hours until an unpaid request expires", Example: "72"},
		{Key: "paymentType", Type: "string", Description: "Gateway page", Example: "paylogin", Enum: []string{string(TypePayLogin), string(TypeCreditPayDirect), string(TypeCreditPayBack), string(TypeEasyPay)}},
		{Key: "language", Type: "string", Description: "Gateway page language", Example: "BG", Enum: []string{string(LanguageBG), string(LanguageEN)}},
		{Key: "httpTimeout", Type: "number", Description: "Timeout in seconds for the easypay registration call", Example: "30"},
		{Key: "gatewayUrl", Type: "url", Description: "Override of the payment page URL", Example: "https://demo.epay.bg/"},
		{Key: "easypayUrl", Type: "url", Description: "Override of the easypay registration URL", Example: "https://demo.epay.bg/ezp/reg_bill.cgi"},
	}
}

// NewConfig builds a Config from a flat key/value map (see RequiredConfig).
func NewConfig(conf map[string]string) (Config, error) {
	if err := provider.ValidateConfigFields("epay", conf, RequiredConfig()); err != nil {
		return Config{}, err
	}

	cfg := Config{
		MIN:             strings.TrimSpace(conf["min"]),
		Secret:          conf["secret"],
		URLOK:           conf["urlOk"],
		URLCancel:       conf["urlCancel"],
		DefaultCurrency: strings.ToUpper(conf["currency"]),
		PaymentType:     strings.ToLower(conf["paymentType"]),
		Language:        strings.ToUpper(conf["language"]),
		ExpirationHours: defaultExpirationHours,
		HTTPTimeout:     defaultHTTPTimeout,
		GatewayURL:      conf["gatewayUrl"],
		EasypayURL:      conf["easypayUrl"],
	}

	// Types were checked by ValidateConfigFields above.
	cfg.Production, _ = strconv.ParseBool(conf["production"])
	cfg.GenerateInvoice, _ = strconv.ParseBool(conf["generateInvoice"])
	if v := conf["expirationHours"]; v != "" {
		cfg.ExpirationHours, _ = strconv.Atoi(v)
	}
	if v := conf["httpTimeout"]; v != "" {
		seconds, _ := strconv.Atoi(v)
		cfg.HTTPTimeout = time.Duration(seconds) * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
