package config

import (
	"os"
	"strings"

	"github.com/mstgnz/goepay/provider/epay"
)

// epayEnvKeys maps environment variables to epay configuration keys.
var epayEnvKeys = map[string]string{
	"EPAY_PRODUCTION":         "production",
	"EPAY_MIN":                "min",
	"EPAY_SECRET":             "secret",
	"EPAY_DEFAULT_URL_OK":     "urlOk",
	"EPAY_DEFAULT_URL_CANCEL": "urlCancel",
	"EPAY_DEFAULT_CURRENCY":   "currency",
	"EPAY_GENERATE_INVOICE":   "generateInvoice",
	"EPAY_EXPIRATION_HOURS":   "expirationHours",
	"EPAY_PAYMENT_TYPE":       "paymentType",
	"EPAY_LANGUAGE":           "language",
	"EPAY_HTTP_TIMEOUT":       "httpTimeout",
	"EPAY_GATEWAY_URL":        "gatewayUrl",
	"EPAY_EASYPAY_URL":        "easypayUrl",
}

// LoadEpayConfig collects the EPAY_* environment variables into the flat
// provider configuration map. Unset variables are left out.
func LoadEpayConfig() map[string]string {
	conf := make(map[string]string)
	for env, key := range epayEnvKeys {
		if value, ok := os.LookupEnv(env); ok {
			conf[key] = strings.TrimSpace(value)
		}
	}
	return conf
}

// EpayConfig loads and validates the epay configuration from the environment.
func EpayConfig() (epay.Config, error) {
	return epay.NewConfig(LoadEpayConfig())
}

// NotifyAllowedIPs returns the addresses in EPAY_NOTIFY_ALLOWED_IPS. An empty
// list means callbacks are accepted from any address.
func NotifyAllowedIPs() []string {
	var ips []string
	for _, ip := range strings.Split(os.Getenv("EPAY_NOTIFY_ALLOWED_IPS"), ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}
