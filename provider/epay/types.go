package epay

import (
	"fmt"
	"strings"
)

// PaymentType selects the gateway page the customer lands on (the PAGE field).
type PaymentType string

const (
	TypePayLogin        PaymentType = "paylogin"
	TypeCreditPayDirect PaymentType = "credit_paydirect"
	TypeCreditPayBack   PaymentType = "credit_payback"
	TypeEasyPay         PaymentType = "easypay"
)

var paymentTypes = []PaymentType{TypePayLogin, TypeCreditPayDirect, TypeCreditPayBack, TypeEasyPay}

// ParsePaymentType returns the payment type named by s.
func ParsePaymentType(s string) (PaymentType, error) {
	for _, t := range paymentTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentType, s)
}

// Language of the gateway pages.
type Language string

const (
	LanguageBG Language = "BG"
	LanguageEN Language = "EN"
)

// ParseLanguage accepts a language in any case and returns its upper-case form.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToUpper(strings.TrimSpace(s))) {
	case LanguageBG:
		return LanguageBG, nil
	case LanguageEN:
		return LanguageEN, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
}

// Supported currencies.
const (
	CurrencyBGN = "BGN"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// Currencies lists every currency the gateway accepts.
var Currencies = []string{CurrencyBGN, CurrencyUSD, CurrencyEUR}

// NotificationStatus is the payment state reported by a gateway notification.
type NotificationStatus string

const (
	StatusPaid    NotificationStatus = "PAID"
	StatusDenied  NotificationStatus = "DENIED"
	StatusExpired NotificationStatus = "EXPIRED"
)

// Acknowledgement statuses sent back to the gateway.
const (
	AckOK    = "OK"
	AckError = "ERR"
	AckNo    = "NO"
)
