package epay

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	// ExpirationLayout is the EXP_TIME format: DD.MM.YYYY HH:MM:SS.
	ExpirationLayout = "02.01.2006 15:04:05"

	// EncodingUTF8 is the only ENCODING marker the gateway understands.
	EncodingUTF8 = "utf-8"

	maxDescriptionLength = 100
)

var (
	invoicePattern    = regexp.MustCompile(`^\d+$`)
	amountPattern     = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	expirationPattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}:\d{2}$`)
)

// PaymentRecord is the data serialized into the ENCODED request field.
type PaymentRecord struct {
	MIN            string `json:"min"`
	Invoice        string `json:"invoice"`
	Amount         string `json:"amount"`
	ExpirationTime string `json:"expirationTime,omitempty"`
	Description    string `json:"description,omitempty"`
	Currency       string `json:"currency,omitempty"`
	Encoding       string `json:"encoding,omitempty"`
}

// Validate checks every field of the record. Currency and encoding are only
// checked when set.
func (r PaymentRecord) Validate() error {
	if err := ValidateInvoice(r.Invoice); err != nil {
		return err
	}
	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}
	if err := ValidateExpiration(r.ExpirationTime); err != nil {
		return err
	}
	if err := ValidateDescription(r.Description); err != nil {
		return err
	}
	if r.Currency != "" {
		if err := ValidateCurrency(r.Currency); err != nil {
			return err
		}
	}
	if r.Encoding != "" {
		if err := ValidateEncoding(r.Encoding); err != nil {
			return err
		}
	}
	return nil
}

// ValidateInvoice requires a non-empty string of ASCII digits.
func ValidateInvoice(v string) error {
	if !invoicePattern.MatchString(v) {
		return fmt.Errorf("%w: %q", ErrInvalidInvoice, v)
	}
	return nil
}

// ValidateAmount requires a non-negative decimal with at most two fraction digits.
func ValidateAmount(v string) error {
	if !amountPattern.MatchString(v) {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, v)
	}
	return nil
}

// ValidateExpiration checks the DD.MM.YYYY HH:MM:SS shape only. Calendar
// validity is not checked.
func ValidateExpiration(v string) error {
	if !expirationPattern.MatchString(v) {
		return fmt.Errorf("%w: %q", ErrInvalidExpiration, v)
	}
	return nil
}

// ValidateDescription limits the description to 100 bytes on a single line.
// A line break would let the text inject extra KEY=value lines.
func ValidateDescription(v string) error {
	if len(v) > maxDescriptionLength {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidDescription, len(v), maxDescriptionLength)
	}
	if strings.ContainsAny(v, "\r\n") {
		return fmt.Errorf("%w: line breaks are not allowed, they would inject extra KEY=value lines into the request", ErrInvalidDescription)
	}
	return nil
}

// ValidateCurrency accepts BGN, USD and EUR.
func ValidateCurrency(v string) error {
	if !slices.Contains(Currencies, v) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, v)
	}
	return nil
}

// ValidateEncoding accepts the utf-8 marker only.
func ValidateEncoding(v string) error {
	if v != EncodingUTF8 {
		return fmt.Errorf("%w: %q", ErrInvalidEncoding, v)
	}
	return nil
}

// FormatAmount renders an amount in major units with two decimals.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// RandomInvoice returns a random 10 digit invoice number. It is not
// cryptographically random and only loosely unique.
func RandomInvoice() string {
	return strconv.FormatInt(1_000_000_000+rand.Int64N(9_000_000_000), 10)
}
