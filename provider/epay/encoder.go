package epay

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// FormatRecord serializes the record into newline separated KEY=value lines.
// The key order is fixed; CURRENCY and ENCODING are written only when set.
func FormatRecord(r PaymentRecord) string {
	lines := []string{
		"MIN=" + r.MIN,
		"INVOICE=" + r.Invoice,
		"EXP_TIME=" + r.ExpirationTime,
		"AMOUNT=" + r.Amount,
		"DESCRIPTION=" + r.Description,
	}
	if r.Currency != "" {
		lines = append(lines, "CURRENCY="+r.Currency)
	}
	if r.Encoding != "" {
		lines = append(lines, "ENCODING="+r.Encoding)
	}
	return strings.Join(lines, "\n")
}

// Encode returns the base64 form of FormatRecord, the ENCODED request field.
func Encode(r PaymentRecord) string {
	return base64.StdEncoding.EncodeToString([]byte(FormatRecord(r)))
}

// Decode reverses the base64 step of Encode. Unpadded input is accepted.
func Decode(encoded string) (string, error) {
	encoded = strings.TrimSpace(encoded)

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		var rawErr error
		if data, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "=")); rawErr != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedNotification, err)
		}
	}
	return string(data), nil
}
