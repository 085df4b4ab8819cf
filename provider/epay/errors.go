package epay

import "errors"

// Validation and integrity failures. Callers match them with errors.Is.
var (
	ErrInvalidInvoice         = errors.New("epay: invalid invoice")
	ErrInvalidAmount          = errors.New("epay: invalid amount")
	ErrInvalidExpiration      = errors.New("epay: invalid expiration time")
	ErrInvalidDescription     = errors.New("epay: invalid description")
	ErrInvalidCurrency        = errors.New("epay: invalid currency")
	ErrInvalidEncoding        = errors.New("epay: invalid encoding")
	ErrInvalidChecksum        = errors.New("epay: invalid checksum")
	ErrInvalidEasypayResponse = errors.New("epay: invalid easypay response")

	ErrInvalidPaymentType    = errors.New("epay: invalid payment type")
	ErrInvalidLanguage       = errors.New("epay: invalid language")
	ErrMissingPayload        = errors.New("epay: no encoded payment data")
	ErrMalformedNotification = errors.New("epay: malformed notification payload")
	ErrTransport             = errors.New("epay: easypay request failed")
)
