// Package epay integrates with the ePay.bg payment gateway.
//
// A payment request is a PaymentRecord serialized into KEY=value lines,
// base64 encoded (the ENCODED field) and signed with HMAC-SHA1 under the
// merchant secret (the CHECKSUM field). The customer's browser posts both,
// together with PAGE, LANG, URL_OK and URL_CANCEL, to the gateway.
//
//	cfg, err := epay.NewConfig(map[string]string{
//	    "min":    "1000000000",
//	    "secret": "merchant-secret",
//	})
//	if err != nil {
//	    return err
//	}
//
//	session, err := epay.NewSession(cfg, epay.WithPaymentType("paylogin"), epay.WithLanguage("en"))
//	if err != nil {
//	    return err
//	}
//
//	if err := session.SetData(epay.PaymentRecord{Invoice: "100", Amount: "25.50", Description: "Order 100"}); err != nil {
//	    return err
//	}
//
//	params, err := session.PaymentParameters() // URL, PAGE, LANG, ENCODED, CHECKSUM, URL_OK, URL_CANCEL
//
// The gateway later reports payment state with a callback carrying encoded
// and checksum form values. ParseNotifications verifies the checksum before
// decoding anything and returns one Notification per invoice line; the
// acknowledgement body for the gateway comes from Acknowledge:
//
//	notifications, err := epay.ParseNotifications(secret, r.FormValue("encoded"), r.FormValue("checksum"))
//	if errors.Is(err, epay.ErrInvalidChecksum) {
//	    // discard the callback
//	}
//	fmt.Fprint(w, epay.Acknowledge(notifications))
//
// For cash payments (easypay) Session.RequestIDNumber registers the payment
// and returns the IDN the customer pays with. It is the only call that uses
// the network and goes through the injected provider.HTTPClient; callers
// should pass a context with a deadline.
package epay
