// Package provider holds the plumbing shared by payment gateway integrations.
//
// It does not know anything about a specific gateway. Gateways live in
// sub-packages (see provider/epay) and use this package for:
//
//   - ConfigField and ValidateConfigFields: declarative validation of the
//     flat key/value configuration a gateway is initialized with
//   - HTTPClient and ProviderHTTPClient: the outbound transport a gateway
//     calls into, injectable so tests never touch the network
//
// # Configuration
//
// Gateways describe their configuration as a list of fields:
//
//	fields := []provider.ConfigField{
//	    {Key: "min", Required: true, Type: "string"},
//	    {Key: "production", Type: "boolean"},
//	    {Key: "language", Enum: []string{"BG", "EN"}},
//	}
//
//	if err := provider.ValidateConfigFields("epay", conf, fields); err != nil {
//	    return err
//	}
//
// Required fields must be present and non-blank. Optional fields are only
// checked when they carry a value.
//
// # HTTP
//
// ProviderHTTPClient wraps net/http with a per-client timeout and default
// headers. A non-2xx answer is reported as a *StatusError alongside the
// response, a transport failure as a plain error with a nil response:
//
//	client := provider.NewProviderHTTPClient(provider.CreateHTTPClientConfig("", 10*time.Second))
//	resp, err := client.SendRaw(ctx, &provider.HTTPRequest{
//	    Endpoint:    "https://demo.epay.bg/ezp/reg_bill.cgi",
//	    QueryParams: map[string]string{"ENCODED": encoded, "CHECKSUM": checksum},
//	})
//
// The client never retries. Callers bound the call through ctx.
package provider
