package provider

import (
	"context"
)

// ConfigField represents a configuration field accepted by a payment gateway
type ConfigField struct {
	Key         string   `json:"key"`
	Required    bool     `json:"required"`
	Type        string   `json:"type"` // "string", "number", "url", "boolean"
	Description string   `json:"description"`
	Example     string   `json:"example"`
	Pattern     string   `json:"pattern,omitempty"`   // regex pattern for validation
	Enum        []string `json:"enum,omitempty"`      // allowed values, compared case-insensitively
	MinLength   int      `json:"minLength,omitempty"` // minimum length for string fields
	MaxLength   int      `json:"maxLength,omitempty"` // maximum length for string fields
}

// HTTPClient is the outbound transport used by gateways.
//
// Implementations must return a non-nil *HTTPResponse together with a
// *StatusError when the remote side answered with a non-2xx status, and a
// plain error (nil response) when the request never completed. Callers are
// expected to bound ctx with a deadline; the client does not retry.
type HTTPClient interface {
	SendRaw(ctx context.Context, req *HTTPRequest) (*HTTPResponse, error)
}
