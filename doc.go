// Package goepay is a merchant-side client for the ePay.bg payment gateway.
//
// It builds the signed payment request a shop hands to the gateway, registers
// cash (easypay) payments, and verifies and acknowledges the notifications the
// gateway posts back.
//
// # Overview
//
// The payment flow follows this pattern:
//
//	┌─────────────────┐  signed form  ┌─────────────────┐
//	│                 │──────────────►│                 │
//	│   Your Shop     │               │    ePay.bg      │
//	│ (goepay/epay)   │◄──────────────│    Gateway      │
//	│                 │  notification │                 │
//	└─────────────────┘   + ack       └─────────────────┘
//
// A request is a short KEY=value record (merchant MIN, invoice, expiration,
// amount, description, optional currency and encoding). It travels base64
// encoded as ENCODED together with CHECKSUM, the hex HMAC-SHA1 of ENCODED
// keyed with the merchant secret. Notifications come back in the same
// ENCODED/CHECKSUM shape and are answered with one
// INVOICE=<n>:STATUS=OK|ERR|NO line per invoice.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/mstgnz/goepay/provider/epay"
//	)
//
//	func main() {
//	    cfg, err := epay.NewConfig(map[string]string{
//	        "min":    "1000000000",
//	        "secret": "merchant-secret",
//	        "urlOk":  "https://shop.example.com/ok",
//	    })
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    session, err := epay.NewSession(cfg, epay.WithRecord(epay.PaymentRecord{
//	        Invoice:     "1001",
//	        Amount:      "25.50",
//	        Description: "Order 1001",
//	    }))
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    params, _ := session.PaymentParameters()
//	    fmt.Println(params["URL"], params["ENCODED"], params["CHECKSUM"])
//	}
//
// # Notifications
//
// handler.NotifyHandler verifies callbacks and answers the gateway. Mount it
// on your own chi router with router.Routes:
//
//	r := chi.NewRouter()
//	router.Routes(r, handler.NewNotifyHandler(cfg.Secret, markOrderPaid), config.NotifyAllowedIPs())
//
// A hook error withholds the acknowledgement so the gateway retries.
//
// # Configuration
//
// The CLI and the example read the merchant profile from EPAY_* environment
// variables (see .env.example):
//
//	EPAY_MIN=1000000000
//	EPAY_SECRET=merchant-secret
//	EPAY_PRODUCTION=false
//
// # Command Line
//
//	goepay params --invoice 1001 --amount 25.50 --description "Order 1001"
//	goepay form   --invoice 1001 --amount 25.50
//	goepay idn    --invoice 1001 --amount 25.50
//	goepay parse  --encoded ... --checksum ...
//	goepay history --invoice 1001
//
// # Logging
//
// Edges (handler, middleware, CLI) log through infra/logger. Entries and
// verified notifications can be shipped to OpenSearch with
// ENABLE_OPENSEARCH_LOGGING=true. The provider/epay package never logs.
//
// # Examples
//
//   - examples/checkout - checkout page and notification endpoint
package goepay
