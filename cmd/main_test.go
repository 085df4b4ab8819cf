package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstgnz/goepay/provider/epay"
)

const testSecret = "cli-test-secret"

func setMerchantEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EPAY_MIN", "1000000000")
	t.Setenv("EPAY_SECRET", testSecret)
	t.Setenv("EPAY_DEFAULT_URL_OK", "https://shop.example/ok")
	t.Setenv("EPAY_DEFAULT_URL_CANCEL", "https://shop.example/cancel")
	t.Setenv("ENABLE_OPENSEARCH_LOGGING", "false")
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	root := newRootCommand()
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestParamsCommand(t *testing.T) {
	setMerchantEnv(t)

	out, err := run(t, "params",
		"--invoice", "42",
		"--amount", "25.50",
		"--expiration", "01.01.2030 12:00:00",
		"--description", "Order 42",
		"--currency", "EUR",
		"--lang", "EN",
	)
	require.NoError(t, err)

	var params map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &params))

	assert.Equal(t, "https://demo.epay.bg/en/", params[epay.FieldURL])
	assert.Equal(t, "paylogin", params[epay.FieldPage])
	assert.Equal(t, "en", params[epay.FieldLang])
	assert.Equal(t, "https://shop.example/ok", params[epay.FieldURLOK])
	assert.Equal(t, "https://shop.example/cancel", params[epay.FieldURLCancel])

	decoded, err := base64.StdEncoding.DecodeString(params[epay.FieldEncoded])
	require.NoError(t, err)
	assert.Equal(t, "MIN=1000000000\nINVOICE=42\nEXP_TIME=01.01.2030 12:00:00\nAMOUNT=25.50\nDESCRIPTION=Order 42\nCURRENCY=EUR", string(decoded))
	assert.Equal(t, epay.Sign(testSecret, params[epay.FieldEncoded]), params[epay.FieldChecksum])
}

func TestParamsCommand_InvalidInput(t *testing.T) {
	setMerchantEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing amount", []string{"params", "--invoice", "1"}},
		{"three decimals", []string{"params", "--invoice", "1", "--amount", "12.345"}},
		{"letters in invoice", []string{"params", "--invoice", "A1", "--amount", "1"}},
		{"bad expiration", []string{"params", "--invoice", "1", "--amount", "1", "--expiration", "2030-01-01"}},
		{"bad currency", []string{"params", "--invoice", "1", "--amount", "1", "--currency", "GBP"}},
		{"bad payment type", []string{"params", "--invoice", "1", "--amount", "1", "--type", "cash"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			assert.Error(t, err)
			assert.Empty(t, out)
		})
	}
}

func TestParamsCommand_MissingMerchant(t *testing.T) {
	setMerchantEnv(t)
	t.Setenv("EPAY_SECRET", "")

	_, err := run(t, "params", "--invoice", "1", "--amount", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret")
}

func TestFormCommand(t *testing.T) {
	setMerchantEnv(t)

	out, err := run(t, "form",
		"--invoice", "7",
		"--amount", "10",
		"--expiration", "01.01.2030 12:00:00",
		"--type", "credit_paydirect",
		"--url-ok", "https://shop.example/thanks?id=7&x=1",
	)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<form action="https://demo.epay.bg/" method="POST">`))
	assert.Contains(t, out, `<input type="hidden" name="PAGE" value="credit_paydirect">`)
	assert.Contains(t, out, `<input type="hidden" name="LANG" value="bg">`)
	assert.Contains(t, out, `value="https://shop.example/thanks?id=7&amp;x=1"`)
	assert.Contains(t, out, `name="URL_CANCEL" value="https://shop.example/cancel"`)
	assert.True(t, strings.HasSuffix(out, "</form>\n"))
}

func TestIDNCommand(t *testing.T) {
	setMerchantEnv(t)

	var query map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"ENCODED":  r.URL.Query().Get("ENCODED"),
			"CHECKSUM": r.URL.Query().Get("CHECKSUM"),
		}
		_, _ = w.Write([]byte("IDN=5501234567\n"))
	}))
	defer server.Close()
	t.Setenv("EPAY_EASYPAY_URL", server.URL)

	out, err := run(t, "idn", "--invoice", "99", "--amount", "5.00", "--type", "easypay")
	require.NoError(t, err)

	var result map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "99", result["invoice"])
	assert.Equal(t, "5501234567", result["idn"])

	require.NotEmpty(t, query["ENCODED"])
	assert.Equal(t, epay.Sign(testSecret, query["ENCODED"]), query["CHECKSUM"])
}

func TestIDNCommand_GatewayError(t *testing.T) {
	setMerchantEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ERR=BAD_CHECKSUM\n"))
	}))
	defer server.Close()
	t.Setenv("EPAY_EASYPAY_URL", server.URL)

	_, err := run(t, "idn", "--invoice", "99", "--amount", "5.00")
	require.Error(t, err)
	assert.ErrorIs(t, err, epay.ErrInvalidEasypayResponse)
	assert.Contains(t, err.Error(), "BAD_CHECKSUM")
}

func TestParseCommand(t *testing.T) {
	setMerchantEnv(t)

	encoded := base64.StdEncoding.EncodeToString([]byte(
		"INVOICE=1:STATUS=PAID:PAY_TIME=20240101100000:STAN=123456:BCODE=AB12\nINVOICE=2:STATUS=DENIED\nINVOICE=3:STATUS=EXPIRED\n"))

	out, err := run(t, "parse", "--encoded", encoded, "--checksum", epay.Sign(testSecret, encoded))
	require.NoError(t, err)

	var result parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Notifications, 3)
	assert.Equal(t, epay.Notification{
		Invoice: "1",
		Status:  epay.StatusPaid,
		PayDate: "20240101100000",
		STAN:    "123456",
		BCode:   "AB12",
	}, result.Notifications[0])
	assert.Equal(t, "INVOICE=1:STATUS=OK\nINVOICE=2:STATUS=ERR\nINVOICE=3:STATUS=NO\n", result.Response)
}

func TestParseCommand_InvalidChecksum(t *testing.T) {
	setMerchantEnv(t)

	encoded := base64.StdEncoding.EncodeToString([]byte("INVOICE=1:STATUS=PAID"))

	out, err := run(t, "parse", "--encoded", encoded, "--checksum", epay.Sign("other-secret", encoded))
	assert.ErrorIs(t, err, epay.ErrInvalidChecksum)
	assert.Empty(t, out)
}

func TestParseCommand_RequiredFlags(t *testing.T) {
	setMerchantEnv(t)

	_, err := run(t, "parse", "--encoded", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestHistoryCommand_LoggingDisabled(t *testing.T) {
	setMerchantEnv(t)

	_, err := run(t, "history", "--invoice", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENABLE_OPENSEARCH_LOGGING")
}

func TestHistoryCommand_InvalidInvoice(t *testing.T) {
	setMerchantEnv(t)

	_, err := run(t, "history", "--invoice", "42a")
	assert.ErrorIs(t, err, epay.ErrInvalidInvoice)
}

func TestHistoryCommand(t *testing.T) {
	setMerchantEnv(t)

	var searched string
	cluster := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodHead:
			w.WriteHeader(http.StatusOK)
		case strings.HasSuffix(r.URL.Path, "/_search"):
			searched = r.URL.Path
			_, _ = w.Write([]byte(`{"hits":{"hits":[
				{"_source":{"invoice":"42","status":"PAID","acknowledgement":"INVOICE=42:STATUS=OK"}},
				{"_source":{"invoice":"42","status":"PAID","error":"order store unavailable"}}
			]}}`))
		default:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"result":"created"}`))
		}
	}))
	defer cluster.Close()

	t.Setenv("ENABLE_OPENSEARCH_LOGGING", "true")
	t.Setenv("OPENSEARCH_URL", cluster.URL)

	out, err := run(t, "history", "--invoice", "42")
	require.NoError(t, err)
	assert.Equal(t, "/epay-notifications/_search", searched)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "INVOICE=42:STATUS=OK", entries[0]["acknowledgement"])
	assert.Equal(t, "order store unavailable", entries[1]["error"])
}
