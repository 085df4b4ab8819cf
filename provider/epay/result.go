package epay

import (
	"fmt"
	"regexp"
	"strings"
)

var notificationLine = regexp.MustCompile(`^INVOICE=(\d+):STATUS=(PAID|DENIED|EXPIRED)(:PAY_TIME=(\d+):STAN=(\d+):BCODE=([0-9a-zA-Z]+))?$`)

// Notification is one invoice status line of a gateway callback.
type Notification struct {
	Invoice string             `json:"invoice"`
	Status  NotificationStatus `json:"status"`
	PayDate string             `json:"payDate,omitempty"`
	STAN    string             `json:"stan,omitempty"`
	BCode   string             `json:"bcode,omitempty"`
}

// Acknowledgement returns the line the gateway expects for this invoice,
// without a trailing newline.
func (n Notification) Acknowledgement() string {
	switch n.Status {
	case StatusPaid:
		return AcknowledgementLine(n.Invoice, AckOK)
	case StatusDenied:
		return AcknowledgementLine(n.Invoice, AckError)
	default:
		return AcknowledgementLine(n.Invoice, AckNo)
	}
}

// AcknowledgementLine formats an INVOICE=<n>:STATUS=<ack> line.
func AcknowledgementLine(invoice, ack string) string {
	return fmt.Sprintf("INVOICE=%s:STATUS=%s", invoice, ack)
}

// Result is the flattened view of a callback: the fields of its last
// matching line.
type Result struct {
	Invoice  string             `json:"invoice"`
	Status   NotificationStatus `json:"status"`
	PayDate  string             `json:"payDate"`
	STAN     string             `json:"stan"`
	BCode    string             `json:"bcode"`
	Response string             `json:"response"`
}

// ParseNotifications verifies checksum against encoded and returns one
// Notification per matching line, in payload order. Lines that do not match
// are skipped. On a checksum mismatch nothing is decoded.
func ParseNotifications(secret, encoded, checksum string) ([]Notification, error) {
	if !Verify(secret, encoded, checksum) {
		return nil, ErrInvalidChecksum
	}

	text, err := Decode(encoded)
	if err != nil {
		return nil, err
	}

	var notifications []Notification
	for _, line := range strings.Split(text, "\n") {
		regs := notificationLine.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
		if regs == nil {
			continue
		}
		notifications = append(notifications, Notification{
			Invoice: regs[1],
			Status:  NotificationStatus(regs[2]),
			PayDate: regs[4],
			STAN:    regs[5],
			BCode:   regs[6],
		})
	}
	return notifications, nil
}

// ParseResult is ParseNotifications reduced to its last notification. A
// payload without matching lines yields an empty Result.
func ParseResult(secret, encoded, checksum string) (*Result, error) {
	notifications, err := ParseNotifications(secret, encoded, checksum)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if len(notifications) == 0 {
		return result, nil
	}

	last := notifications[len(notifications)-1]
	result.Invoice = last.Invoice
	result.Status = last.Status
	result.PayDate = last.PayDate
	result.STAN = last.STAN
	result.BCode = last.BCode
	result.Response = last.Acknowledgement() + "\n"
	return result, nil
}

// Acknowledge builds the response body for a batch: one acknowledgement
// line per notification, each terminated by a newline.
func Acknowledge(notifications []Notification) string {
	var b strings.Builder
	for _, n := range notifications {
		b.WriteString(n.Acknowledgement())
		b.WriteByte('\n')
	}
	return b.String()
}
