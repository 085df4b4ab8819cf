package epay

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
)

// Sign returns the lowercase hex HMAC-SHA1 of payload keyed by secret.
// The payload is the base64 ENCODED string, not the plain record text.
func Sign(secret, payload string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether candidate is the checksum of payload. The
// comparison runs in constant time.
func Verify(secret, payload, candidate string) bool {
	return hmac.Equal([]byte(Sign(secret, payload)), []byte(candidate))
}
