package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignaturePrefix identifies the HMAC-SHA256 scheme in webhook signature headers.
const SignaturePrefix = "sha256="

// SignPayload computes the HMAC-SHA256 signature of payload using secret,
// hex-encoded and prefixed with "sha256=". This is the value senders put
// in the X-Webhook-Signature header.
func SignPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return SignaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a sha256=-prefixed signature against the raw payload.
// An empty secret always fails verification: a webhook without a usable secret
// must reject signed requests rather than skip the check.
func VerifySignature(secret string, payload []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	expected := SignPayload(secret, payload)
	return hmac.Equal([]byte(signature), []byte(expected))
}
