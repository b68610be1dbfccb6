// Package http exposes the Stripe webhook endpoint that feeds the
// reconciliation workflow.
package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/adamdarley-hub/RealSMPortal-sub003/internal/errors"
)

// signatureTolerance bounds how old a signed webhook timestamp may be.
// Matches Stripe's default replay window.
const signatureTolerance = 5 * time.Minute

// Signature verification errors.
var (
	ErrMissingSignature = apperrors.New("signature header missing or malformed")
	ErrStaleSignature   = apperrors.New("signature timestamp outside tolerance window")
	ErrBadSignature     = apperrors.New("signature does not match payload")
)

// VerifySignature checks a Stripe-Signature header against the raw request
// payload. The header carries a unix timestamp and one or more v1 signatures;
// each v1 value is HMAC-SHA256 over "<timestamp>.<payload>" keyed with the
// endpoint secret. Any matching v1 signature within the tolerance window
// passes.
func VerifySignature(payload []byte, header, secret string, now time.Time) error {
	timestamp, signatures := parseSignatureHeader(header)
	if timestamp == 0 || len(signatures) == 0 {
		return ErrMissingSignature
	}

	signedAt := time.Unix(timestamp, 0)
	age := now.Sub(signedAt)
	if age > signatureTolerance || age < -signatureTolerance {
		return ErrStaleSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, signature := range signatures {
		decoded, err := hex.DecodeString(signature)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}

	return ErrBadSignature
}

// parseSignatureHeader extracts the timestamp and v1 signatures from a
// header of the form "t=1492774577,v1=5257a...,v1=...". Unknown schemes are
// ignored.
func parseSignatureHeader(header string) (int64, []string) {
	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}

		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err == nil {
				timestamp = parsed
			}
		case "v1":
			if value != "" {
				signatures = append(signatures, value)
			}
		}
	}

	return timestamp, signatures
}
