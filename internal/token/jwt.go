package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// headerJSON is the fixed JOSE header. The fixture always signs with
// HMAC-SHA256, so the header never varies.
const headerJSON = `{"alg":"HS256","typ":"JWT"}`

// DefaultTTL is the fixture lifetime when Config.TTL is zero.
const DefaultTTL = time.Hour

// ErrEmptySecret is returned when signing is attempted without a secret.
var ErrEmptySecret = errors.New("token secret must not be empty")

// Config holds the claim values and signing secret for a fixture token.
// Values are injected at call time rather than hard-coded so tests and
// alternative environments can substitute their own.
type Config struct {
	// Secret is the shared HMAC-SHA256 signing secret.
	Secret string

	// Subject becomes the "sub" claim.
	Subject string

	// Scope becomes the "scope" claim.
	Scope string

	// Issuer becomes the "iss" claim.
	Issuer string

	// Audience becomes the "aud" claim.
	Audience string

	// TTL is added to the signing time to produce the "exp" claim.
	// Zero means DefaultTTL.
	TTL time.Duration
}

// Claims is the JWT payload. Field order matches the original fixture
// generator so payloads read the same way when decoded.
type Claims struct {
	Subject   string `json:"sub"`
	Scope     string `json:"scope"`
	Issuer    string `json:"iss"`
	Audience  string `json:"aud"`
	ExpiresAt int64  `json:"exp"`
}

// Sign produces a compact JWT: base64url(header).base64url(payload).
// base64url(signature), each segment encoded without padding. The signature
// is HMAC-SHA256 over the ASCII "header.payload" string using cfg.Secret.
func Sign(cfg Config, now time.Time) (string, error) {
	if cfg.Secret == "" {
		return "", ErrEmptySecret
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	claims := Claims{
		Subject:   cfg.Subject,
		Scope:     cfg.Scope,
		Issuer:    cfg.Issuer,
		Audience:  cfg.Audience,
		ExpiresAt: now.Add(ttl).Unix(),
	}

	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %w", err)
	}

	header := base64.RawURLEncoding.EncodeToString([]byte(headerJSON))
	payload := base64.RawURLEncoding.EncodeToString(payloadJSON)

	mac := hmac.New(sha256.New, []byte(cfg.Secret))
	mac.Write([]byte(header + "." + payload))
	signature := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return header + "." + payload + "." + signature, nil
}
