package service

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freelancehub/session-gateway/internal/core/domain"
)

func seg(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestDecodeToken(t *testing.T) {
	exp := time.Unix(1735732800, 0)

	cases := []struct {
		name   string
		token  string
		kind   domain.TokenKind
		expiry time.Time
	}{
		{"signed jwt", jwtExpiring(t, exp), domain.TokenDecoded, exp},
		{"no exp", jwtWithClaims(t, jwt.MapClaims{"sub": "u"}), domain.TokenDecoded, time.Time{}},
		{"string exp is ignored", "x." + seg(`{"exp":"tomorrow"}`) + ".y", domain.TokenDecoded, time.Time{}},
		{"header never inspected", "not-json." + seg(`{"exp":1735732800}`) + ".sig", domain.TokenDecoded, exp},
		{"opaque", "abc123", domain.TokenOpaque, time.Time{}},
		{"two segments", "a.b", domain.TokenOpaque, time.Time{}},
		{"four segments", "a.b.c.d", domain.TokenOpaque, time.Time{}},
		{"bad base64", "a.@@@.c", domain.TokenMalformed, time.Time{}},
		{"payload not json", "a." + seg("hello") + ".c", domain.TokenMalformed, time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeToken(tc.token)
			if got.Kind != tc.kind {
				t.Fatalf("kind = %s, want %s", got.Kind, tc.kind)
			}
			if !got.Expiry.Equal(tc.expiry) {
				t.Fatalf("expiry = %v, want %v", got.Expiry, tc.expiry)
			}
		})
	}
}

func TestTokenPayload_ExpiredAt(t *testing.T) {
	now := time.Unix(1000, 0)

	if !(domain.TokenPayload{Kind: domain.TokenDecoded, Expiry: now.Add(-time.Second)}).ExpiredAt(now) {
		t.Fatalf("past expiry must be expired")
	}
	if (domain.TokenPayload{Kind: domain.TokenDecoded, Expiry: now}).ExpiredAt(now) {
		t.Fatalf("expiry equal to now is not yet expired")
	}
	if (domain.TokenPayload{Kind: domain.TokenDecoded}).ExpiredAt(now) {
		t.Fatalf("missing exp must not be expired")
	}
	if (domain.TokenPayload{Kind: domain.TokenOpaque, Expiry: now.Add(-time.Hour)}).ExpiredAt(now) {
		t.Fatalf("opaque tokens never expire by payload")
	}
}
