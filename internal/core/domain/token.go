package domain

import "time"

// TokenKind tags the outcome of decoding a bearer token's payload segment.
type TokenKind int

const (
	// TokenDecoded means the token had three segments and a readable payload.
	// Expiry is zero when the payload carries no numeric exp claim.
	TokenDecoded TokenKind = iota
	// TokenOpaque means the token is not a three-segment structure.
	TokenOpaque
	// TokenMalformed means the token looked like a JWT but the payload could not be read.
	TokenMalformed
)

func (k TokenKind) String() string {
	switch k {
	case TokenDecoded:
		return "decoded"
	case TokenOpaque:
		return "opaque"
	case TokenMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// TokenPayload is the result of decoding a token without verifying it.
type TokenPayload struct {
	Kind   TokenKind
	Expiry time.Time
}

// ExpiredAt reports whether the payload carries an exp claim earlier than now.
// Opaque and malformed tokens never expire by this check.
func (p TokenPayload) ExpiredAt(now time.Time) bool {
	if p.Kind != TokenDecoded || p.Expiry.IsZero() {
		return false
	}
	return p.Expiry.Before(now)
}
