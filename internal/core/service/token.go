package service

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freelancehub/session-gateway/internal/core/domain"
)

var segmentParser = jwt.NewParser()

// DecodeToken reads the exp claim from a token's payload segment without
// verifying its signature. The header segment is never inspected, so
// tokens with non-JSON headers still have their expiry read.
func DecodeToken(token string) domain.TokenPayload {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return domain.TokenPayload{Kind: domain.TokenOpaque}
	}

	raw, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return domain.TokenPayload{Kind: domain.TokenMalformed}
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return domain.TokenPayload{Kind: domain.TokenMalformed}
	}

	// A non-numeric exp is ignored rather than treated as expired.
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return domain.TokenPayload{Kind: domain.TokenDecoded}
	}
	return domain.TokenPayload{Kind: domain.TokenDecoded, Expiry: exp.Time}
}
