package cyberark

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the expiration claim from a session token when the
// token is a JWT. CyberArk deployments differ: some issue JWTs, others issue
// opaque tokens. The claim is read without signature verification and is
// used only for diagnostics, never for trust decisions.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
