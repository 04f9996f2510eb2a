package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether a stored bearer token is a JWT whose expiry
// has passed. The signature is not verified; this is a local fast-fail so a
// command can say "session expired, log in again" instead of collecting a
// guaranteed 401. Opaque tokens and JWTs without an exp claim are treated as
// not expired and left for the server to judge.
func TokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
