package session

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The client never verifies token signatures (it does not hold the server's
// secret); claims are inspected only to warn about expiry and to recover a
// user id when the stored profile record is missing.

// TokenExpired reports whether the token carries an exp claim in the past.
// Tokens without an exp claim, or tokens that fail to parse, are treated as
// live; the server remains the authority and will reject them if not.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

func subjectID(token string) (int, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return 0, false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, false
	}
	id, err := strconv.Atoi(sub)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
