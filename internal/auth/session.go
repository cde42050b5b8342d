package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionExpiry reads the exp claim of token without verifying the signature,
// which the identity service does. Missing or unreadable claims, and expiries
// beyond MaxSessionAge, yield now+MaxSessionAge.
func SessionExpiry(token string, now time.Time) time.Time {
	limit := now.Add(MaxSessionAge)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return limit
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return limit
	}
	if exp.Time.After(limit) {
		return limit
	}
	return exp.Time
}

// SessionCookie builds the cookie carrying session. Secure is set when the
// request arrived over TLS.
func SessionCookie(session *Session, secure bool, now time.Time) *http.Cookie {
	maxAge := int(session.ExpiresAt.Sub(now).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt.UTC(),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie deletes the session cookie.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
