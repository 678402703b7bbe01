package session

import (
	"net/http"
	"net/url"
	"strings"
)

// CookieName is the session cookie set on login and cleared on logout.
const CookieName = "session"

const cookieMaxAge = 86400 // seconds, matches TokenTTL

// WriteCookie sets the session cookie wrapping a signed token. The cookie is
// HTTP-only and scoped to the whole site; the server keeps no session state.
func WriteCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie overwrites the session cookie with an already-expired one.
// Logout needs no server-side bookkeeping.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadCookie extracts the session token from the request's Cookie header.
func ReadCookie(r *http.Request) (string, bool) {
	cookies := ParseCookies(r.Header.Get("Cookie"))
	token, ok := cookies[CookieName]
	return token, ok && token != ""
}

// ParseCookies splits a raw Cookie header into name/value pairs. Entries are
// split on ';', each pair on the first '=', and values are URL-decoded.
// Malformed fragments are skipped rather than rejected.
func ParseCookies(header string) map[string]string {
	out := map[string]string{}
	if header == "" {
		return out
	}

	for _, part := range strings.Split(header, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || name == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		out[name] = value
	}
	return out
}
