package main

import (
	"net/http"
	"os"
	"strings"
	"time"
)

// cookie configuration (shared with api_auth.go)
var cookieName = getenv("COOKIE_NAME", "cid_auth")
var cookieSecure = os.Getenv("COOKIE_SECURE") == "true"

func setAuthCookie(w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cookieSecure,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	}
	http.SetCookie(w, c)
}

func clearAuthCookie(w http.ResponseWriter) {
	c := &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cookieSecure,
		MaxAge:   -1,
	}
	http.SetCookie(w, c)
}

// actorFromRequest extracts the signed-in user id from the JWT cookie,
// falling back to the X-CID-User header for development. Every call
// that needs an actor id takes it explicitly from here; there is no
// ambient current-user state.
func actorFromRequest(r *http.Request) string {
	// 1) Cookie/JWT path
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		if claims, err := parseToken(c.Value); err == nil && claims != nil && claims.UserID != "" {
			return claims.UserID
		}
	}
	// 2) Dev fallback header
	if v := strings.TrimSpace(r.Header.Get("X-CID-User")); v != "" {
		return v
	}
	return ""
}
