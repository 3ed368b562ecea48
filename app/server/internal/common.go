// Package internal provides shared utilities for server subpackages.
package internal

import (
	"net/http"
	"net/url"
	"strconv"
)

// UsernameCookie remembers the poster name between posts.
const UsernameCookie = "username"

// cookieMaxAge is one year in seconds.
const cookieMaxAge = 365 * 24 * 60 * 60

// SetCookie sets a long-lived preference cookie under path.
// The value is query-escaped, cookies only carry a subset of ASCII.
func SetCookie(w http.ResponseWriter, name, value, path string) {
	if path == "" {
		path = "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     path,
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieValue returns the unescaped cookie value, empty if the cookie is absent or malformed.
func CookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return v
}

// PathID parses a positive integer path value, returns 0 if invalid.
func PathID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
