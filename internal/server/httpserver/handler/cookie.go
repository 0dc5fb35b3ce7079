package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Cookie names used by the session routes.
const (
	sessionCookie  = "sessionId"
	usernameCookie = "username"
	themeCookie    = "theme"
)

// parseCookies decodes a Cookie header into a name/value mapping.
// A missing or empty header yields an empty map, never an error.
// Pairs without '=' are skipped; values that fail URL-decoding are
// kept verbatim.
func parseCookies(header string) map[string]string {
	cookies := make(map[string]string)
	if header == "" {
		return cookies
	}

	for _, pair := range strings.Split(header, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		cookies[name] = value
	}
	return cookies
}

// cookieAttrs are the Set-Cookie attributes the server emits.
type cookieAttrs struct {
	Path     string
	MaxAge   int // seconds; emitted when > 0
	HttpOnly bool
	Expires  time.Time // absolute date; a past date deletes the cookie
}

// serializeCookie renders one Set-Cookie directive. Multiple cookies are
// emitted as independent header instances by the caller.
func serializeCookie(name, value string, attrs cookieAttrs) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(value))

	if attrs.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(attrs.Path)
	}
	if attrs.MaxAge > 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(attrs.MaxAge))
	}
	if !attrs.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(attrs.Expires.UTC().Format(http.TimeFormat))
	}
	if attrs.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	return b.String()
}

// expireCookie renders the directive that deletes a cookie: empty value
// and an expiry in the past. This is the only deletion mechanism.
func expireCookie(name string) string {
	return serializeCookie(name, "", cookieAttrs{
		Path:    "/",
		Expires: time.Unix(0, 0),
	})
}
