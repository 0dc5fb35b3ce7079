package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/yndnr/userhub-go/internal/core/domain"
)

// themeCookieMaxAge is the Max-Age for the non-HttpOnly theme cookie.
const themeCookieMaxAge = 365 * 24 * 3600

// resolveSession resolves the session behind the request's cookie, once,
// at the top of every protected handler. Missing cookie, unknown id and
// expired session all yield the same unauthenticated error.
func (h *Handler) resolveSession(r *Request) (*domain.Session, error) {
	sess, err := h.sessions.Resolve(r.Context(), r.Cookies[sessionCookie])
	if err != nil {
		if errors.Is(err, domain.ErrSessionAbsent) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, err
	}
	return sess, nil
}

// handleLogin handles POST /login.
func (h *Handler) handleLogin(r *Request) (*Response, error) {
	username, password, err := credentials(r.Body)
	if err != nil {
		h.countLogin("denied")
		return nil, err
	}

	if err := h.auth.VerifyCredentials(username, password); err != nil {
		h.countLogin("denied")
		h.log.Warn("login rejected", "username", username)
		return nil, err
	}

	sess, err := h.sessions.Create(r.Context(), username)
	if err != nil {
		return nil, err
	}

	h.countLogin("ok")
	h.log.Info("login succeeded", "username", username, "session_id", sess.ID)

	maxAge := int(h.sessions.TTL().Seconds())
	return OK(loginResponse{Message: "Login successful", Username: username}).
		AddCookie(serializeCookie(sessionCookie, sess.ID, cookieAttrs{
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
		})).
		AddCookie(serializeCookie(usernameCookie, username, cookieAttrs{
			Path:   "/",
			MaxAge: maxAge,
		})), nil
}

// handleLogout handles POST /logout. Always succeeds: logging out
// without a session clears nothing and is not an error.
func (h *Handler) handleLogout(r *Request) (*Response, error) {
	if id := r.Cookies[sessionCookie]; id != "" {
		if err := h.sessions.Destroy(r.Context(), id); err != nil {
			return nil, err
		}
	}

	return OK(messageResponse{Message: "Logged out"}).
		AddCookie(expireCookie(sessionCookie)).
		AddCookie(expireCookie(usernameCookie)), nil
}

// handleSessionInfo handles GET /session.
func (h *Handler) handleSessionInfo(r *Request) (*Response, error) {
	sess, err := h.resolveSession(r)
	if err != nil {
		return nil, err
	}
	return OK(sessionResponse{
		Username:  sess.Username,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
		Data:      sess.Data,
	}), nil
}

// handleProfile handles GET /profile.
func (h *Handler) handleProfile(r *Request) (*Response, error) {
	sess, err := h.resolveSession(r)
	if err != nil {
		return nil, err
	}
	return OK(sessionResponse{
		Username:  sess.Username,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt,
	}), nil
}

// handlePreferences handles POST /preferences: the body fields are
// shallow-merged into the session data, never replacing it.
func (h *Handler) handlePreferences(r *Request) (*Response, error) {
	sess, err := h.resolveSession(r)
	if err != nil {
		return nil, err
	}

	merged, err := h.sessions.MergeData(r.Context(), sess.ID, r.Body)
	if err != nil {
		if errors.Is(err, domain.ErrSessionAbsent) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, err
	}

	resp := OK(preferencesResponse{
		Message:     "Preferences saved",
		Preferences: merged.Data,
	})

	// A supplied theme also becomes a long-lived, client-readable cookie.
	if theme, ok := stringField(r.Body, themeCookie); ok && theme != "" {
		resp.AddCookie(serializeCookie(themeCookie, theme, cookieAttrs{
			Path:   "/",
			MaxAge: themeCookieMaxAge,
		}))
	}
	return resp, nil
}

// handleStats handles GET /api/stats, authenticated with a bearer token.
// Missing credentials are unauthenticated; a wrong scheme or a bad token
// is forbidden.
func (h *Handler) handleStats(r *Request) (*Response, error) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return nil, domain.ErrNotAuthenticated
	}

	tok, ok := strings.CutPrefix(authz, "Bearer ")
	if !ok {
		return nil, domain.ErrForbidden
	}
	if err := h.auth.VerifyAPIToken(tok); err != nil {
		return nil, err
	}

	state := h.users.State()
	return OK(statsResponse{
		Users:             state.Count,
		Sessions:          h.sessions.Count(),
		CollectionVersion: state.Version,
		ServerVersion:     h.serverVersion(),
	}), nil
}

// handleHealth handles GET /health.
func (h *Handler) handleHealth(_ *Request) (*Response, error) {
	return OK(map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}), nil
}

func (h *Handler) countLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
