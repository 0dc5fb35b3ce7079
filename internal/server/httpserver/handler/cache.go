package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yndnr/userhub-go/internal/infra/buildinfo"
)

// handleCachedUsers handles GET /cache: the user collection behind a
// conditional validator. A fresh If-None-Match short-circuits to a
// body-less 304 carrying the same tag.
func (h *Handler) handleCachedUsers(r *Request) (*Response, error) {
	tag := computeTag(h.users.State())

	if isFresh(r.Header.Get("If-None-Match"), tag) {
		h.countCacheValidation("hit")
		return NotModified().WithHeader("ETag", tag), nil
	}
	h.countCacheValidation("miss")

	users, count := h.users.List(r.Context())
	state := h.users.State()
	return OK(listUsersResponse{Users: users, Count: count}).
		WithHeader("ETag", tag).
		WithHeader("Cache-Control", "public, max-age=60").
		WithHeader("Last-Modified", state.LastModified.UTC().Format(http.TimeFormat)), nil
}

// handleDownload handles GET /download: the user collection as an
// attachment with an explicit length.
func (h *Handler) handleDownload(r *Request) (*Response, error) {
	users, _ := h.users.List(r.Context())

	data, err := json.Marshal(users)
	if err != nil {
		return nil, err
	}

	return (&Response{
		Status: http.StatusOK,
		Raw:    data,
		Header: make(http.Header),
	}).
		WithHeader("Content-Type", "application/json").
		WithHeader("Content-Disposition", `attachment; filename="users.json"`), nil
}

func (h *Handler) serverVersion() string {
	return buildinfo.Get().Version
}

func (h *Handler) countCacheValidation(outcome string) {
	if h.metrics != nil {
		h.metrics.CacheValidations.WithLabelValues(outcome).Inc()
	}
}
