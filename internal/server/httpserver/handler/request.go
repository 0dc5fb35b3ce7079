// Package handler implements the HTTP dispatcher and request handlers
// for UserHub.
//
// The dispatcher is the only code that touches the transport boundary:
// it matches (method, path) to a handler, parses request bodies eagerly,
// and maps typed handler outcomes to wire responses. Handlers compose
// the stores, the cookie codec and the cache validator; they never write
// status codes or raw bytes themselves.
package handler

import (
	"context"
	"net/http"
	"strconv"
)

// Request is the parsed request a handler operates on.
type Request struct {
	// Method and Path identify the matched route.
	Method string
	Path   string

	// Params holds the numeric path segments captured by the route
	// pattern, in order.
	Params []string

	// Body is the parsed JSON object for methods that declare a body.
	// It is never nil for those methods; an empty body parses to an
	// empty map.
	Body map[string]any

	// Cookies is the decoded cookie mapping for this request.
	Cookies map[string]string

	// Header exposes the raw request headers (conditional validators,
	// authorization).
	Header http.Header

	ctx context.Context
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	return r.ctx
}

// ParamID returns path parameter i as an integer id.
// Route patterns only capture digit runs, so this cannot fail for
// matched routes; the zero value is returned defensively otherwise.
func (r *Request) ParamID(i int) int64 {
	if i >= len(r.Params) {
		return 0
	}
	id, _ := strconv.ParseInt(r.Params[i], 10, 64)
	return id
}

// Response is the typed outcome a handler produces. The dispatcher alone
// turns it into status line, headers and body bytes.
type Response struct {
	Status int
	Body   any         // JSON-marshaled when non-nil
	Raw    []byte      // pre-encoded payload (download route)
	Header http.Header // extra headers, including Set-Cookie instances
}

func newResponse(status int, body any) *Response {
	return &Response{Status: status, Body: body, Header: make(http.Header)}
}

// OK is a 200 outcome with a JSON body.
func OK(body any) *Response {
	return newResponse(http.StatusOK, body)
}

// Created is a 201 outcome with a Location header.
func Created(body any, location string) *Response {
	resp := newResponse(http.StatusCreated, body)
	resp.Header.Set("Location", location)
	return resp
}

// NoContent is a body-less 204 outcome.
func NoContent() *Response {
	return newResponse(http.StatusNoContent, nil)
}

// NotModified is a body-less 304 outcome for fresh conditional requests.
func NotModified() *Response {
	return newResponse(http.StatusNotModified, nil)
}

// AddCookie appends one Set-Cookie directive. Each directive stays an
// independent header instance; they are never merged.
func (r *Response) AddCookie(directive string) *Response {
	r.Header.Add("Set-Cookie", directive)
	return r
}

// WithHeader sets a response header.
func (r *Response) WithHeader(key, value string) *Response {
	r.Header.Set(key, value)
	return r
}

// Func is a route handler.
type Func func(r *Request) (*Response, error)
