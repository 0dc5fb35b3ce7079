package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/yndnr/userhub-go/internal/core/domain"
	"github.com/yndnr/userhub-go/internal/core/service"
	"github.com/yndnr/userhub-go/internal/infra/buildinfo"
	"github.com/yndnr/userhub-go/internal/telemetry/logger"
	"github.com/yndnr/userhub-go/internal/telemetry/metric"
)

// route is one dispatch table entry. Literal routes have a nil pattern;
// parametrized routes capture numeric path segments via a single regex.
type route struct {
	method  string
	path    string         // literal path, or the registered template
	pattern *regexp.Regexp // nil for literal routes
	fn      Func
	hasBody bool
}

// Handler dispatches requests to route handlers and owns the
// outcome-to-wire mapping. It implements http.Handler.
type Handler struct {
	users    *service.UserService
	sessions *service.SessionService
	auth     *service.AuthService
	log      logger.Logger
	metrics  *metric.Registry

	literal []route // matched first, exact (method, path)
	params  []route // matched second, regex per route
}

// New creates a Handler with the full route table registered.
// metrics may be nil (tests).
func New(users *service.UserService, sessions *service.SessionService, auth *service.AuthService, log logger.Logger, metrics *metric.Registry) *Handler {
	h := &Handler{
		users:    users,
		sessions: sessions,
		auth:     auth,
		log:      log,
		metrics:  metrics,
	}
	h.registerRoutes()
	return h
}

// paramSegment matches one numeric path parameter.
var paramSegment = regexp.MustCompile(`\{[a-zA-Z_]+\}`)

// handle registers a route. Templates like "/users/{id}" become a single
// regex capturing digit runs; everything else is a literal route.
func (h *Handler) handle(method, path string, fn Func) {
	hasBody := method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch

	if !strings.Contains(path, "{") {
		h.literal = append(h.literal, route{method: method, path: path, fn: fn, hasBody: hasBody})
		return
	}

	expr := "^" + paramSegment.ReplaceAllString(path, `(\d+)`) + "$"
	h.params = append(h.params, route{
		method:  method,
		path:    path,
		pattern: regexp.MustCompile(expr),
		fn:      fn,
		hasBody: hasBody,
	})
}

func (h *Handler) registerRoutes() {
	h.handle(http.MethodGet, "/health", h.handleHealth)

	// User collection
	h.handle(http.MethodGet, "/users", h.handleListUsers)
	h.handle(http.MethodPost, "/users", h.handleCreateUser)
	h.handle(http.MethodGet, "/users/{id}", h.handleGetUser)
	h.handle(http.MethodPut, "/users/{id}", h.handleReplaceUser)
	h.handle(http.MethodPatch, "/users/{id}", h.handlePatchUser)
	h.handle(http.MethodDelete, "/users/{id}", h.handleDeleteUser)

	// Sessions
	h.handle(http.MethodPost, "/login", h.handleLogin)
	h.handle(http.MethodPost, "/logout", h.handleLogout)
	h.handle(http.MethodGet, "/session", h.handleSessionInfo)
	h.handle(http.MethodGet, "/profile", h.handleProfile)
	h.handle(http.MethodPost, "/preferences", h.handlePreferences)

	// Caching and representations
	h.handle(http.MethodGet, "/cache", h.handleCachedUsers)
	h.handle(http.MethodGet, "/download", h.handleDownload)

	// Bearer-protected stats
	h.handle(http.MethodGet, "/api/stats", h.handleStats)
}

// ServeHTTP implements http.Handler: preflight interception, route
// matching, eager body parsing, handler invocation, outcome mapping.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Preflight is answered before any matching happens.
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, If-None-Match")
		w.Header().Set("Server", buildinfo.ServerHeader())
		w.WriteHeader(http.StatusNoContent)
		return
	}

	rt, captures := h.match(r.Method, r.URL.Path)
	if rt == nil {
		// Method mismatches fall through here too: unmatched is 404.
		h.writeError(w, domain.ErrRouteNotFound)
		return
	}

	req := &Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Params:  captures,
		Cookies: parseCookies(r.Header.Get("Cookie")),
		Header:  r.Header,
		ctx:     r.Context(),
	}

	if rt.hasBody {
		// Body read is the only suspension point and holds no store
		// lock; a parse failure never reaches the handler.
		body, err := parseBody(r.Body)
		if err != nil {
			h.writeError(w, domain.ErrMalformedBody)
			return
		}
		req.Body = body
	}

	resp, err := rt.fn(req)
	if err != nil {
		h.writeHandlerError(w, rt, err)
		return
	}
	h.writeResponse(w, resp)
}

// match finds the route for (method, path): literal routes first, then
// parametrized ones. Returns the captured numeric segments.
func (h *Handler) match(method, path string) (*route, []string) {
	for i := range h.literal {
		rt := &h.literal[i]
		if rt.method == method && rt.path == path {
			return rt, nil
		}
	}
	for i := range h.params {
		rt := &h.params[i]
		if rt.method != method {
			continue
		}
		if m := rt.pattern.FindStringSubmatch(path); m != nil {
			return rt, m[1:]
		}
	}
	return nil, nil
}

// parseBody decodes a JSON object body. An empty body parses to an
// empty map; anything other than a JSON object is malformed.
func parseBody(rc io.ReadCloser) (map[string]any, error) {
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]any{}, nil
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// writeResponse renders a typed outcome onto the wire.
func (h *Handler) writeResponse(w http.ResponseWriter, resp *Response) {
	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.Header().Set("Server", buildinfo.ServerHeader())

	switch {
	case resp.Raw != nil:
		w.Header().Set("Content-Length", strconv.Itoa(len(resp.Raw)))
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(resp.Status)
		w.Write(resp.Raw)
	case resp.Body != nil:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Status)
		if err := json.NewEncoder(w).Encode(resp.Body); err != nil {
			h.log.Error("failed to encode response", "error", err)
		}
	default:
		w.WriteHeader(resp.Status)
	}
}

// writeHandlerError maps a handler error to a wire response. Non-domain
// errors become a generic 500; the cause is only logged.
func (h *Handler) writeHandlerError(w http.ResponseWriter, rt *route, err error) {
	if de, ok := domain.AsDomainError(err); ok {
		if statusFromCode(de.Code) == http.StatusInternalServerError {
			h.log.Error("internal error", "route", rt.path, "error", err)
		}
		h.writeError(w, de)
		return
	}

	h.log.Error("unhandled handler error", "route", rt.path, "error", err)
	h.writeError(w, domain.ErrInternal)
}

// writeError renders {error: message} with the status derived from the
// domain error code.
func (h *Handler) writeError(w http.ResponseWriter, de *domain.DomainError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Server", buildinfo.ServerHeader())
	w.WriteHeader(statusFromCode(de.Code))
	json.NewEncoder(w).Encode(map[string]string{"error": de.Message})
}

// statusFromCode maps the digits embedded in a domain error code to an
// HTTP status.
func statusFromCode(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"), strings.HasSuffix(code, "-4041"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4090"):
		return http.StatusConflict
	case strings.HasSuffix(code, "-4000"), strings.HasSuffix(code, "-4001"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-4010"), strings.HasSuffix(code, "-4011"):
		return http.StatusUnauthorized
	case strings.HasSuffix(code, "-4030"):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
