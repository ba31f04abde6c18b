package server

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

type wrappedWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *wrappedWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrade take over the connection.
func (w *wrappedWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return h.Hijack()
}

func (w *wrappedWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *wrappedWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// silentPaths are polled often and only logged on errors.
var silentPaths = map[string]bool{
	"/healthz":         true,
	"/api/translation": true,
	"/popup/view":      true,
}

// requestLogger tags each request with an id and logs it once it completes.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			wrapped := &wrappedWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			if silentPaths[r.URL.Path] && wrapped.statusCode < 400 {
				return
			}

			event := logger.Info()
			if wrapped.statusCode >= 500 {
				event = logger.Error()
			} else if wrapped.statusCode >= 400 {
				event = logger.Warn()
			}
			event.
				Str("request_id", id).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapped.statusCode).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// originPolicy admits pages served by this host and the configured origins,
// such as the browser extension's chrome-extension:// origin. Wildcards are
// not accepted.
type originPolicy struct {
	origins map[string]bool
}

func newOriginPolicy(allowed []string) originPolicy {
	p := originPolicy{origins: make(map[string]bool, len(allowed))}
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || o == "*" {
			continue
		}
		p.origins[strings.ToLower(o)] = true
	}
	return p
}

// allowed reports whether origin may talk to the server. Requests without an
// Origin header do not come from a web page and are allowed.
func (p originPolicy) allowed(r *http.Request, origin string) bool {
	if origin == "" {
		return true
	}
	if p.origins[strings.ToLower(origin)] {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// checkOrigin has the shape websocket.Upgrader.CheckOrigin expects.
func (p originPolicy) checkOrigin(r *http.Request) bool {
	return p.allowed(r, r.Header.Get("Origin"))
}

// originGuard refuses requests from foreign pages. CORS only hides the
// response from the page; the guard keeps the request from running at all.
func originGuard(p originPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !p.checkOrigin(r) {
				writeError(w, http.StatusForbidden, "origin not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func corsOptions(p originPolicy) cors.Options {
	return cors.Options{
		AllowOriginFunc: p.allowed,
		AllowedMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:  []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders:  []string{requestIDHeader},
		MaxAge:          300,
	}
}
