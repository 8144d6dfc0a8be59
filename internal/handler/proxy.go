package handler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Proxy forwards API calls to the backend: same method and body, the
// caller's bearer token attached when present, and the backend's status and
// JSON body passed through verbatim. Only transport failures are collapsed
// into a generic 500.
type Proxy struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewProxy(baseURL string, logger *zap.Logger) *Proxy {
	return &Proxy{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger.With(zap.String("component", "proxy")),
	}
}

// Forward relays the incoming request as-is to path on the backend.
func (p *Proxy) Forward(w http.ResponseWriter, r *http.Request, path string) {
	p.ForwardBody(w, r, r.Method, path, r.Body, r.Header.Get("Content-Type"))
}

// ForwardBody relays a rebuilt request, used when the handler had to consume
// the original body first (multipart uploads).
func (p *Proxy) ForwardBody(w http.ResponseWriter, r *http.Request, method, path string, body io.Reader, contentType string) {
	req, err := http.NewRequestWithContext(r.Context(), method, p.baseURL+path, body)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authz := r.Header.Get("Authorization"); authz != "" {
		req.Header.Set("Authorization", authz)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}

func (p *Proxy) fail(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error("backend request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, "backend unavailable")
}
