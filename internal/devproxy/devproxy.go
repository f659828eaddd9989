// Package devproxy reproduces the development rewrite that forwards
// same-origin /api/* calls to the local backend.
package devproxy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/gorilla/mux"
)

// Proxy forwards /api/* to a backend and answers everything else with 404
type Proxy struct {
	target *url.URL
	router *mux.Router
	logger *slog.Logger
}

// New creates a proxy for target, e.g. http://localhost:8000
func New(target string, logger *slog.Logger) (*Proxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target %q: %w", target, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy target %q: scheme and host are required", target)
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Proxy{target: u, logger: logger}

	rp := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(u)
			r.SetXForwarded()
		},
		ErrorHandler: p.proxyError,
	}

	r := mux.NewRouter()
	r.PathPrefix("/api/").Handler(rp)
	r.Use(p.logRequests)
	p.router = r
	return p, nil
}

// ServeHTTP implements http.Handler
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled
func (p *Proxy) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return p.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled
func (p *Proxy) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           p,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	p.logger.Info("dev proxy listening", "addr", ln.Addr().String(), "target", p.target.String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down dev proxy: %w", err)
		}
		<-errCh
		return nil
	}
}

func (p *Proxy) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Warn("dev proxy upstream failed", "path", r.URL.Path, "error", err)
	http.Error(w, "Bad Gateway: backend unreachable", http.StatusBadGateway)
}

func (p *Proxy) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		p.logger.Debug("dev proxy request", "method", r.Method, "path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
