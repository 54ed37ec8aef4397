// Package server exposes the number theory core and the charts over a small
// read-only HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/riemann/internal/calc"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the JSON API and the SVG charts.
type Server struct {
	calc    *calc.Calculator
	log     *logrus.Entry
	version int
	now     func() time.Time
}

// Option mutates Server configuration.
type Option func(*Server)

// WithLogger replaces the request and error logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = logrus.NewEntry(l).WithField("component", "http_server")
		}
	}
}

// WithClock overrides the clock used for the currentTime field.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Server answering with c.
func New(c *calc.Calculator, opts ...Option) *Server {
	s := &Server{
		calc:    c,
		log:     logrus.WithField("component", "http_server"),
		version: apiVersion,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.requestLogging(s.routes())
}

func (s *Server) routes() *httprouter.Router {
	r := httprouter.New()
	r.HandlerFunc(http.MethodGet, "/api/v1/primes/:n", s.primeHandler)
	r.HandlerFunc(http.MethodGet, "/api/v1/pi/:n", s.primeCountHandler)
	r.HandlerFunc(http.MethodGet, "/api/v1/zeta", s.zetaHandler)
	r.HandlerFunc(http.MethodGet, "/api/v1/zeros", s.zerosHandler)
	r.HandlerFunc(http.MethodGet, "/api/v1/eval", s.evalHandler)
	r.HandlerFunc(http.MethodGet, "/charts/:view", s.chartHandler)
	r.HandlerFunc(http.MethodGet, "/healthz", s.healthHandler)
	r.NotFound = http.HandlerFunc(s.notFoundResponse)
	r.PanicHandler = func(w http.ResponseWriter, req *http.Request, v any) {
		s.serverErrorResponse(w, req, fmt.Errorf("panic: %v", v))
	}
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
