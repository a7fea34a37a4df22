package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	scerrors "github.com/matzehuels/scrollplot/pkg/errors"
	"github.com/matzehuels/scrollplot/pkg/figure"
	"github.com/matzehuels/scrollplot/pkg/pipeline"
	"github.com/matzehuels/scrollplot/pkg/story"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = "127.0.0.1:8080"

const shutdownTimeout = 5 * time.Second

// Server serves one story.
type Server struct {
	addr      string
	size      float64
	bundle    *story.Bundle
	runner    *pipeline.Runner
	logger    *log.Logger
	startTime time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithSize sets the frame edge length in pixels.
func WithSize(size float64) Option {
	return func(s *Server) {
		if size > 0 {
			s.size = size
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server for b. Frames are rendered by runner.
func New(b *story.Bundle, runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		addr:      DefaultAddr,
		size:      pipeline.DefaultSize,
		bundle:    b,
		runner:    runner,
		logger:    runner.Logger,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr is the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Handler returns the router with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/story.json", s.handleStory)
	r.Get("/data.json", s.handleData)
	r.Get("/storyboard.svg", s.handleStoryboard)
	r.Get("/frames/{step}.{format}", s.handleFrame)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("serving", "addr", "http://"+ln.Addr().String(), "steps", s.bundle.Story.Len())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
		"steps":  s.bundle.Story.Len(),
	})
}

func (s *Server) handleStory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bundle.Story)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bundle.Store)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		writeError(w, scerrors.New(scerrors.ErrCodeInvalidInput, "step %q is not a number", chi.URLParam(r, "step")))
		return
	}
	format, err := figure.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts := pipeline.Options{Formats: []figure.Format{format}, Size: s.size}
	if at := r.URL.Query().Get("at"); at != "" {
		ms, err := strconv.Atoi(at)
		if err != nil || ms < 0 {
			writeError(w, scerrors.New(scerrors.ErrCodeInvalidInput, "at must be a non-negative number of milliseconds"))
			return
		}
		opts.At = time.Duration(ms) * time.Millisecond
	}

	fr, err := s.runner.RenderFrame(r.Context(), s.bundle, step, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Cache", cacheStatus(fr.Hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(fr.Artifacts[format])
}

func (s *Server) handleStoryboard(w http.ResponseWriter, r *http.Request) {
	detailed := r.URL.Query().Get("detailed") != ""
	data, hit, err := s.runner.Storyboard(r.Context(), s.bundle.Story, detailed)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", figure.SVG.ContentType())
	w.Header().Set("X-Cache", cacheStatus(hit))
	_, _ = w.Write(data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{
		"error": scerrors.UserMessage(err),
		"code":  string(scerrors.GetCode(err)),
	})
}

func statusFor(err error) int {
	switch scerrors.GetCode(err) {
	case scerrors.ErrCodeStepOutOfRange, scerrors.ErrCodeNotFound, scerrors.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case scerrors.ErrCodeInvalidInput, scerrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	}
	if errors.Is(err, context.Canceled) {
		return 499
	}
	return http.StatusInternalServerError
}
