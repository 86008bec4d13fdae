// Package httpapi serves dashboard view models and chart data as JSON.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"nathanbeddoewebdev/donorlens/internal/auditlog"
	"nathanbeddoewebdev/donorlens/internal/dashboard/bundles"
	"nathanbeddoewebdev/donorlens/internal/dashboard/projector"
	"nathanbeddoewebdev/donorlens/internal/dashboard/view"
	"nathanbeddoewebdev/donorlens/internal/domain"
	"nathanbeddoewebdev/donorlens/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the collaborators shared by every request.
type Server struct {
	runner   view.Runner
	session  session.Provider
	recorder auditlog.Recorder
	gatherer prometheus.Gatherer
	logger   *slog.Logger

	// allowOrgOverride lets callers pick the organization with ?org_id=.
	// Requests still use the operator's stored token.
	allowOrgOverride bool

	seq atomic.Uint64
}

// Option configures a Server.
type Option func(*Server)

// WithRecorder records every cycle the server runs.
func WithRecorder(r auditlog.Recorder) Option {
	return func(s *Server) { s.recorder = r }
}

// WithGatherer exposes g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithOrganizationOverride accepts the org_id query parameter. Without it
// requests that name an organization are rejected with 403.
func WithOrganizationOverride() Option {
	return func(s *Server) { s.allowOrgOverride = true }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Server that loads dashboards with runner under sess.
func New(runner view.Runner, sess session.Provider, opts ...Option) *Server {
	s := &Server{
		runner:   runner,
		session:  sess,
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TabInfo describes one dashboard tab.
type TabInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// DashboardResponse is the body of GET /api/v1/dashboards/:tab.
type DashboardResponse struct {
	View   view.ViewModel    `json:"view"`
	Charts []projector.Chart `json:"charts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the gin engine serving the API.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")
	api.GET("/dashboards", s.listTabs)
	api.GET("/dashboards/:tab", s.showTab)

	return r
}

func (s *Server) listTabs(c *gin.Context) {
	names := bundles.List()
	tabs := make([]TabInfo, 0, len(names))
	for _, name := range names {
		def, err := bundles.Get(name)
		if err != nil {
			continue
		}
		tabs = append(tabs, TabInfo{Name: def.Name, Title: def.Title})
	}
	c.JSON(http.StatusOK, tabs)
}

// showTab runs one fetch cycle. When enabled, the org_id query parameter
// overrides the configured organization.
func (s *Server) showTab(c *gin.Context) {
	tab := strings.ToLower(strings.TrimSpace(c.Param("tab")))
	if _, err := bundles.Get(tab); err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	org := strings.TrimSpace(c.Query("org_id"))
	if org != "" && !s.allowOrgOverride {
		c.JSON(http.StatusForbidden, errorResponse{Error: "organization override is disabled"})
		return
	}

	sess := session.WithOrganization(s.session, org)
	a := view.NewAssembler(s.runner, sess,
		view.WithRecorder(s.recorder),
		view.WithLogger(s.logger),
	)

	vm := a.Assemble(c.Request.Context(), tab, s.seq.Add(1))
	c.JSON(statusFor(vm), DashboardResponse{View: vm, Charts: projector.Project(vm)})
}

func statusFor(vm view.ViewModel) int {
	switch {
	case vm.Ready():
		return http.StatusOK
	case vm.Message == domain.ErrOrganizationNotFound.Error():
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
