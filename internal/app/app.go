// Package app wires configuration, credentials and the fetch stack into
// the collaborators the commands need.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"nathanbeddoewebdev/donorlens/internal/auditlog"
	"nathanbeddoewebdev/donorlens/internal/config"
	"nathanbeddoewebdev/donorlens/internal/dashboard/view"
	"nathanbeddoewebdev/donorlens/internal/fetch"
	"nathanbeddoewebdev/donorlens/internal/logger"
	"nathanbeddoewebdev/donorlens/internal/retry"
	"nathanbeddoewebdev/donorlens/internal/services/auth"
	"nathanbeddoewebdev/donorlens/internal/session"
	"nathanbeddoewebdev/donorlens/internal/source"

	"github.com/prometheus/client_golang/prometheus"
)

// Options controls how an App is built. Zero values select the defaults
// used by the CLI.
type Options struct {
	LogWriter io.Writer
	LogFormat logger.Format
	Verbose   bool

	// Store overrides the keychain store.
	Store auth.Store
	// Registerer receives fetch metrics. Nil disables metrics.
	Registerer prometheus.Registerer
	// AuditPath overrides the audit database path. "-" disables the audit log.
	AuditPath string
}

// App holds the wired collaborators.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Session session.Provider
	Runner  *fetch.Orchestrator
	Audit   auditlog.Repository
}

// New loads the configuration and builds an App.
func New(opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, opts), nil
}

// NewWithConfig builds an App around cfg. An audit log that cannot be
// opened is logged and skipped.
func NewWithConfig(cfg *config.Config, opts Options) *App {
	log := logger.Discard()
	if opts.LogWriter != nil {
		log = logger.New(opts.LogWriter, opts.LogFormat, logger.Level(opts.Verbose))
	}

	store := opts.Store
	if store == nil {
		store = auth.DefaultStore()
	}

	client := source.New(cfg.BaseURL(), source.WithTimeout(cfg.Timeout()))
	runnerOpts := []fetch.Option{
		fetch.WithRetry(retry.WithAttempts(cfg.FetchRetries)),
		fetch.WithConcurrency(cfg.FetchConcurrency),
		fetch.WithLogger(log),
	}
	if opts.Registerer != nil {
		runnerOpts = append(runnerOpts, fetch.WithMetrics(fetch.NewMetrics(opts.Registerer)))
	}

	a := &App{
		Config:  cfg,
		Logger:  log,
		Session: session.NewStored(store, cfg),
		Runner:  fetch.New(client, runnerOpts...),
	}

	if opts.AuditPath != "-" {
		repo, err := openAudit(opts.AuditPath)
		if err != nil {
			log.Warn("audit log unavailable", "error", err)
		} else {
			a.Audit = repo
		}
	}
	return a
}

func openAudit(path string) (auditlog.Repository, error) {
	if path == "" {
		return auditlog.Open()
	}
	return auditlog.OpenAt(path)
}

// Assembler returns a view assembler over the app's runner and session.
func (a *App) Assembler() *view.Assembler {
	opts := []view.Option{view.WithLogger(a.Logger)}
	if a.Audit != nil {
		opts = append(opts, view.WithRecorder(a.Audit))
	}
	return view.NewAssembler(a.Runner, a.Session, opts...)
}

// Organization returns the configured organization id, if any.
func (a *App) Organization() string {
	org, _ := a.Config.Organization()
	return org
}

// Close releases the audit database.
func (a *App) Close() error {
	if a.Audit == nil {
		return nil
	}
	if err := a.Audit.Close(); err != nil {
		return fmt.Errorf("close audit log: %w", err)
	}
	return nil
}
