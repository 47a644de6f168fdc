// Package app wires configuration, logging, the Cloudflare provider, the
// audit trail and metrics into a ready DNS service. The serve and dns
// commands share it.
package app

import (
	"errors"

	"github.com/go-logr/logr"

	"nathanbeddoewebdev/subdns/internal/auditlog"
	"nathanbeddoewebdev/subdns/internal/config"
	"nathanbeddoewebdev/subdns/internal/dns/providers"
	"nathanbeddoewebdev/subdns/internal/dns/services"
	"nathanbeddoewebdev/subdns/internal/logging"
	"nathanbeddoewebdev/subdns/internal/metrics"
	"nathanbeddoewebdev/subdns/internal/services/auth"
)

// Options customises New. The zero value loads everything from the
// environment and the OS keychain.
type Options struct {
	// Getenv replaces the process environment. When nil, .env is loaded
	// and os.Getenv is used.
	Getenv func(string) string

	// Store is consulted for the Cloudflare token when CF_API_TOKEN is
	// empty. Defaults to the OS keychain.
	Store auth.Store

	// Log replaces the logger built from LOG_FORMAT.
	Log *logr.Logger

	// Verbose enables debug logging.
	Verbose bool
}

// App holds the wired components. Close it when done.
type App struct {
	Config  *config.Config
	Log     logr.Logger
	Metrics *metrics.Metrics
	Service *services.Service

	audit *auditlog.SQLiteRepository
	flush func()
}

// New loads configuration and builds the service.
func New(opts Options) (*App, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.Getenv != nil {
		cfg, err = config.LoadFrom(opts.Getenv)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	a := &App{flush: func() {}}
	if opts.Log != nil {
		a.Log = *opts.Log
	} else {
		a.Log, a.flush, err = logging.New(cfg.LogFormat, opts.Verbose)
		if err != nil {
			return nil, err
		}
	}

	store := opts.Store
	if store == nil {
		store = auth.DefaultStore()
	}
	provider, cfg := providers.FromConfig(cfg, store, a.Log)
	a.Config = cfg
	a.Metrics = metrics.New()

	svcOpts := []services.Option{
		services.WithLogger(a.Log),
		services.WithMetrics(a.Metrics),
	}
	if repo := a.openAudit(); repo != nil {
		a.audit = repo
		svcOpts = append(svcOpts, services.WithAuditor(auditlog.NewRecorder(repo, a.Log)))
	}
	a.Service = services.New(cfg, provider, svcOpts...)

	a.Log.Info("configuration loaded",
		"domains", len(cfg.Domains.ActiveDomains()),
		"maintenance", cfg.Maintenance,
		"tokenConfigured", cfg.HasToken(),
		"audit", a.audit != nil,
	)
	return a, nil
}

// openAudit opens the audit repository. Failure disables auditing rather
// than the service.
func (a *App) openAudit() *auditlog.SQLiteRepository {
	if a.Config.AuditDisabled {
		return nil
	}
	repo, err := auditlog.Open(a.Config.AuditDBPath)
	if err != nil {
		a.Log.Error(err, "audit log disabled", "path", a.Config.AuditDBPath)
		return nil
	}
	a.Log.V(1).Info("audit log opened", "path", a.Config.AuditDBPath)
	return repo
}

// Close releases the audit database and flushes the logger.
func (a *App) Close() error {
	var errs []error
	if a.audit != nil {
		errs = append(errs, a.audit.Close())
	}
	a.flush()
	return errors.Join(errs...)
}
