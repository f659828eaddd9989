// Package app wires configuration, credentials, the API client, the session
// store and the auth gate into the SocialFlow client.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"SocialFlow/internal/actions"
	"SocialFlow/internal/api"
	"SocialFlow/internal/authgate"
	"SocialFlow/internal/backend"
	"SocialFlow/internal/cache"
	"SocialFlow/internal/config"
	"SocialFlow/internal/credentials"
	"SocialFlow/internal/session"
	"SocialFlow/internal/telemetry"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Version is reported to telemetry and by `socialflow doctor`
const Version = "1.0.0"

// generationTTL bounds how long identical generation requests are served locally
const generationTTL = 30 * time.Minute

// App is the assembled client
type App struct {
	cfg    config.Config
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
	db     *sql.DB

	creds  credentials.Store
	client *api.Client
	store  *session.Store
	gate   *authgate.Gate
	nav    *Navigator

	Auth          *actions.Auth
	Generator     *actions.Generator
	Brand         *actions.Brand
	Library       *actions.Library
	Payment       *actions.Payment
	Subscriptions *actions.Subscriptions

	out      io.Writer
	in       io.Reader
	closeMu  sync.Mutex
	closers  []func()
	isClosed bool
}

// Option configures an App
type Option func(*App)

// WithOutput sets where user-facing text is written; defaults to stdout
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithInput sets where the dashboard reads commands; defaults to stdin
func WithInput(r io.Reader) Option {
	return func(a *App) { a.in = r }
}

// WithLogger skips file logging and uses logger instead
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithTelemetry skips the file exporters and uses tracer and meter instead
func WithTelemetry(tracer trace.Tracer, meter metric.Meter) Option {
	return func(a *App) {
		a.tracer = tracer
		a.meter = meter
	}
}

// New builds the client described by cfg
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{cfg: cfg, out: os.Stdout, in: os.Stdin}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		logger, closer, err := telemetry.InitLogger(cfg.LogDir, cfg.Debug)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
		a.onClose(func() { closer.Close() })
	}

	if a.tracer == nil {
		tracer, meter, cleanup, err := telemetry.InitTelemetry(ctx, cfg.LogDir, Version)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		a.tracer, a.meter = tracer, meter
		a.onClose(cleanup)
	}

	creds, err := a.openCredentials()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.creds = creds

	if cfg.Debug {
		a.logger.Info("debug mode enabled")
	}

	baseURL := cfg.BaseURL()
	a.client = api.NewClient(baseURL, creds,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithSameOrigin(cfg.SameOrigin),
		api.WithLogger(a.logger),
		api.WithTelemetry(a.tracer, a.meter),
	)

	a.store = session.New()
	a.nav = NewNavigator(a.out)
	a.gate = authgate.New(creds, a.client, a.store, a.nav, a.logger)

	a.Auth = actions.NewAuth(a.client, a.store, a.nav, a.logger)
	a.Generator = actions.NewGenerator(a.client, cache.New(generationTTL), a.logger)
	a.Brand = actions.NewBrand(a.client, a.store, a.logger)
	a.Library = actions.NewLibrary(a.client, a.store, a.logger)
	a.Payment = actions.NewPayment(a.client, a.logger)
	a.Subscriptions = actions.NewSubscriptions(a.client, a.store, a.logger)

	a.logger.Info("client initialized",
		"session_id", a.store.ID(),
		"mode", cfg.Mode,
		"base_url", baseURL,
		"request_url", a.client.URL("/api"),
		"credentials", cfg.Credentials,
	)
	return a, nil
}

func (a *App) openCredentials() (credentials.Store, error) {
	switch a.cfg.Credentials {
	case config.CredentialsMemory:
		return credentials.NewMemoryStore(), nil
	case config.CredentialsSQLite:
		db, err := telemetry.InitDB(a.cfg.DBPath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
		a.onClose(func() { db.Close() })
		return credentials.NewSQLiteStore(db)
	default:
		return credentials.NewFileStore(a.cfg.TokenPath()), nil
	}
}

func (a *App) onClose(fn func()) {
	a.closeMu.Lock()
	defer a.closeMu.Unlock()
	a.closers = append(a.closers, fn)
}

// Close releases telemetry, the database and log files
func (a *App) Close() {
	a.closeMu.Lock()
	defer a.closeMu.Unlock()
	if a.isClosed {
		return
	}
	a.isClosed = true
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Config returns the configuration the app was built with
func (a *App) Config() config.Config { return a.cfg }

// Client returns the API client
func (a *App) Client() *api.Client { return a.client }

// Store returns the session store
func (a *App) Store() *session.Store { return a.store }

// Gate returns the auth gate
func (a *App) Gate() *authgate.Gate { return a.gate }

// Navigator returns the route recorder
func (a *App) Navigator() *Navigator { return a.nav }

// Logger returns the application logger
func (a *App) Logger() *slog.Logger { return a.logger }

// Output is where user-facing text goes
func (a *App) Output() io.Writer { return a.out }

// Authenticate runs the auth gate. It returns authgate.ErrRedirect when the
// user must sign in.
func (a *App) Authenticate(ctx context.Context) error {
	return a.gate.Require(ctx)
}

// Hydrate loads the brand profile and content list concurrently. It waits
// for the gate so it never runs ahead of the session check.
func (a *App) Hydrate(ctx context.Context) error {
	st, err := a.gate.Wait(ctx)
	if err != nil {
		return err
	}
	if st != authgate.Authenticated {
		return authgate.ErrRedirect
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := a.Brand.Load(gctx); err != nil {
			return fmt.Errorf("failed to load brand: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if _, err := a.Library.Refresh(gctx); err != nil {
			return fmt.Errorf("failed to load content: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		a.logger.Warn("dashboard hydration incomplete", "error", err)
		return err
	}
	a.logger.Info("dashboard hydrated", "contents", len(a.store.Snapshot().Contents))
	return nil
}

// Bootstrap authenticates and hydrates, as entering the dashboard does
func (a *App) Bootstrap(ctx context.Context) error {
	if err := a.Authenticate(ctx); err != nil {
		return err
	}
	return a.Hydrate(ctx)
}

// Logout signs out and resets the gate for the next sign-in
func (a *App) Logout(ctx context.Context) error {
	if err := a.Auth.Logout(ctx); err != nil {
		return err
	}
	a.gate.Reset()
	return nil
}

// DoctorReport describes how the client resolves and reaches the backend
type DoctorReport struct {
	Mode        config.Mode
	BaseURL     string
	RequestURL  string
	Credentials string
	HasToken    bool
	Health      *backend.HealthResponse
	HealthErr   error
}

// Doctor checks configuration, stored credentials and backend health
func (a *App) Doctor(ctx context.Context) DoctorReport {
	r := DoctorReport{
		Mode:        a.cfg.Mode,
		BaseURL:     a.cfg.BaseURL(),
		RequestURL:  a.client.URL("/api/health"),
		Credentials: a.cfg.Credentials,
		HasToken:    credentials.HasToken(ctx, a.creds),
	}
	r.Health, r.HealthErr = a.client.Health(ctx)
	if r.HealthErr != nil {
		a.logger.Warn("health check failed", "error", r.HealthErr)
	}
	return r
}

// IsRedirect reports whether err means the user has to sign in first
func IsRedirect(err error) bool {
	return errors.Is(err, authgate.ErrRedirect)
}
