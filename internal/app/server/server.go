package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"corecrew/internal/domain/audit"
	"corecrew/internal/domain/employees"
	"corecrew/internal/domain/feedback"
	"corecrew/internal/domain/leave"
	"corecrew/internal/domain/notifications"
	"corecrew/internal/domain/payroll"
	"corecrew/internal/domain/performance"
	"corecrew/internal/domain/reports"
	"corecrew/internal/domain/settings"
	"corecrew/internal/platform/config"
	"corecrew/internal/platform/crypto"
	"corecrew/internal/platform/email"
	"corecrew/internal/platform/events"
	"corecrew/internal/platform/jobs"
	"corecrew/internal/platform/logger"
	"corecrew/internal/platform/metrics"
	"corecrew/internal/platform/storage"
	"corecrew/internal/platform/tracing"
	audithandler "corecrew/internal/transport/http/handlers/audit"
	employeeshandler "corecrew/internal/transport/http/handlers/employees"
	eventshandler "corecrew/internal/transport/http/handlers/events"
	feedbackhandler "corecrew/internal/transport/http/handlers/feedback"
	jobshandler "corecrew/internal/transport/http/handlers/jobs"
	leavehandler "corecrew/internal/transport/http/handlers/leave"
	payrollhandler "corecrew/internal/transport/http/handlers/payroll"
	performancehandler "corecrew/internal/transport/http/handlers/performance"
	reportshandler "corecrew/internal/transport/http/handlers/reports"
	settingshandler "corecrew/internal/transport/http/handlers/settings"
	"corecrew/internal/transport/http/middleware"
)

const subscriberBuffer = 256

type App struct {
	Config      config.Config
	Logger      *slog.Logger
	Store       *storage.Store
	Broker      *events.Broker
	Metrics     *metrics.Collector
	Employees   *employees.Directory
	Feedback    *feedback.Log
	Payroll     *payroll.Ledger
	Leave       *leave.Register
	Performance *performance.Service
	Settings    *settings.Service
	Reports     *reports.Service
	Audit       *audit.Trail
	Notifier    *notifications.Service
	Jobs        *jobs.Service
	Router      http.Handler

	cancel      context.CancelFunc
	unsubscribe []func()
	workers     sync.WaitGroup
	stopTracing func(context.Context) error
	closeOnce   sync.Once
}

// New opens storage, loads every collection and starts the background
// subscribers and job worker. Close releases all of it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.New(cfg.LogLevel, cfg.Environment)
	slog.SetDefault(log)

	stopTracing, err := tracing.Init(ctx, log, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	cipher, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		_ = stopTracing(ctx)
		return nil, fmt.Errorf("encryption key invalid: %w", err)
	}

	kv, err := storage.Open(ctx, cfg)
	if err != nil {
		_ = stopTracing(ctx)
		return nil, fmt.Errorf("storage open failed: %w", err)
	}

	storeOpts := []storage.Option{storage.WithCipher(cipher), storage.WithLogger(log)}
	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
		storeOpts = append(storeOpts, storage.WithObserver(collector))
	}
	store := storage.New(kv, storeOpts...)

	app := &App{
		Config:      cfg,
		Logger:      log,
		Store:       store,
		Metrics:     collector,
		stopTracing: stopTracing,
	}
	if err := app.open(ctx); err != nil {
		_ = store.Close()
		_ = stopTracing(ctx)
		return nil, err
	}
	app.Router = app.routes()
	return app, nil
}

func (a *App) open(ctx context.Context) error {
	cfg := a.Config
	broker := events.NewBroker()
	if a.Metrics != nil {
		broker.OnDrop(a.Metrics.EventDropped)
	}
	a.Broker = broker

	now := time.Now()
	employeeSeed := func() []employees.Employee { return []employees.Employee{} }
	if cfg.SeedData {
		employeeSeed = employees.Seed
	}
	directory, err := employees.Open(ctx, a.Store, broker, employeeSeed)
	if err != nil {
		return fmt.Errorf("open employees: %w", err)
	}
	a.Employees = directory

	if a.Feedback, err = feedback.Open(ctx, a.Store, broker); err != nil {
		return fmt.Errorf("open feedback: %w", err)
	}

	comp := payroll.NewRandomCompensator()
	var payrollSeed func() []payroll.Item
	if cfg.SeedData {
		payrollSeed = func() []payroll.Item { return payroll.SeedFor(directory.List(), comp, now) }
	}
	if a.Payroll, err = payroll.Open(ctx, a.Store, broker, directory, payrollSeed, payroll.WithCompensator(comp)); err != nil {
		return fmt.Errorf("open payroll: %w", err)
	}

	var leaveSeed func() []leave.Request
	if cfg.SeedData {
		leaveSeed = leave.Seed
	}
	if a.Leave, err = leave.Open(ctx, a.Store, broker, leaveSeed); err != nil {
		return fmt.Errorf("open leave: %w", err)
	}

	var reviewSeed func() []performance.Review
	if cfg.SeedData {
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		reviewSeed = func() []performance.Review { return performance.SeedFor(directory.List(), rng, now) }
	}
	if a.Performance, err = performance.Open(ctx, a.Store, broker, reviewSeed); err != nil {
		return fmt.Errorf("open performance: %w", err)
	}

	if a.Settings, err = settings.Open(ctx, a.Store, broker); err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	a.Reports = reports.NewService(directory, a.Leave, a.Payroll, a.Performance)

	if a.Audit, err = audit.Open(ctx, a.Store, a.Logger); err != nil {
		return fmt.Errorf("open audit: %w", err)
	}
	a.Notifier = notifications.New(email.New(cfg, a.Logger), a.Settings, cfg.EmailFrom, cfg.NotifyEmail, a.Logger)

	var observer jobs.Observer
	if a.Metrics != nil {
		observer = a.Metrics
	}
	if a.Jobs, err = jobs.New(ctx, a.Store, observer, a.Logger); err != nil {
		return fmt.Errorf("open jobs: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a.cancel = cancel
	a.subscribe(runCtx, "audit", a.Audit.Run)
	a.subscribe(runCtx, "notifications", a.Notifier.Run)
	a.Jobs.Start(runCtx)
	a.Jobs.Schedule(runCtx, cfg.PayrollAutogenInterval, jobs.JobPayrollGenerate, jobshandler.PayrollGenerate(a.Payroll, ""))
	return nil
}

func (a *App) subscribe(ctx context.Context, name string, run func(context.Context, <-chan events.Event)) {
	ch, cancel := a.Broker.Subscribe(name, subscriberBuffer)
	a.unsubscribe = append(a.unsubscribe, cancel)
	a.workers.Add(1)
	go func() {
		defer a.workers.Done()
		run(ctx, ch)
	}()
}

func (a *App) routes() http.Handler {
	cfg := a.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	trustProxy := middleware.TrustForwardedFor(cfg.TrustProxyHeaders)
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute, trustProxy))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute, trustProxy))
	if a.Metrics != nil {
		router.Use(a.Metrics.Middleware)
		router.Handle("/metrics", a.Metrics.Handler())
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Store.Ping(ctx); err != nil {
			http.Error(w, "storage not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		employeeshandler.NewHandler(a.Employees, a.Feedback).RegisterRoutes(r)
		feedbackhandler.NewHandler(a.Feedback).RegisterRoutes(r)
		payrollhandler.NewHandler(a.Payroll, a.Settings).RegisterRoutes(r)
		leavehandler.NewHandler(a.Leave, a.Employees).RegisterRoutes(r)
		performancehandler.NewHandler(a.Performance, a.Employees).RegisterRoutes(r)
		settingshandler.NewHandler(a.Settings).RegisterRoutes(r)
		reportshandler.NewHandler(a.Reports).RegisterRoutes(r)
		audithandler.NewHandler(a.Audit).RegisterRoutes(r)
		jobshandler.NewHandler(a.Jobs, a.Payroll).RegisterRoutes(r)
		eventshandler.NewHandler(a.Broker, a.Logger, cfg.AllowedOrigins).RegisterRoutes(r)
	})

	return otelhttp.NewHandler(router, "http.server")
}

// Close stops background work and releases storage and tracing.
func (a *App) Close(ctx context.Context) error {
	var err error
	a.closeOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		for _, cancel := range a.unsubscribe {
			cancel()
		}
		a.workers.Wait()
		if a.Jobs != nil {
			a.Jobs.Wait()
		}
		err = errors.Join(a.Store.Close(), a.stopTracing(ctx))
	})
	return err
}

// Run loads configuration from the environment and serves until SIGINT or
// SIGTERM, then drains in-flight requests.
func Run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.Logger.Info("server listening", "addr", cfg.Addr, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
	case <-ctx.Done():
		app.Logger.Info("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		app.Logger.Warn("http shutdown failed", "err", shutdownErr)
	}
	return errors.Join(err, app.Close(shutdownCtx))
}
