// Package app wires configuration, static data and infrastructure into a
// running calculator service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Dan9191/calc-service/internal/calc/units"
	"github.com/Dan9191/calc-service/internal/config"
	"github.com/Dan9191/calc-service/internal/handler"
	"github.com/Dan9191/calc-service/internal/integrations/rates"
	"github.com/Dan9191/calc-service/internal/middleware"
	"github.com/Dan9191/calc-service/internal/repository"
	"github.com/Dan9191/calc-service/internal/service"
	"github.com/Dan9191/calc-service/internal/session"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// NewLogger creates the JSON logger used across the service
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// App holds the long-lived parts of the service
type App struct {
	cfg     *config.Config
	log     *logrus.Logger
	svc     *service.Service
	cache   repository.Cache
	limiter *middleware.RateLimiter
	cron    *cron.Cron
	closers []func() error
}

// New loads static data and connects the cache. Redis is used when
// configured; otherwise results are cached in memory.
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	rateTable, err := rates.NewLoader(log).Load(cfg.RatesFile)
	if err != nil {
		return nil, err
	}
	unitTable, err := loadUnits(cfg.UnitsFile)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}
	if cfg.RedisAddr != "" {
		rc, err := repository.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		a.cache = rc
		a.closers = append(a.closers, rc.Close)
		log.Infof("Caching schedules in redis at %s", cfg.RedisAddr)
	} else {
		a.cache = repository.NewMemoryCache()
	}

	repo := repository.NewRepository(a.cache, cfg.CacheTTL)
	a.svc = service.NewService(repo, log, rateTable, unitTable)
	return a, nil
}

// Service returns the calculator service
func (a *App) Service() *service.Service {
	return a.svc
}

// Router builds the HTTP routes with logging and rate limiting
func (a *App) Router() (*mux.Router, error) {
	signer, err := session.NewSigner(a.cfg.TokenSecret, a.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	a.limiter = middleware.NewRateLimiter(a.cfg.RateLimit, a.cfg.RateLimitWindow)

	mw := []mux.MiddlewareFunc{middleware.Logging(a.log), middleware.RateLimit(a.limiter)}
	r := mux.NewRouter()
	r.Use(mw...)
	handler.NewHandler(a.svc, signer, a.log).Register(r, mw...)
	return r, nil
}

// startHousekeeping schedules rate limiter and cache cleanup
func (a *App) startHousekeeping() error {
	a.cron = cron.New()
	_, err := a.cron.AddFunc(a.cfg.CleanupSchedule, func() {
		removed := a.limiter.Cleanup()
		if mc, ok := a.cache.(*repository.MemoryCache); ok {
			removed += mc.Purge()
		}
		a.log.Debugf("Housekeeping removed %d entries", removed)
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", a.cfg.CleanupSchedule, err)
	}
	a.cron.Start()
	return nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully
func (a *App) Serve(ctx context.Context) error {
	r, err := a.Router()
	if err != nil {
		return err
	}
	if err := a.startHousekeeping(); err != nil {
		return err
	}
	defer a.cron.Stop()

	addr := fmt.Sprintf(":%s", a.cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.log.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.log.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	a.log.Info("Server exited")
	return nil
}

// Close releases external connections
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func loadUnits(path string) (*units.Table, error) {
	if path == "" {
		return units.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read units file %s: %w", path, err)
	}
	return units.Load(data)
}
