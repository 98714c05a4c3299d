package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/page-scheduler/internal/audit"
	"github.com/BruksfildServices01/page-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/page-scheduler/internal/db"
	"github.com/BruksfildServices01/page-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/page-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/page-scheduler/internal/logger"
	"github.com/BruksfildServices01/page-scheduler/internal/metrics"
	"github.com/BruksfildServices01/page-scheduler/internal/middleware"
	"github.com/BruksfildServices01/page-scheduler/internal/routes"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
)

const (
	auditQueueSize  = 256
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	locker, closeLocker := newLocker(cfg, log)
	defer closeLocker()

	auditLog := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLog, log, m, auditQueueSize)

	limiter := middleware.NewRateLimiter(cfg.PublicRateLimit, cfg.PublicRateBurst)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go sweepLimiter(ctx, limiter)

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Pages:     infraRepo.NewPageGormRepository(db),
		Store:     infraRepo.NewAppointmentGormRepository(db, cfg.DBLockTimeout),
		Locker:    locker,
		Clock:     timezone.SystemClock{},
		Audit:     auditDispatcher,
		Metrics:   m,
		Registry:  reg,
		Limiter:   limiter,
		Log:       log,
		AuditLogs: auditLog,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	// pending audit events are flushed after the last request finished
	auditDispatcher.Close()

	log.Info("server stopped")
}

// newLocker returns a Redis-backed lock when REDIS_URL is set, so several
// replicas serialize bookings of the same page. Otherwise the lock is
// process-local.
func newLocker(cfg *config.Config, log *zap.Logger) (lock.Locker, func()) {
	if cfg.RedisURL == "" {
		log.Info("booking lock: local")
		return lock.NewLocal(), func() {}
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("invalid REDIS_URL", zap.Error(err))
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}

	log.Info("booking lock: redis", zap.String("addr", opts.Addr))
	return lock.NewRedis(client, cfg.BookingLockTTL, log), func() { _ = client.Close() }
}

func sweepLimiter(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.Cleanup(now)
		}
	}
}
