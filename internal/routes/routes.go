package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/page-scheduler/internal/audit"
	"github.com/BruksfildServices01/page-scheduler/internal/config"
	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/handlers"
	"github.com/BruksfildServices01/page-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/page-scheduler/internal/metrics"
	"github.com/BruksfildServices01/page-scheduler/internal/middleware"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/page-scheduler/internal/usecase/appointment"
	ucPage "github.com/BruksfildServices01/page-scheduler/internal/usecase/page"
	"github.com/BruksfildServices01/page-scheduler/internal/validators"
)

// Deps holds the singletons built in main. AuditLogs is optional; without
// it the audit log listing is not mounted.
type Deps struct {
	Config    *config.Config
	Pages     domain.PageReader
	Store     domain.Store
	Locker    lock.Locker
	Clock     timezone.Clock
	Audit     *audit.Dispatcher
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry
	Limiter   *middleware.RateLimiter
	Log       *zap.Logger
	AuditLogs handlers.AuditLogReader
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validators.Register(v)
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.Recover(d.Log))
	r.Use(middleware.Logger(d.Log, d.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if d.Registry != nil && cfg.MetricsPath != "" {
		r.GET(cfg.MetricsPath, gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	getPublicPageUC := ucPage.NewGetPublicPage(d.Pages, d.Clock, cfg.FreeCatalogLimit)
	getPlanUC := ucPage.NewGetPlan(d.Pages, d.Clock, cfg.FreeCatalogLimit)

	availabilityUC := ucAppointment.NewGetAvailability(
		d.Pages,
		d.Store,
		d.Clock,
		d.Metrics,
		d.Log,
		cfg.FreeCatalogLimit,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(ucAppointment.CreateAppointmentDeps{
		Pages:            d.Pages,
		Store:            d.Store,
		Locker:           d.Locker,
		LockWait:         cfg.BookingLockWait,
		Clock:            d.Clock,
		Audit:            d.Audit,
		Metrics:          d.Metrics,
		Log:              d.Log,
		FreeCatalogLimit: cfg.FreeCatalogLimit,
	})

	listUpcomingUC := ucAppointment.NewListUpcoming(d.Pages, d.Store, d.Clock, d.Log)
	listByRangeUC := ucAppointment.NewListByRange(d.Pages, d.Store, d.Log)
	updateStatusUC := ucAppointment.NewUpdateStatus(d.Store, d.Clock, d.Audit, d.Metrics, d.Log)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(getPublicPageUC, availabilityUC, createAppointmentUC)
	appointmentHandler := handlers.NewAppointmentHandler(listUpcomingUC, listByRangeUC, updateStatusUC)
	meHandler := handlers.NewMeHandler(getPlanUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		{
			publicAPI.GET("", publicHandler.GetPage)
			publicAPI.GET("/availability", publicHandler.Availability)

			booking := []gin.HandlerFunc{publicHandler.CreateAppointment}
			if d.Limiter != nil {
				booking = append([]gin.HandlerFunc{d.Limiter.Middleware()}, booking...)
			}
			publicAPI.POST("/appointments", booking...)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/plan", meHandler.GetPlan)

			secured.GET("/appointments/upcoming", appointmentHandler.Upcoming)
			secured.GET("/appointments", appointmentHandler.ListByRange)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			if d.AuditLogs != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Log)
				secured.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
