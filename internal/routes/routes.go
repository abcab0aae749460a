package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

// Deps are the process level singletons the router is built from. Redis is
// optional; Gatherer defaults to the prometheus default registry.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Redis    *redis.Client
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Log      *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	barberRepo := infraRepo.NewBarberGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	uow := infraRepo.NewGormUnitOfWork(d.DB, cfg.LockTimeout, cfg.StatementTimeout)
	auditLogger := audit.New(d.DB)

	var barberCache ucCatalog.BarberCache
	if d.Redis != nil {
		barberCache = cache.NewBarberCache(d.Redis, cfg.BarberCacheTTL)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	listBarbersUC := ucCatalog.NewListBarbers(barberRepo, barberCache, d.Metrics, d.Log)
	listScheduleUC := ucCatalog.NewListSchedule(barberRepo, scheduleRepo, d.Metrics)

	createUC := ucBooking.NewCreateBooking(uow, d.Metrics, d.Log)
	readUC := ucBooking.NewReadBooking(bookingRepo, d.Metrics)
	updateUC := ucBooking.NewUpdateBooking(uow, d.Metrics, d.Log)
	cancelUC := ucBooking.NewCancelBooking(uow, d.Metrics, d.Log)
	historyUC := ucBooking.NewHistory(auditLogger)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB, d.Log)
	barberHandler := handlers.NewBarberHandler(listBarbersUC, listScheduleUC, d.Log)
	bookingHandler := handlers.NewBookingHandler(
		createUC,
		readUC,
		updateUC,
		cancelUC,
		historyUC,
		d.Log,
	)

	// ======================================================
	// PUBLIC
	// ======================================================
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.GET("/health", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	barbers := r.Group("/barbers")
	{
		barbers.GET("", barberHandler.List)
		barbers.GET("/:id/schedule", barberHandler.Schedule)
		barbers.GET("/:id/schedule/available", barberHandler.AvailableSchedule)
	}

	// ======================================================
	// BOOKING (AUTH)
	// ======================================================
	limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	booking := r.Group("/booking")
	booking.Use(
		limiter.Middleware(),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)
	{
		booking.POST("/create", bookingHandler.Create)
		booking.GET("/read", bookingHandler.Read)
		booking.PUT("/update", bookingHandler.Update)
		booking.DELETE("/delete", bookingHandler.Delete)
		booking.GET("/history", bookingHandler.History)
	}
}
