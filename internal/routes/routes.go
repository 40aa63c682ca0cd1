package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/clock"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucBarbershop "github.com/BruksfildServices01/barbershop-booking/internal/usecase/barbershop"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

const (
	limiterSweepEvery = time.Minute
	limiterIdle       = 10 * time.Minute
)

type Deps struct {
	Ctx     context.Context // bounds background sweeps
	DB      *gorm.DB
	Redis   *redis.Client // optional
	Cfg     *config.Config
	Clock   *clock.System
	Log     *zap.Logger
	Metrics *metrics.Metrics

	AuditLog   *audit.Logger
	AuditQueue *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) error {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Cfg.CORSOrigins))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(d.Metrics.Middleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	barbershopRepo := infraRepo.NewBarbershopGormRepository(d.DB)

	var services domain.ServiceRepository = bookingRepo
	if d.Redis != nil {
		services = cache.NewServiceCache(bookingRepo, d.Redis, d.Cfg.ServiceCacheTTL, d.Log)
	}

	table, err := d.Cfg.SlotTable()
	if err != nil {
		return err
	}
	if times := table.Times(); len(times) > 0 {
		d.Log.Info("slot table loaded",
			zap.Int("slots", table.Len()),
			zap.Stringer("first", times[0]),
			zap.Stringer("last", times[len(times)-1]),
		)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	reserveUC := ucBooking.NewReserveBooking(
		services,
		bookingRepo,
		table,
		d.Clock,
		d.Log.Named("reserve"),
		d.Cfg.StoreTimeout,
	)

	availabilityUC := ucBooking.NewGetAvailability(
		services,
		bookingRepo,
		table,
		d.Clock,
		d.Cfg.StoreTimeout,
	)

	listBookingsUC := ucBooking.NewListUserBookings(
		bookingRepo,
		d.Clock,
		d.Cfg.StoreTimeout,
	)

	catalogUC := ucBarbershop.NewCatalog(barbershopRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		reserveUC,
		availabilityUC,
		listBookingsUC,
		d.Clock.Location(),
		d.AuditQueue,
		d.Metrics,
		d.Log,
	)
	barbershopHandler := handlers.NewBarbershopHandler(catalogUC, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog, d.Clock.Location(), d.Log)

	reserveLimiter := middleware.NewRateLimiter(d.Cfg.ReserveRatePerMin, d.Cfg.ReserveBurst)
	if d.Ctx != nil {
		go reserveLimiter.Run(d.Ctx, limiterSweepEvery, limiterIdle, d.Log)
	}

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/barbershops", barbershopHandler.List)
		api.GET("/barbershops/popular", barbershopHandler.Popular)
		api.GET("/barbershops/search", barbershopHandler.Search)
		api.GET("/barbershops/:id", barbershopHandler.Get)

		api.GET("/services/:id/availability", bookingHandler.Availability)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Cfg.JWTSecret))
		{
			secured.POST("/bookings", reserveLimiter.Middleware(d.Log), bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
