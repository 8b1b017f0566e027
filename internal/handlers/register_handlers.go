package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/fittrack/gym_backoffice/cmd/docs"
	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
	"github.com/fittrack/gym_backoffice/internal/middleware"
	"github.com/fittrack/gym_backoffice/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", GetHome)

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterLedgerRoutes(v1, services.Ledger)
	registerPaymentRoutes(v1, services.Payment)
	registerCheckInRoutes(v1, services.Attendance, checkInRateLimit(cfg))
}

// checkInRateLimit builds the per-IP limiter for the kiosk endpoint. The rate
// is configured as e.g. "30-M"; a bad value falls back to the limiter's
// parse error at startup, so fail loud via panic here rather than serving an
// unprotected endpoint.
func checkInRateLimit(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.CheckInRateLimit)
	if err != nil {
		panic("invalid CHECKIN_RATE_LIMIT: " + err.Error())
	}
	instance := limiter.New(limitermem.NewStore(), rate)
	return middleware.RateLimit(instance)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
