package handlers

import (
	portssvc "github.com/halverson/farmbooks/internal/core/ports/services"
	"github.com/halverson/farmbooks/internal/middleware"
	"github.com/halverson/farmbooks/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. Every route is scoped to one farm entity.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	entity := v1.Group("/entities/:entityID")
	registerAccountRoutes(entity, services.Account)
	registerJournalRoutes(entity, services.Journal, services.Posting)
	registerPeriodRoutes(entity, services.Period)
	registerPayableRoutes(entity, services.Subledger, services.Posting)
	registerBankRecRoutes(entity, services.BankRec)
	registerPaymentRoutes(entity, services.Payment)
	registerReportingRoutes(entity, services.Reporting)
}
