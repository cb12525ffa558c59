package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	portssvc "github.com/uctoflow/ledger-engine/internal/core/ports/services"
	"github.com/uctoflow/ledger-engine/internal/platform/config"
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

	setupAPIV1Routes(r, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerCurrencyRoutes(v1, services.Currency)

	tenantHandler := newTenantHandler(services.Tenant)
	tenants := v1.Group("/tenants")
	{
		tenants.POST("", tenantHandler.createTenant)
		tenants.GET("", tenantHandler.listTenants)
		tenants.GET("/:tenantID", tenantHandler.getTenant)
		tenants.DELETE("/:tenantID", tenantHandler.disableTenant)
	}

	// Everything below is scoped to one tenant's books.
	tenantScoped := tenants.Group("/:tenantID")
	registerAccountRoutes(tenantScoped, services.Account)
	RegisterEntryRoutes(tenantScoped, services.Entry)
	registerTemplateRoutes(tenantScoped, services.Template)
	registerReportingRoutes(tenantScoped, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
