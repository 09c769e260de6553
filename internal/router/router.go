package router

import (
	"github.com/gin-gonic/gin"

	"tallymap/internal/config"
	"tallymap/internal/handler"
	"tallymap/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	healthH *handler.HealthHandler,
	companyH *handler.CompanyHandler,
	stateCodeH *handler.StateCodeHandler,
	importH *handler.ImportHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/health", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	api := r.Group("/api")

	// Company master
	companies := api.Group("/company-master")
	companies.POST("", companyH.Create)
	companies.GET("", companyH.List)
	companies.GET("/:id", companyH.GetByID)
	companies.PUT("/:id", companyH.Update)
	companies.DELETE("/:id", companyH.Delete)

	// GST jurisdiction reference table
	api.GET("/gstin-numbers", stateCodeH.List)

	// GSTR-2B imports
	imports := api.Group("/gstr2b-imports")
	imports.POST("/b2b", importH.UploadB2B)
	imports.GET("/company/:companyId", importH.ListByCompany)
	imports.GET("/:id", importH.GetByID)
	imports.POST("/:id/process", importH.Process)
	imports.GET("/:id/processed", importH.GetProcessed)
	imports.GET("/:id/processed/export", importH.Export)

	return r
}
