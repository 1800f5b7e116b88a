package routes

import (
	"imovia/internal/api/middleware"
	"imovia/internal/cache"
	"imovia/internal/config"
	"imovia/internal/handlers"
	"imovia/internal/services"
	"imovia/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupPropertyRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, listingCache *cache.Cache) {
	log := logger.New("property_routes")

	propertyHandler := handlers.NewPropertyHandler(services.NewPropertyService(db), listingCache)

	properties := e.Group("/api/properties")

	// Public catalogue routes
	properties.GET("", propertyHandler.ListProperties)
	properties.GET("/:id", propertyHandler.GetProperty)

	// Mutations require an authenticated admin
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, db)
	properties.POST("", propertyHandler.CreateProperty, authMiddleware.Middleware())
	properties.PUT("/:id", propertyHandler.UpdateProperty, authMiddleware.Middleware())
	properties.DELETE("/:id", propertyHandler.DeleteProperty, authMiddleware.Middleware())

	log.Success("Property routes initialized successfully")
}
