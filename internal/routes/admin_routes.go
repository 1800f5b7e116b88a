package routes

import (
	"imovia/internal/api/middleware"
	"imovia/internal/config"
	"imovia/internal/handlers"
	"imovia/internal/services"
	"imovia/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupAdminRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	log := logger.New("admin_routes")

	adminService := services.NewAdminService(db)
	authHandler := handlers.NewAuthHandler(adminService, cfg.JWT.Secret)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Public login route
	e.POST("/api/admin/login", authHandler.Login)

	// Account management is gated by the authorization policy: only
	// super admins pass the role check on these routes.
	admins := e.Group("/api/admins")
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, db)
	admins.Use(authMiddleware.Middleware())

	admins.GET("", adminHandler.ListAdmins)
	admins.GET("/:id", adminHandler.GetAdmin)
	admins.POST("", adminHandler.CreateAdmin)
	admins.PUT("/:id", adminHandler.UpdateAdmin)
	admins.PATCH("/:id/status", adminHandler.ToggleAdminStatus)
	admins.DELETE("/:id", adminHandler.DeleteAdmin)

	log.Success("Admin routes initialized successfully")
}
