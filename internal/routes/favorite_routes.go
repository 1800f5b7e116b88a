package routes

import (
	"time"

	"imovia/internal/api/middleware"
	"imovia/internal/cache"
	"imovia/internal/handlers"
	"imovia/internal/services"
	"imovia/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupFavoriteRoutes(e *echo.Echo, db *gorm.DB, listingCache *cache.Cache) {
	log := logger.New("favorite_routes")

	limiter := cache.NewSessionRateLimiter(listingCache, "favorites", cache.RateLimit{
		Window:  time.Minute,
		MaxHits: 60,
	})
	favoriteHandler := handlers.NewFavoriteHandler(services.NewFavoriteService(db), limiter)

	// Session bootstrap works without an existing session header
	e.GET("/api/session", favoriteHandler.GetSession)

	favorites := e.Group("/api/favorites")
	favorites.Use(middleware.RequireSession())

	favorites.GET("", favoriteHandler.ListFavorites)
	favorites.POST("", favoriteHandler.AddFavorite)
	favorites.DELETE("/:propertyId", favoriteHandler.RemoveFavorite)
	favorites.GET("/:propertyId/check", favoriteHandler.CheckFavorite)

	log.Success("Favorite routes initialized successfully")
}
