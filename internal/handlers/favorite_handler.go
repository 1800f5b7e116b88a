package handlers

import (
	"net/http"

	"imovia/internal/api/middleware"
	"imovia/internal/cache"
	"imovia/internal/services"
	"imovia/internal/utils"
	"imovia/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

type FavoriteHandler struct {
	favorites *services.FavoriteService
	limiter   *cache.SessionRateLimiter
	log       *logger.Logger
}

func NewFavoriteHandler(favorites *services.FavoriteService, limiter *cache.SessionRateLimiter) *FavoriteHandler {
	return &FavoriteHandler{
		favorites: favorites,
		limiter:   limiter,
		log:       logger.New("FavoriteHandler"),
	}
}

type addFavoriteRequest struct {
	PropertyID string `json:"propertyId" validate:"required,uuid4"`
}

// GetSession returns the caller's session id, minting a fresh one when
// the header is absent. The client stores it and sends it back on every
// favorites call.
// @Summary Get or create session
// @Tags session
// @Produce json
// @Param x-session-id header string false "Existing session ID"
// @Success 200 {object} map[string]string
// @Router /api/session [get]
func (h *FavoriteHandler) GetSession(c echo.Context) error {
	sessionID := c.Request().Header.Get(middleware.SessionHeader)
	if sessionID == "" {
		var err error
		sessionID, err = utils.GenerateSessionID()
		if err != nil {
			return h.log.Error("Failed to mint session id", err)
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"sessionId": sessionID,
	})
}

// ListFavorites returns the session's favorites with their properties,
// newest first.
// @Summary List favorites
// @Tags favorites
// @Produce json
// @Param x-session-id header string true "Session ID"
// @Success 200 {array} models.Favorite
// @Failure 400 {object} map[string]string "Session ID required"
// @Router /api/favorites [get]
func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	favorites, err := h.favorites.List(c.Request().Context(), sessionID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, favorites)
}

// AddFavorite marks a property as a favorite of the session. Adding an
// existing favorite is a no-op that still returns the record.
// @Summary Add favorite
// @Tags favorites
// @Accept json
// @Produce json
// @Param x-session-id header string true "Session ID"
// @Success 201 {object} models.Favorite
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Property not found"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /api/favorites [post]
func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	allowed, err := h.limiter.Allow(c.Request().Context(), sessionID)
	if err != nil {
		h.log.Warn("Rate limiter check failed: %v", err)
		allowed = true
	}
	if !allowed {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many favorite requests")
	}

	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	favorite, err := h.favorites.Add(c.Request().Context(), sessionID, req.PropertyID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, favorite)
}

// RemoveFavorite unmarks a property. Removing one that was never added
// succeeds silently.
// @Summary Remove favorite
// @Tags favorites
// @Param x-session-id header string true "Session ID"
// @Param propertyId path string true "Property ID"
// @Success 204 "No content"
// @Router /api/favorites/{propertyId} [delete]
func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	if err := h.favorites.Remove(c.Request().Context(), sessionID, c.Param("propertyId")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckFavorite reports whether the session has favorited a property.
// @Summary Check favorite
// @Tags favorites
// @Produce json
// @Param x-session-id header string true "Session ID"
// @Param propertyId path string true "Property ID"
// @Success 200 {object} map[string]bool
// @Router /api/favorites/{propertyId}/check [get]
func (h *FavoriteHandler) CheckFavorite(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	isFavorite, err := h.favorites.IsFavorite(c.Request().Context(), sessionID, c.Param("propertyId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{
		"isFavorite": isFavorite,
	})
}
