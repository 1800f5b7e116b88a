package handlers

import (
	"net/http"
	"time"

	"imovia/internal/models"
	"imovia/internal/services"
	"imovia/internal/utils"
	"imovia/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	admins    *services.AdminService
	jwtSecret string
	log       *logger.Logger
}

func NewAuthHandler(admins *services.AdminService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		admins:    admins,
		jwtSecret: jwtSecret,
		log:       logger.New("AuthHandler"),
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges admin credentials for a bearer token. Disabled
// accounts cannot log in. Failed attempts give no hint whether the
// email or the password was wrong.
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /api/admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.admins.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	token, err := utils.GenerateJWT(admin, h.jwtSecret)
	if err != nil {
		return h.log.Error("Failed to sign token for %s", err, admin.Email)
	}

	session := models.AdminSession{
		AdminID:   admin.ID,
		Token:     token,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: time.Now().Add(utils.TokenTTL),
	}
	if err := h.admins.RecordLogin(c.Request().Context(), &session); err != nil {
		h.log.Warn("Failed to record login for %s: %v", admin.Email, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"admin": admin,
	})
}
