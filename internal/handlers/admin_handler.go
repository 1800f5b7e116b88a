package handlers

import (
	"net/http"

	"imovia/internal/api/middleware"
	"imovia/internal/models"
	"imovia/internal/services"
	"imovia/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

// AdminHandler manages back-office accounts. Every route behind it is
// gated to super admins by the authorization policy.
type AdminHandler struct {
	admins *services.AdminService
	log    *logger.Logger
}

func NewAdminHandler(admins *services.AdminService) *AdminHandler {
	return &AdminHandler{
		admins: admins,
		log:    logger.New("AdminHandler"),
	}
}

type createAdminRequest struct {
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	Role        string   `json:"role" validate:"omitempty,admin_role"`
	Permissions []string `json:"permissions"`
}

type updateAdminRequest struct {
	Name        *string   `json:"name"`
	Email       *string   `json:"email" validate:"omitempty,email"`
	Password    *string   `json:"password" validate:"omitempty,min=8"`
	Role        *string   `json:"role" validate:"omitempty,admin_role"`
	Permissions *[]string `json:"permissions"`
}

type toggleStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// ListAdmins returns every admin account. Password hashes are never
// serialized.
// @Summary List admins
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Admin
// @Failure 403 {object} map[string]string "Insufficient role"
// @Router /api/admins [get]
func (h *AdminHandler) ListAdmins(c echo.Context) error {
	admins, err := h.admins.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, admins)
}

// GetAdmin returns one admin account.
// @Summary Get admin
// @Tags admins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 200 {object} models.Admin
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/admins/{id} [get]
func (h *AdminHandler) GetAdmin(c echo.Context) error {
	admin, err := h.admins.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, admin)
}

// CreateAdmin creates an account, recording the creating super admin.
// @Summary Create admin
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createAdminRequest true "New admin"
// @Success 201 {object} models.Admin
// @Failure 400 {object} map[string]string "Validation error or email taken"
// @Router /api/admins [post]
func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.admins.Create(c.Request().Context(), services.CreateAdminInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        models.AdminRole(req.Role),
		Permissions: req.Permissions,
	}, middleware.GetAdminID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, admin)
}

// UpdateAdmin applies a partial update. Omitting the password keeps the
// stored hash.
// @Summary Update admin
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body updateAdminRequest true "Fields to change"
// @Success 200 {object} models.Admin
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/admins/{id} [put]
func (h *AdminHandler) UpdateAdmin(c echo.Context) error {
	var req updateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := services.UpdateAdminInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Permissions: req.Permissions,
	}
	if req.Role != nil {
		role := models.AdminRole(*req.Role)
		input.Role = &role
	}

	admin, err := h.admins.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, admin)
}

// ToggleAdminStatus activates or deactivates an account. Deactivated
// admins cannot log in and their existing tokens stop working.
// @Summary Toggle admin status
// @Tags admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param request body toggleStatusRequest true "Target status"
// @Success 200 {object} models.Admin
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/admins/{id}/status [patch]
func (h *AdminHandler) ToggleAdminStatus(c echo.Context) error {
	var req toggleStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.admins.ToggleStatus(c.Request().Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, admin)
}

// DeleteAdmin removes an account. Admins cannot delete themselves.
// @Summary Delete admin
// @Tags admins
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 204 "No content"
// @Failure 403 {object} map[string]string "Cannot delete own account"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/admins/{id} [delete]
func (h *AdminHandler) DeleteAdmin(c echo.Context) error {
	if err := h.admins.Delete(c.Request().Context(), c.Param("id"), middleware.GetAdminID(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
