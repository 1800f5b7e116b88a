package middleware

import (
	"net/http"
	"strings"

	"imovia/internal/models"
	"imovia/internal/utils"
	"imovia/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var log = logger.New("auth_middleware")

// AuthMiddleware is the auth gate for the back office. It moves a
// request from unauthenticated to authenticated when the bearer token
// verifies, then evaluates the route policy table for the role check.
// 401 and 403 are distinct: the first is a verification failure, the
// second an authenticated caller with the wrong role.
type AuthMiddleware struct {
	jwtSecret string
	db        *gorm.DB
}

func NewAuthMiddleware(jwtSecret string, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret, db: db}
}

func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := utils.ParseJWT(tokenParts[1], m.jwtSecret)
			if err != nil {
				log.Warn("Rejected bearer token: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			// The token may outlive the account. Deactivated or deleted
			// admins lose access immediately.
			if m.db != nil {
				var admin models.Admin
				if err := m.db.Select("id", "is_active").First(&admin, "id = ?", claims.AdminID).Error; err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "Account not found")
				}
				if !admin.IsActive {
					return echo.NewHTTPError(http.StatusUnauthorized, "Account disabled")
				}
			}

			if roles, ok := requiredRoles(c.Request().Method, c.Path()); ok {
				if !RoleAllowed(roles, models.AdminRole(claims.Role)) {
					return echo.NewHTTPError(http.StatusForbidden, "Insufficient role")
				}
			}

			c.Set("adminID", claims.AdminID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
			c.Set("permissions", claims.Permissions)

			return next(c)
		}
	}
}

// GetAdminID Helper functions to get values from context
func GetAdminID(c echo.Context) string {
	if id, ok := c.Get("adminID").(string); ok {
		return id
	}
	return ""
}

func GetAdminEmail(c echo.Context) string {
	if email, ok := c.Get("email").(string); ok {
		return email
	}
	return ""
}

func GetAdminRole(c echo.Context) models.AdminRole {
	if role, ok := c.Get("role").(string); ok {
		return models.AdminRole(role)
	}
	return ""
}

func GetPermissions(c echo.Context) []string {
	if permissions, ok := c.Get("permissions").([]string); ok {
		return permissions
	}
	return nil
}

// HasPermission checks a capability string against the caller's claims.
// Super admins hold the wildcard.
func HasPermission(c echo.Context, required string) bool {
	if GetAdminRole(c) == models.AdminRoleSuperAdmin {
		return true
	}
	for _, p := range GetPermissions(c) {
		if p == "*:*" || p == required {
			return true
		}
	}
	return false
}
