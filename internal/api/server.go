package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"imovia/internal/api/validator"
	"imovia/internal/cache"
	"imovia/internal/config"
	"imovia/internal/models"
	"imovia/internal/routes"
	"imovia/internal/storage"

	console "imovia/internal/utils/logger"

	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config
	db     *gorm.DB
	cache  *cache.Cache
}

var log = console.New("API-Server")

func NewServer(cfg *config.Config, db *gorm.DB, listingCache *cache.Cache) *Server {
	e := echo.New()

	// Create custom validator
	e.Validator = validator.NewValidator()

	// Configure middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentLength, "x-session-id"},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	// Covers form fields plus a full 12-image gallery upload
	e.Use(middleware.BodyLimit("64M"))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	// Custom error handler
	e.HTTPErrorHandler = customHTTPErrorHandler

	s := &Server{
		echo:   e,
		config: cfg,
		db:     db,
		cache:  listingCache,
	}

	if err := models.SeedSuperAdmin(db, cfg); err != nil {
		log.Warn("Warning: Failed to seed super admin: %v", err)
	}

	// Local image store serves its directory at /uploads
	if local, ok := storage.Get().(*storage.LocalStore); ok {
		e.Static("/uploads", local.Dir())
	}

	routes.SetupPropertyRoutes(e, db, cfg, listingCache)
	routes.SetupFavoriteRoutes(e, db, listingCache)
	routes.SetupAdminRoutes(e, db, cfg)

	e.GET("/health", s.healthCheck)
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return s
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Health check endpoint
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"cache":  s.cache.Enabled(),
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Custom HTTP error handler
func customHTTPErrorHandler(err error, c echo.Context) {
	var (
		code    = http.StatusInternalServerError
		message interface{}
	)

	switch e := err.(type) {
	case *echo.HTTPError:
		code = e.Code
		message = e.Message
	case validator.ValidationErrors:
		code = http.StatusBadRequest
		message = formatValidationErrors(e)
	default:
		message = http.StatusText(code)
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]interface{}{
				"error": message,
				"code":  code,
				"time":  time.Now().Format(time.RFC3339),
			})
		}
		if err != nil {
			c.Echo().Logger.Error(err)
		}
	}
}

// formatValidationErrors formats validation errors into a map
func formatValidationErrors(errors validator.ValidationErrors) map[string]string {
	errMap := make(map[string]string)
	for _, err := range errors {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			errMap[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errMap[field] = fmt.Sprintf("%s must be a valid email", field)
		case "min":
			errMap[field] = fmt.Sprintf("%s must be at least %s", field, param)
		case "max":
			errMap[field] = fmt.Sprintf("%s must be at most %s", field, param)
		case "uuid4":
			errMap[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "gte":
			errMap[field] = fmt.Sprintf("%s must be %s or more", field, param)
		case "property_type":
			errMap[field] = fmt.Sprintf("%s must be one of: apartment, house, farm", field)
		case "property_status":
			errMap[field] = fmt.Sprintf("%s must be either 'available' or 'sold'", field)
		case "admin_role":
			errMap[field] = fmt.Sprintf("%s must be one of: super_admin, admin, editor, viewer", field)
		default:
			errMap[field] = fmt.Sprintf("%s failed validation: %s", field, tag)
		}
	}
	return errMap
}
