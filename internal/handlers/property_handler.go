package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"imovia/internal/cache"
	"imovia/internal/models"
	"imovia/internal/services"
	"imovia/internal/storage"
	"imovia/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type PropertyHandler struct {
	properties *services.PropertyService
	cache      *cache.Cache
	log        *logger.Logger
}

func NewPropertyHandler(properties *services.PropertyService, listingCache *cache.Cache) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
		cache:      listingCache,
		log:        logger.New("PropertyHandler"),
	}
}

// ListProperties returns the filtered catalogue, newest first.
// @Summary List properties
// @Description List properties matching the optional filters
// @Tags properties
// @Produce json
// @Param type query string false "Property type (apartment, house, farm)"
// @Param location query string false "Location substring, case-insensitive"
// @Param minPrice query number false "Inclusive lower price bound"
// @Param maxPrice query number false "Inclusive upper price bound"
// @Param status query string false "Property status (available, sold)"
// @Success 200 {array} models.Property
// @Failure 400 {object} map[string]string "Malformed filter value"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/properties [get]
func (h *PropertyHandler) ListProperties(c echo.Context) error {
	params := map[string]string{
		"type":     c.QueryParam("type"),
		"location": c.QueryParam("location"),
		"minPrice": c.QueryParam("minPrice"),
		"maxPrice": c.QueryParam("maxPrice"),
		"status":   c.QueryParam("status"),
	}

	filter, err := services.ParsePropertyFilter(
		params["type"], params["location"], params["minPrice"], params["maxPrice"], params["status"],
	)
	if err != nil {
		return httpError(err)
	}

	ctx := c.Request().Context()
	key := cache.ListingKey(params)

	var properties []models.Property
	if hit, err := h.cache.Get(ctx, key, &properties); err == nil && hit {
		return c.JSON(http.StatusOK, properties)
	}

	properties, err = h.properties.List(ctx, filter)
	if err != nil {
		return httpError(err)
	}

	if err := h.cache.Set(ctx, key, properties, cache.ListingTTL); err != nil {
		h.log.Warn("Failed to cache listing: %v", err)
	}

	return c.JSON(http.StatusOK, properties)
}

// GetProperty returns a single listing.
// @Summary Get property
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/properties/{id} [get]
func (h *PropertyHandler) GetProperty(c echo.Context) error {
	property, err := h.properties.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, property)
}

// CreateProperty creates a listing from a multipart form with up to 12
// image files under "images".
// @Summary Create property
// @Tags properties
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} models.Property
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/properties [post]
func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Expected multipart form data")
	}

	price, err := services.ParseDecimalField("price", formValue(form, "price"))
	if err != nil {
		return httpError(err)
	}
	if price == nil {
		zero := 0.0
		price = &zero
	}
	area, err := services.ParseDecimalField("area", formValue(form, "area"))
	if err != nil {
		return httpError(err)
	}
	bedrooms, err := services.ParseCountField("bedrooms", formValue(form, "bedrooms"))
	if err != nil {
		return httpError(err)
	}
	bathrooms, err := services.ParseCountField("bathrooms", formValue(form, "bathrooms"))
	if err != nil {
		return httpError(err)
	}
	parkingSpaces, err := services.ParseCountField("parkingSpaces", formValue(form, "parkingSpaces"))
	if err != nil {
		return httpError(err)
	}

	property := models.Property{
		Title:         formValue(form, "title"),
		Type:          models.PropertyType(formValue(form, "type")),
		Description:   formValue(form, "description"),
		Location:      formValue(form, "location"),
		Price:         *price,
		Status:        models.PropertyStatus(formValue(form, "status")),
		Area:          area,
		Bedrooms:      bedrooms,
		Bathrooms:     bathrooms,
		ParkingSpaces: parkingSpaces,
	}
	if property.Status == "" {
		property.Status = models.PropertyStatusAvailable
	}

	if err := c.Validate(&property); err != nil {
		return err
	}

	images, err := h.saveImages(c, form.File["images"], nil)
	if err != nil {
		return err
	}
	property.Images = datatypes.NewJSONSlice(images)

	if err := h.properties.Create(c.Request().Context(), &property); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, property)
}

// UpdateProperty applies a partial multipart update. Fields absent from
// the form are left untouched. The image gallery changes only when new
// files or an "existingImages" JSON list are supplied: the final set is
// retained images plus new uploads.
// @Summary Update property
// @Tags properties
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.Property
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Expected multipart form data")
	}

	var upd services.PropertyUpdate

	if v, ok := formLookup(form, "title"); ok {
		upd.Title = &v
	}
	if v, ok := formLookup(form, "type"); ok {
		t := models.PropertyType(v)
		upd.Type = &t
	}
	if v, ok := formLookup(form, "description"); ok {
		upd.Description = &v
	}
	if v, ok := formLookup(form, "location"); ok {
		upd.Location = &v
	}
	if v, ok := formLookup(form, "status"); ok {
		s := models.PropertyStatus(v)
		upd.Status = &s
	}
	if v, ok := formLookup(form, "price"); ok {
		price, err := services.ParseDecimalField("price", v)
		if err != nil {
			return httpError(err)
		}
		upd.Price = price
	}
	if v, ok := formLookup(form, "area"); ok {
		area, err := services.ParseDecimalField("area", v)
		if err != nil {
			return httpError(err)
		}
		upd.Area = area
	}
	if v, ok := formLookup(form, "bedrooms"); ok {
		n, err := services.ParseCountField("bedrooms", v)
		if err != nil {
			return httpError(err)
		}
		upd.Bedrooms = n
	}
	if v, ok := formLookup(form, "bathrooms"); ok {
		n, err := services.ParseCountField("bathrooms", v)
		if err != nil {
			return httpError(err)
		}
		upd.Bathrooms = n
	}
	if v, ok := formLookup(form, "parkingSpaces"); ok {
		n, err := services.ParseCountField("parkingSpaces", v)
		if err != nil {
			return httpError(err)
		}
		upd.ParkingSpaces = n
	}

	files := form.File["images"]
	existingRaw, hasExisting := formLookup(form, "existingImages")
	if len(files) > 0 || hasExisting {
		var retained []string
		if hasExisting && existingRaw != "" {
			if err := json.Unmarshal([]byte(existingRaw), &retained); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
					"field": "existingImages",
					"error": "must be a JSON array of image paths",
				})
			}
		}

		images, err := h.saveImages(c, files, retained)
		if err != nil {
			return err
		}
		upd.Images = &images
	}

	property, err := h.properties.Update(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, property)
}

// DeleteProperty removes a listing. Its favorites cascade away and its
// images are cleaned up in the background.
// @Summary Delete property
// @Tags properties
// @Param id path string true "Property ID"
// @Success 204 "No content"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/properties/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c echo.Context) error {
	if err := h.properties.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// saveImages stores the uploaded files and returns retained + new
// paths, enforcing the gallery cap across the combined set.
func (h *PropertyHandler) saveImages(c echo.Context, files []*multipart.FileHeader, retained []string) ([]string, error) {
	if len(retained)+len(files) > models.MaxPropertyImages {
		return nil, echo.NewHTTPError(http.StatusBadRequest, map[string]string{
			"field": "images",
			"error": "at most 12 images allowed",
		})
	}

	store := storage.Get()
	if store == nil && len(files) > 0 {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Image store not configured")
	}

	images := append([]string{}, retained...)
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to open uploaded file")
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
		}

		path, err := store.Save(c.Request().Context(), content, file.Filename, file.Header.Get("Content-Type"))
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, map[string]string{
				"field": "images",
				"error": err.Error(),
			})
		}
		images = append(images, path)
	}

	return images, nil
}

func formValue(form *multipart.Form, key string) string {
	v, _ := formLookup(form, key)
	return v
}

func formLookup(form *multipart.Form, key string) (string, bool) {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
