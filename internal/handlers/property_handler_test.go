package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"imovia/internal/api/validator"
	"imovia/internal/cache"
	"imovia/internal/models"
	"imovia/internal/services"
	"imovia/internal/storage"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Property{}, &models.Favorite{}))
	return db
}

// newPropertyServer wires the handler against a real service, a local
// image store, and a disabled cache.
func newPropertyServer(t *testing.T) (*echo.Echo, *services.PropertyService) {
	t.Helper()

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	storage.Register(store)

	svc := services.NewPropertyService(newHandlerTestDB(t))
	handler := NewPropertyHandler(svc, &cache.Cache{})

	e := echo.New()
	e.Validator = validator.NewValidator()
	e.PUT("/api/properties/:id", handler.UpdateProperty)
	return e, svc
}

type multipartBody struct {
	fields map[string]string
	files  []string // filenames sent under the "images" form key
}

func (b multipartBody) request(t *testing.T, target string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range b.fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for _, name := range b.files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, name))
		header.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func seedGalleryProperty(t *testing.T, svc *services.PropertyService, images []string) models.Property {
	t.Helper()

	p := models.Property{
		Title: "Gallery flat", Type: models.PropertyTypeApartment,
		Description: "x", Location: "Lisbon", Price: 300000,
		Images: datatypes.NewJSONSlice(images),
	}
	require.NoError(t, svc.Create(context.Background(), &p))
	return p
}

func decodeProperty(t *testing.T, rec *httptest.ResponseRecorder) models.Property {
	t.Helper()
	var p models.Property
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestUpdateProperty_ImageRetention(t *testing.T) {
	e, svc := newPropertyServer(t)
	gallery := []string{"/uploads/a.jpg", "/uploads/b.jpg"}

	t.Run("metadata-only update keeps the gallery", func(t *testing.T) {
		p := seedGalleryProperty(t, svc, gallery)

		req := multipartBody{fields: map[string]string{"title": "Renamed"}}.request(t, "/api/properties/"+p.ID)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decodeProperty(t, rec)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, gallery, []string(got.Images))
	})

	t.Run("existingImages keeps exactly the listed subset", func(t *testing.T) {
		p := seedGalleryProperty(t, svc, gallery)

		req := multipartBody{fields: map[string]string{
			"existingImages": `["/uploads/b.jpg"]`,
		}}.request(t, "/api/properties/"+p.ID)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, []string{"/uploads/b.jpg"}, []string(decodeProperty(t, rec).Images))
	})

	t.Run("empty existingImages clears the gallery", func(t *testing.T) {
		p := seedGalleryProperty(t, svc, gallery)

		req := multipartBody{fields: map[string]string{
			"existingImages": `[]`,
		}}.request(t, "/api/properties/"+p.ID)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Empty(t, decodeProperty(t, rec).Images)
	})

	t.Run("new uploads append to the retained set", func(t *testing.T) {
		p := seedGalleryProperty(t, svc, gallery)

		req := multipartBody{
			fields: map[string]string{"existingImages": `["/uploads/a.jpg"]`},
			files:  []string{"new.jpg"},
		}.request(t, "/api/properties/"+p.ID)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		images := []string(decodeProperty(t, rec).Images)
		require.Len(t, images, 2)
		assert.Equal(t, "/uploads/a.jpg", images[0])
		assert.True(t, strings.HasPrefix(images[1], "/uploads/"))
		assert.NotEqual(t, "/uploads/a.jpg", images[1])
	})

	t.Run("upload without existingImages replaces the gallery", func(t *testing.T) {
		p := seedGalleryProperty(t, svc, gallery)

		req := multipartBody{files: []string{"only.jpg"}}.request(t, "/api/properties/"+p.ID)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		images := []string(decodeProperty(t, rec).Images)
		require.Len(t, images, 1)
		assert.NotContains(t, gallery, images[0])
	})

	t.Run("retained plus uploaded beyond the cap is rejected", func(t *testing.T) {
		full := make([]string, models.MaxPropertyImages)
		for i := range full {
			full[i] = fmt.Sprintf("/uploads/%d.jpg", i)
		}
		p := seedGalleryProperty(t, svc, full)

		retained, err := json.Marshal(full)
		require.NoError(t, err)

		req := multipartBody{
			fields: map[string]string{"existingImages": string(retained)},
			files:  []string{"overflow.jpg"},
		}.request(t, "/api/properties/"+p.ID)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		got, err := svc.Get(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Len(t, []string(got.Images), models.MaxPropertyImages)
	})

	t.Run("malformed existingImages is rejected", func(t *testing.T) {
		p := seedGalleryProperty(t, svc, gallery)

		req := multipartBody{fields: map[string]string{
			"existingImages": `not-json`,
		}}.request(t, "/api/properties/"+p.ID)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
